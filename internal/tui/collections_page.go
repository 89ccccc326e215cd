package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/jask/domedeploy/internal/database/repository"
	"github.com/jask/domedeploy/internal/router"
	"github.com/jask/domedeploy/internal/wizard"
)

// collectionsPage lists deploy collections.
type collectionsPage struct {
	app    *App
	items  []repository.Collection
	cursor int
	loaded bool
}

func (p *collectionsPage) enter(router.Params) tea.Cmd {
	p.app.setTitle(wizard.PageTitle{Title: "Deploy collections", Mod: "deployManage"})
	svc := p.app.deps.Collections
	ctx := p.app.ctx
	return func() tea.Msg {
		if svc == nil {
			return collectionsMsg(nil)
		}
		cols, err := svc.List(ctx)
		if err != nil {
			return errMsg{err}
		}
		return collectionsMsg(cols)
	}
}

func (p *collectionsPage) update(msg tea.Msg) tea.Cmd {
	switch m := msg.(type) {
	case collectionsMsg:
		p.items = []repository.Collection(m)
		p.loaded = true
		if p.cursor >= len(p.items) {
			p.cursor = 0
		}
	case tea.KeyMsg:
		switch {
		case key.Matches(m, keys.Up):
			if p.cursor > 0 {
				p.cursor--
			}
		case key.Matches(m, keys.Down):
			if p.cursor < len(p.items)-1 {
				p.cursor++
			}
		case key.Matches(m, keys.Enter):
			if len(p.items) == 0 {
				return nil
			}
			c := p.items[p.cursor]
			p.app.Go(router.DeployManage, router.Params{wizard.ParamID: c.ID, wizard.ParamName: c.Name})
		}
	}
	return nil
}

func (p *collectionsPage) loading() bool { return !p.loaded }

func (p *collectionsPage) view() string {
	if p.loaded && len(p.items) == 0 {
		return statusStyle.Render("no collections")
	}
	var b strings.Builder
	for i, c := range p.items {
		line := fmt.Sprintf("%-20s %s", c.Name, descStyle.Render(c.Description))
		if i == p.cursor {
			b.WriteString(focusStyle.Render("> ") + line)
		} else {
			b.WriteString("  " + line)
		}
		b.WriteString("\n")
	}
	return strings.TrimRight(b.String(), "\n")
}

func (p *collectionsPage) help() string {
	return helpLine(keys.Up, keys.Down, keys.Enter, keys.Quit)
}

// deployManagePage is the deployment list of one collection.
type deployManagePage struct {
	app  *App
	id   string
	name string
}

func (p *deployManagePage) enter(params router.Params) tea.Cmd {
	p.id, p.name = params[wizard.ParamID], params[wizard.ParamName]
	if p.id == "" {
		p.app.Go(router.DeployCollectionManage, nil)
		return nil
	}
	p.app.setTitle(wizard.PageTitle{Title: "Deployments", Description: p.name, Mod: "deployManage"})
	return nil
}

func (p *deployManagePage) update(msg tea.Msg) tea.Cmd {
	m, ok := msg.(tea.KeyMsg)
	if !ok {
		return nil
	}
	switch {
	case key.Matches(m, keys.New):
		p.app.Go(router.CreateDeployCommon, router.Params{
			wizard.ParamCollectionID:   p.id,
			wizard.ParamCollectionName: p.name,
		})
	case key.Matches(m, keys.Back):
		p.app.Go(router.DeployCollectionManage, nil)
	}
	return nil
}

func (p *deployManagePage) view() string {
	return breadcrumbStyle.Render("collections / "+p.name) + "\n\n" +
		statusStyle.Render("press n to create a deployment in this collection")
}

func (p *deployManagePage) help() string {
	return helpLine(keys.New, keys.Back, keys.Quit)
}
