package tui

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"
	"sigs.k8s.io/yaml"

	"github.com/jask/domedeploy/internal/databus"
	"github.com/jask/domedeploy/internal/deploy"
	"github.com/jask/domedeploy/internal/router"
	"github.com/jask/domedeploy/internal/wizard"
)

// draftPage is the step after the type choice: the image flow, or the raw
// flow previewing the draft as YAML or JSON. Both take the draft off the
// bus and hand it back when going back.
type draftPage struct {
	app    *App
	raw    bool
	params router.Params
	draft  *deploy.Draft
}

func (p *draftPage) enter(params router.Params) tea.Cmd {
	p.params = router.Params{
		wizard.ParamCollectionID:   params[wizard.ParamCollectionID],
		wizard.ParamCollectionName: params[wizard.ParamCollectionName],
	}
	d, found, err := databus.TakeAs[*deploy.Draft](p.app.deps.Bus, wizard.DraftKey)
	if err != nil {
		p.app.log.Warn("draft handoff", zap.Error(err))
	}
	if !found || d == nil {
		p.app.Go(router.CreateDeployCommon, p.params)
		return nil
	}
	p.draft = d
	title := "New deployment: image"
	if p.raw {
		title = "New deployment: raw spec"
	}
	p.app.setTitle(wizard.PageTitle{Title: title, Mod: "deployManage"})
	return nil
}

func (p *draftPage) update(msg tea.Msg) tea.Cmd {
	m, ok := msg.(tea.KeyMsg)
	if !ok || p.draft == nil {
		return nil
	}
	if key.Matches(m, keys.Back) {
		p.app.deps.Bus.Set(wizard.DraftKey, p.draft)
		p.app.back(router.CreateDeployCommon, p.params)
	}
	return nil
}

// render returns the draft in the format its version type asks for.
func (p *draftPage) render() (string, error) {
	spec := p.draft.Spec()
	if p.draft.Config.VersionType == deploy.VersionTypeJSON {
		out, err := json.MarshalIndent(spec, "", "  ")
		return string(out), err
	}
	out, err := yaml.Marshal(spec)
	return string(out), err
}

func (p *draftPage) view() string {
	if p.draft == nil {
		return ""
	}
	crumb := breadcrumbStyle.Render("collections / " + p.params[wizard.ParamCollectionName] + " / new deployment")
	if p.raw {
		body, err := p.render()
		if err != nil {
			return crumb + "\n\n" + errorStyle.Render(err.Error())
		}
		return crumb + "\n\n" + boxStyle.Render(strings.TrimRight(body, "\n"))
	}
	d := p.draft
	cluster := "none"
	if c, ok := d.ClusterList.Selected(); ok {
		cluster = c.Name
	}
	lines := []string{
		fmt.Sprintf("draft     %s", d.ID),
		fmt.Sprintf("cluster   %s", cluster),
		fmt.Sprintf("labels    %s", strings.Join(d.NodeList.SelectedLabels(), ", ")),
		fmt.Sprintf("hosts     %d", len(d.NodeList.MatchingNodes())),
		fmt.Sprintf("health    %s", d.Config.HealthChecker.Type),
	}
	return crumb + "\n\n" + boxStyle.Render(strings.Join(lines, "\n"))
}

func (p *draftPage) help() string {
	return helpLine(keys.Back, keys.Quit)
}
