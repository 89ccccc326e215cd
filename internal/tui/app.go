// Package tui hosts the console pages in a Bubble Tea program. Each page is
// built fresh when the router lands on its state, so page-load work runs on
// every visit.
package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/jask/domedeploy/internal/databus"
	"github.com/jask/domedeploy/internal/deploy"
	"github.com/jask/domedeploy/internal/router"
	"github.com/jask/domedeploy/internal/service"
	"github.com/jask/domedeploy/internal/wizard"
)

// Deps are the services pages reach for.
type Deps struct {
	Collections *service.CollectionService
	Factory     *deploy.Factory
	Bus         *databus.Bus
	Log         *zap.Logger

	// SaveVersionType persists the last chosen deployment type. Optional.
	SaveVersionType func(vt string) error
}

type page interface {
	enter(params router.Params) tea.Cmd
	update(msg tea.Msg) tea.Cmd
	view() string
	help() string
}

// loadingPage is implemented by pages that show the loading indicator.
type loadingPage interface {
	loading() bool
}

// App ties together pages.
type App struct {
	ctx     context.Context
	deps    Deps
	log     *zap.Logger
	router  *router.Router
	page    page
	pageSeq uint64
	title   wizard.PageTitle
	status  string
	isErr   bool
	spinner spinner.Model
	width   int
}

func New(ctx context.Context, deps Deps, start router.Route) *App {
	if deps.Log == nil {
		deps.Log = zap.NewNop()
	}
	if deps.Bus == nil {
		deps.Bus = databus.New()
	}
	return &App{
		ctx:     ctx,
		deps:    deps,
		log:     deps.Log,
		router:  router.New(start),
		spinner: spinner.New(spinner.WithSpinner(spinner.Dot)),
	}
}

// Go implements wizard.Navigator. The page switch happens after the current
// message is handled.
func (a *App) Go(state router.State, params router.Params) {
	a.log.Debug("navigate", zap.String("to", string(state)), zap.Any("params", params))
	a.router.Go(state, params)
}

// back returns to the previous page when it is state, otherwise goes to
// state with params.
func (a *App) back(state router.State, params router.Params) {
	if prev, ok := a.router.Previous(); ok && prev.State == state {
		a.log.Debug("navigate back", zap.String("to", string(state)))
		a.router.Back()
		return
	}
	a.Go(state, params)
}

// rememberVersionType makes vt the default for new drafts and saves it when
// it changed.
func (a *App) rememberVersionType(vt string) tea.Cmd {
	f := a.deps.Factory
	if f == nil || vt == "" || vt == f.DefaultVersionType {
		return nil
	}
	if f.DefaultVersionType == "" && vt == deploy.VersionTypeCustom {
		return nil
	}
	f.DefaultVersionType = vt
	save := a.deps.SaveVersionType
	if save == nil {
		return nil
	}
	return func() tea.Msg {
		if err := save(vt); err != nil {
			return errMsg{fmt.Errorf("save version type: %w", err)}
		}
		return nil
	}
}

func (a *App) Init() tea.Cmd {
	return tea.Batch(a.syncPage(), a.spinner.Tick)
}

// syncPage builds the page for the current route when a navigation
// happened. Pages may redirect while entering, so it loops until the route
// settles.
func (a *App) syncPage() tea.Cmd {
	var cmds []tea.Cmd
	for a.page == nil || a.pageSeq != a.router.Seq() {
		a.pageSeq = a.router.Seq()
		route := a.router.Current()
		a.title = wizard.PageTitle{}
		a.page = a.buildPage(route.State)
		cmds = append(cmds, a.page.enter(route.Params))
	}
	return tea.Batch(cmds...)
}

func (a *App) buildPage(state router.State) page {
	switch state {
	case router.DeployManage:
		return &deployManagePage{app: a}
	case router.CreateDeployCommon:
		return newCommonPage(a)
	case router.CreateDeployImage:
		return &draftPage{app: a, raw: false}
	case router.CreateDeployRaw:
		return &draftPage{app: a, raw: true}
	default:
		return &collectionsPage{app: a}
	}
}

func (a *App) setTitle(t wizard.PageTitle) {
	a.title = t
}

func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd
	switch m := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = m.Width
		return a, nil
	case spinner.TickMsg:
		var cmd tea.Cmd
		a.spinner, cmd = a.spinner.Update(m)
		return a, cmd
	case tea.KeyMsg:
		if key.Matches(m, keys.Quit) {
			return a, tea.Quit
		}
		a.status, a.isErr = "", false
	case statusMsg:
		a.status, a.isErr = string(m), false
		return a, nil
	case errMsg:
		a.log.Error("page error", zap.Error(m.error))
		a.status, a.isErr = m.Error(), true
		return a, nil
	case clustersMsg:
		// a load that outlived its page still belongs to the draft
		if cp, ok := a.page.(*commonPage); !ok || cp.step != m.step {
			if m.err == nil {
				m.draft.ApplyClusters(m.snap)
			}
			return a, nil
		}
	}
	cmds = append(cmds, a.page.update(msg))
	cmds = append(cmds, a.syncPage())
	return a, tea.Batch(cmds...)
}

func (a *App) View() string {
	if a.page == nil {
		return ""
	}
	var b strings.Builder
	if a.title.Title != "" {
		b.WriteString(titleStyle.Render(a.title.Title))
		b.WriteString("\n")
		if a.title.Description != "" {
			b.WriteString(descStyle.Render(a.title.Description))
			b.WriteString("\n")
		}
		b.WriteString("\n")
	}
	b.WriteString(a.page.view())
	b.WriteString("\n\n")
	if lp, ok := a.page.(loadingPage); ok && lp.loading() {
		b.WriteString(a.spinner.View() + " loading...\n")
	}
	if a.status != "" {
		if a.isErr {
			b.WriteString(errorStyle.Render("error: "+a.status) + "\n")
		} else {
			b.WriteString(statusStyle.Render(a.status) + "\n")
		}
	}
	b.WriteString(footerStyle.Render(a.page.help()))
	return b.String()
}

// Route exposes the current route, mostly for tests.
func (a *App) Route() router.Route {
	return a.router.Current()
}
