package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/cursor"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/jask/domedeploy/internal/deploy"
	"github.com/jask/domedeploy/internal/router"
	"github.com/jask/domedeploy/internal/wizard"
)

type commonField int

const (
	fieldVersionType commonField = iota
	fieldCluster
	fieldLabels
	fieldCount
)

// commonPage renders the "choose deployment type" step.
type commonPage struct {
	app   *App
	step  *wizard.CommonStep
	input textinput.Model
	focus commonField
}

func newCommonPage(a *App) *commonPage {
	in := textinput.New()
	in.Prompt = "label: "
	in.Placeholder = "type to filter, enter to add, backspace to remove"
	in.Cursor.SetMode(cursor.CursorStatic)
	step := wizard.NewCommonStep(wizard.Deps{
		Nav:     a,
		Store:   a.deps.Bus,
		Factory: a.deps.Factory,
		Log:     a.log,
		OnTitle: a.setTitle,
	})
	return &commonPage{app: a, step: step, input: in}
}

func (p *commonPage) enter(params router.Params) tea.Cmd {
	if !p.step.Enter(params) {
		return nil
	}
	p.input.SetValue(p.step.LabelKey.Key)
	job, ok := p.step.BootstrapClusters()
	if !ok {
		return nil
	}
	return p.runJob(job)
}

func (p *commonPage) runJob(job wizard.ClusterJob) tea.Cmd {
	ctx := p.app.ctx
	step, draft := p.step, p.step.DeployIns
	return func() tea.Msg {
		snap, err := job(ctx)
		return clustersMsg{step: step, draft: draft, snap: snap, err: err}
	}
}

func (p *commonPage) loading() bool {
	return p.step.Ready() && p.step.Loadings.Any()
}

func (p *commonPage) setFocus(f commonField) {
	p.focus = (f + fieldCount) % fieldCount
	if p.focus == fieldLabels {
		p.input.Focus()
	} else {
		p.input.Blur()
	}
	if p.focus == fieldCluster {
		p.step.SelectFocus()
	}
}

func (p *commonPage) update(msg tea.Msg) tea.Cmd {
	if !p.step.Ready() {
		return nil
	}
	switch m := msg.(type) {
	case clustersMsg:
		if err := p.step.ClustersLoaded(m.snap, m.err); err != nil {
			return func() tea.Msg { return errMsg{err} }
		}
		return nil
	case tea.KeyMsg:
		return p.handleKey(m)
	}
	return nil
}

func (p *commonPage) handleKey(m tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(m, keys.Cancel):
		p.step.Cancel()
		return nil
	case key.Matches(m, keys.Next):
		return p.next()
	case m.Type == tea.KeyTab:
		p.setFocus(p.focus + 1)
		return nil
	case m.Type == tea.KeyShiftTab:
		p.setFocus(p.focus - 1)
		return nil
	}

	switch p.focus {
	case fieldVersionType:
		switch {
		case key.Matches(m, keys.Left):
			p.cycleVersionType(-1)
		case key.Matches(m, keys.Right):
			p.cycleVersionType(1)
		case key.Matches(m, keys.Enter):
			return p.next()
		}
	case fieldCluster:
		switch {
		case key.Matches(m, keys.Left):
			return p.cycleCluster(-1)
		case key.Matches(m, keys.Right):
			return p.cycleCluster(1)
		case key.Matches(m, keys.Enter):
			return p.next()
		}
	case fieldLabels:
		return p.labelKey(m)
	}
	return nil
}

func (p *commonPage) next() tea.Cmd {
	p.step.ToNext()
	return p.app.rememberVersionType(p.step.Config.VersionType)
}

// labelKey gives the controller the key before the input reacts to it, so
// Backspace sees the buffer as it was.
func (p *commonPage) labelKey(m tea.KeyMsg) tea.Cmd {
	code := keyCode(m)
	p.step.LabelKeyDown(code, p.step.LabelKey.Key, p.step.FilteredLabels())
	if code == wizard.KeyEnter {
		p.input.SetValue(p.step.LabelKey.Key)
		return nil
	}
	var cmd tea.Cmd
	p.input, cmd = p.input.Update(m)
	p.step.LabelKey.Key = p.input.Value()
	return cmd
}

func (p *commonPage) cycleVersionType(dir int) {
	cur := 0
	for i, vt := range deploy.VersionTypes {
		if vt == p.step.Config.VersionType {
			cur = i
		}
	}
	n := len(deploy.VersionTypes)
	p.step.SetVersionType(deploy.VersionTypes[(cur+dir+n)%n])
}

func (p *commonPage) cycleCluster(dir int) tea.Cmd {
	list := p.step.DeployIns.ClusterList
	if list.Len() == 0 || p.step.Loadings.IsLoading(wizard.LoadingClusters) {
		return nil
	}
	idx := list.SelectedIndex()
	next := list.Clusters[(idx+dir+list.Len())%list.Len()]
	job, err := p.step.ChangeCluster(next.ID)
	if err != nil {
		return func() tea.Msg { return errMsg{err} }
	}
	return p.runJob(job)
}

func (p *commonPage) fieldLabel(f commonField, name string) string {
	if p.focus == f {
		return focusStyle.Render("> " + name)
	}
	return labelStyle.Render("  " + name)
}

func (p *commonPage) view() string {
	if !p.step.Ready() {
		return ""
	}
	s := p.step
	var b strings.Builder
	b.WriteString(breadcrumbStyle.Render("collections / " + s.Breadcrumb.Name + " / new deployment"))
	b.WriteString("\n\n")

	var types []string
	for _, vt := range deploy.VersionTypes {
		if vt == s.Config.VersionType {
			types = append(types, chipOnStyle.Render(vt))
		} else {
			types = append(types, chipStyle.Render(vt))
		}
	}
	b.WriteString(p.fieldLabel(fieldVersionType, "type     ") + " " + lipgloss.JoinHorizontal(lipgloss.Top, types...) + "\n")

	cluster := statusStyle.Render("none")
	if c, ok := s.DeployIns.ClusterList.Selected(); ok {
		cluster = fmt.Sprintf("%s (%d/%d)", c.Name, s.DeployIns.ClusterList.SelectedIndex()+1, s.DeployIns.ClusterList.Len())
	}
	b.WriteString(p.fieldLabel(fieldCluster, "cluster  ") + " " + cluster + "\n")

	b.WriteString(p.fieldLabel(fieldLabels, "labels   ") + " ")
	var chips []string
	for _, l := range s.FilteredLabels().Labels() {
		if l.Selected {
			chips = append(chips, chipOnStyle.Render(l.Key))
		} else {
			chips = append(chips, chipStyle.Render(l.Key))
		}
	}
	if len(chips) == 0 {
		b.WriteString(statusStyle.Render("no matching labels"))
	} else {
		b.WriteString(strings.Join(chips, " "))
	}
	b.WriteString("\n            " + p.input.View() + "\n\n")

	nodes := s.DeployIns.NodeList.MatchingNodes()
	var rows []string
	for _, n := range nodes {
		rows = append(rows, fmt.Sprintf("%-16s %-15s %s", n.Name, n.IP, n.Status))
	}
	if len(rows) == 0 {
		rows = append(rows, statusStyle.Render("no nodes match"))
	}
	hosts := "hosts"
	if s.ValidHost {
		hosts = fmt.Sprintf("hosts (%d)", len(nodes))
	}
	b.WriteString(boxStyle.Render(labelStyle.Render(hosts) + "\n" + strings.Join(rows, "\n")))
	return b.String()
}

func (p *commonPage) help() string {
	return helpLine(keys.Focus, keys.Left, keys.Right, keys.Next, keys.Cancel, keys.Quit)
}
