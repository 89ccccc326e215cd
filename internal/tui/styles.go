package tui

import "github.com/charmbracelet/lipgloss"

var (
	titleStyle      = lipgloss.NewStyle().Bold(true).Underline(true)
	descStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	breadcrumbStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("111"))
	statusStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	errorStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("203"))
	footerStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("252")).Background(lipgloss.Color("236")).Padding(0, 1)
	focusStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("212")).Bold(true)
	labelStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("250"))
	chipStyle       = lipgloss.NewStyle().Padding(0, 1).Foreground(lipgloss.Color("252")).Background(lipgloss.Color("238"))
	chipOnStyle     = chipStyle.Foreground(lipgloss.Color("230")).Background(lipgloss.Color("63"))
	boxStyle        = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)
)
