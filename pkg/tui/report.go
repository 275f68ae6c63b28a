package tui

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/jessequinn/xc-inventory-cli/pkg/report"
)

// Item statuses
const (
	StatusPresent = "present"
	StatusEmpty   = "empty"
	StatusError   = "error"
	StatusDiff    = "diff"
)

// Item is one line of a group: a resource, an empty marker or a failed fetch
type Item struct {
	Namespace string
	Name      string
	Status    string
	Message   string
}

// Group is rendered as one tab
type Group struct {
	Title string
	Items []Item
}

// Stat is a labelled figure on the overview tab
type Stat struct {
	Label string
	Value string
}

// ReportData holds the complete report data for TUI
type ReportData struct {
	Title     string
	Tenant    string
	Timestamp time.Time
	Stats     []Stat
	Groups    []Group
	Errors    []report.NamespaceError
}

// Run starts the TUI with the provided report data
func Run(data ReportData) error {
	model := NewModel(data.Title, buildTabs(data))
	p := tea.NewProgram(model, tea.WithAltScreen())
	_, err := p.Run()
	return err
}

// buildTabs creates the overview tab, one tab per group and an errors tab
func buildTabs(data ReportData) []Tab {
	tabs := []Tab{
		{
			Title:   "Overview",
			Content: buildOverviewTab(data),
		},
	}
	for _, g := range data.Groups {
		tabs = append(tabs, Tab{
			Title:   fmt.Sprintf("%s (%d)", g.Title, countResources(g.Items)),
			Content: buildGroupTab(g),
		})
	}
	tabs = append(tabs, Tab{
		Title:   fmt.Sprintf("Errors (%d)", len(data.Errors)),
		Content: buildErrorsTab(data.Errors),
	})
	return tabs
}

// buildOverviewTab creates the overview tab content
func buildOverviewTab(data ReportData) string {
	var sb strings.Builder

	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("cyan")).
		Underline(true).
		MarginTop(1).
		MarginBottom(1)

	labelStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("244")).
		Width(30)

	infoStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("252"))

	sb.WriteString(titleStyle.Render(data.Title) + "\n\n")
	sb.WriteString(labelStyle.Render("Generated:") + infoStyle.Render(data.Timestamp.Format(time.RFC3339)) + "\n")
	sb.WriteString(labelStyle.Render("Tenant:") + infoStyle.Render(data.Tenant) + "\n")
	for _, s := range data.Stats {
		sb.WriteString(labelStyle.Render(s.Label+":") + infoStyle.Render(s.Value) + "\n")
	}
	sb.WriteString("\n")

	if len(data.Errors) == 0 {
		sb.WriteString(lipgloss.NewStyle().
			Foreground(lipgloss.Color("46")).
			Bold(true).
			Render("  "+report.MarkerOK+" All namespaces fetched successfully") + "\n")
	} else {
		sb.WriteString(lipgloss.NewStyle().
			Foreground(lipgloss.Color("196")).
			Bold(true).
			Render(fmt.Sprintf("  %s %d failed fetches, see Errors tab", report.MarkerError, len(data.Errors))) + "\n")
	}

	return sb.String()
}

// buildGroupTab lists a group's items under their namespace headers
func buildGroupTab(g Group) string {
	var sb strings.Builder

	if len(g.Items) == 0 {
		sb.WriteString(lipgloss.NewStyle().
			Foreground(lipgloss.Color("46")).
			Bold(true).
			MarginTop(2).
			Render(fmt.Sprintf("%s Nothing to show for %s", report.MarkerOK, g.Title)) + "\n")
		return sb.String()
	}

	nsStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("cyan"))

	current := ""
	for i, item := range g.Items {
		if i == 0 || item.Namespace != current {
			if i > 0 {
				sb.WriteString("\n")
			}
			current = item.Namespace
			sb.WriteString(nsStyle.Render("● "+item.Namespace) + "\n")
		}
		sb.WriteString(formatItem(item) + "\n")
	}

	return sb.String()
}

// buildErrorsTab lists per-namespace failures
func buildErrorsTab(errs []report.NamespaceError) string {
	if len(errs) == 0 {
		return lipgloss.NewStyle().
			Foreground(lipgloss.Color("46")).
			Bold(true).
			MarginTop(2).
			Render(report.MarkerOK+" No errors") + "\n"
	}

	var sb strings.Builder
	for _, e := range errs {
		sb.WriteString(formatItem(Item{
			Namespace: e.Namespace,
			Name:      e.Kind,
			Status:    StatusError,
			Message:   e.Message,
		}) + "\n")
	}
	return sb.String()
}

// formatItem renders one item with a status-colored marker
func formatItem(item Item) string {
	switch item.Status {
	case StatusError:
		return getStatusStyle(item.Status).Render(fmt.Sprintf("  %s %s %s: %s", report.MarkerError, item.Namespace, item.Name, item.Message))
	case StatusEmpty:
		return getStatusStyle(item.Status).Render(fmt.Sprintf("  %s %s", report.MarkerEmpty, item.Message))
	case StatusDiff:
		return getStatusStyle(item.Status).Render(fmt.Sprintf("  %s %s", report.MarkerDiff, item.Name))
	default:
		return getStatusStyle(item.Status).Render("  - " + item.Name)
	}
}

func getStatusStyle(status string) lipgloss.Style {
	style := lipgloss.NewStyle()
	switch status {
	case StatusError:
		return style.Foreground(lipgloss.Color("196")).Bold(true)
	case StatusEmpty:
		return style.Foreground(lipgloss.Color("244"))
	case StatusDiff:
		return style.Foreground(lipgloss.Color("220")).Bold(true)
	default:
		return style.Foreground(lipgloss.Color("252"))
	}
}

func countResources(items []Item) int {
	n := 0
	for _, item := range items {
		if item.Status == StatusPresent || item.Status == StatusDiff {
			n++
		}
	}
	return n
}
