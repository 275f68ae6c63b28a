package inventory

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/jessequinn/xc-inventory-cli/pkg/report"
	"github.com/jessequinn/xc-inventory-cli/pkg/xc"
)

// Report contains the enumeration results for all namespaces
type Report struct {
	RunID      string                `json:"run_id" yaml:"run_id"`
	Timestamp  time.Time             `json:"timestamp" yaml:"timestamp"`
	Tenant     string                `json:"tenant" yaml:"tenant"`
	Kinds      []string              `json:"kinds" yaml:"kinds"`
	Namespaces []*NamespaceInventory `json:"namespaces" yaml:"namespaces"`
}

// NamespaceInventory holds the collections fetched for one namespace
type NamespaceInventory struct {
	Name  string           `json:"name" yaml:"name"`
	Kinds []*KindInventory `json:"kinds" yaml:"kinds"`
}

// KindInventory is the result of one collection fetch.
// Empty and Error are mutually exclusive: Empty means the fetch succeeded with no items.
type KindInventory struct {
	Kind      string   `json:"kind" yaml:"kind"`
	Resources []string `json:"resources" yaml:"resources"`
	Empty     bool     `json:"empty" yaml:"empty"`
	Error     string   `json:"error,omitempty" yaml:"error,omitempty"`
}

// Entries flattens the report into (namespace, kind, name) triples in enumeration order
func (r *Report) Entries() []report.Entry {
	entries := make([]report.Entry, 0)
	for _, ns := range r.Namespaces {
		for _, k := range ns.Kinds {
			for _, name := range k.Resources {
				entries = append(entries, report.Entry{Namespace: ns.Name, Kind: k.Kind, Name: name})
			}
		}
	}
	return entries
}

// Errors collects every failed fetch as a namespace error
func (r *Report) Errors() []report.NamespaceError {
	var errs []report.NamespaceError
	for _, ns := range r.Namespaces {
		for _, k := range ns.Kinds {
			if k.Error != "" {
				errs = append(errs, report.NamespaceError{Namespace: ns.Name, Kind: k.Kind, Message: k.Error})
			}
		}
	}
	return errs
}

// FormatText generates a human-readable text report
func (r *Report) FormatText() string {
	var sb strings.Builder

	sb.WriteString("═══════════════════════════════════════════════════════════════════════════════\n")
	sb.WriteString("  XC Namespace Inventory Report\n")
	sb.WriteString("═══════════════════════════════════════════════════════════════════════════════\n\n")
	sb.WriteString(fmt.Sprintf("Generated: %s\n", r.Timestamp.Format(time.RFC3339)))
	sb.WriteString(fmt.Sprintf("Tenant: %s\n", r.Tenant))
	sb.WriteString(fmt.Sprintf("Total Namespaces: %d\n", len(r.Namespaces)))
	sb.WriteString(fmt.Sprintf("Total Resources: %d\n\n", len(r.Entries())))

	sb.WriteString(report.FormatErrors(r.Errors()))

	if len(r.Namespaces) == 0 {
		sb.WriteString(fmt.Sprintf("No namespaces found in tenant '%s'.\n", r.Tenant))
		return sb.String()
	}

	for i, ns := range r.Namespaces {
		if i > 0 {
			sb.WriteString("\n")
		}
		sb.WriteString(ns.FormatText())
	}

	return sb.String()
}

// FormatText generates a formatted text representation of one namespace
func (n *NamespaceInventory) FormatText() string {
	var sb strings.Builder

	headerStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("45")).
		Background(lipgloss.Color("236")).
		Padding(0, 1)

	kindStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("244")).
		Bold(true)

	itemStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("252"))

	errorStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("196"))

	divider := lipgloss.NewStyle().
		Foreground(lipgloss.Color("240")).
		Render("───────────────────────────────────────────────────────────────────────────────")

	sb.WriteString(divider + "\n")
	sb.WriteString(headerStyle.Render(fmt.Sprintf("Namespace: %s", n.Name)) + "\n")

	for _, k := range n.Kinds {
		title := xc.Kind(k.Kind).Title()
		sb.WriteString("\n" + kindStyle.Render(title+":") + "\n")

		switch {
		case k.Error != "":
			sb.WriteString(errorStyle.Render(fmt.Sprintf("  %s Error fetching %s: %s", report.MarkerError, strings.ToLower(title), k.Error)) + "\n")
		case k.Empty:
			sb.WriteString(fmt.Sprintf("  No %s found for this namespace.\n", strings.ToLower(title)))
		default:
			for _, name := range k.Resources {
				sb.WriteString(itemStyle.Render("  - "+name) + "\n")
			}
		}
	}

	return sb.String()
}

// FormatJSON generates JSON output of the inventory report
func (r *Report) FormatJSON() (string, error) {
	return report.MarshalJSON(r)
}

// FormatYAML generates YAML output of the inventory report
func (r *Report) FormatYAML() (string, error) {
	return report.MarshalYAML(r)
}
