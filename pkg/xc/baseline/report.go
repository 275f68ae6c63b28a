package baseline

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/jessequinn/xc-inventory-cli/pkg/report"
	"github.com/jessequinn/xc-inventory-cli/pkg/xc"
)

// DiffReport holds namespace-specific resources found by a baseline diff
type DiffReport struct {
	RunID             string                  `json:"run_id" yaml:"run_id"`
	Timestamp         time.Time               `json:"timestamp" yaml:"timestamp"`
	Tenant            string                  `json:"tenant" yaml:"tenant"`
	BaselineNamespace string                  `json:"baseline_namespace" yaml:"baseline_namespace"`
	Kind              string                  `json:"kind" yaml:"kind"`
	BaselineNames     []string                `json:"baseline_names" yaml:"baseline_names"`
	NamespacesScanned int                     `json:"namespaces_scanned" yaml:"namespaces_scanned"`
	Differences       []report.Difference     `json:"differences" yaml:"differences"`
	Errors            []report.NamespaceError `json:"errors,omitempty" yaml:"errors,omitempty"`
}

// DifferencesFor returns the differences of one namespace in report order
func (r *DiffReport) DifferencesFor(namespace string) []report.Difference {
	var out []report.Difference
	for _, d := range r.Differences {
		if d.Namespace == namespace {
			out = append(out, d)
		}
	}
	return out
}

// FormatText generates a human-readable text report
func (r *DiffReport) FormatText() string {
	var sb strings.Builder

	headerStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("45")).
		Background(lipgloss.Color("236")).
		Padding(0, 1)

	labelStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("244")).
		Bold(true)

	valueStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("252"))

	sb.WriteString("═══════════════════════════════════════════════════════════════════════════════\n")
	sb.WriteString(headerStyle.Render(fmt.Sprintf("XC %s Baseline Diff", xc.Kind(r.Kind).Title())) + "\n")
	sb.WriteString("═══════════════════════════════════════════════════════════════════════════════\n\n")
	sb.WriteString(labelStyle.Render("Generated: ") + valueStyle.Render(r.Timestamp.Format(time.RFC3339)) + "\n")
	sb.WriteString(labelStyle.Render("Tenant:    ") + valueStyle.Render(r.Tenant) + "\n")
	sb.WriteString(labelStyle.Render("Baseline:  ") + valueStyle.Render(fmt.Sprintf("%s (%d %s)", r.BaselineNamespace, len(r.BaselineNames), r.Kind)) + "\n")
	sb.WriteString(fmt.Sprintf("Namespaces Scanned: %d\n", r.NamespacesScanned))
	sb.WriteString(fmt.Sprintf("Namespace-specific Resources: %d\n\n", len(r.Differences)))

	sb.WriteString(report.FormatDifferences(r.Differences))

	if len(r.Errors) > 0 {
		sb.WriteString("\n")
		sb.WriteString(report.FormatErrors(r.Errors))
	}

	return sb.String()
}

// FormatJSON generates JSON output of the diff report
func (r *DiffReport) FormatJSON() (string, error) {
	return report.MarshalJSON(r)
}

// FormatYAML generates YAML output of the diff report
func (r *DiffReport) FormatYAML() (string, error) {
	return report.MarshalYAML(r)
}
