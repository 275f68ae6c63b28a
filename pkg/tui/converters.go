package tui

import (
	"fmt"
	"strings"

	"github.com/jessequinn/xc-inventory-cli/pkg/xc"
	"github.com/jessequinn/xc-inventory-cli/pkg/xc/baseline"
	"github.com/jessequinn/xc-inventory-cli/pkg/xc/inventory"
)

// FromInventoryReport converts an inventory report to TUI format, one group per kind
func FromInventoryReport(r *inventory.Report) ReportData {
	groups := make([]Group, 0, len(r.Kinds))
	for _, kind := range r.Kinds {
		title := xc.Kind(kind).Title()
		g := Group{Title: title}

		for _, ns := range r.Namespaces {
			for _, k := range ns.Kinds {
				if k.Kind != kind {
					continue
				}
				switch {
				case k.Error != "":
					g.Items = append(g.Items, Item{Namespace: ns.Name, Name: kind, Status: StatusError, Message: k.Error})
				case k.Empty:
					g.Items = append(g.Items, Item{
						Namespace: ns.Name,
						Status:    StatusEmpty,
						Message:   fmt.Sprintf("No %s found for this namespace.", strings.ToLower(title)),
					})
				default:
					for _, name := range k.Resources {
						g.Items = append(g.Items, Item{Namespace: ns.Name, Name: name, Status: StatusPresent})
					}
				}
			}
		}
		groups = append(groups, g)
	}

	return ReportData{
		Title:     "XC Namespace Inventory",
		Tenant:    r.Tenant,
		Timestamp: r.Timestamp,
		Stats: []Stat{
			{Label: "Namespaces", Value: fmt.Sprintf("%d", len(r.Namespaces))},
			{Label: "Resources", Value: fmt.Sprintf("%d", len(r.Entries()))},
			{Label: "Kinds", Value: strings.Join(r.Kinds, ", ")},
		},
		Groups: groups,
		Errors: r.Errors(),
	}
}

// FromDiffReport converts a baseline diff report to TUI format
func FromDiffReport(r *baseline.DiffReport) ReportData {
	items := make([]Item, 0, len(r.Differences))
	for _, d := range r.Differences {
		items = append(items, Item{Namespace: d.Namespace, Name: d.Name, Status: StatusDiff})
	}

	baselineItems := make([]Item, 0, len(r.BaselineNames))
	for _, name := range r.BaselineNames {
		baselineItems = append(baselineItems, Item{Namespace: r.BaselineNamespace, Name: name, Status: StatusPresent})
	}

	return ReportData{
		Title:     fmt.Sprintf("XC %s Baseline Diff", xc.Kind(r.Kind).Title()),
		Tenant:    r.Tenant,
		Timestamp: r.Timestamp,
		Stats: []Stat{
			{Label: "Baseline Namespace", Value: r.BaselineNamespace},
			{Label: "Baseline Resources", Value: fmt.Sprintf("%d", len(r.BaselineNames))},
			{Label: "Namespaces Scanned", Value: fmt.Sprintf("%d", r.NamespacesScanned)},
			{Label: "Namespace-specific", Value: fmt.Sprintf("%d", len(r.Differences))},
		},
		Groups: []Group{
			{Title: "Differences", Items: items},
			{Title: "Baseline", Items: baselineItems},
		},
		Errors: r.Errors,
	}
}
