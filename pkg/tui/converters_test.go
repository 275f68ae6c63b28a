package tui

import (
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/jessequinn/xc-inventory-cli/pkg/report"
	"github.com/jessequinn/xc-inventory-cli/pkg/xc/baseline"
	"github.com/jessequinn/xc-inventory-cli/pkg/xc/inventory"
)

func TestFromInventoryReport(t *testing.T) {
	r := &inventory.Report{
		Tenant:    "acme",
		Timestamp: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		Kinds:     []string{"network_interface", "load_balancer"},
		Namespaces: []*inventory.NamespaceInventory{
			{
				Name: "team-a",
				Kinds: []*inventory.KindInventory{
					{Kind: "network_interface", Resources: []string{"eth0", "eth1"}},
					{Kind: "load_balancer", Resources: []string{}, Empty: true},
				},
			},
			{
				Name: "team-b",
				Kinds: []*inventory.KindInventory{
					{Kind: "network_interface", Error: "status 500"},
					{Kind: "load_balancer", Resources: []string{"lb"}},
				},
			},
		},
	}

	data := FromInventoryReport(r)

	if len(data.Groups) != 2 {
		t.Fatalf("len(Groups) = %d, want 2", len(data.Groups))
	}
	if data.Groups[0].Title != "Network Interfaces" {
		t.Errorf("Groups[0].Title = %q", data.Groups[0].Title)
	}
	if got := countResources(data.Groups[0].Items); got != 2 {
		t.Errorf("network interface count = %d, want 2", got)
	}
	if got := data.Groups[0].Items[2].Status; got != StatusError {
		t.Errorf("team-b interface status = %q, want %q", got, StatusError)
	}
	if got := data.Groups[1].Items[0].Status; got != StatusEmpty {
		t.Errorf("team-a load balancer status = %q, want %q", got, StatusEmpty)
	}
	if len(data.Errors) != 1 {
		t.Errorf("len(Errors) = %d, want 1", len(data.Errors))
	}
}

func TestFromDiffReport(t *testing.T) {
	r := &baseline.DiffReport{
		Tenant:            "acme",
		BaselineNamespace: "shared",
		Kind:              "app_firewall",
		BaselineNames:     []string{"base-waf"},
		NamespacesScanned: 2,
		Differences:       []report.Difference{{Namespace: "team-a", Name: "custom-a"}},
	}

	data := FromDiffReport(r)

	if data.Title != "XC App Firewalls Baseline Diff" {
		t.Errorf("Title = %q", data.Title)
	}
	if len(data.Groups[0].Items) != 1 || data.Groups[0].Items[0].Status != StatusDiff {
		t.Errorf("Differences group = %+v", data.Groups[0])
	}
}

func TestBuildTabs(t *testing.T) {
	data := ReportData{
		Title:  "XC Namespace Inventory",
		Tenant: "acme",
		Groups: []Group{
			{Title: "App Firewalls", Items: []Item{
				{Namespace: "team-a", Name: "custom-a", Status: StatusDiff},
			}},
		},
		Errors: []report.NamespaceError{{Namespace: "ns2", Kind: "app_firewall", Message: "status 500"}},
	}

	tabs := buildTabs(data)

	wantTitles := []string{"Overview", "App Firewalls (1)", "Errors (1)"}
	if len(tabs) != len(wantTitles) {
		t.Fatalf("len(tabs) = %d, want %d", len(tabs), len(wantTitles))
	}
	for i, want := range wantTitles {
		if tabs[i].Title != want {
			t.Errorf("tabs[%d].Title = %q, want %q", i, tabs[i].Title, want)
		}
	}
	if !strings.Contains(tabs[1].Content, "team-a") || !strings.Contains(tabs[1].Content, "custom-a") {
		t.Errorf("group tab content:\n%s", tabs[1].Content)
	}
	if !strings.Contains(tabs[2].Content, "ns2 app_firewall: status 500") {
		t.Errorf("errors tab content:\n%s", tabs[2].Content)
	}
}

func TestModel_SwitchTab(t *testing.T) {
	m := NewModel("title", []Tab{{Title: "a"}, {Title: "b"}, {Title: "c"}})

	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyTab})
	if got := next.(Model).ActiveTab(); got != 1 {
		t.Errorf("ActiveTab() after tab = %d, want 1", got)
	}

	prev, _ := m.Update(tea.KeyMsg{Type: tea.KeyShiftTab})
	if got := prev.(Model).ActiveTab(); got != 2 {
		t.Errorf("ActiveTab() after shift+tab = %d, want 2", got)
	}
}

func TestModel_SwitchTabNoTabs(t *testing.T) {
	m := NewModel("title", nil)

	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyTab})
	if got := next.(Model).ActiveTab(); got != 0 {
		t.Errorf("ActiveTab() = %d, want 0", got)
	}
}

func TestModel_JumpTab(t *testing.T) {
	m := NewModel("title", []Tab{{Title: "a"}, {Title: "b"}, {Title: "c"}})

	tests := []struct {
		key  rune
		want int
	}{
		{'3', 2},
		{'1', 0},
		{'9', 0}, // no ninth tab
	}

	for _, tt := range tests {
		next, _ := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{tt.key}})
		if got := next.(Model).ActiveTab(); got != tt.want {
			t.Errorf("ActiveTab() after %q = %d, want %d", tt.key, got, tt.want)
		}
	}
}

func TestModel_View(t *testing.T) {
	m := NewModel("XC Namespace Inventory", []Tab{
		{Title: "Overview", Content: "tenant acme"},
		{Title: "Errors (0)", Content: "none"},
	})

	if got := m.View(); !strings.Contains(got, "Loading") {
		t.Errorf("View() before sizing = %q", got)
	}

	sized, _ := m.Update(tea.WindowSizeMsg{Width: 100, Height: 30})
	view := sized.(Model).View()

	for _, want := range []string{"XC Namespace Inventory", "1 Overview", "2 Errors (0)", "tenant acme", "quit"} {
		if !strings.Contains(view, want) {
			t.Errorf("View() missing %q:\n%s", want, view)
		}
	}

	expanded, _ := sized.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'?'}})
	if !strings.Contains(expanded.(Model).View(), "go to tab") {
		t.Errorf("full help missing after ?:\n%s", expanded.(Model).View())
	}
}
