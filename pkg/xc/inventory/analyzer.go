// Package inventory enumerates every namespace of a tenant and the selected
// resource kinds under each one.
package inventory

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jessequinn/xc-inventory-cli/pkg/analyzer"
	"github.com/jessequinn/xc-inventory-cli/pkg/xc"
	"go.uber.org/zap"
)

// Fetcher is the subset of xc.Client the inventory walk needs.
type Fetcher interface {
	ListNamespaces(ctx context.Context, exclude ...string) ([]xc.Namespace, error)
	ListResources(ctx context.Context, namespace string, kind xc.Kind) ([]xc.Resource, error)
}

// DefaultKinds are enumerated when no kinds are selected.
func DefaultKinds() []xc.Kind {
	return []xc.Kind{xc.KindNetworkInterface, xc.KindLoadBalancer}
}

// Options controls which namespaces and kinds are walked.
type Options struct {
	Kinds   []xc.Kind
	Exclude []string
}

// Analyzer walks namespaces sequentially and records what each one holds.
type Analyzer struct {
	fetcher    Fetcher
	tenant     string
	opts       Options
	logger     *zap.Logger
	lastReport *Report
}

var _ analyzer.ResourceAnalyzer = (*Analyzer)(nil)

// NewAnalyzer creates an inventory Analyzer. Empty Kinds fall back to DefaultKinds.
func NewAnalyzer(fetcher Fetcher, tenant string, opts Options, logger *zap.Logger) *Analyzer {
	if len(opts.Kinds) == 0 {
		opts.Kinds = DefaultKinds()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Analyzer{
		fetcher: fetcher,
		tenant:  tenant,
		opts:    opts,
		logger:  logger,
	}
}

// Run lists namespaces and fetches every selected kind for each one.
// Only the namespace listing is fatal; failed kinds are recorded per namespace.
func (a *Analyzer) Run(ctx context.Context) (*Report, error) {
	for _, k := range a.opts.Kinds {
		if !k.Valid() {
			return nil, fmt.Errorf("unknown resource kind %q", k)
		}
	}

	namespaces, err := a.fetcher.ListNamespaces(ctx, a.opts.Exclude...)
	if err != nil {
		return nil, fmt.Errorf("failed to list namespaces: %w", err)
	}

	kinds := make([]string, 0, len(a.opts.Kinds))
	for _, k := range a.opts.Kinds {
		kinds = append(kinds, string(k))
	}

	rpt := &Report{
		RunID:      uuid.NewString(),
		Timestamp:  time.Now(),
		Tenant:     a.tenant,
		Kinds:      kinds,
		Namespaces: make([]*NamespaceInventory, 0, len(namespaces)),
	}

	for _, ns := range namespaces {
		nsInv, err := a.inventoryNamespace(ctx, ns.Name)
		if err != nil {
			return nil, err
		}
		rpt.Namespaces = append(rpt.Namespaces, nsInv)
	}

	a.lastReport = rpt
	return rpt, nil
}

// inventoryNamespace fetches every kind for one namespace. Only cancellation is returned as an error.
func (a *Analyzer) inventoryNamespace(ctx context.Context, namespace string) (*NamespaceInventory, error) {
	nsInv := &NamespaceInventory{
		Name:  namespace,
		Kinds: make([]*KindInventory, 0, len(a.opts.Kinds)),
	}

	for _, kind := range a.opts.Kinds {
		kindInv := &KindInventory{Kind: string(kind), Resources: make([]string, 0)}

		resources, err := a.fetcher.ListResources(ctx, namespace, kind)
		if err != nil {
			// a request timeout belongs to this namespace; only the run context aborts the walk
			if ctxErr := ctx.Err(); ctxErr != nil {
				return nil, ctxErr
			}
			a.logger.Warn("Failed to fetch resources",
				zap.String("namespace", namespace),
				zap.String("kind", string(kind)),
				zap.Error(err))
			kindInv.Error = err.Error()
			nsInv.Kinds = append(nsInv.Kinds, kindInv)
			continue
		}

		for _, r := range resources {
			kindInv.Resources = append(kindInv.Resources, r.Name)
		}
		kindInv.Empty = len(kindInv.Resources) == 0
		nsInv.Kinds = append(nsInv.Kinds, kindInv)
	}

	return nsInv, nil
}

// Analyze performs the walk implementing analyzer.ResourceAnalyzer interface
func (a *Analyzer) Analyze(ctx context.Context) error {
	_, err := a.Run(ctx)
	return err
}

// GenerateReport renders the last report implementing analyzer.ResourceAnalyzer interface
func (a *Analyzer) GenerateReport() (string, error) {
	if a.lastReport == nil {
		return "", fmt.Errorf("no analysis has been performed yet")
	}
	return a.lastReport.FormatText(), nil
}

// GetFindingCount returns the number of enumerated resources implementing analyzer.ResourceAnalyzer interface
func (a *Analyzer) GetFindingCount() int {
	if a.lastReport == nil {
		return 0
	}
	return len(a.lastReport.Entries())
}
