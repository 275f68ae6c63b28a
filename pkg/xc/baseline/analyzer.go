package baseline

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jessequinn/xc-inventory-cli/pkg/analyzer"
	"github.com/jessequinn/xc-inventory-cli/pkg/report"
	"github.com/jessequinn/xc-inventory-cli/pkg/xc"
	"go.uber.org/zap"
)

// DefaultNamespace is the namespace whose resources are inherited by every other namespace.
const DefaultNamespace = "shared"

// Fetcher is the subset of xc.Client the differ needs.
type Fetcher interface {
	ListNamespaces(ctx context.Context, exclude ...string) ([]xc.Namespace, error)
	ListResources(ctx context.Context, namespace string, kind xc.Kind) ([]xc.Resource, error)
}

// Set is a set of resource names.
type Set map[string]struct{}

// Has reports whether name is in the set. Matching is exact and case-sensitive.
func (s Set) Has(name string) bool {
	_, ok := s[name]
	return ok
}

// Names returns the members sorted by name.
func (s Set) Names() []string {
	names := make([]string, 0, len(s))
	for name := range s {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Differ compares namespaces against a baseline set fetched once at construction.
type Differ struct {
	fetcher   Fetcher
	namespace string
	kind      xc.Kind
	set       Set
}

// NewDiffer fetches the baseline namespace's collection of kind and reduces it to a name set.
// Any fetch failure is returned as *xc.BaselineUnavailable.
func NewDiffer(ctx context.Context, fetcher Fetcher, namespace string, kind xc.Kind) (*Differ, error) {
	resources, err := fetcher.ListResources(ctx, namespace, kind)
	if err != nil {
		return nil, &xc.BaselineUnavailable{Namespace: namespace, Kind: kind, Err: err}
	}

	set := make(Set, len(resources))
	for _, r := range resources {
		set[r.Name] = struct{}{}
	}

	return &Differ{
		fetcher:   fetcher,
		namespace: namespace,
		kind:      kind,
		set:       set,
	}, nil
}

// Set returns a copy of the baseline names.
func (d *Differ) Set() Set {
	out := make(Set, len(d.set))
	for name := range d.set {
		out[name] = struct{}{}
	}
	return out
}

// Diff fetches namespace's collection and returns the resources absent from the
// baseline, in fetch order. Fetch errors are returned unchanged.
func (d *Differ) Diff(ctx context.Context, namespace string) ([]report.Difference, error) {
	resources, err := d.fetcher.ListResources(ctx, namespace, d.kind)
	if err != nil {
		return nil, err
	}

	diffs := make([]report.Difference, 0)
	for _, r := range resources {
		if d.set.Has(r.Name) {
			continue
		}
		diffs = append(diffs, report.Difference{Namespace: namespace, Name: r.Name})
	}
	return diffs, nil
}

// Options selects the baseline namespace and the kind compared against it.
type Options struct {
	Namespace string  `yaml:"namespace"`
	Kind      xc.Kind `yaml:"kind"`
}

// Compile-time interface implementation check
var _ analyzer.Baseline = Options{}

// GetName returns the baseline namespace implementing analyzer.Baseline interface
func (o Options) GetName() string {
	return o.Namespace
}

// Validate checks the options implementing analyzer.Baseline interface
func (o Options) Validate() error {
	if strings.TrimSpace(o.Namespace) == "" {
		return fmt.Errorf("baseline namespace is required")
	}
	if !o.Kind.Valid() {
		return fmt.Errorf("unknown resource kind %q", o.Kind)
	}
	return nil
}

// Analyzer runs a baseline diff across every namespace of a tenant.
type Analyzer struct {
	fetcher    Fetcher
	tenant     string
	opts       Options
	logger     *zap.Logger
	lastReport *DiffReport
}

var _ analyzer.ResourceAnalyzer = (*Analyzer)(nil)

// NewAnalyzer creates a baseline Analyzer. The baseline namespace is trimmed once here.
// A nil logger disables logging.
func NewAnalyzer(fetcher Fetcher, tenant string, opts Options, logger *zap.Logger) *Analyzer {
	opts.Namespace = strings.TrimSpace(opts.Namespace)
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

// Run fetches the baseline, lists the other namespaces and diffs each one in order.
// Baseline and namespace-listing failures are fatal. A failing namespace is recorded
// in the report and the walk continues.
func (a *Analyzer) Run(ctx context.Context) (*DiffReport, error) {
	if err := a.opts.Validate(); err != nil {
		return nil, err
	}

	differ, err := NewDiffer(ctx, a.fetcher, a.opts.Namespace, a.opts.Kind)
	if err != nil {
		return nil, err
	}

	namespaces, err := a.fetcher.ListNamespaces(ctx, a.opts.Namespace)
	if err != nil {
		return nil, fmt.Errorf("failed to list namespaces: %w", err)
	}

	rpt := &DiffReport{
		RunID:             uuid.NewString(),
		Timestamp:         time.Now(),
		Tenant:            a.tenant,
		BaselineNamespace: a.opts.Namespace,
		Kind:              string(a.opts.Kind),
		BaselineNames:     differ.Set().Names(),
		Differences:       make([]report.Difference, 0),
		Errors:            make([]report.NamespaceError, 0),
	}

	for _, ns := range namespaces {
		rpt.NamespacesScanned++

		diffs, err := differ.Diff(ctx, ns.Name)
		if err != nil {
			// a request timeout belongs to this namespace; only the run context aborts the walk
			if ctxErr := ctx.Err(); ctxErr != nil {
				return nil, ctxErr
			}
			a.logger.Warn("Failed to diff namespace",
				zap.String("namespace", ns.Name),
				zap.String("kind", string(a.opts.Kind)),
				zap.Error(err))
			rpt.Errors = append(rpt.Errors, report.NamespaceError{
				Namespace: ns.Name,
				Kind:      string(a.opts.Kind),
				Message:   err.Error(),
			})
			continue
		}

		a.logger.Debug("Diffed namespace",
			zap.String("namespace", ns.Name),
			zap.Int("differences", len(diffs)))
		rpt.Differences = append(rpt.Differences, diffs...)
	}

	a.lastReport = rpt
	return rpt, nil
}

// Analyze performs the diff implementing analyzer.ResourceAnalyzer interface
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

// GetFindingCount returns the number of differences implementing analyzer.ResourceAnalyzer interface
func (a *Analyzer) GetFindingCount() int {
	if a.lastReport == nil {
		return 0
	}
	return len(a.lastReport.Differences)
}
