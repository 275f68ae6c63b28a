package cmd

import (
	"fmt"

	"github.com/jessequinn/xc-inventory-cli/pkg/tui"
	"github.com/jessequinn/xc-inventory-cli/pkg/xc"
	"github.com/jessequinn/xc-inventory-cli/pkg/xc/baseline"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	diffBaseline   string
	diffKind       string
	diffOutput     string
	diffOutputFile string
)

// diffCmd represents the xc diff command
var diffCmd = &cobra.Command{
	Use:   "diff",
	Short: "Report resources defined outside the baseline namespace",
	Long: `Fetch one resource kind from the baseline namespace, then report every
resource of that kind in the other namespaces whose name is not in the baseline.`,
	Example: `  xc-inventory-cli xc diff --tenant acme
  xc-inventory-cli xc diff --baseline shared --kind app_firewall -o yaml`,
	RunE: runDiff,
}

func init() {
	xcCmd.AddCommand(diffCmd)
	diffCmd.Flags().StringVar(&diffBaseline, "baseline", "", "baseline namespace (default shared)")
	diffCmd.Flags().StringVar(&diffKind, "kind", "", "resource kind to compare (default app_firewall)")
	diffCmd.Flags().StringVarP(&diffOutput, "output", "o", "text", "output format (text|json|yaml|tui)")
	diffCmd.Flags().StringVar(&diffOutputFile, "output-file", "", "write the report to a file instead of stdout")
}

func runDiff(cmd *cobra.Command, args []string) error {
	if err := validateOutputFormat(diffOutput); err != nil {
		return err
	}

	s, err := newSession(cmd)
	if err != nil {
		return err
	}
	defer s.logger.Sync() //nolint:errcheck

	namespace := s.cfg.Diff.Baseline
	if diffBaseline != "" {
		namespace = diffBaseline
	}
	kindName := s.cfg.Diff.Kind
	if diffKind != "" {
		kindName = diffKind
	}
	kind, err := xc.ParseKind(kindName)
	if err != nil {
		return err
	}

	s.logger.Info("Starting baseline diff",
		zap.String("tenant", s.client.Tenant()),
		zap.String("baseline", namespace),
		zap.String("kind", string(kind)))

	analyzer := baseline.NewAnalyzer(s.client, s.client.Tenant(), baseline.Options{
		Namespace: namespace,
		Kind:      kind,
	}, s.logger)

	r, err := analyzer.Run(cmd.Context())
	if err != nil {
		return fmt.Errorf("baseline diff failed: %w", err)
	}

	s.logger.Info("Baseline diff complete",
		zap.Int("baseline_resources", len(r.BaselineNames)),
		zap.Int("namespaces", r.NamespacesScanned),
		zap.Int("differences", analyzer.GetFindingCount()),
		zap.Int("errors", len(r.Errors)))

	return writeReport(cmd.OutOrStdout(), r, diffOutput, diffOutputFile, func() tui.ReportData {
		return tui.FromDiffReport(r)
	})
}
