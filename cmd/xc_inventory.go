package cmd

import (
	"fmt"
	"strings"

	"github.com/jessequinn/xc-inventory-cli/pkg/tui"
	"github.com/jessequinn/xc-inventory-cli/pkg/xc"
	"github.com/jessequinn/xc-inventory-cli/pkg/xc/inventory"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	inventoryKinds      string
	inventoryExclude    []string
	inventoryOutput     string
	inventoryOutputFile string
)

// inventoryCmd represents the xc inventory command
var inventoryCmd = &cobra.Command{
	Use:   "inventory",
	Short: "List namespaces and their resources",
	Long: `Enumerate every namespace of the tenant and list the resources of each
selected kind. A namespace whose fetch fails is reported and the run continues.`,
	Example: `  xc-inventory-cli xc inventory --tenant acme
  xc-inventory-cli xc inventory --kinds network_interface,http_loadbalancers --exclude system -o json`,
	RunE: runInventory,
}

func init() {
	xcCmd.AddCommand(inventoryCmd)
	inventoryCmd.Flags().StringVar(&inventoryKinds, "kinds", "", "comma-separated resource kinds (default network_interface,load_balancer)")
	inventoryCmd.Flags().StringSliceVar(&inventoryExclude, "exclude", nil, "namespaces to skip (case-insensitive)")
	inventoryCmd.Flags().StringVarP(&inventoryOutput, "output", "o", "text", "output format (text|json|yaml|tui)")
	inventoryCmd.Flags().StringVar(&inventoryOutputFile, "output-file", "", "write the report to a file instead of stdout")
}

func runInventory(cmd *cobra.Command, args []string) error {
	if err := validateOutputFormat(inventoryOutput); err != nil {
		return err
	}

	s, err := newSession(cmd)
	if err != nil {
		return err
	}
	defer s.logger.Sync() //nolint:errcheck

	kinds, err := inventoryKindsFrom(s.cfg.Inventory.Kinds)
	if err != nil {
		return err
	}

	exclude := s.cfg.Inventory.Exclude
	if cmd.Flags().Changed("exclude") {
		exclude = inventoryExclude
	}

	s.logger.Info("Starting namespace inventory",
		zap.String("tenant", s.client.Tenant()),
		zap.Int("kinds", len(kinds)),
		zap.Strings("exclude", exclude))

	analyzer := inventory.NewAnalyzer(s.client, s.client.Tenant(), inventory.Options{
		Kinds:   kinds,
		Exclude: exclude,
	}, s.logger)

	r, err := analyzer.Run(cmd.Context())
	if err != nil {
		return fmt.Errorf("inventory failed: %w", err)
	}

	s.logger.Info("Inventory complete",
		zap.Int("namespaces", len(r.Namespaces)),
		zap.Int("resources", analyzer.GetFindingCount()),
		zap.Int("errors", len(r.Errors())))

	return writeReport(cmd.OutOrStdout(), r, inventoryOutput, inventoryOutputFile, func() tui.ReportData {
		return tui.FromInventoryReport(r)
	})
}

// inventoryKindsFrom prefers --kinds, then the config file, then the defaults.
func inventoryKindsFrom(configured []string) ([]xc.Kind, error) {
	if inventoryKinds != "" {
		return xc.ParseKinds(inventoryKinds)
	}
	if len(configured) == 0 {
		return inventory.DefaultKinds(), nil
	}
	return xc.ParseKinds(strings.Join(configured, ","))
}
