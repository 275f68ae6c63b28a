package cmd

import (
	"github.com/spf13/cobra"
)

var (
	xcTenant  string
	xcToken   string
	xcRoot    string
	xcTimeout int
)

// xcCmd represents the xc command
var xcCmd = &cobra.Command{
	Use:   "xc",
	Short: "Inspect F5 Distributed Cloud (Volterra) tenants",
	Long: `Inspect F5 Distributed Cloud tenants through the console API.
Credentials come from flags, XC_TENANT / XC_API_TOKEN, the config file, or an interactive prompt.`,
}

func init() {
	rootCmd.AddCommand(xcCmd)
	xcCmd.PersistentFlags().StringVar(&xcTenant, "tenant", "", "XC tenant name")
	xcCmd.PersistentFlags().StringVar(&xcToken, "token", "", "XC API token (prefer XC_API_TOKEN)")
	xcCmd.PersistentFlags().StringVar(&xcRoot, "api-root", "", "override the API root URL")
	xcCmd.PersistentFlags().IntVar(&xcTimeout, "timeout", 0, "per-request timeout in seconds (0 = transport default)")
}
