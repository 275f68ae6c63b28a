package cmd

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/jessequinn/xc-inventory-cli/internal/config"
	"github.com/jessequinn/xc-inventory-cli/internal/logging"
	"github.com/jessequinn/xc-inventory-cli/pkg/xc"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// session bundles what every xc subcommand needs
type session struct {
	cfg    *config.Config
	client *xc.Client
	logger *zap.Logger
}

// newSession loads config, applies flag overrides, prompts for missing credentials
// and builds the logger and API client.
func newSession(cmd *cobra.Command) (*session, error) {
	cfg, err := config.NewConfig(cfgFile, cmd.Flags().Changed("config"))
	if err != nil {
		return nil, err
	}

	applyFlagOverrides(cfg)

	logger, err := logging.NewLogger(cfg.LoggerConfig())
	if err != nil {
		return nil, fmt.Errorf("failed to create logger: %w", err)
	}

	if err := resolveCredentials(cfg, cmd.InOrStdin(), cmd.ErrOrStderr()); err != nil {
		return nil, err
	}

	client, err := xc.NewClient(cfg.ClientConfig(), logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create XC client: %w", err)
	}

	logger.Debug("Session ready",
		zap.String("tenant", client.Tenant()),
		zap.String("api_root", client.APIRoot()))

	return &session{cfg: cfg, client: client, logger: logger}, nil
}

func applyFlagOverrides(cfg *config.Config) {
	if logLevel != "" {
		cfg.Log.Level = logLevel
	}
	if logFormat != "" {
		cfg.Log.Format = logFormat
	}
	if xcTenant != "" {
		cfg.Tenant.Name = xcTenant
	}
	if xcToken != "" {
		cfg.Tenant.APIToken = xcToken
	}
	if xcRoot != "" {
		cfg.Tenant.APIRoot = xcRoot
	}
	if xcTimeout > 0 {
		cfg.Tenant.TimeoutSeconds = xcTimeout
	}
}

// resolveCredentials prompts on in for a tenant or token still missing after config and flags.
func resolveCredentials(cfg *config.Config, in io.Reader, out io.Writer) error {
	if cfg.Tenant.Name != "" && cfg.Tenant.APIToken != "" {
		return nil
	}

	reader := bufio.NewReader(in)

	if cfg.Tenant.Name == "" {
		value, err := prompt(reader, out, "Enter F5 XC Tenant: ")
		if err != nil {
			return err
		}
		cfg.Tenant.Name = value
	}
	if cfg.Tenant.APIToken == "" {
		value, err := prompt(reader, out, "Enter F5 XC Token: ")
		if err != nil {
			return err
		}
		cfg.Tenant.APIToken = value
	}

	if cfg.Tenant.Name == "" {
		return fmt.Errorf("tenant is required (--tenant, XC_TENANT or tenant.name)")
	}
	if cfg.Tenant.APIToken == "" {
		return fmt.Errorf("API token is required (--token, XC_API_TOKEN or tenant.api_token)")
	}
	return nil
}

func prompt(reader *bufio.Reader, out io.Writer, label string) (string, error) {
	fmt.Fprintf(out, "\n%s", label)
	line, err := reader.ReadString('\n')
	if err != nil && err != io.EOF {
		return "", fmt.Errorf("failed to read input: %w", err)
	}
	return strings.TrimSpace(line), nil
}
