package cmd

import (
	"fmt"
	"io"

	"github.com/jessequinn/xc-inventory-cli/pkg/report"
	"github.com/jessequinn/xc-inventory-cli/pkg/tui"
)

// formattable is implemented by every report the xc commands produce
type formattable interface {
	FormatText() string
	FormatJSON() (string, error)
	FormatYAML() (string, error)
}

func validateOutputFormat(format string) error {
	switch format {
	case "text", "json", "yaml", "tui":
		return nil
	default:
		return fmt.Errorf("unsupported output format %q (text|json|yaml|tui)", format)
	}
}

// writeReport renders r to outputFile, or to w when it is empty. The tui format ignores both.
func writeReport(w io.Writer, r formattable, format, outputFile string, data func() tui.ReportData) error {
	var (
		output string
		err    error
	)

	switch format {
	case "tui":
		return tui.Run(data())
	case "json":
		output, err = r.FormatJSON()
		if err != nil {
			return fmt.Errorf("failed to format JSON: %w", err)
		}
	case "yaml":
		output, err = r.FormatYAML()
		if err != nil {
			return fmt.Errorf("failed to format YAML: %w", err)
		}
	default:
		output = r.FormatText()
	}

	return report.WriteOutput(w, output, outputFile)
}
