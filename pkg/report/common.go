package report

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Entry is one enumerated resource.
type Entry struct {
	Namespace string `json:"namespace" yaml:"namespace"`
	Kind      string `json:"kind" yaml:"kind"`
	Name      string `json:"name" yaml:"name"`
}

// Difference is a resource present in a namespace but absent from the baseline.
type Difference struct {
	Namespace string `json:"namespace" yaml:"namespace"`
	Name      string `json:"name" yaml:"name"`
}

// NamespaceError records a fetch that failed for one namespace without aborting the run.
type NamespaceError struct {
	Namespace string `json:"namespace" yaml:"namespace"`
	Kind      string `json:"kind,omitempty" yaml:"kind,omitempty"`
	Message   string `json:"message" yaml:"message"`
}

// Status markers used by text reports
const (
	MarkerOK    = "[OK]"
	MarkerEmpty = "[-]"
	MarkerError = "[!]"
	MarkerDiff  = "[*]"
)

// FormatDifferences renders differences as "namespace: name" lines in the given order.
func FormatDifferences(diffs []Difference) string {
	var sb strings.Builder
	if len(diffs) == 0 {
		sb.WriteString(MarkerOK + " No namespace-specific resources found\n")
		return sb.String()
	}
	for _, d := range diffs {
		sb.WriteString(fmt.Sprintf("%s: %s\n", d.Namespace, d.Name))
	}
	return sb.String()
}

// FormatErrors renders per-namespace failures. Empty input renders nothing.
func FormatErrors(errs []NamespaceError) string {
	var sb strings.Builder
	if len(errs) == 0 {
		return ""
	}
	sb.WriteString(fmt.Sprintf("Errors: %d\n", len(errs)))
	for _, e := range errs {
		if e.Kind != "" {
			sb.WriteString(fmt.Sprintf("  %s %s (%s): %s\n", MarkerError, e.Namespace, e.Kind, e.Message))
		} else {
			sb.WriteString(fmt.Sprintf("  %s %s: %s\n", MarkerError, e.Namespace, e.Message))
		}
	}
	sb.WriteString("\n")
	return sb.String()
}

// MarshalJSON renders v as indented JSON.
func MarshalJSON(v any) (string, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to marshal JSON: %w", err)
	}
	return string(data), nil
}

// MarshalYAML renders v as YAML.
func MarshalYAML(v any) (string, error) {
	data, err := yaml.Marshal(v)
	if err != nil {
		return "", fmt.Errorf("failed to marshal YAML: %w", err)
	}
	return string(data), nil
}

// WriteOutput writes output to path, or to w when path is empty.
func WriteOutput(w io.Writer, output, path string) error {
	if path != "" {
		if err := os.WriteFile(path, []byte(output), 0644); err != nil {
			return fmt.Errorf("failed to write output file: %w", err)
		}
		return nil
	}
	if _, err := fmt.Fprintln(w, output); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}
