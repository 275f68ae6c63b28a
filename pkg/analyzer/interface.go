package analyzer

import (
	"context"
)

// ResourceAnalyzer defines the interface for walking a tenant's namespaces and reporting on them
type ResourceAnalyzer interface {
	// Analyze walks the tenant and keeps the resulting report for GenerateReport
	Analyze(ctx context.Context) error

	// GenerateReport generates a formatted text report of the last analysis
	GenerateReport() (string, error)

	// GetFindingCount returns the number of reportable findings of the last analysis
	GetFindingCount() int
}

// Baseline defines the interface for a comparison reference
type Baseline interface {
	// GetName returns the name of the reference, e.g. the baseline namespace
	GetName() string

	// Validate checks if the baseline definition is usable
	Validate() error
}
