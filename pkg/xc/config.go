package xc

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"
)

// ErrInvalidConfig indicates the client configuration is incomplete.
var ErrInvalidConfig = errors.New("invalid client configuration")

// Config identifies the tenant API root and the credential used against it.
type Config struct {
	// TenantName is the XC tenant, e.g. "f5-emea-ent".
	TenantName string

	// Credential is the API token, sent as "Authorization: APIToken <Credential>".
	Credential string

	// APIRoot overrides the tenant-derived root.
	// Default: https://{TenantName}.console.ves.volterra.io/api
	APIRoot string

	// TimeoutSeconds bounds each request. Zero keeps the transport default.
	TimeoutSeconds int

	// RequestsPerSecond paces sequential requests. Zero disables pacing.
	RequestsPerSecond float64

	// HTTPClient is used for requests. Optional.
	HTTPClient *http.Client
}

// DefaultAPIRoot returns the console API root for a tenant.
func DefaultAPIRoot(tenant string) string {
	return fmt.Sprintf("https://%s.console.ves.volterra.io/api", tenant)
}

// Validate checks required fields and fills defaults.
func (c *Config) Validate() error {
	c.TenantName = strings.TrimSpace(c.TenantName)
	c.Credential = strings.TrimSpace(c.Credential)

	if c.TenantName == "" {
		return fmt.Errorf("%w: tenant name is required", ErrInvalidConfig)
	}
	if c.Credential == "" {
		return fmt.Errorf("%w: credential is required", ErrInvalidConfig)
	}
	if c.TimeoutSeconds < 0 {
		return fmt.Errorf("%w: timeout_seconds must not be negative", ErrInvalidConfig)
	}
	if c.RequestsPerSecond < 0 {
		return fmt.Errorf("%w: requests_per_second must not be negative", ErrInvalidConfig)
	}

	if c.APIRoot == "" {
		c.APIRoot = DefaultAPIRoot(c.TenantName)
	}
	c.APIRoot = strings.TrimSuffix(strings.TrimSpace(c.APIRoot), "/")
	if !strings.HasPrefix(c.APIRoot, "http://") && !strings.HasPrefix(c.APIRoot, "https://") {
		return fmt.Errorf("%w: api root must start with http:// or https://", ErrInvalidConfig)
	}

	if c.HTTPClient == nil {
		c.HTTPClient = &http.Client{}
		if c.TimeoutSeconds > 0 {
			c.HTTPClient.Timeout = time.Duration(c.TimeoutSeconds) * time.Second
		}
	}

	return nil
}
