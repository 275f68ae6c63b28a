package baseline

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/jessequinn/xc-inventory-cli/pkg/report"
	"github.com/jessequinn/xc-inventory-cli/pkg/xc"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeFetcher serves canned namespaces and collections, mirroring xc.Client exclusion rules
type fakeFetcher struct {
	namespaces   []string
	listErr      error
	resources    map[string][]string
	errs         map[string]error
	resourceHits []string
}

func (f *fakeFetcher) ListNamespaces(ctx context.Context, exclude ...string) ([]xc.Namespace, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	var out []xc.Namespace
	for _, name := range f.namespaces {
		skip := false
		for _, ex := range exclude {
			if strings.EqualFold(name, ex) {
				skip = true
			}
		}
		if !skip {
			out = append(out, xc.Namespace{Name: name})
		}
	}
	return out, nil
}

func (f *fakeFetcher) ListResources(ctx context.Context, namespace string, kind xc.Kind) ([]xc.Resource, error) {
	f.resourceHits = append(f.resourceHits, namespace)
	if err := f.errs[namespace]; err != nil {
		return nil, err
	}
	var out []xc.Resource
	for _, name := range f.resources[namespace] {
		out = append(out, xc.Resource{Name: name})
	}
	return out, nil
}

func firewallOptions() Options {
	return Options{Namespace: DefaultNamespace, Kind: xc.KindAppFirewall}
}

func TestDiffer_Diff(t *testing.T) {
	fetcher := &fakeFetcher{
		resources: map[string][]string{
			"shared": {"fw-common"},
			"ns1":    {"fw-common", "fw-extra"},
		},
	}

	differ, err := NewDiffer(context.Background(), fetcher, "shared", xc.KindAppFirewall)
	require.NoError(t, err)

	diffs, err := differ.Diff(context.Background(), "ns1")
	require.NoError(t, err)
	assert.Equal(t, []report.Difference{{Namespace: "ns1", Name: "fw-extra"}}, diffs)
}

func TestDiffer_CaseSensitiveNames(t *testing.T) {
	fetcher := &fakeFetcher{
		resources: map[string][]string{
			"shared": {"fw-common"},
			"ns1":    {"FW-Common"},
		},
	}

	differ, err := NewDiffer(context.Background(), fetcher, "shared", xc.KindAppFirewall)
	require.NoError(t, err)

	diffs, err := differ.Diff(context.Background(), "ns1")
	require.NoError(t, err)
	assert.Equal(t, []report.Difference{{Namespace: "ns1", Name: "FW-Common"}}, diffs)
}

func TestDiffer_SetIsCopy(t *testing.T) {
	fetcher := &fakeFetcher{resources: map[string][]string{"shared": {"a"}}}

	differ, err := NewDiffer(context.Background(), fetcher, "shared", xc.KindAppFirewall)
	require.NoError(t, err)

	set := differ.Set()
	set["b"] = struct{}{}
	assert.Equal(t, []string{"a"}, differ.Set().Names())
}

func TestNewDiffer_BaselineUnavailable(t *testing.T) {
	cause := &xc.TransportError{URL: "https://t/api", Err: errors.New("connection refused")}
	fetcher := &fakeFetcher{errs: map[string]error{"shared": cause}}

	_, err := NewDiffer(context.Background(), fetcher, "shared", xc.KindAppFirewall)
	require.Error(t, err)

	var unavailable *xc.BaselineUnavailable
	require.True(t, errors.As(err, &unavailable))
	assert.Equal(t, "shared", unavailable.Namespace)

	var transport *xc.TransportError
	assert.True(t, errors.As(err, &transport))
}

func TestAnalyzer_Run_EndToEnd(t *testing.T) {
	fetcher := &fakeFetcher{
		namespaces: []string{"shared", "team-a", "team-b"},
		resources: map[string][]string{
			"shared": {"base-waf"},
			"team-a": {"base-waf", "custom-a"},
			"team-b": {},
		},
	}

	a := NewAnalyzer(fetcher, "acme", firewallOptions(), nil)
	rpt, err := a.Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, []report.Difference{{Namespace: "team-a", Name: "custom-a"}}, rpt.Differences)
	assert.Empty(t, rpt.Errors)
	assert.Equal(t, 2, rpt.NamespacesScanned)
	assert.Equal(t, []string{"base-waf"}, rpt.BaselineNames)
	assert.Equal(t, 1, a.GetFindingCount())
}

func TestAnalyzer_Run_ExcludesBaselineAnyCase(t *testing.T) {
	fetcher := &fakeFetcher{
		namespaces: []string{"Shared", "team-a"},
		resources: map[string][]string{
			"shared": {"base-waf"},
			"Shared": {"base-waf", "should-not-appear"},
			"team-a": {"custom-a"},
		},
	}

	rpt, err := NewAnalyzer(fetcher, "acme", firewallOptions(), nil).Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, []report.Difference{{Namespace: "team-a", Name: "custom-a"}}, rpt.Differences)
	assert.Equal(t, 1, rpt.NamespacesScanned)
}

func TestAnalyzer_Run_PartialFailure(t *testing.T) {
	fetcher := &fakeFetcher{
		namespaces: []string{"shared", "ns1", "ns2", "ns3"},
		resources: map[string][]string{
			"shared": {"fw-common"},
			"ns1":    {"fw-common", "fw-one"},
			"ns3":    {"fw-three", "fw-common"},
		},
		errs: map[string]error{
			"ns2": &xc.HTTPError{StatusCode: 500, Body: "internal"},
		},
	}

	rpt, err := NewAnalyzer(fetcher, "acme", firewallOptions(), nil).Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, []report.Difference{
		{Namespace: "ns1", Name: "fw-one"},
		{Namespace: "ns3", Name: "fw-three"},
	}, rpt.Differences)
	require.Len(t, rpt.Errors, 1)
	assert.Equal(t, "ns2", rpt.Errors[0].Namespace)
	assert.Contains(t, rpt.Errors[0].Message, "500")
	assert.Empty(t, rpt.DifferencesFor("ns2"))
}

func TestAnalyzer_Run_BaselineFailureIsFatal(t *testing.T) {
	fetcher := &fakeFetcher{
		namespaces: []string{"shared", "ns1"},
		resources:  map[string][]string{"ns1": {"fw"}},
		errs: map[string]error{
			"shared": &xc.TransportError{URL: "https://t/api", Err: errors.New("dial tcp: timeout")},
		},
	}

	a := NewAnalyzer(fetcher, "acme", firewallOptions(), nil)
	rpt, err := a.Run(context.Background())
	require.Error(t, err)
	assert.Nil(t, rpt)

	var unavailable *xc.BaselineUnavailable
	assert.True(t, errors.As(err, &unavailable))
	assert.Equal(t, []string{"shared"}, fetcher.resourceHits, "no namespace should be diffed")

	_, err = a.GenerateReport()
	assert.Error(t, err)
}

func TestAnalyzer_Run_NamespaceListFailureIsFatal(t *testing.T) {
	fetcher := &fakeFetcher{
		listErr:   &xc.HTTPError{StatusCode: 403, Body: "forbidden"},
		resources: map[string][]string{"shared": {"fw"}},
	}

	_, err := NewAnalyzer(fetcher, "acme", firewallOptions(), nil).Run(context.Background())
	require.Error(t, err)

	var httpErr *xc.HTTPError
	require.True(t, errors.As(err, &httpErr))
	assert.Equal(t, 403, httpErr.StatusCode)
}

func TestAnalyzer_Run_Idempotent(t *testing.T) {
	fetcher := &fakeFetcher{
		namespaces: []string{"shared", "team-a", "team-b"},
		resources: map[string][]string{
			"shared": {"base-waf"},
			"team-a": {"custom-2", "base-waf", "custom-1"},
			"team-b": {"custom-b"},
		},
	}
	a := NewAnalyzer(fetcher, "acme", firewallOptions(), nil)

	first, err := a.Run(context.Background())
	require.NoError(t, err)
	second, err := a.Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, first.Differences, second.Differences)
	assert.Equal(t, first.Errors, second.Errors)
	assert.Equal(t, []report.Difference{
		{Namespace: "team-a", Name: "custom-2"},
		{Namespace: "team-a", Name: "custom-1"},
		{Namespace: "team-b", Name: "custom-b"},
	}, first.Differences)
}

func TestOptions_Validate(t *testing.T) {
	tests := []struct {
		name    string
		opts    Options
		wantErr bool
	}{
		{"valid", Options{Namespace: "shared", Kind: xc.KindAppFirewall}, false},
		{"missing namespace", Options{Kind: xc.KindAppFirewall}, true},
		{"unknown kind", Options{Namespace: "shared", Kind: "routes"}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.opts.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

// newStallingTenant serves firewall collections and holds the stall namespace past any client timeout.
func newStallingTenant(t *testing.T, namespaces []string, firewalls map[string][]string, stall string) *xc.Client {
	t.Helper()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/api/web/namespaces" {
			writeNames(w, namespaces)
			return
		}
		ns := strings.Split(strings.TrimPrefix(r.URL.Path, "/api/config/namespaces/"), "/")[0]
		if ns == stall {
			select {
			case <-r.Context().Done():
			case <-time.After(5 * time.Second):
			}
			return
		}
		writeNames(w, firewalls[ns])
	}))
	t.Cleanup(srv.Close)

	client, err := xc.NewClient(xc.Config{
		TenantName:     "acme",
		Credential:     "tok",
		APIRoot:        srv.URL + "/api",
		TimeoutSeconds: 1,
	}, nil)
	require.NoError(t, err)
	return client
}

func writeNames(w http.ResponseWriter, names []string) {
	items := make([]map[string]any, 0, len(names))
	for _, n := range names {
		items = append(items, map[string]any{"name": n})
	}
	_ = json.NewEncoder(w).Encode(map[string]any{"items": items})
}

func TestAnalyzer_Run_RequestTimeoutIsolated(t *testing.T) {
	client := newStallingTenant(t,
		[]string{"shared", "ns1", "ns2", "ns3"},
		map[string][]string{
			"shared": {"fw-common"},
			"ns1":    {"fw-common", "fw-one"},
			"ns3":    {"fw-three"},
		},
		"ns2")

	rpt, err := NewAnalyzer(client, "acme", firewallOptions(), nil).Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, []report.Difference{
		{Namespace: "ns1", Name: "fw-one"},
		{Namespace: "ns3", Name: "fw-three"},
	}, rpt.Differences)
	assert.Equal(t, 3, rpt.NamespacesScanned)
	require.Len(t, rpt.Errors, 1)
	assert.Equal(t, "ns2", rpt.Errors[0].Namespace)
	assert.Contains(t, rpt.Errors[0].Message, "transport error")
}

// cancelingFetcher cancels the run while fetching one namespace
type cancelingFetcher struct {
	*fakeFetcher
	at     string
	cancel context.CancelFunc
}

func (f *cancelingFetcher) ListResources(ctx context.Context, namespace string, kind xc.Kind) ([]xc.Resource, error) {
	if namespace == f.at {
		f.cancel()
		return nil, &xc.TransportError{URL: namespace, Err: ctx.Err()}
	}
	return f.fakeFetcher.ListResources(ctx, namespace, kind)
}

func TestAnalyzer_Run_CanceledRunAborts(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	fetcher := &cancelingFetcher{
		fakeFetcher: &fakeFetcher{
			namespaces: []string{"shared", "ns1", "ns2"},
			resources:  map[string][]string{"shared": {"fw"}},
		},
		at:     "ns1",
		cancel: cancel,
	}

	rpt, err := NewAnalyzer(fetcher, "acme", firewallOptions(), nil).Run(ctx)
	require.ErrorIs(t, err, context.Canceled)
	assert.Nil(t, rpt)
	assert.NotContains(t, fetcher.resourceHits, "ns2")
}

func TestAnalyzer_Run_TrimsBaselineNamespace(t *testing.T) {
	fetcher := &fakeFetcher{
		namespaces: []string{"shared", "team-a"},
		resources: map[string][]string{
			"shared": {"base-waf"},
			"team-a": {"base-waf", "custom-a"},
		},
	}

	rpt, err := NewAnalyzer(fetcher, "acme", Options{Namespace: " shared ", Kind: xc.KindAppFirewall}, nil).Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, "shared", rpt.BaselineNamespace)
	assert.Equal(t, []string{"shared", "team-a"}, fetcher.resourceHits)
	assert.Equal(t, []report.Difference{{Namespace: "team-a", Name: "custom-a"}}, rpt.Differences)
}
