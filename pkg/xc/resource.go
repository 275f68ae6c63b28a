package xc

import (
	"context"
	"fmt"
	"net/url"
	"strings"
)

const namespacesPath = "/web/namespaces"

// Namespace is a named scope within a tenant.
type Namespace struct {
	Name     string         `json:"name" yaml:"name"`
	Metadata map[string]any `json:"-" yaml:"-"`
}

// Resource is one entry of a namespace-scoped collection.
// Metadata holds the raw item and is not interpreted.
type Resource struct {
	Name     string         `json:"name" yaml:"name"`
	Metadata map[string]any `json:"-" yaml:"-"`
}

// ListNamespaces returns the tenant's namespaces in server order, dropping any
// whose name equals an exclude entry ignoring case.
func (c *Client) ListNamespaces(ctx context.Context, exclude ...string) ([]Namespace, error) {
	body, err := c.Request(ctx, namespacesPath)
	if err != nil {
		return nil, err
	}

	var namespaces []Namespace
	for _, item := range extractItems(body) {
		if isExcluded(item.name, exclude) {
			continue
		}
		namespaces = append(namespaces, Namespace{Name: item.name, Metadata: item.raw})
	}

	return namespaces, nil
}

// ListResources fetches the kind's collection in one namespace.
// A response without an items list yields an empty slice.
// Client errors are returned as-is.
func (c *Client) ListResources(ctx context.Context, namespace string, kind Kind) ([]Resource, error) {
	if !kind.Valid() {
		return nil, fmt.Errorf("unknown resource kind %q", kind)
	}

	body, err := c.Request(ctx, ResourcePath(namespace, kind))
	if err != nil {
		return nil, err
	}

	items := extractItems(body)
	resources := make([]Resource, 0, len(items))
	for _, item := range items {
		resources = append(resources, Resource{Name: item.name, Metadata: item.raw})
	}

	return resources, nil
}

// ResourcePath builds the namespace-scoped endpoint for a kind.
func ResourcePath(namespace string, kind Kind) string {
	return fmt.Sprintf("/config/namespaces/%s/%s", url.PathEscape(namespace), kind.Collection())
}

type namedItem struct {
	name string
	raw  map[string]any
}

// extractItems reads body["items"]. Missing or non-list items mean an empty
// collection. Entries that are not objects or have no string name are skipped.
func extractItems(body map[string]any) []namedItem {
	list, ok := body["items"].([]any)
	if !ok {
		return nil
	}

	items := make([]namedItem, 0, len(list))
	for _, entry := range list {
		obj, ok := entry.(map[string]any)
		if !ok {
			continue
		}
		name, ok := obj["name"].(string)
		if !ok || name == "" {
			continue
		}
		items = append(items, namedItem{name: name, raw: obj})
	}
	return items
}

func isExcluded(name string, exclude []string) bool {
	for _, ex := range exclude {
		if strings.EqualFold(name, strings.TrimSpace(ex)) {
			return true
		}
	}
	return false
}
