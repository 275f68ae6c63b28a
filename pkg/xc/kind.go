package xc

import (
	"fmt"
	"strings"
)

// Kind is a namespace-scoped resource collection.
type Kind string

const (
	KindNetworkInterface Kind = "network_interface"
	KindLoadBalancer     Kind = "load_balancer"
	KindTCPLoadBalancer  Kind = "tcp_load_balancer"
	KindOriginPool       Kind = "origin_pool"
	KindAppFirewall      Kind = "app_firewall"
)

type kindInfo struct {
	collection string
	title      string
}

var kinds = map[Kind]kindInfo{
	KindNetworkInterface: {collection: "network_interfaces", title: "Network Interfaces"},
	KindLoadBalancer:     {collection: "http_loadbalancers", title: "Load Balancers"},
	KindTCPLoadBalancer:  {collection: "tcp_loadbalancers", title: "TCP Load Balancers"},
	KindOriginPool:       {collection: "origin_pools", title: "Origin Pools"},
	KindAppFirewall:      {collection: "app_firewalls", title: "App Firewalls"},
}

// AllKinds lists every supported kind in display order.
func AllKinds() []Kind {
	return []Kind{
		KindNetworkInterface,
		KindLoadBalancer,
		KindTCPLoadBalancer,
		KindOriginPool,
		KindAppFirewall,
	}
}

// Valid reports whether k is a supported kind.
func (k Kind) Valid() bool {
	_, ok := kinds[k]
	return ok
}

// Collection returns the URL path segment of the kind's collection.
func (k Kind) Collection() string {
	return kinds[k].collection
}

// Title returns a human readable plural name, e.g. "Load Balancers".
func (k Kind) Title() string {
	if info, ok := kinds[k]; ok {
		return info.title
	}
	return string(k)
}

// ParseKind accepts either the kind name or its collection segment.
func ParseKind(s string) (Kind, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	for k, info := range kinds {
		if s == string(k) || s == info.collection {
			return k, nil
		}
	}
	return "", fmt.Errorf("unknown resource kind %q", s)
}

// ParseKinds parses a comma-separated kind list, dropping duplicates.
func ParseKinds(csv string) ([]Kind, error) {
	var result []Kind
	seen := make(map[Kind]bool)
	for _, part := range strings.Split(csv, ",") {
		if strings.TrimSpace(part) == "" {
			continue
		}
		k, err := ParseKind(part)
		if err != nil {
			return nil, err
		}
		if seen[k] {
			continue
		}
		seen[k] = true
		result = append(result, k)
	}
	if len(result) == 0 {
		return nil, fmt.Errorf("no resource kinds specified")
	}
	return result, nil
}
