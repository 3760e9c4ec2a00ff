// Package registry maps logical tool names onto upstream endpoints.
package registry

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/dealermate/dealermate-server/pkg/platformerrors"
)

// Entry is one routable tool.
type Entry struct {
	Name     string `json:"name" yaml:"name"`
	Upstream string `json:"upstream" yaml:"upstream"`
	Path     string `json:"path" yaml:"path"`
}

// URL joins the upstream base and the tool path.
func (e Entry) URL() string {
	return e.Upstream + e.Path
}

// Bases holds the base address of every upstream provider.
type Bases struct {
	Inventory string
	History   string
	Pricing   string
}

// Registry is immutable once built; it is safe for concurrent readers.
type Registry struct {
	entries map[string]Entry
	sorted  []Entry
}

// Defaults returns the built-in routing table.
func Defaults(b Bases) []Entry {
	inventory := trimBase(b.Inventory)
	history := trimBase(b.History)
	pricing := trimBase(b.Pricing)

	return []Entry{
		{Name: "inventory.get_car_by_plate", Upstream: inventory, Path: "/tools/get_car_by_plate"},
		{Name: "inventory.search_listings", Upstream: inventory, Path: "/tools/search_listings"},
		{Name: "inventory.search_listings_filtered", Upstream: inventory, Path: "/tools/search_listings_filtered"},
		{Name: "inventory.get_filter_options", Upstream: inventory, Path: "/tools/get_filter_options"},
		{Name: "inventory.compare_listings", Upstream: inventory, Path: "/tools/compare_listings"},
		{Name: "history.get_vehicle_registry_summary", Upstream: history, Path: "/tools/get_vehicle_registry_summary"},
		{Name: "history.get_maintenance_history", Upstream: history, Path: "/tools/get_maintenance_history"},
		{Name: "pricing.get_market_price", Upstream: pricing, Path: "/tools/get_market_price"},
		{Name: "boss.get_monthly_sales_stats", Upstream: inventory, Path: "/tools/get_monthly_sales_stats"},
	}
}

// New validates entries and freezes them into a Registry.
func New(entries []Entry) (*Registry, error) {
	r := &Registry{
		entries: make(map[string]Entry, len(entries)),
		sorted:  make([]Entry, 0, len(entries)),
	}
	for _, e := range entries {
		e.Name = strings.TrimSpace(e.Name)
		e.Upstream = trimBase(e.Upstream)
		e.Path = strings.TrimSpace(e.Path)

		if e.Name == "" {
			return nil, fmt.Errorf("registry entry with empty name")
		}
		if e.Upstream == "" {
			return nil, fmt.Errorf("registry entry %q has no upstream", e.Name)
		}
		if !strings.HasPrefix(e.Path, "/") {
			return nil, fmt.Errorf("registry entry %q path must start with /", e.Name)
		}
		if _, dup := r.entries[e.Name]; dup {
			return nil, fmt.Errorf("duplicate registry entry %q", e.Name)
		}
		r.entries[e.Name] = e
		r.sorted = append(r.sorted, e)
	}
	sort.Slice(r.sorted, func(i, j int) bool { return r.sorted[i].Name < r.sorted[j].Name })
	return r, nil
}

// Resolve looks up a tool by logical name.
func (r *Registry) Resolve(ctx context.Context, name string) (Entry, error) {
	entry, ok := r.entries[name]
	if !ok {
		return Entry{}, platformerrors.NewErrorWithContext(ctx, platformerrors.LayerDomain, platformerrors.ErrorTypeNotFound,
			"Unknown tool", nil, "registry-resolve-001", map[string]any{"tool": name})
	}
	return entry, nil
}

// List returns every entry ordered by name.
func (r *Registry) List() []Entry {
	out := make([]Entry, len(r.sorted))
	copy(out, r.sorted)
	return out
}

// Size returns the number of routable tools.
func (r *Registry) Size() int {
	return len(r.entries)
}

func trimBase(base string) string {
	return strings.TrimRight(strings.TrimSpace(base), "/")
}
