package registry

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// fileSpec is the on-disk registry layout:
//
//	upstreams:
//	  inventory: http://mcp-inventory:8000
//	tools:
//	  - name: inventory.search_listings
//	    upstream: inventory
//	    path: /tools/search_listings
type fileSpec struct {
	Upstreams map[string]string `yaml:"upstreams"`
	Tools     []Entry           `yaml:"tools"`
}

// LoadFile reads a registry file. Upstream fields may name an entry of the
// file's upstreams block, one of inventory/history/pricing, or a full URL.
func LoadFile(path string, bases Bases) ([]Entry, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read registry file: %w", err)
	}
	return Parse(raw, bases)
}

// Parse decodes registry YAML.
func Parse(raw []byte, bases Bases) ([]Entry, error) {
	var spec fileSpec
	if err := yaml.Unmarshal(raw, &spec); err != nil {
		return nil, fmt.Errorf("decode registry file: %w", err)
	}
	if len(spec.Tools) == 0 {
		return nil, fmt.Errorf("registry file declares no tools")
	}

	named := map[string]string{
		"inventory": bases.Inventory,
		"history":   bases.History,
		"pricing":   bases.Pricing,
	}
	for k, v := range spec.Upstreams {
		named[k] = v
	}

	entries := make([]Entry, 0, len(spec.Tools))
	for _, tool := range spec.Tools {
		upstream := strings.TrimSpace(tool.Upstream)
		if base, ok := named[upstream]; ok {
			upstream = base
		} else if !strings.Contains(upstream, "://") {
			return nil, fmt.Errorf("tool %q references unknown upstream %q", tool.Name, tool.Upstream)
		}
		entries = append(entries, Entry{Name: tool.Name, Upstream: upstream, Path: tool.Path})
	}
	return entries, nil
}
