// Package masking redacts personal data before it leaves a service boundary.
package masking

import "github.com/dealermate/dealermate-server/pkg/toolvalue"

// Marker replaces every sensitive value.
const Marker = "***"

// DefaultSensitiveKeys lists the map keys whose values are always redacted.
var DefaultSensitiveKeys = []string{"phone", "email", "resident_no", "address", "kakao", "name"}

// Policy redacts values stored under sensitive keys at any depth.
type Policy struct {
	keys   map[string]struct{}
	marker toolvalue.Value
}

// NewPolicy builds a policy for the given keys, or DefaultSensitiveKeys when none are given.
func NewPolicy(keys ...string) *Policy {
	if len(keys) == 0 {
		keys = DefaultSensitiveKeys
	}
	set := make(map[string]struct{}, len(keys))
	for _, k := range keys {
		set[k] = struct{}{}
	}
	return &Policy{keys: set, marker: toolvalue.String(Marker)}
}

// IsSensitive reports whether values under key are redacted.
func (p *Policy) IsSensitive(key string) bool {
	_, ok := p.keys[key]
	return ok
}

// Mask returns a copy of v with sensitive map entries replaced by Marker.
// Lists are walked element-wise and scalars are returned unchanged.
// The input is never modified.
func (p *Policy) Mask(v toolvalue.Value) toolvalue.Value {
	switch v.Kind() {
	case toolvalue.KindMap:
		src := v.Map()
		dst := toolvalue.NewMap()
		for pair := src.Oldest(); pair != nil; pair = pair.Next() {
			if p.IsSensitive(pair.Key) {
				dst.Set(pair.Key, p.marker)
				continue
			}
			dst.Set(pair.Key, p.Mask(pair.Value))
		}
		return toolvalue.Object(dst)
	case toolvalue.KindList:
		items := v.Items()
		out := make([]toolvalue.Value, len(items))
		for i, item := range items {
			out[i] = p.Mask(item)
		}
		return toolvalue.List(out...)
	default:
		return v
	}
}
