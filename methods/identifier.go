package methods

import (
	"fmt"
	"strings"

	"github.com/paulmach/orb/geojson"
)

// identifierCandidates are the well-known parcel id property names, checked
// in order. Case variants of each are tried before moving to the next.
var identifierCandidates = []string{
	"account_num",
	"prop_id",
	"geo_id",
}

func caseVariants(name string) []string {
	return []string{name, strings.ToUpper(name), camel(name)}
}

func camel(name string) string {
	parts := strings.Split(name, "_")
	for i, p := range parts {
		if p == "" {
			continue
		}
		parts[i] = strings.ToUpper(p[:1]) + p[1:]
	}
	return strings.Join(parts, "")
}

func stringify(v interface{}) string {
	switch t := v.(type) {
	case string:
		return t
	case float64:
		if t == float64(int64(t)) {
			return fmt.Sprintf("%d", int64(t))
		}
		return fmt.Sprintf("%v", t)
	case int:
		return fmt.Sprintf("%d", t)
	case int64:
		return fmt.Sprintf("%d", t)
	default:
		return ""
	}
}

// ResolveIdentifier extracts a stable parcel identifier from a rendered
// feature: the explicit feature id first, then the well-known property
// candidates in several case variants. ok is false when the feature has no
// usable identifier and selection must stay geometry-only.
func ResolveIdentifier(f *geojson.Feature) (string, bool) {
	if f == nil {
		return "", false
	}
	if id := stringify(f.ID); id != "" {
		return id, true
	}
	for _, candidate := range identifierCandidates {
		for _, key := range caseVariants(candidate) {
			if v, exists := f.Properties[key]; exists {
				if id := stringify(v); id != "" {
					return id, true
				}
			}
		}
	}
	return "", false
}

// MatchesIdentifier reports whether any identifier property of the feature
// equals text, case-insensitively. Used by the client-side search fallback.
func MatchesIdentifier(f *geojson.Feature, text string) bool {
	if f == nil || text == "" {
		return false
	}
	if strings.EqualFold(stringify(f.ID), text) {
		return true
	}
	for _, candidate := range identifierCandidates {
		for _, key := range caseVariants(candidate) {
			if v, exists := f.Properties[key]; exists {
				if strings.EqualFold(stringify(v), text) {
					return true
				}
			}
		}
	}
	return false
}
