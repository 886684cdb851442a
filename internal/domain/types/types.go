// Package types contains common types used across the application
package types

import (
	"sort"
	"strings"
)

// Sentinels for "no restriction" on either selector.
const (
	AllRegions       = "ALL"
	AllJurisdictions = "ALL"
)

// Selection is the caller's region and jurisdiction choice.
type Selection struct {
	Region        string   `json:"region"`
	Jurisdictions []string `json:"states"`
}

// Normalize returns the canonical form of s: an empty region becomes
// AllRegions, blank names are dropped, and a jurisdiction list that is
// empty or contains the sentinel becomes nil (no jurisdiction filter).
func (s Selection) Normalize() Selection {
	out := Selection{Region: strings.TrimSpace(s.Region)}
	if out.Region == "" {
		out.Region = AllRegions
	}

	names := make([]string, 0, len(s.Jurisdictions))
	for _, j := range s.Jurisdictions {
		j = strings.TrimSpace(j)
		if j == "" {
			continue
		}
		if j == AllJurisdictions {
			return out
		}
		names = append(names, j)
	}
	if len(names) > 0 {
		out.Jurisdictions = names
	}
	return out
}

// AllRegionsSelected reports whether the region selector is the sentinel.
func (s Selection) AllRegionsSelected() bool {
	return s.Region == "" || s.Region == AllRegions
}

// AllJurisdictionsSelected reports whether no jurisdiction filter applies.
func (s Selection) AllJurisdictionsSelected() bool {
	return len(s.Normalize().Jurisdictions) == 0
}

// Key is a stable cache key; jurisdiction order does not matter.
func (s Selection) Key() string {
	n := s.Normalize()
	names := append([]string(nil), n.Jurisdictions...)
	sort.Strings(names)
	if len(names) == 0 {
		names = []string{AllJurisdictions}
	}
	return n.Region + "|" + strings.Join(names, ",")
}
