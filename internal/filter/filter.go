// Package filter translates browse criteria between their navigable form (a
// canonical query string) and a listing predicate.
package filter

import (
	"net/url"
	"strings"

	"jobboard/internal/domain/listing"
)

const (
	KeySearch   = "search"
	KeyLocation = "location"
	KeyType     = "type"
)

// State is the current search/browse criteria. Every attribute is optional;
// present attributes combine with AND.
type State struct {
	Search   string `json:"search,omitempty"`
	Location string `json:"location,omitempty"`
	Type     string `json:"type,omitempty"`
}

// IsEmpty reports whether s constrains nothing. Whitespace-only attributes
// count as empty.
func (s State) IsEmpty() bool {
	n := s.Trimmed()
	return n.Search == "" && n.Location == "" && n.Type == ""
}

// Trimmed returns s with surrounding whitespace removed from every attribute.
func (s State) Trimmed() State {
	return State{
		Search:   strings.TrimSpace(s.Search),
		Location: strings.TrimSpace(s.Location),
		Type:     strings.TrimSpace(s.Type),
	}
}

// Encode returns the canonical query string for s: attributes are trimmed,
// blank ones are omitted and keys are sorted.
func Encode(s State) string {
	s = s.Trimmed()
	v := url.Values{}
	if s.Search != "" {
		v.Set(KeySearch, s.Search)
	}
	if s.Location != "" {
		v.Set(KeyLocation, s.Location)
	}
	if s.Type != "" {
		v.Set(KeyType, s.Type)
	}
	return v.Encode()
}

// Decode parses a query string, with or without the leading '?'. Unknown keys
// and undecodable pairs are ignored; for repeated keys the first value wins.
func Decode(raw string) State {
	raw = strings.TrimPrefix(raw, "?")
	v, _ := url.ParseQuery(raw)
	return State{
		Search:   v.Get(KeySearch),
		Location: v.Get(KeyLocation),
		Type:     v.Get(KeyType),
	}
}

// Path joins base and the canonical query string of s.
func (s State) Path(base string) string {
	q := Encode(s)
	if q == "" {
		return base
	}
	return base + "?" + q
}

// ToPredicate builds the listing predicate for s. Blank attributes are absent,
// so the empty State matches every listing.
func ToPredicate(s State) listing.Predicate {
	s = s.Trimmed()
	return listing.Predicate{
		Query:    s.Search,
		Location: s.Location,
		Category: listing.Category(s.Type),
	}
}
