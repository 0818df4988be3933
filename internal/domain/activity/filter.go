package activity

import (
	"net/url"
	"strings"
)

// AllValues is the sentinel a client sends for "no constraint".
const AllValues = "all"

// Criteria narrows a record collection. Every non-empty field is ANDed.
type Criteria struct {
	Type   string `json:"type,omitempty"`
	Status string `json:"status,omitempty"`
	Search string `json:"search,omitempty"`
}

// Searchable is implemented by records that can go through Filter.
// SearchFields returns only the nested fields that are present.
type Searchable interface {
	FilterType() string
	FilterStatus() string
	SearchFields() []string
}

// CriteriaFromQuery reads the type, status and search query parameters.
func CriteriaFromQuery(q url.Values) Criteria {
	return Criteria{
		Type:   strings.TrimSpace(q.Get("type")),
		Status: strings.TrimSpace(q.Get("status")),
		Search: strings.TrimSpace(q.Get("search")),
	}
}

func unconstrained(v string) bool {
	return v == "" || v == AllValues
}

// Matches reports whether a single record satisfies every criterion.
func (c Criteria) Matches(r Searchable) bool {
	if !unconstrained(c.Type) && r.FilterType() != c.Type {
		return false
	}
	if !unconstrained(c.Status) && r.FilterStatus() != c.Status {
		return false
	}
	if c.Search == "" {
		return true
	}

	term := strings.ToLower(c.Search)
	for _, field := range r.SearchFields() {
		if strings.Contains(strings.ToLower(field), term) {
			return true
		}
	}
	return false
}

// Filter returns the records matching c in their original order. The input
// slice is never modified.
func Filter[T Searchable](items []T, c Criteria) []T {
	out := make([]T, 0, len(items))
	for _, item := range items {
		if c.Matches(item) {
			out = append(out, item)
		}
	}
	return out
}
