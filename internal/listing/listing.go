// Package listing translates raw request parameters into validated,
// injection-safe listing queries against the user store.
package listing

import (
	"strconv"
	"strings"

	"github.com/campuskit/campus-auth/internal/domain"
)

// Limits bounds pagination work.
type Limits struct {
	DefaultPageSize int
	MaxPageSize     int
}

// DefaultLimits mirrors the configuration defaults.
var DefaultLimits = Limits{DefaultPageSize: 10, MaxPageSize: 100}

const (
	defaultSortField = "created"
	// FilterFieldRole and FilterFieldUsername are the only filterable fields.
	FilterFieldRole     = "role"
	FilterFieldUsername = "username"
)

// sortColumns maps allow-listed sort fields to SQL columns. Anything not in
// this map never reaches the store's ORDER BY clause.
var sortColumns = map[string]string{
	"username": "username",
	"role":     "role",
	"created":  "created_at",
}

// Query is a validated, request-scoped listing query.
type Query struct {
	Page      int
	PageSize  int
	SortField string
	SortDesc  bool
	Filters   map[string]string
	Search    string
}

// Parse builds a Query from raw request values. get returns the raw value
// for a parameter name ("" when absent), matching fiber's ctx.Query.
func Parse(get func(string) string, limits Limits) Query {
	if limits.DefaultPageSize <= 0 {
		limits.DefaultPageSize = DefaultLimits.DefaultPageSize
	}
	if limits.MaxPageSize <= 0 {
		limits.MaxPageSize = DefaultLimits.MaxPageSize
	}

	q := Query{
		Page:      parsePositive(get("page"), 1),
		PageSize:  parsePositive(get("limit"), limits.DefaultPageSize),
		SortField: defaultSortField,
		Filters:   map[string]string{},
		Search:    strings.TrimSpace(get("search")),
	}
	if q.PageSize > limits.MaxPageSize {
		q.PageSize = limits.MaxPageSize
	}

	if sort := strings.TrimSpace(get("sort")); sort != "" {
		field := strings.TrimPrefix(sort, "-")
		if _, ok := sortColumns[field]; ok {
			q.SortField = field
			q.SortDesc = strings.HasPrefix(sort, "-")
		}
	}

	if role := strings.TrimSpace(get("filter[role]")); role != "" {
		if parsed, ok := domain.ParseRole(role); ok {
			q.Filters[FilterFieldRole] = string(parsed)
		}
	}
	if username := strings.TrimSpace(get("filter[username]")); username != "" {
		q.Filters[FilterFieldUsername] = username
	}

	return q
}

// Offset computes the row offset for the current page.
func (q Query) Offset() int {
	return (q.Page - 1) * q.PageSize
}

// SortColumn returns the SQL column backing the validated sort field.
func (q Query) SortColumn() string {
	if col, ok := sortColumns[q.SortField]; ok {
		return col
	}
	return sortColumns[defaultSortField]
}

// TotalPages computes the page count for a listing response envelope.
func TotalPages(totalItems, pageSize int) int {
	if pageSize <= 0 || totalItems <= 0 {
		return 0
	}
	return (totalItems + pageSize - 1) / pageSize
}

func parsePositive(raw string, fallback int) int {
	parsed, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil || parsed < 1 {
		return fallback
	}
	return parsed
}
