package dto

import (
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
)

const (
	DefaultLimit = 20
	MaxLimit     = 200
)

// ListQuery carries the uniform list parameters shared by every collection
// endpoint: free-text search, a creation-date range, a whitelisted sort and
// optional paging. When neither page nor limit was supplied, Paged is false
// and the endpoint returns the full unpaginated result set.
type ListQuery struct {
	Search string
	SortBy string // resolved column name, always from the whitelist
	Order  string // "asc" or "desc"

	Page  int
	Limit int
	Paged bool

	From *time.Time
	To   *time.Time
}

// ParseListQuery reads the query string. allowed maps the public sort keys
// (camelCase, as exposed in the API) to column names; anything outside it,
// including hostile values like "__proto__", silently falls back to
// defaultSort.
func ParseListQuery(c *gin.Context, allowed map[string]string, defaultSort string) ListQuery {
	q := ListQuery{
		Search: strings.TrimSpace(c.Query("search")),
		Order:  "desc",
		Page:   1,
		Limit:  DefaultLimit,
	}

	q.SortBy = defaultSort
	if col, ok := allowed[c.Query("sortBy")]; ok {
		q.SortBy = col
	}

	if strings.EqualFold(c.Query("order"), "asc") {
		q.Order = "asc"
	}

	pageStr, hasPage := c.GetQuery("page")
	limitStr, hasLimit := c.GetQuery("limit")
	q.Paged = hasPage || hasLimit

	if page, err := strconv.Atoi(pageStr); err == nil && page > 1 {
		q.Page = page
	}
	if limit, err := strconv.Atoi(limitStr); err == nil && limit >= 1 {
		q.Limit = limit
	}
	if q.Limit > MaxLimit {
		q.Limit = MaxLimit
	}

	q.From = parseDateQuery(c.Query("from"), false)
	q.To = parseDateQuery(c.Query("to"), true)

	return q
}

// parseDateQuery accepts RFC 3339 or a bare date. A bare "to" date is pushed
// to the end of that day so the range is inclusive.
func parseDateQuery(s string, endOfDay bool) *time.Time {
	if s == "" {
		return nil
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return &t
	}
	if t, err := time.Parse("2006-01-02", s); err == nil {
		if endOfDay {
			t = t.Add(24 * time.Hour)
		}
		return &t
	}
	return nil
}

// SortClause renders "column ASC|DESC" for the query builder. SortBy only
// ever holds whitelisted column names, never caller input.
func (q ListQuery) SortClause() string {
	dir := "DESC"
	if q.Order == "asc" {
		dir = "ASC"
	}
	return q.SortBy + " " + dir
}

func (q ListQuery) Offset() int {
	return (q.Page - 1) * q.Limit
}

// PublicSortKey maps the resolved column back to the API-facing key for the
// paged response envelope.
func (q ListQuery) PublicSortKey(allowed map[string]string) string {
	for key, col := range allowed {
		if col == q.SortBy {
			return key
		}
	}
	return q.SortBy
}
