package services

import (
	"strings"

	"github.com/supanut9/store-it/internal/domain/file"
	"github.com/supanut9/store-it/internal/domain/user"
	"github.com/supanut9/store-it/pkg/query"
)

const defaultSortField = query.AttrCreatedAt

// buildFileQueries scopes a listing to files u owns or was granted, then
// applies the optional filters.
func buildFileQueries(u *user.User, p file.ListParams) []query.Query {
	queries := []query.Query{
		query.Or(
			query.Equal("owner", u.ID),
			query.Contains("users", u.Email),
		),
	}

	if len(p.Types) > 0 {
		types := make([]any, len(p.Types))
		for i, t := range p.Types {
			types[i] = string(t)
		}
		queries = append(queries, query.Equal("type", types...))
	}
	if p.SearchText != "" {
		queries = append(queries, query.Contains("name", p.SearchText))
	}
	if p.Limit > 0 {
		queries = append(queries, query.Limit(p.Limit))
	}

	queries = append(queries, sortQuery(p.Sort))

	return queries
}

// sortQuery parses "field-direction". Anything but "asc" sorts descending.
func sortQuery(sort string) query.Query {
	sort = strings.TrimSpace(sort)
	if sort == "" {
		return query.OrderDesc(defaultSortField)
	}

	field, dir := sort, ""
	if i := strings.LastIndex(sort, "-"); i >= 0 {
		field, dir = sort[:i], sort[i+1:]
	}
	if field == "" {
		return query.OrderDesc(defaultSortField)
	}
	if dir == "asc" {
		return query.OrderAsc(field)
	}
	return query.OrderDesc(field)
}
