package file

import (
	"fmt"
	"strconv"
	"strings"

	domain "github.com/supanut9/store-it/internal/domain/file"
	"github.com/supanut9/store-it/pkg/query"
)

type attrKind int

const (
	kindText attrKind = iota
	kindArray
	kindInt
	kindTime
)

type column struct {
	name string
	kind attrKind
}

var attributes = map[string]column{
	query.AttrID:        {"id", kindText},
	query.AttrCreatedAt: {"created_at", kindTime},
	query.AttrUpdatedAt: {"updated_at", kindTime},
	"owner":             {"owner", kindText},
	"users":             {"users", kindArray},
	"type":              {"type", kindText},
	"name":              {"name", kindText},
	"extension":         {"extension", kindText},
	"size":              {"size", kindInt},
	"accountId":         {"account_id", kindText},
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

type compiled struct {
	where  []string
	order  []string
	limit  int
	offset int
	args   []any
}

// compile turns listing queries into SQL clauses. Filters are AND-ed.
func compile(queries []query.Query) (*compiled, error) {
	c := &compiled{limit: -1}
	for _, q := range queries {
		switch q.Method {
		case query.MethodEqual, query.MethodContains, query.MethodOr:
			cond, err := c.filter(q)
			if err != nil {
				return nil, err
			}
			c.where = append(c.where, cond)
		case query.MethodOrderAsc, query.MethodOrderDesc:
			col, ok := attributes[q.Attribute]
			if !ok {
				return nil, fmt.Errorf("%w: unknown attribute %q", domain.ErrInvalidQuery, q.Attribute)
			}
			dir := "ASC"
			if q.Method == query.MethodOrderDesc {
				dir = "DESC"
			}
			c.order = append(c.order, col.name+" "+dir)
		case query.MethodLimit, query.MethodOffset:
			n, err := q.Int()
			if err != nil || n < 0 {
				return nil, fmt.Errorf("%w: %s", domain.ErrInvalidQuery, q)
			}
			if q.Method == query.MethodLimit {
				c.limit = n
			} else {
				c.offset = n
			}
		default:
			return nil, fmt.Errorf("%w: unknown method %q", domain.ErrInvalidQuery, q.Method)
		}
	}
	return c, nil
}

func (c *compiled) bind(v any) string {
	c.args = append(c.args, v)
	return "$" + strconv.Itoa(len(c.args))
}

func (c *compiled) filter(q query.Query) (string, error) {
	if q.Method == query.MethodOr {
		if len(q.Queries) == 0 {
			return "", fmt.Errorf("%w: empty or", domain.ErrInvalidQuery)
		}
		parts := make([]string, 0, len(q.Queries))
		for _, sub := range q.Queries {
			if !sub.IsFilter() {
				return "", fmt.Errorf("%w: %s inside or", domain.ErrInvalidQuery, sub.Method)
			}
			cond, err := c.filter(sub)
			if err != nil {
				return "", err
			}
			parts = append(parts, cond)
		}
		return "(" + strings.Join(parts, " OR ") + ")", nil
	}

	col, ok := attributes[q.Attribute]
	if !ok {
		return "", fmt.Errorf("%w: unknown attribute %q", domain.ErrInvalidQuery, q.Attribute)
	}
	if len(q.Values) == 0 {
		return "", fmt.Errorf("%w: %s without values", domain.ErrInvalidQuery, q)
	}

	switch {
	case col.kind == kindArray:
		// equal and contains both test membership on array attributes
		parts := make([]string, 0, len(q.Values))
		for _, v := range q.Values {
			parts = append(parts, c.bind(fmt.Sprint(v))+" = ANY("+col.name+")")
		}
		return "(" + strings.Join(parts, " OR ") + ")", nil

	case q.Method == query.MethodContains:
		if col.kind != kindText {
			return "", fmt.Errorf("%w: contains on %q", domain.ErrInvalidQuery, q.Attribute)
		}
		parts := make([]string, 0, len(q.Values))
		for _, v := range q.Values {
			pattern := "%" + likeEscaper.Replace(fmt.Sprint(v)) + "%"
			parts = append(parts, col.name+" ILIKE "+c.bind(pattern))
		}
		return "(" + strings.Join(parts, " OR ") + ")", nil

	case len(q.Values) == 1:
		return col.name + " = " + c.bind(q.Values[0]), nil
	}

	switch col.kind {
	case kindText:
		values := make([]string, len(q.Values))
		for i, v := range q.Values {
			values[i] = fmt.Sprint(v)
		}
		return col.name + " = ANY(" + c.bind(values) + ")", nil
	case kindInt:
		values := make([]int64, len(q.Values))
		for i, v := range q.Values {
			n, err := toInt64(v)
			if err != nil {
				return "", fmt.Errorf("%w: %s: %v", domain.ErrInvalidQuery, q, err)
			}
			values[i] = n
		}
		return col.name + " = ANY(" + c.bind(values) + ")", nil
	}
	return "", fmt.Errorf("%w: multi-value equal on %q", domain.ErrInvalidQuery, q.Attribute)
}

func toInt64(v any) (int64, error) {
	switch n := v.(type) {
	case int:
		return int64(n), nil
	case int32:
		return int64(n), nil
	case int64:
		return n, nil
	}
	return 0, fmt.Errorf("not an integer: %T", v)
}

func (c *compiled) sql(base string) string {
	var b strings.Builder
	b.WriteString(base)
	if len(c.where) > 0 {
		b.WriteString("\n\t\tWHERE ")
		b.WriteString(strings.Join(c.where, " AND "))
	}
	b.WriteString("\n\t\tORDER BY ")
	for _, o := range c.order {
		b.WriteString(o)
		b.WriteString(", ")
	}
	b.WriteString("id ASC")
	if c.limit >= 0 {
		b.WriteString("\n\t\tLIMIT ")
		b.WriteString(strconv.Itoa(c.limit))
	}
	if c.offset > 0 {
		b.WriteString(" OFFSET ")
		b.WriteString(strconv.Itoa(c.offset))
	}
	return b.String()
}
