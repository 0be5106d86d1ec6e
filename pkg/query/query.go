package query

import "fmt"

type Method string

const (
	MethodEqual     Method = "equal"
	MethodContains  Method = "contains"
	MethodOr        Method = "or"
	MethodOrderAsc  Method = "orderAsc"
	MethodOrderDesc Method = "orderDesc"
	MethodLimit     Method = "limit"
	MethodOffset    Method = "offset"
)

// Attributes prefixed with "$" are system attributes every collection has.
const (
	AttrID        = "$id"
	AttrCreatedAt = "$createdAt"
	AttrUpdatedAt = "$updatedAt"
)

// Query is a single predicate, ordering or pagination instruction for a
// collection listing. Repositories translate a []Query into their own
// query language.
type Query struct {
	Method    Method
	Attribute string
	Values    []any
	Queries   []Query
}

// Equal matches documents whose attribute equals any of values.
func Equal(attr string, values ...any) Query {
	return Query{Method: MethodEqual, Attribute: attr, Values: values}
}

// Contains matches a substring for scalar attributes and membership for
// array attributes.
func Contains(attr string, values ...any) Query {
	return Query{Method: MethodContains, Attribute: attr, Values: values}
}

func Or(queries ...Query) Query {
	return Query{Method: MethodOr, Queries: queries}
}

func OrderAsc(attr string) Query {
	return Query{Method: MethodOrderAsc, Attribute: attr}
}

func OrderDesc(attr string) Query {
	return Query{Method: MethodOrderDesc, Attribute: attr}
}

func Limit(n int) Query {
	return Query{Method: MethodLimit, Values: []any{n}}
}

func Offset(n int) Query {
	return Query{Method: MethodOffset, Values: []any{n}}
}

// IsFilter reports whether q restricts the result set, as opposed to
// ordering or paginating it.
func (q Query) IsFilter() bool {
	switch q.Method {
	case MethodEqual, MethodContains, MethodOr:
		return true
	}
	return false
}

// Int returns the single integer value of a limit or offset query.
func (q Query) Int() (int, error) {
	if len(q.Values) != 1 {
		return 0, fmt.Errorf("%s expects one value, got %d", q.Method, len(q.Values))
	}
	n, ok := q.Values[0].(int)
	if !ok {
		return 0, fmt.Errorf("%s expects an int value, got %T", q.Method, q.Values[0])
	}
	return n, nil
}

func (q Query) String() string {
	switch q.Method {
	case MethodOr:
		return fmt.Sprintf("%s(%v)", q.Method, q.Queries)
	case MethodLimit, MethodOffset:
		return fmt.Sprintf("%s(%v)", q.Method, q.Values)
	case MethodOrderAsc, MethodOrderDesc:
		return fmt.Sprintf("%s(%q)", q.Method, q.Attribute)
	}
	return fmt.Sprintf("%s(%q, %v)", q.Method, q.Attribute, q.Values)
}
