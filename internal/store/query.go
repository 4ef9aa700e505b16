package store

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Query composes the filter predicates the record service understands:
// equality, less-than, greater-than, not-in, ordering and limit.
type Query struct {
	conds  []string
	sorts  []string
	limit  int
	fields []string
}

func NewQuery() Query {
	return Query{}
}

func (q Query) Eq(field string, value interface{}) Query {
	q.conds = append(q.conds, fmt.Sprintf("(%s,eq,%s)", field, formatValue(value)))
	return q
}

func (q Query) Lt(field string, value interface{}) Query {
	q.conds = append(q.conds, fmt.Sprintf("(%s,lt,%s)", field, formatValue(value)))
	return q
}

func (q Query) Gt(field string, value interface{}) Query {
	q.conds = append(q.conds, fmt.Sprintf("(%s,gt,%s)", field, formatValue(value)))
	return q
}

func (q Query) NotIn(field string, values ...interface{}) Query {
	formatted := make([]string, len(values))
	for i, v := range values {
		formatted[i] = formatValue(v)
	}
	q.conds = append(q.conds, fmt.Sprintf("(%s,notin,%s)", field, strings.Join(formatted, ",")))
	return q
}

func (q Query) SortAsc(field string) Query {
	q.sorts = append(q.sorts, field)
	return q
}

func (q Query) SortDesc(field string) Query {
	q.sorts = append(q.sorts, "-"+field)
	return q
}

func (q Query) Limit(n int) Query {
	q.limit = n
	return q
}

func (q Query) Fields(fields ...string) Query {
	q.fields = append(q.fields, fields...)
	return q
}

func (q Query) Encode() string {
	params := url.Values{}
	if len(q.conds) > 0 {
		params.Set("where", strings.Join(q.conds, "~and"))
	}
	if len(q.sorts) > 0 {
		params.Set("sort", strings.Join(q.sorts, ","))
	}
	if q.limit > 0 {
		params.Set("limit", strconv.Itoa(q.limit))
	}
	if len(q.fields) > 0 {
		params.Set("fields", strings.Join(q.fields, ","))
	}
	return params.Encode()
}

func formatValue(value interface{}) string {
	switch v := value.(type) {
	case string:
		return v
	case bool:
		return strconv.FormatBool(v)
	case int:
		return strconv.Itoa(v)
	case int64:
		return strconv.FormatInt(v, 10)
	case time.Time:
		return v.UTC().Format(time.RFC3339)
	case decimal.Decimal:
		return v.String()
	default:
		return fmt.Sprintf("%v", v)
	}
}
