package store

import (
	"encoding/json"
	"time"

	"github.com/shopspring/decimal"
)

// Fields is a partial row for create and update calls. A nil value writes an
// explicit null.
type Fields map[string]interface{}

// Record is one row as returned by the record service. Numbers are kept as
// json.Number so integer ids and decimal balances survive decoding intact.
type Record map[string]interface{}

func (r Record) Int64(key string) int64 {
	if n, ok := r[key].(json.Number); ok {
		v, _ := n.Int64()
		return v
	}
	return 0
}

func (r Record) Int(key string) int {
	return int(r.Int64(key))
}

func (r Record) OptInt64(key string) *int64 {
	if n, ok := r[key].(json.Number); ok {
		if v, err := n.Int64(); err == nil {
			return &v
		}
	}
	return nil
}

func (r Record) String(key string) string {
	if s, ok := r[key].(string); ok {
		return s
	}
	return ""
}

func (r Record) Bool(key string) bool {
	if b, ok := r[key].(bool); ok {
		return b
	}
	return false
}

func (r Record) Decimal(key string) decimal.Decimal {
	switch v := r[key].(type) {
	case json.Number:
		if d, err := decimal.NewFromString(v.String()); err == nil {
			return d
		}
	case string:
		if d, err := decimal.NewFromString(v); err == nil {
			return d
		}
	}
	return decimal.Zero
}

func (r Record) Time(key string) time.Time {
	if s, ok := r[key].(string); ok {
		if t, err := time.Parse(time.RFC3339, s); err == nil {
			return t
		}
	}
	return time.Time{}
}

func (r Record) OptTime(key string) *time.Time {
	if s, ok := r[key].(string); ok && s != "" {
		if t, err := time.Parse(time.RFC3339, s); err == nil {
			return &t
		}
	}
	return nil
}
