package table

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// Record is one row of entity data, keyed by column key. Values are whatever
// the API handed back; formatting decides how they read on screen.
type Record map[string]any

// ID returns the record's numeric id, or 0 when absent. JSON numbers decode
// as float64.
func (r Record) ID() int {
	switch v := r["id"].(type) {
	case int:
		return v
	case int64:
		return int(v)
	case float64:
		return int(v)
	}
	return 0
}

// Formatter overrides default cell formatting for selected columns. Returning
// ok=false falls through to the default.
type Formatter func(rec Record, key string) (text string, ok bool)

// FormatCell renders one cell. Custom formatter first, then type-directed
// defaults: dates through FormatDate, currency through FormatCurrency,
// everything else as the raw value. Missing or nil values read as "-".
func FormatCell(rec Record, col Column, custom Formatter) string {
	if custom != nil {
		if text, ok := custom(rec, col.Key); ok {
			return text
		}
	}
	v, ok := rec[col.Key]
	if !ok || v == nil {
		return "-"
	}
	switch col.Type {
	case TypeDate:
		if s, ok := v.(string); ok {
			return FormatDate(s)
		}
	case TypeCurrency:
		return FormatCurrency(toDecimal(v))
	case TypeNumber:
		if f, ok := v.(float64); ok && f == float64(int64(f)) {
			return fmt.Sprintf("%d", int64(f))
		}
	}
	if s, ok := v.(string); ok {
		if s == "" {
			return "-"
		}
		return s
	}
	return fmt.Sprintf("%v", v)
}

// FormatDate renders API timestamps in a compact readable form. Unparseable
// values pass through untouched.
func FormatDate(value string) string {
	for _, layout := range []string{time.RFC3339Nano, time.RFC3339, "2006-01-02"} {
		if t, err := time.Parse(layout, value); err == nil {
			return t.Format("Jan 02, 2006 15:04")
		}
	}
	return value
}

// FormatCurrency renders an amount as USD with two decimal places.
func FormatCurrency(amount decimal.Decimal) string {
	return "$" + amount.StringFixed(2)
}

func toDecimal(v any) decimal.Decimal {
	switch n := v.(type) {
	case decimal.Decimal:
		return n
	case float64:
		return decimal.NewFromFloat(n)
	case int:
		return decimal.NewFromInt(int64(n))
	case int64:
		return decimal.NewFromInt(n)
	case string:
		if d, err := decimal.NewFromString(n); err == nil {
			return d
		}
	}
	return decimal.Zero
}
