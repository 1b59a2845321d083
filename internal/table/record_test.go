package table

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestFormatCellDefaults(t *testing.T) {
	rec := Record{
		"id":        float64(3),
		"name":      "Widget",
		"notes":     nil,
		"price":     float64(19.9),
		"createdAt": "2024-01-15T10:30:00Z",
	}

	assert.Equal(t, "3", FormatCell(rec, Column{Key: "id", Type: TypeNumber}, nil))
	assert.Equal(t, "Widget", FormatCell(rec, Column{Key: "name", Type: TypeText}, nil))
	assert.Equal(t, "-", FormatCell(rec, Column{Key: "notes", Type: TypeText}, nil))
	assert.Equal(t, "-", FormatCell(rec, Column{Key: "missing", Type: TypeText}, nil))
	assert.Equal(t, "$19.90", FormatCell(rec, Column{Key: "price", Type: TypeCurrency}, nil))
	assert.Equal(t, "Jan 15, 2024 10:30", FormatCell(rec, Column{Key: "createdAt", Type: TypeDate}, nil))
}

func TestFormatCellCustomFormatterWins(t *testing.T) {
	rec := Record{"status": "NEW"}
	custom := func(r Record, key string) (string, bool) {
		if key == "status" {
			return "fancy", true
		}
		return "", false
	}
	assert.Equal(t, "fancy", FormatCell(rec, Column{Key: "status", Type: TypeText}, custom))
	assert.Equal(t, "-", FormatCell(rec, Column{Key: "other", Type: TypeText}, custom))
}

func TestFormatDatePassesThroughGarbage(t *testing.T) {
	assert.Equal(t, "not-a-date", FormatDate("not-a-date"))
}

func TestFormatCurrency(t *testing.T) {
	assert.Equal(t, "$25.00", FormatCurrency(decimal.NewFromInt(25)))
	assert.Equal(t, "$0.50", FormatCurrency(decimal.RequireFromString("0.5")))
}

func TestRecordID(t *testing.T) {
	assert.Equal(t, 7, Record{"id": float64(7)}.ID())
	assert.Equal(t, 7, Record{"id": 7}.ID())
	assert.Equal(t, 0, Record{}.ID())
}
