package table

// ColumnType drives default cell formatting.
type ColumnType int

const (
	TypeNumber ColumnType = iota
	TypeText
	TypeDate
	TypeCurrency
)

// Column describes one displayable field of an entity. Columns are declared
// statically per screen and never change at runtime.
type Column struct {
	Key   string
	Label string
	Type  ColumnType
}

// Keys returns the declared keys in declaration order.
func Keys(columns []Column) []string {
	keys := make([]string, len(columns))
	for i, c := range columns {
		keys[i] = c.Key
	}
	return keys
}

// Toggle flips the visibility of one column. Removing the last visible column
// is a no-op so the table always has at least one column to render. Adding a
// column re-normalizes the result to the declared column order, so the
// left-to-right layout does not depend on the toggle history.
func Toggle(key string, visible []string, all []Column) []string {
	if contains(visible, key) {
		if len(visible) > 1 {
			out := make([]string, 0, len(visible)-1)
			for _, k := range visible {
				if k != key {
					out = append(out, k)
				}
			}
			return out
		}
		return visible
	}
	out := make([]string, 0, len(visible)+1)
	for _, c := range all {
		if c.Key == key || contains(visible, c.Key) {
			out = append(out, c.Key)
		}
	}
	return out
}

// SelectAll returns every declared key, in declaration order.
func SelectAll(all []Column) []string {
	return Keys(all)
}

// ClearAll collapses the visible set to the first declared column. The set is
// never allowed to go empty, matching the Toggle guard.
func ClearAll(all []Column) []string {
	if len(all) == 0 {
		return nil
	}
	return []string{all[0].Key}
}

func contains(keys []string, key string) bool {
	for _, k := range keys {
		if k == key {
			return true
		}
	}
	return false
}
