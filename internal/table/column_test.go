package table

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

var testColumns = []Column{
	{Key: "id", Label: "ID", Type: TypeNumber},
	{Key: "name", Label: "Name", Type: TypeText},
	{Key: "description", Label: "Description", Type: TypeText},
	{Key: "createdAt", Label: "Created At", Type: TypeDate},
}

func TestToggleRemovesVisibleColumn(t *testing.T) {
	got := Toggle("name", []string{"id", "name", "description"}, testColumns)
	assert.Equal(t, []string{"id", "description"}, got)
}

func TestToggleKeepsLastVisibleColumn(t *testing.T) {
	got := Toggle("id", []string{"id"}, testColumns)
	assert.Equal(t, []string{"id"}, got)
}

func TestToggleAddsInDeclaredOrder(t *testing.T) {
	// "id" was toggled back in after later columns; it still lands first.
	got := Toggle("id", []string{"description", "createdAt"}, testColumns)
	assert.Equal(t, []string{"id", "description", "createdAt"}, got)
}

func TestToggleOrderIndependentOfHistory(t *testing.T) {
	a := []string{"name"}
	a = Toggle("createdAt", a, testColumns)
	a = Toggle("id", a, testColumns)

	b := []string{"createdAt"}
	b = Toggle("id", b, testColumns)
	b = Toggle("name", b, testColumns)

	assert.Equal(t, []string{"id", "name", "createdAt"}, a)
	assert.Equal(t, a, b)
}

func TestToggleRoundTrip(t *testing.T) {
	cases := [][]string{
		{"id", "name"},
		{"id", "name", "description", "createdAt"},
		{"description"},
	}
	for _, visible := range cases {
		for _, col := range testColumns {
			once := Toggle(col.Key, visible, testColumns)
			twice := Toggle(col.Key, once, testColumns)
			if len(visible) == 1 && visible[0] == col.Key {
				// Guard made the first toggle a no-op.
				assert.Equal(t, visible, once)
				continue
			}
			assert.ElementsMatch(t, visible, twice, "key %s over %v", col.Key, visible)
		}
	}
}

func TestSelectAll(t *testing.T) {
	got := SelectAll(testColumns)
	assert.Equal(t, []string{"id", "name", "description", "createdAt"}, got)
}

func TestClearAllKeepsOneColumn(t *testing.T) {
	got := ClearAll(testColumns)
	assert.Equal(t, []string{"id"}, got)
	assert.Nil(t, ClearAll(nil))
}
