package ui

import (
	"github.com/rivo/tview"

	"backoffice/internal/table"
)

// ColumnSelectorHandlers are the column-visibility actions the overlay can
// trigger. Every mutation goes through the table package so the non-empty
// invariant holds no matter which control fired.
type ColumnSelectorHandlers struct {
	OnToggle    func(key string)
	OnSelectAll func()
	OnClearAll  func()
	OnDone      func()
}

// BuildColumnSelector fills a list with one checkable entry per declared
// column plus Select All / Clear All / Done controls.
func BuildColumnSelector(list *tview.List, cols []table.Column, visible []string, h ColumnSelectorHandlers) {
	list.Clear()
	list.ShowSecondaryText(false)
	list.SetBorder(true).SetTitle("Columns")

	for _, col := range cols {
		mark := "[ ]"
		for _, key := range visible {
			if key == col.Key {
				mark = "[x]"
				break
			}
		}
		key := col.Key
		list.AddItem(mark+" "+col.Label, "", 0, func() {
			h.OnToggle(key)
		})
	}

	list.AddItem("-- Select All --", "", 0, h.OnSelectAll)
	list.AddItem("-- Clear All --", "", 0, h.OnClearAll)
	list.AddItem("-- Done --", "", 0, h.OnDone)
}
