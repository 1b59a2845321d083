package ui

import (
	"fmt"

	"github.com/rivo/tview"

	"backoffice/internal/table"
)

// RenderTable redraws the data table from the screen state: a loading
// notice, an error state with retry hint, an empty state, or one row per
// record with one cell per visible column.
func RenderTable(tv *tview.Table, entityName string, st *table.State, cols []table.Column, custom table.Formatter) {
	tv.Clear()

	switch st.Display() {
	case table.DisplayLoading:
		tv.SetCell(0, 0, tview.NewTableCell(fmt.Sprintf("Loading %s...", entityName)).
			SetAlign(tview.AlignCenter).
			SetSelectable(false))
		return
	case table.DisplayErrorEmpty:
		tv.SetCell(0, 0, tview.NewTableCell(fmt.Sprintf("[red]Unable to load %s[-]", entityName)).
			SetAlign(tview.AlignCenter).
			SetSelectable(false))
		tv.SetCell(1, 0, tview.NewTableCell("[yellow]"+st.Err.Message+"[-]").
			SetAlign(tview.AlignCenter).
			SetSelectable(false))
		tv.SetCell(2, 0, tview.NewTableCell("Press 'r' to try again").
			SetAlign(tview.AlignCenter).
			SetSelectable(false))
		return
	case table.DisplayEmpty:
		tv.SetCell(0, 0, tview.NewTableCell(fmt.Sprintf("No %s found", entityName)).
			SetAlign(tview.AlignCenter).
			SetSelectable(false))
		return
	}

	// Populated, possibly with a stale-data error banner above the layout.
	visible := visibleColumns(st, cols)
	for col, c := range visible {
		tv.SetCell(0, col, tview.NewTableCell("[yellow::b]"+c.Label+"[-::-]").
			SetAlign(tview.AlignCenter).
			SetSelectable(false))
	}
	for row, rec := range st.Items {
		for col, c := range visible {
			text := table.FormatCell(rec, c, custom)
			tv.SetCell(row+1, col, tview.NewTableCell(text).
				SetAlign(tview.AlignLeft).
				SetSelectable(true))
		}
	}
	tv.SetFixed(1, 0)
}

func visibleColumns(st *table.State, cols []table.Column) []table.Column {
	out := make([]table.Column, 0, len(st.VisibleColumns))
	for _, c := range cols {
		for _, key := range st.VisibleColumns {
			if c.Key == key {
				out = append(out, c)
				break
			}
		}
	}
	return out
}

// PaginationText is the table footer line, matching the familiar
// "Showing X to Y of Z entries" shape with the page-size choices and the
// Previous/Next affordances greyed out at the bounds.
func PaginationText(st *table.State) string {
	if st.TotalElements == 0 {
		return ""
	}
	first := st.CurrentPage*st.PageSize + 1
	last := (st.CurrentPage + 1) * st.PageSize
	if last > st.TotalElements {
		last = st.TotalElements
	}

	prev := "[gray]← Prev[-]"
	if st.HasPrev() {
		prev = "← Prev"
	}
	next := "[gray]Next →[-]"
	if st.HasNext() {
		next = "Next →"
	}

	return fmt.Sprintf("Showing %d to %d of %d entries | %s  %s | per page: %s",
		first, last, st.TotalElements, prev, next, pageSizeChoices(st.PageSize))
}

func pageSizeChoices(current int) string {
	out := ""
	for i, size := range table.PageSizes {
		if i > 0 {
			out += "/"
		}
		if size == current {
			out += fmt.Sprintf("[::b]%d[-:-:-]", size)
		} else {
			out += fmt.Sprintf("%d", size)
		}
	}
	return out
}

// BannerText renders the dismissible error banners above the table. The
// list-load banner and the delete banner are separate lines so one cannot
// clobber the other.
func BannerText(st *table.State) string {
	text := ""
	if st.Err != nil && len(st.Items) > 0 {
		// Retrying only helps with network/server conditions; a rejected
		// request fails the same way again.
		hint := "(e dismiss)"
		if st.Err.Transient() {
			hint = "(r retry, e dismiss)"
		}
		text += fmt.Sprintf("[red]Load failed:[-] %s [gray]%s[-]", st.Err.Message, hint)
	}
	if st.DeleteErr != nil {
		if text != "" {
			text += "\n"
		}
		text += fmt.Sprintf("[red]Delete failed:[-] %s [gray](x dismiss)[-]", st.DeleteErr.Message)
	}
	return text
}
