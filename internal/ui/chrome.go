package ui

import "github.com/rivo/tview"

// CreateHeader builds the top status bar.
func CreateHeader() *tview.TextView {
	header := tview.NewTextView()
	header.SetBorder(true)
	header.SetText("Back Office")
	header.SetTextAlign(tview.AlignCenter)
	header.SetDynamicColors(true)
	return header
}

// CreateFooter builds the bottom key-hint bar.
func CreateFooter() *tview.TextView {
	footer := tview.NewTextView()
	footer.SetBorder(true)
	footer.SetText("q quit | j/k navigate | Enter select | / search | n new | c columns | r reload")
	footer.SetTextAlign(tview.AlignCenter)
	footer.SetDynamicColors(true)
	return footer
}

// CreateMenu builds the sidebar entity menu.
func CreateMenu(items []string, onSelect func(string)) *tview.List {
	menu := tview.NewList().ShowSecondaryText(false)
	menu.SetBorder(true).SetTitle("Back Office")

	for _, item := range items {
		label := item
		menu.AddItem(label, "", 0, func() {
			onSelect(label)
		})
	}
	return menu
}

// SetupGrid lays out header, sidebar, content and footer.
func SetupGrid(header, footer tview.Primitive, menu tview.Primitive, content tview.Primitive) *tview.Grid {
	grid := tview.NewGrid().
		SetRows(3, 0, 3).
		SetColumns(25, 0).
		SetBorders(false)

	// Header and footer span both columns.
	grid.AddItem(header, 0, 0, 1, 2, 0, 0, false)
	grid.AddItem(footer, 2, 0, 1, 2, 0, 0, false)

	grid.AddItem(menu, 1, 0, 1, 1, 0, 80, true)
	grid.AddItem(content, 1, 1, 1, 1, 0, 80, false)

	return grid
}
