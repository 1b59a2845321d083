package app

import (
	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"
)

// SetupKeyBindings wires the global keys. q quits and j/k move the menu,
// but only while the menu has focus so screens keep their own bindings and
// text inputs are never hijacked.
func SetupKeyBindings(state *State) {
	state.App.SetInputCapture(func(event *tcell.EventKey) *tcell.EventKey {
		menuFocused := state.App.GetFocus() == state.Menu

		switch event.Rune() {
		case 'q':
			if menuFocused {
				state.App.Stop()
				return nil
			}
		case 'j':
			if menuFocused {
				current := state.Menu.GetCurrentItem()
				if current < state.Menu.GetItemCount()-1 {
					state.Menu.SetCurrentItem(current + 1)
				}
				return nil
			}
		case 'k':
			if menuFocused {
				current := state.Menu.GetCurrentItem()
				if current > 0 {
					state.Menu.SetCurrentItem(current - 1)
				}
				return nil
			}
		case 'r':
			// Focus stays on the menu after switching to the overview, so
			// its retry key is handled here as well.
			if menuFocused {
				if name, _ := state.Content.GetFrontPage(); name == menuOverview {
					state.InfoPanel.Reload()
					return nil
				}
			}
		}

		// Tab bounces focus between the menu and the active screen's table.
		// Forms keep Tab for field navigation.
		if event.Key() == tcell.KeyTab {
			if menuFocused {
				if name, _ := state.Content.GetFrontPage(); name != "" {
					if s, ok := state.Screens[name]; ok {
						s.Focus()
						return nil
					}
				}
			} else if _, isTable := state.App.GetFocus().(*tview.Table); isTable {
				state.App.SetFocus(state.Menu)
				return nil
			}
		}

		return event
	})
}
