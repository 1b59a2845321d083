package app

import (
	"time"

	"github.com/rivo/tview"
	"go.uber.org/zap"

	"backoffice/internal/api"
	"backoffice/internal/screen"
	"backoffice/internal/session"
)

// State holds every live piece of the running application: the tview
// primitives, the mounted screens and the shared services. One instance per
// process, owned by the UI goroutine after Run starts.
type State struct {
	App    *tview.Application
	Root   *tview.Pages
	Header *tview.TextView
	Footer *tview.TextView
	Menu   *tview.List
	// Content hosts the active screen inside the grid.
	Content *tview.Pages

	Screens   map[string]*screen.Screen
	InfoPanel *screen.InfoPanel

	Client  *api.Client
	Store   *session.Store
	Logger  *zap.Logger
	Timeout time.Duration
}

// Deps is what the command layer hands to CreateApp.
type Deps struct {
	Client  *api.Client
	Store   *session.Store
	Logger  *zap.Logger
	Timeout time.Duration
}
