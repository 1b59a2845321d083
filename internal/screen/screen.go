// Package screen composes the generic entity screen every record type
// shares: search, paginated table, column selector, create/update forms and
// delete confirmation, all driven by one state container per screen.
package screen

import (
	"context"
	"fmt"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"
	"go.uber.org/zap"

	"backoffice/internal/api"
	"backoffice/internal/table"
	"backoffice/internal/ui"
)

// Env is what every screen needs from the application: the API client, the
// logger, and hooks into the tview event loop. Post must marshal the given
// function onto the UI goroutine.
type Env struct {
	Client   *api.Client
	Logger   *zap.Logger
	Post     func(fn func())
	SetFocus func(p tview.Primitive)
	Timeout  time.Duration
}

// Action is a caller-supplied row action beyond Update and Delete.
type Action struct {
	Label string
	Run   func(s *Screen, rec table.Record)
}

// Definition parametrizes one entity screen: its columns, search field,
// form layout and any extra row actions. Six of these cover the whole
// back office.
type Definition struct {
	Entity   api.Entity
	Title    string
	Singular string
	// SearchField is the filter key the search box feeds; SearchLabel
	// overrides the input label for non-text filters (order id filters).
	SearchField    string
	SearchLabel    string
	Columns        []table.Column
	DefaultVisible []string
	Formatter      table.Formatter
	FormFields     []ui.FormField
	// OptionLoader resolves select-field options (foreign keys) before a
	// form opens. All lists load concurrently; one failure fails the join.
	OptionLoader func(ctx context.Context, client *api.Client) (map[string][]ui.Option, error)
	// OnCreate overrides the generic POST when the create payload needs
	// reshaping (orders nest their initial item). Nil means plain Create.
	OnCreate func(ctx context.Context, client *api.Client, values map[string]any) error
	Actions  []Action
	// OnUpdate overrides the default update-form flow when set (orders open
	// their detail view instead). Return true when handled.
	OnUpdate func(s *Screen, id int) bool
}

// Screen is one mounted entity screen. All fields are owned by the UI
// goroutine; background fetches re-enter through Env.Post.
type Screen struct {
	def   Definition
	env   Env
	state *table.State
	cycle table.Cycle
	fetch table.Fetcher

	pages     *tview.Pages
	search    *tview.InputField
	banner    *tview.TextView
	tableView *tview.Table
	pagerLine *tview.TextView
	colList   *tview.List
}

// New mounts a fresh screen with default state. Nothing persists across
// remounts; each visit starts at page zero with the declared columns.
func New(def Definition, env Env) *Screen {
	s := &Screen{
		def:   def,
		env:   env,
		state: table.NewState(def.SearchField, def.DefaultVisible, table.PageSizes[0]),
		pages: tview.NewPages(),
	}
	s.fetch = func(ctx context.Context, q table.Query) (table.Page, error) {
		return env.Client.List(ctx, def.Entity, q)
	}

	label := def.SearchLabel
	if label == "" {
		label = " Search: "
	}
	s.search = tview.NewInputField().SetLabel(label)
	s.search.SetChangedFunc(func(text string) {
		s.state.SetSearch(text)
		s.Reload()
	})
	s.search.SetDoneFunc(func(key tcell.Key) {
		s.env.SetFocus(s.tableView)
	})

	s.banner = tview.NewTextView().SetDynamicColors(true)
	s.pagerLine = tview.NewTextView().SetDynamicColors(true)

	s.tableView = tview.NewTable()
	s.tableView.SetBorder(true).SetTitle(def.Title)
	s.tableView.SetSelectable(true, false)
	s.tableView.SetSelectedFunc(func(row, col int) {
		s.openActionMenu(row)
	})
	s.tableView.SetInputCapture(s.handleKey)

	listFlex := tview.NewFlex().SetDirection(tview.FlexRow).
		AddItem(s.search, 1, 0, false).
		AddItem(s.banner, 2, 0, false).
		AddItem(s.tableView, 0, 1, true).
		AddItem(s.pagerLine, 1, 0, false)

	s.colList = tview.NewList()

	s.pages.AddPage("list", listFlex, true, true)
	s.pages.AddPage("columns", ui.CenterPrimitive(s.colList, 44, len(def.Columns)+5), true, false)

	s.render()
	return s
}

// Root is the primitive the application embeds.
func (s *Screen) Root() tview.Primitive { return s.pages }

// Focus gives keyboard focus to the table.
func (s *Screen) Focus() { s.env.SetFocus(s.tableView) }

// Title returns the screen's menu label.
func (s *Screen) Title() string { return s.def.Title }

// Reload starts a new list fetch for the current query. Every call claims a
// fresh sequence number; a completion that lost the race is discarded, so
// typing quickly in the search box can never leave stale rows on screen.
func (s *Screen) Reload() {
	seq := s.cycle.Next()
	q := s.state.Query()
	s.state.BeginLoad()
	s.render()

	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), s.env.Timeout)
		defer cancel()
		page, err := s.fetch(ctx, q)

		s.env.Post(func() {
			if !s.cycle.IsCurrent(seq) {
				s.env.Logger.Debug("discarding stale fetch",
					zap.String("entity", string(s.def.Entity)),
					zap.Uint64("seq", seq))
				return
			}
			if err != nil {
				s.env.Logger.Warn("list fetch failed",
					zap.String("entity", string(s.def.Entity)),
					zap.Error(err))
				s.state.ApplyError(toFetchError(err))
			} else {
				s.state.ApplyPage(page)
			}
			s.render()
		})
	}()
}

func (s *Screen) render() {
	ui.RenderTable(s.tableView, s.def.Title, s.state, s.def.Columns, s.def.Formatter)
	s.banner.SetText(ui.BannerText(s.state))
	s.pagerLine.SetText(ui.PaginationText(s.state))
}

func (s *Screen) handleKey(event *tcell.EventKey) *tcell.EventKey {
	switch event.Rune() {
	case '/':
		s.env.SetFocus(s.search)
		return nil
	case 'n':
		s.openCreate()
		return nil
	case 'c':
		s.openColumnSelector()
		return nil
	case 'r':
		s.Reload()
		return nil
	case 'e':
		s.state.DismissError()
		s.render()
		return nil
	case 'x':
		s.state.DismissDeleteError()
		s.render()
		return nil
	case 'h':
		s.state.SetPage(s.state.CurrentPage - 1)
		s.Reload()
		return nil
	case 'l':
		s.state.SetPage(s.state.CurrentPage + 1)
		s.Reload()
		return nil
	case 's':
		s.cyclePageSize()
		return nil
	}
	return event
}

func (s *Screen) cyclePageSize() {
	for i, size := range table.PageSizes {
		if size == s.state.PageSize {
			s.state.SetPageSize(table.PageSizes[(i+1)%len(table.PageSizes)])
			s.Reload()
			return
		}
	}
	s.state.SetPageSize(table.PageSizes[0])
	s.Reload()
}

// selectedRecord maps the table cursor to a record; row 0 is the header.
func (s *Screen) selectedRecord(row int) (table.Record, bool) {
	idx := row - 1
	if idx < 0 || idx >= len(s.state.Items) {
		return nil, false
	}
	return s.state.Items[idx], true
}

// openActionMenu shows the per-row menu. The open row is tracked
// explicitly; there is exactly one open menu at any time and closing it
// always clears the id.
func (s *Screen) openActionMenu(row int) {
	rec, ok := s.selectedRecord(row)
	if !ok {
		return
	}
	s.state.OpenMenuID = rec.ID()

	labels := make([]string, 0, len(s.def.Actions)+3)
	for _, a := range s.def.Actions {
		labels = append(labels, a.Label)
	}
	labels = append(labels, "Update", "Delete", "Close")

	modal := tview.NewModal().
		SetText(fmt.Sprintf("%s #%d", s.def.Title, rec.ID())).
		AddButtons(labels).
		SetDoneFunc(func(index int, label string) {
			s.closeActionMenu()
			switch label {
			case "Update":
				s.openUpdate(rec.ID())
			case "Delete":
				s.confirmDelete(rec)
			case "Close":
			default:
				for _, a := range s.def.Actions {
					if a.Label == label {
						a.Run(s, rec)
						return
					}
				}
			}
		})

	s.pages.AddPage("menu", modal, true, true)
	s.env.SetFocus(modal)
}

func (s *Screen) closeActionMenu() {
	s.state.OpenMenuID = 0
	s.pages.RemovePage("menu")
	s.env.SetFocus(s.tableView)
}

// confirmDelete asks first; the row is only ever removed by the refetch
// after the server confirmed the delete.
func (s *Screen) confirmDelete(rec table.Record) {
	modal := tview.NewModal().
		SetText(fmt.Sprintf("Are you sure you want to delete this %s?", s.def.Singular)).
		AddButtons([]string{"Delete", "Cancel"}).
		SetDoneFunc(func(index int, label string) {
			s.pages.RemovePage("confirm")
			s.env.SetFocus(s.tableView)
			if label != "Delete" {
				return
			}
			s.deleteRecord(rec.ID())
		})
	s.pages.AddPage("confirm", modal, true, true)
	s.env.SetFocus(modal)
}

func (s *Screen) deleteRecord(id int) {
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), s.env.Timeout)
		defer cancel()
		err := s.env.Client.Delete(ctx, s.def.Entity, id)

		s.env.Post(func() {
			if err != nil {
				// Already gone server-side; the refetch drops the row.
				if api.AsAPIError(err).IsNotFound() {
					s.Reload()
					return
				}
				s.env.Logger.Warn("delete failed",
					zap.String("entity", string(s.def.Entity)),
					zap.Int("id", id),
					zap.Error(err))
				s.state.ApplyDeleteError(toFetchError(err))
				s.render()
				return
			}
			s.Reload()
		})
	}()
}

func (s *Screen) openColumnSelector() {
	s.state.ShowColumnSelector = true
	s.rebuildColumnSelector()
	s.pages.ShowPage("columns")
	s.env.SetFocus(s.colList)
}

func (s *Screen) rebuildColumnSelector() {
	ui.BuildColumnSelector(s.colList, s.def.Columns, s.state.VisibleColumns, ui.ColumnSelectorHandlers{
		OnToggle: func(key string) {
			s.state.ToggleColumn(key, s.def.Columns)
			s.rebuildColumnSelector()
			s.render()
		},
		OnSelectAll: func() {
			s.state.VisibleColumns = table.SelectAll(s.def.Columns)
			s.rebuildColumnSelector()
			s.render()
		},
		OnClearAll: func() {
			s.state.VisibleColumns = table.ClearAll(s.def.Columns)
			s.rebuildColumnSelector()
			s.render()
		},
		OnDone: func() {
			s.state.ShowColumnSelector = false
			s.pages.HidePage("columns")
			s.env.SetFocus(s.tableView)
		},
	})
}

func toFetchError(err error) *table.FetchError {
	apiErr := api.AsAPIError(err)
	return &table.FetchError{
		Message:   apiErr.Message,
		Status:    apiErr.Status,
		Timestamp: apiErr.Timestamp,
	}
}
