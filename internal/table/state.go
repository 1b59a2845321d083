package table

import "time"

// Mode says which of the three views an entity screen is showing. The modes
// are mutually exclusive by construction; there is no stack.
type Mode int

const (
	ModeListing Mode = iota
	ModeCreating
	ModeEditing
)

// PageSizes are the selectable page sizes, in display order.
var PageSizes = []int{10, 25, 50}

// FetchError is the normalized failure shape shown to the render layer.
type FetchError struct {
	Message   string
	Status    int
	Timestamp time.Time
}

func (e *FetchError) Error() string { return e.Message }

// Transient reports whether the failure looks like a service-side or network
// condition rather than something the user can correct.
func (e *FetchError) Transient() bool {
	return e.Status == 0 || e.Status >= 500
}

// State is the per-screen container every entity screen shares: rows,
// search, pagination, mode, and column visibility. It is only touched from
// the UI goroutine, so it carries no locking.
type State struct {
	Items   []Record
	Loading bool

	SearchTerm  string
	SearchField string

	CurrentPage   int
	PageSize      int
	TotalPages    int
	TotalElements int

	Mode           Mode
	SelectedItemID int

	VisibleColumns     []string
	ShowColumnSelector bool

	// OpenMenuID is the id of the row whose action menu is open, 0 for none.
	OpenMenuID int

	// Err is the list-load error; DeleteErr tracks delete failures separately
	// so the two banners do not clobber each other.
	Err       *FetchError
	DeleteErr *FetchError
}

// NewState builds a fresh screen state with the defaults every screen mounts
// with: first page, no search, table view.
func NewState(searchField string, visibleColumns []string, pageSize int) *State {
	if pageSize <= 0 {
		pageSize = PageSizes[0]
	}
	return &State{
		SearchField:    searchField,
		VisibleColumns: append([]string(nil), visibleColumns...),
		PageSize:       pageSize,
	}
}

// SetSearch updates the search term and restarts pagination, so a shrunken
// result set can never leave the cursor past the end.
func (s *State) SetSearch(term string) {
	s.SearchTerm = term
	s.CurrentPage = 0
}

// SetPage moves the cursor, clamped to [0, TotalPages-1]. With no pages at
// all it is a no-op.
func (s *State) SetPage(page int) {
	if s.TotalPages == 0 {
		return
	}
	if page < 0 {
		page = 0
	}
	if page > s.TotalPages-1 {
		page = s.TotalPages - 1
	}
	s.CurrentPage = page
}

// SetPageSize switches the page size and restarts pagination.
func (s *State) SetPageSize(size int) {
	s.PageSize = size
	s.CurrentPage = 0
}

// HasPrev reports whether a previous page exists.
func (s *State) HasPrev() bool { return s.CurrentPage > 0 }

// HasNext reports whether a next page exists.
func (s *State) HasNext() bool { return s.CurrentPage < s.TotalPages-1 }

func (s *State) BeginCreate() {
	s.Mode = ModeCreating
	s.SelectedItemID = 0
}

func (s *State) CancelCreate() {
	s.Mode = ModeListing
}

// CreateSucceeded returns to the table; the caller refetches.
func (s *State) CreateSucceeded() {
	s.Mode = ModeListing
}

func (s *State) BeginUpdate(id int) {
	s.Mode = ModeEditing
	s.SelectedItemID = id
}

func (s *State) CancelUpdate() {
	s.Mode = ModeListing
	s.SelectedItemID = 0
}

// UpdateSucceeded returns to the table; the caller refetches.
func (s *State) UpdateSucceeded() {
	s.Mode = ModeListing
	s.SelectedItemID = 0
}

// ToggleColumn flips one column's visibility under the non-empty guard.
func (s *State) ToggleColumn(key string, all []Column) {
	s.VisibleColumns = Toggle(key, s.VisibleColumns, all)
}

// Display classifies what the table region should render right now.
func (s *State) Display() DisplayState {
	switch {
	case s.Loading:
		return DisplayLoading
	case s.Err != nil && len(s.Items) == 0:
		return DisplayErrorEmpty
	case s.Err != nil:
		return DisplayErrorWithData
	case len(s.Items) == 0:
		return DisplayEmpty
	default:
		return DisplayPopulated
	}
}

// DisplayState is the table region's render taxonomy.
type DisplayState int

const (
	DisplayLoading DisplayState = iota
	DisplayErrorEmpty
	DisplayErrorWithData
	DisplayEmpty
	DisplayPopulated
)
