// Package grid implements the in-memory data-query engine behind the
// roster views: a composable filter tree, stable multi-column sorting,
// paging and id-based row selection over already-normalized rows.
package grid

// SortDirection orders a column ascending or descending.
type SortDirection string

const (
	SortAsc  SortDirection = "asc"
	SortDesc SortDirection = "desc"
)

// SortDescriptor orders rows by one field.
type SortDescriptor struct {
	Field string        `json:"field"`
	Dir   SortDirection `json:"dir"`
}

// FilterNode is one node of a filter tree. A node is either a
// composite (Logic set, Filters populated) or a leaf comparison
// (Field/Operator set).
type FilterNode struct {
	Logic   string       `json:"logic,omitempty"`
	Filters []FilterNode `json:"filters,omitempty"`

	Field    string `json:"field,omitempty"`
	Operator string `json:"operator,omitempty"`
	Value    any    `json:"value,omitempty"`
}

func (n FilterNode) composite() bool {
	return n.Logic != ""
}

// State is the full query state of a grid. Update methods return a new
// state with only the touched field replaced, so callers can treat
// states as values.
type State struct {
	Sort       []SortDescriptor `json:"sort,omitempty"`
	Filter     *FilterNode      `json:"filter,omitempty"`
	Skip       int              `json:"skip"`
	Take       int              `json:"take"`
	SelectedID string           `json:"selectedId,omitempty"`
}

// WithSort replaces the sort descriptors.
func (s State) WithSort(sort []SortDescriptor) State {
	s.Sort = sort
	return s
}

// WithFilter replaces the filter tree and resets paging to the first
// page, keeping the current selection.
func (s State) WithFilter(filter *FilterNode) State {
	s.Filter = filter
	s.Skip = 0
	return s
}

// WithPage replaces the paging window.
func (s State) WithPage(skip, take int) State {
	s.Skip = skip
	s.Take = take
	return s
}

// WithSelection replaces the selected row id. Selection is keyed by id
// so it survives filter and page changes even while the row is not in
// the visible window.
func (s State) WithSelection(id string) State {
	s.SelectedID = id
	return s
}

// Item is a grid-addressable row.
type Item interface {
	Key() string
	Field(name string) any
}

// IsSelected reports whether the item is the current selection.
func (s State) IsSelected(item Item) bool {
	return s.SelectedID != "" && s.SelectedID == item.Key()
}
