package tablesort

import (
	"sort"
	"sync"

	"github.com/pkg/errors"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

type Direction string

const (
	Asc  Direction = "asc"
	Desc Direction = "desc"
)

var ErrUnknownKey = errors.New("unknown sort key")

type State struct {
	Key       string    `json:"key"`
	Direction Direction `json:"direction"`
}

// Next is the state after the user clicks the column key: the same ascending
// column flips to descending, anything else starts ascending.
func (s State) Next(key string) State {
	if s.Key == key && s.Direction == Asc {
		return State{Key: key, Direction: Desc}
	}
	return State{Key: key, Direction: Asc}
}

// Column extracts a sort key from a row. Exactly one of Text or Number is set.
type Column[T any] struct {
	Key    string
	Text   func(T) string
	Number func(T) float64
}

func Text[T any](key string, f func(T) string) Column[T] {
	return Column[T]{Key: key, Text: f}
}

func Number[T any](key string, f func(T) float64) Column[T] {
	return Column[T]{Key: key, Number: f}
}

// SortBy returns a sorted copy of rows. Text compares with English collation.
// Equal rows keep their input order in both directions.
func SortBy[T any](rows []T, col Column[T], dir Direction) []T {
	out := append([]T(nil), rows...)

	var less func(a, b T) bool
	switch {
	case col.Number != nil:
		less = func(a, b T) bool { return col.Number(a) < col.Number(b) }
	case col.Text != nil:
		coll := collate.New(language.English)
		less = func(a, b T) bool { return coll.CompareString(col.Text(a), col.Text(b)) < 0 }
	default:
		return out
	}

	if dir == Desc {
		sort.SliceStable(out, func(i, j int) bool { return less(out[j], out[i]) })
	} else {
		sort.SliceStable(out, func(i, j int) bool { return less(out[i], out[j]) })
	}
	return out
}

// Table is a row set with a click-to-sort state.
type Table[T any] struct {
	lock    sync.Mutex
	columns map[string]Column[T]
	rows    []T
	state   State
}

func New[T any](rows []T, columns ...Column[T]) *Table[T] {
	t := &Table[T]{
		columns: make(map[string]Column[T], len(columns)),
		rows:    append([]T(nil), rows...),
		state:   State{Direction: Asc},
	}
	for _, c := range columns {
		t.columns[c.Key] = c
	}
	return t
}

// WithState applies a preset sort, as when a table opens already ordered.
func (t *Table[T]) WithState(s State) (*Table[T], error) {
	t.lock.Lock()
	defer t.lock.Unlock()

	col, ok := t.columns[s.Key]
	if !ok {
		return t, errors.Wrap(ErrUnknownKey, s.Key)
	}
	t.rows = SortBy(t.rows, col, s.Direction)
	t.state = s
	return t, nil
}

// Sort toggles the direction for key and reorders the rows.
func (t *Table[T]) Sort(key string) error {
	t.lock.Lock()
	defer t.lock.Unlock()

	col, ok := t.columns[key]
	if !ok {
		return errors.Wrap(ErrUnknownKey, key)
	}
	t.state = t.state.Next(key)
	t.rows = SortBy(t.rows, col, t.state.Direction)
	return nil
}

func (t *Table[T]) Rows() []T {
	t.lock.Lock()
	defer t.lock.Unlock()
	return append([]T(nil), t.rows...)
}

func (t *Table[T]) State() State {
	t.lock.Lock()
	defer t.lock.Unlock()
	return t.state
}

// Indicator is the arrow shown next to the active column header.
func (t *Table[T]) Indicator(key string) string {
	s := t.State()
	switch {
	case s.Key != key:
		return ""
	case s.Direction == Asc:
		return "↑"
	default:
		return "↓"
	}
}

// ParseDirection reads a query value; anything but "desc" is ascending.
func ParseDirection(s string) Direction {
	if s == string(Desc) {
		return Desc
	}
	return Asc
}

// Apply sorts rows by the column named in s, for callers that carry the state themselves.
func Apply[T any](rows []T, columns []Column[T], s State) ([]T, error) {
	for _, c := range columns {
		if c.Key == s.Key {
			return SortBy(rows, c, s.Direction), nil
		}
	}
	return nil, errors.Wrap(ErrUnknownKey, s.Key)
}
