package app

import (
	"cmp"
	"fmt"
	"strings"

	"github.com/chris-regnier/journalctl/internal/entry"
)

// SortKey selects the entry field the active view is ordered by.
type SortKey string

const (
	SortByDate  SortKey = "date"
	SortByTitle SortKey = "title"
)

// SortOrder is the direction applied to SortKey.
type SortOrder string

const (
	Ascending  SortOrder = "ascending"
	Descending SortOrder = "descending"
)

// Sorter is a total order over entries; ties fall back to ascending id.
type Sorter struct {
	Key   SortKey   `json:"key"`
	Order SortOrder `json:"order"`
}

// DefaultSorter shows the newest entries first.
func DefaultSorter() Sorter {
	return Sorter{Key: SortByDate, Order: Descending}
}

// ParseSorter builds a sorter from CLI-style names.
func ParseSorter(key, order string) (Sorter, error) {
	s := Sorter{Key: SortKey(strings.ToLower(key)), Order: SortOrder(strings.ToLower(order))}
	switch s.Key {
	case SortByDate, SortByTitle:
	default:
		return Sorter{}, fmt.Errorf("invalid sort key %q: must be date or title", key)
	}
	switch s.Order {
	case Ascending, Descending:
	case "asc":
		s.Order = Ascending
	case "desc":
		s.Order = Descending
	default:
		return Sorter{}, fmt.Errorf("invalid sort order %q: must be ascending or descending", order)
	}
	return s, nil
}

// Valid reports whether both fields hold known values.
func (s Sorter) Valid() bool {
	return (s.Key == SortByDate || s.Key == SortByTitle) &&
		(s.Order == Ascending || s.Order == Descending)
}

// Compare orders a before b according to s.
func (s Sorter) Compare(a, b entry.Entry) int {
	var c int
	switch s.Key {
	case SortByTitle:
		c = cmp.Compare(strings.ToLower(a.Title), strings.ToLower(b.Title))
	default:
		c = a.Date.Compare(b.Date)
	}
	if s.Order == Descending {
		c = -c
	}
	if c != 0 {
		return c
	}
	return cmp.Compare(a.ID, b.ID)
}

func (s Sorter) String() string {
	return fmt.Sprintf("%s %s", s.Key, s.Order)
}
