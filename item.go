package kst

import (
	"encoding/json"
	"fmt"
	"strings"
)

var (
	_ json.Marshaler   = Item{}
	_ json.Unmarshaler = (*Item)(nil)
)

// Item is an atomic knowledge element q ∈ Q. Equality and ordering are
// based solely on ID; Label is a display-only annotation.
type Item struct {
	ID    string
	Label string
}

// NewItem creates an Item. The id must be non-empty after trimming
// whitespace, or NewItem returns ErrInvalidItem.
func NewItem(id, label string) (Item, error) {
	if strings.TrimSpace(id) == "" {
		return Item{}, fmt.Errorf("%w: empty or whitespace-only id", ErrInvalidItem)
	}
	return Item{ID: id, Label: label}, nil
}

// MustNewItem is like NewItem but panics on error. Intended for tests and
// package-level data where the id is a compile-time literal.
func MustNewItem(id, label string) Item {
	it, err := NewItem(id, label)
	if err != nil {
		panic(err)
	}
	return it
}

// String returns the display label if set, otherwise the id.
func (it Item) String() string {
	if it.Label != "" {
		return it.Label
	}
	return it.ID
}

// Less reports whether it sorts before other by id — the total order
// every deterministic iteration in this package relies on.
func (it Item) Less(other Item) bool {
	return it.ID < other.ID
}

// itemJSON is the serialized form of an Item.
type itemJSON struct {
	ID    string `json:"id"`
	Label string `json:"label,omitempty"`
}

// MarshalJSON implements json.Marshaler.
func (it Item) MarshalJSON() ([]byte, error) {
	return json.Marshal(itemJSON{ID: it.ID, Label: it.Label})
}

// UnmarshalJSON implements json.Unmarshaler. It rejects an empty id the
// same way NewItem does.
func (it *Item) UnmarshalJSON(data []byte) error {
	var j itemJSON
	if err := json.Unmarshal(data, &j); err != nil {
		return err
	}
	rebuilt, err := NewItem(j.ID, j.Label)
	if err != nil {
		return err
	}
	*it = rebuilt
	return nil
}
