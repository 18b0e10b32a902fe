package kst

import (
	"encoding/json"
	"sort"
	"strings"
)

var (
	_ json.Marshaler   = KnowledgeState{}
	_ json.Unmarshaler = (*KnowledgeState)(nil)
)

// KnowledgeState is an immutable set of items: the items a learner is
// assumed to have mastered. The zero value is the empty state ∅.
type KnowledgeState struct {
	items []Item // sorted by id, deduplicated
}

// NewKnowledgeState builds a KnowledgeState from a slice of items,
// deduplicating by id and sorting for deterministic iteration.
func NewKnowledgeState(items ...Item) KnowledgeState {
	seen := make(map[string]Item, len(items))
	for _, it := range items {
		seen[it.ID] = it
	}
	out := make([]Item, 0, len(seen))
	for _, it := range seen {
		out = append(out, it)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Less(out[j]) })
	return KnowledgeState{items: out}
}

// Items returns the items of the state in id order. The returned slice
// must not be mutated by the caller.
func (k KnowledgeState) Items() []Item {
	return k.items
}

// Len returns |K|.
func (k KnowledgeState) Len() int {
	return len(k.items)
}

// IsEmpty reports whether K = ∅.
func (k KnowledgeState) IsEmpty() bool {
	return len(k.items) == 0
}

// ItemIDs returns the sorted ids of the items in K.
func (k KnowledgeState) ItemIDs() []string {
	ids := make([]string, len(k.items))
	for i, it := range k.items {
		ids[i] = it.ID
	}
	return ids
}

// Key returns a canonical string identifying this state's item-id set —
// the id set joined by id order, used as a map key wherever states are
// indexed (knowledge-space membership, belief states, transition matrices).
// Two states with the same item ids have the same Key regardless of how
// they were built.
func (k KnowledgeState) Key() string {
	return strings.Join(k.ItemIDs(), ",")
}

// Contains reports whether item q ∈ K (by id).
func (k KnowledgeState) Contains(it Item) bool {
	return k.ContainsID(it.ID)
}

// ContainsID reports whether an item with the given id is in K.
func (k KnowledgeState) ContainsID(id string) bool {
	_, ok := k.indexOf(id)
	return ok
}

func (k KnowledgeState) indexOf(id string) (int, bool) {
	i := sort.Search(len(k.items), func(i int) bool { return k.items[i].ID >= id })
	if i < len(k.items) && k.items[i].ID == id {
		return i, true
	}
	return 0, false
}

// Union returns K ∪ other.
func (k KnowledgeState) Union(other KnowledgeState) KnowledgeState {
	return mergeStates(k, other, func(inA, inB bool) bool { return inA || inB })
}

// Intersection returns K ∩ other.
func (k KnowledgeState) Intersection(other KnowledgeState) KnowledgeState {
	return mergeStates(k, other, func(inA, inB bool) bool { return inA && inB })
}

// Difference returns K \ other.
func (k KnowledgeState) Difference(other KnowledgeState) KnowledgeState {
	return mergeStates(k, other, func(inA, inB bool) bool { return inA && !inB })
}

// SymmetricDifference returns K △ other.
func (k KnowledgeState) SymmetricDifference(other KnowledgeState) KnowledgeState {
	return mergeStates(k, other, func(inA, inB bool) bool { return inA != inB })
}

// mergeStates merges two already-sorted item slices, keeping an item
// wherever keep(presentInA, presentInB) is true. All four set operations
// are one linear merge pass apart.
func mergeStates(a, b KnowledgeState, keep func(inA, inB bool) bool) KnowledgeState {
	var out []Item
	i, j := 0, 0
	for i < len(a.items) || j < len(b.items) {
		switch {
		case j >= len(b.items) || (i < len(a.items) && a.items[i].ID < b.items[j].ID):
			if keep(true, false) {
				out = append(out, a.items[i])
			}
			i++
		case i >= len(a.items) || b.items[j].ID < a.items[i].ID:
			if keep(false, true) {
				out = append(out, b.items[j])
			}
			j++
		default:
			if keep(true, true) {
				out = append(out, a.items[i])
			}
			i++
			j++
		}
	}
	return KnowledgeState{items: out}
}

// WithItem returns K ∪ {q}.
func (k KnowledgeState) WithItem(it Item) KnowledgeState {
	return k.Union(NewKnowledgeState(it))
}

// WithoutItem returns K \ {q}.
func (k KnowledgeState) WithoutItem(it Item) KnowledgeState {
	return k.Difference(NewKnowledgeState(it))
}

// IsSubsetOf reports whether K ⊆ other.
func (k KnowledgeState) IsSubsetOf(other KnowledgeState) bool {
	for _, it := range k.items {
		if !other.ContainsID(it.ID) {
			return false
		}
	}
	return true
}

// IsProperSubsetOf reports whether K ⊂ other.
func (k KnowledgeState) IsProperSubsetOf(other KnowledgeState) bool {
	return k.Len() < other.Len() && k.IsSubsetOf(other)
}

// Equal reports whether K and other contain exactly the same items.
func (k KnowledgeState) Equal(other KnowledgeState) bool {
	return k.Key() == other.Key()
}

// String renders the state as "{a, b, c}" using item ids in sorted order.
func (k KnowledgeState) String() string {
	return "{" + strings.Join(k.ItemIDs(), ", ") + "}"
}

// MarshalJSON implements json.Marshaler. A KnowledgeState serializes as a
// JSON array of item ids in sorted order; labels are not carried, since a
// state's identity depends only on which ids it contains.
func (k KnowledgeState) MarshalJSON() ([]byte, error) {
	return json.Marshal(k.ItemIDs())
}

// UnmarshalJSON implements json.Unmarshaler. Expects a JSON array of item
// ids; the rebuilt items carry no label.
func (k *KnowledgeState) UnmarshalJSON(data []byte) error {
	var ids []string
	if err := json.Unmarshal(data, &ids); err != nil {
		return err
	}
	items := make([]Item, len(ids))
	for i, id := range ids {
		items[i] = Item{ID: id}
	}
	*k = NewKnowledgeState(items...)
	return nil
}
