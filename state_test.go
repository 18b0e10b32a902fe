package kst

import (
	"encoding/json"
	"testing"
)

func abItems() (Item, Item, Item) {
	return MustNewItem("a", ""), MustNewItem("b", ""), MustNewItem("c", "")
}

func TestNewKnowledgeStateDedupsAndSorts(t *testing.T) {
	a, b, _ := abItems()
	s := NewKnowledgeState(b, a, a)
	if got := s.ItemIDs(); len(got) != 2 || got[0] != "a" || got[1] != "b" {
		t.Errorf("ItemIDs() = %v, want [a b]", got)
	}
}

func TestKnowledgeStateSetOps(t *testing.T) {
	a, b, c := abItems()
	ab := NewKnowledgeState(a, b)
	bc := NewKnowledgeState(b, c)

	if union := ab.Union(bc); union.Key() != "a,b,c" {
		t.Errorf("Union() = %s, want {a, b, c}", union)
	}
	if inter := ab.Intersection(bc); inter.Key() != "b" {
		t.Errorf("Intersection() = %s, want {b}", inter)
	}
	if diff := ab.Difference(bc); diff.Key() != "a" {
		t.Errorf("Difference() = %s, want {a}", diff)
	}
	if sym := ab.SymmetricDifference(bc); sym.Key() != "a,c" {
		t.Errorf("SymmetricDifference() = %s, want {a, c}", sym)
	}
}

func TestKnowledgeStateSubsetAndEqual(t *testing.T) {
	a, b, _ := abItems()
	ab := NewKnowledgeState(a, b)
	justA := NewKnowledgeState(a)

	if !justA.IsSubsetOf(ab) {
		t.Error("{a} should be a subset of {a, b}")
	}
	if !justA.IsProperSubsetOf(ab) {
		t.Error("{a} should be a proper subset of {a, b}")
	}
	if ab.IsProperSubsetOf(ab) {
		t.Error("{a, b} should not be a proper subset of itself")
	}
	if !ab.Equal(NewKnowledgeState(b, a)) {
		t.Error("Equal() should ignore construction order")
	}
}

func TestKnowledgeStateWithAndWithoutItem(t *testing.T) {
	a, _, _ := abItems()
	empty := KnowledgeState{}
	withA := empty.WithItem(a)
	if !withA.Equal(NewKnowledgeState(a)) {
		t.Errorf("WithItem() = %s, want {a}", withA)
	}
	if !withA.WithoutItem(a).IsEmpty() {
		t.Error("WithoutItem() should return the empty state")
	}
}

func TestKnowledgeStateString(t *testing.T) {
	a, b, _ := abItems()
	if got := NewKnowledgeState(a, b).String(); got != "{a, b}" {
		t.Errorf("String() = %q, want %q", got, "{a, b}")
	}
	if got := (KnowledgeState{}).String(); got != "{}" {
		t.Errorf("String() for empty state = %q, want %q", got, "{}")
	}
}

func TestKnowledgeStateMarshalJSONRoundTrip(t *testing.T) {
	a, b, _ := abItems()
	s := NewKnowledgeState(b, a)

	data, err := json.Marshal(s)
	if err != nil {
		t.Fatalf("json.Marshal() error = %v", err)
	}
	if want := `["a","b"]`; string(data) != want {
		t.Errorf("json.Marshal() = %s, want %s", data, want)
	}

	var got KnowledgeState
	if err := json.Unmarshal(data, &got); err != nil {
		t.Fatalf("json.Unmarshal() error = %v", err)
	}
	if !got.Equal(s) {
		t.Errorf("round trip = %s, want %s", got, s)
	}
}

func TestKnowledgeStateMarshalJSONEmpty(t *testing.T) {
	data, err := json.Marshal(KnowledgeState{})
	if err != nil {
		t.Fatalf("json.Marshal() error = %v", err)
	}
	if string(data) != "[]" {
		t.Errorf("json.Marshal(empty) = %s, want []", data)
	}
}
