package kst

import (
	"encoding/json"
	"errors"
	"testing"
)

func pairDomain(t *testing.T) Domain {
	t.Helper()
	d, err := NewDomain(MustNewItem("a", ""), MustNewItem("b", ""))
	if err != nil {
		t.Fatalf("NewDomain() error = %v", err)
	}
	return d
}

func TestUniformBLIMParameters(t *testing.T) {
	d := pairDomain(t)
	p, err := UniformBLIMParameters(d, 0.1, 0.2)
	if err != nil {
		t.Fatalf("UniformBLIMParameters() error = %v", err)
	}
	if p.Slip("a") != 0.1 || p.Guess("b") != 0.2 {
		t.Errorf("Slip/Guess mismatch: slip=%v guess=%v", p.Slip("a"), p.Guess("b"))
	}
}

func TestNewBLIMParametersRejectsOutOfRange(t *testing.T) {
	d := pairDomain(t)
	_, err := NewBLIMParameters(d, map[string]float64{"a": 0.6, "b": 0}, map[string]float64{"a": 0, "b": 0})
	if !errors.Is(err, ErrParameterOutOfRange) {
		t.Errorf("NewBLIMParameters() error = %v, want ErrParameterOutOfRange", err)
	}
}

func TestBLIMParametersPCorrect(t *testing.T) {
	d := pairDomain(t)
	p, _ := UniformBLIMParameters(d, 0.1, 0.2)
	a, _ := d.Item("a")
	mastered := NewKnowledgeState(a)
	unmastered := d.EmptyState()

	if got := p.PCorrect("a", mastered); got != 0.9 {
		t.Errorf("PCorrect(a, {a}) = %v, want 0.9", got)
	}
	if got := p.PCorrect("a", unmastered); got != 0.2 {
		t.Errorf("PCorrect(a, {}) = %v, want 0.2", got)
	}
	if got := p.PIncorrect("a", mastered); got != 0.1 {
		t.Errorf("PIncorrect(a, {a}) = %v, want 0.1", got)
	}
}

func TestBLIMParametersPPattern(t *testing.T) {
	d := pairDomain(t)
	p, _ := UniformBLIMParameters(d, 0.1, 0.2)
	a, _ := d.Item("a")
	state := NewKnowledgeState(a)

	got := p.PPattern(map[string]bool{"a": true, "b": false}, state)
	want := 0.9 * 0.8 // a correct under mastery, b incorrect under non-mastery
	if diff := got - want; diff > 1e-9 || diff < -1e-9 {
		t.Errorf("PPattern() = %v, want %v", got, want)
	}
}

func TestBLIMParametersMarshalJSONRoundTrip(t *testing.T) {
	d := pairDomain(t)
	p, _ := UniformBLIMParameters(d, 0.1, 0.2)

	data, err := json.Marshal(p)
	if err != nil {
		t.Fatalf("json.Marshal() error = %v", err)
	}

	var got BLIMParameters
	if err := json.Unmarshal(data, &got); err != nil {
		t.Fatalf("json.Unmarshal() error = %v", err)
	}
	if got.Slip("a") != p.Slip("a") || got.Guess("b") != p.Guess("b") {
		t.Errorf("round trip = %+v, want slip/guess matching original", got)
	}
	if got.Domain().Len() != d.Len() {
		t.Errorf("round trip domain has %d items, want %d", got.Domain().Len(), d.Len())
	}
}

func TestBLIMParametersUnmarshalJSONRejectsOutOfRange(t *testing.T) {
	raw := `{"items":[{"id":"a"},{"id":"b"}],"slip":{"a":0.6,"b":0},"guess":{"a":0,"b":0}}`
	var p BLIMParameters
	err := json.Unmarshal([]byte(raw), &p)
	if !errors.Is(err, ErrParameterOutOfRange) {
		t.Errorf("UnmarshalJSON() error = %v, want ErrParameterOutOfRange", err)
	}
}
