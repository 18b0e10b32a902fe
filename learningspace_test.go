package kst

import (
	"errors"
	"testing"
)

func diamondLearningSpace(t *testing.T) (Domain, LearningSpace) {
	t.Helper()
	d, states := diamondStates(t)
	space, err := NewLearningSpace(d, states)
	if err != nil {
		t.Fatalf("NewLearningSpace() error = %v", err)
	}
	return d, space
}

func TestNewLearningSpaceRejectsInaccessibleState(t *testing.T) {
	d := diamondDomain(t)
	a, _ := d.Item("a")
	b, _ := d.Item("b")
	c, _ := d.Item("c")
	states := []KnowledgeState{d.EmptyState(), NewKnowledgeState(a), NewKnowledgeState(a, b, c), d.FullState()}
	_, err := NewLearningSpace(d, states)
	var inaccessible *InaccessibleStateError
	if !errors.As(err, &inaccessible) {
		t.Errorf("NewLearningSpace() error = %v, want *InaccessibleStateError", err)
	}
}

func TestLearningSpaceLearningPaths(t *testing.T) {
	_, space := diamondLearningSpace(t)
	paths, truncated := space.LearningPaths(100)
	if truncated {
		t.Error("LearningPaths(100) should not truncate for this small space")
	}
	if len(paths) == 0 {
		t.Fatal("LearningPaths() returned no paths")
	}
	for _, p := range paths {
		if len(p) != 4 {
			t.Errorf("path %v should visit exactly 4 items (reach the full state)", p)
		}
	}
}

func TestLearningSpaceLearningPathsTruncates(t *testing.T) {
	_, space := diamondLearningSpace(t)
	paths, truncated := space.LearningPaths(1)
	if !truncated {
		t.Error("LearningPaths(1) should report truncation when more paths exist")
	}
	if len(paths) != 1 {
		t.Errorf("LearningPaths(1) returned %d paths, want 1", len(paths))
	}
}
