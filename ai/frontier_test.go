package ai

import (
	"errors"
	"testing"

	"wormwars/game/types"
)

func TestFrontierPopsInPriorityOrder(t *testing.T) {
	f := NewFrontier()
	f.Push(Node{Priority: 3, Cell: types.Cell{X: 3}})
	f.PushAll([]Node{
		{Priority: 1, Cell: types.Cell{X: 1}},
		{Priority: 5, Cell: types.Cell{X: 5}},
		{Priority: 0.5, Cell: types.Cell{X: 0}},
	})
	if f.Len() != 4 {
		t.Fatalf("len = %d, want 4", f.Len())
	}

	var got []float64
	for !f.IsEmpty() {
		n, err := f.Pop()
		if err != nil {
			t.Fatalf("pop: %v", err)
		}
		got = append(got, n.Priority)
	}
	want := []float64{0.5, 1, 3, 5}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("pop order = %v, want %v", got, want)
		}
	}
}

func TestFrontierTiesKeepInsertionOrder(t *testing.T) {
	f := NewFrontier()
	for x := 0; x < 5; x++ {
		f.Push(Node{Priority: 2, Cell: types.Cell{X: x}})
	}
	for x := 0; x < 5; x++ {
		n, _ := f.Pop()
		if n.Cell.X != x {
			t.Fatalf("tie pop %d returned cell %v", x, n.Cell)
		}
	}
}

func TestFrontierPopEmpty(t *testing.T) {
	f := NewFrontier()
	if !f.IsEmpty() {
		t.Fatal("new frontier should be empty")
	}
	if _, err := f.Pop(); !errors.Is(err, ErrEmptyFrontier) {
		t.Fatalf("pop on empty = %v, want ErrEmptyFrontier", err)
	}
}
