package ai

import (
	"errors"
	"testing"

	"wormwars/game/types"
)

func TestNewBrainKnownVariants(t *testing.T) {
	for _, name := range Variants() {
		b, err := NewBrain(name, 1)
		if err != nil {
			t.Fatalf("NewBrain(%q): %v", name, err)
		}
		if b.Name() != name {
			t.Errorf("NewBrain(%q).Name() = %q", name, b.Name())
		}
	}
}

func TestNewBrainUnknownVariant(t *testing.T) {
	_, err := NewBrain("SleepyBot", 1)
	if !errors.Is(err, ErrUnknownVariant) {
		t.Fatalf("err = %v, want ErrUnknownVariant", err)
	}
}

func TestGreedyBotPicksClosestSafeNeighbour(t *testing.T) {
	w := newStub(types.Cell{X: 2, Y: 2}, types.Cell{X: 3, Y: 2})
	snap := grid(10, 10, types.Cell{X: 6, Y: 2})
	// Right is blocked by the body, so up and down tie and up wins by vocabulary order.
	if m := (GreedyBot{}).Think(w, snap, nil); m != types.Up {
		t.Fatalf("move = %v, want up", m)
	}
}

func TestRandomBotIsSeededAndSafe(t *testing.T) {
	w := newStub(types.Cell{X: 0, Y: 0}, types.Cell{X: 1, Y: 0})
	snap := grid(10, 10, types.Cell{X: 9, Y: 9})

	a, b := NewRandomBot(42), NewRandomBot(42)
	for i := 0; i < 20; i++ {
		ma, mb := a.Think(w, snap, nil), b.Think(w, snap, nil)
		if ma != mb {
			t.Fatalf("step %d: same seed gave %v and %v", i, ma, mb)
		}
		// Only down is safe from the corner with the body to the right.
		if ma != types.Down {
			t.Fatalf("step %d: move %v, want down", i, ma)
		}
	}
}

func TestBotsFallBackWhenTrapped(t *testing.T) {
	w := newStub(types.Cell{X: 0, Y: 0}, types.Cell{X: 0, Y: 1})
	snap := grid(1, 2, types.Cell{X: 5, Y: 5})
	for _, b := range []Brain{GreedyBot{}, NewRandomBot(7)} {
		if m := b.Think(w, snap, nil); m != types.Moves[0] {
			t.Errorf("%s: move = %v, want %v", b.Name(), m, types.Moves[0])
		}
	}
}
