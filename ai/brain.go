package ai

import (
	"errors"
	"fmt"
	"sort"

	"golang.org/x/exp/rand"

	"wormwars/game/types"
)

// ErrUnknownVariant is returned by NewBrain for an unregistered variant name.
var ErrUnknownVariant = errors.New("ai: unknown bot variant")

// Worm is the read-only view of an agent that a Brain decides for.
type Worm interface {
	ID() string
	Head() types.Cell
	Body() []types.Cell
	IsBadMove(c types.Cell, snap *types.Snapshot) bool
}

// Brain picks the next move for a worm. Implementations must not mutate the snapshot or
// any worm.
type Brain interface {
	Name() string
	Think(self Worm, snap *types.Snapshot, all []Worm) types.Move
}

type brainFactory func(seed uint64) Brain

var variants = map[string]brainFactory{
	"PathingBot": func(uint64) Brain { return PathingBot{} },
	"GreedyBot":  func(uint64) Brain { return GreedyBot{} },
	"RandomBot":  func(seed uint64) Brain { return NewRandomBot(seed) },
}

// NewBrain builds the named variant. Randomised variants draw from a source seeded with seed.
func NewBrain(name string, seed uint64) (Brain, error) {
	f, ok := variants[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownVariant, name)
	}
	return f(seed), nil
}

// Variants lists registered variant names in sorted order.
func Variants() []string {
	names := make([]string, 0, len(variants))
	for name := range variants {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// safeMoves returns the vocabulary moves that are not bad for self, in vocabulary order.
func safeMoves(self Worm, snap *types.Snapshot) []types.Move {
	head := self.Head()
	moves := make([]types.Move, 0, len(types.Moves))
	for _, m := range types.Moves {
		if !self.IsBadMove(head.Add(m), snap) {
			moves = append(moves, m)
		}
	}
	return moves
}

// GreedyBot looks one step ahead and takes the safe neighbour closest to the food.
type GreedyBot struct{}

func (GreedyBot) Name() string { return "GreedyBot" }

func (GreedyBot) Think(self Worm, snap *types.Snapshot, _ []Worm) types.Move {
	moves := safeMoves(self, snap)
	if len(moves) == 0 {
		return types.Moves[0]
	}
	head := self.Head()
	best := moves[0]
	bestDist := head.Add(best).Distance(snap.Food)
	for _, m := range moves[1:] {
		if d := head.Add(m).Distance(snap.Food); d < bestDist {
			best, bestDist = m, d
		}
	}
	return best
}

// RandomBot wanders: it picks uniformly among safe moves.
type RandomBot struct {
	rng *rand.Rand
}

func NewRandomBot(seed uint64) *RandomBot {
	return &RandomBot{rng: rand.New(rand.NewSource(seed))}
}

func (*RandomBot) Name() string { return "RandomBot" }

func (b *RandomBot) Think(self Worm, snap *types.Snapshot, _ []Worm) types.Move {
	moves := safeMoves(self, snap)
	if len(moves) == 0 {
		return types.Moves[0]
	}
	return moves[b.rng.Intn(len(moves))]
}
