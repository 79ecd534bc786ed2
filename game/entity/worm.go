package entity

import (
	"errors"
	"fmt"

	"wormwars/ai"
	"wormwars/game/types"
)

// ErrTailUnderflow is returned by RemoveTail when only the head is left.
var ErrTailUnderflow = errors.New("entity: cannot remove the last body cell")

const notFailed = "Hasn't Failed"

type Color struct {
	R, G, B uint8
}

// Hex formats the color as #rrggbb.
func (c Color) Hex() string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}

// Worm is a single agent on the board. Its body is ordered head first and is only
// changed through ApplyMove and RemoveTail.
type Worm struct {
	id     string
	body   []types.Cell
	brain  ai.Brain
	failed bool
	reason string
	Color  Color
}

func NewWorm(id string, startPos types.Cell, brain ai.Brain, color Color) *Worm {
	return &Worm{
		id:     id,
		body:   []types.Cell{startPos},
		brain:  brain,
		reason: notFailed,
		Color:  color,
	}
}

// NewInstance names the worm after its brain variant: "<PathingBot>.3".
func NewInstance(n int, startPos types.Cell, brain ai.Brain, color Color) *Worm {
	return NewWorm(fmt.Sprintf("<%s>.%d", brain.Name(), n), startPos, brain, color)
}

func (w *Worm) ID() string {
	return w.id
}

// Variant is the name of the brain driving this worm.
func (w *Worm) Variant() string {
	return w.brain.Name()
}

func (w *Worm) Head() types.Cell {
	return w.body[0]
}

// Body returns a copy of the body, head first.
func (w *Worm) Body() []types.Cell {
	out := make([]types.Cell, len(w.body))
	copy(out, w.body)
	return out
}

func (w *Worm) Len() int {
	return len(w.body)
}

// Decide asks the worm's brain for its next move. It does not change any worm.
func (w *Worm) Decide(snap *types.Snapshot, all []*Worm) types.Move {
	others := make([]ai.Worm, len(all))
	for i, o := range all {
		others[i] = o
	}
	return w.brain.Think(w, snap, others)
}

// ApplyMove grows a new head one step along m. The tail stays put: the caller must call
// RemoveTail on every tick in which no food was eaten.
func (w *Worm) ApplyMove(m types.Move) {
	head := w.Head().Add(m)
	w.body = append(w.body, types.Cell{})
	copy(w.body[1:], w.body)
	w.body[0] = head
}

// RemoveTail drops and returns the last body cell. A single-cell body is left unchanged.
func (w *Worm) RemoveTail() (types.Cell, error) {
	if len(w.body) <= 1 {
		return types.Cell{}, ErrTailUnderflow
	}
	tail := w.body[len(w.body)-1]
	w.body = w.body[:len(w.body)-1]
	return tail, nil
}

// SelfCollision reports whether the head sits on any other cell of the body.
func (w *Worm) SelfCollision() bool {
	return w.hits(w.body[1:])
}

// OtherCollision reports whether the head sits on any cell of another worm.
func (w *Worm) OtherCollision(worms []*Worm) bool {
	for _, o := range worms {
		if o == nil || o.id == w.id {
			continue
		}
		if w.hits(o.body) {
			return true
		}
	}
	return false
}

func (w *Worm) hits(cells []types.Cell) bool {
	head := w.Head()
	for _, c := range cells {
		if c == head {
			return true
		}
	}
	return false
}

// IsBadMove reports whether stepping onto c would leave the board (only checked when snap
// is non-nil) or run into the current body behind the head.
func (w *Worm) IsBadMove(c types.Cell, snap *types.Snapshot) bool {
	if snap != nil && !snap.InBounds(c) {
		return true
	}
	for _, part := range w.body[1:] {
		if part == c {
			return true
		}
	}
	return false
}

// MarkFailed records that the worm is out of the game. Only the first reason is kept.
func (w *Worm) MarkFailed(reason string) {
	if w.failed {
		return
	}
	w.failed = true
	w.reason = reason
}

func (w *Worm) Failed() bool {
	return w.failed
}

func (w *Worm) FailureReason() string {
	return w.reason
}
