package types

import (
	"fmt"
	"math"
)

// Grid represents the game grid dimensions
type Grid struct {
	Width  int
	Height int
}

// Snapshot is the read-only view of the board handed to every worm once per tick.
// RightEdge and BottomEdge are inclusive maximum coordinates.
type Snapshot struct {
	RightEdge  int
	BottomEdge int
	Food       Cell
}

// Snapshot builds the per-tick view for this grid with the given food cell.
func (g Grid) Snapshot(food Cell) *Snapshot {
	return &Snapshot{
		RightEdge:  g.Width - 1,
		BottomEdge: g.Height - 1,
		Food:       food,
	}
}

// Contains reports whether c lies on the grid.
func (g Grid) Contains(c Cell) bool {
	return c.X >= 0 && c.Y >= 0 && c.X < g.Width && c.Y < g.Height
}

// InBounds reports whether c lies within [0, RightEdge] x [0, BottomEdge].
func (s *Snapshot) InBounds(c Cell) bool {
	return c.X >= 0 && c.Y >= 0 && c.X <= s.RightEdge && c.Y <= s.BottomEdge
}

// Cell is a grid coordinate.
type Cell struct {
	X, Y int
}

func (c Cell) Add(m Move) Cell {
	return Cell{X: c.X + m.DX, Y: c.Y + m.DY}
}

// Distance is the straight-line distance between two cells.
func (c Cell) Distance(o Cell) float64 {
	return math.Hypot(float64(c.X-o.X), float64(c.Y-o.Y))
}

func (c Cell) String() string {
	return fmt.Sprintf("(%d,%d)", c.X, c.Y)
}

// Move is a direction vector applied to a worm's head. The zero Move means "no move".
type Move struct {
	DX, DY int
}

// Y grows downwards, so Up decrements it.
var (
	Up    = Move{DX: 0, DY: -1}
	Down  = Move{DX: 0, DY: 1}
	Left  = Move{DX: -1, DY: 0}
	Right = Move{DX: 1, DY: 0}
)

// Moves is the move vocabulary in enumeration order. Vocabulary[0] is the last-resort move.
var Moves = [4]Move{Up, Down, Left, Right}

func (m Move) IsZero() bool {
	return m == Move{}
}

func (m Move) String() string {
	switch m {
	case Up:
		return "up"
	case Down:
		return "down"
	case Left:
		return "left"
	case Right:
		return "right"
	case Move{}:
		return "none"
	}
	return fmt.Sprintf("(%+d,%+d)", m.DX, m.DY)
}

// Game constants
const (
	DefaultWidth  = 30
	DefaultHeight = 20
)
