package manager

import (
	"fmt"
	"log/slog"

	"wormwars/game/entity"
	"wormwars/game/types"
)

// Failure reasons recorded on worms.
const (
	ReasonOutOfBounds = "out of bounds"
	ReasonSelf        = "ran into itself"
)

type CollisionManager struct {
	grid types.Grid
}

func NewCollisionManager(grid types.Grid) *CollisionManager {
	return &CollisionManager{
		grid: grid,
	}
}

// CheckCollision returns why the worm's current head is illegal, or "" when it is fine.
// Walls are checked first, then the worm's own body, then the other worms.
func (cm *CollisionManager) CheckCollision(w *entity.Worm, worms []*entity.Worm) string {
	if cm.isWallCollision(w.Head()) {
		return ReasonOutOfBounds
	}
	if w.SelfCollision() {
		return ReasonSelf
	}
	if w.OtherCollision(worms) {
		if other := cm.collidedWith(w, worms); other != nil {
			return fmt.Sprintf("ran into %s", other.ID())
		}
	}
	return ""
}

// isWallCollision checks if a position collides with walls
func (cm *CollisionManager) isWallCollision(pos types.Cell) bool {
	return !cm.grid.Contains(pos)
}

func (cm *CollisionManager) collidedWith(w *entity.Worm, worms []*entity.Worm) *entity.Worm {
	head := w.Head()
	for _, o := range worms {
		if o == nil || o.ID() == w.ID() {
			continue
		}
		for _, c := range o.Body() {
			if c == head {
				return o
			}
		}
	}
	return nil
}

// HandleMoves evaluates every worm in moved against the board as it stands after all moves
// of the tick, then marks the losers failed. Verdicts are collected before any worm is
// marked so the order of worms does not matter. It returns the worms that failed.
func (cm *CollisionManager) HandleMoves(moved []*entity.Worm) []*entity.Worm {
	verdicts := make([]string, len(moved))
	for i, w := range moved {
		verdicts[i] = cm.CheckCollision(w, moved)
	}

	var failed []*entity.Worm
	for i, w := range moved {
		if verdicts[i] == "" {
			continue
		}
		w.MarkFailed(verdicts[i])
		failed = append(failed, w)
		slog.Info("worm failed", "worm", w.ID(), "reason", verdicts[i], "head", w.Head(), "length", w.Len())
	}
	return failed
}

// ValidateSpawnPosition checks if a position is free for a new worm or food
func (cm *CollisionManager) ValidateSpawnPosition(pos types.Cell, worms []*entity.Worm) bool {
	if cm.isWallCollision(pos) {
		return false
	}
	for _, w := range worms {
		if w == nil || w.Failed() {
			continue
		}
		for _, c := range w.Body() {
			if pos == c {
				return false
			}
		}
	}
	return true
}

// IsFoodCollision checks if a position collides with food
func (cm *CollisionManager) IsFoodCollision(pos types.Cell, food types.Cell) bool {
	return pos == food
}
