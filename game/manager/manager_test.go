package manager

import (
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"wormwars/ai"
	"wormwars/game/entity"
	"wormwars/game/types"
)

func worm(n int, start types.Cell, moves ...types.Move) *entity.Worm {
	w := entity.NewInstance(n, start, ai.PathingBot{}, entity.Color{})
	for _, m := range moves {
		w.ApplyMove(m)
	}
	return w
}

func TestHandleMovesMarksFailures(t *testing.T) {
	grid := types.Grid{Width: 5, Height: 5}
	cm := NewCollisionManager(grid)

	wall := worm(0, types.Cell{X: 4, Y: 0}, types.Right)
	loop := worm(1, types.Cell{X: 1, Y: 1}, types.Right, types.Down, types.Left, types.Up)
	fine := worm(2, types.Cell{X: 2, Y: 4}, types.Left)

	failed := cm.HandleMoves([]*entity.Worm{wall, loop, fine})
	if len(failed) != 2 {
		t.Fatalf("failed = %d worms, want 2", len(failed))
	}
	if wall.FailureReason() != ReasonOutOfBounds {
		t.Errorf("wall reason = %q", wall.FailureReason())
	}
	if loop.FailureReason() != ReasonSelf {
		t.Errorf("loop reason = %q", loop.FailureReason())
	}
	if fine.Failed() {
		t.Errorf("fine worm failed: %q", fine.FailureReason())
	}
}

func TestHandleMovesHeadOnKillsBoth(t *testing.T) {
	cm := NewCollisionManager(types.Grid{Width: 5, Height: 5})
	a := worm(0, types.Cell{X: 1, Y: 2}, types.Right)
	b := worm(1, types.Cell{X: 3, Y: 2}, types.Left)

	failed := cm.HandleMoves([]*entity.Worm{a, b})
	if len(failed) != 2 {
		t.Fatalf("failed = %d, want 2", len(failed))
	}
	if !strings.Contains(a.FailureReason(), b.ID()) {
		t.Errorf("a reason = %q, want mention of %s", a.FailureReason(), b.ID())
	}
	if !strings.Contains(b.FailureReason(), a.ID()) {
		t.Errorf("b reason = %q, want mention of %s", b.FailureReason(), a.ID())
	}
}

func TestFoodRespawnsOnFreeCell(t *testing.T) {
	grid := types.Grid{Width: 3, Height: 1}
	cm := NewCollisionManager(grid)
	fm := NewFoodManager(grid, cm, 1)
	w := worm(0, types.Cell{X: 0, Y: 0}, types.Right) // occupies (0,0) and (1,0)

	for i := 0; i < 10; i++ {
		c, err := fm.Respawn([]*entity.Worm{w})
		if err != nil {
			t.Fatalf("respawn: %v", err)
		}
		if c != (types.Cell{X: 2, Y: 0}) {
			t.Fatalf("food at %v, want the only free cell (2,0)", c)
		}
	}
	if food, ok := fm.Food(); !ok || food != (types.Cell{X: 2, Y: 0}) {
		t.Fatalf("Food() = %v %v", food, ok)
	}
}

func TestFoodNoRoom(t *testing.T) {
	grid := types.Grid{Width: 2, Height: 1}
	cm := NewCollisionManager(grid)
	fm := NewFoodManager(grid, cm, 1)
	w := worm(0, types.Cell{X: 0, Y: 0}, types.Right)

	if _, err := fm.Respawn([]*entity.Worm{w}); !errors.Is(err, ErrNoRoom) {
		t.Fatalf("err = %v, want ErrNoRoom", err)
	}
	if _, ok := fm.Food(); ok {
		t.Fatal("food should be cleared when there is no room")
	}
}

func TestPopulationSpawn(t *testing.T) {
	grid := types.Grid{Width: 6, Height: 6}
	cm := NewCollisionManager(grid)
	pm := NewPopulationManager(grid, cm, 9)

	if err := pm.Spawn("PathingBot", 2); err != nil {
		t.Fatalf("spawn: %v", err)
	}
	if err := pm.Spawn("RandomBot", 1); err != nil {
		t.Fatalf("spawn: %v", err)
	}
	worms := pm.GetWorms()
	ids := []string{"<PathingBot>.0", "<PathingBot>.1", "<RandomBot>.0"}
	if len(worms) != len(ids) {
		t.Fatalf("worms = %d, want %d", len(worms), len(ids))
	}
	seen := make(map[types.Cell]bool)
	for i, w := range worms {
		if w.ID() != ids[i] {
			t.Errorf("worm %d id = %q, want %q", i, w.ID(), ids[i])
		}
		if seen[w.Head()] {
			t.Errorf("two worms spawned on %v", w.Head())
		}
		seen[w.Head()] = true
	}

	if err := pm.Spawn("SleepyBot", 1); !errors.Is(err, ai.ErrUnknownVariant) {
		t.Fatalf("err = %v, want ErrUnknownVariant", err)
	}

	worms[0].MarkFailed("test")
	if len(pm.Alive()) != 2 || pm.IsAllWormsFailed() {
		t.Fatalf("alive = %d", len(pm.Alive()))
	}
}

func TestStatsRoundTrip(t *testing.T) {
	grid := types.Grid{Width: 4, Height: 4}
	cm := NewCollisionManager(grid)
	pm := NewPopulationManager(grid, cm, 1)
	sm := NewStateManager(grid, cm, pm, NewFoodManager(grid, cm, 1))

	w := worm(0, types.Cell{})
	pm.AddWorm(w)
	sm.Eat(w)
	sm.Eat(w)
	sm.AddToHistory(sm.Score(w.ID()))

	file := filepath.Join(t.TempDir(), "stats", "game.json")
	if err := sm.SaveStats(file, GameStats{
		UUID:         "run",
		HighScore:    sm.GetHighScore(),
		ScoreHistory: sm.GetScoreHistory(),
		Agents:       sm.Summary(),
	}); err != nil {
		t.Fatalf("save: %v", err)
	}

	other := NewStateManager(grid, cm, pm, NewFoodManager(grid, cm, 1))
	if err := other.LoadStats(file); err != nil {
		t.Fatalf("load: %v", err)
	}
	if other.GetHighScore() != 2 || len(other.GetScoreHistory()) != 1 {
		t.Fatalf("loaded high=%d history=%v", other.GetHighScore(), other.GetScoreHistory())
	}
	if err := other.LoadStats(filepath.Join(t.TempDir(), "missing.json")); err != nil {
		t.Fatalf("missing file: %v", err)
	}
}

func TestSnapshotWithoutFood(t *testing.T) {
	grid := types.Grid{Width: 4, Height: 3}
	cm := NewCollisionManager(grid)
	sm := NewStateManager(grid, cm, NewPopulationManager(grid, cm, 1), NewFoodManager(grid, cm, 1))
	s := sm.Snapshot()
	if s.InBounds(s.Food) {
		t.Fatalf("food %v should be off the board", s.Food)
	}
	sm.GetFoodManager().Place(types.Cell{X: 1, Y: 1})
	if s := sm.Snapshot(); s.Food != (types.Cell{X: 1, Y: 1}) || s.RightEdge != 3 || s.BottomEdge != 2 {
		t.Fatalf("snapshot = %+v", s)
	}
}
