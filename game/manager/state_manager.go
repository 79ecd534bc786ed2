package manager

import (
	"encoding/json"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"wormwars/game/entity"
	"wormwars/game/types"
)

type AgentStats struct {
	ID      string `json:"id"`
	Variant string `json:"variant"`
	Score   int    `json:"score"`
	Length  int    `json:"length"`
	Failed  bool   `json:"failed"`
	Reason  string `json:"reason"`
}

type GameStats struct {
	UUID         string       `json:"uuid"`
	StartTime    time.Time    `json:"startTime"`
	EndTime      time.Time    `json:"endTime"`
	Ticks        int          `json:"ticks"`
	HighScore    int          `json:"highScore"`
	ScoreHistory []int        `json:"scoreHistory"`
	Agents       []AgentStats `json:"agents,omitempty"`
}

type StateManager struct {
	grid         types.Grid
	collisionMgr *CollisionManager
	popManager   *PopulationManager
	foodManager  *FoodManager
	scores       map[string]int
	highScore    int
	scoreHistory []int
}

func NewStateManager(grid types.Grid, collisionMgr *CollisionManager, popManager *PopulationManager, foodManager *FoodManager) *StateManager {
	return &StateManager{
		grid:         grid,
		collisionMgr: collisionMgr,
		popManager:   popManager,
		foodManager:  foodManager,
		scores:       make(map[string]int),
		scoreHistory: make([]int, 0),
	}
}

// SaveStats writes stats as indented JSON, creating the directory if needed.
func (sm *StateManager) SaveStats(filename string, stats GameStats) error {
	if err := os.MkdirAll(filepath.Dir(filename), 0o755); err != nil {
		return err
	}
	data, err := json.MarshalIndent(stats, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(filename, data, 0o644)
}

// LoadStats restores the high score and score history of earlier runs. A missing file is
// not an error.
func (sm *StateManager) LoadStats(filename string) error {
	data, err := os.ReadFile(filename)
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	if err != nil {
		return err
	}

	var stats GameStats
	if err := json.Unmarshal(data, &stats); err != nil {
		return err
	}
	sm.highScore = stats.HighScore
	sm.scoreHistory = stats.ScoreHistory
	return nil
}

// Eat credits w with one food.
func (sm *StateManager) Eat(w *entity.Worm) {
	sm.scores[w.ID()]++
	sm.UpdateScore(sm.scores[w.ID()])
}

func (sm *StateManager) Score(id string) int {
	return sm.scores[id]
}

func (sm *StateManager) UpdateScore(score int) {
	if score > sm.highScore {
		sm.highScore = score
	}
}

func (sm *StateManager) AddToHistory(score int) {
	sm.scoreHistory = append(sm.scoreHistory, score)
}

func (sm *StateManager) GetHighScore() int {
	return sm.highScore
}

func (sm *StateManager) GetScoreHistory() []int {
	return sm.scoreHistory
}

func (sm *StateManager) GetFoodManager() *FoodManager {
	return sm.foodManager
}

func (sm *StateManager) GetPopulationManager() *PopulationManager {
	return sm.popManager
}

func (sm *StateManager) GetCollisionManager() *CollisionManager {
	return sm.collisionMgr
}

// Snapshot builds the per-tick view. Without food on the board the food cell is placed off
// the grid, which no worm can reach.
func (sm *StateManager) Snapshot() *types.Snapshot {
	food, ok := sm.foodManager.Food()
	if !ok {
		food = types.Cell{X: -1, Y: -1}
	}
	return sm.grid.Snapshot(food)
}

// Summary collects per-agent results for the worms in play.
func (sm *StateManager) Summary() []AgentStats {
	worms := sm.popManager.GetWorms()
	out := make([]AgentStats, 0, len(worms))
	for _, w := range worms {
		out = append(out, AgentStats{
			ID:      w.ID(),
			Variant: w.Variant(),
			Score:   sm.scores[w.ID()],
			Length:  w.Len(),
			Failed:  w.Failed(),
			Reason:  w.FailureReason(),
		})
	}
	return out
}
