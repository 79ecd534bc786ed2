package manager

import (
	"errors"

	"golang.org/x/exp/rand"

	"wormwars/game/entity"
	"wormwars/game/types"
)

// ErrNoRoom is returned when every cell of the grid is taken.
var ErrNoRoom = errors.New("manager: no free cell for food")

type FoodManager struct {
	grid         types.Grid
	food         types.Cell
	hasFood      bool
	rng          *rand.Rand
	collisionMgr *CollisionManager
}

func NewFoodManager(grid types.Grid, collisionMgr *CollisionManager, seed uint64) *FoodManager {
	return &FoodManager{
		grid:         grid,
		rng:          rand.New(rand.NewSource(seed)),
		collisionMgr: collisionMgr,
	}
}

// Food returns the current food cell and whether one is on the board.
func (fm *FoodManager) Food() (types.Cell, bool) {
	return fm.food, fm.hasFood
}

// Place puts the food on an explicit cell.
func (fm *FoodManager) Place(c types.Cell) {
	fm.food = c
	fm.hasFood = true
}

// Respawn moves the food to a uniformly chosen free cell.
func (fm *FoodManager) Respawn(worms []*entity.Worm) (types.Cell, error) {
	c, err := fm.GenerateFood(worms)
	if err != nil {
		fm.hasFood = false
		return types.Cell{}, err
	}
	fm.Place(c)
	return c, nil
}

// GenerateFood picks a free cell without placing it.
func (fm *FoodManager) GenerateFood(worms []*entity.Worm) (types.Cell, error) {
	free := make([]types.Cell, 0, fm.grid.Width*fm.grid.Height)
	for y := 0; y < fm.grid.Height; y++ {
		for x := 0; x < fm.grid.Width; x++ {
			c := types.Cell{X: x, Y: y}
			if fm.collisionMgr.ValidateSpawnPosition(c, worms) {
				free = append(free, c)
			}
		}
	}
	if len(free) == 0 {
		return types.Cell{}, ErrNoRoom
	}
	return free[fm.rng.Intn(len(free))], nil
}
