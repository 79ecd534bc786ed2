package manager

import (
	"fmt"

	"golang.org/x/exp/rand"

	"wormwars/ai"
	"wormwars/game/entity"
	"wormwars/game/types"
)

type PopulationManager struct {
	grid         types.Grid
	worms        []*entity.Worm
	counts       map[string]int // instances created per variant
	seed         uint64
	rng          *rand.Rand
	collisionMgr *CollisionManager
}

func NewPopulationManager(grid types.Grid, collisionMgr *CollisionManager, seed uint64) *PopulationManager {
	return &PopulationManager{
		grid:         grid,
		counts:       make(map[string]int),
		seed:         seed,
		rng:          rand.New(rand.NewSource(seed)),
		collisionMgr: collisionMgr,
	}
}

// Spawn adds count worms of the named variant on random free cells. Each worm gets its own
// brain, seeded from the population seed and its position in the roster.
func (pm *PopulationManager) Spawn(variant string, count int) error {
	for i := 0; i < count; i++ {
		brain, err := ai.NewBrain(variant, pm.seed+uint64(len(pm.worms))+1)
		if err != nil {
			return err
		}
		pos, err := pm.freeCell()
		if err != nil {
			return fmt.Errorf("spawn %s: %w", variant, err)
		}
		n := pm.counts[variant]
		pm.counts[variant]++
		pm.AddWorm(entity.NewInstance(n, pos, brain, pm.randomColor()))
	}
	return nil
}

func (pm *PopulationManager) freeCell() (types.Cell, error) {
	free := make([]types.Cell, 0, pm.grid.Width*pm.grid.Height)
	for y := 0; y < pm.grid.Height; y++ {
		for x := 0; x < pm.grid.Width; x++ {
			c := types.Cell{X: x, Y: y}
			if pm.collisionMgr.ValidateSpawnPosition(c, pm.worms) {
				free = append(free, c)
			}
		}
	}
	if len(free) == 0 {
		return types.Cell{}, ErrNoRoom
	}
	return free[pm.rng.Intn(len(free))], nil
}

func (pm *PopulationManager) AddWorm(w *entity.Worm) {
	pm.worms = append(pm.worms, w)
}

// GetWorms returns every worm, failed ones included.
func (pm *PopulationManager) GetWorms() []*entity.Worm {
	return pm.worms
}

// Alive returns the worms that have not failed, in spawn order.
func (pm *PopulationManager) Alive() []*entity.Worm {
	alive := make([]*entity.Worm, 0, len(pm.worms))
	for _, w := range pm.worms {
		if !w.Failed() {
			alive = append(alive, w)
		}
	}
	return alive
}

func (pm *PopulationManager) IsAllWormsFailed() bool {
	for _, w := range pm.worms {
		if !w.Failed() {
			return false
		}
	}
	return true
}

// randomColor keeps every channel bright enough to read on a dark terminal.
func (pm *PopulationManager) randomColor() entity.Color {
	return entity.Color{
		R: uint8(pm.rng.Intn(200) + 55),
		G: uint8(pm.rng.Intn(200) + 55),
		B: uint8(pm.rng.Intn(200) + 55),
	}
}
