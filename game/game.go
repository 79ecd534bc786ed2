package game

import (
	"context"
	"errors"
	"log/slog"
	"runtime"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"wormwars/game/entity"
	"wormwars/game/manager"
	"wormwars/game/types"
)

// Roster entry: how many worms of which variant to spawn.
type BotSpec struct {
	Variant string
	Count   int
}

type Options struct {
	Grid     types.Grid
	Seed     uint64
	Bots     []BotSpec
	Parallel bool          // decide all worms of a tick concurrently
	Interval time.Duration // pause between ticks in Run; zero runs flat out
	Logger   *slog.Logger
}

type Game struct {
	UUID      string
	Grid      types.Grid
	Tick      int
	StartTime time.Time
	Parallel  bool
	interval  time.Duration
	logger    *slog.Logger

	collisionMgr *manager.CollisionManager
	popManager   *manager.PopulationManager
	foodManager  *manager.FoodManager
	stateMgr     *manager.StateManager
}

func NewGame(opts Options) (*Game, error) {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	cm := manager.NewCollisionManager(opts.Grid)
	pm := manager.NewPopulationManager(opts.Grid, cm, opts.Seed)
	fm := manager.NewFoodManager(opts.Grid, cm, opts.Seed)
	g := &Game{
		UUID:         uuid.New().String(),
		Grid:         opts.Grid,
		StartTime:    time.Now(),
		Parallel:     opts.Parallel,
		interval:     opts.Interval,
		logger:       logger,
		collisionMgr: cm,
		popManager:   pm,
		foodManager:  fm,
		stateMgr:     manager.NewStateManager(opts.Grid, cm, pm, fm),
	}

	for _, b := range opts.Bots {
		if err := pm.Spawn(b.Variant, b.Count); err != nil {
			return nil, err
		}
	}
	if _, err := fm.Respawn(pm.GetWorms()); err != nil {
		if !errors.Is(err, manager.ErrNoRoom) {
			return nil, err
		}
		logger.Info("board full, starting without food")
	}
	return g, nil
}

func (g *Game) Worms() []*entity.Worm {
	return g.popManager.GetWorms()
}

func (g *Game) Food() (types.Cell, bool) {
	return g.foodManager.Food()
}

func (g *Game) State() *manager.StateManager {
	return g.stateMgr
}

// Over reports whether every worm has failed.
func (g *Game) Over() bool {
	return g.popManager.IsAllWormsFailed()
}

// Step advances the game by one tick: every live worm decides against the same snapshot,
// then all moves are applied, food is eaten or tails trimmed, and collisions are judged.
func (g *Game) Step(ctx context.Context) error {
	alive := g.popManager.Alive()
	if len(alive) == 0 {
		return nil
	}

	snap := g.stateMgr.Snapshot()
	moves, err := g.decideAll(ctx, snap, alive)
	if err != nil {
		return err
	}
	for i, w := range alive {
		w.ApplyMove(moves[i])
	}

	eaten := false
	for _, w := range alive {
		if !eaten && g.collisionMgr.IsFoodCollision(w.Head(), snap.Food) {
			eaten = true
			g.stateMgr.Eat(w)
			g.logger.Debug("food eaten", "worm", w.ID(), "cell", snap.Food, "score", g.stateMgr.Score(w.ID()))
			continue
		}
		if _, err := w.RemoveTail(); err != nil {
			return err
		}
	}

	g.collisionMgr.HandleMoves(alive)

	if eaten {
		if _, err := g.foodManager.Respawn(g.popManager.Alive()); err != nil {
			if !errors.Is(err, manager.ErrNoRoom) {
				return err
			}
			g.logger.Info("board full, no food left", "tick", g.Tick)
		}
	}

	g.Tick++
	g.logger.Debug("tick", "tick", g.Tick, "alive", len(g.popManager.Alive()))
	return nil
}

// decideAll collects one move per worm. Worms are not mutated until every decision returns,
// so the parallel path sees the same frozen board as the sequential one.
func (g *Game) decideAll(ctx context.Context, snap *types.Snapshot, alive []*entity.Worm) ([]types.Move, error) {
	moves := make([]types.Move, len(alive))
	if !g.Parallel {
		for i, w := range alive {
			moves[i] = w.Decide(snap, alive)
		}
		return moves, nil
	}

	eg, ctx := errgroup.WithContext(ctx)
	eg.SetLimit(runtime.NumCPU())
	for i, w := range alive {
		i, w := i, w
		eg.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			moves[i] = w.Decide(snap, alive)
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, err
	}
	return moves, nil
}

// Run steps the game until every worm has failed, maxTicks ticks have been played
// (maxTicks <= 0 means no limit) or ctx is done. onTick, if set, is called after each tick.
func (g *Game) Run(ctx context.Context, maxTicks int, onTick func(*Game)) error {
	var tick <-chan time.Time
	if g.interval > 0 {
		ticker := time.NewTicker(g.interval)
		defer ticker.Stop()
		tick = ticker.C
	}

	g.logger.Info("game started", "uuid", g.UUID, "worms", len(g.Worms()), "grid", g.Grid)
	for !g.Over() && (maxTicks <= 0 || g.Tick < maxTicks) {
		if tick != nil {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-tick:
			}
		} else if err := ctx.Err(); err != nil {
			return err
		}

		if err := g.Step(ctx); err != nil {
			return err
		}
		if onTick != nil {
			onTick(g)
		}
	}
	g.logger.Info("game finished", "uuid", g.UUID, "ticks", g.Tick, "high_score", g.stateMgr.GetHighScore())
	return nil
}

// Stats summarises the run for persistence.
func (g *Game) Stats() manager.GameStats {
	best := 0
	for _, a := range g.stateMgr.Summary() {
		if a.Score > best {
			best = a.Score
		}
	}
	return manager.GameStats{
		UUID:         g.UUID,
		StartTime:    g.StartTime,
		EndTime:      time.Now(),
		Ticks:        g.Tick,
		HighScore:    g.stateMgr.GetHighScore(),
		ScoreHistory: append(append([]int(nil), g.stateMgr.GetScoreHistory()...), best),
		Agents:       g.stateMgr.Summary(),
	}
}
