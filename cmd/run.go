package cmd

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"wormwars/config"
	"wormwars/game"
	"wormwars/ui"
)

func runCmd() *cobra.Command {
	var (
		ticks    int
		seed     uint64
		render   bool
		parallel bool
	)
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run a simulation until every worm fails or the tick limit is hit",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(resolveConfigPath())
			if err != nil {
				return err
			}
			flags := cmd.Flags()
			if flags.Changed("ticks") {
				cfg.MaxTicks = ticks
			}
			if flags.Changed("seed") {
				cfg.Seed = seed
			}
			if flags.Changed("render") {
				cfg.Render = render
			}
			if flags.Changed("parallel") {
				cfg.Parallel = parallel
			}

			level, err := cfg.Level()
			if err != nil {
				return err
			}
			logger := newLogger(level)
			slog.SetDefault(logger)

			g, err := game.NewGame(cfg.GameOptions(logger))
			if err != nil {
				return err
			}
			if cfg.StatsFile != "" {
				if err := g.State().LoadStats(cfg.StatsFile); err != nil {
					logger.Warn("could not load stats", "file", cfg.StatsFile, "error", err)
				}
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			out := cmd.OutOrStdout()
			var onTick func(*game.Game)
			if cfg.Render {
				r := ui.NewRenderer()
				onTick = func(g *game.Game) {
					fmt.Fprint(out, "\033[H\033[2J")
					fmt.Fprintln(out, r.Frame(g))
				}
			}

			runErr := g.Run(ctx, cfg.MaxTicks, onTick)
			if runErr != nil && !errors.Is(runErr, context.Canceled) {
				return runErr
			}

			stats := g.Stats()
			for _, a := range stats.Agents {
				fmt.Fprintf(out, "%-16s score %3d  length %3d  %s\n", a.ID, a.Score, a.Length, a.Reason)
			}
			if cfg.StatsFile != "" {
				if err := g.State().SaveStats(cfg.StatsFile, stats); err != nil {
					return fmt.Errorf("save stats: %w", err)
				}
			}
			return nil
		},
	}
	cmd.Flags().IntVar(&ticks, "ticks", 0, "tick limit, 0 for none (overrides config)")
	cmd.Flags().Uint64Var(&seed, "seed", 1, "random seed (overrides config)")
	cmd.Flags().BoolVar(&render, "render", false, "draw the board every tick")
	cmd.Flags().BoolVar(&parallel, "parallel", false, "decide worms concurrently")
	return cmd
}
