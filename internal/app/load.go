package app

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/specialistvlad/beamgrid/internal/config"
	"github.com/specialistvlad/beamgrid/internal/ctxlog"
	"github.com/specialistvlad/beamgrid/internal/grid"
)

var errNoGrid = errors.New("no grid given: pass a grid path or define a grid block in the plan")

// loadPlan reads the plan files, if any were configured.
func (a *App) loadPlan(ctx context.Context) (*config.Plan, error) {
	logger := ctxlog.FromContext(ctx)
	if a.config.PlanPath == "" {
		logger.Debug("No plan path configured, using an empty plan.")
		return &config.Plan{}, nil
	}

	logger.Debug("Loading plan...", "plan_path", a.config.PlanPath)
	plan, err := a.loaders.Load(ctx, a.config.PlanPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load plan: %w", err)
	}
	logger.Info("Plan loaded successfully.", "files", len(plan.Sources), "simulations", len(plan.Simulations))
	return plan, nil
}

// loadGrid reads the grid from the CLI path, falling back to the plan's grid
// block.
func (a *App) loadGrid(ctx context.Context, plan *config.Plan) (*grid.Grid, error) {
	logger := ctxlog.FromContext(ctx)

	path := a.config.GridPath
	if path == "" && plan.Grid != nil {
		if len(plan.Grid.Rows) > 0 {
			logger.Debug("Using inline grid rows from plan.", "rows", len(plan.Grid.Rows))
			g, err := grid.New(plan.Grid.Rows)
			if err != nil {
				return nil, fmt.Errorf("failed to build grid from plan rows: %w", err)
			}
			return g, nil
		}
		path = plan.Grid.Path
	}
	if path == "" {
		return nil, errNoGrid
	}

	logger.Debug("Loading grid...", "grid_path", path)
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open grid: %w", err)
	}
	defer f.Close()

	g, err := grid.Parse(f)
	if err != nil {
		return nil, fmt.Errorf("failed to load grid %s: %w", path, err)
	}
	return g, nil
}
