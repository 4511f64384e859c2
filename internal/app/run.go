package app

import (
	"context"
	"fmt"

	"github.com/specialistvlad/beamgrid/internal/beam"
	"github.com/specialistvlad/beamgrid/internal/config"
	"github.com/specialistvlad/beamgrid/internal/ctxlog"
	"github.com/specialistvlad/beamgrid/internal/entryid"
	"github.com/specialistvlad/beamgrid/internal/grid"
	"github.com/specialistvlad/beamgrid/internal/publish"
	"github.com/specialistvlad/beamgrid/internal/resultstore"
	"github.com/specialistvlad/beamgrid/internal/scanner"
)

// DefaultSimulationName names the simulation driven by the entry flag.
const DefaultSimulationName = "default"

// Run executes the main application logic based on the provided configuration.
func (a *App) Run(ctx context.Context) error {
	ctx = ctxlog.WithLogger(ctx, a.logger)
	a.ctx = ctx
	a.logger.Debug("App.Run method started.")

	a.healthCheckServer()
	defer func() {
		_ = a.closeHealthCheckServer()
	}()

	plan, err := a.loadPlan(ctx)
	if err != nil {
		return err
	}
	g, err := a.loadGrid(ctx, plan)
	if err != nil {
		return err
	}
	a.logger.Info("Grid loaded successfully.", "width", g.Width(), "height", g.Height())

	store := resultstore.NewInMemory()
	payload := &publish.Payload{
		RunID: a.runID,
		Grid:  publish.GridInfo{Width: g.Width(), Height: g.Height()},
	}

	for _, sim := range a.simulations(plan) {
		res, err := a.simulate(ctx, g, store, sim)
		if err != nil {
			return err
		}
		fmt.Fprintf(a.outW, "simulate %s entry=%s energized=%d\n", res.Name, res.Entry, res.Energized)
		payload.Simulations = append(payload.Simulations, res)
	}

	if a.scanDisabled(plan) {
		a.logger.Info("Boundary scan disabled.")
	} else {
		scan, err := a.scan(ctx, g, store, plan)
		if err != nil {
			return err
		}
		payload.Scan = scan
	}

	if pc := a.publishConfig(plan); pc != nil {
		a.logger.Debug("Publishing results.", "url", pc.URL)
		if err := a.publisher(*pc).Publish(ctx, payload); err != nil {
			a.logger.Error("Publishing results failed.", "error", err)
			return fmt.Errorf("failed to publish results: %w", err)
		}
	}

	a.logger.Info("🏁 Run finished.")
	a.logger.Debug("App.Run method finished.")
	return nil
}

// simulations returns the plan's simulations plus the one requested by the
// entry flag. The flag wins over a plan simulation of the same name; with
// neither, the default entry is simulated.
func (a *App) simulations(plan *config.Plan) []*config.Simulation {
	sims := make([]*config.Simulation, 0, len(plan.Simulations)+1)
	replaced := false
	for _, sim := range plan.Simulations {
		if a.config.Entry != "" && sim.Name == DefaultSimulationName {
			sim = &config.Simulation{Name: DefaultSimulationName, Entry: config.Literal(a.config.Entry)}
			replaced = true
		}
		sims = append(sims, sim)
	}
	if a.config.Entry != "" && !replaced {
		sims = append(sims, &config.Simulation{Name: DefaultSimulationName, Entry: config.Literal(a.config.Entry)})
	}
	if len(sims) == 0 {
		sims = append(sims, &config.Simulation{Name: DefaultSimulationName, Entry: config.Literal(entryid.Default)})
	}
	return sims
}

func (a *App) simulate(ctx context.Context, g *grid.Grid, store resultstore.Store, sim *config.Simulation) (publish.SimulationResult, error) {
	logger := ctxlog.FromContext(ctx).With("simulation", sim.Name)

	raw, err := sim.Entry.Evaluate(config.GridDims{Width: g.Width(), Height: g.Height()})
	if err != nil {
		return publish.SimulationResult{}, fmt.Errorf("simulation %q: %w", sim.Name, err)
	}
	entry, err := entryid.ParseAndResolve(raw, g)
	if err != nil {
		return publish.SimulationResult{}, fmt.Errorf("simulation %q: %w", sim.Name, err)
	}

	count, ok := store.Get(ctx, entry)
	if !ok {
		count, err = beam.Simulate(g, entry)
		if err != nil {
			return publish.SimulationResult{}, fmt.Errorf("simulation %q: %w", sim.Name, err)
		}
		store.Set(ctx, entry, count)
	}
	logger.Debug("Simulation finished.", "entry", entry.String(), "energized", count, "cached", ok)

	return publish.SimulationResult{
		Name:      sim.Name,
		Entry:     entryid.Format(g, entry),
		Energized: count,
	}, nil
}

func (a *App) scanDisabled(plan *config.Plan) bool {
	return a.config.NoScan || (plan.Scan != nil && plan.Scan.Disabled)
}

func (a *App) scan(ctx context.Context, g *grid.Grid, store resultstore.Store, plan *config.Plan) (*publish.ScanResult, error) {
	workers, top := a.config.WorkerCount, a.config.Top
	if plan.Scan != nil {
		if workers == 0 {
			workers = plan.Scan.Workers
		}
		if top == 0 {
			top = plan.Scan.Top
		}
	}

	opts := []scanner.Option{scanner.WithStore(store)}
	if workers > 0 {
		opts = append(opts, scanner.WithWorkers(workers))
	}
	sc := scanner.New(opts...)

	a.logger.Info("🚀 Starting boundary scan...", "workers", sc.Workers())
	report, err := sc.Scan(ctx, g)
	if err != nil {
		return nil, fmt.Errorf("boundary scan failed: %w", err)
	}
	a.logger.Info("Boundary scan finished.", "candidates", len(report.Entries), "best", report.Best.Count, "duration", report.Duration)

	res := &publish.ScanResult{
		BestEntry:     entryid.Format(g, report.Best.Entry),
		BestEnergized: report.Best.Count,
		Candidates:    len(report.Entries),
	}
	fmt.Fprintf(a.outW, "scan best entry=%s energized=%d candidates=%d\n", res.BestEntry, res.BestEnergized, res.Candidates)

	for i, er := range report.Top(top) {
		ranked := publish.RankedEntry{Rank: i + 1, Entry: entryid.Format(g, er.Entry), Energized: er.Count}
		fmt.Fprintf(a.outW, "scan top %d entry=%s energized=%d\n", ranked.Rank, ranked.Entry, ranked.Energized)
		res.Top = append(res.Top, ranked)
	}
	return res, nil
}

// publishConfig merges the plan's publish block with the publish flag. It
// returns nil when publishing is not configured.
func (a *App) publishConfig(plan *config.Plan) *config.Publish {
	var pc config.Publish
	switch {
	case plan.Publish != nil:
		pc = *plan.Publish
	case a.config.PublishURL == "":
		return nil
	}
	if a.config.PublishURL != "" {
		pc.URL = a.config.PublishURL
	}
	pc = pc.WithDefaults()
	return &pc
}
