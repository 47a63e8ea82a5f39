// Package globalplanner plans grid paths from a robot pose to a goal region that is described
// in a frame of its own. The region is evaluated once per constraint over the whole grid, then
// re-projected through the current transform on every call so that it follows its frame as that
// frame moves.
package globalplanner

import (
	"context"
	"time"

	"github.com/benbjohnson/clock"
	"github.com/golang/geo/r3"
	"github.com/pkg/errors"
	"github.com/samber/lo/mutable"
	"go.opencensus.io/trace"

	"go.viam.com/navplan/costmap"
	"go.viam.com/navplan/logging"
	"go.viam.com/navplan/motionplan/astar"
	"go.viam.com/navplan/motionplan/goalconstraint"
	"go.viam.com/navplan/referenceframe"
	"go.viam.com/navplan/spatialmath"
)

// Plan is the result of a successful MakePlan.
type Plan struct {
	// Poses run from the start to the goal region, one per cell, in the global frame.
	Poses []*referenceframe.PoseInFrame
	// GoalPositions are the world positions of every goal cell that was searched for.
	GoalPositions []r3.Vector
	// Cells is the grid path behind Poses.
	Cells []costmap.Cell
	// UsedFallback is set when only the reversed search from the goal region found the path.
	UsedFallback bool
}

// Option customizes a Planner.
type Option func(*Planner)

// WithClock sets the clock used to stamp plans.
func WithClock(clk clock.Clock) Option {
	return func(p *Planner) {
		p.clk = clk
	}
}

// WithSearcher replaces the A* grid searcher.
func WithSearcher(searcher astar.Searcher) Option {
	return func(p *Planner) {
		p.searcher = searcher
	}
}

// Planner is a global planner towards frame relative goal regions. A Planner is not safe for
// concurrent use, except for Stats.
type Planner struct {
	logger   logging.Logger
	cfg      Config
	clk      clock.Clock
	searcher astar.Searcher

	name        string
	initialized bool
	tf          referenceframe.TransformProvider
	costmaps    costmap.Provider

	// region caches the points satisfying constraint, in the constraint frame
	constraint goalconstraint.GoalConstraint
	region     []r3.Vector

	stats counters
}

// New returns an uninitialized Planner.
func New(logger logging.Logger, cfg Config, opts ...Option) (*Planner, error) {
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid global planner config")
	}
	p := &Planner{
		logger: logger.Sublogger("globalplanner"),
		cfg:    cfg,
		clk:    clock.New(),
	}
	for _, opt := range opts {
		opt(p)
	}
	if p.searcher == nil {
		p.searcher = astar.NewGridSearcher(astar.Options{
			CostFactor:   cfg.CostFactor,
			AllowUnknown: cfg.AllowUnknown,
		})
	}
	return p, nil
}

// Initialize binds the planner to its transform and grid providers. Calling it again rebinds
// the planner and drops the cached goal region.
func (p *Planner) Initialize(name string, tf referenceframe.TransformProvider, costmaps costmap.Provider) error {
	if tf == nil {
		return errors.New("transform provider is required")
	}
	if costmaps == nil {
		return errors.New("costmap provider is required")
	}
	cm := costmaps.Costmap()
	if cm == nil {
		return errors.New("costmap provider has no costmap")
	}
	if err := checkFrameOverride(p.logger, p.cfg.GlobalFrameOverride, tf, costmaps.GlobalFrame()); err != nil {
		return err
	}
	p.name = name
	p.tf = tf
	p.costmaps = costmaps
	p.searcher.Resize(cm.SizeX(), cm.SizeY())
	p.InvalidateRegion()
	p.initialized = true
	p.logger.Infow("global planner initialized", "name", name, "size_x", cm.SizeX(), "size_y", cm.SizeY())
	return nil
}

// checkFrameOverride makes sure an overridden global frame is known to the transform provider.
// Grid cells are not transformed into the override, so an override that does not coincide with
// the provider's frame only earns a warning.
func checkFrameOverride(logger logging.Logger, override string, tf referenceframe.TransformProvider, gridFrame string) error {
	if override == "" || override == gridFrame {
		return nil
	}
	offset, err := tf.LookupTransform(gridFrame, override, time.Time{})
	if err != nil {
		return errors.Wrapf(asTransformError(gridFrame, override, err),
			"global frame override %q is not connected to the grid frame %q", override, gridFrame)
	}
	if !spatialmath.PoseAlmostEqual(offset, spatialmath.NewZeroPose()) {
		logger.Warnw("global frame override does not coincide with the grid frame, goals and start will be offset",
			"override", override, "grid_frame", gridFrame)
	}
	return nil
}

// Name returns the name given at Initialize.
func (p *Planner) Name() string {
	return p.name
}

// GlobalFrame is the frame grids are expressed in and plans are returned in.
func (p *Planner) GlobalFrame() string {
	if p.cfg.GlobalFrameOverride != "" {
		return p.cfg.GlobalFrameOverride
	}
	if p.costmaps == nil {
		return ""
	}
	return p.costmaps.GlobalFrame()
}

// InvalidateRegion forgets the cached goal region so the next plan rebuilds it even if the
// constraint did not change.
func (p *Planner) InvalidateRegion() {
	p.constraint = goalconstraint.GoalConstraint{}
	p.region = nil
}

// Stats returns a snapshot of the planner's counters.
func (p *Planner) Stats() Stats {
	return p.stats.snapshot()
}

// MakePlan plans from start to the closest reachable cell of the region described by constraint.
func (p *Planner) MakePlan(
	ctx context.Context,
	start *referenceframe.PoseInFrame,
	constraint goalconstraint.GoalConstraint,
) (*Plan, error) {
	ctx, span := trace.StartSpan(ctx, "globalplanner::MakePlan")
	defer span.End()

	p.stats.plans.Inc()
	plan, err := p.makePlan(ctx, start, constraint)
	if err != nil {
		p.stats.failures.Inc()
		span.SetStatus(trace.Status{Code: trace.StatusCodeUnknown, Message: err.Error()})
		return nil, err
	}
	p.stats.successes.Inc()
	return plan, nil
}

func (p *Planner) makePlan(
	ctx context.Context,
	start *referenceframe.PoseInFrame,
	constraint goalconstraint.GoalConstraint,
) (*Plan, error) {
	if !p.initialized {
		p.logger.Warn("the global planner is not initialized, cannot create a global plan")
		return nil, ErrNotInitialized
	}
	if constraint.IsEmpty() {
		p.logger.Warn("no goal constraint given, nothing to plan")
		return nil, ErrEmptyConstraint
	}
	if start == nil {
		p.logger.Warn("no start pose given")
		return nil, ErrMissingStart
	}

	cm := p.costmaps.Costmap()
	globalFrame := p.GlobalFrame()

	if start.Parent() != "" && start.Parent() != globalFrame {
		inGlobal, err := referenceframe.TransformPoseInFrame(p.tf, start, globalFrame)
		if err != nil {
			err = asTransformError(globalFrame, start.Parent(), err)
			p.logger.Errorw("failed to express start pose in the global frame", "error", err)
			return nil, err
		}
		start = inGlobal
	}
	startPt := start.Pose().Point()
	startCell, ok := cm.WorldToMap(startPt.X, startPt.Y)
	if !ok {
		err := NewOffMapStartError(globalFrame, startPt.X, startPt.Y)
		p.logger.Warn(err.Error())
		return nil, err
	}

	if !constraint.Equal(p.constraint) {
		p.logger.Infof("goal constraint changed to %s, rebuilding goal region", constraint)
		region, err := p.rebuildRegion(cm, constraint, globalFrame)
		if err != nil {
			p.logger.Errorw("failed to rebuild goal region", "constraint", constraint.String(), "error", err)
			return nil, errors.Wrap(err, "failed to rebuild goal region")
		}
		p.stats.regionRebuilds.Inc()
		p.region = region
		p.constraint = constraint
		p.logger.CDebugw(ctx, "goal region rebuilt", "points", len(region))
	}

	goals, goalPositions := p.projectToGrid(cm, p.region, p.constraint, globalFrame)
	if len(goals) == 0 {
		p.logger.Errorf("no goal cell meets %s, planning will keep failing until the grid or constraint changes", constraint)
		return nil, errors.Wrapf(ErrNoGoalCells, "constraint %s", constraint)
	}
	p.logger.CDebugw(ctx, "projected goal region", "goal_cells", len(goals), "start", startCell.String())

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	p.searcher.Resize(cm.SizeX(), cm.SizeY())
	p.searcher.SetCosts(cm)

	p.stats.searches.Inc()
	cells := p.searcher.Plan(goals, startCell, false)
	usedFallback := false
	if len(cells) == 0 {
		// search outwards from the middle of the goal region instead
		seed := goals[len(goals)/2]
		p.logger.CDebugw(ctx, "forward search failed, trying reversed search", "seed", seed.String())
		p.stats.searches.Inc()
		p.stats.fallbacks.Inc()
		cells = p.searcher.Plan([]costmap.Cell{startCell}, seed, true)
		mutable.Reverse(cells)
		usedFallback = true
	}

	poses := materialize(cm, cells, globalFrame, p.clk.Now(), p.cfg.LookaheadCells)
	if len(poses) == 0 {
		p.logger.Errorf("could not find a path from %s to %s", startCell, constraint)
		return nil, ErrSearchExhausted
	}

	p.logger.Infow("generated global plan", "poses", len(poses), "goal_cells", len(goals), "fallback", usedFallback)
	return &Plan{
		Poses:         poses,
		GoalPositions: goalPositions,
		Cells:         cells,
		UsedFallback:  usedFallback,
	}, nil
}
