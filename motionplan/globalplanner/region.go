package globalplanner

import (
	"time"

	"github.com/golang/geo/r3"
	"github.com/pkg/errors"

	"go.viam.com/navplan/costmap"
	"go.viam.com/navplan/motionplan/goalconstraint"
	"go.viam.com/navplan/spatialmath"
)

// constraintFrame returns the frame a constraint is authored in. An empty frame means the
// global frame.
func constraintFrame(constraint goalconstraint.GoalConstraint, globalFrame string) string {
	if constraint.Frame == "" {
		return globalFrame
	}
	return constraint.Frame
}

// rebuildRegion evaluates the constraint at the centre of every grid cell and returns the
// satisfying points expressed in the constraint frame. Nothing is cached here; the caller swaps
// the result in only on success. A predicate that panics fails the rebuild.
func (p *Planner) rebuildRegion(
	cm costmap.Costmap,
	constraint goalconstraint.GoalConstraint,
	globalFrame string,
) (region []r3.Vector, err error) {
	target := constraintFrame(constraint, globalFrame)
	globalToConstraint, err := p.tf.LookupTransform(target, globalFrame, time.Time{})
	if err != nil {
		return nil, asTransformError(target, globalFrame, err)
	}

	ev, err := goalconstraint.NewInitializedEvaluator(p.cfg.Evaluator, constraint.Constraint)
	if err != nil {
		return nil, err
	}

	defer func() {
		if r := recover(); r != nil {
			region = nil
			err = errors.Wrapf(goalconstraint.ErrInvalidConstraint, "evaluating %q failed: %v", constraint.Constraint, r)
		}
	}()

	region = []r3.Vector{}
	for x := 0; x < cm.SizeX(); x++ {
		for y := 0; y < cm.SizeY(); y++ {
			wx, wy := cm.MapToWorld(costmap.Cell{X: x, Y: y})
			pt := spatialmath.TransformPoint(globalToConstraint, r3.Vector{X: wx, Y: wy})
			if ev.Evaluate(pt.X, pt.Y) {
				region = append(region, pt)
			}
		}
	}
	return region, nil
}

// projectToGrid moves the cached region into the global frame as it is now and returns the
// distinct passable cells it covers, with the world position of the first point landing in each.
// A transform failure is logged and yields no cells.
func (p *Planner) projectToGrid(
	cm costmap.Costmap,
	region []r3.Vector,
	constraint goalconstraint.GoalConstraint,
	globalFrame string,
) ([]costmap.Cell, []r3.Vector) {
	source := constraintFrame(constraint, globalFrame)
	constraintToGlobal, err := p.tf.LookupTransform(globalFrame, source, time.Time{})
	if err != nil {
		p.stats.projectionFailures.Inc()
		p.logger.Errorw("failed to project goal region onto the grid", "error", asTransformError(globalFrame, source, err))
		return nil, nil
	}

	var cells []costmap.Cell
	var positions []r3.Vector
	seen := make(map[costmap.Cell]struct{}, len(region))
	for _, pt := range region {
		world := spatialmath.TransformPoint(constraintToGlobal, pt)
		cell, ok := cm.WorldToMap(world.X, world.Y)
		if !ok {
			continue
		}
		if costmap.IsImpassable(cm.Cost(cell)) {
			continue
		}
		if _, dup := seen[cell]; dup {
			continue
		}
		seen[cell] = struct{}{}
		cells = append(cells, cell)
		positions = append(positions, world)
	}
	return cells, positions
}
