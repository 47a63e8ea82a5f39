package globalplanner

import (
	"context"

	"go.viam.com/navplan/costmap"
	"go.viam.com/navplan/referenceframe"
)

// CheckPlan reports whether a previously generated plan is still clear of obstacles on the
// current grid. Poses off the grid, or in frames that cannot currently be related to the global
// frame, are not checked.
func (p *Planner) CheckPlan(ctx context.Context, poses []*referenceframe.PoseInFrame) bool {
	if !p.initialized {
		p.logger.Warn("the global planner is not initialized, cannot check a plan")
		return false
	}
	cm := p.costmaps.Costmap()
	globalFrame := p.GlobalFrame()

	for i, pif := range poses {
		if pif == nil {
			continue
		}
		if pif.Parent() != "" && pif.Parent() != globalFrame {
			inGlobal, err := referenceframe.TransformPoseInFrame(p.tf, pif, globalFrame)
			if err != nil {
				p.logger.CDebugw(ctx, "skipping plan pose that cannot be transformed", "index", i, "error", err)
				continue
			}
			pif = inGlobal
		}
		pt := pif.Pose().Point()
		cell, ok := cm.WorldToMap(pt.X, pt.Y)
		if !ok {
			continue
		}
		if costmap.IsImpassable(cm.Cost(cell)) {
			p.logger.CDebugw(ctx, "plan is blocked", "index", i, "cell", cell.String())
			return false
		}
	}
	return true
}
