package main

import (
	"github.com/montanaflynn/stats"

	"go.viam.com/navplan/costmap"
	"go.viam.com/navplan/motionplan/globalplanner"
)

type costSummary struct {
	Mean   float64
	Median float64
	Max    float64
}

// summarizeCosts describes the costs of the cells a path crosses.
func summarizeCosts(cm costmap.Costmap, cells []costmap.Cell) (costSummary, error) {
	costs := make(stats.Float64Data, 0, len(cells))
	for _, c := range cells {
		costs = append(costs, float64(cm.Cost(c)))
	}
	var summary costSummary
	var err error
	if summary.Mean, err = costs.Mean(); err != nil {
		return costSummary{}, err
	}
	if summary.Median, err = costs.Median(); err != nil {
		return costSummary{}, err
	}
	if summary.Max, err = costs.Max(); err != nil {
		return costSummary{}, err
	}
	return summary, nil
}

func pathLength(plan *globalplanner.Plan) float64 {
	length := 0.0
	for i := 1; i < len(plan.Poses); i++ {
		length += plan.Poses[i].Pose().Point().Distance(plan.Poses[i-1].Pose().Point())
	}
	return length
}
