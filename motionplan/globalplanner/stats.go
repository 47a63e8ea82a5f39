package globalplanner

import "go.uber.org/atomic"

// Stats counts what a Planner has done since it was created.
type Stats struct {
	Plans              int64
	Successes          int64
	Failures           int64
	Fallbacks          int64
	RegionRebuilds     int64
	ProjectionFailures int64
	Searches           int64
}

type counters struct {
	plans              atomic.Int64
	successes          atomic.Int64
	failures           atomic.Int64
	fallbacks          atomic.Int64
	regionRebuilds     atomic.Int64
	projectionFailures atomic.Int64
	searches           atomic.Int64
}

func (c *counters) snapshot() Stats {
	return Stats{
		Plans:              c.plans.Load(),
		Successes:          c.successes.Load(),
		Failures:           c.failures.Load(),
		Fallbacks:          c.fallbacks.Load(),
		RegionRebuilds:     c.regionRebuilds.Load(),
		ProjectionFailures: c.projectionFailures.Load(),
		Searches:           c.searches.Load(),
	}
}
