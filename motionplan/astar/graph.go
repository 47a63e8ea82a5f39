package astar

import (
	"math"

	"gonum.org/v1/gonum/graph"
	"gonum.org/v1/gonum/graph/iterator"
	"gonum.org/v1/gonum/graph/simple"

	"go.viam.com/navplan/costmap"
)

var neighborOffsets = [8][2]int{
	{1, 0}, {-1, 0}, {0, 1}, {0, -1},
	{1, 1}, {1, -1}, {-1, 1}, {-1, -1},
}

// box is an inclusive cell range. A cell is a degenerate box; the virtual node is the box
// around every goal.
type box struct {
	minX, minY, maxX, maxY int
}

// gridGraph is an implicit 8-connected graph over the searcher's cost buffer plus one virtual
// node tied to every goal cell. With virtualSource the virtual node only has outgoing edges to
// the goals, otherwise every goal has an edge into it.
type gridGraph struct {
	s             *GridSearcher
	startID       int64
	virtualID     int64
	virtualSource bool
	goals         []int64
	isGoal        map[int64]bool
	goalBox       box
}

func (g *gridGraph) id(x, y int) int64 {
	return int64(y*g.s.sizeX + x)
}

func (g *gridGraph) cell(id int64) costmap.Cell {
	return costmap.Cell{X: int(id) % g.s.sizeX, Y: int(id) / g.s.sizeX}
}

func (g *gridGraph) inBounds(x, y int) bool {
	return x >= 0 && y >= 0 && x < g.s.sizeX && y < g.s.sizeY
}

// passable reports whether a cell may be entered. The endpoints of the search always may, so
// the robot's cell is treated alike whether it is the start or the only goal.
func (g *gridGraph) passable(x, y int) bool {
	if !g.inBounds(x, y) {
		return false
	}
	id := g.id(x, y)
	if id == g.startID || g.isGoal[id] {
		return true
	}
	c := g.s.costs[id]
	if c == costmap.NoInformation {
		return g.s.opts.AllowUnknown
	}
	return !costmap.IsImpassable(c)
}

func (g *gridGraph) From(id int64) graph.Nodes {
	if id == g.virtualID {
		if !g.virtualSource {
			return graph.Empty
		}
		nodes := make([]graph.Node, 0, len(g.goals))
		for _, gid := range g.goals {
			nodes = append(nodes, simple.Node(gid))
		}
		return iterator.NewOrderedNodes(nodes)
	}

	c := g.cell(id)
	nodes := make([]graph.Node, 0, len(neighborOffsets)+1)
	for _, off := range neighborOffsets {
		nx, ny := c.X+off[0], c.Y+off[1]
		if !g.passable(nx, ny) {
			continue
		}
		// no cutting corners past blocked cells
		if off[0] != 0 && off[1] != 0 && (!g.passable(c.X+off[0], c.Y) || !g.passable(c.X, c.Y+off[1])) {
			continue
		}
		nodes = append(nodes, simple.Node(g.id(nx, ny)))
	}
	if !g.virtualSource && g.isGoal[id] {
		nodes = append(nodes, simple.Node(g.virtualID))
	}
	return iterator.NewOrderedNodes(nodes)
}

func (g *gridGraph) Edge(uid, vid int64) graph.Edge {
	if _, ok := g.Weight(uid, vid); !ok || uid == vid {
		return nil
	}
	return simple.Edge{F: simple.Node(uid), T: simple.Node(vid)}
}

// Weight returns the traversal cost between two adjacent nodes. Edges touching the virtual node
// are free; moves between cells cost their step length scaled by the mean cell cost, which is
// symmetric so that forward and reversed searches agree.
func (g *gridGraph) Weight(xid, yid int64) (float64, bool) {
	if xid == yid {
		return 0, true
	}
	if xid == g.virtualID {
		return 0, g.virtualSource && g.isGoal[yid]
	}
	if yid == g.virtualID {
		return 0, !g.virtualSource && g.isGoal[xid]
	}
	a, b := g.cell(xid), g.cell(yid)
	dx, dy := abs(a.X-b.X), abs(a.Y-b.Y)
	if dx > 1 || dy > 1 {
		return 0, false
	}
	step := 1.0
	if dx == 1 && dy == 1 {
		step = math.Sqrt2
	}
	mean := (float64(traversalCost(g.s.costs[xid])) + float64(traversalCost(g.s.costs[yid]))) / 2
	return step * (1 + g.s.opts.CostFactor*mean/float64(costmap.MaxNonObstacle)), true
}

// heuristic is the octile distance between the boxes of two nodes. Every step costs at least its
// length so it never overestimates.
func (g *gridGraph) heuristic(u, v graph.Node) float64 {
	a, b := g.box(u.ID()), g.box(v.ID())
	dx := gap(a.minX, a.maxX, b.minX, b.maxX)
	dy := gap(a.minY, a.maxY, b.minY, b.maxY)
	lo, hi := dx, dy
	if lo > hi {
		lo, hi = hi, lo
	}
	return float64(hi-lo) + math.Sqrt2*float64(lo)
}

func (g *gridGraph) box(id int64) box {
	if id == g.virtualID {
		return g.goalBox
	}
	c := g.cell(id)
	return box{c.X, c.Y, c.X, c.Y}
}

// traversalCost clamps unknown and lethal costs to the most expensive traversable value.
func traversalCost(c uint8) uint8 {
	if c > costmap.MaxNonObstacle {
		return costmap.MaxNonObstacle
	}
	return c
}

// gap is the distance between two inclusive integer ranges, zero when they overlap.
func gap(aMin, aMax, bMin, bMax int) int {
	switch {
	case aMax < bMin:
		return bMin - aMax
	case bMax < aMin:
		return aMin - bMax
	default:
		return 0
	}
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
