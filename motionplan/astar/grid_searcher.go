package astar

import (
	"gonum.org/v1/gonum/graph/path"
	"gonum.org/v1/gonum/graph/simple"

	"go.viam.com/navplan/costmap"
)

// Options tune the cost model of a GridSearcher.
type Options struct {
	// CostFactor scales how strongly cell costs penalize a move. Zero plans shortest paths.
	CostFactor float64
	// AllowUnknown lets the search enter cells with no information.
	AllowUnknown bool
}

// GridSearcher is an A* Searcher over an 8-connected grid. Moves never cut the corner of an
// impassable cell.
type GridSearcher struct {
	opts         Options
	sizeX, sizeY int
	costs        []uint8

	lastExpanded int
}

// NewGridSearcher returns an empty searcher; call Resize and SetCosts before planning.
func NewGridSearcher(opts Options) *GridSearcher {
	if opts.CostFactor < 0 {
		opts.CostFactor = 0
	}
	return &GridSearcher{opts: opts}
}

// Resize sets the grid dimensions. Negative sizes are treated as zero.
func (s *GridSearcher) Resize(sizeX, sizeY int) {
	sizeX, sizeY = max(sizeX, 0), max(sizeY, 0)
	if sizeX == s.sizeX && sizeY == s.sizeY {
		return
	}
	s.sizeX, s.sizeY = sizeX, sizeY
	s.costs = make([]uint8, sizeX*sizeY)
}

// SetCosts snapshots the cost of every cell.
func (s *GridSearcher) SetCosts(costs CostSource) {
	for y := 0; y < s.sizeY; y++ {
		for x := 0; x < s.sizeX; x++ {
			s.costs[y*s.sizeX+x] = costs.Cost(costmap.Cell{X: x, Y: y})
		}
	}
}

// LastExpanded returns the number of nodes expanded by the most recent Plan.
func (s *GridSearcher) LastExpanded() int {
	return s.lastExpanded
}

func (s *GridSearcher) inBounds(c costmap.Cell) bool {
	return c.X >= 0 && c.Y >= 0 && c.X < s.sizeX && c.Y < s.sizeY
}

// Plan searches from the goals to start, or from start to the goals when reversed. Either way
// the returned path runs from start to the reached goal.
func (s *GridSearcher) Plan(goals []costmap.Cell, start costmap.Cell, reversed bool) []costmap.Cell {
	s.lastExpanded = 0
	if !s.inBounds(start) {
		return nil
	}

	g := &gridGraph{
		s:             s,
		startID:       int64(start.Y*s.sizeX + start.X),
		virtualID:     int64(s.sizeX * s.sizeY),
		virtualSource: !reversed,
		isGoal:        map[int64]bool{},
	}
	for _, goal := range goals {
		if !s.inBounds(goal) {
			continue
		}
		id := g.id(goal.X, goal.Y)
		if g.isGoal[id] {
			continue
		}
		if len(g.goals) == 0 {
			g.goalBox = box{goal.X, goal.Y, goal.X, goal.Y}
		} else {
			g.goalBox.minX = min(g.goalBox.minX, goal.X)
			g.goalBox.minY = min(g.goalBox.minY, goal.Y)
			g.goalBox.maxX = max(g.goalBox.maxX, goal.X)
			g.goalBox.maxY = max(g.goalBox.maxY, goal.Y)
		}
		g.isGoal[id] = true
		g.goals = append(g.goals, id)
	}
	if len(g.goals) == 0 {
		return nil
	}

	source, target := simple.Node(g.virtualID), simple.Node(g.startID)
	if reversed {
		source, target = target, source
	}
	shortest, expanded := path.AStar(source, target, g, g.heuristic)
	s.lastExpanded = expanded
	nodes, _ := shortest.To(target.ID())
	if len(nodes) < 2 {
		return nil
	}

	cells := make([]costmap.Cell, 0, len(nodes)-1)
	if reversed {
		// start, ..., goal, virtual
		for _, n := range nodes[:len(nodes)-1] {
			cells = append(cells, g.cell(n.ID()))
		}
		return cells
	}
	// virtual, goal, ..., start
	for i := len(nodes) - 1; i >= 1; i-- {
		cells = append(cells, g.cell(nodes[i].ID()))
	}
	return cells
}

var _ Searcher = (*GridSearcher)(nil)
