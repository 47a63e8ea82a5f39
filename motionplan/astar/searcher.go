// Package astar implements multi-goal grid search over a costmap snapshot.
package astar

import (
	"go.viam.com/navplan/costmap"
)

// CostSource is anything that can report a cost per cell, usually a costmap.Costmap.
type CostSource interface {
	Cost(c costmap.Cell) uint8
}

// Searcher finds a cell path between a start cell and the closest of a set of goal cells.
type Searcher interface {
	// Resize sets the grid dimensions for subsequent searches.
	Resize(sizeX, sizeY int)
	// SetCosts copies the cost of every cell of the current dimensions into the searcher.
	SetCosts(costs CostSource)
	// Plan returns a path in start to goal order, or an empty path when none exists. In forward
	// mode the search expands from the goals towards start; reversed mode expands from start.
	Plan(goals []costmap.Cell, start costmap.Cell, reversed bool) []costmap.Cell
}
