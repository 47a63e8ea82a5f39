// Package costmap holds 2D occupancy grids of traversal costs and the provider interface the
// planners read them through.
package costmap

import "fmt"

// Reserved cost values.
const (
	// FreeSpace is the cost of a cell known to be free.
	FreeSpace uint8 = 0
	// MaxNonObstacle is the highest cost that is still traversable.
	MaxNonObstacle uint8 = 252
	// InscribedInflatedObstacle marks cells where the robot footprint would touch an obstacle.
	InscribedInflatedObstacle uint8 = 253
	// LethalObstacle marks cells that contain an obstacle.
	LethalObstacle uint8 = 254
	// NoInformation marks cells that have never been observed.
	NoInformation uint8 = 255
)

// IsImpassable reports whether cost is one of the two obstacle sentinels.
func IsImpassable(cost uint8) bool {
	return cost == LethalObstacle || cost == InscribedInflatedObstacle
}

// Cell is a grid coordinate.
type Cell struct {
	X int
	Y int
}

func (c Cell) String() string {
	return fmt.Sprintf("(%d,%d)", c.X, c.Y)
}

// Costmap is a read-only view of a 2D grid of costs placed in the world.
type Costmap interface {
	// SizeX returns the number of cells along X.
	SizeX() int
	// SizeY returns the number of cells along Y.
	SizeY() int
	// Resolution returns the side length of one cell in meters.
	Resolution() float64
	// WorldToMap converts world coordinates to the containing cell. It returns false if the point
	// is outside the grid.
	WorldToMap(wx, wy float64) (Cell, bool)
	// MapToWorld returns the world coordinates of the center of a cell.
	MapToWorld(c Cell) (wx, wy float64)
	// Cost returns the cost of a cell. Out of range cells report NoInformation.
	Cost(c Cell) uint8
}

// Provider hands out the current costmap together with the frame it is expressed in.
type Provider interface {
	Costmap() Costmap
	GlobalFrame() string
}

// InBounds reports whether c lies on cm.
func InBounds(cm Costmap, c Cell) bool {
	return c.X >= 0 && c.Y >= 0 && c.X < cm.SizeX() && c.Y < cm.SizeY()
}
