package costmap

import (
	"math"

	"github.com/pkg/errors"
)

// Grid is a row-major costmap with its cell (0, 0) corner at the world origin (OriginX, OriginY).
type Grid struct {
	sizeX      int
	sizeY      int
	resolution float64
	originX    float64
	originY    float64
	costs      []uint8
}

// NewGrid returns a grid of the given size where every cell is FreeSpace.
func NewGrid(sizeX, sizeY int, resolution, originX, originY float64) (*Grid, error) {
	if sizeX <= 0 || sizeY <= 0 {
		return nil, errors.Errorf("grid size must be positive, got %dx%d", sizeX, sizeY)
	}
	if resolution <= 0 || math.IsNaN(resolution) || math.IsInf(resolution, 0) {
		return nil, errors.Errorf("grid resolution must be positive and finite, got %v", resolution)
	}
	return &Grid{
		sizeX:      sizeX,
		sizeY:      sizeY,
		resolution: resolution,
		originX:    originX,
		originY:    originY,
		costs:      make([]uint8, sizeX*sizeY),
	}, nil
}

// SizeX returns the number of cells along X.
func (g *Grid) SizeX() int { return g.sizeX }

// SizeY returns the number of cells along Y.
func (g *Grid) SizeY() int { return g.sizeY }

// Resolution returns the side length of one cell in meters.
func (g *Grid) Resolution() float64 { return g.resolution }

// Origin returns the world coordinates of the outer corner of cell (0, 0).
func (g *Grid) Origin() (float64, float64) { return g.originX, g.originY }

// WorldToMap converts world coordinates to the containing cell.
func (g *Grid) WorldToMap(wx, wy float64) (Cell, bool) {
	fx := (wx - g.originX) / g.resolution
	fy := (wy - g.originY) / g.resolution
	// written so that NaN fails too
	if !(fx >= 0 && fx < float64(g.sizeX)) || !(fy >= 0 && fy < float64(g.sizeY)) {
		return Cell{}, false
	}
	return Cell{X: int(fx), Y: int(fy)}, true
}

// MapToWorld returns the world coordinates of the center of a cell.
func (g *Grid) MapToWorld(c Cell) (float64, float64) {
	return g.originX + (float64(c.X)+0.5)*g.resolution, g.originY + (float64(c.Y)+0.5)*g.resolution
}

// Cost returns the cost of a cell, or NoInformation when c is off the grid.
func (g *Grid) Cost(c Cell) uint8 {
	if !InBounds(g, c) {
		return NoInformation
	}
	return g.costs[g.index(c)]
}

// SetCost sets the cost of a cell; cells off the grid are ignored.
func (g *Grid) SetCost(c Cell, cost uint8) {
	if !InBounds(g, c) {
		return
	}
	g.costs[g.index(c)] = cost
}

// Fill sets the cost of every cell in the inclusive rectangle spanned by a and b.
func (g *Grid) Fill(a, b Cell, cost uint8) {
	minX, maxX := min(a.X, b.X), max(a.X, b.X)
	minY, maxY := min(a.Y, b.Y), max(a.Y, b.Y)
	for y := minY; y <= maxY; y++ {
		for x := minX; x <= maxX; x++ {
			g.SetCost(Cell{x, y}, cost)
		}
	}
}

// Resize changes the grid dimensions, keeping the costs of cells that exist in both and filling
// new cells with fill.
func (g *Grid) Resize(sizeX, sizeY int, fill uint8) error {
	if sizeX <= 0 || sizeY <= 0 {
		return errors.Errorf("grid size must be positive, got %dx%d", sizeX, sizeY)
	}
	costs := make([]uint8, sizeX*sizeY)
	for y := 0; y < sizeY; y++ {
		for x := 0; x < sizeX; x++ {
			c := Cell{x, y}
			if InBounds(g, c) {
				costs[y*sizeX+x] = g.Cost(c)
			} else {
				costs[y*sizeX+x] = fill
			}
		}
	}
	g.sizeX, g.sizeY, g.costs = sizeX, sizeY, costs
	return nil
}

// Clone returns a deep copy of the grid.
func (g *Grid) Clone() *Grid {
	clone := *g
	clone.costs = append([]uint8(nil), g.costs...)
	return &clone
}

func (g *Grid) index(c Cell) int {
	return c.Y*g.sizeX + c.X
}

var _ Costmap = (*Grid)(nil)
