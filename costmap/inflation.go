package costmap

import (
	"math"

	"github.com/pkg/errors"
)

// InflationConfig describes how obstacle costs spread into neighboring cells.
type InflationConfig struct {
	// InscribedRadius is the robot's inscribed radius in meters; cells closer than this to a lethal
	// cell become InscribedInflatedObstacle.
	InscribedRadius float64 `json:"inscribed_radius" yaml:"inscribed_radius"`
	// InflationRadius is the distance in meters up to which costs decay away from obstacles.
	InflationRadius float64 `json:"inflation_radius" yaml:"inflation_radius"`
	// CostScalingFactor is the exponential decay rate of the cost outside the inscribed radius.
	CostScalingFactor float64 `json:"cost_scaling_factor" yaml:"cost_scaling_factor"`
}

// Validate ensures all parts of the config are valid.
func (cfg InflationConfig) Validate() error {
	if cfg.InscribedRadius < 0 || cfg.InflationRadius < 0 || cfg.CostScalingFactor < 0 {
		return errors.New("inflation radii and cost scaling factor cannot be negative")
	}
	if cfg.InflationRadius > 0 && cfg.InflationRadius < cfg.InscribedRadius {
		return errors.New("inflation radius cannot be smaller than the inscribed radius")
	}
	return nil
}

// inflatedCost is the cost of a cell at distance from the nearest lethal cell.
func (cfg InflationConfig) inflatedCost(distance float64) uint8 {
	switch {
	case distance == 0:
		return LethalObstacle
	case distance <= cfg.InscribedRadius:
		return InscribedInflatedObstacle
	}
	factor := math.Exp(-cfg.CostScalingFactor * (distance - cfg.InscribedRadius))
	return uint8(float64(InscribedInflatedObstacle-1) * factor)
}

// Inflate spreads the cost of every lethal cell of g outward, keeping the highest cost seen by
// each cell. Unknown cells are left untouched.
func Inflate(g *Grid, cfg InflationConfig) error {
	if err := cfg.Validate(); err != nil {
		return err
	}
	radius := math.Max(cfg.InflationRadius, cfg.InscribedRadius)
	cellRadius := int(math.Ceil(radius / g.resolution))
	if cellRadius == 0 {
		return nil
	}

	source := g.Clone()
	for y := 0; y < g.sizeY; y++ {
		for x := 0; x < g.sizeX; x++ {
			if source.Cost(Cell{x, y}) != LethalObstacle {
				continue
			}
			for dy := -cellRadius; dy <= cellRadius; dy++ {
				for dx := -cellRadius; dx <= cellRadius; dx++ {
					c := Cell{x + dx, y + dy}
					if !InBounds(g, c) {
						continue
					}
					current := g.Cost(c)
					if current == NoInformation || current == LethalObstacle {
						continue
					}
					distance := math.Hypot(float64(dx), float64(dy)) * g.resolution
					if distance > radius {
						continue
					}
					if cost := cfg.inflatedCost(distance); cost > current {
						g.SetCost(c, cost)
					}
				}
			}
		}
	}
	return nil
}
