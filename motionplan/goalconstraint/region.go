package goalconstraint

import (
	"math"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// RegionEvaluatorName is the registered name of the shape region evaluator.
const RegionEvaluatorName = "region"

func init() {
	RegisterEvaluator(RegionEvaluatorName, func() Evaluator { return &regionEvaluator{} })
}

// ShapeConfig is one shape of a region specification. A region is the union of its shapes.
//
//	{type: circle, x: 0, y: 0, radius: 2, inner_radius: 0.5}
//	{type: rectangle, min_x: -1, min_y: -1, max_x: 1, max_y: 3}
//	{type: polygon, points: [[0, 0], [2, 0], [0, 2]]}
type ShapeConfig struct {
	Type        string       `yaml:"type"`
	X           float64      `yaml:"x"`
	Y           float64      `yaml:"y"`
	Radius      float64      `yaml:"radius"`
	InnerRadius float64      `yaml:"inner_radius"`
	MinX        float64      `yaml:"min_x"`
	MinY        float64      `yaml:"min_y"`
	MaxX        float64      `yaml:"max_x"`
	MaxY        float64      `yaml:"max_y"`
	Points      [][2]float64 `yaml:"points"`
}

type shape interface {
	contains(x, y float64) bool
}

type circle struct {
	x, y, inner, outer float64
}

func (c circle) contains(x, y float64) bool {
	d := math.Hypot(x-c.x, y-c.y)
	return d <= c.outer && d >= c.inner
}

type rectangle struct {
	minX, minY, maxX, maxY float64
}

func (r rectangle) contains(x, y float64) bool {
	return x >= r.minX && x <= r.maxX && y >= r.minY && y <= r.maxY
}

type polygon [][2]float64

// contains uses the even-odd ray casting rule.
func (p polygon) contains(x, y float64) bool {
	inside := false
	for i, j := 0, len(p)-1; i < len(p); j, i = i, i+1 {
		xi, yi := p[i][0], p[i][1]
		xj, yj := p[j][0], p[j][1]
		if (yi > y) != (yj > y) && x < (xj-xi)*(y-yi)/(yj-yi)+xi {
			inside = !inside
		}
	}
	return inside
}

func (cfg ShapeConfig) build() (shape, error) {
	switch cfg.Type {
	case "circle":
		if cfg.Radius <= 0 {
			return nil, errors.New("circle radius must be positive")
		}
		if cfg.InnerRadius < 0 || cfg.InnerRadius >= cfg.Radius {
			return nil, errors.New("circle inner_radius must be in [0, radius)")
		}
		return circle{cfg.X, cfg.Y, cfg.InnerRadius, cfg.Radius}, nil
	case "rectangle":
		if cfg.MinX > cfg.MaxX || cfg.MinY > cfg.MaxY {
			return nil, errors.New("rectangle min corner must not exceed max corner")
		}
		return rectangle{cfg.MinX, cfg.MinY, cfg.MaxX, cfg.MaxY}, nil
	case "polygon":
		if len(cfg.Points) < 3 {
			return nil, errors.New("polygon needs at least 3 points")
		}
		return polygon(cfg.Points), nil
	default:
		return nil, errors.Errorf("unknown shape type %q", cfg.Type)
	}
}

type regionEvaluator struct {
	shapes []shape
}

func (re *regionEvaluator) Init(definition string) error {
	re.shapes = nil

	var doc yaml.Node
	if err := yaml.Unmarshal([]byte(definition), &doc); err != nil {
		return errors.Wrapf(ErrInvalidConstraint, "region is not valid yaml: %v", err)
	}
	if len(doc.Content) == 0 {
		return errors.Wrap(ErrInvalidConstraint, "region is empty")
	}
	root := doc.Content[0]

	var configs []ShapeConfig
	switch root.Kind {
	case yaml.SequenceNode:
		if err := root.Decode(&configs); err != nil {
			return errors.Wrapf(ErrInvalidConstraint, "region: %v", err)
		}
	case yaml.MappingNode:
		var cfg ShapeConfig
		if err := root.Decode(&cfg); err != nil {
			return errors.Wrapf(ErrInvalidConstraint, "region: %v", err)
		}
		configs = append(configs, cfg)
	default:
		return errors.Wrap(ErrInvalidConstraint, "region must be a shape or a list of shapes")
	}
	if len(configs) == 0 {
		return errors.Wrap(ErrInvalidConstraint, "region has no shapes")
	}

	shapes := make([]shape, 0, len(configs))
	for i, cfg := range configs {
		s, err := cfg.build()
		if err != nil {
			return errors.Wrapf(ErrInvalidConstraint, "shape %d: %v", i, err)
		}
		shapes = append(shapes, s)
	}
	re.shapes = shapes
	return nil
}

func (re *regionEvaluator) Evaluate(x, y float64) bool {
	for _, s := range re.shapes {
		if s.contains(x, y) {
			return true
		}
	}
	return false
}
