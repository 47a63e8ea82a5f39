package costmap

import (
	"image"

	"github.com/disintegration/imaging"
	"github.com/pkg/errors"
)

// ImageConfig describes how an occupancy image maps onto a grid, in the style of a map server
// yaml: dark pixels are occupied and light pixels are free.
type ImageConfig struct {
	Resolution     float64 `json:"resolution" yaml:"resolution"`
	OriginX        float64 `json:"origin_x" yaml:"origin_x"`
	OriginY        float64 `json:"origin_y" yaml:"origin_y"`
	OccupiedThresh float64 `json:"occupied_thresh" yaml:"occupied_thresh"`
	FreeThresh     float64 `json:"free_thresh" yaml:"free_thresh"`
	Negate         bool    `json:"negate" yaml:"negate"`

	Inflation InflationConfig `json:"inflation" yaml:"inflation"`
}

// DefaultImageConfig returns the thresholds conventionally used for occupancy images.
func DefaultImageConfig() ImageConfig {
	return ImageConfig{
		Resolution:     0.05,
		OccupiedThresh: 0.65,
		FreeThresh:     0.196,
	}
}

// Validate ensures all parts of the config are valid.
func (cfg ImageConfig) Validate() error {
	if cfg.Resolution <= 0 {
		return errors.New("resolution must be positive")
	}
	if cfg.FreeThresh < 0 || cfg.OccupiedThresh > 1 || cfg.FreeThresh >= cfg.OccupiedThresh {
		return errors.Errorf("thresholds must satisfy 0 <= free_thresh (%v) < occupied_thresh (%v) <= 1",
			cfg.FreeThresh, cfg.OccupiedThresh)
	}
	return cfg.Inflation.Validate()
}

// LoadImage reads an occupancy image from disk and converts it to a grid.
func LoadImage(path string, cfg ImageConfig) (*Grid, error) {
	img, err := imaging.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, "cannot open map image %q", path)
	}
	return GridFromImage(img, cfg)
}

// GridFromImage converts an occupancy image to a grid. The top row of the image is the row of
// cells with the largest Y. Fully transparent pixels are unknown.
func GridFromImage(img image.Image, cfg ImageConfig) (*Grid, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	gray := imaging.Grayscale(img)
	bounds := gray.Bounds()
	g, err := NewGrid(bounds.Dx(), bounds.Dy(), cfg.Resolution, cfg.OriginX, cfg.OriginY)
	if err != nil {
		return nil, err
	}
	for row := 0; row < bounds.Dy(); row++ {
		for col := 0; col < bounds.Dx(); col++ {
			px := gray.NRGBAAt(bounds.Min.X+col, bounds.Min.Y+row)
			cell := Cell{X: col, Y: bounds.Dy() - 1 - row}
			if px.A == 0 {
				g.SetCost(cell, NoInformation)
				continue
			}
			occupancy := float64(255-px.R) / 255
			if cfg.Negate {
				occupancy = float64(px.R) / 255
			}
			switch {
			case occupancy > cfg.OccupiedThresh:
				g.SetCost(cell, LethalObstacle)
			case occupancy < cfg.FreeThresh:
				g.SetCost(cell, FreeSpace)
			default:
				g.SetCost(cell, NoInformation)
			}
		}
	}
	if err := Inflate(g, cfg.Inflation); err != nil {
		return nil, err
	}
	return g, nil
}
