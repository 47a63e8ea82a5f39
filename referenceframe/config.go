package referenceframe

import (
	"io"
	"time"

	"github.com/golang/geo/r3"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"go.viam.com/navplan/spatialmath"
)

// FrameConfig describes one static frame of a frame tree file.
type FrameConfig struct {
	Name        string    `yaml:"name" json:"name"`
	Parent      string    `yaml:"parent" json:"parent"`
	Translation r3.Vector `yaml:"translation" json:"translation"`
	YawDegrees  float64   `yaml:"yaw_degrees" json:"yaw_degrees"`
}

// Pose returns the pose of the frame relative to its parent.
func (cfg FrameConfig) Pose() spatialmath.Pose {
	return spatialmath.NewPose(cfg.Translation, spatialmath.NewYawOrientation(spatialmath.DegToRad(cfg.YawDegrees)))
}

// FrameTreeConfig is the top level document of a frame tree file.
type FrameTreeConfig struct {
	Frames []FrameConfig `yaml:"frames" json:"frames"`
}

// LoadFrameTreeYAML reads a yaml frame tree document, e.g.
//
//	frames:
//	  - name: map
//	    parent: world
//	  - name: beacon
//	    parent: map
//	    translation: {x: 4, y: 2}
//	    yaw_degrees: 90
func LoadFrameTreeYAML(name string, r io.Reader) (*FrameTree, error) {
	var cfg FrameTreeConfig
	if err := yaml.NewDecoder(r).Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return nil, errors.Wrap(err, "failed to decode frame tree")
	}
	return NewFrameTreeFromConfig(name, cfg.Frames)
}

// NewFrameTreeFromConfig builds a frame tree from frame configs listed in any order.
func NewFrameTreeFromConfig(name string, frames []FrameConfig) (*FrameTree, error) {
	ft := NewFrameTree(name)
	pending := frames
	for len(pending) > 0 {
		var deferred []FrameConfig
		for _, cfg := range pending {
			if cfg.Parent == "" {
				cfg.Parent = World
			}
			if !ft.hasFrame(cfg.Parent) {
				deferred = append(deferred, cfg)
				continue
			}
			if err := ft.AddFrame(cfg.Name, cfg.Parent, cfg.Pose(), time.Time{}); err != nil {
				return nil, err
			}
		}
		if len(deferred) == len(pending) {
			return nil, errors.Wrapf(NewFrameNotFoundError(deferred[0].Parent),
				"cannot attach frame %q", deferred[0].Name)
		}
		pending = deferred
	}
	return ft, nil
}

func (ft *FrameTree) hasFrame(name string) bool {
	ft.mu.RLock()
	defer ft.mu.RUnlock()
	return ft.frameExists(name)
}
