package globalplanner

import (
	"fmt"

	"github.com/pkg/errors"

	"go.viam.com/navplan/referenceframe"
)

var (
	// ErrNotInitialized is returned by calls made before Initialize.
	ErrNotInitialized = errors.New("global planner is not initialized")
	// ErrEmptyConstraint is returned when neither a constraint frame nor a constraint is given.
	ErrEmptyConstraint = errors.New("goal constraint is empty")
	// ErrMissingStart is returned when no start pose is given.
	ErrMissingStart = errors.New("start pose is required")
	// ErrStartOffMap is the class of every *OffMapStartError.
	ErrStartOffMap = errors.New("start pose is off the map")
	// ErrNoGoalCells is returned when no passable cell of the current grid satisfies the constraint.
	// Retrying is pointless until the grid or the constraint changes.
	ErrNoGoalCells = errors.New("no goal cell satisfies the goal constraint")
	// ErrSearchExhausted is returned when neither the forward nor the fallback search found a path.
	ErrSearchExhausted = errors.New("could not find a path to the goal region")
)

// OffMapStartError reports a start position that does not fall onto the grid.
type OffMapStartError struct {
	Frame string
	X, Y  float64
}

// NewOffMapStartError returns an error for a start position (x, y) in frame that lies off the grid.
func NewOffMapStartError(frame string, x, y float64) error {
	return &OffMapStartError{Frame: frame, X: x, Y: y}
}

func (e *OffMapStartError) Error() string {
	return fmt.Sprintf("start position (%.3f, %.3f) in frame %q is off the map, has the robot been localized?",
		e.X, e.Y, e.Frame)
}

// Unwrap lets errors.Is match ErrStartOffMap.
func (e *OffMapStartError) Unwrap() error {
	return ErrStartOffMap
}

// asTransformError makes sure a lookup failure is reported as a *referenceframe.TransformError
// regardless of which provider produced it.
func asTransformError(target, source string, err error) error {
	var tfErr *referenceframe.TransformError
	if errors.As(err, &tfErr) {
		return err
	}
	return referenceframe.NewTransformError(target, source, err)
}
