package referenceframe

import (
	"fmt"

	"github.com/pkg/errors"
)

var (
	// ErrFrameNotFound is returned when a named frame is not part of the frame tree.
	ErrFrameNotFound = errors.New("frame not found")
	// ErrExtrapolation is returned when a lookup asks for a time that predates every pose known for a frame.
	ErrExtrapolation = errors.New("lookup would require extrapolation into the past")
)

// NewParentFrameMissingError returns an error indicating that a frame is missing a parent.
func NewParentFrameMissingError(name string) error {
	return errors.Errorf("frame %q has no parent", name)
}

// NewFrameNotFoundError returns an error for a frame name that is not in the tree.
func NewFrameNotFoundError(name string) error {
	return errors.Wrapf(ErrFrameNotFound, "frame %q", name)
}

// NewFrameExistsError returns an error for adding a frame whose name is already taken.
func NewFrameExistsError(name string) error {
	return errors.Errorf("frame with name %q already in frame tree", name)
}

// TransformError is the failure of a transform lookup between two named frames.
type TransformError struct {
	Target string
	Source string
	Err    error
}

// NewTransformError wraps err as a failed lookup of the transform from source to target.
func NewTransformError(target, source string, err error) error {
	return &TransformError{Target: target, Source: source, Err: err}
}

func (e *TransformError) Error() string {
	return fmt.Sprintf("cannot transform from frame %q to frame %q: %v", e.Source, e.Target, e.Err)
}

func (e *TransformError) Unwrap() error {
	return e.Err
}
