package referenceframe

import (
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/pkg/errors"
	"github.com/samber/lo"

	"go.viam.com/navplan/spatialmath"
)

// DefaultHistoryLength is the number of stamped poses remembered per frame.
const DefaultHistoryLength = 32

type stampedPose struct {
	stamp time.Time
	pose  spatialmath.Pose
}

type frameNode struct {
	parent string
	// ascending by stamp
	history []stampedPose
}

// FrameTree is a tree of named frames rooted at World. Each frame holds a short history of its
// pose relative to its parent so that transforms can be looked up either at the latest time or
// at a past instant. Frames may be moved by other goroutines while lookups are in flight.
type FrameTree struct {
	mu            sync.RWMutex
	name          string
	frames        map[string]*frameNode
	historyLength int
}

// NewFrameTree creates a tree containing only the World frame.
func NewFrameTree(name string) *FrameTree {
	return &FrameTree{
		name:          name,
		frames:        map[string]*frameNode{},
		historyLength: DefaultHistoryLength,
	}
}

// Name returns the name of the tree.
func (ft *FrameTree) Name() string {
	return ft.name
}

func (ft *FrameTree) frameExists(name string) bool {
	if name == World {
		return true
	}
	_, ok := ft.frames[name]
	return ok
}

// AddFrame inserts a frame as a child of parent. A zero stamp marks the pose as static, valid for
// lookups at any time.
func (ft *FrameTree) AddFrame(name, parent string, pose spatialmath.Pose, stamp time.Time) error {
	if name == "" {
		return errors.New("frame name cannot be empty")
	}
	if parent == "" {
		return NewParentFrameMissingError(name)
	}
	if pose == nil {
		pose = spatialmath.NewZeroPose()
	}

	ft.mu.Lock()
	defer ft.mu.Unlock()
	if !ft.frameExists(parent) {
		return errors.Wrap(NewFrameNotFoundError(parent), "parent frame not in frame tree")
	}
	if ft.frameExists(name) {
		return NewFrameExistsError(name)
	}
	ft.frames[name] = &frameNode{parent: parent, history: []stampedPose{{stamp, pose}}}
	return nil
}

// UpdateFrame records a new pose of the named frame relative to its parent. Stamps must not go
// backwards in time.
func (ft *FrameTree) UpdateFrame(name string, pose spatialmath.Pose, stamp time.Time) error {
	ft.mu.Lock()
	defer ft.mu.Unlock()
	node, ok := ft.frames[name]
	if !ok {
		return NewFrameNotFoundError(name)
	}
	last := node.history[len(node.history)-1]
	if stamp.Before(last.stamp) {
		return errors.Errorf("pose for frame %q at %s is older than the latest known pose at %s",
			name, stamp.Format(time.RFC3339Nano), last.stamp.Format(time.RFC3339Nano))
	}
	node.history = append(node.history, stampedPose{stamp, pose})
	if len(node.history) > ft.historyLength {
		node.history = node.history[len(node.history)-ft.historyLength:]
	}
	return nil
}

// RemoveFrame will delete the given frame and all descendents from the frame tree if it exists.
func (ft *FrameTree) RemoveFrame(name string) {
	ft.mu.Lock()
	defer ft.mu.Unlock()
	ft.removeFrame(name)
}

func (ft *FrameTree) removeFrame(name string) {
	delete(ft.frames, name)
	for child, node := range ft.frames {
		if node.parent == name {
			ft.removeFrame(child)
		}
	}
}

// FrameNames returns the sorted names of all frames other than World.
func (ft *FrameTree) FrameNames() []string {
	ft.mu.RLock()
	defer ft.mu.RUnlock()
	names := lo.Keys(ft.frames)
	sort.Strings(names)
	return names
}

// Parent returns the name of the parent of the given frame.
func (ft *FrameTree) Parent(name string) (string, error) {
	ft.mu.RLock()
	defer ft.mu.RUnlock()
	if name == World {
		return "", errors.New("world frame has no parent")
	}
	node, ok := ft.frames[name]
	if !ok {
		return "", NewFrameNotFoundError(name)
	}
	return node.parent, nil
}

// LookupTransform returns the transform mapping points in source into target at time at. The
// zero time selects the latest pose of every frame on the way.
func (ft *FrameTree) LookupTransform(target, source string, at time.Time) (spatialmath.Pose, error) {
	ft.mu.RLock()
	defer ft.mu.RUnlock()

	sourceToWorld, err := ft.toWorld(source, at)
	if err != nil {
		return nil, NewTransformError(target, source, err)
	}
	targetToWorld, err := ft.toWorld(target, at)
	if err != nil {
		return nil, NewTransformError(target, source, err)
	}
	return spatialmath.Compose(spatialmath.PoseInverse(targetToWorld), sourceToWorld), nil
}

// toWorld composes the poses from name up to World.
func (ft *FrameTree) toWorld(name string, at time.Time) (spatialmath.Pose, error) {
	result := spatialmath.NewZeroPose()
	for visited := 0; name != World; visited++ {
		if visited > len(ft.frames) {
			return nil, errors.Errorf("cycle detected while tracing frame %q", name)
		}
		node, ok := ft.frames[name]
		if !ok {
			return nil, NewFrameNotFoundError(name)
		}
		pose, err := node.poseAt(at)
		if err != nil {
			return nil, errors.Wrapf(err, "frame %q", name)
		}
		result = spatialmath.Compose(pose, result)
		name = node.parent
	}
	return result, nil
}

// poseAt returns the newest pose stamped at or before at. Zero stamps are static and always match.
func (node *frameNode) poseAt(at time.Time) (spatialmath.Pose, error) {
	if at.IsZero() {
		return node.history[len(node.history)-1].pose, nil
	}
	for i := len(node.history) - 1; i >= 0; i-- {
		entry := node.history[i]
		if entry.stamp.IsZero() || !entry.stamp.After(at) {
			return entry.pose, nil
		}
	}
	return nil, ErrExtrapolation
}

// String prints out a table of each frame in the tree, with columns of name, parent, translation and yaw.
func (ft *FrameTree) String() string {
	ft.mu.RLock()
	defer ft.mu.RUnlock()
	t := table.NewWriter()
	t.AppendHeader(table.Row{"#", "Name", "Parent", "Translation", "Yaw (deg)", "Stamp"})
	t.AppendRow(table.Row{"0", World, "", "", "", ""})
	names := lo.Keys(ft.frames)
	sort.Strings(names)
	for i, name := range names {
		node := ft.frames[name]
		latest := node.history[len(node.history)-1]
		pt := latest.pose.Point()
		stamp := "static"
		if !latest.stamp.IsZero() {
			stamp = latest.stamp.Format(time.RFC3339)
		}
		t.AppendRow(table.Row{
			fmt.Sprintf("%d", i+1),
			name,
			node.parent,
			fmt.Sprintf("X:%.3f, Y:%.3f, Z:%.3f", pt.X, pt.Y, pt.Z),
			fmt.Sprintf("%.2f", spatialmath.RadToDeg(spatialmath.Yaw(latest.pose.Orientation()))),
			stamp,
		})
	}
	return t.Render()
}

var _ TransformProvider = (*FrameTree)(nil)
