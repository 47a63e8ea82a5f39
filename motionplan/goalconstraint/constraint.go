// Package goalconstraint describes goal regions as predicates over points in a named frame.
package goalconstraint

import (
	"fmt"
	"sort"
	"sync"

	"github.com/pkg/errors"
	"github.com/samber/lo"
)

// GoalConstraint names a region by a predicate specification authored in Frame.
type GoalConstraint struct {
	Frame      string `json:"frame"`
	Constraint string `json:"constraint"`
}

// IsEmpty reports whether nothing was requested: both the frame and the specification are empty.
func (gc GoalConstraint) IsEmpty() bool {
	return gc.Frame == "" && gc.Constraint == ""
}

// Equal reports whether both fields match.
func (gc GoalConstraint) Equal(other GoalConstraint) bool {
	return gc.Frame == other.Frame && gc.Constraint == other.Constraint
}

func (gc GoalConstraint) String() string {
	return fmt.Sprintf("%q in frame %q", gc.Constraint, gc.Frame)
}

// Evaluator decides whether a point satisfies a goal region specification.
type Evaluator interface {
	// Init parses and validates a specification. After a failed Init the evaluator rejects every point.
	Init(definition string) error
	// Evaluate reports whether (x, y), expressed in the frame the specification was authored in,
	// lies in the region. It has no side effects.
	Evaluate(x, y float64) bool
}

// EvaluatorConstructor builds a fresh, uninitialized Evaluator.
type EvaluatorConstructor func() Evaluator

// ErrInvalidConstraint wraps every specification that fails to parse.
var ErrInvalidConstraint = errors.New("invalid goal constraint")

var (
	registryMu sync.RWMutex
	registry   = map[string]EvaluatorConstructor{}
)

// RegisterEvaluator registers an evaluator variant under name. It panics if name is taken.
func RegisterEvaluator(name string, constructor EvaluatorConstructor) {
	registryMu.Lock()
	defer registryMu.Unlock()
	if _, ok := registry[name]; ok {
		panic(errors.Errorf("trying to register two evaluators with the same name %q", name))
	}
	if constructor == nil {
		panic(errors.Errorf("cannot register a nil constructor for evaluator %q", name))
	}
	registry[name] = constructor
}

// NewEvaluator returns a fresh evaluator of the registered variant name.
func NewEvaluator(name string) (Evaluator, error) {
	registryMu.RLock()
	constructor, ok := registry[name]
	registryMu.RUnlock()
	if !ok {
		return nil, errors.Errorf("no evaluator registered as %q, known: %v", name, RegisteredEvaluators())
	}
	return constructor(), nil
}

// RegisteredEvaluators returns the sorted names of every registered variant.
func RegisteredEvaluators() []string {
	registryMu.RLock()
	defer registryMu.RUnlock()
	names := lo.Keys(registry)
	sort.Strings(names)
	return names
}

// NewInitializedEvaluator creates the named evaluator and initializes it with definition.
func NewInitializedEvaluator(name, definition string) (Evaluator, error) {
	ev, err := NewEvaluator(name)
	if err != nil {
		return nil, err
	}
	if err := ev.Init(definition); err != nil {
		return nil, err
	}
	return ev, nil
}
