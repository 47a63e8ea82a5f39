package globalplanner

import (
	"github.com/go-viper/mapstructure/v2"
	"github.com/invopop/jsonschema"
	"github.com/pkg/errors"
	"go.uber.org/multierr"

	"go.viam.com/navplan/motionplan/goalconstraint"
)

const (
	defaultLookaheadCells = 5
	defaultCostFactor     = 3.0
)

// Config describes how a Planner turns goal constraints into plans.
type Config struct {
	// Evaluator names the registered goal constraint evaluator used to interpret constraints.
	Evaluator string `json:"evaluator,omitempty"`
	// LookaheadCells is how many cells ahead a pose looks to pick its heading.
	LookaheadCells int `json:"lookahead_cells,omitempty"`
	// CostFactor scales how strongly cell costs steer the search away from obstacles.
	CostFactor float64 `json:"cost_factor"`
	// AllowUnknown lets plans cross cells the grid has no information about.
	AllowUnknown bool `json:"allow_unknown"`
	// GlobalFrameOverride replaces the grid provider's global frame when set. The grid is not
	// transformed: its cells are read as if they were expressed in the override, so the
	// override should coincide with the provider's frame. Initialize fails when the two are not
	// connected by a transform and warns when they are offset.
	GlobalFrameOverride string `json:"global_frame_override,omitempty"`
}

// DefaultConfig returns the configuration used when no attributes are given.
func DefaultConfig() Config {
	return Config{
		Evaluator:      goalconstraint.ExpressionEvaluatorName,
		LookaheadCells: defaultLookaheadCells,
		CostFactor:     defaultCostFactor,
		AllowUnknown:   true,
	}
}

// NewConfigFromAttributes decodes attributes over DefaultConfig and validates the result. Unknown
// attributes are rejected.
func NewConfigFromAttributes(attributes map[string]interface{}) (Config, error) {
	cfg := DefaultConfig()
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		TagName:          "json",
		Result:           &cfg,
		ErrorUnused:      true,
		WeaklyTypedInput: true,
	})
	if err != nil {
		return Config{}, err
	}
	if err := decoder.Decode(attributes); err != nil {
		return Config{}, errors.Wrap(err, "failed to decode global planner attributes")
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate returns every problem with the configuration.
func (cfg Config) Validate() error {
	var err error
	if cfg.Evaluator == "" {
		err = multierr.Append(err, errors.New("evaluator must be set"))
	} else if _, evErr := goalconstraint.NewEvaluator(cfg.Evaluator); evErr != nil {
		err = multierr.Append(err, evErr)
	}
	if cfg.LookaheadCells < 1 {
		err = multierr.Append(err, errors.Errorf("lookahead_cells must be at least 1, got %d", cfg.LookaheadCells))
	}
	if cfg.CostFactor < 0 {
		err = multierr.Append(err, errors.Errorf("cost_factor cannot be negative, got %f", cfg.CostFactor))
	}
	return err
}

// ConfigSchema describes the attributes accepted by NewConfigFromAttributes.
func ConfigSchema() *jsonschema.Schema {
	return jsonschema.Reflect(&Config{})
}
