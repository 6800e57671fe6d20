package engine

import (
	"encoding/json"
	"os"
	"reflect"

	"github.com/go-playground/validator/v10"
	"github.com/invopop/jsonschema"
	"github.com/moznion/go-optional"
	"github.com/statarb-lab/pairtrade/internal/features"
	"github.com/statarb-lab/pairtrade/pkg/errors"
	yaml "gopkg.in/yaml.v2"
)

// Config carries the engine parameters that are independent of the strategy
// under test.
type Config struct {
	InitialCapital      float64              `yaml:"initial_capital" json:"initial_capital" jsonschema:"title=Initial Capital,description=Starting capital for the backtest in USD,minimum=0" validate:"gt=0"`
	TransactionCostRate float64              `yaml:"transaction_cost_rate" json:"transaction_cost_rate" jsonschema:"title=Transaction Cost Rate,description=Proportional cost charged on notional at entry and exit,minimum=0" validate:"gte=0,lt=1"`
	MaxPairs            optional.Option[int] `yaml:"max_pairs" json:"max_pairs" jsonschema:"title=Max Pairs,description=Optional cap on concurrently open pair positions"`
	// FeatureRefreshInterval is how many steps a feature frame is reused
	// before recomputation. Zero falls back to the default.
	FeatureRefreshInterval int `yaml:"feature_refresh_interval" json:"feature_refresh_interval" jsonschema:"title=Feature Refresh Interval,description=Steps between feature recomputations,minimum=0" validate:"gte=0"`
}

// DefaultConfig returns the engine defaults: 100k capital, 10bp per-leg cost,
// no pair cap.
func DefaultConfig() Config {
	return Config{
		InitialCapital:         100000,
		TransactionCostRate:    0.001,
		MaxPairs:               optional.None[int](),
		FeatureRefreshInterval: features.DefaultRefreshInterval,
	}
}

// UnmarshalYAML implements custom unmarshaling for Config
func (c *Config) UnmarshalYAML(unmarshal func(interface{}) error) error {
	type plain struct {
		InitialCapital         float64 `yaml:"initial_capital"`
		TransactionCostRate    float64 `yaml:"transaction_cost_rate"`
		MaxPairs               *int    `yaml:"max_pairs"`
		FeatureRefreshInterval int     `yaml:"feature_refresh_interval"`
	}

	// Seeding from the receiver keeps defaults for omitted fields.
	config := plain{
		InitialCapital:         c.InitialCapital,
		TransactionCostRate:    c.TransactionCostRate,
		FeatureRefreshInterval: c.FeatureRefreshInterval,
	}

	if err := unmarshal(&config); err != nil {
		return err
	}

	c.InitialCapital = config.InitialCapital
	c.TransactionCostRate = config.TransactionCostRate
	c.FeatureRefreshInterval = config.FeatureRefreshInterval

	if config.MaxPairs != nil {
		c.MaxPairs = optional.Some(*config.MaxPairs)
	} else {
		c.MaxPairs = optional.None[int]()
	}

	return nil
}

// Validate checks the config against its validation tags plus the
// cross-field rules the tags cannot express.
func (c *Config) Validate() error {
	validate := validator.New()

	if err := validate.Struct(c); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidConfiguration, "invalid engine config", err)
	}

	if maxPairs, err := c.MaxPairs.Take(); err == nil && maxPairs < 1 {
		return errors.Newf(errors.ErrCodeInvalidConfiguration, "max_pairs must be at least 1 when set, got %d", maxPairs)
	}

	return nil
}

// LoadConfig reads and validates a YAML engine config. Fields absent from the
// file keep their defaults.
func LoadConfig(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, errors.Wrapf(errors.ErrCodeInvalidConfiguration, err, "failed to read config %s", path)
	}

	config := DefaultConfig()
	if err := yaml.Unmarshal(data, &config); err != nil {
		return Config{}, errors.Wrapf(errors.ErrCodeInvalidConfiguration, err, "failed to parse config %s", path)
	}

	if config.FeatureRefreshInterval == 0 {
		config.FeatureRefreshInterval = features.DefaultRefreshInterval
	}

	if err := config.Validate(); err != nil {
		return Config{}, err
	}

	return config, nil
}

// GenerateSchema generates a JSON schema for the Config
func (c *Config) GenerateSchema() (*jsonschema.Schema, error) {
	reflector := jsonschema.Reflector{
		RequiredFromJSONSchemaTags: true,
		ExpandedStruct:             true,
		AllowAdditionalProperties:  false,
		Mapper: func(t reflect.Type) *jsonschema.Schema {
			if t.String() == "optional.Option[int]" {
				return &jsonschema.Schema{
					Type:    "integer",
					Minimum: json.Number("1"),
				}
			}
			return nil
		},
	}

	schema := reflector.Reflect(c)

	schema.Title = "pairtrade-engine-config"
	schema.Description = "Configuration schema for the pair trading backtest engine"
	schema.Version = "http://json-schema.org/draft-07/schema#"

	return schema, nil
}

// GenerateSchemaJSON generates a JSON schema string for the Config
func (c *Config) GenerateSchemaJSON() (string, error) {
	schema, err := c.GenerateSchema()
	if err != nil {
		return "", err
	}

	schemaBytes, err := json.MarshalIndent(schema, "", "  ")
	if err != nil {
		return "", err
	}

	return string(schemaBytes), nil
}
