// Package config is the configuration surface consumed from the caller:
// snapping tolerance, angle thresholds, duplicate-edge policy and batch
// worker count. Configs can be built in code or loaded from YAML.
package config

import (
	"fmt"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"github.com/dkelsey/fracmosaic/pkg/network"
)

// Duplicate-edge policy names accepted in configuration.
const (
	PolicyKeepFirst = "keep-first"
	PolicyMerge     = "merge"
)

// Config carries every knob of the analysis core. All angles are degrees;
// tolerance and lengths are in the coordinate unit of the input data.
type Config struct {
	// Tolerance is the endpoint snapping distance. Required, positive.
	Tolerance float64 `yaml:"tolerance" validate:"required,gt=0"`
	// CollinearityThreshold decides when two edges at a vertex continue
	// one through-going trace.
	CollinearityThreshold float64 `yaml:"collinearity_threshold" validate:"gte=0,lt=90"`
	// AzimuthBinWidth sizes the rose-diagram orientation buckets.
	AzimuthBinWidth float64 `yaml:"azimuth_bin_width" validate:"gt=0,lte=180"`
	// AngleBuffer is the half-width around 90 and 180 degrees used by the
	// X/T/Y junction taxonomy.
	AngleBuffer float64 `yaml:"angle_buffer" validate:"gte=0,lt=45"`
	// DuplicateEdgePolicy resolves coincident edges: keep-first or merge.
	DuplicateEdgePolicy string `yaml:"duplicate_edge_policy" validate:"oneof=keep-first merge"`
	// Workers bounds batch parallelism. 0 means one worker per CPU.
	Workers int `yaml:"workers" validate:"gte=0"`
	// LogLevel is the pipeline logger threshold (debug/info/warn/error).
	LogLevel string `yaml:"log_level"`
}

// Default returns the documented defaults. Tolerance has no sensible
// default and must be set by the caller before Validate passes.
func Default() Config {
	return Config{
		CollinearityThreshold: 10,
		AzimuthBinWidth:       10,
		AngleBuffer:           15,
		DuplicateEdgePolicy:   PolicyKeepFirst,
		Workers:               0,
		LogLevel:              "info",
	}
}

// Load parses a YAML document over the defaults and validates the result.
func Load(data []byte) (Config, error) {
	cfg := Default()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

var validate = validator.New()

// Validate checks field rules (struct tags) and cross-field consistency.
// All violations are reported together.
func (c Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("config: %w", err)
	}

	cv := NewConfigValidator("Config")
	cv.Finite("tolerance", c.Tolerance)
	cv.Finite("collinearity_threshold", c.CollinearityThreshold)
	cv.Finite("azimuth_bin_width", c.AzimuthBinWidth)
	cv.Finite("angle_buffer", c.AngleBuffer)
	// The 90 and 180 classification windows must stay disjoint even when
	// the continuation test borrows the buffer's neighborhood.
	cv.LessThan("collinearity_threshold", c.CollinearityThreshold, 90-c.AngleBuffer)
	return cv.Err()
}

// DuplicatePolicy converts the configured policy name for the builder.
func (c Config) DuplicatePolicy() network.DuplicatePolicy {
	if c.DuplicateEdgePolicy == PolicyMerge {
		return network.Merge
	}
	return network.KeepFirst
}
