package config

import (
	"errors"
	"fmt"
	"math"
)

// ConfigValidator provides a fluent interface for cross-field configuration
// checks. It collects all violations rather than failing on the first one.
type ConfigValidator struct {
	errors []error
	name   string // config struct name for error messages
}

// NewConfigValidator creates a new validator with the given config name.
func NewConfigValidator(configName string) *ConfigValidator {
	return &ConfigValidator{
		name:   configName,
		errors: make([]error, 0),
	}
}

// Finite validates that a float field is neither NaN nor infinite.
func (cv *ConfigValidator) Finite(field string, value float64) *ConfigValidator {
	if math.IsNaN(value) || math.IsInf(value, 0) {
		cv.errors = append(cv.errors, fmt.Errorf("%s.%s: value %v is not finite", cv.name, field, value))
	}
	return cv
}

// PositiveFloat validates that a float field is strictly positive.
func (cv *ConfigValidator) PositiveFloat(field string, value float64) *ConfigValidator {
	if !(value > 0) {
		cv.errors = append(cv.errors, fmt.Errorf("%s.%s: value %v is not positive", cv.name, field, value))
	}
	return cv
}

// LessThan validates that a float field stays below a limit.
func (cv *ConfigValidator) LessThan(field string, value, limit float64) *ConfigValidator {
	if value >= limit {
		cv.errors = append(cv.errors, fmt.Errorf("%s.%s: value %v is not below %v", cv.name, field, value, limit))
	}
	return cv
}

// Err returns all collected violations joined, or nil.
func (cv *ConfigValidator) Err() error {
	if len(cv.errors) == 0 {
		return nil
	}
	return errors.Join(cv.errors...)
}
