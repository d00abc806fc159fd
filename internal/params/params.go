// Package params holds the parameter bundle the core consumes, along with
// the validation original_source/src/arg_parser.h's parse_opt performs
// inline while scanning flags.
package params

import "fmt"

// Parameters is the external parameter bundle the core consumes. cmd/glider
// populates it from pflag; the core never parses a flag itself.
type Parameters struct {
	Seed          uint32
	Length        int
	Prob          float64
	MaxSteps      int
	PrintInterval int
	WriteToFile   bool
	EarlyStopping bool
	Processes     int
	Verbose       bool
	OutputDir     string
}

// Default returns the bundle's documented defaults.
func Default() Parameters {
	return Parameters{
		Seed:          0,
		Length:        768,
		Prob:          0.49,
		MaxSteps:      7680,
		PrintInterval: 100,
		WriteToFile:   true,
		EarlyStopping: true,
		Processes:     1,
		OutputDir:     ".",
	}
}

// ConfigError reports an invalid parameter value, surfaced before bring-up.
type ConfigError struct {
	Field  string
	Reason string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("params: %s: %s", e.Field, e.Reason)
}

// Validate checks every field parse_opt would reject at scan time: prob
// outside [0,1], and any non-positive sizing field that would otherwise
// surface later as a zero-sized-tile topology error.
func (p Parameters) Validate() error {
	if p.Prob < 0 || p.Prob > 1 {
		return &ConfigError{Field: "prob", Reason: "must be in [0, 1]"}
	}
	if p.Length <= 0 {
		return &ConfigError{Field: "length", Reason: "must be positive"}
	}
	if p.MaxSteps < 0 {
		return &ConfigError{Field: "max_steps", Reason: "must be non-negative"}
	}
	if p.PrintInterval <= 0 {
		return &ConfigError{Field: "print_interval", Reason: "must be positive"}
	}
	if p.Processes <= 0 {
		return &ConfigError{Field: "processes", Reason: "must be positive"}
	}
	return nil
}
