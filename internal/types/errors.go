package types

import (
	"errors"
	"fmt"
)

var (
	ErrDataLoad           = errors.New("poi catalogue could not be loaded")
	ErrInvalidPreferences = errors.New("invalid travel preferences")
)

// DataLoadError is returned when the POI catalogue cannot be read or decoded.
// No plan is built from a partially loaded catalogue.
type DataLoadError struct {
	Source string
	Err    error
}

func (e *DataLoadError) Error() string {
	return fmt.Sprintf("loading poi catalogue from %s: %v", e.Source, e.Err)
}

func (e *DataLoadError) Unwrap() error { return e.Err }

func (e *DataLoadError) Is(target error) bool { return target == ErrDataLoad }

// ConfigError describes a preference value that failed validation.
type ConfigError struct {
	Field  string
	Reason string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

func (e *ConfigError) Is(target error) bool { return target == ErrInvalidPreferences }
