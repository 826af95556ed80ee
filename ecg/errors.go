package ecg

import "fmt"

// ConfigurationError reports an invalid parameter combination (filter
// cutoffs outside (0, Nyquist), unsupported window or normalization kind).
// It is raised eagerly at call time and never silently corrected.
type ConfigurationError struct {
	Msg string
}

func (e *ConfigurationError) Error() string {
	return "configuration: " + e.Msg
}

// Configf builds a ConfigurationError from a format string
func Configf(format string, args ...any) error {
	return &ConfigurationError{Msg: fmt.Sprintf(format, args...)}
}

// ShapeError reports an array of the wrong rank or layout, e.g. a
// multi-channel signal passed to a single-channel extractor.
type ShapeError struct {
	Msg string
}

func (e *ShapeError) Error() string {
	return "shape: " + e.Msg
}

// Shapef builds a ShapeError from a format string
func Shapef(format string, args ...any) error {
	return &ShapeError{Msg: fmt.Sprintf(format, args...)}
}

// InsufficientDataError reports a record shorter than the minimum
// analyzable length. Recoverable at the batch layer: skip the record,
// continue the batch.
type InsufficientDataError struct {
	Samples int
	Min     int
}

func (e *InsufficientDataError) Error() string {
	return fmt.Sprintf("insufficient data: %d samples, need at least %d", e.Samples, e.Min)
}
