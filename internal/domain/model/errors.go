package model

import "fmt"

// ShapeMismatchError reports two grids that were expected to share the
// same dimensions but do not.
type ShapeMismatchError struct {
	WantRows, WantCols int
	GotRows, GotCols   int
}

func (e *ShapeMismatchError) Error() string {
	return fmt.Sprintf("shape mismatch: expected %dx%d, got %dx%d",
		e.WantRows, e.WantCols, e.GotRows, e.GotCols)
}

// EmptySampleSetError reports extraction that produced zero valid
// training samples, e.g. a fully masked input pair.
type EmptySampleSetError struct {
	Rows, Cols int
}

func (e *EmptySampleSetError) Error() string {
	return fmt.Sprintf("empty sample set: no valid pixels in %dx%d input", e.Rows, e.Cols)
}

// InsufficientSamplesError reports a training set too small for the
// configured feature subsampling.
type InsufficientSamplesError struct {
	Got, Need int
}

func (e *InsufficientSamplesError) Error() string {
	return fmt.Sprintf("insufficient samples: got %d, need at least %d", e.Got, e.Need)
}

// InvalidConfigurationError reports an out-of-range option value.
type InvalidConfigurationError struct {
	Option string
	Value  any
	Reason string
}

func (e *InvalidConfigurationError) Error() string {
	return fmt.Sprintf("invalid configuration: %s=%v (%s)", e.Option, e.Value, e.Reason)
}

// UnknownClassError reports a label value outside the declared taxonomy.
type UnknownClassError struct {
	Value    int
	Row, Col int
}

func (e *UnknownClassError) Error() string {
	return fmt.Sprintf("unknown class %d at pixel (%d,%d): taxonomy is [0,%d)",
		e.Value, e.Row, e.Col, NumClasses)
}
