package ssu

import "errors"

var (
	// ErrInvalidConfiguration means an animator's A/B values break the
	// per-kind invariant.
	ErrInvalidConfiguration = errors.New("ssu: invalid animator configuration")
	// ErrEvaluation wraps failures of a custom evaluation function.
	ErrEvaluation = errors.New("ssu: evaluation failed")
	// ErrUnsupportedValueType is returned when a value has no block setter.
	ErrUnsupportedValueType = errors.New("ssu: unsupported value type")
	// ErrMissingPropertyName marks an animator without a target property.
	ErrMissingPropertyName = errors.New("ssu: missing property name")
)
