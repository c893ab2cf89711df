package convert

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidInput     = errors.New("file path not provided")
	ErrNotFound         = errors.New("file not found")
	ErrNoWorksheets     = errors.New("document has no worksheets")
	ErrColumnOutOfRange = errors.New("column out of addressable range")
)

type Stage string

const (
	StageOpen    Stage = "open"
	StageResolve Stage = "resolve"
	StageFlatten Stage = "flatten"
)

// ConversionError reports a failure after the input path was accepted.
type ConversionError struct {
	Stage Stage
	Path  string
	Err   error
}

func (e *ConversionError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Stage, e.Path, e.Err)
}

func (e *ConversionError) Unwrap() error {
	return e.Err
}

type Outcome string

const (
	OutcomeOK           Outcome = "ok"
	OutcomeInvalidInput Outcome = "invalid_input"
	OutcomeNotFound     Outcome = "not_found"
	OutcomeFailed       Outcome = "failed"
)

// Classify maps a Convert error onto the caller-visible outcome.
func Classify(err error) Outcome {
	switch {
	case err == nil:
		return OutcomeOK
	case errors.Is(err, ErrInvalidInput):
		return OutcomeInvalidInput
	case errors.Is(err, ErrNotFound):
		return OutcomeNotFound
	default:
		return OutcomeFailed
	}
}
