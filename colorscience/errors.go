package colorscience

import (
	"errors"
	"fmt"
)

var (
	// ErrInsufficientSamples is matched by InsufficientSamplesError
	ErrInsufficientSamples = errors.New("insufficient valid skin samples")
	// ErrInvalidColorInput is matched by InvalidColorInputError
	ErrInvalidColorInput = errors.New("invalid color input")

	errClusteringDegenerate = errors.New("cannot form the requested number of clusters")
)

// InsufficientSamplesError reports how many samples survived outlier filtering
type InsufficientSamplesError struct {
	Valid    int
	Required int
}

func (e *InsufficientSamplesError) Error() string {
	return fmt.Sprintf("%v: %d valid samples, at least %d required", ErrInsufficientSamples, e.Valid, e.Required)
}

func (e *InsufficientSamplesError) Is(target error) bool {
	return target == ErrInsufficientSamples
}

// InvalidColorInputError describes malformed pixel or colour data. Index is
// the offending sample position, or -1 when the input is not a sample list.
type InvalidColorInputError struct {
	Index  int
	Reason string
}

func (e *InvalidColorInputError) Error() string {
	if e.Index < 0 {
		return fmt.Sprintf("%v: %s", ErrInvalidColorInput, e.Reason)
	}
	return fmt.Sprintf("%v: sample %d: %s", ErrInvalidColorInput, e.Index, e.Reason)
}

func (e *InvalidColorInputError) Is(target error) bool {
	return target == ErrInvalidColorInput
}
