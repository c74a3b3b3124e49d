package parking

import (
	"errors"
	"fmt"
)

var (
	ErrNotCreated      = errors.New("parking lot has not been created")
	ErrLotFull         = errors.New("parking lot is full")
	ErrSpotOutOfRange  = errors.New("spot is out of range")
	ErrSpotAlreadyFree = errors.New("spot is already free")
	ErrVehicleNotFound = errors.New("vehicle not found")
)

// SpotError reports a failed leave. Spot is the 1-based label shown to the
// user, which for out-of-range requests is not a real slot.
type SpotError struct {
	Spot int
	Err  error
}

func (e *SpotError) Error() string {
	return fmt.Sprintf("spot %d: %v", e.Spot, e.Err)
}

func (e *SpotError) Unwrap() error {
	return e.Err
}
