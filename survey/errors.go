package survey

import "github.com/pkg/errors"

// ErrBackendUnavailable matches every error raised while talking to the table
// backend.
var ErrBackendUnavailable = errors.New("backend unavailable")

// errInvalidSelection marks input that does not fit the current stage. It never
// leaves the engine: the current prompt is rendered again instead.
var errInvalidSelection = errors.New("invalid selection")

type BackendError struct {
	Op  string
	Err error
}

func (e *BackendError) Error() string {
	return "backend " + e.Op + ": " + e.Err.Error()
}

func (e *BackendError) Unwrap() error {
	return e.Err
}

func (e *BackendError) Is(target error) bool {
	return target == ErrBackendUnavailable
}
