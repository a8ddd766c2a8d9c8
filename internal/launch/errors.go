package launch

import "errors"

// Lifecycle violations are programmer errors in the host's startup ordering,
// not runtime conditions to retry. Each invalid transition gets its own
// sentinel so the failing edge is unambiguous.
var (
	// ErrNotCreated is returned by Get before Create has run.
	ErrNotCreated = errors.New("launch: environment has not been created")

	// ErrAlreadyCreated is returned by a second call to Create.
	ErrAlreadyCreated = errors.New("launch: environment has already been created")

	// ErrAlreadyCaptured is returned by a second call to CaptureRuntimeLoader.
	ErrAlreadyCaptured = errors.New("launch: runtime loader has already been captured")
)

// ErrModuleNotFound distinguishes a failed module lookup from a generic
// resource lookup failure.
var ErrModuleNotFound = errors.New("launch: module not found")
