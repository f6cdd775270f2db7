package wordpress

import "errors"

// Remote failure kinds. Every transport or HTTP failure of the client is
// wrapped in exactly one of these so callers can branch with errors.Is
// without seeing transport internals.
var (
	// ErrNotFound means the remote reported the resource absent.
	ErrNotFound = errors.New("wordpress: not found")

	// ErrUnavailable means the remote could not be reached at all
	// (connection failure, timeout).
	ErrUnavailable = errors.New("wordpress: unavailable")

	// ErrRejected means the remote responded with an error status not
	// covered by ErrNotFound.
	ErrRejected = errors.New("wordpress: request rejected")
)
