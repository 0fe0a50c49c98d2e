package live

import "errors"

// Client errors.
var (
	// ErrClosed is returned when using a closed client.
	ErrClosed = errors.New("live: client closed")

	// ErrTimeout is returned when Live does not answer a query in time.
	ErrTimeout = errors.New("live: query timed out")

	// ErrLive wraps an error reported by the remote script on /live/error.
	ErrLive = errors.New("live: remote error")

	// ErrBadReply is returned when a reply does not have the expected shape.
	ErrBadReply = errors.New("live: malformed reply")
)
