package pipeline

import "errors"

var (
	// ErrInvalidArgument indicates an unsupported granularity or chart type.
	// Fatal to the call, never recovered.
	ErrInvalidArgument = errors.New("pipeline: invalid argument")

	// ErrMalformedRecord indicates a primary record whose timestamp does not
	// parse. The whole grouping call fails: a partial aggregate built around
	// a corrupt record would be silently misleading.
	ErrMalformedRecord = errors.New("pipeline: malformed record")

	// ErrMalformedEvent indicates an annotation event whose date does not
	// parse. Events are advisory, so the event is skipped and reported
	// rather than aborting the call.
	ErrMalformedEvent = errors.New("pipeline: malformed event")
)
