package watch

import (
	"errors"
	"math/rand"
	"time"

	"github.com/saleslv/premium-api/pkg/apierr"
)

// Retry delay bounds after a failed poll. The delay never exceeds the poll
// interval.
const (
	DefaultBackoffInitial = time.Second
	DefaultBackoffMax     = 30 * time.Second
)

// backoff is exponential backoff with jitter.
type backoff struct {
	initial time.Duration
	max     time.Duration
	current time.Duration
}

func newBackoff(initial, max time.Duration) *backoff {
	return &backoff{initial: initial, max: max, current: initial}
}

// next returns the current delay with ±20% jitter and doubles it for the
// following call.
func (b *backoff) next() time.Duration {
	jitter := float64(b.current) * 0.2 * (rand.Float64()*2 - 1)
	d := time.Duration(float64(b.current) + jitter)

	b.current *= 2
	if b.current > b.max {
		b.current = b.max
	}
	return d
}

func (b *backoff) reset() {
	b.current = b.initial
}

// transient reports whether a poll error is worth retrying before the next
// interval. Errors reported by the service itself are not.
func transient(err error) bool {
	if err == nil {
		return false
	}
	var e *apierr.Error
	if !errors.As(err, &e) {
		return true
	}
	switch e.Code {
	case apierr.RequestFailed, apierr.EmptyResponse, apierr.InvalidResponse:
		return true
	}
	return false
}
