package query

import (
	"context"
	"time"
)

// Recorder receives cache activity for instrumentation. Implementations must
// be safe for concurrent use.
type Recorder interface {
	// Hit is recorded when a read is satisfied without a new network call,
	// either from a fresh entry or by sharing an in-flight fetch.
	Hit(ctx context.Context, op string)
	// Miss is recorded when a read has to own a new fetch.
	Miss(ctx context.Context, op string)
	// Fetch is recorded once per network attempt with its duration and outcome.
	Fetch(ctx context.Context, op string, d time.Duration, ok bool)
	// Retry is recorded before each retry attempt after a failed fetch.
	Retry(ctx context.Context, op string)
	// Failure is recorded when a fetch is surfaced as failed after all retries.
	Failure(ctx context.Context, op string)
}

// NopRecorder discards all cache activity.
type NopRecorder struct{}

func (NopRecorder) Hit(context.Context, string)                        {}
func (NopRecorder) Miss(context.Context, string)                       {}
func (NopRecorder) Fetch(context.Context, string, time.Duration, bool) {}
func (NopRecorder) Retry(context.Context, string)                      {}
func (NopRecorder) Failure(context.Context, string)                    {}
