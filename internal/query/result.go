package query

import "time"

// Result is the tri-state outcome of a cached read. Consumers must handle all
// three states explicitly:
//
//   - data:    HasData is true; Data holds the most recent successful value.
//     Err may still be set when a later background refresh failed —
//     the stale value keeps being served (stale-while-revalidate).
//   - error:   Failed() is true; there is no value to show.
//   - loading: neither data nor error; only possible before the first fetch
//     of an identity completes.
type Result struct {
	Data      any
	Err       error
	HasData   bool
	Stale     bool
	FetchedAt time.Time
}

// Failed reports a hard error with no prior value, the only case where a
// consumer shows an error state instead of data.
func (r Result) Failed() bool { return r.Err != nil && !r.HasData }

// Value returns the cached value when one exists, asserting its type. The
// second return is false for loading, hard-error and type-mismatch states.
func Value[T any](r Result) (T, bool) {
	var zero T
	if !r.HasData {
		return zero, false
	}
	v, ok := r.Data.(T)
	if !ok {
		return zero, false
	}
	return v, true
}
