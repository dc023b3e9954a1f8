package api

import "fmt"

// TransportError is a network, HTTP or decode failure from the backend. It is
// never fatal: the query layer retries it and consumers render it as a
// "failed to load" state.
type TransportError struct {
	Op         string
	StatusCode int // zero when the request never reached the backend
	Err        error
}

func (e *TransportError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("%s: status %d: %v", e.Op, e.StatusCode, e.Err)
	}
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }
