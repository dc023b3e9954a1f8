// Package query is the process-wide cache and synchronization layer between
// page handlers and the backend API client. It owns freshness, retry and
// polling policy, and keeps at most one in-flight fetch per logical query.
package query

import "strings"

// Key is a logical query identity: an operation name plus its ordered
// parameters. Two reads with the same Key are the same cacheable unit;
// changing any parameter yields a new Key, never a mutation of an old entry.
type Key string

// NewKey builds a Key from an operation name and ordered parameters.
func NewKey(op string, params ...string) Key {
	if len(params) == 0 {
		return Key(op)
	}
	return Key(op + "?" + strings.Join(params, "&"))
}

// Op returns the operation name the key was built from.
func (k Key) Op() string {
	s := string(k)
	if i := strings.IndexByte(s, '?'); i >= 0 {
		return s[:i]
	}
	return s
}
