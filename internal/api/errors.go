package api

import "fmt"

// NetworkError reports a listing or item request that could not complete:
// transport failure, non-2xx status, or an undecodable body.
type NetworkError struct {
	Op         string // "list" or "item"
	URL        string
	StatusCode int
	Err        error
}

func (e *NetworkError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("%s request %s: HTTP %d", e.Op, e.URL, e.StatusCode)
	}
	return fmt.Sprintf("%s request %s: %v", e.Op, e.URL, e.Err)
}

func (e *NetworkError) Unwrap() error { return e.Err }

// MalformedDataError reports an item that decoded but does not match the
// story schema.
type MalformedDataError struct {
	ID     int
	Field  string
	Reason string
}

func (e *MalformedDataError) Error() string {
	return fmt.Sprintf("item %d: field %q %s", e.ID, e.Field, e.Reason)
}
