package inference

import (
	"errors"
	"fmt"
)

// ErrNoProviderAvailable is returned when the available set is empty and the
// caller gave no override. No network call is made in that case.
var ErrNoProviderAvailable = errors.New("no available model services")

// UnavailableError reports a network-level failure reaching the chosen
// provider: connection refused, DNS failure, timeout. It is distinct from a
// provider that answered with an application error.
type UnavailableError struct {
	Provider string
	Err      error
}

func (e *UnavailableError) Error() string {
	return fmt.Sprintf("service %s unavailable: %v", e.Provider, e.Err)
}

func (e *UnavailableError) Unwrap() error {
	return e.Err
}

// BackendError reports a provider that was reachable but answered with a
// non-2xx status. StatusCode and Detail are passed through to the caller.
type BackendError struct {
	Provider   string
	StatusCode int
	Detail     string
}

func (e *BackendError) Error() string {
	return fmt.Sprintf("service %s returned %d: %s", e.Provider, e.StatusCode, e.Detail)
}
