package xc

import "fmt"

// TransportError indicates the request never produced an HTTP response
// (DNS failure, refused connection, timeout).
type TransportError struct {
	URL string
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("transport error calling %s: %v", e.URL, e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// HTTPError indicates the API answered with a non-2xx status.
type HTTPError struct {
	URL        string
	StatusCode int
	Body       string
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("request to %s failed with status %d: %s", e.URL, e.StatusCode, e.Body)
}

// MalformedResponse indicates a 2xx body that could not be decoded as a JSON object.
type MalformedResponse struct {
	URL string
	Err error
}

func (e *MalformedResponse) Error() string {
	return fmt.Sprintf("malformed response from %s: %v", e.URL, e.Err)
}

func (e *MalformedResponse) Unwrap() error {
	return e.Err
}

// BaselineUnavailable indicates the baseline namespace could not be fetched.
// Diffing cannot proceed without it.
type BaselineUnavailable struct {
	Namespace string
	Kind      Kind
	Err       error
}

func (e *BaselineUnavailable) Error() string {
	return fmt.Sprintf("baseline namespace %q unavailable for %s: %v", e.Namespace, e.Kind, e.Err)
}

func (e *BaselineUnavailable) Unwrap() error {
	return e.Err
}
