package applepay

import "fmt"

// UpstreamError means the wallet provider answered the validation POST
// with a non-200 status. Body keeps the provider's raw response so the
// browser can see its diagnostics.
type UpstreamError struct {
    StatusCode int
    Body       string
}

func (e *UpstreamError) Error() string {
    return fmt.Sprintf("merchant validation rejected with status %d: %s", e.StatusCode, e.Body)
}

// TransportError means the validation POST never completed: TLS
// handshake failure, DNS failure, timeout, certificate mismatch.
type TransportError struct {
    Err error
}

func (e *TransportError) Error() string {
    return fmt.Sprintf("merchant validation transport failure: %v", e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }
