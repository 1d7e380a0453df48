package payment

import "fmt"

// InputError reports a missing or malformed required field. It is
// produced before any remote call is made.
type InputError struct {
    Field string
}

func (e *InputError) Error() string {
    return fmt.Sprintf("missing required field: %s", e.Field)
}

// TokenizationError means the wallet-token exchange was rejected or
// unreachable. No charge was attempted.
type TokenizationError struct {
    Err error
}

func (e *TokenizationError) Error() string {
    return fmt.Sprintf("tokenization failed: %v", e.Err)
}

func (e *TokenizationError) Unwrap() error { return e.Err }

// ChargeError means the charge submission itself was rejected or
// unreachable. Distinct from a declined charge, which is a successful
// call with a non-approved status.
type ChargeError struct {
    Err error
}

func (e *ChargeError) Error() string {
    return fmt.Sprintf("payment failed: %v", e.Err)
}

func (e *ChargeError) Unwrap() error { return e.Err }
