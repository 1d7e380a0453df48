package checkout

import "encoding/json"

type walletTokenRequest struct {
    Type      string          `json:"type"`
    TokenData json.RawMessage `json:"token_data"`
}

type walletTokenResponse struct {
    Type      string `json:"type"`
    Token     string `json:"token"`
    ExpiresOn string `json:"expires_on,omitempty"`
}

// BillingAddress carries only the country for wallet charges; the wallet
// token itself holds the rest of the cardholder data.
type BillingAddress struct {
    Country string `json:"country"`
}

type Source struct {
    Type           string          `json:"type"`
    Token          string          `json:"token"`
    BillingAddress *BillingAddress `json:"billing_address,omitempty"`
}

// Risk enables the processor's risk engine for a single charge, keyed by
// the device session collected in the browser.
type Risk struct {
    Enabled         bool   `json:"enabled"`
    DeviceSessionID string `json:"device_session_id"`
}

// PaymentRequest is the charge submission wire shape. Built fresh per
// attempt by the payment service and never persisted.
type PaymentRequest struct {
    Source              Source `json:"source"`
    Amount              int64  `json:"amount"`
    Currency            string `json:"currency"`
    Reference           string `json:"reference"`
    ProcessingChannelID string `json:"processing_channel_id"`
    Risk                *Risk  `json:"risk,omitempty"`
}

type paymentResponse struct {
    ID              string `json:"id"`
    Status          string `json:"status"`
    Reference       string `json:"reference,omitempty"`
    ResponseCode    string `json:"response_code,omitempty"`
    ResponseSummary string `json:"response_summary,omitempty"`
}

// PaymentResult is the subset of the processor's charge response the
// rest of the service cares about.
type PaymentResult struct {
    ID     string `json:"id"`
    Status string `json:"status"`
}

type apiErrorResponse struct {
    RequestID  string   `json:"request_id,omitempty"`
    ErrorType  string   `json:"error_type,omitempty"`
    ErrorCodes []string `json:"error_codes,omitempty"`
}
