package models

import "encoding/json"

// WalletPaymentRequest is the body posted by the storefront after the
// browser wallet API (Apple Pay / Google Pay) hands back a payment token.
// TokenData is opaque to this service and forwarded to the processor
// unmodified.
type WalletPaymentRequest struct {
    WalletType      string          `json:"walletType,omitempty"`
    TokenData       json.RawMessage `json:"tokenData,omitempty"`
    Amount          int64           `json:"amount,omitempty"`
    CurrencyCode    string          `json:"currencyCode,omitempty"`
    CountryCode     string          `json:"countryCode,omitempty"`
    DeviceSessionID string          `json:"deviceSessionId,omitempty"`
}

// PaymentResult is what the browser gets back on a completed charge
// attempt. Approved is true only for the processor's Authorized and
// Captured statuses; a decline still arrives here with Approved false.
type PaymentResult struct {
    Approved  bool   `json:"approved"`
    Status    string `json:"status"`
    PaymentID string `json:"payment_id"`
}

// MerchantValidationRequest carries the validation URL produced by the
// Apple Pay JS API in its onvalidatemerchant callback.
type MerchantValidationRequest struct {
    ValidationURL string `json:"validationURL"`
}
