package handlers

import (
    "encoding/json"
    "errors"
    "fmt"
    "log"
    "net/http"
    "net/url"

    "github.com/google/uuid"

    "wallet-payment-gateway/models"
    "wallet-payment-gateway/services/applepay"
    "wallet-payment-gateway/utils"
)

// MerchantValidator is satisfied by applepay.Client.
type MerchantValidator interface {
    ValidateMerchant(validationURL string) (json.RawMessage, error)
}

type ApplePayHandler struct {
    validator MerchantValidator
}

func NewApplePayHandler(v MerchantValidator) (*ApplePayHandler, error) {
    if v == nil {
        return nil, fmt.Errorf("merchant validator is required")
    }
    return &ApplePayHandler{validator: v}, nil
}

// ValidateMerchant handles POST /api/apple-pay/validate-merchant. The
// provider's session object is relayed to the browser byte-for-byte; on
// a provider rejection the upstream status code is propagated so the
// browser sees the provider's own diagnostics.
func (h *ApplePayHandler) ValidateMerchant(w http.ResponseWriter, r *http.Request) {
    requestID := uuid.New().String()

    var req models.MerchantValidationRequest
    if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
        log.Printf("[RequestID: %s] Invalid validation request body: %v", requestID, err)
        utils.SendValidationError(w, http.StatusBadRequest, "Invalid request body", err.Error())
        return
    }

    if req.ValidationURL == "" {
        utils.SendValidationError(w, http.StatusBadRequest, "validationURL is required", "")
        return
    }

    // The URL is untrusted browser input; it is forwarded as-is but must
    // at least be an absolute HTTPS endpoint.
    parsed, err := url.Parse(req.ValidationURL)
    if err != nil || parsed.Scheme != "https" || parsed.Host == "" {
        log.Printf("[RequestID: %s] Rejected validation URL: %s", requestID, req.ValidationURL)
        utils.SendValidationError(w, http.StatusBadRequest, "validationURL must be an absolute https URL", "")
        return
    }

    log.Printf("[RequestID: %s] Validating merchant against %s", requestID, parsed.Host)

    session, err := h.validator.ValidateMerchant(req.ValidationURL)
    if err != nil {
        h.sendValidationError(w, requestID, err)
        return
    }

    w.Header().Set("Content-Type", "application/json")
    w.WriteHeader(http.StatusOK)
    w.Write(session)
}

func (h *ApplePayHandler) sendValidationError(w http.ResponseWriter, requestID string, err error) {
    var upstreamErr *applepay.UpstreamError
    var transportErr *applepay.TransportError

    switch {
    case errors.As(err, &upstreamErr):
        log.Printf("[RequestID: %s] Merchant validation rejected upstream: %v", requestID, upstreamErr)
        utils.SendValidationError(w, upstreamErr.StatusCode, "Merchant validation rejected", upstreamErr.Body)
    case errors.As(err, &transportErr):
        log.Printf("[RequestID: %s] Merchant validation transport failure: %v", requestID, transportErr)
        utils.SendValidationError(w, http.StatusInternalServerError, "Merchant validation failed", transportErr.Err.Error())
    default:
        log.Printf("[RequestID: %s] Unexpected validation error: %v", requestID, err)
        utils.SendValidationError(w, http.StatusInternalServerError, "Merchant validation failed", err.Error())
    }
}
