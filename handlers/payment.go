package handlers

import (
    "encoding/json"
    "errors"
    "fmt"
    "log"
    "net/http"

    "github.com/google/uuid"

    "wallet-payment-gateway/models"
    "wallet-payment-gateway/services/payment"
    "wallet-payment-gateway/utils"
)

type PaymentHandler struct {
    paymentService *payment.Service
}

func NewPaymentHandler(ps *payment.Service) (*PaymentHandler, error) {
    if ps == nil {
        return nil, fmt.Errorf("payment service is required")
    }
    return &PaymentHandler{paymentService: ps}, nil
}

// ProcessPayment handles POST /api/process-payment. A declined charge
// is a 200 with approved=false; only input errors and remote-call
// failures produce the 400 failure body.
func (h *PaymentHandler) ProcessPayment(w http.ResponseWriter, r *http.Request) {
    requestID := uuid.New().String()
    log.Printf("[RequestID: %s] Starting wallet payment processing", requestID)

    var req models.WalletPaymentRequest
    if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
        log.Printf("[RequestID: %s] Invalid request body: %v", requestID, err)
        utils.SendPaymentError(w, http.StatusBadRequest, "Invalid request body", err.Error())
        return
    }

    result, err := h.paymentService.ProcessWalletPayment(&req)
    if err != nil {
        h.sendProcessingError(w, requestID, err)
        return
    }

    log.Printf("[RequestID: %s] Payment %s finished with status %s (approved=%t)",
        requestID, result.PaymentID, result.Status, result.Approved)
    utils.SendJSON(w, http.StatusOK, result)
}

func (h *PaymentHandler) sendProcessingError(w http.ResponseWriter, requestID string, err error) {
    var inputErr *payment.InputError
    var tokenErr *payment.TokenizationError
    var chargeErr *payment.ChargeError

    switch {
    case errors.As(err, &inputErr):
        log.Printf("[RequestID: %s] Invalid payment request: %v", requestID, inputErr)
        utils.SendPaymentError(w, http.StatusBadRequest, inputErr.Error(), "")
    case errors.As(err, &tokenErr):
        log.Printf("[RequestID: %s] Tokenization failed: %v", requestID, tokenErr)
        utils.SendPaymentError(w, http.StatusBadRequest, "Tokenization failed", tokenErr.Err.Error())
    case errors.As(err, &chargeErr):
        log.Printf("[RequestID: %s] Payment failed: %v", requestID, chargeErr)
        utils.SendPaymentError(w, http.StatusBadRequest, chargeErr.Err.Error(), "")
    default:
        log.Printf("[RequestID: %s] Unexpected payment error: %v", requestID, err)
        utils.SendPaymentError(w, http.StatusInternalServerError, "Internal server error", "")
    }
}
