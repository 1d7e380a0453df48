package utils

import (
    "encoding/json"
    "net/http"

    "wallet-payment-gateway/models"
)

func SendJSON(w http.ResponseWriter, status int, payload interface{}) {
    w.Header().Set("Content-Type", "application/json")
    w.WriteHeader(status)
    json.NewEncoder(w).Encode(payload)
}

// SendPaymentError writes the uniform payment failure body. Status in
// the body is always "Failed" regardless of the HTTP status.
func SendPaymentError(w http.ResponseWriter, status int, message, details string) {
    SendJSON(w, status, models.PaymentErrorResponse{
        Approved: false,
        Error:    message,
        Details:  details,
        Status:   "Failed",
    })
}

func SendValidationError(w http.ResponseWriter, status int, message, details string) {
    SendJSON(w, status, models.ValidationErrorResponse{
        Error:   message,
        Details: details,
    })
}

func SendErrorResponse(w http.ResponseWriter, status int, message string) {
    SendJSON(w, status, models.APIResponse{
        Status:  "error",
        Message: message,
    })
}
