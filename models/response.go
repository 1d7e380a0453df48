package models

type APIResponse struct {
    Status  string      `json:"status"`
    Message string      `json:"message"`
    Data    interface{} `json:"data,omitempty"`
}

// PaymentErrorResponse is the uniform failure body for the payment
// endpoint. Status is always "Failed"; Error carries the upstream detail.
type PaymentErrorResponse struct {
    Approved bool   `json:"approved"`
    Error    string `json:"error"`
    Details  string `json:"details,omitempty"`
    Status   string `json:"status"`
}

// ValidationErrorResponse is the failure body for the merchant
// validation endpoint. Details preserves the wallet provider's raw
// response body when one was received.
type ValidationErrorResponse struct {
    Error   string `json:"error"`
    Details string `json:"details,omitempty"`
}
