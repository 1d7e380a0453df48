package payment

import (
    "encoding/json"

    "wallet-payment-gateway/services/payment/checkout"
)

// Gateway is the processor surface the service depends on, satisfied by
// checkout.Client in production and by fakes in tests.
type Gateway interface {
    RequestWalletToken(walletType string, tokenData json.RawMessage) (string, error)
    RequestPayment(req *checkout.PaymentRequest) (*checkout.PaymentResult, error)
}
