package payment

import (
    "encoding/hex"
    "fmt"
    "log"

    "github.com/google/uuid"

    "wallet-payment-gateway/models"
    "wallet-payment-gateway/services/payment/checkout"
)

const (
    DefaultWalletType  = "applepay"
    DefaultCountryCode = "GB"
)

// approvedStatuses is the processor's status vocabulary that counts as
// an approval. Case-sensitive; every other status, known or not, is a
// non-approval.
var approvedStatuses = map[string]bool{
    "Authorized": true,
    "Captured":   true,
}

type Service struct {
    gateway   Gateway
    channelID string
}

func NewService(gateway Gateway, processingChannelID string) *Service {
    return &Service{
        gateway:   gateway,
        channelID: processingChannelID,
    }
}

// ProcessWalletPayment runs the two-phase flow: tokenize the wallet
// payload, then submit the charge and map its status to an approval
// decision. Each call makes exactly one tokenize call and, only if that
// succeeded, exactly one charge call; there are no retries and every
// attempt gets a fresh reference.
func (s *Service) ProcessWalletPayment(req *models.WalletPaymentRequest) (*models.PaymentResult, error) {
    if len(req.TokenData) == 0 {
        return nil, &InputError{Field: "tokenData"}
    }
    if req.Amount <= 0 {
        return nil, &InputError{Field: "amount"}
    }
    if req.CurrencyCode == "" {
        return nil, &InputError{Field: "currencyCode"}
    }

    walletType := req.WalletType
    if walletType == "" {
        walletType = DefaultWalletType
    }
    countryCode := req.CountryCode
    if countryCode == "" {
        countryCode = DefaultCountryCode
    }

    log.Printf("Processing %s tokenization", walletType)

    token, err := s.gateway.RequestWalletToken(walletType, req.TokenData)
    if err != nil {
        log.Printf("Tokenization failed: %v", err)
        return nil, &TokenizationError{Err: err}
    }

    chargeReq := &checkout.PaymentRequest{
        Source: checkout.Source{
            Type:  "token",
            Token: token,
            BillingAddress: &checkout.BillingAddress{
                Country: countryCode,
            },
        },
        Amount:              req.Amount,
        Currency:            req.CurrencyCode,
        Reference:           newReference(walletType),
        ProcessingChannelID: s.channelID,
    }
    if req.DeviceSessionID != "" {
        chargeReq.Risk = &checkout.Risk{
            Enabled:         true,
            DeviceSessionID: req.DeviceSessionID,
        }
    }

    result, err := s.gateway.RequestPayment(chargeReq)
    if err != nil {
        log.Printf("Payment failed: %v", err)
        return nil, &ChargeError{Err: err}
    }

    return &models.PaymentResult{
        Approved:  approvedStatuses[result.Status],
        Status:    result.Status,
        PaymentID: result.ID,
    }, nil
}

// newReference builds a per-attempt charge reference like
// "applepay-demo-1a2b3c". The 24-bit random suffix is not globally
// unique; collisions are acceptable for demo references.
func newReference(walletType string) string {
    id := uuid.New()
    return fmt.Sprintf("%s-demo-%s", walletType, hex.EncodeToString(id[:3]))
}
