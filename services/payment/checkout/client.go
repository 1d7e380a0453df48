package checkout

import (
    "bytes"
    "context"
    "encoding/json"
    "fmt"
    "io"
    "log"
    "net/http"
    "strings"
    "time"
)

const (
    SandboxEndpoint    = "https://api.sandbox.checkout.com"
    ProductionEndpoint = "https://api.checkout.com"
    RequestTimeout     = 30 * time.Second
)

// RemoteError is returned when the processor rejects a call or the call
// cannot be completed at all. Detail carries the provider's own error
// text so handlers can relay it to the browser.
type RemoteError struct {
    Operation  string
    StatusCode int
    Detail     string
}

func (e *RemoteError) Error() string {
    if e.StatusCode != 0 {
        return fmt.Sprintf("%s failed with status %d: %s", e.Operation, e.StatusCode, e.Detail)
    }
    return fmt.Sprintf("%s failed: %s", e.Operation, e.Detail)
}

// Client talks to the payment processor's REST API. Tokenization is
// authenticated with the public key, charges with the secret key; both
// keys are bound once at startup and never change.
type Client struct {
    secretKey   string
    publicKey   string
    environment string
    baseURL     string // overrides the environment endpoint when set
    client      *http.Client
    transport   *http.Transport
}

func NewClient(secretKey, publicKey, environment string) *Client {
    transport := &http.Transport{
        MaxIdleConns:        100,
        MaxIdleConnsPerHost: 20,
        MaxConnsPerHost:     100,
        IdleConnTimeout:     90 * time.Second,
        DisableKeepAlives:   false,
        TLSHandshakeTimeout: 10 * time.Second,
    }

    return &Client{
        secretKey:   secretKey,
        publicKey:   publicKey,
        environment: environment,
        transport:   transport,
        client: &http.Client{
            Timeout:   RequestTimeout,
            Transport: transport,
        },
    }
}

func (c *Client) getEndpoint() string {
    if c.baseURL != "" {
        return c.baseURL
    }
    if c.environment == "production" {
        return ProductionEndpoint
    }
    return SandboxEndpoint
}

func (c *Client) createRequestContext() (context.Context, context.CancelFunc) {
    return context.WithTimeout(context.Background(), RequestTimeout)
}

// RequestWalletToken exchanges an opaque wallet token payload for a
// processor token usable in a charge request.
func (c *Client) RequestWalletToken(walletType string, tokenData json.RawMessage) (string, error) {
    startTime := time.Now()

    body, err := c.post("/tokens", c.publicKey, walletTokenRequest{
        Type:      walletType,
        TokenData: tokenData,
    }, "tokenization")
    if err != nil {
        return "", err
    }

    var response walletTokenResponse
    if err := json.Unmarshal(body, &response); err != nil {
        return "", &RemoteError{Operation: "tokenization", Detail: fmt.Sprintf("error decoding response: %v", err)}
    }

    if response.Token == "" {
        return "", &RemoteError{Operation: "tokenization", Detail: "no token in response"}
    }

    log.Printf("Wallet token obtained in %v for wallet type %s", time.Since(startTime), walletType)
    return response.Token, nil
}

// RequestPayment submits a charge. A declined charge is NOT an error
// here: the processor answers 2xx with a non-approved status and that
// status is passed through in the result.
func (c *Client) RequestPayment(req *PaymentRequest) (*PaymentResult, error) {
    startTime := time.Now()

    body, err := c.post("/payments", c.secretKey, req, "payment")
    if err != nil {
        return nil, err
    }

    var response paymentResponse
    if err := json.Unmarshal(body, &response); err != nil {
        return nil, &RemoteError{Operation: "payment", Detail: fmt.Sprintf("error decoding response: %v", err)}
    }

    log.Printf("Payment response received in %v with status %s for reference %s",
        time.Since(startTime), response.Status, req.Reference)

    return &PaymentResult{
        ID:     response.ID,
        Status: response.Status,
    }, nil
}

func (c *Client) post(path, authKey string, payload interface{}, operation string) ([]byte, error) {
    jsonPayload, err := json.Marshal(payload)
    if err != nil {
        return nil, &RemoteError{Operation: operation, Detail: fmt.Sprintf("error marshaling request: %v", err)}
    }

    ctx, cancel := c.createRequestContext()
    defer cancel()

    httpReq, err := http.NewRequestWithContext(ctx, "POST", c.getEndpoint()+path, bytes.NewBuffer(jsonPayload))
    if err != nil {
        return nil, &RemoteError{Operation: operation, Detail: fmt.Sprintf("error creating request: %v", err)}
    }

    httpReq.Header.Set("Content-Type", "application/json")
    httpReq.Header.Set("Cache-Control", "no-cache")
    httpReq.Header.Set("Authorization", authKey)

    resp, err := c.client.Do(httpReq)
    if err != nil {
        return nil, &RemoteError{Operation: operation, Detail: fmt.Sprintf("error making request: %v", err)}
    }
    defer resp.Body.Close()

    respBody, err := io.ReadAll(resp.Body)
    if err != nil {
        return nil, &RemoteError{Operation: operation, StatusCode: resp.StatusCode, Detail: fmt.Sprintf("error reading response body: %v", err)}
    }

    cleanBody := strings.TrimPrefix(string(respBody), "\ufeff")

    if resp.StatusCode < 200 || resp.StatusCode > 299 {
        return nil, &RemoteError{
            Operation:  operation,
            StatusCode: resp.StatusCode,
            Detail:     extractErrorDetail(cleanBody),
        }
    }

    return []byte(cleanBody), nil
}

// extractErrorDetail pulls the provider's error_type/error_codes out of
// a failure body; the raw body is the fallback when it does not parse.
func extractErrorDetail(body string) string {
    var apiErr apiErrorResponse
    if err := json.Unmarshal([]byte(body), &apiErr); err == nil && apiErr.ErrorType != "" {
        if len(apiErr.ErrorCodes) > 0 {
            return fmt.Sprintf("%s: %s", apiErr.ErrorType, strings.Join(apiErr.ErrorCodes, ", "))
        }
        return apiErr.ErrorType
    }
    if body == "" {
        return "empty error response"
    }
    return body
}
