package applepay

import (
    "bytes"
    "context"
    "crypto/tls"
    "encoding/json"
    "fmt"
    "io"
    "log"
    "net/http"
    "time"
)

const RequestTimeout = 30 * time.Second

// Config is the process-lifetime merchant identity. The certificate and
// key are the merchant-identity pair issued by the wallet provider;
// they are loaded once and never reloaded per request.
type Config struct {
    MerchantID  string
    DisplayName string
    Domain      string
    CertFile    string
    KeyFile     string
}

type merchantValidationPayload struct {
    MerchantIdentifier string `json:"merchantIdentifier"`
    DisplayName        string `json:"displayName"`
    Initiative         string `json:"initiative"`
    InitiativeContext  string `json:"initiativeContext"`
}

// Client performs the merchant-validation POST against the validation
// URL the browser's wallet API hands us, authenticating with the pinned
// client certificate. The provider's session object is passed through
// untouched; nothing in it is inspected.
type Client struct {
    merchantID  string
    displayName string
    domain      string
    client      *http.Client
}

func NewClient(cfg Config) (*Client, error) {
    cert, err := tls.LoadX509KeyPair(cfg.CertFile, cfg.KeyFile)
    if err != nil {
        return nil, fmt.Errorf("error loading merchant certificate: %v", err)
    }

    transport := &http.Transport{
        TLSClientConfig: &tls.Config{
            Certificates: []tls.Certificate{cert},
        },
        MaxIdleConns:        10,
        IdleConnTimeout:     90 * time.Second,
        TLSHandshakeTimeout: 10 * time.Second,
    }

    return &Client{
        merchantID:  cfg.MerchantID,
        displayName: cfg.DisplayName,
        domain:      cfg.Domain,
        client: &http.Client{
            Timeout:   RequestTimeout,
            Transport: transport,
            // The validation URL must be hit as given; never follow a
            // redirect away from it.
            CheckRedirect: func(req *http.Request, via []*http.Request) error {
                return http.ErrUseLastResponse
            },
        },
    }, nil
}

// ValidateMerchant POSTs the fixed merchant payload to validationURL
// and returns the provider's opaque session object verbatim.
func (c *Client) ValidateMerchant(validationURL string) (json.RawMessage, error) {
    startTime := time.Now()

    payload := merchantValidationPayload{
        MerchantIdentifier: c.merchantID,
        DisplayName:        c.displayName,
        Initiative:         "web",
        InitiativeContext:  c.domain,
    }

    jsonPayload, err := json.Marshal(payload)
    if err != nil {
        return nil, &TransportError{Err: fmt.Errorf("error marshaling validation payload: %v", err)}
    }

    ctx, cancel := context.WithTimeout(context.Background(), RequestTimeout)
    defer cancel()

    httpReq, err := http.NewRequestWithContext(ctx, "POST", validationURL, bytes.NewBuffer(jsonPayload))
    if err != nil {
        return nil, &TransportError{Err: fmt.Errorf("error creating validation request: %v", err)}
    }
    httpReq.Header.Set("Content-Type", "application/json")

    resp, err := c.client.Do(httpReq)
    if err != nil {
        return nil, &TransportError{Err: err}
    }
    defer resp.Body.Close()

    respBody, err := io.ReadAll(resp.Body)
    if err != nil {
        return nil, &TransportError{Err: fmt.Errorf("error reading validation response: %v", err)}
    }

    log.Printf("Merchant validation response received in %v with status %d",
        time.Since(startTime), resp.StatusCode)

    if resp.StatusCode != http.StatusOK {
        return nil, &UpstreamError{
            StatusCode: resp.StatusCode,
            Body:       string(respBody),
        }
    }

    return json.RawMessage(respBody), nil
}
