package checkout

import (
    "encoding/json"
    "io"
    "net/http"
    "net/http/httptest"
    "testing"
    "time"

    "github.com/stretchr/testify/require"
)

func newTestClient(baseURL string) *Client {
    return &Client{
        secretKey:   "sk_test_secret",
        publicKey:   "pk_test_public",
        environment: "sandbox",
        baseURL:     baseURL,
        client:      &http.Client{Timeout: 5 * time.Second},
    }
}

func TestRequestWalletToken(t *testing.T) {
    srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
        require.Equal(t, "POST", r.Method)
        require.Equal(t, "/tokens", r.URL.Path)
        require.Equal(t, "pk_test_public", r.Header.Get("Authorization"))
        require.Equal(t, "application/json", r.Header.Get("Content-Type"))

        body, _ := io.ReadAll(r.Body)
        var req map[string]json.RawMessage
        require.NoError(t, json.Unmarshal(body, &req))
        require.JSONEq(t, `"applepay"`, string(req["type"]))
        require.JSONEq(t, `{"paymentData":"opaque"}`, string(req["token_data"]))

        w.Header().Set("Content-Type", "application/json")
        w.Write([]byte(`{"type":"applepay","token":"tok_abc123","expires_on":"2026-08-28T00:00:00Z"}`))
    }))
    defer srv.Close()

    c := newTestClient(srv.URL)
    token, err := c.RequestWalletToken("applepay", json.RawMessage(`{"paymentData":"opaque"}`))
    require.NoError(t, err)
    require.Equal(t, "tok_abc123", token)
}

func TestRequestWalletToken_RejectedByProcessor(t *testing.T) {
    srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
        w.Header().Set("Content-Type", "application/json")
        w.WriteHeader(http.StatusUnprocessableEntity)
        w.Write([]byte(`{"request_id":"req_1","error_type":"request_invalid","error_codes":["token_data_invalid"]}`))
    }))
    defer srv.Close()

    c := newTestClient(srv.URL)
    _, err := c.RequestWalletToken("applepay", json.RawMessage(`{}`))

    var remoteErr *RemoteError
    require.ErrorAs(t, err, &remoteErr)
    require.Equal(t, http.StatusUnprocessableEntity, remoteErr.StatusCode)
    require.Equal(t, "tokenization", remoteErr.Operation)
    require.Contains(t, remoteErr.Detail, "request_invalid")
    require.Contains(t, remoteErr.Detail, "token_data_invalid")
}

func TestRequestWalletToken_EmptyToken(t *testing.T) {
    srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
        w.Write([]byte(`{"type":"applepay"}`))
    }))
    defer srv.Close()

    c := newTestClient(srv.URL)
    _, err := c.RequestWalletToken("applepay", json.RawMessage(`{}`))

    var remoteErr *RemoteError
    require.ErrorAs(t, err, &remoteErr)
    require.Contains(t, remoteErr.Detail, "no token")
}

func TestRequestPayment(t *testing.T) {
    srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
        require.Equal(t, "/payments", r.URL.Path)
        require.Equal(t, "sk_test_secret", r.Header.Get("Authorization"))

        body, _ := io.ReadAll(r.Body)
        var req PaymentRequest
        require.NoError(t, json.Unmarshal(body, &req))
        require.Equal(t, "token", req.Source.Type)
        require.Equal(t, "tok_abc123", req.Source.Token)
        require.Equal(t, "GB", req.Source.BillingAddress.Country)
        require.Equal(t, int64(1000), req.Amount)
        require.Equal(t, "GBP", req.Currency)

        w.Header().Set("Content-Type", "application/json")
        w.WriteHeader(http.StatusCreated)
        w.Write([]byte(`{"id":"pay_xyz","status":"Authorized","reference":"` + req.Reference + `"}`))
    }))
    defer srv.Close()

    c := newTestClient(srv.URL)
    result, err := c.RequestPayment(&PaymentRequest{
        Source: Source{
            Type:           "token",
            Token:          "tok_abc123",
            BillingAddress: &BillingAddress{Country: "GB"},
        },
        Amount:              1000,
        Currency:            "GBP",
        Reference:           "applepay-demo-1a2b3c",
        ProcessingChannelID: "pc_test",
    })
    require.NoError(t, err)
    require.Equal(t, "pay_xyz", result.ID)
    require.Equal(t, "Authorized", result.Status)
}

func TestRequestPayment_DeclinedIsNotAnError(t *testing.T) {
    srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
        w.WriteHeader(http.StatusCreated)
        w.Write([]byte(`{"id":"pay_declined","status":"Declined"}`))
    }))
    defer srv.Close()

    c := newTestClient(srv.URL)
    result, err := c.RequestPayment(&PaymentRequest{Source: Source{Type: "token", Token: "tok_1"}})
    require.NoError(t, err)
    require.Equal(t, "Declined", result.Status)
}

func TestRequestPayment_TransportFailure(t *testing.T) {
    srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
    srv.Close() // unreachable endpoint

    c := newTestClient(srv.URL)
    _, err := c.RequestPayment(&PaymentRequest{Source: Source{Type: "token", Token: "tok_1"}})

    var remoteErr *RemoteError
    require.ErrorAs(t, err, &remoteErr)
    require.Zero(t, remoteErr.StatusCode)
}

func TestRequestPayment_StripsBOM(t *testing.T) {
    srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
        w.Write([]byte("\ufeff" + `{"id":"pay_bom","status":"Captured"}`))
    }))
    defer srv.Close()

    c := newTestClient(srv.URL)
    result, err := c.RequestPayment(&PaymentRequest{Source: Source{Type: "token", Token: "tok_1"}})
    require.NoError(t, err)
    require.Equal(t, "pay_bom", result.ID)
    require.Equal(t, "Captured", result.Status)
}
