package handlers_test

import (
    "net/http"
    "net/http/httptest"
    "os"
    "path/filepath"
    "testing"

    "github.com/stretchr/testify/require"

    "wallet-payment-gateway/handlers"
)

func TestServeDomainAssociation(t *testing.T) {
    wellKnown := t.TempDir()
    content := "7B227073704964223A22..."
    require.NoError(t, os.WriteFile(
        filepath.Join(wellKnown, "apple-developer-merchantid-domain-association.txt"),
        []byte(content), 0644))

    h := handlers.NewStaticHandler(t.TempDir(), wellKnown)

    req := httptest.NewRequest(http.MethodGet, "/.well-known/apple-developer-merchantid-domain-association.txt", nil)
    w := httptest.NewRecorder()
    h.ServeDomainAssociation(w, req)

    require.Equal(t, http.StatusOK, w.Code)
    require.Equal(t, "text/plain", w.Header().Get("Content-Type"))
    require.Equal(t, content, w.Body.String())
}

func TestServeDomainAssociation_NotProvisioned(t *testing.T) {
    h := handlers.NewStaticHandler(t.TempDir(), t.TempDir())

    req := httptest.NewRequest(http.MethodGet, "/.well-known/apple-developer-merchantid-domain-association.txt", nil)
    w := httptest.NewRecorder()
    h.ServeDomainAssociation(w, req)

    require.Equal(t, http.StatusNotFound, w.Code)
}

func TestServeIndex_SPAFallback(t *testing.T) {
    buildDir := t.TempDir()
    require.NoError(t, os.WriteFile(filepath.Join(buildDir, "index.html"),
        []byte("<!doctype html><title>store</title>"), 0644))

    h := handlers.NewStaticHandler(buildDir, t.TempDir())

    for _, path := range []string{"/", "/checkout", "/some/client/route"} {
        req := httptest.NewRequest(http.MethodGet, path, nil)
        w := httptest.NewRecorder()
        h.ServeIndex(w, req)

        require.Equal(t, http.StatusOK, w.Code, "path %s", path)
        require.Contains(t, w.Body.String(), "store")
    }
}
