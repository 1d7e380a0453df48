package handlers

import (
    "net/http"
    "os"
    "path/filepath"

    "wallet-payment-gateway/utils"
)

const domainAssociationFile = "apple-developer-merchantid-domain-association.txt"

// StaticHandler serves the storefront build and the Apple Pay domain
// verification file. Everything here is peripheral to the payment flow;
// unknown paths fall back to the SPA entry document.
type StaticHandler struct {
    buildDir     string
    wellKnownDir string
}

func NewStaticHandler(buildDir, wellKnownDir string) *StaticHandler {
    return &StaticHandler{
        buildDir:     buildDir,
        wellKnownDir: wellKnownDir,
    }
}

// ServeIndex returns the SPA entry document for / and any unmatched
// client-side route.
func (h *StaticHandler) ServeIndex(w http.ResponseWriter, r *http.Request) {
    index := filepath.Join(h.buildDir, "index.html")
    if _, err := os.Stat(index); err != nil {
        utils.SendErrorResponse(w, http.StatusNotFound, "frontend build not found")
        return
    }
    http.ServeFile(w, r, index)
}

// ServeDomainAssociation serves the Apple Pay domain verification file
// as text/plain, 404 when it was never provisioned.
func (h *StaticHandler) ServeDomainAssociation(w http.ResponseWriter, r *http.Request) {
    path := filepath.Join(h.wellKnownDir, domainAssociationFile)
    if _, err := os.Stat(path); err != nil {
        http.NotFound(w, r)
        return
    }
    w.Header().Set("Content-Type", "text/plain")
    http.ServeFile(w, r, path)
}

// Assets serves the hashed build assets under /static/.
func (h *StaticHandler) Assets() http.Handler {
    return http.StripPrefix("/static/", http.FileServer(http.Dir(filepath.Join(h.buildDir, "static"))))
}
