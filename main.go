package main

import (
    "context"
    "encoding/json"
    "fmt"
    "log"
    "net/http"
    "os"
    "os/signal"
    "runtime"
    "syscall"
    "time"

    "github.com/gorilla/mux"

    "wallet-payment-gateway/config"
    "wallet-payment-gateway/handlers"
    "wallet-payment-gateway/middleware"
    "wallet-payment-gateway/services/applepay"
    "wallet-payment-gateway/services/payment"
    "wallet-payment-gateway/services/payment/checkout"
)

func corsMiddleware(allowedOrigins []string) func(http.Handler) http.Handler {
    allowed := make(map[string]bool, len(allowedOrigins))
    for _, origin := range allowedOrigins {
        allowed[origin] = true
    }

    return func(next http.Handler) http.Handler {
        return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
            origin := r.Header.Get("Origin")
            if origin != "" && allowed[origin] {
                w.Header().Set("Access-Control-Allow-Origin", origin)
                w.Header().Set("Vary", "Origin")
                w.Header().Set("Access-Control-Allow-Methods", "POST, GET, OPTIONS")
                w.Header().Set("Access-Control-Allow-Headers", "Accept, Content-Type, Content-Length, Accept-Encoding")
            }

            if r.Method == "OPTIONS" {
                w.WriteHeader(http.StatusOK)
                return
            }
            next.ServeHTTP(w, r)
        })
    }
}

type responseWriter struct {
    http.ResponseWriter
    status int
}

func (rw *responseWriter) WriteHeader(code int) {
    rw.status = code
    rw.ResponseWriter.WriteHeader(code)
}

func loggingMiddleware(next http.Handler) http.Handler {
    return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
        start := time.Now()

        wrapper := &responseWriter{ResponseWriter: w, status: http.StatusOK}
        next.ServeHTTP(wrapper, r)

        // Log only slow requests and errors
        elapsed := time.Since(start)
        if elapsed > 500*time.Millisecond || wrapper.status >= 400 {
            log.Printf(
                "%s %s %s %d %v",
                r.Method,
                r.RequestURI,
                r.RemoteAddr,
                wrapper.status,
                elapsed,
            )
        }
    })
}

func main() {
    log.SetFlags(log.LstdFlags | log.Lshortfile | log.Lmicroseconds | log.LUTC)

    numCPU := runtime.NumCPU()
    runtime.GOMAXPROCS(numCPU)
    log.Printf("Server starting with %d CPUs available", numCPU)

    cfg := config.Load()
    log.Printf("Configuration loaded successfully")

    if cfg.Checkout.SecretKey == "" || cfg.Checkout.PublicKey == "" {
        log.Fatalf("CHECKOUT_SECRET_KEY and CHECKOUT_PUBLIC_KEY must be set")
    }

    // Remote clients share process-lifetime credentials; nothing here is
    // mutated after startup.
    checkoutClient := checkout.NewClient(
        cfg.Checkout.SecretKey,
        cfg.Checkout.PublicKey,
        cfg.Checkout.Environment,
    )
    paymentService := payment.NewService(checkoutClient, cfg.Checkout.ProcessingChannelID)

    applePayClient, err := applepay.NewClient(applepay.Config{
        MerchantID:  cfg.ApplePay.MerchantID,
        DisplayName: cfg.ApplePay.DisplayName,
        Domain:      cfg.ApplePay.Domain,
        CertFile:    cfg.ApplePay.CertFile,
        KeyFile:     cfg.ApplePay.KeyFile,
    })
    if err != nil {
        log.Fatalf("Failed to load Apple Pay merchant certificate: %v", err)
    }

    paymentHandler, err := handlers.NewPaymentHandler(paymentService)
    if err != nil {
        log.Fatalf("Failed to initialize payment handler: %v", err)
    }
    applePayHandler, err := handlers.NewApplePayHandler(applePayClient)
    if err != nil {
        log.Fatalf("Failed to initialize Apple Pay handler: %v", err)
    }
    staticHandler := handlers.NewStaticHandler(cfg.Static.BuildDir, cfg.Static.WellKnownDir)

    router := mux.NewRouter()
    router.Use(corsMiddleware(cfg.CORS.AllowedOrigins))
    router.Use(loggingMiddleware)

    // Rate limiting is optional; the gateway itself is stateless and
    // runs fine without Redis.
    var rateLimiter *middleware.RateLimiter
    if cfg.Redis.URL != "" {
        rateLimiter, err = middleware.NewRateLimiter(cfg.Redis.URL)
        if err != nil {
            log.Fatalf("Failed to initialize rate limiter: %v", err)
        }
        defer rateLimiter.Close()
        router.Use(rateLimiter.RateLimitMiddleware())
        log.Println("Rate limiting enabled")
    } else {
        log.Println("REDIS_URL not set, rate limiting disabled")
    }

    api := router.PathPrefix("/api").Subrouter()
    api.HandleFunc("/process-payment", paymentHandler.ProcessPayment).Methods("POST", "OPTIONS")
    api.HandleFunc("/apple-pay/validate-merchant", applePayHandler.ValidateMerchant).Methods("POST", "OPTIONS")

    startTime := time.Now()

    api.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
        health := struct {
            Status    string `json:"status"`
            Time      string `json:"time"`
            Redis     string `json:"redis"`
            Uptime    string `json:"uptime"`
            GoVersion string `json:"go_version"`
        }{
            Status:    "ok",
            Time:      time.Now().Format(time.RFC3339),
            Redis:     "disabled",
            Uptime:    fmt.Sprintf("%v", time.Since(startTime)),
            GoVersion: runtime.Version(),
        }

        if rateLimiter != nil {
            health.Redis = "connected"
            ctx, cancel := context.WithTimeout(r.Context(), 500*time.Millisecond)
            defer cancel()
            if err := rateLimiter.Client().Ping(ctx).Err(); err != nil {
                health.Status = "degraded"
                health.Redis = "error"
            }
        }

        w.Header().Set("Content-Type", "application/json")
        json.NewEncoder(w).Encode(health)
    }).Methods("GET")

    // Apple Pay domain verification, then the SPA
    router.HandleFunc("/.well-known/apple-developer-merchantid-domain-association.txt",
        staticHandler.ServeDomainAssociation).Methods("GET")
    router.PathPrefix("/static/").Handler(staticHandler.Assets()).Methods("GET")
    router.HandleFunc("/", staticHandler.ServeIndex).Methods("GET")
    router.PathPrefix("/").HandlerFunc(staticHandler.ServeIndex).Methods("GET")

    srv := &http.Server{
        Addr:           fmt.Sprintf(":%s", cfg.Server.Port),
        Handler:        router,
        ReadTimeout:    15 * time.Second,
        WriteTimeout:   45 * time.Second, // remote calls can take up to 30s each
        IdleTimeout:    120 * time.Second,
        MaxHeaderBytes: 1 << 20,
    }

    go func() {
        log.Printf("Server starting on port %s", cfg.Server.Port)
        if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
            log.Fatalf("Server error: %v", err)
        }
    }()

    stop := make(chan os.Signal, 1)
    signal.Notify(stop, os.Interrupt, syscall.SIGTERM, syscall.SIGINT)

    <-stop
    log.Println("Shutdown signal received, gracefully shutting down...")

    shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 15*time.Second)
    defer shutdownCancel()

    if err := srv.Shutdown(shutdownCtx); err != nil {
        log.Printf("Server forced to shutdown: %v", err)
    }

    log.Println("Server exited properly")
}
