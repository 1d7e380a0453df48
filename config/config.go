package config

import (
    "log"
    "os"
    "strings"

    "github.com/joho/godotenv"
)

type Config struct {
    Checkout CheckoutConfig
    ApplePay ApplePayConfig
    Server   ServerConfig
    Redis    RedisConfig
    CORS     CORSConfig
    Static   StaticConfig
}

type CheckoutConfig struct {
    SecretKey           string
    PublicKey           string
    Environment         string
    ProcessingChannelID string
}

// ApplePayConfig holds the merchant identity and the pinned client
// certificate the wallet provider issued for this merchant.
type ApplePayConfig struct {
    MerchantID  string
    DisplayName string
    Domain      string
    CertFile    string
    KeyFile     string
}

type ServerConfig struct {
    Port string
}

type RedisConfig struct {
    URL string
}

type CORSConfig struct {
    AllowedOrigins []string
}

type StaticConfig struct {
    BuildDir     string
    WellKnownDir string
}

func Load() *Config {
    if err := godotenv.Load(); err != nil {
        log.Printf("Warning: Error loading .env file: %v", err)
    }

    cfg := &Config{
        Checkout: CheckoutConfig{
            SecretKey:           os.Getenv("CHECKOUT_SECRET_KEY"),
            PublicKey:           os.Getenv("CHECKOUT_PUBLIC_KEY"),
            Environment:         os.Getenv("CHECKOUT_ENVIRONMENT"),
            ProcessingChannelID: os.Getenv("CHECKOUT_PROCESSING_CHANNEL_ID"),
        },
        ApplePay: ApplePayConfig{
            MerchantID:  os.Getenv("APPLE_PAY_MERCHANT_ID"),
            DisplayName: os.Getenv("APPLE_PAY_DISPLAY_NAME"),
            Domain:      os.Getenv("APPLE_PAY_DOMAIN"),
            CertFile:    os.Getenv("APPLE_PAY_CERT_FILE"),
            KeyFile:     os.Getenv("APPLE_PAY_KEY_FILE"),
        },
        Server: ServerConfig{
            Port: os.Getenv("SERVER_PORT"),
        },
        Redis: RedisConfig{
            URL: os.Getenv("REDIS_URL"),
        },
        CORS: CORSConfig{
            AllowedOrigins: splitOrigins(os.Getenv("CORS_ALLOWED_ORIGINS")),
        },
        Static: StaticConfig{
            BuildDir:     os.Getenv("STATIC_BUILD_DIR"),
            WellKnownDir: os.Getenv("WELL_KNOWN_DIR"),
        },
    }

    if cfg.Checkout.Environment == "" {
        cfg.Checkout.Environment = "sandbox"
    }
    if cfg.Checkout.ProcessingChannelID == "" {
        cfg.Checkout.ProcessingChannelID = "pc_ksz7aa7a7gdu7oxgdqrak5allq"
        log.Printf("Warning: CHECKOUT_PROCESSING_CHANNEL_ID not set, using sandbox default")
    }
    if cfg.ApplePay.CertFile == "" {
        cfg.ApplePay.CertFile = "./certificate_sandbox.pem"
    }
    if cfg.ApplePay.KeyFile == "" {
        cfg.ApplePay.KeyFile = "./certificate_sandbox.key"
    }
    if cfg.Server.Port == "" {
        cfg.Server.Port = "8080"
    }
    if cfg.Static.BuildDir == "" {
        cfg.Static.BuildDir = "./src/build"
    }
    if cfg.Static.WellKnownDir == "" {
        cfg.Static.WellKnownDir = "./.well-known"
    }

    return cfg
}

func splitOrigins(value string) []string {
    if value == "" {
        return nil
    }
    parts := strings.Split(value, ",")
    origins := make([]string, 0, len(parts))
    for _, p := range parts {
        if trimmed := strings.TrimSpace(p); trimmed != "" {
            origins = append(origins, trimmed)
        }
    }
    return origins
}
