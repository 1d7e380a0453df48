package config

import (
    "testing"

    "github.com/stretchr/testify/require"
)

func TestSplitOrigins(t *testing.T) {
    require.Nil(t, splitOrigins(""))
    require.Equal(t, []string{"https://shop.example.com"}, splitOrigins("https://shop.example.com"))
    require.Equal(t,
        []string{"https://shop.example.com", "https://staging.example.com"},
        splitOrigins(" https://shop.example.com, https://staging.example.com ,"))
}

func TestLoadDefaults(t *testing.T) {
    t.Setenv("CHECKOUT_ENVIRONMENT", "")
    t.Setenv("SERVER_PORT", "")

    cfg := Load()
    require.Equal(t, "sandbox", cfg.Checkout.Environment)
    require.Equal(t, "8080", cfg.Server.Port)
    require.NotEmpty(t, cfg.Checkout.ProcessingChannelID)
    require.NotEmpty(t, cfg.ApplePay.CertFile)
}
