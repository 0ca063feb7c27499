package config

import (
	"os"
	"strings"
)

const (
	sandboxKeyPrefix = "SB-"

	snapBaseProduction = "https://app.midtrans.com"
	snapBaseSandbox    = "https://app.sandbox.midtrans.com"
	apiBaseProduction  = "https://api.midtrans.com"
	apiBaseSandbox     = "https://api.sandbox.midtrans.com"
)

// MidtransConfig carries the gateway credential and the resolved base URLs.
// The server key doubles as the Basic-auth username and the signature input;
// a key with the sandbox prefix routes all calls to the sandbox environment.
type MidtransConfig struct {
	ServerKey   string
	SnapBaseURL string
	APIBaseURL  string
}

func LoadMidtransConfig() MidtransConfig {
	key := strings.TrimSpace(os.Getenv("MIDTRANS_SERVER_KEY"))
	cfg := MidtransConfig{ServerKey: key}

	if strings.HasPrefix(key, sandboxKeyPrefix) {
		cfg.SnapBaseURL = snapBaseSandbox
		cfg.APIBaseURL = apiBaseSandbox
	} else {
		cfg.SnapBaseURL = snapBaseProduction
		cfg.APIBaseURL = apiBaseProduction
	}

	// test/staging overrides
	if v := os.Getenv("MIDTRANS_SNAP_BASE_URL"); v != "" {
		cfg.SnapBaseURL = v
	}
	if v := os.Getenv("MIDTRANS_API_BASE_URL"); v != "" {
		cfg.APIBaseURL = v
	}

	return cfg
}

func (c MidtransConfig) IsSandbox() bool {
	return strings.HasPrefix(c.ServerKey, sandboxKeyPrefix)
}
