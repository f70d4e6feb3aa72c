package config

import (
	"errors"
	"os"
	"strings"

	"github.com/joho/godotenv"
)

// OdooConfig holds the ERP endpoint and credentials. It is loaded exactly once
// from the environment and passed into the gateway client as a value; request
// paths never read these env vars ad hoc.
type OdooConfig struct {
	Url    string
	Db     string
	User   string
	ApiKey string
}

var odooCfg *OdooConfig

func GetOdooConfig() *OdooConfig {
	return odooCfg
}

func init() {
	// Load env from .env
	godotenv.Load()
}

// LoadOdooConfig reads ODOO_* env vars and stores the immutable config.
// Call this from main() AFTER the HTTP server is listening; until it succeeds
// the readiness gate keeps returning 503.
func LoadOdooConfig() (*OdooConfig, error) {
	cfg := &OdooConfig{
		Url:    strings.TrimRight(strings.TrimSpace(os.Getenv("ODOO_URL")), "/"),
		Db:     strings.TrimSpace(os.Getenv("ODOO_DB")),
		User:   strings.TrimSpace(os.Getenv("ODOO_USER")),
		ApiKey: strings.TrimSpace(os.Getenv("ODOO_API")),
	}
	if cfg.Url == "" || cfg.Db == "" || cfg.User == "" || cfg.ApiKey == "" {
		return nil, errors.New("missing odoo env vars (ODOO_URL/ODOO_DB/ODOO_USER/ODOO_API)")
	}
	odooCfg = cfg
	return cfg, nil
}
