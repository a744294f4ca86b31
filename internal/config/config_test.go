package config

import (
	"testing"

	"github.com/shopspring/decimal"
)

func TestFromEnv_Defaults(t *testing.T) {
	cfg := FromEnv()
	if cfg.HTTPAddr != ":8080" {
		t.Fatalf("expected default addr, got %s", cfg.HTTPAddr)
	}
	if !cfg.TaxRate.Equal(decimal.RequireFromString("0.1")) {
		t.Fatalf("expected default tax rate 0.1, got %s", cfg.TaxRate)
	}
}

func TestFromEnv_TaxRateOverride(t *testing.T) {
	t.Setenv("TAX_RATE", "0.21")
	cfg := FromEnv()
	if !cfg.TaxRate.Equal(decimal.RequireFromString("0.21")) {
		t.Fatalf("expected tax rate 0.21, got %s", cfg.TaxRate)
	}
}

func TestFromEnv_InvalidTaxRateFallsBack(t *testing.T) {
	t.Setenv("TAX_RATE", "-1")
	cfg := FromEnv()
	if !cfg.TaxRate.Equal(decimal.RequireFromString("0.1")) {
		t.Fatalf("expected fallback tax rate, got %s", cfg.TaxRate)
	}
}
