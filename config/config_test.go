package config

import (
	"path/filepath"
	"testing"
)

func Test_Load_WritesDefaultWhenMissing(t *testing.T) {
	path := filepath.Join(t.TempDir(), "apistaked.toml")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Era.BlocksPerEra != 3 {
		t.Fatalf("expected default BlocksPerEra 3, got %d", cfg.Era.BlocksPerEra)
	}

	reloaded, err := Load(path)
	if err != nil {
		t.Fatalf("reload: %v", err)
	}
	if reloaded.Registry.QuotaScale != cfg.Registry.QuotaScale {
		t.Fatalf("expected persisted config to round-trip, got %d want %d", reloaded.Registry.QuotaScale, cfg.Registry.QuotaScale)
	}
}

func Test_ToRuntime_DerivesPoolAccountWhenBlank(t *testing.T) {
	cfg := Default()
	rt := cfg.ToRuntime()
	if rt.PoolAccount == "" {
		t.Fatalf("expected a derived pool account, got empty string")
	}
	if rt.Era.BlocksPerEra != cfg.Era.BlocksPerEra {
		t.Fatalf("expected era config to carry over, got %d want %d", rt.Era.BlocksPerEra, cfg.Era.BlocksPerEra)
	}
}

func Test_ToRuntime_HonorsExplicitPoolAccount(t *testing.T) {
	cfg := Default()
	cfg.PoolAccount = "custom-pool"
	rt := cfg.ToRuntime()
	if rt.PoolAccount != "custom-pool" {
		t.Fatalf("expected explicit pool account to be preserved, got %q", rt.PoolAccount)
	}
}
