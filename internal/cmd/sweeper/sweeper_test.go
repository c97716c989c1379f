package sweeper

import (
	"flag"
	"testing"
	"time"
)

func TestParseConfig_ParsesDefaultsAndFlags(t *testing.T) {
	fs := flag.NewFlagSet("sweeper", flag.ContinueOnError)
	t.Setenv("DISCIPLR_VAULT_SWEEPER_DB_PATH", "env/vault.db")
	t.Setenv("DISCIPLR_VAULT_SWEEPER_INTERVAL", "30s")

	cfg, err := ParseConfig(fs, []string{"-batch-size", "25"})
	if err != nil {
		t.Fatalf("parse config: %v", err)
	}
	if cfg.DBPath != "env/vault.db" {
		t.Fatalf("db path = %q, want %q", cfg.DBPath, "env/vault.db")
	}
	if cfg.SweepInterval != 30*time.Second {
		t.Fatalf("sweep interval = %s, want 30s", cfg.SweepInterval)
	}
	if cfg.BatchSize != 25 {
		t.Fatalf("batch size = %d, want 25", cfg.BatchSize)
	}
	if cfg.CustodyAccount != "vault-custody" {
		t.Fatalf("custody account = %q, want %q", cfg.CustodyAccount, "vault-custody")
	}
}

func TestParseConfig_FlagOverridesEnv(t *testing.T) {
	fs := flag.NewFlagSet("sweeper", flag.ContinueOnError)
	t.Setenv("DISCIPLR_VAULT_SWEEPER_DB_PATH", "env/vault.db")

	cfg, err := ParseConfig(fs, []string{"-db-path", "flag/vault.db"})
	if err != nil {
		t.Fatalf("parse config: %v", err)
	}
	if cfg.DBPath != "flag/vault.db" {
		t.Fatalf("db path = %q, want %q", cfg.DBPath, "flag/vault.db")
	}
}
