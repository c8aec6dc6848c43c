package config

import (
	"os"
	"path/filepath"
	"testing"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yml")
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}
	return path
}

const validConfig = `
servers:
  - name: upstream
    url: https://review.example.com/r/
  - url: https://gerrit.other.org/
user: alice
abandon_age: 120
`

func TestLoad(t *testing.T) {
	path := writeConfig(t, validConfig)

	cfg, err := Load(path, nil)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(cfg.Servers) != 2 {
		t.Fatalf("servers = %v", cfg.Servers)
	}
	if cfg.User != "alice" || cfg.AbandonAge != 120 {
		t.Errorf("user = %q, abandon_age = %d", cfg.User, cfg.AbandonAge)
	}
	// Unset fields keep their defaults.
	if cfg.Format != "table" || cfg.Log.Level != "info" {
		t.Errorf("format = %q, log level = %q", cfg.Format, cfg.Log.Level)
	}
}

func TestLoad_Defaults(t *testing.T) {
	path := writeConfig(t, "servers:\n  - url: https://r.example.com/\n")

	cfg, err := Load(path, nil)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.User != "self" || cfg.AbandonAge != 90 {
		t.Errorf("defaults not applied: %+v", cfg)
	}
}

func TestLoad_MissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.yml"), nil); err == nil {
		t.Fatal("expected error for missing file")
	}
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"no servers", "user: alice\n"},
		{"empty server list", "servers: []\n"},
		{"server without url", "servers:\n  - name: x\n"},
		{"bad url", "servers:\n  - url: not a url\n"},
		{"bad format", "servers:\n  - url: https://r.example.com/\nformat: csv\n"},
		{"bad log level", "servers:\n  - url: https://r.example.com/\nlog:\n  level: chatty\n"},
		{"duplicate names", `
servers:
  - name: same
    url: https://a.example.com/
  - name: same
    url: https://b.example.com/
`},
		{"not yaml", "servers: [\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeConfig(t, tt.content)
			if _, err := Load(path, nil); err == nil {
				t.Error("expected validation error")
			}
		})
	}
}

func TestLoad_EnvAndOverrides(t *testing.T) {
	path := writeConfig(t, validConfig)

	t.Setenv("REVQ_USER", "bob")
	cfg, err := Load(path, nil)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.User != "bob" {
		t.Errorf("env override lost: user = %q", cfg.User)
	}

	// Flag overrides beat the environment.
	cfg, err = Load(path, map[string]string{"user": "carol", "abandonAge": "30"})
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.User != "carol" || cfg.AbandonAge != 30 {
		t.Errorf("flag overrides lost: %+v", cfg)
	}
}

func TestSelectServer(t *testing.T) {
	path := writeConfig(t, validConfig)
	cfg, err := Load(path, nil)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if err := cfg.SelectServer(1); err != nil {
		t.Fatalf("SelectServer: %v", err)
	}
	if len(cfg.Servers) != 1 || cfg.Servers[0].URL != "https://gerrit.other.org/" {
		t.Errorf("servers = %v", cfg.Servers)
	}

	if err := cfg.SelectServer(5); err == nil {
		t.Error("expected out-of-range error")
	}
}

func TestSaveRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sub", "config.yml")
	want := Default()
	want.Servers = []ServerConfig{{Name: "x", URL: "https://x.example.com/"}}

	if err := Save(want, path); err != nil {
		t.Fatalf("Save: %v", err)
	}
	got, err := Load(path, nil)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if got.Servers[0] != want.Servers[0] || got.User != want.User {
		t.Errorf("round trip mismatch: %+v", got)
	}
}
