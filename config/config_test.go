package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	homedir "github.com/mitchellh/go-homedir"

	"github.com/mtraver/inflammation/inflammation"
)

func TestParse_Valid(t *testing.T) {
	yaml := `
data_dir: /srv/inflammation
cache_ttl: 30s
normalise:
  zero_max: error
server:
  addr: "127.0.0.1:9000"
influxdb:
  url: http://localhost:8086
  org: clinic
  bucket: inflammation
  token_env: MY_TOKEN
  start_date: "2024-01-15"
publish:
  cronspec: "@daily"
`
	cfg, err := Parse([]byte(yaml))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}

	if cfg.DataDir != "/srv/inflammation" {
		t.Errorf("data_dir: got %q", cfg.DataDir)
	}
	if cfg.CacheTTL != 30*time.Second {
		t.Errorf("cache_ttl: got %v", cfg.CacheTTL)
	}
	if cfg.Normalise.Policy() != inflammation.ZeroMaxError {
		t.Errorf("zero_max: got %v", cfg.Normalise.Policy())
	}
	if cfg.Server.Addr != "127.0.0.1:9000" {
		t.Errorf("server.addr: got %q", cfg.Server.Addr)
	}
	if cfg.InfluxDB.Bucket != "inflammation" || cfg.InfluxDB.Org != "clinic" {
		t.Errorf("influxdb: got %+v", cfg.InfluxDB)
	}
	if want := time.Date(2024, time.January, 15, 0, 0, 0, 0, time.UTC); !cfg.InfluxDB.Start().Equal(want) {
		t.Errorf("influxdb.start_date: got %v, want %v", cfg.InfluxDB.Start(), want)
	}
	if cfg.Publish.CronSpec != "@daily" {
		t.Errorf("publish.cronspec: got %q", cfg.Publish.CronSpec)
	}
	if err := cfg.RequireInfluxDB(); err != nil {
		t.Errorf("RequireInfluxDB: %v", err)
	}
}

func TestParse_Defaults(t *testing.T) {
	cfg, err := Parse([]byte("data_dir: /tmp\n"))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}

	if cfg.CacheTTL != DefaultCacheTTL {
		t.Errorf("default cache_ttl: got %v, want %v", cfg.CacheTTL, DefaultCacheTTL)
	}
	if cfg.Normalise.Policy() != inflammation.ZeroMaxAsZero {
		t.Errorf("default zero_max: got %v", cfg.Normalise.Policy())
	}
	if cfg.Server.Addr != DefaultAddr {
		t.Errorf("default server.addr: got %q", cfg.Server.Addr)
	}
	if cfg.InfluxDB.TokenEnv != DefaultTokenEnv {
		t.Errorf("default influxdb.token_env: got %q", cfg.InfluxDB.TokenEnv)
	}
	if !cfg.InfluxDB.Start().Equal(time.Unix(0, 0)) {
		t.Errorf("default start: got %v", cfg.InfluxDB.Start())
	}
	if err := cfg.RequireInfluxDB(); err == nil {
		t.Error("RequireInfluxDB: expected error for empty influxdb section")
	}
}

func TestParse_ExpandsHome(t *testing.T) {
	home, err := homedir.Dir()
	if err != nil {
		t.Skipf("no home directory: %v", err)
	}

	cfg, err := Parse([]byte("data_dir: ~/data\n"))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if want := filepath.Join(home, "data"); cfg.DataDir != want {
		t.Errorf("data_dir: got %q, want %q", cfg.DataDir, want)
	}
}

func TestParse_Invalid(t *testing.T) {
	cases := []struct {
		name string
		yaml string
		want string
	}{
		{"bad_zero_max", "normalise:\n  zero_max: nan\n", "zero_max"},
		{"negative_ttl", "cache_ttl: -1s\n", "cache_ttl"},
		{"bad_start_date", "influxdb:\n  start_date: 15/01/2024\n", "start_date"},
		{"not_yaml", "data_dir: [\n", "parse"},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			_, err := Parse([]byte(c.yaml))
			if err == nil {
				t.Fatal("expected error, got nil")
			}
			if !strings.Contains(err.Error(), c.want) {
				t.Errorf("error %q does not mention %q", err, c.want)
			}
		})
	}
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("server:\n  addr: \":9999\"\n"), 0600); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Server.Addr != ":9999" {
		t.Errorf("server.addr: got %q", cfg.Server.Addr)
	}
}

func TestLoad_Missing(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Error("expected error for missing explicit path, got nil")
	}
}

func TestRequireDataDir(t *testing.T) {
	if err := Default().RequireDataDir(); err == nil {
		t.Error("expected error for default config, got nil")
	}
}
