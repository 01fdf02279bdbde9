package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
)

func TestLoad_Defaults(t *testing.T) {
	t.Chdir(t.TempDir())

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Server.Addr != ":8080" || cfg.Session.Driver != DriverMemory || cfg.Server.FlashTTL != 5*time.Minute {
		t.Fatalf("unexpected defaults %+v", cfg)
	}
	if !cfg.Form.RequireAll || !cfg.Form.TranslateErrors {
		t.Fatalf("form defaults not applied: %+v", cfg.Form)
	}
	if len(cfg.Form.Options()) != 4 {
		t.Fatalf("expected only the base options without lang and key")
	}
}

func TestLoad_FileAndEnv(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "formgen.yaml")
	data := []byte(`
server:
  addr: ":9000"
  flash_ttl: 2m
session:
  driver: Redis
  redis:
    addr: cache:6379
    db: 2
form:
  lang: en_gb
  rich_text_api_key: key
disks:
  public: https://cdn.example.com/files
definitions:
  dir: defs
  watch: true
`)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	t.Setenv("FORMGEN_SERVER_ADDR", ":9100")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Server.Addr != ":9100" {
		t.Fatalf("env should override file, got %q", cfg.Server.Addr)
	}
	if cfg.Server.FlashTTL != 2*time.Minute || cfg.Session.Driver != DriverRedis {
		t.Fatalf("unexpected server/session %+v %+v", cfg.Server, cfg.Session)
	}
	if cfg.Form.Lang != "en-GB" {
		t.Fatalf("lang should be normalised, got %q", cfg.Form.Lang)
	}
	if len(cfg.Form.Options()) != 6 {
		t.Fatalf("expected lang and key options")
	}
	if !cfg.Definitions.Watch || cfg.Definitions.Dir != "defs" {
		t.Fatalf("unexpected definitions %+v", cfg.Definitions)
	}

	url, err := cfg.StorageDisks().Resolve("public", "a/b.png")
	if err != nil || url != "https://cdn.example.com/files/a/b.png" {
		t.Fatalf("unexpected disk url %q %v", url, err)
	}

	redis := cfg.RedisStoreConfig()
	want := struct {
		Addr   string
		DB     int
		Prefix string
	}{"cache:6379", 2, "formgen:flash:"}
	got := struct {
		Addr   string
		DB     int
		Prefix string
	}{redis.Addr, redis.DB, redis.KeyPrefix}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("redis config mismatch (-want +got):\n%s", diff)
	}
}

func TestLoad_Errors(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Fatalf("expected error for a missing explicit file")
	}

	dir := t.TempDir()
	path := filepath.Join(dir, "bad.yaml")
	if err := os.WriteFile(path, []byte("session:\n  driver: disk\n"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	if _, err := Load(path); err == nil {
		t.Fatalf("expected error for unknown driver")
	}
}
