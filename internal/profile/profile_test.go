package profile

import (
	"path/filepath"
	"strings"
	"testing"
)

func TestValidateDefaults(t *testing.T) {
	dataDir := t.TempDir()
	p := &Profile{Mode: "bogus", Data: dataDir}

	if err := p.Validate(); err != nil {
		t.Fatalf("Validate() error: %v", err)
	}
	if p.Mode != "prod" {
		t.Errorf("Mode = %q, want prod", p.Mode)
	}
	if p.Driver != "sqlite" {
		t.Errorf("Driver = %q, want sqlite", p.Driver)
	}
	if want := filepath.Join(dataDir, "filemap_prod.db"); p.DSN != want {
		t.Errorf("DSN = %q, want %q", p.DSN, want)
	}
	if want := filepath.Join(filepath.Dir(dataDir), "managed"); p.ManagedDir != want {
		t.Errorf("ManagedDir = %q, want %q", p.ManagedDir, want)
	}
}

func TestValidateKeepsExplicitValues(t *testing.T) {
	dataDir := t.TempDir()
	p := &Profile{
		Mode:       "dev",
		Data:       dataDir,
		ManagedDir: "/srv/managed",
		Driver:     "postgres",
		DSN:        "postgres://localhost/filemap",
	}

	if err := p.Validate(); err != nil {
		t.Fatalf("Validate() error: %v", err)
	}
	if p.Mode != "dev" {
		t.Errorf("Mode = %q, want dev", p.Mode)
	}
	if p.ManagedDir != "/srv/managed" {
		t.Errorf("ManagedDir = %q, want /srv/managed", p.ManagedDir)
	}
	if p.DSN != "postgres://localhost/filemap" {
		t.Errorf("DSN = %q, want the explicit value", p.DSN)
	}
}

func TestValidateTrimsTrailingSeparator(t *testing.T) {
	dataDir := t.TempDir()
	p := &Profile{Mode: "dev", Data: dataDir + string(filepath.Separator)}

	if err := p.Validate(); err != nil {
		t.Fatalf("Validate() error: %v", err)
	}
	if strings.HasSuffix(p.Data, string(filepath.Separator)) {
		t.Errorf("Data = %q still carries a trailing separator", p.Data)
	}
}

func TestValidateMissingDataDir(t *testing.T) {
	p := &Profile{Mode: "dev", Data: filepath.Join(t.TempDir(), "does-not-exist")}

	if err := p.Validate(); err == nil {
		t.Error("Validate() accepted a missing data dir")
	}
}

func TestIsDev(t *testing.T) {
	if (&Profile{Mode: "prod"}).IsDev() {
		t.Error("prod profile reported as dev")
	}
	if !(&Profile{Mode: "dev"}).IsDev() {
		t.Error("dev profile not reported as dev")
	}
}
