package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/denlabs/den/internal/identity"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("Failed to write %s: %v", path, err)
	}
}

func TestLoadGlobal(t *testing.T) {
	tmpDir := t.TempDir()
	path := filepath.Join(tmpDir, "config.toml")
	writeFile(t, path, `
base_port = 20000
variant = "codex"
image = "example.com/custom:latest"
runtime = "podman"
disable_logger = true

[env]
EDITOR = "vim"
`)

	g, err := LoadGlobal(path)
	if err != nil {
		t.Fatalf("LoadGlobal failed: %v", err)
	}

	if g.BasePort != 20000 {
		t.Errorf("BasePort = %d, want 20000", g.BasePort)
	}
	if g.Variant != "codex" {
		t.Errorf("Variant = %q, want %q", g.Variant, "codex")
	}
	if g.Image != "example.com/custom:latest" {
		t.Errorf("Image = %q, want %q", g.Image, "example.com/custom:latest")
	}
	if g.Runtime != "podman" {
		t.Errorf("Runtime = %q, want %q", g.Runtime, "podman")
	}
	if !g.DisableLogger {
		t.Error("DisableLogger = false, want true")
	}
	if g.Env["EDITOR"] != "vim" {
		t.Errorf("Env[EDITOR] = %q, want %q", g.Env["EDITOR"], "vim")
	}
}

func TestLoadGlobal_Missing(t *testing.T) {
	g, err := LoadGlobal(filepath.Join(t.TempDir(), "nope.toml"))
	if err != nil {
		t.Fatalf("LoadGlobal for missing file failed: %v", err)
	}
	if g.BasePort != 0 || g.Variant != "" {
		t.Errorf("expected zero config for missing file, got %+v", g)
	}
}

func TestLoadGlobal_Invalid(t *testing.T) {
	tmpDir := t.TempDir()
	path := filepath.Join(tmpDir, "config.toml")
	writeFile(t, path, "base_port = [not toml")

	if _, err := LoadGlobal(path); err == nil {
		t.Error("Expected error for invalid TOML, got nil")
	}
}

func TestLoadProject(t *testing.T) {
	tmpDir := t.TempDir()
	writeFile(t, filepath.Join(tmpDir, ProjectConfigFile), `
name: custom-name
image: example.com/project:dev
env:
  NODE_ENV: development
mounts:
  - /data:/data
publish:
  - "5432:5432"
disable_logger: false
`)

	p, err := LoadProject(tmpDir)
	if err != nil {
		t.Fatalf("LoadProject failed: %v", err)
	}
	if p == nil {
		t.Fatal("LoadProject returned nil for existing file")
	}

	if p.Name != "custom-name" {
		t.Errorf("Name = %q, want %q", p.Name, "custom-name")
	}
	if p.Image != "example.com/project:dev" {
		t.Errorf("Image = %q, want %q", p.Image, "example.com/project:dev")
	}
	if p.Env["NODE_ENV"] != "development" {
		t.Errorf("Env[NODE_ENV] = %q, want %q", p.Env["NODE_ENV"], "development")
	}
	if len(p.Mounts) != 1 || p.Mounts[0] != "/data:/data" {
		t.Errorf("Mounts = %v, want [/data:/data]", p.Mounts)
	}
	if len(p.Publish) != 1 || p.Publish[0] != "5432:5432" {
		t.Errorf("Publish = %v, want [5432:5432]", p.Publish)
	}
	if p.DisableLogger == nil || *p.DisableLogger {
		t.Errorf("DisableLogger = %v, want explicit false", p.DisableLogger)
	}
}

func TestLoadProject_Missing(t *testing.T) {
	p, err := LoadProject(t.TempDir())
	if err != nil {
		t.Fatalf("LoadProject for missing file failed: %v", err)
	}
	if p != nil {
		t.Errorf("expected nil for missing project config, got %+v", p)
	}
}

func TestLoadProject_Invalid(t *testing.T) {
	tmpDir := t.TempDir()
	writeFile(t, filepath.Join(tmpDir, ProjectConfigFile), "\t:\tnot yaml")

	if _, err := LoadProject(tmpDir); err == nil {
		t.Error("Expected error for invalid YAML, got nil")
	}
}

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load(Flags{}, filepath.Join(t.TempDir(), "absent.toml"), "")
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.BasePort != identity.DefaultBasePort {
		t.Errorf("BasePort = %d, want %d", cfg.BasePort, identity.DefaultBasePort)
	}
	if cfg.Variant != identity.VariantClaude {
		t.Errorf("Variant = %q, want %q", cfg.Variant, identity.VariantClaude)
	}
	if cfg.Image != DefaultImage {
		t.Errorf("Image = %q, want %q", cfg.Image, DefaultImage)
	}
	if cfg.Runtime != DefaultRuntime {
		t.Errorf("Runtime = %q, want %q", cfg.Runtime, DefaultRuntime)
	}
	if cfg.DisableLogger {
		t.Error("DisableLogger = true, want false by default")
	}
}

func TestLoad_Precedence(t *testing.T) {
	tmpDir := t.TempDir()
	globalPath := filepath.Join(tmpDir, "config.toml")
	writeFile(t, globalPath, `
base_port = 20000
variant = "codex"
image = "example.com/global:latest"

[env]
SHARED = "global"
LAYER = "global"
`)

	projectDir := filepath.Join(tmpDir, "project")
	if err := os.MkdirAll(projectDir, 0755); err != nil {
		t.Fatalf("Failed to create project dir: %v", err)
	}
	writeFile(t, filepath.Join(projectDir, ProjectConfigFile), `
image: example.com/project:latest
env:
  LAYER: project
`)

	cfg, err := Load(Flags{Variant: "claude"}, globalPath, projectDir)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	// Global survives where nothing overrides it.
	if cfg.BasePort != 20000 {
		t.Errorf("BasePort = %d, want 20000 from global", cfg.BasePort)
	}
	// Project overrides global.
	if cfg.Image != "example.com/project:latest" {
		t.Errorf("Image = %q, want project value", cfg.Image)
	}
	// Flags override both.
	if cfg.Variant != identity.VariantClaude {
		t.Errorf("Variant = %q, want flag value claude", cfg.Variant)
	}
	// Env maps merge with project winning per key.
	if cfg.Env["SHARED"] != "global" {
		t.Errorf("Env[SHARED] = %q, want %q", cfg.Env["SHARED"], "global")
	}
	if cfg.Env["LAYER"] != "project" {
		t.Errorf("Env[LAYER] = %q, want %q", cfg.Env["LAYER"], "project")
	}
}

func TestLoad_ProjectDisableLoggerOverridesGlobal(t *testing.T) {
	tmpDir := t.TempDir()
	globalPath := filepath.Join(tmpDir, "config.toml")
	writeFile(t, globalPath, "disable_logger = true\n")

	projectDir := filepath.Join(tmpDir, "project")
	if err := os.MkdirAll(projectDir, 0755); err != nil {
		t.Fatalf("Failed to create project dir: %v", err)
	}
	writeFile(t, filepath.Join(projectDir, ProjectConfigFile), "disable_logger: false\n")

	cfg, err := Load(Flags{}, globalPath, projectDir)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.DisableLogger {
		t.Error("DisableLogger = true, want project override to false")
	}

	// The flag still forces it off.
	cfg, err = Load(Flags{NoLogger: true}, globalPath, projectDir)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if !cfg.DisableLogger {
		t.Error("DisableLogger = false, want true with NoLogger flag")
	}
}

func TestLoad_InvalidVariant(t *testing.T) {
	if _, err := Load(Flags{Variant: "gemini"}, filepath.Join(t.TempDir(), "absent.toml"), ""); err == nil {
		t.Error("Expected error for unknown variant, got nil")
	}
}

func TestResolveIdentity_NameOverride(t *testing.T) {
	cfg := &Config{
		BasePort:     identity.DefaultBasePort,
		Variant:      identity.VariantClaude,
		NameOverride: "Custom Name",
	}

	id := cfg.ResolveIdentity("https://github.com/user/my-repo.git")

	if id.Slug != "custom-name" {
		t.Errorf("Slug = %q, want %q from override", id.Slug, "custom-name")
	}
	// The true source still drives host classification and cloning.
	if id.Host != identity.HostGitHub {
		t.Errorf("Host = %q, want %q", id.Host, identity.HostGitHub)
	}
	if id.RawSource != "https://github.com/user/my-repo.git" {
		t.Errorf("RawSource = %q, want original URL", id.RawSource)
	}
}

func TestResolveIdentity_NoOverride(t *testing.T) {
	cfg := &Config{
		BasePort: identity.DefaultBasePort,
		Variant:  identity.VariantCodex,
	}

	id := cfg.ResolveIdentity("/path/to/MyProject")

	if id.Slug != "myproject" {
		t.Errorf("Slug = %q, want %q", id.Slug, "myproject")
	}
	if id.Variant != identity.VariantCodex {
		t.Errorf("Variant = %q, want %q", id.Variant, identity.VariantCodex)
	}
	if id.Names().Container != "codex-sandbox-myproject" {
		t.Errorf("Container = %q, want %q", id.Names().Container, "codex-sandbox-myproject")
	}
}

func TestEventsDir(t *testing.T) {
	if got := EventsDir("/data/den"); got != filepath.Join("/data/den", "events") {
		t.Errorf("EventsDir = %q", got)
	}
}
