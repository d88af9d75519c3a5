package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"github.com/denlabs/den/internal/identity"
)

const (
	// DefaultImage is the sandbox image used when nothing overrides it.
	DefaultImage = "ghcr.io/denlabs/sandbox:latest"

	// DefaultRuntime auto-detects the container runtime.
	DefaultRuntime = "auto"

	// ProjectConfigFile is the per-project config filename looked up at the
	// workspace root.
	ProjectConfigFile = ".den.yaml"
)

// GlobalConfig mirrors the optional global config file at
// ~/.config/den/config.toml. Every field is optional; a zero value means
// "use the built-in default".
type GlobalConfig struct {
	BasePort      int               `toml:"base_port"`
	Variant       string            `toml:"variant"`
	Image         string            `toml:"image"`
	Runtime       string            `toml:"runtime"`
	LogDir        string            `toml:"log_dir"`
	DisableLogger bool              `toml:"disable_logger"`
	Env           map[string]string `toml:"env"`
}

// ProjectConfig mirrors the optional .den.yaml at a project's workspace
// root. Project settings override global ones for that project only.
type ProjectConfig struct {
	// Name overrides the source the slug is derived from.
	Name string `yaml:"name"`

	// Image overrides the sandbox image.
	Image string `yaml:"image"`

	// Env adds environment variables to the sandbox.
	Env map[string]string `yaml:"env"`

	// Mounts adds extra bind mounts in HOST:CONTAINER form.
	Mounts []string `yaml:"mounts"`

	// Publish adds extra port publishes in HOST:CONTAINER form.
	Publish []string `yaml:"publish"`

	// DisableLogger overrides the global logger toggle. Nil inherits.
	DisableLogger *bool `yaml:"disable_logger"`
}

// Flags carries command-line overrides, the highest-precedence layer.
// Zero values mean "not set".
type Flags struct {
	BasePort int
	Variant  string
	Image    string
	Runtime  string
	Name     string
	NoLogger bool
}

// Config is the fully resolved configuration for one invocation. It is
// assembled once in the command layer and passed down; nothing mutates it
// afterwards.
type Config struct {
	BasePort      int
	Variant       identity.Variant
	Image         string
	Runtime       string
	LogDir        string
	DisableLogger bool
	Env           map[string]string
	Mounts        []string
	Publish       []string
	NameOverride  string
	DataDir       string
}

// Load assembles the configuration from built-in defaults, the global
// config file at globalPath, the project config in projectDir (skipped when
// projectDir is empty), and flags, in increasing precedence.
func Load(flags Flags, globalPath, projectDir string) (*Config, error) {
	dataDir := DataDir()
	cfg := &Config{
		BasePort: identity.DefaultBasePort,
		Image:    DefaultImage,
		Runtime:  DefaultRuntime,
		LogDir:   filepath.Join(dataDir, "api-logs"),
		Env:      map[string]string{},
		DataDir:  dataDir,
	}
	variantName := string(identity.VariantClaude)

	global, err := LoadGlobal(globalPath)
	if err != nil {
		return nil, err
	}
	if global.BasePort > 0 {
		cfg.BasePort = global.BasePort
	}
	if global.Variant != "" {
		variantName = global.Variant
	}
	if global.Image != "" {
		cfg.Image = global.Image
	}
	if global.Runtime != "" {
		cfg.Runtime = global.Runtime
	}
	if global.LogDir != "" {
		cfg.LogDir = global.LogDir
	}
	if global.DisableLogger {
		cfg.DisableLogger = true
	}
	for k, v := range global.Env {
		cfg.Env[k] = v
	}

	if projectDir != "" {
		project, err := LoadProject(projectDir)
		if err != nil {
			return nil, err
		}
		if project != nil {
			if project.Name != "" {
				cfg.NameOverride = project.Name
			}
			if project.Image != "" {
				cfg.Image = project.Image
			}
			for k, v := range project.Env {
				cfg.Env[k] = v
			}
			cfg.Mounts = append(cfg.Mounts, project.Mounts...)
			cfg.Publish = append(cfg.Publish, project.Publish...)
			if project.DisableLogger != nil {
				cfg.DisableLogger = *project.DisableLogger
			}
		}
	}

	if flags.BasePort > 0 {
		cfg.BasePort = flags.BasePort
	}
	if flags.Variant != "" {
		variantName = flags.Variant
	}
	if flags.Image != "" {
		cfg.Image = flags.Image
	}
	if flags.Runtime != "" {
		cfg.Runtime = flags.Runtime
	}
	if flags.Name != "" {
		cfg.NameOverride = flags.Name
	}
	if flags.NoLogger {
		cfg.DisableLogger = true
	}

	variant, err := identity.ParseVariant(variantName)
	if err != nil {
		return nil, err
	}
	cfg.Variant = variant

	return cfg, nil
}

// LoadGlobal reads a global config file. A missing file yields the zero
// config, not an error.
func LoadGlobal(path string) (GlobalConfig, error) {
	var g GlobalConfig
	if _, err := toml.DecodeFile(path, &g); err != nil {
		if os.IsNotExist(err) {
			return GlobalConfig{}, nil
		}
		return GlobalConfig{}, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	return g, nil
}

// LoadProject reads the .den.yaml in dir. A missing file yields nil, not
// an error.
func LoadProject(dir string) (*ProjectConfig, error) {
	path := filepath.Join(dir, ProjectConfigFile)
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}

	var p ProjectConfig
	if err := yaml.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	return &p, nil
}

// ResolveIdentity computes the project identity for a raw source. An
// explicit name override replaces the slug but leaves the source and its
// host classification intact, so clones still reach the real repository.
func (c *Config) ResolveIdentity(rawSource string) identity.Identity {
	id := identity.Resolve(rawSource, c.Variant, c.BasePort)
	if c.NameOverride != "" {
		id.Slug = identity.Slugify(c.NameOverride)
	}
	return id
}
