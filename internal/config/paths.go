package config

import (
	"os"
	"path/filepath"
)

// ConfigDir returns den's config directory (~/.config/den on Linux).
func ConfigDir() string {
	base, err := os.UserConfigDir()
	if err != nil {
		return ".den"
	}
	return filepath.Join(base, "den")
}

// GlobalPath returns the path of the global config file.
func GlobalPath() string {
	return filepath.Join(ConfigDir(), "config.toml")
}

// DataDir returns den's data directory, honoring XDG_DATA_HOME.
// Audit events and API logs live under it.
func DataDir() string {
	if xdg := os.Getenv("XDG_DATA_HOME"); xdg != "" {
		return filepath.Join(xdg, "den")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ".den"
	}
	return filepath.Join(home, ".local", "share", "den")
}

// EventsDir returns the audit event directory under a data directory.
func EventsDir(dataDir string) string {
	return filepath.Join(dataDir, "events")
}
