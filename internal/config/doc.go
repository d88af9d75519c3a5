// Package config provides configuration types and loading for den.
//
// # Layers
//
// Configuration is assembled from four layers in increasing precedence:
//
//   - Built-in defaults (base port, image, runtime auto-detection)
//   - GlobalConfig: ~/.config/den/config.toml
//   - ProjectConfig: .den.yaml at the project's workspace root
//   - Flags: command-line overrides
//
// The result is a single Config value built once at process start in the
// command layer and passed down. Nothing reads environment or files after
// Load returns, and nothing mutates the value.
//
// # Global Configuration
//
// The global file covers host-wide preferences:
//
//	base_port = 18443
//	variant = "claude"
//	image = "ghcr.io/denlabs/sandbox:latest"
//	runtime = "auto"
//
//	[env]
//	EDITOR = "vim"
//
// # Project Configuration
//
// A project's .den.yaml adjusts a single sandbox:
//
//	name: custom-slug-source
//	image: ghcr.io/denlabs/sandbox:nightly
//	env:
//	  NODE_ENV: development
//	mounts:
//	  - /home/dev/data:/data
//	publish:
//	  - "5432:5432"
//	disable_logger: true
//
// Missing files are not errors; each layer simply contributes nothing.
package config
