package identity

import "strings"

// SharedLogVolume is the volume every api-logger container mounts for its
// JSONL logs. One per host, shared across all projects and variants.
const SharedLogVolume = "den-api-logs"

// loggerContainerPrefix prefixes every api-logger sidecar name.
const loggerContainerPrefix = "api-logger-"

// Names holds the deterministic container-runtime resource names derived
// for one project.
type Names struct {
	// Container is the sandbox container, e.g. "claude-sandbox-myproject".
	Container string

	// WorkspaceVolume holds the project checkout for URL-sourced sandboxes.
	WorkspaceVolume string

	// HomeVolume persists the assistant's home directory across restarts.
	HomeVolume string

	// APILoggerContainer is the per-project logging proxy sidecar.
	APILoggerContainer string
}

// Names returns the resource names for this identity.
func (id Identity) Names() Names {
	return ResourceNames(id.Slug, id.Variant)
}

// ResourceNames derives the resource names for a slug and variant. Pure
// concatenation; the slug alphabet already satisfies the runtime's naming
// restrictions. An empty variant behaves as VariantClaude.
func ResourceNames(slug string, variant Variant) Names {
	v := string(variant)
	if v == "" {
		v = string(VariantClaude)
	}
	return Names{
		Container:          v + "-sandbox-" + slug,
		WorkspaceVolume:    v + "-workspace-" + slug,
		HomeVolume:         v + "-home-" + slug,
		APILoggerContainer: loggerContainerPrefix + slug,
	}
}

// SlugFromContainer recovers the slug and variant from a sandbox container
// name. Reports false for names outside den's naming scheme, such as the
// api-logger sidecars or foreign containers.
func SlugFromContainer(name string) (string, Variant, bool) {
	for _, v := range Variants() {
		prefix := string(v) + "-sandbox-"
		if rest, ok := strings.CutPrefix(name, prefix); ok && rest != "" {
			return rest, v, true
		}
	}
	return "", "", false
}

// SlugFromLoggerContainer recovers the slug from an api-logger sidecar
// name. Reports false for names outside the scheme.
func SlugFromLoggerContainer(name string) (string, bool) {
	rest, ok := strings.CutPrefix(name, loggerContainerPrefix)
	if !ok || rest == "" {
		return "", false
	}
	return rest, true
}

// SlugFromVolume recovers the slug and variant from a workspace or home
// volume name. The shared log volume and foreign volumes report false.
func SlugFromVolume(name string) (string, Variant, bool) {
	for _, v := range Variants() {
		for _, kind := range []string{"workspace", "home"} {
			prefix := string(v) + "-" + kind + "-"
			if rest, ok := strings.CutPrefix(name, prefix); ok && rest != "" {
				return rest, v, true
			}
		}
	}
	return "", "", false
}
