package sandbox

import (
	"reflect"
	"testing"

	"github.com/denlabs/den/internal/identity"
	"github.com/denlabs/den/internal/runtime"
)

func TestBuildLabels(t *testing.T) {
	id := identity.Resolve("https://github.com/acme/widgets.git", identity.VariantClaude, 0)
	labels := BuildLabels(id, runtime.RoleSandbox)

	want := map[string]string{
		"den.managed":   "true",
		"den.slug":      "widgets",
		"den.variant":   "claude",
		"den.source":    "https://github.com/acme/widgets.git",
		"den.base-port": "18443",
		"den.role":      "sandbox",
	}
	if !reflect.DeepEqual(labels, want) {
		t.Errorf("BuildLabels() = %v, want %v", labels, want)
	}
}

func TestIdentityFromLabels_RoundTrip(t *testing.T) {
	sources := []string{
		"https://github.com/acme/widgets.git",
		"/home/dev/projects/widgets",
		"git@gitlab.com:acme/widgets.git",
	}

	for _, source := range sources {
		t.Run(source, func(t *testing.T) {
			original := identity.Resolve(source, identity.VariantCodex, 20000)
			got := IdentityFromLabels(BuildLabels(original, runtime.RoleSandbox))
			if !reflect.DeepEqual(got, original) {
				t.Errorf("round trip = %+v, want %+v", got, original)
			}
		})
	}
}

func TestIdentityFromLabels_SlugOverride(t *testing.T) {
	labels := map[string]string{
		"den.managed":   "true",
		"den.slug":      "custom-name",
		"den.source":    "https://github.com/acme/widgets.git",
		"den.variant":   "claude",
		"den.base-port": "18443",
		"den.role":      "sandbox",
	}

	id := IdentityFromLabels(labels)
	if id.Slug != "custom-name" {
		t.Errorf("Slug = %q, want %q", id.Slug, "custom-name")
	}
	if id.RawSource != "https://github.com/acme/widgets.git" {
		t.Errorf("RawSource = %q", id.RawSource)
	}
}

func TestIdentityFromLabels_Defaults(t *testing.T) {
	id := IdentityFromLabels(map[string]string{})

	if id.Slug != "sandbox" {
		t.Errorf("Slug = %q, want %q", id.Slug, "sandbox")
	}
	if id.Variant != identity.VariantClaude {
		t.Errorf("Variant = %q, want claude", id.Variant)
	}
	if id.BasePort != identity.DefaultBasePort {
		t.Errorf("BasePort = %d, want %d", id.BasePort, identity.DefaultBasePort)
	}
}

func TestIdentityFromLabels_UnknownVariant(t *testing.T) {
	labels := map[string]string{
		"den.slug":    "widgets",
		"den.variant": "gemini",
	}

	id := IdentityFromLabels(labels)
	if id.Variant != identity.VariantClaude {
		t.Errorf("Variant = %q, want fallback to claude", id.Variant)
	}
}
