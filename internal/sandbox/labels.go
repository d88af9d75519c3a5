package sandbox

import (
	"strconv"

	"github.com/denlabs/den/internal/identity"
	"github.com/denlabs/den/internal/runtime"
)

// BuildLabels returns the labels stamped onto every container and volume den
// creates. Labels are the only persistent record of a sandbox's identity;
// everything ps, status, and gc show is reconstructed from them.
func BuildLabels(id identity.Identity, role string) map[string]string {
	return map[string]string{
		runtime.ManagedLabel:  "true",
		runtime.SlugLabel:     id.Slug,
		runtime.VariantLabel:  string(id.Variant),
		runtime.SourceLabel:   id.RawSource,
		runtime.BasePortLabel: strconv.Itoa(id.BasePort),
		runtime.RoleLabel:     role,
	}
}

// IdentityFromLabels reconstructs a project identity from container labels.
// Unknown or missing values fall back to defaults, so foreign or hand-edited
// containers still produce something displayable.
func IdentityFromLabels(labels map[string]string) identity.Identity {
	variant, err := identity.ParseVariant(labels[runtime.VariantLabel])
	if err != nil {
		variant = identity.VariantClaude
	}

	basePort, _ := strconv.Atoi(labels[runtime.BasePortLabel])

	id := identity.Resolve(labels[runtime.SourceLabel], variant, basePort)

	// An explicit name override makes the labelled slug differ from the
	// derived one; the label wins.
	if slug := labels[runtime.SlugLabel]; slug != "" {
		id.Slug = slug
	}
	return id
}
