package identity

// DefaultBasePort anchors every derived port when the caller does not
// override it.
const DefaultBasePort = 18443

// Identity is the resolved identity of one project sandbox. It is computed
// once per invocation and never persisted; the names and ports it derives
// are the only durable identifiers.
type Identity struct {
	// RawSource is the input the identity was resolved from: a repository
	// URL, a filesystem path, or an explicit project name.
	RawSource string

	// Slug is the sanitized project identifier. See Slugify for the rules.
	Slug string

	// Host classifies RawSource's hosting provider when it is a URL.
	Host HostKind

	// Variant selects which assistant CLI the sandbox hosts.
	Variant Variant

	// BasePort anchors the derived port set.
	BasePort int
}

// Resolve computes the identity for a raw source. A non-positive basePort
// falls back to DefaultBasePort. Resolve never fails: any string input,
// including the empty string, yields a usable identity.
func Resolve(rawSource string, variant Variant, basePort int) Identity {
	if basePort <= 0 {
		basePort = DefaultBasePort
	}
	return Identity{
		RawSource: rawSource,
		Slug:      Slugify(rawSource),
		Host:      ClassifyHost(rawSource),
		Variant:   variant,
		BasePort:  basePort,
	}
}
