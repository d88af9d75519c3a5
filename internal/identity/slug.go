package identity

import (
	"path"
	"regexp"
	"strings"
)

// FallbackSlug is returned when normalization leaves nothing usable.
const FallbackSlug = "sandbox"

// maxSlugLen bounds slug length so derived resource names stay well under
// container-runtime name limits.
const maxSlugLen = 20

var (
	// invalidRunRE matches runs of characters outside the slug alphabet.
	// Replacing a whole run with one dash both sanitizes and collapses.
	invalidRunRE = regexp.MustCompile(`[^a-z0-9]+`)

	// scpLikeRE matches SCP-style git remotes such as git@host:owner/repo.
	scpLikeRE = regexp.MustCompile(`^[^/@]+@[^/:]+:`)
)

// Slugify turns a raw project source into a canonical slug.
//
// URL-shaped input (anything with a scheme or an SCP-style user@host:
// prefix) contributes its last path segment, minus a trailing ".git".
// This covers GitHub HTTPS and SSH remotes as well as Azure DevOps's
// .../org/project/_git/repo layout, where the repository is the final
// segment. Anything else contributes its basename.
//
// The segment is lowercased, characters outside [a-z0-9] become a single
// dash per run, the result is truncated to 20 characters, and leading or
// trailing dashes are stripped. An empty result returns FallbackSlug.
// Slugifying an already-clean slug returns it unchanged.
func Slugify(rawSource string) string {
	slug := strings.ToLower(lastSegment(rawSource))
	slug = strings.TrimSuffix(slug, ".git")
	slug = invalidRunRE.ReplaceAllString(slug, "-")
	slug = strings.Trim(slug, "-")
	if len(slug) > maxSlugLen {
		slug = strings.TrimRight(slug[:maxSlugLen], "-")
	}
	if slug == "" {
		return FallbackSlug
	}
	return slug
}

// lastSegment extracts the name-bearing part of a raw source. Remote URLs
// split on both "/" and ":" so SCP-style remotes work; local paths use a
// plain basename.
func lastSegment(raw string) string {
	if !IsRemoteURL(raw) {
		return path.Base(raw)
	}
	trimmed := strings.TrimRight(raw, "/")
	if i := strings.LastIndexAny(trimmed, "/:"); i >= 0 {
		return trimmed[i+1:]
	}
	return trimmed
}

// IsRemoteURL reports whether a raw source names a remote repository rather
// than a local path. Remote sources are cloned into the workspace volume;
// local ones are bind mounted.
func IsRemoteURL(raw string) bool {
	return strings.Contains(raw, "://") || scpLikeRE.MatchString(raw)
}
