// Package identity derives deterministic resource names and ports for a
// project sandbox.
//
// Given a raw source (repository URL, filesystem path, or explicit name),
// the resolver produces a sanitized slug, a repository host classification,
// container and volume names, and a set of service ports. Every derivation
// is a pure function: the same raw source, variant, and base port always
// produce the same identity, on any machine, in any process. The container
// runtime stores all state keyed by these names, which is how a second
// invocation on the same project finds and reuses the first invocation's
// containers instead of creating duplicates.
//
// # Slugs
//
// A slug is lowercase, restricted to [a-z0-9-], at most 20 characters, with
// no leading or trailing dash. Characters outside the alphabet are replaced
// with a dash and runs of dashes collapse to one. Inputs that normalize to
// nothing fall back to the literal "sandbox".
//
//	identity.Slugify("https://github.com/user/My-Repo.git")  // "my-repo"
//	identity.Slugify("/home/dev/MyProject")                  // "myproject"
//
// # Ports
//
// Each project gets a 1000-port window above the base port, bucketed by a
// hash of the slug. Within the window, fixed per-service deltas keep one
// project's services apart. Two different projects may land in the same
// bucket; the operator overrides the base port if that ever bites.
//
// Nothing in this package performs I/O and nothing can fail: identity
// derivation is never the reason a sandbox launch aborts.
package identity
