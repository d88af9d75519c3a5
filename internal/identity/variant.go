package identity

import (
	"fmt"
	"strings"
)

// Variant identifies which assistant CLI a sandbox hosts. The variant
// determines the assistant command, its API environment variables, and the
// prefixes of every derived resource name.
type Variant string

const (
	VariantClaude Variant = "claude"
	VariantCodex  Variant = "codex"
)

// Variants returns all supported variants in display order.
func Variants() []Variant {
	return []Variant{VariantClaude, VariantCodex}
}

// ParseVariant parses a user-supplied variant name.
func ParseVariant(s string) (Variant, error) {
	switch Variant(strings.ToLower(strings.TrimSpace(s))) {
	case VariantClaude:
		return VariantClaude, nil
	case VariantCodex:
		return VariantCodex, nil
	default:
		return "", fmt.Errorf("unknown variant %q (supported: claude, codex)", s)
	}
}

// Command returns the executable the sandbox runs for this variant.
func (v Variant) Command() string {
	switch v {
	case VariantCodex:
		return "codex"
	case VariantClaude:
		return "claude"
	default:
		return string(VariantClaude)
	}
}

// APIKeyEnv returns the environment variable holding the variant's API key,
// passed through from the host into the sandbox when set.
func (v Variant) APIKeyEnv() string {
	switch v {
	case VariantCodex:
		return "OPENAI_API_KEY"
	case VariantClaude:
		return "ANTHROPIC_API_KEY"
	default:
		return "ANTHROPIC_API_KEY"
	}
}

// BaseURLEnv returns the environment variable the variant reads its API
// endpoint from. Pointing it at the API logger routes the assistant's
// traffic through the logging proxy.
func (v Variant) BaseURLEnv() string {
	switch v {
	case VariantCodex:
		return "OPENAI_BASE_URL"
	case VariantClaude:
		return "ANTHROPIC_BASE_URL"
	default:
		return "ANTHROPIC_BASE_URL"
	}
}
