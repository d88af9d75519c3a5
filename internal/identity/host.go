package identity

import "strings"

// HostKind classifies a repository URL's hosting provider.
type HostKind string

const (
	HostGitHub      HostKind = "github"
	HostAzureDevOps HostKind = "azure-devops"
	HostUnknown     HostKind = "unknown"
)

// ClassifyHost classifies a raw source by its host signature. Total: any
// input that matches no known provider, including local paths, maps to
// HostUnknown.
func ClassifyHost(rawSource string) HostKind {
	s := strings.ToLower(rawSource)
	switch {
	case strings.Contains(s, "github.com"):
		return HostGitHub
	case strings.Contains(s, "dev.azure.com"), strings.Contains(s, "visualstudio.com"):
		return HostAzureDevOps
	default:
		return HostUnknown
	}
}
