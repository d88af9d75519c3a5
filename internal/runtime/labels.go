package runtime

// Label keys den attaches to every container and volume it creates. The
// runtime is the only store of sandbox state; these labels are how den
// reconstructs what it manages across invocations.
const (
	// ManagedLabel marks a resource as den-managed. Always "true".
	ManagedLabel = "den.managed"

	// SlugLabel carries the project slug.
	SlugLabel = "den.slug"

	// VariantLabel carries the assistant variant.
	VariantLabel = "den.variant"

	// SourceLabel carries the raw source the identity was resolved from.
	SourceLabel = "den.source"

	// BasePortLabel carries the base port the port set was derived from.
	BasePortLabel = "den.base-port"

	// RoleLabel distinguishes sandbox containers from their sidecars.
	RoleLabel = "den.role"
)

// RoleLabel values.
const (
	RoleSandbox   = "sandbox"
	RoleAPILogger = "api-logger"
)

// managedFilter is the CLI filter selecting den-managed resources.
const managedFilter = "label=" + ManagedLabel + "=true"
