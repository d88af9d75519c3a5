package identity

import "hash/fnv"

// Service names a logical per-project network service.
type Service string

const (
	ServiceCodeServer Service = "code-server"
	ServiceAPILogger  Service = "api-logger"
	ServiceUpload     Service = "upload"
	ServiceDocs       Service = "docs"
)

// serviceDeltas is the fixed port delta registry. Deltas are distinct, so
// one project's services never collide with each other; they are an
// arbitrary but frozen assignment, never computed.
var serviceDeltas = map[Service]int{
	ServiceCodeServer: 0,
	ServiceAPILogger:  357,
	ServiceUpload:     445,
	ServiceDocs:       557,
}

// Services returns all known services in display order.
func Services() []Service {
	return []Service{ServiceCodeServer, ServiceAPILogger, ServiceUpload, ServiceDocs}
}

// PortOffset maps a slug onto one of 100 buckets spaced 10 ports apart,
// spreading concurrently running projects across a 1000-port window.
// FNV-1a is stable across processes and machines; two distinct slugs may
// share a bucket, which the operator resolves with an explicit base port.
func PortOffset(slug string) int {
	h := fnv.New32a()
	h.Write([]byte(slug))
	return int(h.Sum32()%100) * 10
}

// Port returns the absolute port for one service.
func (id Identity) Port(svc Service) int {
	return id.BasePort + serviceDeltas[svc] + PortOffset(id.Slug)
}

// Ports returns the full service-to-port mapping.
func (id Identity) Ports() map[Service]int {
	ports := make(map[Service]int, len(serviceDeltas))
	for svc := range serviceDeltas {
		ports[svc] = id.Port(svc)
	}
	return ports
}
