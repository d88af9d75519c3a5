package port

import (
	"fmt"
	"net"
	"sort"

	"github.com/denlabs/den/internal/identity"
)

// Available reports whether a TCP port can currently be bound on the
// loopback interface. A false result usually means another process (or
// another sandbox) already listens there.
func Available(port int) bool {
	l, err := net.Listen("tcp", fmt.Sprintf("127.0.0.1:%d", port))
	if err != nil {
		return false
	}
	l.Close()
	return true
}

// Busy returns the subset of ports that cannot be bound, in ascending
// order.
func Busy(ports []int) []int {
	var busy []int
	for _, p := range ports {
		if !Available(p) {
			busy = append(busy, p)
		}
	}
	sort.Ints(busy)
	return busy
}

// BusyServices probes every service port of an identity and returns the
// services whose host port is already taken. The result is ordered by
// port number so output is stable.
func BusyServices(id identity.Identity) []identity.Service {
	type probe struct {
		svc  identity.Service
		port int
	}
	services := identity.Services()
	probes := make([]probe, 0, len(services))
	for _, svc := range services {
		probes = append(probes, probe{svc, id.Port(svc)})
	}
	sort.Slice(probes, func(i, j int) bool { return probes[i].port < probes[j].port })

	var busy []identity.Service
	for _, p := range probes {
		if !Available(p.port) {
			busy = append(busy, p.svc)
		}
	}
	return busy
}
