// Package port probes host port availability.
//
// den derives every host port from the project identity, so there is no
// allocation to do. What can still go wrong is a collision: another
// process, or a sandbox from a different base port, may already hold a
// derived port. This package answers that one question:
//
//	if !port.Available(p) {
//		// warn before the container runtime fails to publish
//	}
//
// Probes bind to the loopback interface because that is where sandbox
// ports are published. A probe is a point-in-time check, not a
// reservation; the caller may still lose the port to a race.
package port
