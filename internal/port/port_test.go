package port

import (
	"net"
	"strconv"
	"testing"

	"github.com/denlabs/den/internal/identity"
)

// hold binds a loopback port for the duration of the test and returns it.
func hold(t *testing.T) (net.Listener, int) {
	t.Helper()

	l, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("listen: %v", err)
	}
	t.Cleanup(func() { l.Close() })

	return l, l.Addr().(*net.TCPAddr).Port
}

func TestAvailable_HeldPort(t *testing.T) {
	_, p := hold(t)

	if Available(p) {
		t.Errorf("Available(%d) = true for a held port", p)
	}
}

func TestAvailable_FreedPort(t *testing.T) {
	l, p := hold(t)
	l.Close()

	if !Available(p) {
		t.Errorf("Available(%d) = false after the listener closed", p)
	}
}

func TestBusy(t *testing.T) {
	_, held := hold(t)

	free, freed := hold(t)
	free.Close()

	busy := Busy([]int{freed, held})
	if len(busy) != 1 || busy[0] != held {
		t.Errorf("Busy = %v, want [%d]", busy, held)
	}
}

func TestBusy_AllFree(t *testing.T) {
	l, p := hold(t)
	l.Close()

	if busy := Busy([]int{p}); len(busy) != 0 {
		t.Errorf("Busy = %v, want none", busy)
	}
}

func TestBusyServices(t *testing.T) {
	// Base the identity high enough that its derived ports are unlikely
	// to collide with anything on the test host.
	id := identity.Resolve("busy-services-probe", identity.VariantClaude, 42000)

	held, err := net.Listen("tcp", "127.0.0.1:"+strconv.Itoa(id.Port(identity.ServiceUpload)))
	if err != nil {
		t.Skipf("cannot bind derived port: %v", err)
	}
	defer held.Close()

	busy := BusyServices(id)

	found := false
	for _, svc := range busy {
		if svc == identity.ServiceUpload {
			found = true
		}
	}
	if !found {
		t.Errorf("BusyServices = %v, want it to include %s", busy, identity.ServiceUpload)
	}
}
