package api

import (
	"fmt"
	"log"
	"net"

	"github.com/coreos/go-systemd/v22/activation"
)

// Listen returns the first socket handed over by the host environment through
// LISTEN_FDS (systemd socket activation, systemfd), or binds addr when none
// was passed. Inherited sockets let a restarted process keep accepting on the
// same port without a gap.
func Listen(addr string) (net.Listener, error) {
	inherited, err := activation.Listeners()
	if err != nil {
		return nil, fmt.Errorf("failed to read inherited sockets: %w", err)
	}

	for _, ln := range inherited {
		if ln != nil {
			log.Printf("[INFO] Using inherited socket %s", ln.Addr())
			return ln, nil
		}
	}

	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return nil, fmt.Errorf("failed to bind %s: %w", addr, err)
	}
	return ln, nil
}
