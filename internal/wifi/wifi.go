// Package wifi gates startup on a usable network uplink. Association itself
// is owned by the OS (wpa_supplicant / pi-helper); this package only answers
// "is the uplink usable yet" within a bounded wait. The monitor fails closed
// when it is not.
package wifi

import (
	"fmt"
	"log"
	"net"
	"os"
	"time"
)

// DefaultProbeAddr is dialed to confirm the uplink carries traffic. The
// notification endpoint host doubles as the probe target since that is the
// only outbound dependency.
const DefaultProbeAddr = "api.brevo.com:443"

// envNetworkStatus is written by pi-helper to /run/pi-helper.env.
const envNetworkStatus = "NETWORK_STATUS"

const (
	pollInterval = 500 * time.Millisecond
	dialTimeout  = 2 * time.Second
)

// Connector reports when the network uplink is ready.
type Connector interface {
	// EnsureConnected blocks until the uplink is usable or the timeout
	// passes. A non-nil error means the monitor must not start.
	EnsureConnected(timeout time.Duration) error
}

// NetworkConnector checks pi-helper's reported status first and falls back
// to a TCP probe of the notification endpoint.
type NetworkConnector struct {
	// SSID is a label for logs only; association is not done here.
	SSID string

	// ProbeAddr is the host:port dialed to verify connectivity.
	ProbeAddr string

	getenv func(string) string
	dial   func(network, addr string, timeout time.Duration) (net.Conn, error)
	sleep  func(time.Duration)
	now    func() time.Time
}

// New creates a NetworkConnector probing the default endpoint.
func New(ssid string) *NetworkConnector {
	return &NetworkConnector{
		SSID:      ssid,
		ProbeAddr: DefaultProbeAddr,
		getenv:    os.Getenv,
		dial:      net.DialTimeout,
		sleep:     time.Sleep,
		now:       time.Now,
	}
}

// EnsureConnected polls every 500 ms until the uplink is usable or the
// timeout passes.
func (c *NetworkConnector) EnsureConnected(timeout time.Duration) error {
	deadline := c.now().Add(timeout)
	for {
		if c.usable() {
			log.Printf("wifi: network ready (ssid=%q)", c.SSID)
			return nil
		}
		if !c.now().Before(deadline) {
			return fmt.Errorf("network not ready after %v", timeout)
		}
		c.sleep(pollInterval)
	}
}

func (c *NetworkConnector) usable() bool {
	if c.getenv(envNetworkStatus) == "connected" {
		return true
	}
	conn, err := c.dial("tcp", c.ProbeAddr, dialTimeout)
	if err != nil {
		return false
	}
	conn.Close()
	return true
}

// FakeConnector is a test double for Connector.
type FakeConnector struct {
	// Err, if set, is returned by EnsureConnected.
	Err error

	// Calls counts EnsureConnected invocations.
	Calls int
}

// EnsureConnected returns the scripted result.
func (f *FakeConnector) EnsureConnected(timeout time.Duration) error {
	f.Calls++
	return f.Err
}
