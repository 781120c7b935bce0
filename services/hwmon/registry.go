package hwmon

import (
	"fmt"
	"sort"
	"sync"
	"time"

	"tinygo.org/x/drivers"

	"lm77-go/drivers/lm77"
	"lm77-go/x/timex"
)

// Options are passed to a driver when probing an address.
type Options struct {
	RefreshWindow time.Duration
	FaultQueue    bool
	Clock         timex.Clock
}

// Client is one attached chip.
type Client interface {
	Address() uint16
	Snapshot() (lm77.Snapshot, error)
	ApplySetpoints(c lm77.Changes) error
	Read(ep lm77.Endpoint) ([]int32, error)
	Write(ep lm77.Endpoint, vals ...int32) error
}

// Driver is the capability set a chip family registers with the service.
// Probe must not leave state behind when it fails.
type Driver interface {
	Probe(bus drivers.I2C, addr uint16, opts Options) (Client, error)
	Attach(c Client) error
	Detach(c Client) error
}

var (
	mu         sync.RWMutex
	registered = map[string]Driver{}
)

func RegisterDriver(name string, d Driver) {
	mu.Lock()
	defer mu.Unlock()
	if _, exists := registered[name]; exists {
		panic(fmt.Sprintf("driver already registered for %q", name))
	}
	registered[name] = d
}

func LookupDriver(name string) (Driver, bool) {
	mu.RLock()
	defer mu.RUnlock()
	d, ok := registered[name]
	return d, ok
}

// clientTable holds attached clients keyed by bus address.
type clientTable struct {
	mu      sync.RWMutex
	clients map[uint16]Client
}

func (t *clientTable) get(addr uint16) (Client, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	c, ok := t.clients[addr]
	return c, ok
}

func (t *clientTable) put(addr uint16, c Client) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.clients[addr] = c
}

func (t *clientTable) take(addr uint16) (Client, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	c, ok := t.clients[addr]
	delete(t.clients, addr)
	return c, ok
}

func (t *clientTable) addrs() []uint16 {
	t.mu.RLock()
	defer t.mu.RUnlock()
	out := make([]uint16, 0, len(t.clients))
	for a := range t.clients {
		out = append(out, a)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}
