package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	mu         sync.Mutex
	registered bool
	pending    []prometheus.Collector
)

// register queues collectors declared in the package's init functions.
func register(cs ...prometheus.Collector) {
	mu.Lock()
	defer mu.Unlock()
	if registered {
		prometheus.MustRegister(cs...)
		return
	}
	pending = append(pending, cs...)
}

// MustRegister registers every queued collector with the default registry.
// Idempotent; safe to call from multiple binaries.
func MustRegister() {
	mu.Lock()
	defer mu.Unlock()
	if registered {
		return
	}
	prometheus.MustRegister(pending...)
	pending = nil
	registered = true
}
