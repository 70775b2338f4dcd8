package metrics

import "time"

// Recorder receives discovery and submission events. Label keys used by the
// library are "provider", "chain" and "outcome".
type Recorder interface {
	IncCounter(name string, labels map[string]string)
	ObserveLatency(name string, duration time.Duration, labels map[string]string)
}
