package metrics

import "time"

type NoopRecorder struct{}

func (NoopRecorder) IncCounter(string, map[string]string)                    {}
func (NoopRecorder) ObserveLatency(string, time.Duration, map[string]string) {}

// OrNoop returns r, or a NoopRecorder when r is nil.
func OrNoop(r Recorder) Recorder {
	if r == nil {
		return NoopRecorder{}
	}
	return r
}

// ObserveSince records the time elapsed since start under name.
func ObserveSince(r Recorder, name string, start time.Time, labels map[string]string) {
	r.ObserveLatency(name, time.Since(start), labels)
}
