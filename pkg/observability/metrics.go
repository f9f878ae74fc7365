package observability

import "sync"

// Metrics records operation latency and counts keyed by metric and label
type Metrics interface {
	StartTimer(metric, label string) Timer
	Increment(metric, label string)
}

// Timer interface
type Timer interface {
	Stop()
}

// NopMetrics discards everything
type NopMetrics struct{}

func (NopMetrics) StartTimer(string, string) Timer { return nopTimer{} }
func (NopMetrics) Increment(string, string)        {}

type nopTimer struct{}

func (nopTimer) Stop() {}

// MultiMetrics fans out to several backends
type MultiMetrics []Metrics

func (m MultiMetrics) StartTimer(metric, label string) Timer {
	timers := make(multiTimer, 0, len(m))
	for _, backend := range m {
		timers = append(timers, backend.StartTimer(metric, label))
	}
	return timers
}

func (m MultiMetrics) Increment(metric, label string) {
	for _, backend := range m {
		backend.Increment(metric, label)
	}
}

type multiTimer []Timer

func (t multiTimer) Stop() {
	for _, timer := range t {
		timer.Stop()
	}
}

// onceTimer guards against a deferred Stop running after an explicit one
type onceTimer struct {
	once sync.Once
	stop func()
}

func (t *onceTimer) Stop() {
	t.once.Do(t.stop)
}
