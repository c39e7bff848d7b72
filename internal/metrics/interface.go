package metrics

// Metrics defines the interface for collecting application metrics.
// This decouples the application from the specific metrics implementation (e.g., Prometheus).
type Metrics interface {
	IncResolution(outcome string)
	IncMatcherFailure()
	ObserveResolutionDuration(duration float64)
	IncSlackNotifSent()
	IncSlackNotifFailed()
	SetStartupTime(duration float64)
}

// MetricsStore persists coarse counters in the database so totals survive
// restarts (the Prometheus registry does not).
type MetricsStore interface {
	Increment(key string)
	GetAll() (map[string]int, error)
}
