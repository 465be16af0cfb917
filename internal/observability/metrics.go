package observability

import (
	"strconv"
	"sync"
	"time"
)

// Metrics provides basic in-memory counters.
type Metrics struct {
	mu             sync.Mutex
	requestCount   map[string]int64
	requestLatency map[string]time.Duration
	errorCount     map[string]int64
	intentCount    map[string]int64
	lifecycleCount map[string]int64
	deliveryCount  map[string]int64
}

// Snapshot is a point-in-time copy of every counter.
type Snapshot struct {
	Requests         map[string]int64 `json:"requests"`
	RequestLatencyMs map[string]int64 `json:"request_latency_ms_total"`
	Errors           map[string]int64 `json:"errors"`
	Intents          map[string]int64 `json:"intents"`
	LifecycleEvents  map[string]int64 `json:"lifecycle_events"`
	Deliveries       map[string]int64 `json:"deliveries"`
}

// NewMetrics initializes metrics storage.
func NewMetrics() *Metrics {
	return &Metrics{
		requestCount:   make(map[string]int64),
		requestLatency: make(map[string]time.Duration),
		errorCount:     make(map[string]int64),
		intentCount:    make(map[string]int64),
		lifecycleCount: make(map[string]int64),
		deliveryCount:  make(map[string]int64),
	}
}

// RecordRequest increments counters for requests.
func (m *Metrics) RecordRequest(path, method string, status int, duration time.Duration) {
	if m == nil {
		return
	}
	key := pathKey(path, method, status)
	m.mu.Lock()
	defer m.mu.Unlock()
	m.requestCount[key]++
	m.requestLatency[key] += duration
}

// RecordError increments error counters.
func (m *Metrics) RecordError(path, method, code string) {
	if m == nil {
		return
	}
	key := path + "|" + method + "|" + code
	m.mu.Lock()
	defer m.mu.Unlock()
	m.errorCount[key]++
}

// RecordIntent counts classified inbound messages.
func (m *Metrics) RecordIntent(intent string) {
	m.incr(func() map[string]int64 { return m.intentCount }, intent)
}

// RecordLifecycle counts shift request transitions by event type.
func (m *Metrics) RecordLifecycle(eventType string) {
	m.incr(func() map[string]int64 { return m.lifecycleCount }, eventType)
}

// RecordDelivery counts outbound sends by outcome.
func (m *Metrics) RecordDelivery(ok bool) {
	outcome := "failed"
	if ok {
		outcome = "sent"
	}
	m.incr(func() map[string]int64 { return m.deliveryCount }, outcome)
}

// Snapshot copies the counters.
func (m *Metrics) Snapshot() Snapshot {
	if m == nil {
		return Snapshot{}
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	latency := make(map[string]int64, len(m.requestLatency))
	for k, v := range m.requestLatency {
		latency[k] = v.Milliseconds()
	}
	return Snapshot{
		Requests:         copyCounts(m.requestCount),
		RequestLatencyMs: latency,
		Errors:           copyCounts(m.errorCount),
		Intents:          copyCounts(m.intentCount),
		LifecycleEvents:  copyCounts(m.lifecycleCount),
		Deliveries:       copyCounts(m.deliveryCount),
	}
}

func (m *Metrics) incr(counter func() map[string]int64, key string) {
	if m == nil {
		return
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	counter()[key]++
}

func copyCounts(src map[string]int64) map[string]int64 {
	dst := make(map[string]int64, len(src))
	for k, v := range src {
		dst[k] = v
	}
	return dst
}

func pathKey(path, method string, status int) string {
	return path + "|" + method + "|" + strconv.Itoa(status)
}
