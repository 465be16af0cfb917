package observability

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestMetrics_Snapshot(t *testing.T) {
	m := NewMetrics()
	m.RecordRequest("/whatsapp-webhook", "POST", 200, 15*time.Millisecond)
	m.RecordRequest("/whatsapp-webhook", "POST", 200, 5*time.Millisecond)
	m.RecordError("/whatsapp-webhook", "POST", "VALIDATION_FAILED")
	m.RecordIntent("SICK")
	m.RecordLifecycle("shift_reported")
	m.RecordDelivery(true)
	m.RecordDelivery(false)
	m.RecordDelivery(false)

	s := m.Snapshot()
	assert.Equal(t, int64(2), s.Requests["/whatsapp-webhook|POST|200"])
	assert.Equal(t, int64(20), s.RequestLatencyMs["/whatsapp-webhook|POST|200"])
	assert.Equal(t, int64(1), s.Errors["/whatsapp-webhook|POST|VALIDATION_FAILED"])
	assert.Equal(t, int64(1), s.Intents["SICK"])
	assert.Equal(t, int64(1), s.LifecycleEvents["shift_reported"])
	assert.Equal(t, int64(1), s.Deliveries["sent"])
	assert.Equal(t, int64(2), s.Deliveries["failed"])

	// the snapshot is detached from live counters
	m.RecordIntent("SICK")
	assert.Equal(t, int64(1), s.Intents["SICK"])
}

func TestMetrics_NilIsNoop(t *testing.T) {
	var m *Metrics
	assert.NotPanics(t, func() {
		m.RecordRequest("/", "GET", 200, time.Millisecond)
		m.RecordError("/", "GET", "X")
		m.RecordIntent("ACCEPT")
		m.RecordLifecycle("shift_accepted")
		m.RecordDelivery(true)
		_ = m.Snapshot()
	})
}

func TestMetrics_Concurrent(t *testing.T) {
	m := NewMetrics()
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			m.RecordIntent("DECLINE")
		}()
	}
	wg.Wait()
	assert.Equal(t, int64(50), m.Snapshot().Intents["DECLINE"])
}
