package worker

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/spec-kit/shift-coverage-service/internal/domain"
	"github.com/spec-kit/shift-coverage-service/internal/observability"
)

type recordingSender struct {
	mu   sync.Mutex
	sent []domain.Notification
	err  error
}

func (s *recordingSender) Send(_ context.Context, to, body string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sent = append(s.sent, domain.Notification{To: to, Body: body})
	return s.err
}

func (s *recordingSender) count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sent)
}

func TestNotificationWorker_ScheduleDoesNotBlock(t *testing.T) {
	sender := &recordingSender{}
	w := NewNotificationWorker(sender, time.Hour, zap.NewNop(), nil)

	start := time.Now()
	w.Schedule(domain.Notification{To: "+1B", Body: "cover?"})
	assert.Less(t, time.Since(start), 100*time.Millisecond)
	assert.Equal(t, 0, sender.count())

	require.NoError(t, w.Stop(context.Background()))
	assert.Equal(t, 1, sender.count())
}

func TestNotificationWorker_DeliversAfterDelay(t *testing.T) {
	sender := &recordingSender{}
	metrics := observability.NewMetrics()
	w := NewNotificationWorker(sender, 20*time.Millisecond, zap.NewNop(), metrics)

	w.Schedule(domain.Notification{To: "+1B", Body: "cover?"})
	require.Eventually(t, func() bool { return sender.count() == 1 }, time.Second, 5*time.Millisecond)

	require.NoError(t, w.Stop(context.Background()))
	assert.Equal(t, "+1B", sender.sent[0].To)
	assert.Equal(t, "cover?", sender.sent[0].Body)
	assert.Equal(t, int64(1), metrics.Snapshot().Deliveries["sent"])
}

func TestNotificationWorker_FailureIsCountedAndDropped(t *testing.T) {
	sender := &recordingSender{err: errors.New("twilio down")}
	metrics := observability.NewMetrics()
	w := NewNotificationWorker(sender, 0, zap.NewNop(), metrics)

	w.Schedule(domain.Notification{To: "+1B", Body: "cover?"})
	require.NoError(t, w.Stop(context.Background()))

	assert.Equal(t, 1, sender.count())
	assert.Equal(t, int64(1), metrics.Snapshot().Deliveries["failed"])
}

func TestNotificationWorker_ScheduleAfterStopSendsInline(t *testing.T) {
	sender := &recordingSender{}
	w := NewNotificationWorker(sender, time.Hour, zap.NewNop(), nil)
	require.NoError(t, w.Stop(context.Background()))

	w.Schedule(domain.Notification{To: "+1A", Body: "late"})
	assert.Equal(t, 1, sender.count())

	// a second Stop is harmless
	require.NoError(t, w.Stop(context.Background()))
}

type blockingSender struct {
	release chan struct{}
}

func (s *blockingSender) Send(ctx context.Context, _, _ string) error {
	<-s.release
	return nil
}

func TestNotificationWorker_StopHonoursContext(t *testing.T) {
	sender := &blockingSender{release: make(chan struct{})}
	w := NewNotificationWorker(sender, 0, zap.NewNop(), nil)
	w.Schedule(domain.Notification{To: "+1B", Body: "cover?"})

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	assert.ErrorIs(t, w.Stop(ctx), context.DeadlineExceeded)

	close(sender.release)
	require.NoError(t, w.Stop(context.Background()))
}
