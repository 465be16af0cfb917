package worker

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/spec-kit/shift-coverage-service/internal/domain"
	"github.com/spec-kit/shift-coverage-service/internal/messaging"
	"github.com/spec-kit/shift-coverage-service/internal/observability"
)

const sendTimeout = 15 * time.Second

// NotificationWorker delivers notifications after a fixed delay without holding
// up the request that produced them. Delivery is best effort: a failed send is
// logged and dropped.
type NotificationWorker struct {
	sender  messaging.Sender
	delay   time.Duration
	logger  *zap.Logger
	metrics *observability.Metrics

	mu      sync.Mutex
	stopped bool
	flush   chan struct{}
	wg      sync.WaitGroup
}

// NewNotificationWorker creates a worker. A zero delay sends as soon as a
// goroutine is scheduled.
func NewNotificationWorker(sender messaging.Sender, delay time.Duration, logger *zap.Logger, metrics *observability.Metrics) *NotificationWorker {
	return &NotificationWorker{
		sender:  sender,
		delay:   delay,
		logger:  logger,
		metrics: metrics,
		flush:   make(chan struct{}),
	}
}

// Schedule queues n for delivery after the configured delay and returns at once.
// After Stop, notifications are sent synchronously so none are lost on shutdown.
func (w *NotificationWorker) Schedule(n domain.Notification) {
	w.ScheduleAfter(n, w.delay)
}

// ScheduleAfter is Schedule with an explicit delay.
func (w *NotificationWorker) ScheduleAfter(n domain.Notification, delay time.Duration) {
	w.mu.Lock()
	if w.stopped {
		w.mu.Unlock()
		w.deliver(n)
		return
	}
	w.wg.Add(1)
	w.mu.Unlock()

	go func() {
		defer w.wg.Done()
		if delay > 0 {
			timer := time.NewTimer(delay)
			select {
			case <-timer.C:
			case <-w.flush:
				timer.Stop()
			}
		}
		w.deliver(n)
	}()
}

// Stop releases every waiting notification for immediate delivery and waits
// until all sends have finished or ctx expires.
func (w *NotificationWorker) Stop(ctx context.Context) error {
	w.mu.Lock()
	if !w.stopped {
		w.stopped = true
		close(w.flush)
	}
	w.mu.Unlock()

	done := make(chan struct{})
	go func() {
		w.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (w *NotificationWorker) deliver(n domain.Notification) {
	ctx, cancel := context.WithTimeout(context.Background(), sendTimeout)
	defer cancel()

	if err := w.sender.Send(ctx, n.To, n.Body); err != nil {
		w.metrics.RecordDelivery(false)
		w.logger.Error("notification delivery failed", zap.String("to", n.To), zap.Error(err))
		return
	}
	w.metrics.RecordDelivery(true)
	w.logger.Info("notification delivered", zap.String("to", n.To))
}
