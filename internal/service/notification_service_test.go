package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/spec-kit/shift-coverage-service/internal/config"
	"github.com/spec-kit/shift-coverage-service/internal/domain"
	"github.com/spec-kit/shift-coverage-service/internal/events"
	"github.com/spec-kit/shift-coverage-service/internal/observability"
)

type recordingScheduler struct {
	scheduled []domain.Notification
}

func (s *recordingScheduler) Schedule(n domain.Notification) {
	s.scheduled = append(s.scheduled, n)
}

type recordingEscalation struct {
	requests []domain.ShiftRequest
	err      error
}

func (e *recordingEscalation) Escalate(_ context.Context, req domain.ShiftRequest) error {
	e.requests = append(e.requests, req)
	return e.err
}

func resolvedEvent(eventType events.EventType) events.Event {
	return events.Event{
		ID:        "evt-1",
		Type:      eventType,
		RequestID: "req-1",
		Actor:     responder,
		Request: domain.ShiftRequest{
			ID:         "req-1",
			Responder:  responder,
			ReportedBy: reporter,
		},
	}
}

func TestNotificationService_RecordsLifecycleMetrics(t *testing.T) {
	dispatcher := events.NewInMemoryDispatcher()
	metrics := observability.NewMetrics()
	svc := NewNotificationService(dispatcher, &recordingScheduler{}, &recordingEscalation{}, zap.NewNop(), metrics, config.CoverageConfig{})
	svc.RegisterHandlers()

	ctx := context.Background()
	require.NoError(t, dispatcher.Publish(ctx, resolvedEvent(events.EventShiftReported)))
	require.NoError(t, dispatcher.Publish(ctx, resolvedEvent(events.EventShiftAccepted)))

	snap := metrics.Snapshot()
	assert.Equal(t, int64(1), snap.LifecycleEvents[string(events.EventShiftReported)])
	assert.Equal(t, int64(1), snap.LifecycleEvents[string(events.EventShiftAccepted)])
}

func TestNotificationService_ReporterNotifiedOnlyWhenEnabled(t *testing.T) {
	ctx := context.Background()

	t.Run("disabled", func(t *testing.T) {
		dispatcher := events.NewInMemoryDispatcher()
		scheduler := &recordingScheduler{}
		NewNotificationService(dispatcher, scheduler, &recordingEscalation{}, zap.NewNop(), nil, config.CoverageConfig{}).RegisterHandlers()

		require.NoError(t, dispatcher.Publish(ctx, resolvedEvent(events.EventShiftAccepted)))
		assert.Empty(t, scheduler.scheduled)
	})

	t.Run("enabled", func(t *testing.T) {
		dispatcher := events.NewInMemoryDispatcher()
		scheduler := &recordingScheduler{}
		cfg := config.CoverageConfig{NotifyReporterOnResolution: true}
		NewNotificationService(dispatcher, scheduler, &recordingEscalation{}, zap.NewNop(), nil, cfg).RegisterHandlers()

		require.NoError(t, dispatcher.Publish(ctx, resolvedEvent(events.EventShiftAccepted)))
		require.NoError(t, dispatcher.Publish(ctx, resolvedEvent(events.EventShiftDeclined)))
		require.Len(t, scheduler.scheduled, 2)
		assert.Equal(t, reporter, scheduler.scheduled[0].To)
		assert.Contains(t, scheduler.scheduled[0].Body, "will cover")
		assert.Contains(t, scheduler.scheduled[1].Body, "cannot cover")
	})
}

func TestNotificationService_DeclineEscalates(t *testing.T) {
	dispatcher := events.NewInMemoryDispatcher()
	boom := errors.New("pager down")
	escalation := &recordingEscalation{err: boom}
	NewNotificationService(dispatcher, nil, escalation, zap.NewNop(), nil, config.CoverageConfig{}).RegisterHandlers()

	err := dispatcher.Publish(context.Background(), resolvedEvent(events.EventShiftDeclined))
	assert.ErrorIs(t, err, boom)
	require.Len(t, escalation.requests, 1)
	assert.Equal(t, "req-1", escalation.requests[0].ID)

	require.NoError(t, dispatcher.Publish(context.Background(), resolvedEvent(events.EventShiftAccepted)))
	assert.Len(t, escalation.requests, 1)
}

func TestNotificationService_DefaultEscalationLogs(t *testing.T) {
	dispatcher := events.NewInMemoryDispatcher()
	NewNotificationService(dispatcher, nil, nil, zap.NewNop(), nil, config.CoverageConfig{}).RegisterHandlers()

	assert.NoError(t, dispatcher.Publish(context.Background(), resolvedEvent(events.EventShiftDeclined)))
}
