package service

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/spec-kit/shift-coverage-service/internal/config"
	"github.com/spec-kit/shift-coverage-service/internal/domain"
	"github.com/spec-kit/shift-coverage-service/internal/events"
	"github.com/spec-kit/shift-coverage-service/internal/observability"
)

const (
	reporterAcceptedTemplate = "Good news: %s will cover your shift."
	reporterDeclinedTemplate = "%s cannot cover your shift. Please contact your manager."
)

// NotificationScheduler queues outbound messages for later delivery.
type NotificationScheduler interface {
	Schedule(n domain.Notification)
}

// EscalationHook is called when a responder declines a request.
type EscalationHook interface {
	Escalate(ctx context.Context, req domain.ShiftRequest) error
}

// LogEscalation only records that a declined request was not escalated.
type LogEscalation struct {
	logger *zap.Logger
}

// NewLogEscalation creates the default hook.
func NewLogEscalation(logger *zap.Logger) *LogEscalation {
	return &LogEscalation{logger: logger}
}

func (l *LogEscalation) Escalate(_ context.Context, req domain.ShiftRequest) error {
	l.logger.Warn("shift request declined, no escalation configured",
		zap.String("request_id", req.ID),
		zap.String("reporter", req.ReportedBy),
		zap.String("responder", req.Responder))
	return nil
}

// NotificationService reacts to shift request lifecycle events.
type NotificationService struct {
	dispatcher events.Dispatcher
	scheduler  NotificationScheduler
	escalation EscalationHook
	logger     *zap.Logger
	metrics    *observability.Metrics
	cfg        config.CoverageConfig
}

// NewNotificationService creates the service. A nil escalation hook falls back
// to LogEscalation.
func NewNotificationService(dispatcher events.Dispatcher, scheduler NotificationScheduler, escalation EscalationHook, logger *zap.Logger, metrics *observability.Metrics, cfg config.CoverageConfig) *NotificationService {
	if escalation == nil {
		escalation = NewLogEscalation(logger)
	}
	return &NotificationService{
		dispatcher: dispatcher,
		scheduler:  scheduler,
		escalation: escalation,
		logger:     logger,
		metrics:    metrics,
		cfg:        cfg,
	}
}

// RegisterHandlers subscribes to events.
func (n *NotificationService) RegisterHandlers() {
	if n.dispatcher == nil {
		return
	}
	n.dispatcher.Subscribe(events.EventShiftReported, n.handleShiftReported)
	n.dispatcher.Subscribe(events.EventShiftAccepted, n.handleShiftAccepted)
	n.dispatcher.Subscribe(events.EventShiftDeclined, n.handleShiftDeclined)
}

func (n *NotificationService) handleShiftReported(_ context.Context, event events.Event) error {
	n.observe(event)
	return nil
}

func (n *NotificationService) handleShiftAccepted(_ context.Context, event events.Event) error {
	n.observe(event)
	n.notifyReporter(event.Request, reporterAcceptedTemplate)
	return nil
}

func (n *NotificationService) handleShiftDeclined(ctx context.Context, event events.Event) error {
	n.observe(event)
	n.notifyReporter(event.Request, reporterDeclinedTemplate)
	if err := n.escalation.Escalate(ctx, event.Request); err != nil {
		return fmt.Errorf("escalate request %s: %w", event.RequestID, err)
	}
	return nil
}

func (n *NotificationService) observe(event events.Event) {
	n.metrics.RecordLifecycle(string(event.Type))
	n.logger.Info("shift request event",
		zap.String("event_id", event.ID),
		zap.String("event_type", string(event.Type)),
		zap.String("request_id", event.RequestID),
		zap.String("actor", event.Actor))
}

func (n *NotificationService) notifyReporter(req domain.ShiftRequest, template string) {
	if !n.cfg.NotifyReporterOnResolution || n.scheduler == nil || req.ReportedBy == "" {
		return
	}
	n.scheduler.Schedule(domain.Notification{
		To:   req.ReportedBy,
		Body: fmt.Sprintf(template, req.Responder),
	})
}
