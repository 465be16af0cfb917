package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/spec-kit/shift-coverage-service/internal/domain"
	"github.com/spec-kit/shift-coverage-service/internal/events"
	"github.com/spec-kit/shift-coverage-service/internal/repository"
)

// Reply texts.
const (
	MessageSickAcknowledged = "Got it! We will notify available employees for shift replacement."
	MessageNoBackup         = "Got it! Unfortunately no backup is available right now. Please contact your manager."
	MessageShiftAccepted    = "✅ You have been assigned this shift successfully."
	MessageShiftDeclined    = "❌ You have declined the shift request. Thanks for letting us know."
	MessageAlreadyResponded = "❌ You’ve already responded to this request. No further action is needed."
	MessageUnknownIntent    = "Thanks for your message. How can we assist you?"

	coverageRequestTemplate = "Hi! A colleague (%s) is out sick and their shift needs cover. Reply ACCEPT to take the shift or DECLINE to pass."
)

// Outcome says what a reply did to the responder's request.
type Outcome string

const (
	OutcomeAccepted Outcome = "ACCEPTED"
	OutcomeDeclined Outcome = "DECLINED"
	OutcomeNoAction Outcome = "NO_ACTION"
)

// Acknowledgement is returned to a reporter. Notification, when set, must be
// dispatched by the caller only after Message has been handed to the reporter.
type Acknowledgement struct {
	Message      string
	Request      *domain.ShiftRequest
	Notification *domain.Notification
}

// Result is returned to a responder.
type Result struct {
	Outcome Outcome
	Message string
	Request *domain.ShiftRequest
}

// Reply is the outcome of one inbound text.
type Reply struct {
	Intent        domain.Intent
	Message       string
	Notifications []domain.Notification
}

// ShiftRequestTracker applies the coverage-request state machine.
type ShiftRequestTracker struct {
	requests   repository.ShiftRequestRepository
	policy     ResponderPolicy
	dispatcher events.Dispatcher
	logger     *zap.Logger
	locks      *identityLocks
	now        func() time.Time
}

// TrackerDependencies bundles collaborators.
type TrackerDependencies struct {
	Requests   repository.ShiftRequestRepository
	Policy     ResponderPolicy
	Dispatcher events.Dispatcher
	Logger     *zap.Logger
}

// NewShiftRequestTracker creates the tracker. Dispatcher and Logger may be nil.
func NewShiftRequestTracker(deps TrackerDependencies) *ShiftRequestTracker {
	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ShiftRequestTracker{
		requests:   deps.Requests,
		policy:     deps.Policy,
		dispatcher: deps.Dispatcher,
		logger:     logger,
		locks:      newIdentityLocks(),
		now:        time.Now,
	}
}

// Handle classifies text from identity and routes it.
func (t *ShiftRequestTracker) Handle(ctx context.Context, identity, text string) (*Reply, error) {
	intent := ClassifyInboundText(text)
	reply := &Reply{Intent: intent}

	switch intent {
	case domain.IntentSick:
		ack, err := t.ReportSick(ctx, identity)
		if err != nil {
			return nil, err
		}
		reply.Message = ack.Message
		if ack.Notification != nil {
			reply.Notifications = append(reply.Notifications, *ack.Notification)
		}
	case domain.IntentAccept, domain.IntentDecline:
		decision := domain.DecisionAccept
		if intent == domain.IntentDecline {
			decision = domain.DecisionDecline
		}
		res, err := t.Respond(ctx, identity, decision)
		if err != nil {
			return nil, err
		}
		reply.Message = res.Message
	default:
		reply.Message = MessageUnknownIntent
	}
	return reply, nil
}

// ReportSick arms a Pending request for the responder chosen for reporter,
// replacing whatever record that responder had.
func (t *ShiftRequestTracker) ReportSick(ctx context.Context, reporter string) (*Acknowledgement, error) {
	responder, ok := t.policy.Select(ctx, reporter)
	if !ok {
		t.logger.Warn("no responder available", zap.String("reporter", reporter))
		return &Acknowledgement{Message: MessageNoBackup}, nil
	}

	unlock := t.locks.lock(responder)
	defer unlock()

	now := t.now().UTC()
	req := &domain.ShiftRequest{
		ID:         uuid.NewString(),
		Responder:  responder,
		Status:     domain.ShiftRequestStatusPending,
		ReportedBy: reporter,
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	if prev, err := t.requests.Get(ctx, responder); err == nil && prev.IsPending() {
		t.logger.Info("replacing pending shift request",
			zap.String("responder", responder),
			zap.String("previous_request_id", prev.ID),
			zap.String("previous_reporter", prev.ReportedBy))
	} else if err != nil && !errors.Is(err, repository.ErrNotFound) {
		return nil, fmt.Errorf("load shift request for %s: %w", responder, err)
	}

	if err := t.requests.Save(ctx, req); err != nil {
		return nil, fmt.Errorf("save shift request for %s: %w", responder, err)
	}
	t.logger.Info("shift request pending",
		zap.String("request_id", req.ID),
		zap.String("reporter", reporter),
		zap.String("responder", responder))
	t.publish(ctx, events.EventShiftReported, reporter, req)

	return &Acknowledgement{
		Message: MessageSickAcknowledged,
		Request: req,
		Notification: &domain.Notification{
			To:   responder,
			Body: fmt.Sprintf(coverageRequestTemplate, reporter),
		},
	}, nil
}

// Respond resolves the Pending request of identity. Without one it reports
// that there is nothing to answer and changes nothing.
func (t *ShiftRequestTracker) Respond(ctx context.Context, identity string, decision domain.Decision) (*Result, error) {
	unlock := t.locks.lock(identity)
	defer unlock()

	req, err := t.requests.Get(ctx, identity)
	if err != nil && !errors.Is(err, repository.ErrNotFound) {
		return nil, fmt.Errorf("load shift request for %s: %w", identity, err)
	}
	if !req.IsPending() {
		t.logger.Info("reply without pending request",
			zap.String("identity", identity),
			zap.String("decision", string(decision)))
		return &Result{Outcome: OutcomeNoAction, Message: MessageAlreadyResponded, Request: req}, nil
	}

	now := t.now().UTC()
	req.Status = decision.Status()
	req.UpdatedAt = now
	req.RespondedAt = &now
	if err := t.requests.Save(ctx, req); err != nil {
		return nil, fmt.Errorf("save shift request for %s: %w", identity, err)
	}
	t.logger.Info("shift request resolved",
		zap.String("request_id", req.ID),
		zap.String("responder", identity),
		zap.String("status", string(req.Status)))

	if decision == domain.DecisionAccept {
		t.publish(ctx, events.EventShiftAccepted, identity, req)
		return &Result{Outcome: OutcomeAccepted, Message: MessageShiftAccepted, Request: req}, nil
	}
	t.publish(ctx, events.EventShiftDeclined, identity, req)
	return &Result{Outcome: OutcomeDeclined, Message: MessageShiftDeclined, Request: req}, nil
}

func (t *ShiftRequestTracker) publish(ctx context.Context, eventType events.EventType, actor string, req *domain.ShiftRequest) {
	if t.dispatcher == nil {
		return
	}
	err := t.dispatcher.Publish(ctx, events.Event{
		ID:        uuid.NewString(),
		Type:      eventType,
		RequestID: req.ID,
		Actor:     actor,
		Timestamp: t.now().UTC(),
		Request:   *req,
	})
	if err != nil {
		t.logger.Warn("lifecycle event handler failed", zap.String("event_type", string(eventType)), zap.Error(err))
	}
}
