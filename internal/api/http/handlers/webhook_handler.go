package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/twilio/twilio-go/twiml"

	"github.com/spec-kit/shift-coverage-service/internal/api/dto"
	"github.com/spec-kit/shift-coverage-service/internal/domain"
	"github.com/spec-kit/shift-coverage-service/internal/observability"
	"github.com/spec-kit/shift-coverage-service/internal/service"
	apperrors "github.com/spec-kit/shift-coverage-service/pkg/util"
)

// WebhookHandler receives inbound texts from the messaging provider.
type WebhookHandler struct {
	tracker   *service.ShiftRequestTracker
	scheduler service.NotificationScheduler
	metrics   *observability.Metrics
}

// NewWebhookHandler constructs handler.
func NewWebhookHandler(tracker *service.ShiftRequestTracker, scheduler service.NotificationScheduler, metrics *observability.Metrics) *WebhookHandler {
	return &WebhookHandler{tracker: tracker, scheduler: scheduler, metrics: metrics}
}

// Receive handles POST on the webhook path. The reply goes back as TwiML; any
// coverage request is scheduled only once that reply has been written.
func (h *WebhookHandler) Receive(c *fiber.Ctx) error {
	var msg dto.InboundMessage
	if err := c.BodyParser(&msg); err != nil {
		return invalidRequest()
	}
	msg.From = domain.NormalizeIdentity(msg.From)
	if err := msg.Validate(); err != nil {
		return invalidRequest()
	}

	reply, err := h.tracker.Handle(c.UserContext(), msg.From, msg.Body)
	if err != nil {
		return apperrors.NewInternalError(err)
	}
	h.metrics.RecordIntent(string(reply.Intent))

	body, err := renderReply(reply.Message)
	if err != nil {
		return apperrors.NewInternalError(err)
	}
	c.Set(fiber.HeaderContentType, fiber.MIMEApplicationXML)
	if err := c.SendString(body); err != nil {
		return err
	}

	for _, n := range reply.Notifications {
		h.scheduler.Schedule(n)
	}
	return nil
}

func renderReply(message string) (string, error) {
	var verbs []twiml.Element
	if message != "" {
		verbs = append(verbs, &twiml.MessagingMessage{Body: message})
	}
	return twiml.Messages(verbs)
}

func invalidRequest() error {
	return apperrors.NewValidationError("Invalid request", map[string]any{"field": "From"})
}
