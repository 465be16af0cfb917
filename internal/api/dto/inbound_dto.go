package dto

import "github.com/go-playground/validator/v10"

var validate = validator.New()

// InboundMessage is the webhook payload posted by the messaging provider,
// either form-encoded or JSON.
type InboundMessage struct {
	From string `json:"From" form:"From" validate:"required"`
	Body string `json:"Body" form:"Body"`
}

// Validate checks the required fields.
func (m InboundMessage) Validate() error {
	return validate.Struct(m)
}
