package dto

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestInboundMessage_Validate(t *testing.T) {
	assert.NoError(t, InboundMessage{From: "whatsapp:+15550100", Body: "sick"}.Validate())
	assert.NoError(t, InboundMessage{From: "+15550100"}.Validate())
	assert.Error(t, InboundMessage{Body: "sick"}.Validate())
}
