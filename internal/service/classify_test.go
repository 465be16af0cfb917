package service

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/spec-kit/shift-coverage-service/internal/domain"
)

func TestClassifyInboundText(t *testing.T) {
	tests := []struct {
		name     string
		text     string
		expected domain.Intent
	}{
		{name: "sick report", text: "I feel sick", expected: domain.IntentSick},
		{name: "sick wins over accept", text: "I am sick but I accept", expected: domain.IntentSick},
		{name: "sick wins over decline", text: "decline, I'm sick too", expected: domain.IntentSick},
		{name: "accept upper case", text: "ACCEPT", expected: domain.IntentAccept},
		{name: "accept wins over decline", text: "accept not decline", expected: domain.IntentAccept},
		{name: "accept as substring", text: "accepted!", expected: domain.IntentAccept},
		{name: "decline mixed case", text: "  DeClInE  ", expected: domain.IntentDecline},
		{name: "unknown", text: "hello there", expected: domain.IntentUnknown},
		{name: "empty", text: "", expected: domain.IntentUnknown},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, ClassifyInboundText(tt.text))
		})
	}
}
