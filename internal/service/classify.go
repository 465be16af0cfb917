package service

import (
	"strings"

	"github.com/spec-kit/shift-coverage-service/internal/domain"
)

// keywords are checked in order; the first contained keyword wins, so a text
// mentioning both "sick" and "accept" is a sick report.
var keywords = []struct {
	word   string
	intent domain.Intent
}{
	{"sick", domain.IntentSick},
	{"accept", domain.IntentAccept},
	{"decline", domain.IntentDecline},
}

// ClassifyInboundText maps free text to an intent by case-insensitive substring match.
func ClassifyInboundText(text string) domain.Intent {
	lower := strings.ToLower(strings.TrimSpace(text))
	for _, k := range keywords {
		if strings.Contains(lower, k.word) {
			return k.intent
		}
	}
	return domain.IntentUnknown
}
