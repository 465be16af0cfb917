package domain

import "strings"

var channelPrefixes = []string{"whatsapp:", "sms:", "tel:"}

// NormalizeIdentity reduces a sender address such as "whatsapp:+1 (555) 010-2000"
// to the bare number used as a state key. It returns "" when nothing is left.
func NormalizeIdentity(raw string) string {
	id := strings.TrimSpace(raw)
	lower := strings.ToLower(id)
	for _, prefix := range channelPrefixes {
		if strings.HasPrefix(lower, prefix) {
			id = id[len(prefix):]
			break
		}
	}

	var b strings.Builder
	b.Grow(len(id))
	for _, r := range id {
		switch r {
		case ' ', '\t', '-', '.', '(', ')':
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}
