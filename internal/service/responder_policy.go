package service

import "context"

// ResponderPolicy picks who is asked to cover for a reporter.
type ResponderPolicy interface {
	Select(ctx context.Context, reporter string) (string, bool)
}

// PoolPolicy asks the first candidate in preference order who is not the reporter.
type PoolPolicy struct {
	candidates []string
}

// NewPoolPolicy copies the ordered candidate list.
func NewPoolPolicy(candidates []string) *PoolPolicy {
	return &PoolPolicy{candidates: append([]string(nil), candidates...)}
}

func (p *PoolPolicy) Select(_ context.Context, reporter string) (string, bool) {
	for _, c := range p.candidates {
		if c != reporter {
			return c, true
		}
	}
	return "", false
}
