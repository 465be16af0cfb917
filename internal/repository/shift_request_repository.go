package repository

import (
	"context"
	"errors"
	"sync"

	"github.com/spec-kit/shift-coverage-service/internal/domain"
)

// ErrNotFound is returned when no request exists for an identity.
var ErrNotFound = errors.New("shift request not found")

// ShiftRequestRepository stores one coverage request per responder identity.
type ShiftRequestRepository interface {
	Get(ctx context.Context, responder string) (*domain.ShiftRequest, error)
	Save(ctx context.Context, req *domain.ShiftRequest) error
	Ping(ctx context.Context) error
}

type memoryShiftRequestRepository struct {
	mu       sync.RWMutex
	requests map[string]domain.ShiftRequest
}

// NewMemoryShiftRequestRepository returns a process-lifetime store.
func NewMemoryShiftRequestRepository() ShiftRequestRepository {
	return &memoryShiftRequestRepository{requests: make(map[string]domain.ShiftRequest)}
}

func (r *memoryShiftRequestRepository) Get(_ context.Context, responder string) (*domain.ShiftRequest, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	req, ok := r.requests[responder]
	if !ok {
		return nil, ErrNotFound
	}
	return copyRequest(req), nil
}

func (r *memoryShiftRequestRepository) Save(_ context.Context, req *domain.ShiftRequest) error {
	if req == nil || req.Responder == "" {
		return errors.New("shift request requires a responder")
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.requests[req.Responder] = *copyRequest(*req)
	return nil
}

func (r *memoryShiftRequestRepository) Ping(context.Context) error {
	return nil
}

// copyRequest detaches the stored value from callers, including RespondedAt.
func copyRequest(req domain.ShiftRequest) *domain.ShiftRequest {
	if req.RespondedAt != nil {
		at := *req.RespondedAt
		req.RespondedAt = &at
	}
	return &req
}
