package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/spec-kit/shift-coverage-service/internal/domain"
	"github.com/spec-kit/shift-coverage-service/internal/persistence"
)

const shiftRequestKey = "shift_request:"

type redisShiftRequestRepository struct {
	client *redis.Client
	prefix string
}

// NewRedisShiftRequestRepository stores each request as a JSON string under
// <prefix>shift_request:<responder>. Keys carry no TTL.
func NewRedisShiftRequestRepository(r *persistence.Redis) ShiftRequestRepository {
	return &redisShiftRequestRepository{client: r.Client, prefix: r.KeyPrefix}
}

func (r *redisShiftRequestRepository) key(responder string) string {
	return r.prefix + shiftRequestKey + responder
}

func (r *redisShiftRequestRepository) Get(ctx context.Context, responder string) (*domain.ShiftRequest, error) {
	data, err := r.client.Get(ctx, r.key(responder)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get shift request %s: %w", responder, err)
	}

	var req domain.ShiftRequest
	if err := json.Unmarshal(data, &req); err != nil {
		return nil, fmt.Errorf("decode shift request %s: %w", responder, err)
	}
	return &req, nil
}

func (r *redisShiftRequestRepository) Save(ctx context.Context, req *domain.ShiftRequest) error {
	if req == nil || req.Responder == "" {
		return errors.New("shift request requires a responder")
	}
	data, err := json.Marshal(req)
	if err != nil {
		return fmt.Errorf("encode shift request %s: %w", req.Responder, err)
	}
	if err := r.client.Set(ctx, r.key(req.Responder), data, 0).Err(); err != nil {
		return fmt.Errorf("save shift request %s: %w", req.Responder, err)
	}
	return nil
}

func (r *redisShiftRequestRepository) Ping(ctx context.Context) error {
	return r.client.Ping(ctx).Err()
}
