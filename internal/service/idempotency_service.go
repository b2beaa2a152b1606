package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
)

// ErrBookingInFlight is returned when another request with the same
// idempotency key has reserved it but not yet committed.
var ErrBookingInFlight = errors.New("a booking with this idempotency key is still in progress")

const (
	idempotencyKeyPrefix   = "booking:idem:"
	idempotencyPlaceholder = "__pending__"
	idempotencyTTL         = 24 * time.Hour
)

// IdempotencyService de-duplicates retried booking commands. The first
// request reserves its key with SETNX before the transaction and stores the
// committed appointment id after; a retried request gets the original id back
// instead of creating a duplicate appointment.
type IdempotencyService struct {
	redisClient *redis.Client
	log         *logrus.Logger
}

func NewIdempotencyService(redisClient *redis.Client, log *logrus.Logger) *IdempotencyService {
	return &IdempotencyService{
		redisClient: redisClient,
		log:         log,
	}
}

func (s *IdempotencyService) key(clinicID uuid.UUID, idempotencyKey string) string {
	return fmt.Sprintf("%s%s:%s", idempotencyKeyPrefix, clinicID, idempotencyKey)
}

// Reserve claims the key for this request. It returns the appointment id of
// the original booking when the key was already completed, ErrBookingInFlight
// when another request holds the placeholder, or (nil, nil) when the claim
// succeeded and the caller should proceed to book.
func (s *IdempotencyService) Reserve(ctx context.Context, clinicID uuid.UUID, idempotencyKey string) (*uuid.UUID, error) {
	key := s.key(clinicID, idempotencyKey)

	ok, err := s.redisClient.SetNX(ctx, key, idempotencyPlaceholder, idempotencyTTL).Result()
	if err != nil {
		return nil, fmt.Errorf("reserve idempotency key: %w", err)
	}
	if ok {
		return nil, nil
	}

	value, err := s.redisClient.Get(ctx, key).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			// Key expired between SETNX and GET; treat as fresh.
			return nil, nil
		}
		return nil, fmt.Errorf("read idempotency key: %w", err)
	}
	if value == idempotencyPlaceholder {
		return nil, ErrBookingInFlight
	}

	appointmentID, err := uuid.Parse(value)
	if err != nil {
		s.log.Warnf("Corrupt idempotency value for %s: %q", key, value)
		return nil, ErrBookingInFlight
	}
	return &appointmentID, nil
}

// Complete records the committed appointment id under the key.
func (s *IdempotencyService) Complete(ctx context.Context, clinicID uuid.UUID, idempotencyKey string, appointmentID uuid.UUID) {
	key := s.key(clinicID, idempotencyKey)
	if err := s.redisClient.Set(ctx, key, appointmentID.String(), idempotencyTTL).Err(); err != nil {
		// Non-fatal: the placeholder TTL still protects against storms.
		s.log.Warnf("Failed to complete idempotency key %s: %+v", key, err)
	}
}

// Release frees the key after a failed booking so the caller may retry.
func (s *IdempotencyService) Release(ctx context.Context, clinicID uuid.UUID, idempotencyKey string) {
	key := s.key(clinicID, idempotencyKey)
	if err := s.redisClient.Del(ctx, key).Err(); err != nil {
		s.log.Warnf("Failed to release idempotency key %s: %+v", key, err)
	}
}
