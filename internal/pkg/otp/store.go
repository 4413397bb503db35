package otp

import (
	"context"
	"crypto/rand"
	"fmt"
	"math/big"
	"time"

	"github.com/redis/go-redis/v9"
)

const codeTTL = 10 * time.Minute

// Store keeps one-time login codes in Redis keyed by phone number. Codes
// expire after ten minutes and are consumed on first successful verify.
type Store struct {
	rdb *redis.Client
}

func NewStore(rdb *redis.Client) *Store {
	return &Store{rdb: rdb}
}

func (s *Store) key(phone string) string {
	return "otp:" + phone
}

// Issue generates a six digit code for the phone number, replacing any
// previous unexpired code.
func (s *Store) Issue(ctx context.Context, phone string) (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(1000000))
	if err != nil {
		return "", fmt.Errorf("failed to generate code: %w", err)
	}
	code := fmt.Sprintf("%06d", n.Int64())

	if err := s.rdb.Set(ctx, s.key(phone), code, codeTTL).Err(); err != nil {
		return "", fmt.Errorf("failed to store code: %w", err)
	}

	return code, nil
}

// Verify checks the submitted code and deletes it on match.
func (s *Store) Verify(ctx context.Context, phone, code string) (bool, error) {
	stored, err := s.rdb.Get(ctx, s.key(phone)).Result()
	if err == redis.Nil {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to read code: %w", err)
	}

	if stored != code {
		return false, nil
	}

	s.rdb.Del(ctx, s.key(phone))
	return true, nil
}
