package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// ErrUnknownState is returned when a callback presents a state nonce that was
// never issued or was already consumed.
var ErrUnknownState = errors.New("auth: unknown or expired oauth state")

const stateTTL = 10 * time.Minute

// StateStore keeps one-shot OAuth state nonces in Redis so the login flow
// survives process restarts and multiple instances.
type StateStore struct {
	client *redis.Client
}

func NewStateStore(ctx context.Context, addr, password string, db int) (*StateStore, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})

	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("auth.NewStateStore: ping: %w", err)
	}

	return &StateStore{client: client}, nil
}

func (s *StateStore) Close() error {
	if err := s.client.Close(); err != nil {
		return fmt.Errorf("auth.StateStore.Close: %w", err)
	}
	return nil
}

// Issue stores a fresh nonce and returns it.
func (s *StateStore) Issue(ctx context.Context) (string, error) {
	state := uuid.NewString()
	if err := s.client.Set(ctx, stateKey(state), "1", stateTTL).Err(); err != nil {
		return "", fmt.Errorf("auth.StateStore.Issue: %w", err)
	}
	return state, nil
}

// Consume validates and burns a nonce: a second consume of the same state fails.
func (s *StateStore) Consume(ctx context.Context, state string) error {
	n, err := s.client.Del(ctx, stateKey(state)).Result()
	if err != nil {
		return fmt.Errorf("auth.StateStore.Consume: %w", err)
	}
	if n == 0 {
		return ErrUnknownState
	}
	return nil
}

func stateKey(state string) string {
	return "oauth_state:" + state
}
