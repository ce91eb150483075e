// Package session stores per-chat conversation state for multi-step flows.
// State is scoped to one requester and must be cleared on completion,
// cancellation, or error so stale partial input never leaks into a later
// conversation.
package session

import (
	"context"
	"encoding/json"
	"strconv"
	"time"

	"kilnbot/models"

	"github.com/go-redis/redis/v8"
)

const sessionPrefix = "bot:session:"

// DefaultTTL bounds how long an abandoned flow keeps its partial input.
const DefaultTTL = 30 * time.Minute

// Step names for the multi-step flows.
const (
	StepSlotSelect    = "slot_select"
	StepAdminUserID   = "admin_user_id"
	StepAdminUsername = "admin_username"
	StepAdminName     = "admin_name"
	StepAdminCategory = "admin_category"
	StepAdminDate     = "admin_date"
	StepAdminTime     = "admin_time"
)

// State is the accumulated input of an in-progress flow.
type State struct {
	Step     string                 `json:"step"`
	Category models.BookingCategory `json:"category,omitempty"`
	UserID   int64                  `json:"userId,omitempty"`
	Username string                 `json:"username,omitempty"`
	FullName string                 `json:"fullName,omitempty"`
	Date     string                 `json:"date,omitempty"` // "2006-01-02"
}

// Store is the conversation-state backend.
type Store interface {
	// Get returns the chat's state, or (nil, nil) when no flow is active.
	Get(ctx context.Context, chatID int64) (*State, error)
	// Set saves the chat's state, refreshing its TTL.
	Set(ctx context.Context, chatID int64, st *State) error
	// Clear drops the chat's state.
	Clear(ctx context.Context, chatID int64) error
}

// RedisStore is the production Store.
type RedisStore struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisStore wraps a Redis client as a session store.
func NewRedisStore(client *redis.Client, ttl time.Duration) *RedisStore {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &RedisStore{client: client, ttl: ttl}
}

func key(chatID int64) string {
	return sessionPrefix + strconv.FormatInt(chatID, 10)
}

func (s *RedisStore) Get(ctx context.Context, chatID int64) (*State, error) {
	data, err := s.client.Get(ctx, key(chatID)).Result()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var st State
	if err := json.Unmarshal([]byte(data), &st); err != nil {
		return nil, err
	}
	return &st, nil
}

func (s *RedisStore) Set(ctx context.Context, chatID int64, st *State) error {
	b, err := json.Marshal(st)
	if err != nil {
		return err
	}
	return s.client.Set(ctx, key(chatID), b, s.ttl).Err()
}

func (s *RedisStore) Clear(ctx context.Context, chatID int64) error {
	return s.client.Del(ctx, key(chatID)).Err()
}
