package notification

import (
	"context"
	"sync"

	"golang.org/x/time/rate"
)

// chatLimiterStore holds a map of chat ids to their rate limiters, so one
// chatty recipient cannot push the bot over the Telegram per-chat send
// limits.
type chatLimiterStore struct {
	limiters map[int64]*rate.Limiter
	mu       sync.Mutex
	perSec   float64
}

func newChatLimiterStore(perSec float64) *chatLimiterStore {
	if perSec <= 0 {
		perSec = 1
	}
	return &chatLimiterStore{
		limiters: make(map[int64]*rate.Limiter),
		perSec:   perSec,
	}
}

// getLimiter returns the rate limiter for a chat, creating one if it doesn't exist.
func (s *chatLimiterStore) getLimiter(chatID int64) *rate.Limiter {
	s.mu.Lock()
	defer s.mu.Unlock()

	limiter, exists := s.limiters[chatID]
	if !exists {
		limiter = rate.NewLimiter(rate.Limit(s.perSec), 1)
		s.limiters[chatID] = limiter
	}
	return limiter
}

// wait blocks until a send to the chat is allowed or the context is done.
func (s *chatLimiterStore) wait(ctx context.Context, chatID int64) error {
	return s.getLimiter(chatID).Wait(ctx)
}
