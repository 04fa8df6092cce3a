// Package session keeps the cart of each open sale between HTTP requests.
package session

import (
	"context"
	"errors"
	"time"

	"mostrador-pos/cart"
)

// ErrSessionNotFound is returned for unknown or expired sessions.
var ErrSessionNotFound = errors.New("session not found")

// Session is one open sale at the counter.
type Session struct {
	ID        string     `json:"id"`
	Cashier   string     `json:"cashier"`
	StartedAt time.Time  `json:"startedAt"`
	Cart      cart.State `json:"cart"`
}

// Store persists sessions.
type Store interface {
	Load(ctx context.Context, id string) (*Session, error)
	Save(ctx context.Context, s *Session) error
	Delete(ctx context.Context, id string) error
}
