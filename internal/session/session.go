// Package session tracks which login sessions are still live.
package session

import (
	"context"
	"time"
)

// Store records live session ids. Logging out deletes the id so a token
// that is still cryptographically valid stops working.
type Store interface {
	Save(ctx context.Context, id string, userID int64, ttl time.Duration) error
	Exists(ctx context.Context, id string) (bool, error)
	Delete(ctx context.Context, id string) error
}
