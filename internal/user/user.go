// Package user identifies the caller of an operation.
package user

import (
	"context"
	"os"
	"os/user"

	"github.com/thenoetrevino/tablero/internal/models"
)

type contextKey int

const callerIDKey contextKey = iota

// WithCallerID returns a context carrying the authenticated caller's user id.
func WithCallerID(ctx context.Context, userID int) context.Context {
	return context.WithValue(ctx, callerIDKey, userID)
}

// CallerID returns the caller's user id, or models.ErrUnauthenticated when the
// context carries none.
func CallerID(ctx context.Context) (int, error) {
	id, ok := ctx.Value(callerIDKey).(int)
	if !ok || id <= 0 {
		return 0, models.ErrUnauthenticated
	}
	return id, nil
}

// GetCurrentUsername returns the current system username.
// It tries multiple methods with fallbacks:
// 1. user.Current() - most reliable, gets username from OS
// 2. USER environment variable - fallback for restricted environments
// 3. "unknown" - final fallback to ensure a non-empty value
func GetCurrentUsername() string {
	// Try to get current user from OS
	currentUser, err := user.Current()
	if err != nil {
		// Fallback to USER environment variable
		username := os.Getenv("USER")
		if username == "" {
			// Final fallback
			return "unknown"
		}
		return username
	}
	return currentUser.Username
}
