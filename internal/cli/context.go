package cli

import (
	"context"

	"github.com/thenoetrevino/tablero/internal/app"
)

type appKey struct{}

// WithApp returns a context carrying a ready App. Commands executed with it
// use that App and the caller already on ctx instead of opening the user's
// database.
func WithApp(ctx context.Context, a *app.App) context.Context {
	return context.WithValue(ctx, appKey{}, a)
}

// GetCLIFromContext returns a CLI for the command context, borrowing the App
// from WithApp when present and otherwise initializing a new one.
func GetCLIFromContext(ctx context.Context) (*CLI, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	if a, ok := ctx.Value(appKey{}).(*app.App); ok && a != nil {
		return &CLI{App: a, ctx: ctx}, nil
	}
	return NewCLI(ctx)
}
