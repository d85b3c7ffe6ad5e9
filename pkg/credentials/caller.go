package credentials

import (
	"context"
	"strings"
)

// CallerSlot is the slot a caller's own bearer token is exposed under. It is
// the first slot the descriptor builder scans.
const CallerSlot = "token"

type callerTokenKey struct{}

// WithCallerToken attaches the bearer token presented by the caller to ctx.
func WithCallerToken(ctx context.Context, token string) context.Context {
	return context.WithValue(ctx, callerTokenKey{}, strings.TrimSpace(token))
}

// CallerToken returns the bearer token attached by WithCallerToken, or "".
func CallerToken(ctx context.Context) string {
	token, _ := ctx.Value(callerTokenKey{}).(string)
	return token
}

// ForCaller returns the store a single request resolves its credential from:
// the caller's own token in CallerSlot, shadowing shared. shared may be nil,
// in which case only the caller's token is visible.
func ForCaller(token string, shared Store) Store {
	layers := make(Layered, 0, 2)
	if token = strings.TrimSpace(token); token != "" {
		layers = append(layers, NewMemoryStore(map[string]string{CallerSlot: token}))
	}
	if shared != nil {
		layers = append(layers, shared)
	}
	return layers
}
