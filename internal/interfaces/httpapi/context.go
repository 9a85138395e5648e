package httpapi

import "context"

type contextKey string

const playerIDContextKey contextKey = "player_id"

func withPlayerID(ctx context.Context, playerID string) context.Context {
	return context.WithValue(ctx, playerIDContextKey, playerID)
}

func playerIDFromContext(ctx context.Context) (string, bool) {
	playerID, ok := ctx.Value(playerIDContextKey).(string)
	return playerID, ok && playerID != ""
}
