package utils

import (
	"context"

	"github.com/google/uuid"
)

type contextKey string

const (
	claimsKey contextKey = "claims"
)

// Identity is what the auth middleware learns about the caller from a verified token.
type Identity struct {
	UserID  uuid.UUID
	Role    string
	Email   string
	Phone   string
	TokenID string
}

func SetIdentity(ctx context.Context, id Identity) context.Context {
	return context.WithValue(ctx, claimsKey, id)
}

func GetIdentity(ctx context.Context) (Identity, bool) {
	id, ok := ctx.Value(claimsKey).(Identity)
	return id, ok
}

func GetUserIDFromContext(ctx context.Context) (uuid.UUID, bool) {
	id, ok := GetIdentity(ctx)
	if !ok || id.UserID == uuid.Nil {
		return uuid.Nil, false
	}
	return id.UserID, true
}

func GetRoleFromContext(ctx context.Context) (string, bool) {
	id, ok := GetIdentity(ctx)
	if !ok {
		return "", false
	}
	return id.Role, true
}

// GetTokenIDFromContext returns the jti of the token that authenticated the request
func GetTokenIDFromContext(ctx context.Context) (string, bool) {
	id, ok := GetIdentity(ctx)
	if !ok || id.TokenID == "" {
		return "", false
	}
	return id.TokenID, true
}
