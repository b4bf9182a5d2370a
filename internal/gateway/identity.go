package gateway

import (
	"context"
	"errors"
)

var ErrUnauthorized = errors.New("unauthorized")

// bearerトークンを検証してメールを取り出す約束。
// トークン発行はしない（外部IDプロバイダに委ねる）。
type IdentityVerifier interface {
	Verify(ctx context.Context, bearerToken string) (string, error)
}
