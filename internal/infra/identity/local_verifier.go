package identity

import (
	"context"
	"errors"

	"bookcourier/internal/gateway"

	"github.com/golang-jwt/jwt/v5"
)

// 開発・テスト用のHS256検証。AUTH_MODE=localのときだけ使う。
// emailクレームを持つ自前署名トークンを受け付ける。
type LocalVerifier struct {
	secret []byte
}

func NewLocalVerifier(secret string) *LocalVerifier {
	return &LocalVerifier{secret: []byte(secret)}
}

func (v *LocalVerifier) Verify(ctx context.Context, bearerToken string) (string, error) {
	if bearerToken == "" {
		return "", gateway.ErrUnauthorized
	}

	token, err := jwt.Parse(bearerToken, func(t *jwt.Token) (interface{}, error) {
		if t.Method != jwt.SigningMethodHS256 {
			return nil, errors.New("unexpected signing method")
		}
		return v.secret, nil
	})
	if err != nil || token == nil || !token.Valid {
		return "", gateway.ErrUnauthorized
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return "", gateway.ErrUnauthorized
	}

	email, ok := claims["email"].(string)
	if !ok || email == "" {
		return "", gateway.ErrUnauthorized
	}
	return email, nil
}
