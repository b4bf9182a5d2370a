package identity

import (
	"context"

	"bookcourier/internal/gateway"

	googleAuthIDTokenVerifier "github.com/futurenda/google-auth-id-token-verifier"
)

// GoogleのIDトークンを検証してメールを取り出す。
// トークン発行はGoogleサインインに委ねる（こちらは検証だけ）。
type GoogleVerifier struct {
	clientID string
}

func NewGoogleVerifier(clientID string) *GoogleVerifier {
	return &GoogleVerifier{clientID: clientID}
}

func (v *GoogleVerifier) Verify(ctx context.Context, bearerToken string) (string, error) {
	if bearerToken == "" {
		return "", gateway.ErrUnauthorized
	}

	verifier := googleAuthIDTokenVerifier.Verifier{}
	if err := verifier.VerifyIDToken(bearerToken, []string{v.clientID}); err != nil {
		return "", gateway.ErrUnauthorized
	}

	claimSet, err := googleAuthIDTokenVerifier.Decode(bearerToken)
	if err != nil || claimSet.Email == "" {
		return "", gateway.ErrUnauthorized
	}
	return claimSet.Email, nil
}
