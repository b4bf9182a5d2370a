package config

import (
	"encoding/base64"
	"encoding/json"
	"fmt"
	"os"
)

// Configはアプリ全体の設定
type Config struct {
	Port string // サーバーポート（8080）

	ClientOrigin string // フロントURL（CORSとリダイレクト先で使う）

	StripeSecretKey string // 決済ゲートウェイのシークレットキー

	AuthMode       string // google / local
	GoogleClientID string // IDトークン検証のaudience
	JWTSecret      string // local検証モードの署名シークレット
}

// Loadは環境変数
func Load() (Config, error) {
	cfg := Config{
		Port:            os.Getenv("PORT"),
		ClientOrigin:    os.Getenv("CLIENT_ORIGIN"),
		StripeSecretKey: os.Getenv("STRIPE_SECRET_KEY"),
		AuthMode:        os.Getenv("AUTH_MODE"),
		GoogleClientID:  os.Getenv("GOOGLE_CLIENT_ID"),
		JWTSecret:       os.Getenv("JWT_SECRET"),
	}

	if cfg.AuthMode == "" {
		cfg.AuthMode = "google"
	}

	//サービスアカウント（base64のJSON）からclient_idを取り出せる
	if cfg.GoogleClientID == "" {
		if raw := os.Getenv("GOOGLE_SERVICE_ACCOUNT"); raw != "" {
			id, err := clientIDFromServiceAccount(raw)
			if err != nil {
				return Config{}, fmt.Errorf("GOOGLE_SERVICE_ACCOUNT is invalid: %w", err)
			}
			cfg.GoogleClientID = id
		}
	}

	//必須チェック
	if cfg.Port == "" {
		return Config{}, fmt.Errorf("PORT is required")
	}
	if cfg.ClientOrigin == "" {
		return Config{}, fmt.Errorf("CLIENT_ORIGIN is required")
	}
	if cfg.StripeSecretKey == "" {
		return Config{}, fmt.Errorf("STRIPE_SECRET_KEY is required")
	}
	switch cfg.AuthMode {
	case "google":
		if cfg.GoogleClientID == "" {
			return Config{}, fmt.Errorf("GOOGLE_CLIENT_ID or GOOGLE_SERVICE_ACCOUNT is required")
		}
	case "local":
		if cfg.JWTSecret == "" {
			return Config{}, fmt.Errorf("JWT_SECRET is required when AUTH_MODE=local")
		}
	default:
		return Config{}, fmt.Errorf("AUTH_MODE must be google or local")
	}

	return cfg, nil
}

func clientIDFromServiceAccount(b64 string) (string, error) {
	raw, err := base64.StdEncoding.DecodeString(b64)
	if err != nil {
		return "", err
	}

	var sa struct {
		ClientID string `json:"client_id"`
	}
	if err := json.Unmarshal(raw, &sa); err != nil {
		return "", err
	}
	if sa.ClientID == "" {
		return "", fmt.Errorf("client_id missing")
	}
	return sa.ClientID, nil
}
