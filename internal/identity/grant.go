package identity

import (
	"context"
	"crypto/ed25519"
	"encoding/base64"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/golang-jwt/jwt/v5"
)

// grantEnv holds raw env values before post-parse validation.
type grantEnv struct {
	Issuer    string `env:"DISCIPLR_VAULT_GRANT_ISSUER"`
	Audience  string `env:"DISCIPLR_VAULT_GRANT_AUDIENCE"`
	PublicKey string `env:"DISCIPLR_VAULT_GRANT_PUBLIC_KEY"`
}

// GrantConfig defines how actor grant tokens are verified.
type GrantConfig struct {
	Issuer   string
	Audience string
	Key      ed25519.PublicKey
	Now      func() time.Time
}

// LoadGrantConfigFromEnv reads grant verification configuration.
func LoadGrantConfigFromEnv(now func() time.Time) (GrantConfig, error) {
	var raw grantEnv
	if err := env.Parse(&raw); err != nil {
		return GrantConfig{}, fmt.Errorf("parse grant env: %w", err)
	}
	issuer := strings.TrimSpace(raw.Issuer)
	audience := strings.TrimSpace(raw.Audience)
	publicKey := strings.TrimSpace(raw.PublicKey)
	if issuer == "" {
		return GrantConfig{}, fmt.Errorf("DISCIPLR_VAULT_GRANT_ISSUER is required")
	}
	if audience == "" {
		return GrantConfig{}, fmt.Errorf("DISCIPLR_VAULT_GRANT_AUDIENCE is required")
	}
	if publicKey == "" {
		return GrantConfig{}, fmt.Errorf("DISCIPLR_VAULT_GRANT_PUBLIC_KEY is required")
	}
	keyBytes, err := decodeBase64(publicKey)
	if err != nil {
		return GrantConfig{}, fmt.Errorf("decode grant public key: %w", err)
	}
	if len(keyBytes) != ed25519.PublicKeySize {
		return GrantConfig{}, fmt.Errorf("grant public key must be %d bytes", ed25519.PublicKeySize)
	}
	if now == nil {
		now = time.Now
	}
	return GrantConfig{
		Issuer:   issuer,
		Audience: audience,
		Key:      ed25519.PublicKey(keyBytes),
		Now:      now,
	}, nil
}

type grantTokenKey struct{}

// WithGrantToken returns a context carrying the caller's signed grant token.
func WithGrantToken(ctx context.Context, token string) context.Context {
	return context.WithValue(ctx, grantTokenKey{}, token)
}

func grantTokenFromContext(ctx context.Context) string {
	token, _ := ctx.Value(grantTokenKey{}).(string)
	return token
}

// GrantGate verifies an Ed25519-signed actor grant token carried on the call
// context and matches its subject against the required principal.
type GrantGate struct {
	cfg GrantConfig
}

// NewGrantGate creates a grant-token gate for the given verification config.
func NewGrantGate(cfg GrantConfig) (*GrantGate, error) {
	if cfg.Issuer == "" || cfg.Audience == "" || len(cfg.Key) != ed25519.PublicKeySize {
		return nil, errors.New("grant gate is not configured")
	}
	if cfg.Now == nil {
		cfg.Now = time.Now
	}
	return &GrantGate{cfg: cfg}, nil
}

// RequireAuth implements Gate. It fails closed: any parsing, signature,
// lifetime, or subject mismatch yields ErrUnauthorized.
func (g *GrantGate) RequireAuth(ctx context.Context, principal string) error {
	token := strings.TrimSpace(grantTokenFromContext(ctx))
	if token == "" {
		return ErrUnauthorized
	}

	var parsed jwt.RegisteredClaims
	_, err := jwt.ParseWithClaims(token, &parsed, func(token *jwt.Token) (any, error) {
		return g.cfg.Key, nil
	},
		jwt.WithValidMethods([]string{"EdDSA"}),
		jwt.WithoutClaimsValidation(),
	)
	if err != nil {
		return ErrUnauthorized
	}

	if parsed.Issuer == "" || parsed.Issuer != g.cfg.Issuer {
		return ErrUnauthorized
	}
	if !audienceContains(parsed.Audience, g.cfg.Audience) {
		return ErrUnauthorized
	}
	if parsed.ExpiresAt == nil {
		return ErrUnauthorized
	}
	now := g.cfg.Now().UTC()
	if !parsed.ExpiresAt.Time.UTC().After(now) {
		return ErrUnauthorized
	}
	if parsed.NotBefore != nil && now.Before(parsed.NotBefore.Time.UTC()) {
		return ErrUnauthorized
	}
	if strings.TrimSpace(parsed.Subject) == "" || parsed.Subject != principal {
		return ErrUnauthorized
	}
	return nil
}

func audienceContains(audience jwt.ClaimStrings, expected string) bool {
	for _, value := range audience {
		if value == expected {
			return true
		}
	}
	return false
}

func decodeBase64(value string) ([]byte, error) {
	encodings := []*base64.Encoding{
		base64.StdEncoding,
		base64.RawStdEncoding,
		base64.URLEncoding,
		base64.RawURLEncoding,
	}
	var lastErr error
	for _, encoding := range encodings {
		decoded, err := encoding.DecodeString(value)
		if err == nil {
			return decoded, nil
		}
		lastErr = err
	}
	return nil, lastErr
}
