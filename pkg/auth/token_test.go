package auth

import (
	"testing"
	"time"

	"github.com/amcdesk/amcdesk-backend/pkg/config"
)

func testJWTConfig() config.JWTConfig {
	return config.JWTConfig{
		Secret:            "test-secret",
		Issuer:            "amcdesk-test",
		ExpirationMinutes: 60,
	}
}

func TestMintAndParseAccessToken(t *testing.T) {
	cfg := testJWTConfig()
	now := time.Now()

	signed, err := MintAccessToken(cfg, now, AccessTokenPayload{
		UserID: 42,
		Email:  "admin@example.com",
		Role:   "admin",
	})
	if err != nil {
		t.Fatalf("mint: %v", err)
	}

	claims, err := ParseAccessToken(cfg, signed)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if claims.UserID != 42 {
		t.Fatalf("expected user id 42, got %d", claims.UserID)
	}
	if claims.Email != "admin@example.com" {
		t.Fatalf("unexpected email %q", claims.Email)
	}
	if claims.Role != "admin" {
		t.Fatalf("unexpected role %q", claims.Role)
	}
	if claims.ID == "" {
		t.Fatal("expected generated jti")
	}
	wantExpiry := now.Add(time.Hour)
	if diff := claims.ExpiresAt.Time.Sub(wantExpiry); diff > time.Second || diff < -time.Second {
		t.Fatalf("unexpected expiry %s", claims.ExpiresAt.Time)
	}
}

func TestMintAccessTokenValidation(t *testing.T) {
	now := time.Now()

	cases := []struct {
		name    string
		cfg     config.JWTConfig
		payload AccessTokenPayload
	}{
		{
			name:    "missing secret",
			cfg:     config.JWTConfig{Issuer: "x", ExpirationMinutes: 60},
			payload: AccessTokenPayload{UserID: 1, Email: "a@b.c"},
		},
		{
			name:    "missing issuer",
			cfg:     config.JWTConfig{Secret: "s", ExpirationMinutes: 60},
			payload: AccessTokenPayload{UserID: 1, Email: "a@b.c"},
		},
		{
			name:    "non positive expiration",
			cfg:     config.JWTConfig{Secret: "s", Issuer: "x"},
			payload: AccessTokenPayload{UserID: 1, Email: "a@b.c"},
		},
		{
			name:    "zero user id",
			cfg:     testJWTConfig(),
			payload: AccessTokenPayload{Email: "a@b.c"},
		},
		{
			name:    "empty email",
			cfg:     testJWTConfig(),
			payload: AccessTokenPayload{UserID: 1},
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := MintAccessToken(tc.cfg, now, tc.payload); err == nil {
				t.Fatal("expected error")
			}
		})
	}
}

func TestParseAccessTokenRejectsWrongSecret(t *testing.T) {
	cfg := testJWTConfig()
	signed, err := MintAccessToken(cfg, time.Now(), AccessTokenPayload{UserID: 1, Email: "a@b.c", Role: "admin"})
	if err != nil {
		t.Fatalf("mint: %v", err)
	}

	other := cfg
	other.Secret = "different"
	if _, err := ParseAccessToken(other, signed); err == nil {
		t.Fatal("expected signature error")
	}
}

func TestParseAccessTokenRejectsExpired(t *testing.T) {
	cfg := testJWTConfig()
	signed, err := MintAccessToken(cfg, time.Now().Add(-2*time.Hour), AccessTokenPayload{UserID: 1, Email: "a@b.c", Role: "admin"})
	if err != nil {
		t.Fatalf("mint: %v", err)
	}

	if _, err := ParseAccessToken(cfg, signed); err == nil {
		t.Fatal("expected expiry error")
	}
}
