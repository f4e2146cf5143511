package auth

import (
	"errors"
	"testing"
	"time"
)

func newTestService(exp time.Duration) *JWTService {
	return NewJWTService(JWTConfig{
		SecretKey:      "test-secret-key",
		AccessTokenExp: exp,
		TokenIssuer:    "communia.test",
	})
}

func TestGenerateAndValidateToken(t *testing.T) {
	svc := newTestService(time.Hour)

	token, expiresIn, err := svc.GenerateToken(42)
	if err != nil {
		t.Fatalf("GenerateToken failed: %v", err)
	}
	if expiresIn != 3600 {
		t.Errorf("expiresIn = %d, want 3600", expiresIn)
	}

	claims, err := svc.ValidateAndExtractClaims(token)
	if err != nil {
		t.Fatalf("ValidateAndExtractClaims failed: %v", err)
	}
	if claims.UserID != 42 {
		t.Errorf("UserID = %d, want 42", claims.UserID)
	}
	if claims.Issuer != "communia.test" {
		t.Errorf("Issuer = %q, want %q", claims.Issuer, "communia.test")
	}
	if claims.ID == "" {
		t.Error("token has no jti")
	}
}

func TestValidateExpiredToken(t *testing.T) {
	svc := newTestService(-time.Minute)

	token, _, err := svc.GenerateToken(42)
	if err != nil {
		t.Fatalf("GenerateToken failed: %v", err)
	}

	if _, err := svc.ValidateToken(token); !errors.Is(err, ErrExpiredToken) {
		t.Fatalf("err = %v, want ErrExpiredToken", err)
	}
}

func TestValidateForeignSignature(t *testing.T) {
	token, _, err := newTestService(time.Hour).GenerateToken(42)
	if err != nil {
		t.Fatalf("GenerateToken failed: %v", err)
	}

	other := NewJWTService(JWTConfig{
		SecretKey:      "a-different-secret",
		AccessTokenExp: time.Hour,
		TokenIssuer:    "communia.test",
	})
	if _, err := other.ValidateToken(token); err == nil {
		t.Fatal("token signed with a foreign key was accepted")
	}
}

func TestValidateGarbageToken(t *testing.T) {
	svc := newTestService(time.Hour)

	if _, err := svc.ValidateAndExtractClaims(""); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("empty token: err = %v, want ErrInvalidToken", err)
	}
	if _, err := svc.ValidateAndExtractClaims("not.a.token"); err == nil {
		t.Fatal("garbage token was accepted")
	}
}

func TestExtractBearerToken(t *testing.T) {
	tests := []struct {
		name    string
		header  string
		want    string
		wantErr bool
	}{
		{"bearer prefix", "Bearer abc123", "abc123", false},
		{"raw token", "abc123", "abc123", false},
		{"empty header", "", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ExtractBearerToken(tt.header)
			if (err != nil) != tt.wantErr {
				t.Fatalf("err = %v, wantErr %v", err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("token = %q, want %q", got, tt.want)
			}
		})
	}
}
