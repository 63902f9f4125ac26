package jwt

import (
	"errors"
	"testing"
)

const testSecret = "test_secret"

func TestAccessTokenRoundTrip(t *testing.T) {
	token, err := GenerateAccessToken(42, "9876543210", "Society Admin", "admin", testSecret, 15)
	if err != nil {
		t.Fatalf("GenerateAccessToken: %v", err)
	}

	claims, err := ValidateAccessToken(token, testSecret)
	if err != nil {
		t.Fatalf("ValidateAccessToken: %v", err)
	}
	if claims.IdentityID != 42 || claims.Phone != "9876543210" || claims.Role != "admin" {
		t.Errorf("claims = %+v", claims)
	}
}

func TestAccessTokenWrongSecret(t *testing.T) {
	token, _ := GenerateAccessToken(1, "9000000000", "X", "member", testSecret, 15)

	if _, err := ValidateAccessToken(token, "other_secret"); !errors.Is(err, ErrTokenInvalid) {
		t.Errorf("wrong secret = %v, want ErrTokenInvalid", err)
	}
}

func TestExpiredAccessToken(t *testing.T) {
	token, _ := GenerateAccessToken(1, "9000000000", "X", "member", testSecret, -1)

	if _, err := ValidateAccessToken(token, testSecret); !errors.Is(err, ErrTokenExpired) {
		t.Errorf("expired token = %v, want ErrTokenExpired", err)
	}
}

func TestRefreshTokenRoundTrip(t *testing.T) {
	token, err := GenerateRefreshToken(7, "tok-1", testSecret, 7)
	if err != nil {
		t.Fatalf("GenerateRefreshToken: %v", err)
	}

	claims, err := ValidateRefreshToken(token, testSecret)
	if err != nil {
		t.Fatalf("ValidateRefreshToken: %v", err)
	}
	if claims.IdentityID != 7 || claims.TokenID != "tok-1" {
		t.Errorf("claims = %+v", claims)
	}
}

func TestRefreshTokenIsNotAnAccessToken(t *testing.T) {
	// Signed with the refresh secret; the access validator must reject it
	token, _ := GenerateRefreshToken(7, "tok-2", "refresh_secret", 7)

	if _, err := ValidateAccessToken(token, testSecret); !errors.Is(err, ErrTokenInvalid) {
		t.Errorf("got %v, want ErrTokenInvalid", err)
	}
}

func TestValidateGarbage(t *testing.T) {
	if _, err := ValidateAccessToken("not.a.jwt", testSecret); !errors.Is(err, ErrTokenInvalid) {
		t.Errorf("got %v, want ErrTokenInvalid", err)
	}
	if _, err := ValidateRefreshToken("", testSecret); !errors.Is(err, ErrTokenInvalid) {
		t.Errorf("got %v, want ErrTokenInvalid", err)
	}
}
