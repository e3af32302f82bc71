package crypto

import (
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const base64URLAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789-_"

func TestGenerateToken(t *testing.T) {
	token, err := GenerateToken(42, "test-secret", time.Hour)
	if err != nil {
		t.Fatalf("GenerateToken() unexpected error: %v", err)
	}
	if token == "" {
		t.Fatal("GenerateToken() returned empty string")
	}
}

func TestValidateTokenValid(t *testing.T) {
	secret := "test-secret"
	userID := int64(42)

	token, err := GenerateToken(userID, secret, time.Hour)
	if err != nil {
		t.Fatalf("GenerateToken() unexpected error: %v", err)
	}

	claims, err := ValidateToken(token, secret)
	if err != nil {
		t.Fatalf("ValidateToken() unexpected error: %v", err)
	}
	if claims.UserID != userID {
		t.Errorf("ValidateToken() UserID = %d, want %d", claims.UserID, userID)
	}
	if claims.ExpiresAt == nil || claims.IssuedAt == nil {
		t.Fatal("ValidateToken() expected exp and iat claims")
	}
	if got := claims.ExpiresAt.Sub(claims.IssuedAt.Time); got != time.Hour {
		t.Errorf("token lifetime = %v, want %v", got, time.Hour)
	}
}

func TestTokenPayloadCarriesID(t *testing.T) {
	token, err := GenerateToken(7, "test-secret", time.Hour)
	if err != nil {
		t.Fatalf("GenerateToken() unexpected error: %v", err)
	}

	mc := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, mc); err != nil {
		t.Fatalf("ParseUnverified() unexpected error: %v", err)
	}
	if id, ok := mc["id"].(float64); !ok || id != 7 {
		t.Errorf("payload id = %v, want 7", mc["id"])
	}
}

func TestValidateTokenInvalid(t *testing.T) {
	_, err := ValidateToken("not-a-valid-token", "test-secret")
	if err != ErrInvalidToken {
		t.Errorf("ValidateToken() error = %v, want ErrInvalidToken", err)
	}
}

func TestValidateTokenWrongSecret(t *testing.T) {
	token, err := GenerateToken(42, "correct-secret", time.Hour)
	if err != nil {
		t.Fatalf("GenerateToken() unexpected error: %v", err)
	}

	_, err = ValidateToken(token, "wrong-secret")
	if err != ErrInvalidToken {
		t.Errorf("ValidateToken() error = %v, want ErrInvalidToken", err)
	}
}

func TestValidateTokenExpired(t *testing.T) {
	token, err := GenerateToken(42, "test-secret", -time.Second)
	if err != nil {
		t.Fatalf("GenerateToken() unexpected error: %v", err)
	}

	_, err = ValidateToken(token, "test-secret")
	if err != ErrInvalidToken {
		t.Errorf("ValidateToken() error = %v, want ErrInvalidToken", err)
	}
}

func TestValidateTokenTampered(t *testing.T) {
	secret := "test-secret"
	token, err := GenerateToken(42, secret, time.Hour)
	if err != nil {
		t.Fatalf("GenerateToken() unexpected error: %v", err)
	}

	for i := 0; i < len(token); i++ {
		tampered := []byte(token)
		if token[i] == '.' {
			tampered[i] = 'x'
		} else {
			// Flip the high bit of the 6-bit value so padding bits never absorb the change.
			idx := strings.IndexByte(base64URLAlphabet, token[i])
			tampered[i] = base64URLAlphabet[idx^32]
		}

		if _, err := ValidateToken(string(tampered), secret); err == nil {
			t.Fatalf("ValidateToken() accepted token altered at byte %d", i)
		}
	}
}

func TestValidateTokenWrongIssuer(t *testing.T) {
	secret := "test-secret"

	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    "wrong-issuer",
			Audience:  jwt.ClaimStrings{tokenAudience},
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
		UserID: 42,
	}
	tokenString, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	if err != nil {
		t.Fatalf("SignedString() unexpected error: %v", err)
	}

	if _, err := ValidateToken(tokenString, secret); err == nil {
		t.Error("ValidateToken() expected error for wrong issuer")
	}
}

func TestValidateTokenMissingExpiry(t *testing.T) {
	secret := "test-secret"

	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:   tokenIssuer,
			Audience: jwt.ClaimStrings{tokenAudience},
			IssuedAt: jwt.NewNumericDate(time.Now()),
		},
		UserID: 42,
	}
	tokenString, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	if err != nil {
		t.Fatalf("SignedString() unexpected error: %v", err)
	}

	if _, err := ValidateToken(tokenString, secret); err == nil {
		t.Error("ValidateToken() expected error for token without exp")
	}
}

func TestValidateTokenRejectsNoneAlgorithm(t *testing.T) {
	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    tokenIssuer,
			Audience:  jwt.ClaimStrings{tokenAudience},
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
		UserID: 42,
	}
	tokenString, err := jwt.NewWithClaims(jwt.SigningMethodNone, claims).SignedString(jwt.UnsafeAllowNoneSignatureType)
	if err != nil {
		t.Fatalf("SignedString() unexpected error: %v", err)
	}

	if _, err := ValidateToken(tokenString, "test-secret"); err == nil {
		t.Error("ValidateToken() expected error for alg=none")
	}
}
