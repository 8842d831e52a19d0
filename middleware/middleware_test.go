package middleware

import (
	"testing"
	"time"

	"reveo/globals"

	"github.com/golang-jwt/jwt/v5"
)

func mintToken(t *testing.T, userID, role string, ttl time.Duration) string {
	t.Helper()
	claims := &Claims{
		UserID: userID,
		Role:   role,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(ttl)),
		},
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(globals.JwtSecret)
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}
	return signed
}

func TestValidateJWT(t *testing.T) {
	token := mintToken(t, "user1", "restaurant", time.Hour)

	claims, err := ValidateJWT("Bearer " + token)
	if err != nil {
		t.Fatalf("valid token rejected: %v", err)
	}
	if claims.UserID != "user1" || claims.Role != "restaurant" {
		t.Fatalf("claims not round-tripped: %+v", claims)
	}
}

func TestValidateJWTRejectsBadTokens(t *testing.T) {
	if _, err := ValidateJWT(""); err == nil {
		t.Fatal("empty token must be rejected")
	}
	if _, err := ValidateJWT("Bearer not.a.token"); err == nil {
		t.Fatal("garbage token must be rejected")
	}
	expired := mintToken(t, "user1", "restaurant", -time.Hour)
	if _, err := ValidateJWT("Bearer " + expired); err == nil {
		t.Fatal("expired token must be rejected")
	}
}
