package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt"
	"github.com/labstack/echo/v4"
)

func TestGenerateJWTRoundTrip(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")

	tokenString, err := GenerateJWT("507f1f77bcf86cd799439011", "admin@example.com", "admin")
	if err != nil {
		t.Fatalf("GenerateJWT: %v", err)
	}

	claims := &JwtCustomClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		return []byte("test-secret"), nil
	})
	if err != nil || !token.Valid {
		t.Fatalf("parse failed: %v", err)
	}

	if claims.UserID != "507f1f77bcf86cd799439011" {
		t.Errorf("userId = %q", claims.UserID)
	}
	if claims.Email != "admin@example.com" {
		t.Errorf("email = %q", claims.Email)
	}
	if claims.Role != "admin" {
		t.Errorf("role = %q", claims.Role)
	}

	expiry := time.Unix(claims.ExpiresAt, 0)
	wantExpiry := time.Now().Add(TokenTTL)
	if diff := expiry.Sub(wantExpiry); diff < -time.Minute || diff > time.Minute {
		t.Errorf("expiry = %v, want about %v from now", expiry, TokenTTL)
	}
}

func TestGenerateJWTMissingSecret(t *testing.T) {
	t.Setenv("JWT_SECRET", "")

	if _, err := GenerateJWT("id", "a@b.co", "employee"); err == nil {
		t.Fatal("expected an error when JWT_SECRET is unset")
	}
}

func TestGenerateJWTTamperedSignature(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")

	tokenString, err := GenerateJWT("id", "a@b.co", "employee")
	if err != nil {
		t.Fatalf("GenerateJWT: %v", err)
	}

	claims := &JwtCustomClaims{}
	_, err = jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		return []byte("a-different-secret"), nil
	})
	if err == nil {
		t.Fatal("token signed with one secret must not verify under another")
	}
}

type tokenSet map[string]bool

func (s tokenSet) IsRevoked(ctx context.Context, token string) bool { return s[token] }

// A token cleared at logout must be rejected before the protected handler
// runs, not merely answered with a 401 after the fact.
func TestJWTMiddlewareRevokedTokenNeverReachesHandler(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")

	token, err := GenerateJWT("507f1f77bcf86cd799439011", "admin@example.com", "admin")
	if err != nil {
		t.Fatalf("GenerateJWT: %v", err)
	}

	handlerRan := false
	h := JWTMiddleware(tokenSet{token: true})(func(c echo.Context) error {
		handlerRan = true
		return c.NoContent(http.StatusOK)
	})

	e := echo.New()
	req := httptest.NewRequest(http.MethodDelete, "/api/employee/abc", nil)
	req.Header.Set(echo.HeaderAuthorization, "Bearer "+token)
	c := e.NewContext(req, httptest.NewRecorder())

	err = h(c)
	httpErr, ok := err.(*echo.HTTPError)
	if !ok || httpErr.Code != http.StatusUnauthorized {
		t.Fatalf("err = %v, want 401 HTTPError", err)
	}
	if handlerRan {
		t.Fatal("protected handler executed for a revoked token")
	}
}

func TestJWTMiddlewareLiveTokenPassesThrough(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")

	token, err := GenerateJWT("507f1f77bcf86cd799439011", "admin@example.com", "admin")
	if err != nil {
		t.Fatalf("GenerateJWT: %v", err)
	}

	handlerRan := false
	h := JWTMiddleware(tokenSet{})(func(c echo.Context) error {
		handlerRan = true
		if got := c.Get("role"); got != "admin" {
			t.Errorf("role in context = %v, want admin", got)
		}
		return c.NoContent(http.StatusOK)
	})

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/api/employee", nil)
	req.Header.Set(echo.HeaderAuthorization, "Bearer "+token)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := h(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !handlerRan {
		t.Fatal("handler did not run for a live token")
	}
	if rec.Code != http.StatusOK {
		t.Errorf("status = %d, want 200", rec.Code)
	}
}

func TestJwtCustomClaimsValid(t *testing.T) {
	now := time.Now().Unix()

	tests := []struct {
		name    string
		claims  JwtCustomClaims
		wantErr bool
	}{
		{"live token", JwtCustomClaims{StandardClaims: jwt.StandardClaims{ExpiresAt: now + 3600}}, false},
		{"expired token", JwtCustomClaims{StandardClaims: jwt.StandardClaims{ExpiresAt: now - 1}}, true},
		{"not yet valid", JwtCustomClaims{StandardClaims: jwt.StandardClaims{NotBefore: now + 3600}}, true},
		{"no temporal claims", JwtCustomClaims{}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.claims.Valid()
			if (err != nil) != tt.wantErr {
				t.Errorf("Valid() = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}
