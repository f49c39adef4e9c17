package identity

import (
	"context"
	"errors"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

func TestNewSelectsMode(t *testing.T) {
	if _, err := New("mock", ""); err != nil {
		t.Fatalf("mock: %v", err)
	}
	if _, err := New("", ""); err != nil {
		t.Fatalf("empty defaults to mock: %v", err)
	}
	if _, err := New("JWT", "secret"); err != nil {
		t.Fatalf("mode is case-insensitive: %v", err)
	}
	if _, err := New("jwt", ""); err == nil {
		t.Fatal("jwt mode without a secret must fail")
	}
	if _, err := New("ldap", ""); err == nil {
		t.Fatal("unknown mode must fail")
	}
}

func TestMockResolverReturnsFixedOwner(t *testing.T) {
	resolver, err := New(ModeMock, "")
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	req := httptest.NewRequest("GET", "/themes", nil)
	ownerID, err := resolver.Resolve(req)
	if err != nil || ownerID != MockOwnerID {
		t.Fatalf("got %s, %v", ownerID, err)
	}
}

func TestJWTResolver(t *testing.T) {
	const secret = "s3cret"
	resolver, err := New(ModeJWT, secret)
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	ownerID := uuid.New()

	sign := func(secret string, claims jwt.MapClaims) string {
		token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
		signed, err := token.SignedString([]byte(secret))
		if err != nil {
			t.Fatalf("sign: %v", err)
		}
		return signed
	}

	t.Run("valid token", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/themes", nil)
		req.Header.Set("Authorization", "Bearer "+sign(secret, jwt.MapClaims{
			"sub": ownerID.String(),
			"exp": time.Now().Add(time.Hour).Unix(),
		}))
		got, err := resolver.Resolve(req)
		if err != nil || got != ownerID {
			t.Fatalf("got %s, %v", got, err)
		}
	})

	t.Run("missing header", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/themes", nil)
		if _, err := resolver.Resolve(req); !errors.Is(err, ErrUnauthenticated) {
			t.Fatalf("got %v", err)
		}
	})

	t.Run("wrong secret", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/themes", nil)
		req.Header.Set("Authorization", "Bearer "+sign("other", jwt.MapClaims{"sub": ownerID.String()}))
		if _, err := resolver.Resolve(req); !errors.Is(err, ErrUnauthenticated) {
			t.Fatalf("got %v", err)
		}
	})

	t.Run("expired token", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/themes", nil)
		req.Header.Set("Authorization", "Bearer "+sign(secret, jwt.MapClaims{
			"sub": ownerID.String(),
			"exp": time.Now().Add(-time.Hour).Unix(),
		}))
		if _, err := resolver.Resolve(req); !errors.Is(err, ErrUnauthenticated) {
			t.Fatalf("got %v", err)
		}
	})

	t.Run("sub is not a uuid", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/themes", nil)
		req.Header.Set("Authorization", "Bearer "+sign(secret, jwt.MapClaims{"sub": "user-42"}))
		if _, err := resolver.Resolve(req); !errors.Is(err, ErrUnauthenticated) {
			t.Fatalf("got %v", err)
		}
	})
}

func TestOwnerContextRoundTrip(t *testing.T) {
	ownerID := uuid.New()
	ctx := WithOwner(context.Background(), ownerID)
	got, ok := OwnerFromContext(ctx)
	if !ok || got != ownerID {
		t.Fatalf("got %s, %v", got, ok)
	}
	if _, ok := OwnerFromContext(context.Background()); ok {
		t.Fatal("empty context must not carry an owner")
	}
	if _, ok := OwnerFromContext(WithOwner(context.Background(), uuid.Nil)); ok {
		t.Fatal("nil owner is not an identity")
	}
}
