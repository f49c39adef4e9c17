// Package identity resolves the owner behind an HTTP request. The strategy
// is chosen once at startup; nothing downstream knows or cares which one is
// active, since handlers only ever see a resolved owner id or none.
package identity

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// ErrUnauthenticated means the request carries no usable identity.
var ErrUnauthenticated = errors.New("identity: unauthenticated")

// MockOwnerID is the fixed development identity used by the mock resolver.
var MockOwnerID = uuid.MustParse("00000000-0000-0000-0000-000000000001")

type Resolver interface {
	Resolve(r *http.Request) (uuid.UUID, error)
}

const (
	ModeMock = "mock"
	ModeJWT  = "jwt"
)

// New selects a resolver strategy by mode.
func New(mode, jwtSecret string) (Resolver, error) {
	switch strings.ToLower(strings.TrimSpace(mode)) {
	case ModeMock, "":
		return &mockResolver{ownerID: MockOwnerID}, nil
	case ModeJWT:
		if jwtSecret == "" {
			return nil, errors.New("identity: jwt mode requires a secret")
		}
		return &jwtResolver{secret: []byte(jwtSecret)}, nil
	default:
		return nil, fmt.Errorf("identity: unknown auth mode %q", mode)
	}
}

// mockResolver authenticates every request as the fixed dev user. Never run
// it in production.
type mockResolver struct {
	ownerID uuid.UUID
}

func (m *mockResolver) Resolve(*http.Request) (uuid.UUID, error) {
	return m.ownerID, nil
}

// jwtResolver validates a Bearer token and reads the owner id from the sub
// claim.
type jwtResolver struct {
	secret []byte
}

func (j *jwtResolver) Resolve(r *http.Request) (uuid.UUID, error) {
	authHeader := r.Header.Get("Authorization")
	if len(authHeader) <= 7 || !strings.EqualFold(authHeader[:7], "Bearer ") {
		return uuid.Nil, ErrUnauthenticated
	}
	tokenString := authHeader[7:]

	token, err := jwt.Parse(tokenString, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return j.secret, nil
	})
	if err != nil || !token.Valid {
		return uuid.Nil, ErrUnauthenticated
	}

	sub, err := token.Claims.GetSubject()
	if err != nil {
		return uuid.Nil, ErrUnauthenticated
	}
	ownerID, err := uuid.Parse(sub)
	if err != nil {
		return uuid.Nil, ErrUnauthenticated
	}
	return ownerID, nil
}

type ownerKey struct{}

// WithOwner attaches a resolved owner id to the request context.
func WithOwner(ctx context.Context, ownerID uuid.UUID) context.Context {
	return context.WithValue(ctx, ownerKey{}, ownerID)
}

// OwnerFromContext returns the resolved owner id, or false when the request
// never passed authentication.
func OwnerFromContext(ctx context.Context) (uuid.UUID, bool) {
	ownerID, ok := ctx.Value(ownerKey{}).(uuid.UUID)
	if !ok || ownerID == uuid.Nil {
		return uuid.Nil, false
	}
	return ownerID, true
}
