package server

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v4"
)

// Identity is what the external identity provider hands us: an opaque user
// id plus a display name snapshot. The engine never interprets the id.
type Identity struct {
	UserID string
	Name   string
}

type duelClaims struct {
	Name string `json:"name"`
	jwt.RegisteredClaims
}

// identify authenticates a request. With AUTH_SECRET configured, only
// HS256 bearer tokens are accepted. Without it (local play, tests) the
// X-Player-Id / X-Player-Name headers stand in for the provider.
func (s *Server) identify(r *http.Request) (Identity, error) {
	header := strings.TrimSpace(r.Header.Get("Authorization"))
	if token, ok := strings.CutPrefix(header, "Bearer "); ok && s.cfg.AuthSecret != "" {
		return s.verifyToken(token)
	}
	if s.cfg.AuthSecret == "" {
		if id := strings.TrimSpace(r.Header.Get("X-Player-Id")); id != "" {
			return Identity{
				UserID: id,
				Name:   strings.TrimSpace(r.Header.Get("X-Player-Name")),
			}, nil
		}
	}
	return Identity{}, errUnauthenticated
}

func (s *Server) verifyToken(token string) (Identity, error) {
	claims := &duelClaims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return []byte(s.cfg.AuthSecret), nil
	})
	if err != nil || !parsed.Valid {
		return Identity{}, errUnauthenticated
	}
	if claims.Subject == "" {
		return Identity{}, errUnauthenticated
	}
	return Identity{UserID: claims.Subject, Name: claims.Name}, nil
}
