package session

import (
	"context"
	"fmt"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rescueops/admin-console/cmd/config"
)

// Actor is the authenticated admin driving the console. Its identity is
// what the events screen records as coordinator_id.
type Actor struct {
	ID   string
	Role string
}

type SessionApp interface {
	ValidateToken(ctx context.Context, tokenString string) (Actor, error)
}

type sessionAppImpl struct {
	config *config.Config
}

func NewSessionApp(config *config.Config) SessionApp {
	return &sessionAppImpl{config: config}
}

type actorClaims struct {
	Role string `json:"role"`
	jwt.RegisteredClaims
}

func (s *sessionAppImpl) ValidateToken(ctx context.Context, tokenString string) (Actor, error) {
	token, err := jwt.ParseWithClaims(tokenString, &actorClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", token.Header["alg"])
		}
		return []byte(s.config.Auth.JWTSecret), nil
	})
	if err != nil {
		return Actor{}, fmt.Errorf("invalid token: %w", err)
	}

	claims, ok := token.Claims.(*actorClaims)
	if !ok || !token.Valid {
		return Actor{}, fmt.Errorf("invalid claims")
	}
	if claims.Subject == "" {
		return Actor{}, fmt.Errorf("token missing subject")
	}

	return Actor{ID: claims.Subject, Role: claims.Role}, nil
}
