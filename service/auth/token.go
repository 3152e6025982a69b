package auth

import (
	"fmt"

	"github.com/golang-jwt/jwt/v5"
	"github.com/pandodao/card-transfer/core"
)

func (s *service) sign(session *core.Session) (string, error) {
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		ID:        session.ID,
		Subject:   session.Login,
		IssuedAt:  jwt.NewNumericDate(session.CreatedAt),
		ExpiresAt: jwt.NewNumericDate(session.ExpiresAt),
	})

	return t.SignedString([]byte(s.cfg.Secret))
}

// parse returns the session id carried by a valid, unexpired token.
func (s *service) parse(token string) (string, error) {
	var claims jwt.RegisteredClaims
	if _, err := jwt.ParseWithClaims(
		token,
		&claims,
		func(*jwt.Token) (any, error) { return []byte(s.cfg.Secret), nil },
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(s.now),
	); err != nil {
		return "", err
	}

	if claims.ID == "" {
		return "", fmt.Errorf("token without id")
	}

	return claims.ID, nil
}
