package jwtutil

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Verifier checks HS256 bearer tokens issued for the write API.
type Verifier struct {
	secret    []byte
	clockSkew time.Duration
}

func NewVerifier(secret string, clockSkew time.Duration) *Verifier {
	return &Verifier{secret: []byte(secret), clockSkew: clockSkew}
}

// Sign issues a token for subject valid for ttl.
func (v *Verifier) Sign(subject string, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := jwt.RegisteredClaims{
		Subject:   subject,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(v.secret)
}

// Parse verifies the HS256 signature and expiry (with leeway) and returns the claims.
func (v *Verifier) Parse(tokenStr string) (*jwt.RegisteredClaims, error) {
	parser := jwt.NewParser(
		jwt.WithLeeway(v.clockSkew),
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
	)
	token, err := parser.ParseWithClaims(tokenStr, &jwt.RegisteredClaims{}, func(t *jwt.Token) (interface{}, error) {
		return v.secret, nil
	})
	if err != nil {
		return nil, err
	}
	claims, ok := token.Claims.(*jwt.RegisteredClaims)
	if !ok || !token.Valid {
		return nil, errors.New("invalid token")
	}
	return claims, nil
}
