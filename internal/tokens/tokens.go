package tokens

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const (
	AccessTTL  = 30 * time.Minute
	RefreshTTL = 7 * 24 * time.Hour
)

// ErrInvalidToken is the single verification failure surfaced to callers.
// Signature, expiry and missing-subject failures are indistinguishable.
var ErrInvalidToken = errors.New("invalid token")

// Codec signs and verifies the access/refresh token pair. The two secrets
// are distinct: a token signed with one never verifies against the other.
type Codec struct {
	AccessSecret  []byte
	RefreshSecret []byte
}

func (c *Codec) IssueAccess(subject string) (string, error) {
	return sign(subject, c.AccessSecret, AccessTTL)
}

func (c *Codec) IssueRefresh(subject string) (string, error) {
	return sign(subject, c.RefreshSecret, RefreshTTL)
}

func sign(subject string, secret []byte, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := jwt.RegisteredClaims{
		Subject:   subject,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
	}
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString(secret)
}

func (c *Codec) ParseAccess(tokenStr string) (*jwt.RegisteredClaims, error) {
	return parse(tokenStr, c.AccessSecret)
}

func (c *Codec) ParseRefresh(tokenStr string) (*jwt.RegisteredClaims, error) {
	return parse(tokenStr, c.RefreshSecret)
}

func parse(tokenStr string, secret []byte) (*jwt.RegisteredClaims, error) {
	var claims jwt.RegisteredClaims
	tkn, err := jwt.ParseWithClaims(tokenStr, &claims, func(t *jwt.Token) (any, error) {
		if t.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, errors.New("unexpected sign method")
		}
		return secret, nil
	})
	if err != nil || !tkn.Valid || claims.Subject == "" {
		return nil, ErrInvalidToken
	}
	return &claims, nil
}

// Rotate re-signs a valid refresh token. The claim set is carried over
// untouched: rotation does not advance the expiry, so a refresh token's
// absolute lifetime stays capped at RefreshTTL from first issuance.
func (c *Codec) Rotate(refreshToken string) (string, error) {
	claims, err := c.ParseRefresh(refreshToken)
	if err != nil {
		return "", err
	}
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString(c.RefreshSecret)
}

// RefreshPair verifies a refresh token, mints a new access token for its
// subject and rotates the refresh token.
func (c *Codec) RefreshPair(refreshToken string) (access, refresh string, err error) {
	claims, err := c.ParseRefresh(refreshToken)
	if err != nil {
		return "", "", err
	}
	access, err = c.IssueAccess(claims.Subject)
	if err != nil {
		return "", "", err
	}
	refresh, err = c.Rotate(refreshToken)
	if err != nil {
		return "", "", err
	}
	return access, refresh, nil
}
