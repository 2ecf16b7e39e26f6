package tokens

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var (
	ErrExpired   = errors.New("token expire")
	ErrMalformed = errors.New("token invalide")
)

const DefaultTTL = time.Hour

// AccessClaims is the whole token payload: the principal id rides in the
// registered Subject, the principal kind in a private claim.
type AccessClaims struct {
	Kind string `json:"kind"`
	jwt.RegisteredClaims
}

// Service signs and verifies access tokens with a single process-wide
// secret. Tokens are stateless; there is no revocation list and changing
// the secret invalidates everything outstanding.
type Service struct {
	Secret []byte
	TTL    time.Duration
}

func NewService(secret []byte) *Service {
	return &Service{Secret: secret, TTL: DefaultTTL}
}

func (s *Service) Issue(principalID, kind string) (string, error) {
	now := time.Now()
	claims := AccessClaims{
		Kind: kind,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   principalID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.TTL)),
		},
	}

	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString(s.Secret)
}

func (s *Service) Verify(raw string) (*AccessClaims, error) {
	var claims AccessClaims
	tkn, err := jwt.ParseWithClaims(raw, &claims, func(t *jwt.Token) (any, error) {
		if t.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, errors.New("unexpected sign method")
		}
		return s.Secret, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrExpired
		}
		return nil, ErrMalformed
	}
	if !tkn.Valid {
		return nil, ErrMalformed
	}
	return &claims, nil
}
