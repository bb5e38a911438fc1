package security

import (
	"errors"
	"strings"
	"time"

	domainerrors "storerating/contexts/identity-access/account-service/domain/errors"

	"github.com/golang-jwt/jwt/v5"
)

const DefaultTokenTTL = 24 * time.Hour

// JWTService issues and verifies HS256 bearer tokens whose subject is the
// user id. Tokens are stateless; there is no revocation.
type JWTService struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

func NewJWTService(secret string, ttl time.Duration) *JWTService {
	if ttl <= 0 {
		ttl = DefaultTokenTTL
	}
	return &JWTService{
		secret: []byte(secret),
		ttl:    ttl,
		now:    func() time.Time { return time.Now().UTC() },
	}
}

// WithClock overrides the time source. Used by tests to mint expired tokens.
func (s *JWTService) WithClock(now func() time.Time) *JWTService {
	clone := *s
	clone.now = now
	return &clone
}

func (s *JWTService) Issue(userID string) (string, error) {
	if strings.TrimSpace(userID) == "" {
		return "", errors.New("token subject is required")
	}
	issuedAt := s.now()
	claims := jwt.RegisteredClaims{
		Subject:   userID,
		IssuedAt:  jwt.NewNumericDate(issuedAt),
		ExpiresAt: jwt.NewNumericDate(issuedAt.Add(s.ttl)),
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
}

func (s *JWTService) Verify(token string) (string, error) {
	claims := &jwt.RegisteredClaims{}
	parsed, err := jwt.ParseWithClaims(token, claims,
		func(t *jwt.Token) (any, error) {
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, domainerrors.ErrTokenMalformed
			}
			return s.secret, nil
		},
		jwt.WithTimeFunc(s.now),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return "", domainerrors.ErrTokenExpired
		}
		return "", domainerrors.ErrTokenMalformed
	}
	if !parsed.Valid || strings.TrimSpace(claims.Subject) == "" {
		return "", domainerrors.ErrTokenMalformed
	}
	return claims.Subject, nil
}
