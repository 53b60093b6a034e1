package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

var (
	ErrTokenMalformed = errors.New("token is malformed")
	ErrTokenSignature = errors.New("token signature is invalid")
	ErrTokenExpired   = errors.New("token has expired")
)

// JWTConfig holds JWT configuration
type JWTConfig struct {
	Secret string
	Expiry time.Duration
	Issuer string
}

// Claims represents JWT claims. The subject is the admin id.
type Claims struct {
	AdminID string `json:"adminId"`
	jwt.RegisteredClaims
}

// JWTManager issues and decodes signed bearer tokens
type JWTManager struct {
	config JWTConfig
	now    func() time.Time
}

// NewJWTManager creates a new JWT manager
func NewJWTManager(config JWTConfig) *JWTManager {
	return &JWTManager{
		config: config,
		now:    time.Now,
	}
}

// Expiry returns the configured token lifetime
func (j *JWTManager) Expiry() time.Duration {
	return j.config.Expiry
}

// Issue signs a token for subjectID that expires after the configured expiry
func (j *JWTManager) Issue(subjectID string) (string, error) {
	now := j.now()

	claims := Claims{
		AdminID: subjectID,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.New().String(),
			Subject:   subjectID,
			Issuer:    j.config.Issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(j.config.Expiry)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(j.config.Secret))
}

// Decode verifies the signature and expiry of tokenString and returns the
// subject id. Errors are ErrTokenMalformed, ErrTokenSignature or
// ErrTokenExpired.
func (j *JWTManager) Decode(tokenString string) (string, error) {
	parser := jwt.NewParser(
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(j.now),
		jwt.WithExpirationRequired(),
	)

	claims := &Claims{}
	_, err := parser.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		return []byte(j.config.Secret), nil
	})
	if err != nil {
		switch {
		case errors.Is(err, jwt.ErrTokenExpired):
			return "", ErrTokenExpired
		case errors.Is(err, jwt.ErrTokenSignatureInvalid), errors.Is(err, jwt.ErrTokenUnverifiable):
			return "", ErrTokenSignature
		default:
			return "", ErrTokenMalformed
		}
	}

	if j.config.Issuer != "" && claims.Issuer != j.config.Issuer {
		return "", ErrTokenSignature
	}

	subject := claims.Subject
	if subject == "" {
		subject = claims.AdminID
	}
	if subject == "" {
		return "", ErrTokenMalformed
	}

	return subject, nil
}
