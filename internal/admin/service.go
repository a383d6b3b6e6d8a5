// Package admin gates the dashboard behind the shared event passcode and
// serves participant listings, stats, and exports.
package admin

import (
	"crypto/subtle"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"
)

const defaultTokenTTL = 2 * time.Hour

var (
	ErrInvalidPasscode = errors.New("invalid passcode")
	ErrInvalidToken    = errors.New("invalid token")
)

// Options configures the admin service. Either PasscodeHash (bcrypt) or
// Passcode (plaintext, compared in constant time) must be set; the hash wins
// when both are present.
type Options struct {
	Passcode     string
	PasscodeHash string
	JWTSecret    []byte
	TokenTTL     time.Duration
	Issuer       string
}

// Service verifies the shared passcode and issues short-lived session
// tokens. There is no lockout or throttling; the stakes are a private social
// event.
type Service struct {
	passcode     string
	passcodeHash []byte
	secret       []byte
	ttl          time.Duration
	issuer       string
	logger       zerolog.Logger
	now          func() time.Time
}

// NewService constructs the admin service.
func NewService(opts Options, logger zerolog.Logger) (*Service, error) {
	if opts.Passcode == "" && opts.PasscodeHash == "" {
		return nil, errors.New("admin passcode not configured")
	}
	if len(opts.JWTSecret) == 0 {
		return nil, errors.New("admin JWT secret not configured")
	}
	ttl := opts.TokenTTL
	if ttl <= 0 {
		ttl = defaultTokenTTL
	}
	return &Service{
		passcode:     opts.Passcode,
		passcodeHash: []byte(opts.PasscodeHash),
		secret:       opts.JWTSecret,
		ttl:          ttl,
		issuer:       opts.Issuer,
		logger:       logger.With().Str("component", "admin").Logger(),
		now:          time.Now,
	}, nil
}

// Login verifies the passcode and returns a signed session token.
func (s *Service) Login(passcode string) (string, error) {
	if !s.verify(passcode) {
		s.logger.Warn().Msg("admin login rejected")
		return "", ErrInvalidPasscode
	}

	now := s.now()
	claims := jwt.RegisteredClaims{
		Issuer:    s.issuer,
		Subject:   "admin",
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return token, nil
}

func (s *Service) verify(passcode string) bool {
	if len(s.passcodeHash) > 0 {
		return bcrypt.CompareHashAndPassword(s.passcodeHash, []byte(passcode)) == nil
	}
	return subtle.ConstantTimeCompare([]byte(s.passcode), []byte(passcode)) == 1
}

// VerifyToken validates a session token, including its expiry.
func (s *Service) VerifyToken(token string) error {
	parsed, err := jwt.ParseWithClaims(token, &jwt.RegisteredClaims{}, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return s.secret, nil
	})
	if err != nil || !parsed.Valid {
		return ErrInvalidToken
	}
	return nil
}

// TokenTTL reports the configured token lifetime.
func (s *Service) TokenTTL() time.Duration {
	return s.ttl
}
