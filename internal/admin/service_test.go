package admin

import (
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func newTestService(t *testing.T, opts Options) *Service {
	t.Helper()
	if len(opts.JWTSecret) == 0 {
		opts.JWTSecret = []byte("test-secret")
	}
	svc, err := NewService(opts, zerolog.Nop())
	require.NoError(t, err)
	return svc
}

func TestNewServiceRequiresPasscodeAndSecret(t *testing.T) {
	_, err := NewService(Options{JWTSecret: []byte("s")}, zerolog.Nop())
	assert.Error(t, err)

	_, err = NewService(Options{Passcode: "farewell2026"}, zerolog.Nop())
	assert.Error(t, err)
}

func TestLoginPlaintextPasscode(t *testing.T) {
	svc := newTestService(t, Options{Passcode: "farewell2026"})

	token, err := svc.Login("farewell2026")
	require.NoError(t, err)
	assert.NotEmpty(t, token)

	_, err = svc.Login("wrong")
	assert.ErrorIs(t, err, ErrInvalidPasscode)
}

func TestLoginBcryptHash(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("farewell2026"), bcrypt.MinCost)
	require.NoError(t, err)

	svc := newTestService(t, Options{PasscodeHash: string(hash)})

	_, err = svc.Login("farewell2026")
	assert.NoError(t, err)

	_, err = svc.Login("wrong")
	assert.ErrorIs(t, err, ErrInvalidPasscode)
}

func TestHashWinsOverPlaintext(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("hashed"), bcrypt.MinCost)
	require.NoError(t, err)

	svc := newTestService(t, Options{Passcode: "plaintext", PasscodeHash: string(hash)})

	_, err = svc.Login("hashed")
	assert.NoError(t, err)

	_, err = svc.Login("plaintext")
	assert.ErrorIs(t, err, ErrInvalidPasscode)
}

func TestVerifyTokenRoundTrip(t *testing.T) {
	svc := newTestService(t, Options{Passcode: "farewell2026", Issuer: "farewell-quiz"})

	token, err := svc.Login("farewell2026")
	require.NoError(t, err)
	assert.NoError(t, svc.VerifyToken(token))
}

func TestVerifyTokenRejectsWrongSecret(t *testing.T) {
	issuing := newTestService(t, Options{Passcode: "p", JWTSecret: []byte("secret-a")})
	verifying := newTestService(t, Options{Passcode: "p", JWTSecret: []byte("secret-b")})

	token, err := issuing.Login("p")
	require.NoError(t, err)

	assert.ErrorIs(t, verifying.VerifyToken(token), ErrInvalidToken)
	assert.ErrorIs(t, verifying.VerifyToken("not-a-token"), ErrInvalidToken)
}

func TestVerifyTokenRejectsExpired(t *testing.T) {
	svc := newTestService(t, Options{Passcode: "p", TokenTTL: time.Minute})
	svc.now = func() time.Time { return time.Now().Add(-2 * time.Hour) }

	token, err := svc.Login("p")
	require.NoError(t, err)

	assert.ErrorIs(t, svc.VerifyToken(token), ErrInvalidToken)
}

func TestTokenTTLDefaults(t *testing.T) {
	svc := newTestService(t, Options{Passcode: "p"})
	assert.Equal(t, defaultTokenTTL, svc.TokenTTL())

	svc = newTestService(t, Options{Passcode: "p", TokenTTL: 30 * time.Minute})
	assert.Equal(t, 30*time.Minute, svc.TokenTTL())
}
