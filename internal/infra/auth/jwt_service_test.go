package auth

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"accounts/config"
	"accounts/internal/domain/entity"
	"accounts/internal/domain/service"
)

const testSecret = "test_access_secret_key_very_long_for_testing"

func newTestJWTConfig(secret string) *config.Config {
	cfg := &config.Config{}
	cfg.SecretKey.Access = secret

	return cfg
}

// signToken issues a token the way the session layer does.
func signToken(t *testing.T, secret string, issuedAt time.Time, requestor entity.Requestor) string {
	t.Helper()

	claims := &service.Claims{
		Email:   requestor.Email,
		IsAdmin: requestor.IsAdmin,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   requestor.Email,
			IssuedAt:  jwt.NewNumericDate(issuedAt),
			ExpiresAt: jwt.NewNumericDate(issuedAt.Add(15 * time.Minute)),
		},
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	require.NoError(t, err)

	return signed
}

func TestJWTService_ValidateToken(t *testing.T) {
	jwtService, err := NewJWTService(newTestJWTConfig(testSecret))
	require.NoError(t, err)

	token := signToken(t, testSecret, time.Now(), entity.Requestor{Email: "root@example.com", IsAdmin: true})

	claims, err := jwtService.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, "root@example.com", claims.Email)
	assert.True(t, claims.IsAdmin)
	assert.Equal(t, entity.Requestor{Email: "root@example.com", IsAdmin: true}, claims.Requestor())
}

func TestJWTService_InvalidToken(t *testing.T) {
	jwtService, err := NewJWTService(newTestJWTConfig(testSecret))
	require.NoError(t, err)

	claims, err := jwtService.ValidateToken("clearly-not-a-jwt-token-format")
	assert.Error(t, err)
	assert.Nil(t, claims)
	assert.Contains(t, err.Error(), "failed to parse token")
}

func TestJWTService_WrongSecret(t *testing.T) {
	verifier, err := NewJWTService(newTestJWTConfig("other_secret"))
	require.NoError(t, err)

	token := signToken(t, "issuer_secret", time.Now(), entity.Requestor{Email: "a@example.com"})

	_, err = verifier.ValidateToken(token)
	assert.ErrorIs(t, err, jwt.ErrTokenSignatureInvalid)
}

func TestJWTService_ExpiredToken(t *testing.T) {
	svc, err := NewJWTService(newTestJWTConfig(testSecret))
	require.NoError(t, err)

	token := signToken(t, testSecret, time.Now().Add(-time.Hour), entity.Requestor{Email: "a@example.com"})

	_, err = svc.ValidateToken(token)
	assert.ErrorIs(t, err, jwt.ErrTokenExpired)
}

func TestJWTService_UsesInjectedClock(t *testing.T) {
	svc, err := NewJWTService(newTestJWTConfig(testSecret))
	require.NoError(t, err)

	issuedAt := time.Now().Add(-time.Hour)
	token := signToken(t, testSecret, issuedAt, entity.Requestor{Email: "a@example.com"})

	js := svc.(*jwtService)
	js.now = func() time.Time { return issuedAt.Add(time.Minute) }

	claims, err := js.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, "a@example.com", claims.Email)
}

func TestJWTService_RejectsNoneAlgorithm(t *testing.T) {
	svc, err := NewJWTService(newTestJWTConfig(testSecret))
	require.NoError(t, err)

	unsigned := jwt.NewWithClaims(jwt.SigningMethodNone, jwt.MapClaims{"email": "a@example.com", "is_admin": true})
	token, err := unsigned.SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	_, err = svc.ValidateToken(token)
	assert.Error(t, err)
}

func TestJWTService_EmptySecret(t *testing.T) {
	jwtService, err := NewJWTService(newTestJWTConfig(""))
	assert.Error(t, err)
	assert.Nil(t, jwtService)
	assert.Contains(t, err.Error(), "jwt access secret must be provided")
}
