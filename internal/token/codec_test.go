package token

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"

	"member-auth/internal/model"
)

const testSecret = "0123456789abcdef0123456789abcdef"

func newTestCodec(t *testing.T, accessTTL time.Duration, refreshTTL time.Duration) *Codec {
	t.Helper()

	codec, err := NewCodec([]byte(testSecret), accessTTL, refreshTTL)
	require.NoError(t, err)
	return codec
}

func TestNewCodecRejectsShortSecret(t *testing.T) {
	t.Parallel()

	_, err := NewCodec([]byte("too-short"), time.Minute, time.Hour)
	require.Error(t, err)
}

func TestAccessTokenRoundTrip(t *testing.T) {
	t.Parallel()

	codec := newTestCodec(t, 15*time.Minute, 24*time.Hour)

	issued := AccessClaims{ID: 42, Role: model.RoleGeneral, Name: "Kim"}
	tokenString, err := codec.IssueAccess(issued)
	require.NoError(t, err)

	parsed, err := codec.ParseAccess(tokenString)
	require.NoError(t, err)
	require.Equal(t, issued, parsed)
}

func TestRefreshTokenRoundTrip(t *testing.T) {
	t.Parallel()

	codec := newTestCodec(t, 15*time.Minute, 24*time.Hour)

	tokenString, err := codec.IssueRefresh(RefreshClaims{ID: 7})
	require.NoError(t, err)

	parsed, err := codec.ParseRefresh(tokenString)
	require.NoError(t, err)
	require.Equal(t, RefreshClaims{ID: 7}, parsed)
}

func TestExpiredTokensAreRejected(t *testing.T) {
	t.Parallel()

	codec := newTestCodec(t, -time.Second, -time.Second)

	accessToken, err := codec.IssueAccess(AccessClaims{ID: 1, Role: model.RoleGeneral, Name: "Kim"})
	require.NoError(t, err)
	_, err = codec.ParseAccess(accessToken)
	require.ErrorIs(t, err, model.ErrUnauthorized)

	refreshToken, err := codec.IssueRefresh(RefreshClaims{ID: 1})
	require.NoError(t, err)
	_, err = codec.ParseRefresh(refreshToken)
	require.ErrorIs(t, err, model.ErrUnauthorized)
}

func TestWrongSecretIsRejected(t *testing.T) {
	t.Parallel()

	codec := newTestCodec(t, 15*time.Minute, 24*time.Hour)
	other := newTestCodec(t, 15*time.Minute, 24*time.Hour)
	other.secret = []byte("ffffffffffffffffffffffffffffffff")

	tokenString, err := codec.IssueAccess(AccessClaims{ID: 1, Role: model.RoleGeneral, Name: "Kim"})
	require.NoError(t, err)

	_, err = other.ParseAccess(tokenString)
	require.ErrorIs(t, err, model.ErrUnauthorized)
}

func TestMalformedTokensAreRejected(t *testing.T) {
	t.Parallel()

	codec := newTestCodec(t, 15*time.Minute, 24*time.Hour)

	for _, tokenString := range []string{"", "not.a.jwt", "garbage"} {
		_, err := codec.ParseAccess(tokenString)
		require.ErrorIs(t, err, model.ErrUnauthorized)

		_, err = codec.ParseRefresh(tokenString)
		require.ErrorIs(t, err, model.ErrUnauthorized)
	}
}

func TestClaimShapesAreNotInterchangeable(t *testing.T) {
	t.Parallel()

	codec := newTestCodec(t, 15*time.Minute, 24*time.Hour)

	accessToken, err := codec.IssueAccess(AccessClaims{ID: 1, Role: model.RoleGeneral, Name: "Kim"})
	require.NoError(t, err)
	refreshToken, err := codec.IssueRefresh(RefreshClaims{ID: 1})
	require.NoError(t, err)

	t.Run("access token rejected as refresh", func(t *testing.T) {
		_, err := codec.ParseRefresh(accessToken)
		require.ErrorIs(t, err, model.ErrUnauthorized)
	})

	t.Run("refresh token rejected as access", func(t *testing.T) {
		_, err := codec.ParseAccess(refreshToken)
		require.ErrorIs(t, err, model.ErrUnauthorized)
	})
}

func TestMalformedClaimFieldsAreRejected(t *testing.T) {
	t.Parallel()

	codec := newTestCodec(t, 15*time.Minute, 24*time.Hour)
	exp := time.Now().Add(time.Hour).Unix()

	cases := map[string]jwt.MapClaims{
		"unknown role":    {"id": int64(1), "role": "SUPER", "name": "Kim", "exp": exp},
		"missing id":      {"role": "GENERAL", "name": "Kim", "exp": exp},
		"fractional id":   {"id": 1.5, "role": "GENERAL", "name": "Kim", "exp": exp},
		"non-string name": {"id": int64(1), "role": "GENERAL", "name": 3, "exp": exp},
		"missing expiry":  {"id": int64(1), "role": "GENERAL", "name": "Kim"},
	}

	for name, claims := range cases {
		t.Run(name, func(t *testing.T) {
			tokenString, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testSecret))
			require.NoError(t, err)

			_, err = codec.ParseAccess(tokenString)
			require.ErrorIs(t, err, model.ErrUnauthorized)
		})
	}
}

func TestNonHMACSigningMethodIsRejected(t *testing.T) {
	t.Parallel()

	codec := newTestCodec(t, 15*time.Minute, 24*time.Hour)

	// alg=none tokens must never verify.
	unsigned, err := jwt.NewWithClaims(jwt.SigningMethodNone, jwt.MapClaims{
		"id":  int64(1),
		"exp": time.Now().Add(time.Hour).Unix(),
	}).SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	_, err = codec.ParseRefresh(unsigned)
	require.ErrorIs(t, err, model.ErrUnauthorized)
}
