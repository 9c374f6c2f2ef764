//go:build integration

package integration

import (
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestFullSessionLifecycle(t *testing.T) {
	server := newServer(t)

	signupResp := postJSON(t, server.URL+"/signup", map[string]string{
		"name":     "Lee",
		"email":    "lee@test.com",
		"password": "pass1234!",
	})
	require.Equal(t, http.StatusNoContent, signupResp.StatusCode)

	accessToken, cookie := login(t, server.URL)

	// Token timestamps carry second resolution; without the pause the
	// reissued token could be byte-identical to the first one.
	time.Sleep(1100 * time.Millisecond)

	reissueResp := postWithCookie(t, server.URL+"/auth/reissue", cookie)
	require.Equal(t, http.StatusOK, reissueResp.StatusCode)
	reissuedToken := decodeAccessToken(t, reissueResp)
	require.NotEqual(t, accessToken, reissuedToken)
	require.Equal(t, cookie.Value, refreshCookie(t, reissueResp).Value)

	logoutResp := postWithCookie(t, server.URL+"/logout", cookie)
	require.Equal(t, http.StatusNoContent, logoutResp.StatusCode)
	cleared := refreshCookie(t, logoutResp)
	require.Empty(t, cleared.Value)
	require.Negative(t, cleared.MaxAge)

	deadResp := postWithCookie(t, server.URL+"/auth/reissue", cookie)
	require.Equal(t, http.StatusUnauthorized, deadResp.StatusCode)
}

func TestGateAndRoleProtectedEndpoints(t *testing.T) {
	server := newServer(t)

	anonAll := getWithBearer(t, server.URL+"/all", "")
	require.Equal(t, http.StatusOK, anonAll.StatusCode)

	anonGeneral := getWithBearer(t, server.URL+"/general", "")
	require.Equal(t, http.StatusUnauthorized, anonGeneral.StatusCode)

	anonMe := getWithBearer(t, server.URL+"/me", "")
	require.Equal(t, http.StatusUnauthorized, anonMe.StatusCode)

	accessToken, _ := login(t, server.URL)

	authedGeneral := getWithBearer(t, server.URL+"/general", accessToken)
	require.Equal(t, http.StatusOK, authedGeneral.StatusCode)

	authedMe := getWithBearer(t, server.URL+"/me", accessToken)
	require.Equal(t, http.StatusOK, authedMe.StatusCode)

	garbageGeneral := getWithBearer(t, server.URL+"/general", "not-a-token")
	require.Equal(t, http.StatusUnauthorized, garbageGeneral.StatusCode)
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	server := newServer(t)

	wrongPassword := postJSON(t, server.URL+"/login", map[string]string{
		"email":    seedEmail,
		"password": "wrong5678!",
	})
	require.Equal(t, http.StatusBadRequest, wrongPassword.StatusCode)

	unknownEmail := postJSON(t, server.URL+"/login", map[string]string{
		"email":    "nobody@test.com",
		"password": seedPassword,
	})
	require.Equal(t, http.StatusBadRequest, unknownEmail.StatusCode)
}

func TestSignupRejectsDuplicateEmail(t *testing.T) {
	server := newServer(t)

	dup := postJSON(t, server.URL+"/signup", map[string]string{
		"name":     "Copy",
		"email":    seedEmail,
		"password": "pass1234!",
	})
	require.Equal(t, http.StatusBadRequest, dup.StatusCode)
}
