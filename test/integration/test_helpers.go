//go:build integration

package integration

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"member-auth/internal/config"
	"member-auth/internal/handler"
	"member-auth/internal/middleware"
	"member-auth/internal/repository"
	"member-auth/internal/router"
	"member-auth/internal/service"
	"member-auth/internal/token"
)

const (
	testSecret   = "integration-secret-0123456789abcdef"
	seedName     = "Kim"
	seedEmail    = "a@test.com"
	seedPassword = "qwer1234!"
)

// newServer wires the full HTTP stack against an in-memory member store
// and seeds it with one general member.
func newServer(t *testing.T) *httptest.Server {
	t.Helper()

	store := repository.NewMemoryMemberStore()
	codec, err := token.NewCodec([]byte(testSecret), 15*time.Minute, 24*time.Hour)
	require.NoError(t, err)

	authService := service.NewAuthService(store, codec)
	require.NoError(t, authService.SeedMember(context.Background(), seedName, seedEmail, seedPassword))

	authMiddleware := middleware.NewAuthMiddleware(codec, authService)
	authHandler := handler.NewAuthHandler(authService)
	checkHandler := handler.NewCheckHandler()
	docsHandler := handler.NewDocsHandler("../../docs/openapi.yaml")

	cfg := &config.Config{
		RequestTimeout: 30 * time.Second,
		CORSOrigins:    []string{"*"},
	}

	server := httptest.NewServer(router.New(cfg, authMiddleware, authHandler, checkHandler, docsHandler))
	t.Cleanup(server.Close)
	return server
}

func postJSON(t *testing.T, url string, payload any) *http.Response {
	t.Helper()

	body, err := json.Marshal(payload)
	require.NoError(t, err)
	resp, err := http.Post(url, "application/json", bytes.NewReader(body))
	require.NoError(t, err)
	t.Cleanup(func() { _ = resp.Body.Close() })
	return resp
}

func doRequest(t *testing.T, req *http.Request) *http.Response {
	t.Helper()

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	t.Cleanup(func() { _ = resp.Body.Close() })
	return resp
}

func getWithBearer(t *testing.T, url string, accessToken string) *http.Response {
	t.Helper()

	req, err := http.NewRequest(http.MethodGet, url, nil)
	require.NoError(t, err)
	if accessToken != "" {
		req.Header.Set("Authorization", "Bearer "+accessToken)
	}
	return doRequest(t, req)
}

func postWithCookie(t *testing.T, url string, cookie *http.Cookie) *http.Response {
	t.Helper()

	req, err := http.NewRequest(http.MethodPost, url, nil)
	require.NoError(t, err)
	req.AddCookie(cookie)
	return doRequest(t, req)
}

// login authenticates the seed member and returns the access token and
// the refresh cookie from the response.
func login(t *testing.T, serverURL string) (string, *http.Cookie) {
	t.Helper()

	resp := postJSON(t, serverURL+"/login", map[string]string{
		"email":    seedEmail,
		"password": seedPassword,
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	accessToken := decodeAccessToken(t, resp)
	cookie := refreshCookie(t, resp)
	require.NotEmpty(t, cookie.Value)
	return accessToken, cookie
}

func decodeAccessToken(t *testing.T, resp *http.Response) string {
	t.Helper()

	var parsed struct {
		Success bool `json:"success"`
		Data    struct {
			AccessToken string `json:"accessToken"`
		} `json:"data"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&parsed))
	require.True(t, parsed.Success)
	require.NotEmpty(t, parsed.Data.AccessToken)
	return parsed.Data.AccessToken
}

func refreshCookie(t *testing.T, resp *http.Response) *http.Cookie {
	t.Helper()

	for _, cookie := range resp.Cookies() {
		if cookie.Name == "refreshToken" {
			return cookie
		}
	}
	t.Fatal("response carries no refreshToken cookie")
	return nil
}
