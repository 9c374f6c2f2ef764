package handler

import "net/http"

const refreshCookieName = "refreshToken"

// newRefreshCookie builds the httpOnly transport cookie for the refresh
// token. Secure is not set; enable it when serving over TLS.
func newRefreshCookie(value string) *http.Cookie {
	return &http.Cookie{
		Name:     refreshCookieName,
		Value:    value,
		Path:     "/",
		HttpOnly: true,
	}
}

// expiredRefreshCookie clears the cookie by sending Max-Age=0.
func expiredRefreshCookie() *http.Cookie {
	return &http.Cookie{
		Name:     refreshCookieName,
		Value:    "",
		Path:     "/",
		HttpOnly: true,
		MaxAge:   -1,
	}
}
