package handler

import (
	"encoding/json"
	"net/http"

	"member-auth/internal/middleware"
	"member-auth/internal/model"
	"member-auth/internal/service"
	"member-auth/pkg/apierror"
)

type AuthHandler struct {
	service *service.AuthService
}

func NewAuthHandler(service *service.AuthService) *AuthHandler {
	return &AuthHandler{service: service}
}

func (h *AuthHandler) Signup(w http.ResponseWriter, r *http.Request) {
	defer r.Body.Close()

	var payload model.SignupRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeError(w, apierror.BadRequest("invalid JSON body"))
		return
	}

	if err := payload.Validate(); err != nil {
		writeError(w, apierror.Validation(err.Error()))
		return
	}

	if err := h.service.Signup(r.Context(), payload.Name, payload.Email, payload.Password); err != nil {
		writeError(w, err)
		return
	}

	writeNoContent(w)
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	defer r.Body.Close()

	var payload model.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeError(w, apierror.BadRequest("invalid JSON body"))
		return
	}

	if err := payload.Validate(); err != nil {
		writeError(w, apierror.Validation(err.Error()))
		return
	}

	result, err := h.service.Login(r.Context(), payload.Email, payload.Password)
	if err != nil {
		writeError(w, err)
		return
	}

	http.SetCookie(w, newRefreshCookie(result.RefreshToken))
	writeSuccess(w, http.StatusOK, model.LoginResponse{AccessToken: result.AccessToken})
}

func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	cookie, err := r.Cookie(refreshCookieName)
	if err != nil {
		writeError(w, apierror.BadRequest("the refreshToken cookie is required"))
		return
	}

	if err := h.service.Logout(r.Context(), cookie.Value); err != nil {
		writeError(w, err)
		return
	}

	http.SetCookie(w, expiredRefreshCookie())
	writeNoContent(w)
}

// Reissue exchanges the refresh cookie for a fresh access token. The
// cookie is re-set with its current value; only the transport
// attributes are refreshed, the token's own expiry is unchanged.
func (h *AuthHandler) Reissue(w http.ResponseWriter, r *http.Request) {
	cookie, err := r.Cookie(refreshCookieName)
	if err != nil {
		writeError(w, apierror.BadRequest("the refreshToken cookie is required"))
		return
	}

	accessToken, err := h.service.Reissue(r.Context(), cookie.Value)
	if err != nil {
		writeError(w, err)
		return
	}

	http.SetCookie(w, newRefreshCookie(cookie.Value))
	writeSuccess(w, http.StatusOK, model.ReissueResponse{AccessToken: accessToken})
}

func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	identity, ok := middleware.IdentityFromContext(r.Context())
	if !ok {
		writeError(w, apierror.Unauthorized())
		return
	}

	member, err := h.service.MemberByID(r.Context(), identity.ID)
	if err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, http.StatusOK, model.NewMemberProfile(member))
}
