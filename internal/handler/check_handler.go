package handler

import "net/http"

// CheckHandler exposes probe endpoints used to exercise the
// authentication pipeline: /all is open to anonymous requests, the
// role-gated variants are wired behind RequireRoles in the router.
type CheckHandler struct{}

func NewCheckHandler() *CheckHandler {
	return &CheckHandler{}
}

func (h *CheckHandler) All(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("/all : OK!"))
}

func (h *CheckHandler) General(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("/general : OK!"))
}
