package middleware

import (
	"context"
	"net/http"
	"slices"
	"strings"

	"member-auth/internal/model"
	"member-auth/internal/token"
)

type accessTokenParser interface {
	ParseAccess(tokenString string) (token.AccessClaims, error)
}

type memberResolver interface {
	MemberByID(ctx context.Context, id int64) (model.Member, error)
}

type contextKey string

const identityContextKey contextKey = "identity"

// AuthMiddleware establishes the request's authenticated identity. The
// gate itself never rejects a request; denial is left to RequireAuth
// and RequireRoles further down the pipeline.
type AuthMiddleware struct {
	parser   accessTokenParser
	resolver memberResolver
}

func NewAuthMiddleware(parser accessTokenParser, resolver memberResolver) *AuthMiddleware {
	return &AuthMiddleware{parser: parser, resolver: resolver}
}

// Authenticate extracts the bearer credential, parses it as access
// claims and resolves the subject. Any failure along the way leaves the
// request anonymous and passes it through untouched.
func (m *AuthMiddleware) Authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		bearer, ok := bearerToken(r)
		if !ok {
			next.ServeHTTP(w, r)
			return
		}

		claims, err := m.parser.ParseAccess(bearer)
		if err != nil {
			next.ServeHTTP(w, r)
			return
		}

		member, err := m.resolver.MemberByID(r.Context(), claims.ID)
		if err != nil {
			next.ServeHTTP(w, r)
			return
		}

		identity := model.NewIdentity(member)
		ctx := context.WithValue(r.Context(), identityContextKey, identity)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// RequireAuth rejects requests that carry no identity.
func (m *AuthMiddleware) RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, ok := IdentityFromContext(r.Context()); !ok {
			writeDenied(w, http.StatusUnauthorized, "UNAUTHORIZED", "Authentication required")
			return
		}

		next.ServeHTTP(w, r)
	})
}

// RequireRoles rejects requests whose identity lacks all of the allowed
// roles. Anonymous requests get 401, authenticated ones 403.
func (m *AuthMiddleware) RequireRoles(allowedRoles ...model.Role) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			identity, ok := IdentityFromContext(r.Context())
			if !ok {
				writeDenied(w, http.StatusUnauthorized, "UNAUTHORIZED", "Authentication required")
				return
			}

			if !slices.Contains(allowedRoles, identity.Role) {
				writeDenied(w, http.StatusForbidden, "FORBIDDEN", "Access denied")
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

func IdentityFromContext(ctx context.Context) (model.Identity, bool) {
	identity, ok := ctx.Value(identityContextKey).(model.Identity)
	return identity, ok
}

func bearerToken(r *http.Request) (string, bool) {
	header := strings.TrimSpace(r.Header.Get("Authorization"))
	if header == "" || !strings.HasPrefix(strings.ToLower(header), "bearer ") {
		return "", false
	}

	bearer := strings.TrimSpace(header[7:])
	if bearer == "" {
		return "", false
	}
	return bearer, true
}

func writeDenied(w http.ResponseWriter, status int, code string, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = jsonEncode(w, model.APIResponse{
		Success: false,
		Error: &model.APIError{
			Code:    code,
			Message: message,
		},
	})
}
