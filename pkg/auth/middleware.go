package auth

import (
	"net/http"
	"strings"

	apperrors "github.com/chainsafe/kilt-attester/pkg/app/errors"
	apphttp "github.com/chainsafe/kilt-attester/pkg/app/http"
)

// ReasonInvalidToken is the reason code of authentication failures.
const ReasonInvalidToken = "InvalidToken"

// Middleware requires a valid "Authorization: Bearer <token>" header and stores the
// token's DID and role in the request context.
func Middleware(issuer *TokenIssuer) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			token, ok := strings.CutPrefix(header, "Bearer ")
			if !ok || token == "" {
				apphttp.DefaultErrorHandler(w, apperrors.New(apperrors.CategoryUnauthorized, ReasonInvalidToken,
					ErrInvalidToken, "missing bearer token"))
				return
			}

			claims, err := issuer.Verify(token)
			if err != nil {
				apphttp.DefaultErrorHandler(w, apperrors.New(apperrors.CategoryUnauthorized, ReasonInvalidToken,
					err, "invalid or expired token"))
				return
			}

			ctx := WithAuthInfo(r.Context(), &AuthInfo{DID: claims.DID, Role: claims.Role})
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// ReasonInsufficientRole is the reason code of authorization failures.
const ReasonInsufficientRole = "InsufficientRole"

// RequireRole rejects requests whose token role is not one of roles. It must run after Middleware.
func RequireRole(roles ...string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			role, _ := RoleFromContext(r.Context())
			for _, allowed := range roles {
				if role == allowed {
					next.ServeHTTP(w, r)
					return
				}
			}
			apphttp.DefaultErrorHandler(w, apperrors.New(apperrors.CategoryForbidden, ReasonInsufficientRole,
				ErrInsufficientRole, "role "+role+" may not perform this operation"))
		})
	}
}
