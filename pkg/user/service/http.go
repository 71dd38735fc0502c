package service

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	apperrors "github.com/chainsafe/kilt-attester/pkg/app/errors"
	apphttp "github.com/chainsafe/kilt-attester/pkg/app/http"
	"github.com/chainsafe/kilt-attester/pkg/auth"
	"github.com/chainsafe/kilt-attester/pkg/user"
)

// HTTP wraps the Service to provide HTTP endpoints
type HTTP struct {
	service Service
	logger  *zap.Logger
}

// RegisterRoutes registers the session endpoints on the given chi router.
// /api/session/me requires a bearer token issued by issuer.
func RegisterRoutes(r chi.Router, service Service, issuer *auth.TokenIssuer, logger *zap.Logger) {
	h := &HTTP{
		service: service,
		logger:  logger,
	}

	r.Route("/api/session", func(r chi.Router) {
		r.Post("/challenge", apphttp.HandleError(h.challenge))
		r.Post("/verify", apphttp.HandleError(h.verify))
		r.With(auth.Middleware(issuer)).Get("/me", apphttp.HandleError(h.me))
	})
}

func (h *HTTP) challenge(w http.ResponseWriter, r *http.Request) error {
	req, err := h.service.Challenge(r.Context())
	if err != nil {
		return err
	}
	apphttp.WriteJSON(w, http.StatusOK, req)
	return nil
}

func (h *HTTP) verify(w http.ResponseWriter, r *http.Request) error {
	var req user.LoginRequest
	if err := apphttp.DecodeJSON(r, &req); err != nil {
		return err
	}

	resp, err := h.service.Login(r.Context(), &req)
	if err != nil {
		return err
	}
	apphttp.WriteJSON(w, http.StatusOK, resp)
	return nil
}

func (h *HTTP) me(w http.ResponseWriter, r *http.Request) error {
	info := auth.AuthInfoFromContext(r.Context())
	if info.DID == "" {
		return apperrors.UnAuthorizedError(nil, "missing identity")
	}

	usr, err := h.service.Me(r.Context(), info.DID)
	if err != nil {
		return err
	}
	apphttp.WriteJSON(w, http.StatusOK, usr)
	return nil
}
