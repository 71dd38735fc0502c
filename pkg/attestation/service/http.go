package service

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	apphttp "github.com/chainsafe/kilt-attester/pkg/app/http"
	"github.com/chainsafe/kilt-attester/pkg/auth"
	"github.com/chainsafe/kilt-attester/pkg/user"
)

// HTTP wraps the Service to provide HTTP endpoints
type HTTP struct {
	service Service
	logger  *zap.Logger
}

// RegisterRoutes registers the attestation endpoints on the given chi router.
// Attesting requires a bearer token with the attester role.
func RegisterRoutes(r chi.Router, service Service, issuer *auth.TokenIssuer, logger *zap.Logger) {
	h := &HTTP{
		service: service,
		logger:  logger,
	}

	r.Route("/api/attestations", func(r chi.Router) {
		r.Get("/{claimHash}", apphttp.HandleError(h.get))
		r.With(auth.Middleware(issuer), auth.RequireRole(user.RoleAttester)).
			Post("/", apphttp.HandleError(h.attest))
	})
}

func (h *HTTP) attest(w http.ResponseWriter, r *http.Request) error {
	var req AttestRequest
	if err := apphttp.DecodeJSON(r, &req); err != nil {
		return err
	}

	resp, err := h.service.Attest(r.Context(), &req)
	if err != nil {
		return err
	}
	apphttp.WriteJSON(w, http.StatusCreated, resp)
	return nil
}

func (h *HTTP) get(w http.ResponseWriter, r *http.Request) error {
	rec, err := h.service.Get(r.Context(), chi.URLParam(r, "claimHash"))
	if err != nil {
		return err
	}
	apphttp.WriteJSON(w, http.StatusOK, rec)
	return nil
}
