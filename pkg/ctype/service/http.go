package service

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	apperrors "github.com/chainsafe/kilt-attester/pkg/app/errors"
	apphttp "github.com/chainsafe/kilt-attester/pkg/app/http"
	"github.com/chainsafe/kilt-attester/pkg/auth"
)

// HTTP wraps the Service to provide HTTP endpoints
type HTTP struct {
	service Service
	logger  *zap.Logger
}

// RegisterRoutes registers the CType endpoints on the given chi router.
// Creating and submitting require a bearer token; the caller becomes the owner.
func RegisterRoutes(r chi.Router, service Service, issuer *auth.TokenIssuer, logger *zap.Logger) {
	h := &HTTP{
		service: service,
		logger:  logger,
	}

	r.Route("/api/ctypes", func(r chi.Router) {
		r.Get("/{id}", apphttp.HandleError(h.get))

		r.Group(func(r chi.Router) {
			r.Use(auth.Middleware(issuer))
			r.Post("/", apphttp.HandleError(h.create))
			r.Post("/submit", apphttp.HandleError(h.submit))
		})
	})
}

func (h *HTTP) create(w http.ResponseWriter, r *http.Request) error {
	owner, err := caller(r)
	if err != nil {
		return err
	}

	var req CreateRequest
	if err := apphttp.DecodeJSON(r, &req); err != nil {
		return err
	}

	resp, err := h.service.Create(r.Context(), owner, &req)
	if err != nil {
		return err
	}

	status := http.StatusCreated
	if resp.Envelope != nil {
		status = http.StatusOK
	}
	apphttp.WriteJSON(w, status, resp)
	return nil
}

func (h *HTTP) submit(w http.ResponseWriter, r *http.Request) error {
	owner, err := caller(r)
	if err != nil {
		return err
	}

	var req SubmitRequest
	if err := apphttp.DecodeJSON(r, &req); err != nil {
		return err
	}

	res, err := h.service.Submit(r.Context(), owner, &req)
	if err != nil {
		return err
	}
	apphttp.WriteJSON(w, http.StatusCreated, res)
	return nil
}

func (h *HTTP) get(w http.ResponseWriter, r *http.Request) error {
	rec, err := h.service.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		return err
	}
	apphttp.WriteJSON(w, http.StatusOK, rec)
	return nil
}

func caller(r *http.Request) (string, error) {
	info := auth.AuthInfoFromContext(r.Context())
	if info.DID == "" {
		return "", apperrors.UnAuthorizedError(nil, "missing identity")
	}
	return info.DID, nil
}
