package api

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	attmocks "github.com/chainsafe/kilt-attester/pkg/attestation/service/mocks"
	"github.com/chainsafe/kilt-attester/pkg/auth"
	"github.com/chainsafe/kilt-attester/pkg/config"
	ctypemocks "github.com/chainsafe/kilt-attester/pkg/ctype/service/mocks"
	networkservice "github.com/chainsafe/kilt-attester/pkg/network/service"
	networkmocks "github.com/chainsafe/kilt-attester/pkg/network/service/mocks"
	usermocks "github.com/chainsafe/kilt-attester/pkg/user/service/mocks"
)

func newTestRouter(t *testing.T, metrics config.MetricsConfig) (http.Handler, *networkmocks.Service) {
	t.Helper()
	networks := networkmocks.NewService(t)
	s := NewServer(&config.APIServerConfig{
		Server:  config.ServerConfig{RequestTimeout: time.Minute},
		Metrics: metrics,
	})
	svcs := &services{
		session:      usermocks.NewService(t),
		ctypes:       ctypemocks.NewService(t),
		attestations: attmocks.NewService(t),
		networks:     networks,
	}
	return s.setupRouter(svcs, auth.NewTokenIssuer("0123456789abcdef0123456789abcdef"), zap.NewNop()), networks
}

func TestRouter_Health(t *testing.T) {
	r, _ := newTestRouter(t, config.MetricsConfig{Path: "/metrics"})

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "OK", rec.Body.String())
}

func TestRouter_Metrics(t *testing.T) {
	r, _ := newTestRouter(t, config.MetricsConfig{Path: "/metrics"})

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "go_goroutines")

	r, _ = newTestRouter(t, config.MetricsConfig{Disabled: true, Path: "/metrics"})
	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestRouter_MountsServices(t *testing.T) {
	r, networks := newTestRouter(t, config.MetricsConfig{Path: "/metrics"})
	networks.EXPECT().List(mock.Anything).Return([]networkservice.Status{{Name: "peregrine", Reachable: true}}, nil).Once()

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/networks", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	// Authenticated routes reject anonymous callers before reaching the services.
	for _, path := range []string{"/api/ctypes", "/api/ctypes/submit", "/api/attestations"} {
		rec = httptest.NewRecorder()
		r.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, path, nil))
		assert.Equal(t, http.StatusUnauthorized, rec.Code, path)
	}
}
