package service_test

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/chainsafe/kilt-attester/pkg/network/service"
	"github.com/chainsafe/kilt-attester/pkg/network/service/mocks"
)

func newTestServer(svc service.Service) http.Handler {
	r := chi.NewRouter()
	service.RegisterRoutes(r, svc, zap.NewNop())
	return r
}

func TestNetworksHTTP_List(t *testing.T) {
	svc := mocks.NewService(t)
	svc.EXPECT().List(mock.Anything).Return([]service.Status{
		{Name: "peregrine", Endpoint: "wss://p", AppDID: "did:kilt:a", CustodialAddress: "4abc", FreeBalance: "2", Reachable: true},
		{Name: "spiritnet", Endpoint: "wss://s", AppDID: "did:kilt:b", CustodialAddress: "4def", Error: "dial failed"},
	}, nil).Once()

	rec := httptest.NewRecorder()
	newTestServer(svc).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/networks", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"networks":[
		{"name":"peregrine","endpoint":"wss://p","appDid":"did:kilt:a","custodialAddress":"4abc","freeBalance":"2","reachable":true},
		{"name":"spiritnet","endpoint":"wss://s","appDid":"did:kilt:b","custodialAddress":"4def","reachable":false,"error":"dial failed"}
	]}`, rec.Body.String())
}

func TestNetworksHTTP_ListError(t *testing.T) {
	svc := mocks.NewService(t)
	svc.EXPECT().List(mock.Anything).Return(nil, errors.New("boom")).Once()

	rec := httptest.NewRecorder()
	newTestServer(svc).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/networks", nil))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}
