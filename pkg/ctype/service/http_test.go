package service_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/chainsafe/kilt-attester/pkg/anchorstore"
	apperrors "github.com/chainsafe/kilt-attester/pkg/app/errors"
	"github.com/chainsafe/kilt-attester/pkg/auth"
	"github.com/chainsafe/kilt-attester/pkg/ctype/service"
	"github.com/chainsafe/kilt-attester/pkg/ctype/service/mocks"
	"github.com/chainsafe/kilt-attester/pkg/did"
	"github.com/chainsafe/kilt-attester/pkg/network"
	"github.com/chainsafe/kilt-attester/pkg/transaction"
)

const testSecret = "ctype-http-test-secret"

var caller = did.FromAccount(bytes.Repeat([]byte{9}, 32))

func newCTypeTestServer(svc service.Service) http.Handler {
	r := chi.NewRouter()
	service.RegisterRoutes(r, svc, auth.NewTokenIssuer(testSecret), zap.NewNop())
	return r
}

func bearer(t *testing.T) string {
	t.Helper()
	token, _, err := auth.NewTokenIssuer(testSecret).Issue(caller, "user")
	require.NoError(t, err)
	return "Bearer " + token
}

func post(t *testing.T, h http.Handler, path, body string, authorized bool) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewBufferString(body))
	if authorized {
		req.Header.Set("Authorization", bearer(t))
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestCTypeHTTP_CreateRequiresToken(t *testing.T) {
	svc := mocks.NewService(t)

	rec := post(t, newCTypeTestServer(svc), "/api/ctypes", `{}`, false)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestCTypeHTTP_CreateValidation(t *testing.T) {
	svc := mocks.NewService(t)
	h := newCTypeTestServer(svc)

	rec := post(t, h, "/api/ctypes", `{"schema":{"title":"x"},"network":"peregrine","paymentType":"card","signingType":"user"}`, true)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "PaymentType")

	rec = post(t, h, "/api/ctypes", `not json`, true)
	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestCTypeHTTP_CreateSystemSigned(t *testing.T) {
	svc := mocks.NewService(t)
	svc.EXPECT().Create(mock.Anything, caller.String(), mock.MatchedBy(func(req *service.CreateRequest) bool {
		return req.Network == network.Peregrine && req.SigningType == transaction.ModeSystem
	})).Return(&service.CreateResponse{
		CTypeID: "kilt:ctype:0xaa",
		Result:  &transaction.SubmissionResult{BlockHash: "0x01", BlockNumber: 3, TransactionHash: "0x02", ResourceHash: "0xaa"},
	}, nil).Once()

	rec := post(t, newCTypeTestServer(svc), "/api/ctypes",
		`{"schema":{"title":"x"},"network":"peregrine","paymentType":"system","signingType":"system"}`, true)

	require.Equal(t, http.StatusCreated, rec.Code)
	assert.JSONEq(t, `{
		"ctypeId": "kilt:ctype:0xaa",
		"result": {"blockHash": "0x01", "blockNumber": 3, "transactionHash": "0x02", "resourceHash": "0xaa"}
	}`, rec.Body.String())
}

func TestCTypeHTTP_CreateUserSignedReturnsEnvelope(t *testing.T) {
	env := &transaction.Envelope{
		Extrinsic:   "0x0102",
		Submitter:   "4pay",
		CTypeID:     "kilt:ctype:0xaa",
		UserDID:     caller.String(),
		Network:     network.Peregrine,
		PaymentType: transaction.ModeSystem,
		SigningType: transaction.ModeUser,
	}
	svc := mocks.NewService(t)
	svc.EXPECT().Create(mock.Anything, caller.String(), mock.Anything).
		Return(&service.CreateResponse{CTypeID: env.CTypeID, Envelope: env}, nil).Once()

	rec := post(t, newCTypeTestServer(svc), "/api/ctypes",
		`{"schema":{"title":"x"},"network":"peregrine","paymentType":"system","signingType":"user"}`, true)

	require.Equal(t, http.StatusOK, rec.Code)
	var got service.CreateResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	require.NotNil(t, got.Envelope)
	assert.Equal(t, *env, *got.Envelope)
	assert.Nil(t, got.Result)
}

func TestCTypeHTTP_Submit(t *testing.T) {
	body := `{
		"envelope": {"extrinsic": "0x0102", "submitter": "4pay", "ctypeId": "kilt:ctype:0xaa",
			"userDid": "` + caller.String() + `", "network": "peregrine", "paymentType": "system", "signingType": "user"},
		"signed": "0xbeef",
		"schema": {"title": "x"}
	}`

	t.Run("included", func(t *testing.T) {
		svc := mocks.NewService(t)
		svc.EXPECT().Submit(mock.Anything, caller.String(), mock.MatchedBy(func(req *service.SubmitRequest) bool {
			return req.Signed == "0xbeef" && req.Envelope.CTypeID == "kilt:ctype:0xaa"
		})).Return(&transaction.SubmissionResult{TransactionHash: "0x02"}, nil).Once()

		rec := post(t, newCTypeTestServer(svc), "/api/ctypes/submit", body, true)
		require.Equal(t, http.StatusCreated, rec.Code)
		assert.Contains(t, rec.Body.String(), `"transactionHash":"0x02"`)
	})

	t.Run("forbidden", func(t *testing.T) {
		svc := mocks.NewService(t)
		svc.EXPECT().Submit(mock.Anything, caller.String(), mock.Anything).Return(nil,
			apperrors.New(apperrors.CategoryForbidden, service.ReasonNotEnvelopeOwner, service.ErrNotEnvelopeOwner, "nope")).Once()

		rec := post(t, newCTypeTestServer(svc), "/api/ctypes/submit", body, true)
		require.Equal(t, http.StatusForbidden, rec.Code)
		assert.Contains(t, rec.Body.String(), service.ReasonNotEnvelopeOwner)
	})

	t.Run("missing signature", func(t *testing.T) {
		svc := mocks.NewService(t)
		rec := post(t, newCTypeTestServer(svc), "/api/ctypes/submit", `{"schema":{"title":"x"}}`, true)
		require.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestCTypeHTTP_Get(t *testing.T) {
	svc := mocks.NewService(t)
	svc.EXPECT().Get(mock.Anything, "kilt:ctype:0xaa").Return(&anchorstore.CTypeRecord{
		ID:      "kilt:ctype:0xaa",
		Schema:  json.RawMessage(`{"title":"x"}`),
		Network: network.Peregrine,
	}, nil).Once()
	svc.EXPECT().Get(mock.Anything, "kilt:ctype:0xbb").Return(nil,
		apperrors.ResourceNotFoundError(anchorstore.ErrCTypeNotFound, "ctype not found")).Once()
	h := newCTypeTestServer(svc)

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/ctypes/kilt:ctype:0xaa", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"title":"x"`)

	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/ctypes/kilt:ctype:0xbb", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
