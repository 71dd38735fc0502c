package service_test

import (
	"bytes"
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
	"github.com/chainsafe/kilt-attester/pkg/attestation"
	"github.com/chainsafe/kilt-attester/pkg/attestation/service"
	"github.com/chainsafe/kilt-attester/pkg/attestation/service/mocks"
	"github.com/chainsafe/kilt-attester/pkg/auth"
	"github.com/chainsafe/kilt-attester/pkg/did"
	"github.com/chainsafe/kilt-attester/pkg/network"
	"github.com/chainsafe/kilt-attester/pkg/transaction"
	"github.com/chainsafe/kilt-attester/pkg/user"
)

const testSecret = "attestation-http-test-secret"

const attestBody = `{
	"claim": {
		"cTypeHash": "0x3291bb126e33b4862d421bfaa1d2f272e6cdfc4f96658988fbcffea8914bd9ac",
		"contents": {"email": "alice@example.com"},
		"owner": "` + holderDID + `"
	},
	"network": "peregrine"
}`

func newAttestationTestServer(svc service.Service) http.Handler {
	r := chi.NewRouter()
	service.RegisterRoutes(r, svc, auth.NewTokenIssuer(testSecret), zap.NewNop())
	return r
}

func postAttest(t *testing.T, h http.Handler, role, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/api/attestations", bytes.NewBufferString(body))
	if role != "" {
		token, _, err := auth.NewTokenIssuer(testSecret).Issue(did.FromAccount(bytes.Repeat([]byte{3}, 32)), role)
		require.NoError(t, err)
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestAttestationHTTP_RequiresAttesterRole(t *testing.T) {
	svc := mocks.NewService(t)
	h := newAttestationTestServer(svc)

	assert.Equal(t, http.StatusUnauthorized, postAttest(t, h, "", attestBody).Code)

	rec := postAttest(t, h, user.DefaultRole, attestBody)
	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Contains(t, rec.Body.String(), auth.ReasonInsufficientRole)
}

func TestAttestationHTTP_Attest(t *testing.T) {
	svc := mocks.NewService(t)
	svc.EXPECT().Attest(mock.Anything, mock.MatchedBy(func(req *service.AttestRequest) bool {
		return req.Network == network.Peregrine && req.Claim.Owner == holderDID &&
			req.Claim.Contents["email"] == "alice@example.com"
	})).Return(&service.AttestResponse{
		Credential: &attestation.Credential{RootHash: "0xroot", Legitimations: []attestation.Credential{}},
		Network:    network.Peregrine,
		Result:     &transaction.SubmissionResult{TransactionHash: "0x02", ResourceHash: "0xroot"},
	}, nil).Once()

	rec := postAttest(t, newAttestationTestServer(svc), user.RoleAttester, attestBody)

	require.Equal(t, http.StatusCreated, rec.Code)
	assert.Contains(t, rec.Body.String(), `"rootHash":"0xroot"`)
	assert.Contains(t, rec.Body.String(), `"network":"peregrine"`)
}

func TestAttestationHTTP_AttestErrors(t *testing.T) {
	t.Run("missing owner", func(t *testing.T) {
		svc := mocks.NewService(t)
		rec := postAttest(t, newAttestationTestServer(svc), user.RoleAttester,
			`{"claim":{"cTypeHash":"0x01","contents":{"a":1}}}`)
		require.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Contains(t, rec.Body.String(), "Owner")
	})

	t.Run("no assertion key", func(t *testing.T) {
		svc := mocks.NewService(t)
		svc.EXPECT().Attest(mock.Anything, mock.Anything).Return(nil, apperrors.New(apperrors.CategoryForbidden,
			transaction.ReasonNoAssertionCapability, did.ErrNoAssertionCapability, "attester DID has no assertion key")).Once()

		rec := postAttest(t, newAttestationTestServer(svc), user.RoleAttester, attestBody)
		require.Equal(t, http.StatusForbidden, rec.Code)
		assert.Contains(t, rec.Body.String(), transaction.ReasonNoAssertionCapability)
	})
}

func TestAttestationHTTP_Get(t *testing.T) {
	svc := mocks.NewService(t)
	svc.EXPECT().Get(mock.Anything, "0xroot").Return(&anchorstore.AttestationRecord{ClaimHash: "0xroot"}, nil).Once()

	rec := httptest.NewRecorder()
	newAttestationTestServer(svc).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/attestations/0xroot", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"claimHash":"0xroot"`)
}
