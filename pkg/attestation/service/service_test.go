package service_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/chainsafe/kilt-attester/pkg/anchorstore"
	apperrors "github.com/chainsafe/kilt-attester/pkg/app/errors"
	"github.com/chainsafe/kilt-attester/pkg/attestation"
	"github.com/chainsafe/kilt-attester/pkg/attestation/service"
	"github.com/chainsafe/kilt-attester/pkg/attestation/service/mocks"
	"github.com/chainsafe/kilt-attester/pkg/ctype"
	"github.com/chainsafe/kilt-attester/pkg/did"
	eventmocks "github.com/chainsafe/kilt-attester/pkg/events/mocks"
	"github.com/chainsafe/kilt-attester/pkg/keys"
	"github.com/chainsafe/kilt-attester/pkg/ledger"
	"github.com/chainsafe/kilt-attester/pkg/ledger/ledgertest"
	"github.com/chainsafe/kilt-attester/pkg/network"
	"github.com/chainsafe/kilt-attester/pkg/resolver"
	"github.com/chainsafe/kilt-attester/pkg/transaction"
)

const testMnemonic = "bottom drive obey lake curtain smoke basket hold race lonely fit walk"

const holderDID = "did:kilt:4pqDzaWi3w7TzYzGnQDyrasK6UnyNnW6JQvWRrq6r8HzNNGy"

type fixture struct {
	ledger    *ledgertest.Ledger
	store     *mocks.Store
	notifier  *eventmocks.Notifier
	svc       service.Service
	appDoc    *did.Document
	ctypeHash string
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	derive := func(uri string) []byte {
		kp, err := keys.Derive(uri)
		require.NoError(t, err)
		return kp.PublicKey()
	}
	appDoc := ledgertest.NewDocument(ledgertest.DocumentOptions{
		Authentication: derive(testMnemonic + keys.DefaultDIDKeyPath),
		Assertion:      derive(testMnemonic + keys.AssertionKeyPath),
	})
	reg, err := network.NewRegistry(network.Network{
		Name:     network.Peregrine,
		Mnemonic: testMnemonic,
		AppDID:   appDoc.ID,
	})
	require.NoError(t, err)
	custody, err := keys.NewCustody(reg)
	require.NoError(t, err)
	keyring, err := keys.DIDKeyring(reg)
	require.NoError(t, err)

	l := ledgertest.New(network.Peregrine)
	l.AddDocument(network.Peregrine, appDoc)

	ct, err := ctype.Parse([]byte(`{"title":"Email","properties":{"email":{"type":"string"}}}`))
	require.NoError(t, err)
	l.RegisterCTypeDirect(network.Peregrine, ct.Hash, appDoc.ID)

	anchorer := attestation.NewAnchorer(
		resolver.New(l, reg, zap.NewNop()),
		keyring,
		transaction.NewSubmitter(l, reg, custody, keyring, transaction.Options{}, zap.NewNop()),
		zap.NewNop(),
	)
	store := mocks.NewStore(t)
	notifier := eventmocks.NewNotifier(t)

	return &fixture{
		ledger:    l,
		store:     store,
		notifier:  notifier,
		svc:       service.NewLog(service.NewService(anchorer, reg, store, notifier, zap.NewNop()), zap.NewNop()),
		appDoc:    appDoc,
		ctypeHash: "0x" + ct.ID[len(ctype.IDPrefix):],
	}
}

func (f *fixture) claim() attestation.Claim {
	return attestation.Claim{
		CTypeHash: f.ctypeHash,
		Contents:  map[string]any{"email": "alice@example.com"},
		Owner:     holderDID,
	}
}

func TestAttest(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	var saved *anchorstore.AttestationRecord
	f.store.EXPECT().SaveAttestation(mock.Anything, mock.Anything).
		RunAndReturn(func(_ context.Context, rec *anchorstore.AttestationRecord) error {
			saved = rec
			return nil
		}).Once()
	f.notifier.EXPECT().AttestationAnchored(mock.Anything, mock.Anything).Return().Once()

	resp, err := f.svc.Attest(ctx, &service.AttestRequest{Claim: f.claim()})
	require.NoError(t, err)
	require.NoError(t, resp.Credential.Verify())
	assert.Equal(t, network.Peregrine, resp.Network)
	assert.Equal(t, resp.Credential.RootHash, resp.Result.ResourceHash)

	claimHash, err := resp.Credential.ClaimHash()
	require.NoError(t, err)
	att, ok := f.ledger.Attestation(network.Peregrine, claimHash)
	require.True(t, ok)
	assert.Equal(t, f.appDoc.ID, att.Attester)

	require.NotNil(t, saved)
	assert.Equal(t, resp.Credential.RootHash, saved.ClaimHash)
	assert.Equal(t, ctype.IDPrefix+f.ctypeHash[2:], saved.CTypeID)
	assert.Equal(t, f.appDoc.ID, saved.Attester)
	assert.Equal(t, holderDID, saved.Owner)
	assert.Equal(t, network.Peregrine, saved.Network)
	assert.Equal(t, resp.Result.TransactionHash, saved.TxHash)
}

func TestAttest_SameClaimTwiceGetsFreshNonces(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	f.store.EXPECT().SaveAttestation(mock.Anything, mock.Anything).Return(nil).Twice()
	f.notifier.EXPECT().AttestationAnchored(mock.Anything, mock.Anything).Return().Twice()

	first, err := f.svc.Attest(ctx, &service.AttestRequest{Claim: f.claim()})
	require.NoError(t, err)
	second, err := f.svc.Attest(ctx, &service.AttestRequest{Claim: f.claim(), Network: network.Peregrine})
	require.NoError(t, err)
	assert.NotEqual(t, first.Credential.RootHash, second.Credential.RootHash)
}

func TestAttest_PersistenceFailureStillReturnsCredential(t *testing.T) {
	f := newFixture(t)

	f.store.EXPECT().SaveAttestation(mock.Anything, mock.Anything).Return(errors.New("db down")).Once()
	f.notifier.EXPECT().AttestationAnchored(mock.Anything, mock.Anything).Return().Once()

	resp, err := f.svc.Attest(context.Background(), &service.AttestRequest{Claim: f.claim()})
	require.NoError(t, err)
	assert.NotEmpty(t, resp.Result.TransactionHash)
}

func TestAttest_Errors(t *testing.T) {
	t.Run("invalid claim", func(t *testing.T) {
		f := newFixture(t)
		claim := f.claim()
		claim.CTypeHash = "0xabc"

		_, err := f.svc.Attest(context.Background(), &service.AttestRequest{Claim: claim})
		require.ErrorIs(t, err, attestation.ErrInvalidClaim)
		assert.Equal(t, service.ReasonInvalidClaim, apperrors.Reason(err))
		assert.Equal(t, 0, f.ledger.TotalDials())
	})

	t.Run("unknown network", func(t *testing.T) {
		f := newFixture(t)

		_, err := f.svc.Attest(context.Background(), &service.AttestRequest{Claim: f.claim(), Network: network.Spiritnet})
		require.ErrorIs(t, err, network.ErrUnknownNetwork)
		assert.True(t, apperrors.Is(err, apperrors.CategoryDataError))
	})

	t.Run("ctype not on chain", func(t *testing.T) {
		f := newFixture(t)
		claim := f.claim()
		claim.CTypeHash = "0x" + "11223344556677889900aabbccddeeff11223344556677889900aabbccddeeff"

		_, err := f.svc.Attest(context.Background(), &service.AttestRequest{Claim: claim})
		require.ErrorIs(t, err, ledger.ErrDispatch)
		assert.True(t, apperrors.Is(err, apperrors.CategoryDataConflict))
	})
}

func TestGet(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	rec := &anchorstore.AttestationRecord{ClaimHash: "0x01"}
	f.store.EXPECT().GetAttestation(mock.Anything, "0x01").Return(rec, nil).Once()
	f.store.EXPECT().GetAttestation(mock.Anything, "0x02").Return(nil, anchorstore.ErrAttestationNotFound).Once()
	f.store.EXPECT().GetAttestation(mock.Anything, "0x03").Return(nil, errors.New("db down")).Once()

	got, err := f.svc.Get(ctx, "0x01")
	require.NoError(t, err)
	assert.Equal(t, rec, got)

	_, err = f.svc.Get(ctx, "0x02")
	assert.True(t, apperrors.Is(err, apperrors.CategoryResourceNotFound))

	_, err = f.svc.Get(ctx, "0x03")
	require.Error(t, err)
	assert.False(t, apperrors.Is(err, apperrors.CategoryResourceNotFound))
}
