package anchorstore

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chainsafe/kilt-attester/pkg/network"
	"github.com/chainsafe/kilt-attester/pkg/pgutil"
	mghelper "github.com/chainsafe/kilt-attester/pkg/pgutil/migrations"
)

const (
	ownerDID    = "did:kilt:4rp4rcDHP71YrBNvDhcH5iRoM3YzVoQVnCZvQPwPom9bjo2e"
	attesterDID = "did:kilt:4pnfkRn5UurBJTW92d9TaVLR2CqJdY4z5HPjrEbpGyBykare"
	ctypeID     = "kilt:ctype:0x4f1d68d19ddcd0a3c5e1c1f8b4e7d2b6a0e58f3b1c2d4e5f60718293a4b5c6d7"
	claimHash   = "0x9a8b7c6d5e4f30211203f4e5d6c7b8a9a0b1c2d3e4f5061728394a5b6c7d8e9f"
)

func setupStore(t *testing.T) (context.Context, *pgStore) {
	t.Helper()

	ctx := context.Background()
	db, cleanup := pgutil.SetupTestDB(t)
	t.Cleanup(cleanup)

	require.NoError(t, mghelper.CreateSchema(ctx, db, &CTypeDao{}, &AttestationDao{}))
	return ctx, NewStore(db)
}

func TestAnchorPGStore_CTypes(t *testing.T) {
	ctx, store := setupStore(t)

	_, err := store.GetCType(ctx, ctypeID)
	require.True(t, errors.Is(err, ErrCTypeNotFound), "got %v", err)

	rec := &CTypeRecord{
		ID:          ctypeID,
		Schema:      json.RawMessage(`{"title":"Email","type":"object"}`),
		Owner:       ownerDID,
		Network:     network.Peregrine,
		PaymentType: "system",
		SigningType: "system",
		BlockHash:   "0x01",
		BlockNumber: 101,
		TxHash:      "0x02",
	}
	require.NoError(t, store.SaveCType(ctx, rec))
	// Saving the same id again is a no-op.
	dup := *rec
	dup.BlockNumber = 999
	require.NoError(t, store.SaveCType(ctx, &dup))

	got, err := store.GetCType(ctx, ctypeID)
	require.NoError(t, err)
	assert.Equal(t, ownerDID, got.Owner)
	assert.Equal(t, network.Peregrine, got.Network)
	assert.Equal(t, uint64(101), got.BlockNumber)
	assert.JSONEq(t, string(rec.Schema), string(got.Schema))
	assert.False(t, got.CreatedAt.IsZero())
}

func TestAnchorPGStore_Attestations(t *testing.T) {
	ctx, store := setupStore(t)

	_, err := store.GetAttestation(ctx, claimHash)
	require.True(t, errors.Is(err, ErrAttestationNotFound), "got %v", err)

	rec := &AttestationRecord{
		ClaimHash:   claimHash,
		CTypeID:     ctypeID,
		Attester:    attesterDID,
		Owner:       ownerDID,
		Network:     network.Spiritnet,
		BlockHash:   "0x03",
		BlockNumber: 7,
		TxHash:      "0x04",
	}
	require.NoError(t, store.SaveAttestation(ctx, rec))
	require.NoError(t, store.SaveAttestation(ctx, rec))

	got, err := store.GetAttestation(ctx, claimHash)
	require.NoError(t, err)
	assert.Equal(t, attesterDID, got.Attester)
	assert.Equal(t, ctypeID, got.CTypeID)
	assert.Equal(t, network.Spiritnet, got.Network)
	assert.Equal(t, "0x04", got.TxHash)
}
