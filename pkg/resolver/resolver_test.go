package resolver

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	apperrors "github.com/chainsafe/kilt-attester/pkg/app/errors"
	"github.com/chainsafe/kilt-attester/pkg/did"
	"github.com/chainsafe/kilt-attester/pkg/ledger/ledgertest"
	"github.com/chainsafe/kilt-attester/pkg/network"
)

func newRegistry(t *testing.T) *network.Registry {
	t.Helper()
	reg, err := network.NewRegistry(
		network.Network{Name: network.Spiritnet},
		network.Network{Name: network.Peregrine},
	)
	require.NoError(t, err)
	return reg
}

func fixtureDoc(fill byte) *did.Document {
	return ledgertest.NewDocument(ledgertest.DocumentOptions{Authentication: bytes.Repeat([]byte{fill}, 32)})
}

func TestResolve_FirstNetworkWins(t *testing.T) {
	l := ledgertest.New(network.Peregrine, network.Spiritnet)
	doc := fixtureDoc(1)
	l.AddDocument(network.Peregrine, doc)
	l.AddDocument(network.Spiritnet, doc)

	r := New(l, newRegistry(t), zap.NewNop())
	res, err := r.Resolve(context.Background(), doc.ID)
	require.NoError(t, err)

	assert.Equal(t, network.Peregrine, res.Network)
	assert.Equal(t, doc.ID, res.Document.ID)
	assert.Equal(t, 1, l.Dials(network.Peregrine))
	assert.Equal(t, 0, l.Dials(network.Spiritnet), "probe must stop at the first hit")
	assert.Equal(t, 0, l.OpenConns())
}

func TestResolve_FallsThroughToSpiritnet(t *testing.T) {
	l := ledgertest.New(network.Peregrine, network.Spiritnet)
	doc := fixtureDoc(2)
	l.AddDocument(network.Spiritnet, doc)

	r := New(l, newRegistry(t), zap.NewNop())
	for i := 0; i < 3; i++ {
		res, err := r.Resolve(context.Background(), doc.ID+"#0xkey")
		require.NoError(t, err)
		assert.Equal(t, network.Spiritnet, res.Network, "repeated calls must agree")
		require.Len(t, res.Attempts, 2)
		assert.Equal(t, network.Peregrine, res.Attempts[0].Network)
		assert.Error(t, res.Attempts[0].Err)
	}
	assert.Equal(t, 3, l.Dials(network.Peregrine), "results are not cached")
	assert.Equal(t, 0, l.OpenConns())
}

func TestResolve_UnreachableNetworkIsSkipped(t *testing.T) {
	l := ledgertest.New(network.Peregrine, network.Spiritnet)
	l.FailDial(network.Peregrine, errors.New("connection refused"))
	doc := fixtureDoc(3)
	l.AddDocument(network.Spiritnet, doc)

	res, err := New(l, newRegistry(t), zap.NewNop()).Resolve(context.Background(), doc.ID)
	require.NoError(t, err)
	assert.Equal(t, network.Spiritnet, res.Network)
}

func TestResolve_Unresolvable(t *testing.T) {
	l := ledgertest.New(network.Peregrine, network.Spiritnet)
	doc := fixtureDoc(4)

	_, err := New(l, newRegistry(t), zap.NewNop()).Resolve(context.Background(), doc.ID)
	require.ErrorIs(t, err, ErrIdentifierUnresolvable)
	assert.True(t, apperrors.Is(err, apperrors.CategoryResourceNotFound))
	assert.Equal(t, ReasonIdentifierUnresolvable, apperrors.Reason(err))
	assert.Equal(t, 0, l.OpenConns())
}

func TestResolve_LightDIDNoIO(t *testing.T) {
	l := ledgertest.New(network.Peregrine, network.Spiritnet)

	_, err := New(l, newRegistry(t), zap.NewNop()).
		Resolve(context.Background(), "did:kilt:light:004nxhWrDR27YzC5z4soRcz31MaeFn287JRqiE5y4u7jBEdgP2")
	require.ErrorIs(t, err, did.ErrLightDidNotAllowed)
	assert.True(t, apperrors.Is(err, apperrors.CategoryForbidden))
	assert.Equal(t, 0, l.TotalDials())
}

func TestResolve_InvalidIdentifier(t *testing.T) {
	l := ledgertest.New(network.Peregrine)
	_, err := New(l, newRegistry(t), zap.NewNop()).Resolve(context.Background(), "did:web:example.com")
	require.ErrorIs(t, err, did.ErrInvalidIdentifier)
	assert.True(t, apperrors.Is(err, apperrors.CategoryDataError))
}

func TestResolveOn(t *testing.T) {
	l := ledgertest.New(network.Peregrine, network.Spiritnet)
	doc := fixtureDoc(5)
	l.AddDocument(network.Spiritnet, doc)
	r := New(l, newRegistry(t), zap.NewNop())

	res, err := r.ResolveOn(context.Background(), doc.ID, network.Spiritnet)
	require.NoError(t, err)
	assert.Equal(t, network.Spiritnet, res.Network)

	_, err = r.ResolveOn(context.Background(), doc.ID, network.Peregrine)
	require.ErrorIs(t, err, ErrIdentifierUnresolvable)
	assert.Equal(t, 0, l.OpenConns())
}
