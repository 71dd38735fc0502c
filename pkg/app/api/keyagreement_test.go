package api

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/chainsafe/kilt-attester/pkg/keys"
	"github.com/chainsafe/kilt-attester/pkg/ledger/ledgertest"
	"github.com/chainsafe/kilt-attester/pkg/network"
	"github.com/chainsafe/kilt-attester/pkg/resolver"
)

const testMnemonic = "bottom drive obey lake curtain smoke basket hold race lonely fit walk"

func TestResolveAppKeyURI(t *testing.T) {
	auth, err := keys.Derive(testMnemonic + keys.DefaultDIDKeyPath)
	require.NoError(t, err)
	appKey, err := keys.DeriveEncryptionKey(testMnemonic)
	require.NoError(t, err)
	otherKey, err := keys.DeriveEncryptionKey(testMnemonic + "//other")
	require.NoError(t, err)

	published := ledgertest.NewDocument(ledgertest.DocumentOptions{
		Authentication: auth.PublicKey(),
		KeyAgreement:   appKey.Public[:],
	})

	newResolver := func(t *testing.T) (resolver.Resolver, *ledgertest.Ledger) {
		reg, err := network.NewRegistry(network.Network{Name: network.Peregrine, Mnemonic: testMnemonic, AppDID: published.ID})
		require.NoError(t, err)
		l := ledgertest.New(network.Peregrine)
		return resolver.New(l, reg, zap.NewNop()), l
	}

	t.Run("published key", func(t *testing.T) {
		res, l := newResolver(t)
		l.AddDocument(network.Peregrine, published)

		uri, err := resolveAppKeyURI(context.Background(), res, network.Peregrine, published.ID, appKey)
		require.NoError(t, err)
		assert.Equal(t, published.ID+ledgertest.KeyID(appKey.Public[:]), uri)
	})

	t.Run("different key published", func(t *testing.T) {
		res, l := newResolver(t)
		l.AddDocument(network.Peregrine, published)

		_, err := resolveAppKeyURI(context.Background(), res, network.Peregrine, published.ID, otherKey)
		require.ErrorIs(t, err, errKeyAgreementNotPublished)
	})

	t.Run("application DID missing", func(t *testing.T) {
		res, _ := newResolver(t)

		_, err := resolveAppKeyURI(context.Background(), res, network.Peregrine, published.ID, appKey)
		require.Error(t, err)
		assert.ErrorIs(t, err, resolver.ErrIdentifierUnresolvable)
	})
}
