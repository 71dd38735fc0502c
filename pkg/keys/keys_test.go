package keys

import (
	"crypto/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/nacl/box"

	"github.com/chainsafe/kilt-attester/pkg/did"
	"github.com/chainsafe/kilt-attester/pkg/network"
)

const testPhrase = "bottom drive obey lake curtain smoke basket hold race lonely fit walk"

func TestDerive_IsDeterministic(t *testing.T) {
	a, err := Derive(testPhrase)
	require.NoError(t, err)
	b, err := Derive(testPhrase)
	require.NoError(t, err)

	assert.Equal(t, a.PublicKey(), b.PublicKey())
	assert.Equal(t, a.Address(), b.Address())
	assert.Len(t, a.Address(), 48)
	assert.Equal(t, byte('4'), a.Address()[0])

	other, err := Derive(testPhrase + "//other")
	require.NoError(t, err)
	assert.NotEqual(t, a.Address(), other.Address())
}

func TestDerive_EmptySecret(t *testing.T) {
	_, err := Derive("")
	require.ErrorIs(t, err, ErrEmptySecret)
}

func TestKeyPair_SignVerify(t *testing.T) {
	kp, err := Derive(testPhrase + AssertionKeyPath)
	require.NoError(t, err)

	sig, err := kp.Sign([]byte("payload"))
	require.NoError(t, err)
	assert.Len(t, sig, 64)
	assert.True(t, kp.Verify([]byte("payload"), sig))
	assert.False(t, kp.Verify([]byte("other"), sig))
}

func TestDeriveEncryptionKey_BoxRoundTrip(t *testing.T) {
	app, err := DeriveEncryptionKey(testPhrase)
	require.NoError(t, err)
	again, err := DeriveEncryptionKey(testPhrase)
	require.NoError(t, err)
	assert.Equal(t, app.Public, again.Public)

	peerPub, peerSec, err := box.GenerateKey(rand.Reader)
	require.NoError(t, err)

	var nonce [24]byte
	sealed := box.Seal(nil, []byte("challenge"), &nonce, &app.Public, peerSec)
	opened, ok := box.Open(nil, sealed, &nonce, peerPub, &app.Secret)
	require.True(t, ok)
	assert.Equal(t, []byte("challenge"), opened)
}

func TestCustodyAndKeyring(t *testing.T) {
	reg, err := network.NewRegistry(network.Network{Name: network.Peregrine, Mnemonic: testPhrase})
	require.NoError(t, err)

	custody, err := NewCustody(reg)
	require.NoError(t, err)
	acc, err := custody.Account(network.Peregrine)
	require.NoError(t, err)
	expected, err := Derive(testPhrase)
	require.NoError(t, err)
	assert.Equal(t, expected.Address(), acc.Address())

	_, err = custody.Account(network.Spiritnet)
	require.ErrorIs(t, err, network.ErrUnknownNetwork)

	ring, err := DIDKeyring(reg)
	require.NoError(t, err)
	assertion, err := Derive(testPhrase + AssertionKeyPath)
	require.NoError(t, err)

	signer, ok := ring.SignerFor(did.VerificationMethod{Type: did.KeyTypeSr25519, PublicKey: assertion.PublicKey()})
	require.True(t, ok)
	assert.Equal(t, assertion.PublicKey(), signer.PublicKey())

	_, ok = ring.SignerFor(did.VerificationMethod{Type: did.KeyTypeEd25519, PublicKey: assertion.PublicKey()})
	assert.False(t, ok)
}
