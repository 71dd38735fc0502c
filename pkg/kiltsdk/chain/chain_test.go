package chain

import (
	"bytes"
	"context"
	"encoding/binary"
	"errors"
	"testing"
	"time"

	"github.com/centrifuge/go-substrate-rpc-client/v4/types"
	"github.com/centrifuge/go-substrate-rpc-client/v4/types/codec"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chainsafe/kilt-attester/pkg/did"
	"github.com/chainsafe/kilt-attester/pkg/ledger"
)

func u64le(v uint64) []byte {
	b := make([]byte, 8)
	binary.LittleEndian.PutUint64(b, v)
	return b
}

func fill(b byte, n int) []byte { return bytes.Repeat([]byte{b}, n) }

// encodedDetails builds a DidDetails value with an sr25519 authentication key, an
// sr25519 attestation key and one x25519 key-agreement key.
func encodedDetails() []byte {
	var buf bytes.Buffer
	buf.Write(fill(0xa1, 32)) // authentication_key
	buf.WriteByte(1 << 2)     // key_agreement_keys: compact(1)
	buf.Write(fill(0xc3, 32))
	buf.WriteByte(0) // delegation_key: None
	buf.WriteByte(1) // attestation_key: Some
	buf.Write(fill(0xb2, 32))

	buf.WriteByte(3 << 2) // public_keys: compact(3)
	buf.Write(fill(0xa1, 32))
	buf.Write([]byte{publicVerificationKey, verificationSr25519})
	buf.Write(fill(0x01, 32))
	buf.Write(u64le(10))
	buf.Write(fill(0xb2, 32))
	buf.Write([]byte{publicVerificationKey, verificationSr25519})
	buf.Write(fill(0x02, 32))
	buf.Write(u64le(11))
	buf.Write(fill(0xc3, 32))
	buf.Write([]byte{publicEncryptionKey, encryptionX25519})
	buf.Write(fill(0x03, 32))
	buf.Write(u64le(12))

	buf.Write(u64le(7))       // last_tx_counter
	buf.Write(fill(0x09, 32)) // deposit.owner
	amount := make([]byte, 16)
	amount[0] = 0x40
	buf.Write(amount) // deposit.amount
	return buf.Bytes()
}

func TestDidDetails_Decode(t *testing.T) {
	var d didDetails
	require.NoError(t, codec.Decode(encodedDetails(), &d))

	assert.Equal(t, uint64(7), d.LastTxCounter)
	assert.Nil(t, d.Delegation)
	require.NotNil(t, d.Attestation)
	require.Len(t, d.PublicKeys, 3)
	assert.Equal(t, int64(0x40), d.DepositAmount.Int64())

	id := did.FromAccount(fill(0x01, 32))
	doc := d.document(id)
	assert.Equal(t, id.String(), doc.ID)
	assert.Equal(t, uint64(7), doc.LastTxCounter)
	require.Len(t, doc.VerificationMethods, 3)

	vm, err := doc.AssertionKey()
	require.NoError(t, err)
	assert.Equal(t, did.KeyTypeSr25519, vm.Type)
	assert.Equal(t, fill(0x02, 32), vm.PublicKey)
	assert.Equal(t, "#0x"+string(bytes.Repeat([]byte("b2"), 32)), vm.ID)

	ka, ok := doc.FirstKeyAgreement()
	require.True(t, ok)
	assert.Equal(t, did.KeyTypeX25519, ka.Type)
	assert.Equal(t, fill(0x03, 32), ka.PublicKey)

	auth, ok := doc.Method(doc.Authentication[0])
	require.True(t, ok)
	assert.Equal(t, fill(0x01, 32), auth.PublicKey)
}

func TestDidDetails_DecodeRejectsUnknownKey(t *testing.T) {
	raw := encodedDetails()
	// first public key variant byte sits after the key id of the first map entry
	offset := 32 + 1 + 32 + 1 + 1 + 32 + 1 + 32
	raw[offset] = 7

	var d didDetails
	require.Error(t, codec.Decode(raw, &d))
}

func TestDidCallOperation_Encode(t *testing.T) {
	op := didCallOperation{
		DID:         types.AccountID(fill(0x01, 32)),
		TxCounter:   5,
		Call:        rawCall{0x2a, 0x00, 0xaa},
		BlockNumber: 100,
		Submitter:   types.AccountID(fill(0x02, 32)),
	}
	got, err := codec.Encode(op)
	require.NoError(t, err)

	var want bytes.Buffer
	want.Write(fill(0x01, 32))
	want.Write(u64le(5))
	want.Write([]byte{0x2a, 0x00, 0xaa})
	want.Write(u64le(100))
	want.Write(fill(0x02, 32))
	assert.Equal(t, want.Bytes(), got)
}

func TestDidSignature_Encode(t *testing.T) {
	got, err := codec.Encode(didSignature{Type: did.KeyTypeSr25519, Signature: fill(0x05, 64)})
	require.NoError(t, err)
	assert.Equal(t, append([]byte{verificationSr25519}, fill(0x05, 64)...), got)

	_, err = codec.Encode(didSignature{Type: did.KeyTypeX25519, Signature: fill(0x05, 64)})
	require.Error(t, err)
}

func TestNone_Encode(t *testing.T) {
	got, err := codec.Encode(none{})
	require.NoError(t, err)
	assert.Equal(t, []byte{0}, got)
}

type fakeSubscription struct {
	statuses chan types.ExtrinsicStatus
	errs     chan error
}

func newFakeSubscription(statuses ...types.ExtrinsicStatus) *fakeSubscription {
	s := &fakeSubscription{
		statuses: make(chan types.ExtrinsicStatus, len(statuses)),
		errs:     make(chan error, 1),
	}
	for _, st := range statuses {
		s.statuses <- st
	}
	return s
}

func (s *fakeSubscription) Chan() <-chan types.ExtrinsicStatus { return s.statuses }
func (s *fakeSubscription) Err() <-chan error                  { return s.errs }

func TestWaitForInclusion(t *testing.T) {
	inBlock := types.ExtrinsicStatus{IsInBlock: true, AsInBlock: types.NewHash(fill(0x11, 32))}
	finalized := types.ExtrinsicStatus{IsFinalized: true, AsFinalized: types.NewHash(fill(0x22, 32))}
	ready := types.ExtrinsicStatus{IsReady: true}

	t.Run("returns on in block", func(t *testing.T) {
		inc, err := waitForInclusion(context.Background(), newFakeSubscription(ready, inBlock, finalized), ledger.WatchOptions{})
		require.NoError(t, err)
		assert.Equal(t, fill(0x11, 32), inc.BlockHash[:])
		assert.False(t, inc.Finalized)
	})

	t.Run("waits for finality when asked", func(t *testing.T) {
		inc, err := waitForInclusion(context.Background(), newFakeSubscription(ready, inBlock, finalized),
			ledger.WatchOptions{WaitFinalization: true})
		require.NoError(t, err)
		assert.Equal(t, fill(0x22, 32), inc.BlockHash[:])
		assert.True(t, inc.Finalized)
	})

	t.Run("pool rejections are dispatch errors", func(t *testing.T) {
		for _, st := range []types.ExtrinsicStatus{{IsInvalid: true}, {IsDropped: true}, {IsUsurped: true}} {
			_, err := waitForInclusion(context.Background(), newFakeSubscription(ready, st), ledger.WatchOptions{})
			require.ErrorIs(t, err, ledger.ErrDispatch)
		}
	})

	t.Run("subscription error is unreachable", func(t *testing.T) {
		sub := newFakeSubscription(ready)
		sub.errs <- errors.New("socket closed")
		_, err := waitForInclusion(context.Background(), sub, ledger.WatchOptions{})
		require.ErrorIs(t, err, ledger.ErrUnreachable)
	})

	t.Run("closed subscription is unreachable", func(t *testing.T) {
		sub := newFakeSubscription()
		close(sub.statuses)
		_, err := waitForInclusion(context.Background(), sub, ledger.WatchOptions{})
		require.ErrorIs(t, err, ledger.ErrUnreachable)
	})

	t.Run("context deadline", func(t *testing.T) {
		ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
		defer cancel()
		_, err := waitForInclusion(ctx, newFakeSubscription(ready), ledger.WatchOptions{})
		require.ErrorIs(t, err, ledger.ErrUnreachable)
		require.ErrorIs(t, err, context.DeadlineExceeded)
	})
}

func TestDispatchResult(t *testing.T) {
	idx := func(i uint32) *uint32 { return &i }
	records := []eventRecord{
		{Name: "Balances.Withdraw", ApplyExtrinsic: idx(1)},
		{Name: "System.ExtrinsicSuccess", ApplyExtrinsic: idx(0)},
		{Name: "System.ExtrinsicFailed", ApplyExtrinsic: idx(1), Details: "dispatch_error=Module"},
		{Name: "System.ExtrinsicFailed"},
	}

	require.NoError(t, dispatchResult(records, 0))
	require.NoError(t, dispatchResult(records, 2))

	err := dispatchResult(records, 1)
	require.ErrorIs(t, err, ledger.ErrDispatch)
	assert.Contains(t, err.Error(), "ExtrinsicFailed")
	assert.Contains(t, err.Error(), "dispatch_error=Module")
}
