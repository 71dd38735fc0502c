package chain

import (
	"bytes"
	"context"
	"fmt"

	"github.com/centrifuge/go-substrate-rpc-client/v4/types"
	"github.com/centrifuge/go-substrate-rpc-client/v4/types/codec"

	"github.com/chainsafe/kilt-attester/pkg/did"
	"github.com/chainsafe/kilt-attester/pkg/ledger"
)

const submitDIDCall = "Did.submit_did_call"

func (c *conn) VerifyDIDCall(_ context.Context, call []byte, want ledger.DIDAuthorization) error {
	index, err := c.meta.FindCallIndex(submitDIDCall)
	if err != nil {
		return fmt.Errorf("find %s: %w", submitDIDCall, err)
	}
	didAccount, err := want.DID.AccountID()
	if err != nil {
		return err
	}
	submitter, err := did.DecodeKiltAddress(want.Submitter)
	if err != nil {
		return fmt.Errorf("submitter: %w", err)
	}
	return matchDIDCall(call, index, didAccount, submitter, want.Call)
}

func (c *conn) VerifyExtrinsic(ctx context.Context, raw []byte, want ledger.DIDAuthorization) error {
	var ext types.Extrinsic
	if err := codec.Decode(raw, &ext); err != nil {
		return fmt.Errorf("%w: cannot decode extrinsic", ledger.ErrCallMismatch)
	}
	if !ext.IsSigned() {
		return fmt.Errorf("%w: extrinsic is not signed", ledger.ErrCallMismatch)
	}
	submitter, err := did.DecodeKiltAddress(want.Submitter)
	if err != nil {
		return fmt.Errorf("submitter: %w", err)
	}
	signer := ext.Signature.Signer
	if !signer.IsID || !bytes.Equal(signer.AsID[:], submitter[:]) {
		return fmt.Errorf("%w: extrinsic is not signed by %s", ledger.ErrCallMismatch, want.Submitter)
	}

	call, err := codec.Encode(ext.Method)
	if err != nil {
		return fmt.Errorf("%w: cannot encode call", ledger.ErrCallMismatch)
	}
	return c.VerifyDIDCall(ctx, call, want)
}

// matchDIDCall walks an encoded Did.submit_did_call: the call index, the
// DidAuthorizedCallOperation {did, tx_counter, call, block_number, submitter} and the
// DidSignature. The inner call carries no length prefix, so it is matched against the
// expected bytes in place.
func matchDIDCall(call []byte, index types.CallIndex, didAccount, submitter [32]byte, inner []byte) error {
	rest := call
	take := func(n int) ([]byte, bool) {
		if len(rest) < n {
			return nil, false
		}
		b := rest[:n]
		rest = rest[n:]
		return b, true
	}
	mismatch := func(what string) error {
		return fmt.Errorf("%w: %s", ledger.ErrCallMismatch, what)
	}

	if b, ok := take(2); !ok || b[0] != index.SectionIndex || b[1] != index.MethodIndex {
		return mismatch("not " + submitDIDCall)
	}
	if b, ok := take(32); !ok || !bytes.Equal(b, didAccount[:]) {
		return mismatch("authorized by another DID")
	}
	if _, ok := take(8); !ok {
		return mismatch("truncated tx counter")
	}
	if b, ok := take(len(inner)); !ok || !bytes.Equal(b, inner) {
		return mismatch("inner call differs")
	}
	if _, ok := take(8); !ok {
		return mismatch("truncated block number")
	}
	if b, ok := take(32); !ok || !bytes.Equal(b, submitter[:]) {
		return mismatch("submitter differs")
	}

	variant, ok := take(1)
	if !ok {
		return mismatch("missing signature")
	}
	size := 64
	switch variant[0] {
	case verificationEd25519, verificationSr25519:
	case verificationEcdsa:
		size = 65
	default:
		return mismatch(fmt.Sprintf("unknown signature variant %d", variant[0]))
	}
	if len(rest) != size {
		return mismatch("trailing or truncated signature")
	}
	return nil
}
