// Package ledger defines the port through which services talk to a KILT node.
//
// A Conn is a per-operation resource: callers dial, use and close it on every path.
// The Substrate JSON-RPC adapter lives in pkg/kiltsdk; tests use pkg/ledger/ledgertest.
package ledger

import (
	"context"
	"errors"
	"fmt"
	"math/big"

	"github.com/chainsafe/kilt-attester/pkg/did"
	"github.com/chainsafe/kilt-attester/pkg/keys"
	"github.com/chainsafe/kilt-attester/pkg/network"
)

var (
	// ErrNotFound is returned when a queried entry does not exist on chain.
	ErrNotFound = errors.New("not found on ledger")
	// ErrUnreachable is returned for transport failures: dial errors, dropped
	// connections, subscription errors and inclusion timeouts.
	ErrUnreachable = errors.New("ledger unreachable")
	// ErrDispatch is matched by every DispatchError.
	ErrDispatch = errors.New("dispatch error")
	// ErrCallMismatch is returned when a wallet-signed payload does not carry the expected call.
	ErrCallMismatch = errors.New("signed payload does not match the expected call")
)

// DispatchError is a rejection reported by the ledger for a submitted transaction.
type DispatchError struct {
	// Module and Name identify the runtime error, e.g. Ctype/AlreadyExists, when known.
	Module  string
	Name    string
	Details string
}

func (e *DispatchError) Error() string {
	switch {
	case e.Module != "" && e.Name != "":
		return fmt.Sprintf("dispatch error: %s.%s %s", e.Module, e.Name, e.Details)
	case e.Details != "":
		return "dispatch error: " + e.Details
	default:
		return "dispatch error"
	}
}

// Is matches ErrDispatch.
func (e *DispatchError) Is(target error) bool { return target == ErrDispatch }

// Unreachable wraps a transport failure into ErrUnreachable.
func Unreachable(op string, err error) error {
	return fmt.Errorf("%s: %w: %v", op, ErrUnreachable, err)
}

// Call is a runtime call that can be encoded against the node's metadata.
type Call interface {
	// Method is the "Pallet.call" name.
	Method() string
}

// RegisterCType is Ctype.add(schema bytes).
type RegisterCType struct {
	Schema []byte
}

func (RegisterCType) Method() string { return "Ctype.add" }

// AddAttestation is Attestation.add(claim_hash, ctype_hash, None).
type AddAttestation struct {
	ClaimHash [32]byte
	CTypeHash [32]byte
}

func (AddAttestation) Method() string { return "Attestation.add" }

// RawCall is a call that was already encoded, e.g. by Conn.EncodeCall in an earlier request.
type RawCall []byte

func (RawCall) Method() string { return "" }

// DIDAuthorization is the Did.submit_did_call a wallet is expected to have signed.
type DIDAuthorization struct {
	DID did.Identifier
	// Call is the encoded inner call.
	Call []byte
	// Submitter is the account allowed to submit the authorized call.
	Submitter string
}

// Inclusion describes where a submitted extrinsic landed.
type Inclusion struct {
	BlockHash   [32]byte
	BlockNumber uint64
	TxHash      [32]byte
	Finalized   bool
}

// WatchOptions controls the wait for inclusion.
type WatchOptions struct {
	// WaitFinalization waits for finality instead of returning on block inclusion.
	WaitFinalization bool
}

// Payer pays for and signs extrinsics.
type Payer interface {
	URI() string
	PublicKey() []byte
	Address() string
}

// Conn is a connection to one network's node.
type Conn interface {
	// ResolveDID returns the on-chain document of a full DID, or ErrNotFound.
	ResolveDID(ctx context.Context, id did.Identifier) (*did.Document, error)
	// EncodeCall encodes call against the node's metadata.
	EncodeCall(ctx context.Context, call Call) ([]byte, error)
	// AuthorizeCall wraps an encoded call into Did.submit_did_call, signed with signer for
	// the DID described by doc. submitter is the account that will pay for the extrinsic.
	AuthorizeCall(ctx context.Context, call []byte, doc *did.Document, signer keys.Signer, submitter string) ([]byte, error)
	// VerifyDIDCall checks that call is a Did.submit_did_call of want.DID, for want.Submitter,
	// wrapping exactly want.Call. It returns ErrCallMismatch otherwise. The DID signature
	// itself is checked by the runtime.
	VerifyDIDCall(ctx context.Context, call []byte, want DIDAuthorization) error
	// VerifyExtrinsic checks that extrinsic is signed by want.Submitter and that its call
	// passes VerifyDIDCall.
	VerifyExtrinsic(ctx context.Context, extrinsic []byte, want DIDAuthorization) error
	// SignExtrinsic builds an extrinsic for an encoded call, signed by payer.
	SignExtrinsic(ctx context.Context, call []byte, payer Payer) ([]byte, error)
	// SubmitAndWatch submits a signed extrinsic and blocks until it is included,
	// rejected, ctx is done, or the connection fails.
	SubmitAndWatch(ctx context.Context, extrinsic []byte, opts WatchOptions) (*Inclusion, error)
	// FreeBalance returns the free balance of an account in femtoKILT.
	FreeBalance(ctx context.Context, address string) (*big.Int, error)
	Close() error
}

// Dialer opens connections to configured networks.
type Dialer interface {
	Dial(ctx context.Context, name network.Name) (Conn, error)
}
