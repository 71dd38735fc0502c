package attestation

import (
	"context"
	"errors"
	"fmt"

	"github.com/ethereum/go-ethereum/common/hexutil"
	"go.uber.org/zap"

	apperrors "github.com/chainsafe/kilt-attester/pkg/app/errors"
	"github.com/chainsafe/kilt-attester/pkg/did"
	"github.com/chainsafe/kilt-attester/pkg/keys"
	"github.com/chainsafe/kilt-attester/pkg/ledger"
	"github.com/chainsafe/kilt-attester/pkg/network"
	"github.com/chainsafe/kilt-attester/pkg/resolver"
	"github.com/chainsafe/kilt-attester/pkg/transaction"
)

// AnchorRequest binds a claim hash to a CType hash under the attester's DID.
type AnchorRequest struct {
	ClaimHash [32]byte
	CTypeHash [32]byte
	Attester  string
	// Network pins resolution to one network. Empty probes all of them in order.
	Network network.Name
}

// Anchored is the outcome of Anchor.
type Anchored struct {
	Result *transaction.SubmissionResult
	// Network is where the attester resolved and the attestation landed.
	Network network.Name
}

// Submitter submits DID-authorized calls paid by the custodial account.
//
//go:generate mockery --name Submitter --output mocks --outpkg mocks --filename mock_submitter.go --with-expecter
type Submitter interface {
	SubmitDIDCall(ctx context.Context, c transaction.DIDCall) (*transaction.SubmissionResult, error)
}

// Anchorer writes attestations to the ledger.
type Anchorer struct {
	resolver  resolver.Resolver
	keyring   *keys.Keyring
	submitter Submitter
	logger    *zap.Logger
}

// NewAnchorer creates an Anchorer.
func NewAnchorer(res resolver.Resolver, keyring *keys.Keyring, submitter Submitter, logger *zap.Logger) *Anchorer {
	return &Anchorer{resolver: res, keyring: keyring, submitter: submitter, logger: logger}
}

// Anchor submits Attestation.add for the claim hash, authorized by the attester's
// assertion key and paid by the system. Ledger rejections are returned unchanged;
// an already anchored claim is never retried.
func (a *Anchorer) Anchor(ctx context.Context, req AnchorRequest) (*Anchored, error) {
	attester, err := did.ParseFull(req.Attester)
	switch {
	case errors.Is(err, did.ErrLightDidNotAllowed):
		return nil, apperrors.New(apperrors.CategoryForbidden, transaction.ReasonLightDidNotAllowed, err,
			"light DIDs cannot attest")
	case err != nil:
		return nil, apperrors.New(apperrors.CategoryDataError, transaction.ReasonInvalidIdentifier, err, "invalid attester DID")
	}

	var resolved *resolver.Resolved
	if req.Network != "" {
		resolved, err = a.resolver.ResolveOn(ctx, attester.String(), req.Network)
	} else {
		resolved, err = a.resolver.Resolve(ctx, attester.String())
	}
	if err != nil {
		return nil, err
	}

	vm, err := resolved.Document.AssertionKey()
	if err != nil {
		return nil, apperrors.New(apperrors.CategoryForbidden, transaction.ReasonNoAssertionCapability, err,
			"attester DID has no assertion key")
	}
	if _, ok := a.keyring.SignerFor(vm); !ok {
		return nil, apperrors.New(apperrors.CategoryForbidden, transaction.ReasonNoSigner,
			fmt.Errorf("%w: %s", transaction.ErrNoSigner, vm.URI()), "application does not hold the attester assertion key")
	}

	claimHash := hexutil.Encode(req.ClaimHash[:])
	a.logger.Debug("anchoring attestation",
		zap.String("claim_hash", claimHash),
		zap.String("attester", attester.String()),
		zap.String("network", string(resolved.Network)),
	)

	res, err := a.submitter.SubmitDIDCall(ctx, transaction.DIDCall{
		Network:      resolved.Network,
		Call:         ledger.AddAttestation{ClaimHash: req.ClaimHash, CTypeHash: req.CTypeHash},
		Authorizer:   attester,
		ResourceHash: claimHash,
	})
	if err != nil {
		return nil, err
	}
	return &Anchored{Result: res, Network: resolved.Network}, nil
}
