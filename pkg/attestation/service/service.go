// Package service composes credentials for claims and anchors them with the application DID.
package service

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/chainsafe/kilt-attester/pkg/anchorstore"
	apperrors "github.com/chainsafe/kilt-attester/pkg/app/errors"
	"github.com/chainsafe/kilt-attester/pkg/attestation"
	"github.com/chainsafe/kilt-attester/pkg/ctype"
	"github.com/chainsafe/kilt-attester/pkg/events"
	"github.com/chainsafe/kilt-attester/pkg/network"
	"github.com/chainsafe/kilt-attester/pkg/transaction"
)

// ReasonInvalidClaim is the reason code of claims that cannot be composed.
const ReasonInvalidClaim = "InvalidClaim"

// AttestRequest asks the application to attest a claim.
type AttestRequest struct {
	Claim attestation.Claim `json:"claim"`
	// Network pins the attestation to one network. Empty uses the first network that hosts the application DID.
	Network network.Name `json:"network,omitempty"`
}

// AttestResponse returns the credential the holder keeps and where its root hash was anchored.
type AttestResponse struct {
	Credential *attestation.Credential       `json:"credential"`
	Network    network.Name                  `json:"network"`
	Result     *transaction.SubmissionResult `json:"result"`
}

// Anchorer anchors claim hashes on a ledger.
type Anchorer interface {
	Anchor(ctx context.Context, req attestation.AnchorRequest) (*attestation.Anchored, error)
}

// Store is the narrow data-access interface for the attestation service.
//
//go:generate mockery --name Store --output mocks --outpkg mocks --filename mock_store.go --with-expecter
type Store interface {
	SaveAttestation(ctx context.Context, rec *anchorstore.AttestationRecord) error
	GetAttestation(ctx context.Context, claimHash string) (*anchorstore.AttestationRecord, error)
}

// Service defines the attestation operations.
//
//go:generate mockery --name Service --output mocks --outpkg mocks --filename mock_service.go --with-expecter
type Service interface {
	Attest(ctx context.Context, req *AttestRequest) (*AttestResponse, error)
	Get(ctx context.Context, claimHash string) (*anchorstore.AttestationRecord, error)
}

type attestationService struct {
	anchorer Anchorer
	networks *network.Registry
	store    Store
	notifier events.Notifier
	logger   *zap.Logger
}

// NewService creates a new attestation service
func NewService(
	anchorer Anchorer,
	networks *network.Registry,
	store Store,
	notifier events.Notifier,
	logger *zap.Logger,
) Service {
	return &attestationService{
		anchorer: anchorer,
		networks: networks,
		store:    store,
		notifier: notifier,
		logger:   logger,
	}
}

func (s *attestationService) Attest(ctx context.Context, req *AttestRequest) (*AttestResponse, error) {
	cred, err := attestation.Compose(req.Claim)
	if err != nil {
		return nil, apperrors.New(apperrors.CategoryDataError, ReasonInvalidClaim, err, err.Error())
	}
	claimHash, err := cred.ClaimHash()
	if err != nil {
		return nil, apperrors.GeneralError(err)
	}
	ctypeID, err := req.Claim.CTypeID()
	if err != nil {
		return nil, apperrors.New(apperrors.CategoryDataError, ReasonInvalidClaim, err, err.Error())
	}
	ctypeHash, err := ctype.HashFromID(ctypeID)
	if err != nil {
		return nil, apperrors.GeneralError(err)
	}

	attester, err := s.attester(req.Network)
	if err != nil {
		return nil, err
	}

	anchored, err := s.anchorer.Anchor(ctx, attestation.AnchorRequest{
		ClaimHash: claimHash,
		CTypeHash: ctypeHash,
		Attester:  attester,
		Network:   req.Network,
	})
	if err != nil {
		return nil, err
	}

	rec := &anchorstore.AttestationRecord{
		ClaimHash:   cred.RootHash,
		CTypeID:     ctypeID,
		Attester:    attester,
		Owner:       req.Claim.Owner,
		Network:     anchored.Network,
		BlockHash:   anchored.Result.BlockHash,
		BlockNumber: anchored.Result.BlockNumber,
		TxHash:      anchored.Result.TransactionHash,
	}
	if err := s.store.SaveAttestation(ctx, rec); err != nil {
		s.logger.Error("failed to record anchored attestation",
			zap.String("claim_hash", rec.ClaimHash),
			zap.String("tx_hash", rec.TxHash),
			zap.Error(err),
		)
	}
	s.notifier.AttestationAnchored(ctx, rec)

	return &AttestResponse{Credential: cred, Network: anchored.Network, Result: anchored.Result}, nil
}

func (s *attestationService) Get(ctx context.Context, claimHash string) (*anchorstore.AttestationRecord, error) {
	rec, err := s.store.GetAttestation(ctx, claimHash)
	if errors.Is(err, anchorstore.ErrAttestationNotFound) {
		return nil, apperrors.ResourceNotFoundError(err, "attestation not found")
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get attestation: %w", err)
	}
	return rec, nil
}

// attester picks the application DID of the pinned network, or of the first network in
// resolution order.
func (s *attestationService) attester(name network.Name) (string, error) {
	if name != "" {
		n, err := s.networks.Get(name)
		if err != nil {
			return "", apperrors.New(apperrors.CategoryDataError, transaction.ReasonUnknownNetwork, err, err.Error())
		}
		return n.AppDID, nil
	}
	for _, n := range s.networks.Ordered() {
		if n.AppDID != "" {
			return n.AppDID, nil
		}
	}
	return "", apperrors.GeneralError(errors.New("no network has an application DID configured"))
}
