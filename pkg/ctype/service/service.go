// Package service orchestrates CType registration: preparation, signing, submission
// and bookkeeping of registered CTypes.
package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"go.uber.org/zap"

	apperrors "github.com/chainsafe/kilt-attester/pkg/app/errors"
	"github.com/chainsafe/kilt-attester/pkg/anchorstore"
	"github.com/chainsafe/kilt-attester/pkg/ctype"
	"github.com/chainsafe/kilt-attester/pkg/events"
	"github.com/chainsafe/kilt-attester/pkg/network"
	"github.com/chainsafe/kilt-attester/pkg/transaction"
)

// Reason codes specific to the CType service.
const (
	ReasonNotEnvelopeOwner = "NotEnvelopeOwner"
	ReasonSchemaMismatch   = "SchemaMismatch"
)

var (
	// ErrNotEnvelopeOwner is returned when a caller submits an envelope prepared for another DID.
	ErrNotEnvelopeOwner = errors.New("envelope was prepared for another DID")
	// ErrSchemaMismatch is returned when the submitted schema does not hash to the envelope's CType id.
	ErrSchemaMismatch = errors.New("schema does not match envelope ctype id")
)

// CreateRequest asks for a CType registration.
type CreateRequest struct {
	Schema      json.RawMessage  `json:"schema" validate:"required"`
	Network     network.Name     `json:"network" validate:"required"`
	PaymentType transaction.Mode `json:"paymentType" validate:"required,oneof=system user"`
	SigningType transaction.Mode `json:"signingType" validate:"required,oneof=system user"`
	// Account pays for the registration when PaymentType is "user".
	Account string `json:"account,omitempty"`
}

// CreateResponse carries either the envelope the wallet must sign, or the result of
// a registration the service signed itself.
type CreateResponse struct {
	CTypeID  string                        `json:"ctypeId"`
	Envelope *transaction.Envelope         `json:"envelope,omitempty"`
	Result   *transaction.SubmissionResult `json:"result,omitempty"`
}

// SubmitRequest hands back a wallet-signed envelope.
type SubmitRequest struct {
	Envelope transaction.Envelope `json:"envelope"`
	// Signed is the DID-authorized call (system pays) or the full extrinsic (user pays).
	Signed string `json:"signed" validate:"required"`
	// Schema is the schema the envelope was prepared for.
	Schema json.RawMessage `json:"schema" validate:"required"`
}

// Store is the narrow data-access interface for the CType service.
//
//go:generate mockery --name Store --output mocks --outpkg mocks --filename mock_store.go --with-expecter
type Store interface {
	SaveCType(ctx context.Context, rec *anchorstore.CTypeRecord) error
	GetCType(ctx context.Context, id string) (*anchorstore.CTypeRecord, error)
}

// Service defines the CType registration operations. owner is the authenticated caller's DID.
//
//go:generate mockery --name Service --output mocks --outpkg mocks --filename mock_service.go --with-expecter
type Service interface {
	Create(ctx context.Context, owner string, req *CreateRequest) (*CreateResponse, error)
	Submit(ctx context.Context, owner string, req *SubmitRequest) (*transaction.SubmissionResult, error)
	Get(ctx context.Context, id string) (*anchorstore.CTypeRecord, error)
}

type ctypeService struct {
	preparer  *transaction.Preparer
	submitter *transaction.Submitter
	store     Store
	notifier  events.Notifier
	logger    *zap.Logger
}

// NewService creates a new CType service
func NewService(
	preparer *transaction.Preparer,
	submitter *transaction.Submitter,
	store Store,
	notifier events.Notifier,
	logger *zap.Logger,
) Service {
	return &ctypeService{
		preparer:  preparer,
		submitter: submitter,
		store:     store,
		notifier:  notifier,
		logger:    logger,
	}
}

// Create prepares the registration. System-signed registrations are submitted
// right away; user-signed ones return the envelope for the wallet.
func (s *ctypeService) Create(ctx context.Context, owner string, req *CreateRequest) (*CreateResponse, error) {
	auth, err := transaction.ParseAuthorization(req.PaymentType, req.SigningType)
	if err != nil {
		return nil, apperrors.New(apperrors.CategoryDataError, transaction.ReasonUnsupportedAuth, err, err.Error())
	}

	prepared, err := s.preparer.Prepare(ctx, transaction.PrepareRequest{
		Schema:        req.Schema,
		Network:       req.Network,
		Owner:         owner,
		Authorization: auth,
		UserAccount:   req.Account,
	})
	if err != nil {
		return nil, err
	}

	if auth.UserSigns() {
		return &CreateResponse{CTypeID: prepared.CType.ID, Envelope: prepared.Envelope}, nil
	}

	result, err := s.submitter.SignAndSubmit(ctx, prepared.Envelope, prepared.CType)
	if err != nil {
		return nil, err
	}
	s.record(ctx, prepared.Envelope, prepared.CType, result)

	return &CreateResponse{CTypeID: prepared.CType.ID, Result: result}, nil
}

func (s *ctypeService) Submit(ctx context.Context, owner string, req *SubmitRequest) (*transaction.SubmissionResult, error) {
	env := &req.Envelope
	if env.UserDID != owner {
		return nil, apperrors.New(apperrors.CategoryForbidden, ReasonNotEnvelopeOwner, ErrNotEnvelopeOwner,
			"envelope was prepared for another DID")
	}

	ct, err := ctype.Parse(req.Schema)
	if err != nil {
		return nil, apperrors.New(apperrors.CategoryDataError, transaction.ReasonInvalidSchema, err, err.Error())
	}
	if ct.ID != env.CTypeID {
		err := fmt.Errorf("%w: schema hashes to %s", ErrSchemaMismatch, ct.ID)
		return nil, apperrors.New(apperrors.CategoryDataError, ReasonSchemaMismatch, err, err.Error())
	}

	result, err := s.submitter.Submit(ctx, env, ct, req.Signed)
	if err != nil {
		return nil, err
	}
	s.record(ctx, env, ct, result)
	return result, nil
}

func (s *ctypeService) Get(ctx context.Context, id string) (*anchorstore.CTypeRecord, error) {
	rec, err := s.store.GetCType(ctx, id)
	if errors.Is(err, anchorstore.ErrCTypeNotFound) {
		return nil, apperrors.ResourceNotFoundError(err, "ctype not found")
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get ctype: %w", err)
	}
	return rec, nil
}

// record persists and announces an included registration. The ledger is the source of
// truth, so failures are logged and the result is still returned.
func (s *ctypeService) record(
	ctx context.Context,
	env *transaction.Envelope,
	ct *ctype.CType,
	result *transaction.SubmissionResult,
) {
	schema, err := ctype.Canonical(ct.Schema)
	if err != nil {
		schema = ct.Canonical
	}
	rec := &anchorstore.CTypeRecord{
		ID:          ct.ID,
		Schema:      schema,
		Owner:       env.UserDID,
		Network:     env.Network,
		PaymentType: string(env.PaymentType),
		SigningType: string(env.SigningType),
		BlockHash:   result.BlockHash,
		BlockNumber: result.BlockNumber,
		TxHash:      result.TransactionHash,
	}
	if err := s.store.SaveCType(ctx, rec); err != nil {
		s.logger.Error("failed to record registered ctype",
			zap.String("ctype_id", ct.ID),
			zap.String("tx_hash", result.TransactionHash),
			zap.Error(err),
		)
	}
	s.notifier.CTypeRegistered(ctx, rec)
}
