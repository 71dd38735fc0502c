package transaction

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/ethereum/go-ethereum/common/hexutil"
	"go.uber.org/zap"

	apperrors "github.com/chainsafe/kilt-attester/pkg/app/errors"
	"github.com/chainsafe/kilt-attester/pkg/ctype"
	"github.com/chainsafe/kilt-attester/pkg/did"
	"github.com/chainsafe/kilt-attester/pkg/keys"
	"github.com/chainsafe/kilt-attester/pkg/ledger"
	"github.com/chainsafe/kilt-attester/pkg/network"
)

// PrepareRequest asks for an unsigned CType registration.
type PrepareRequest struct {
	Schema        json.RawMessage
	Network       network.Name
	Owner         string
	Authorization Authorization
	// UserAccount is the paying account. Required for UserPaysUserSigns only.
	UserAccount string
}

// Prepared is the outcome of Prepare.
type Prepared struct {
	Envelope *Envelope
	CType    *ctype.CType
}

// Preparer builds unsigned CType registration calls.
type Preparer struct {
	dialer   ledger.Dialer
	networks *network.Registry
	custody  *keys.Custody
	logger   *zap.Logger
}

// NewPreparer creates a Preparer.
func NewPreparer(dialer ledger.Dialer, networks *network.Registry, custody *keys.Custody, logger *zap.Logger) *Preparer {
	return &Preparer{dialer: dialer, networks: networks, custody: custody, logger: logger}
}

// Prepare validates the request and encodes the Ctype.add call. Input errors are
// reported before any network I/O.
func (p *Preparer) Prepare(ctx context.Context, req PrepareRequest) (*Prepared, error) {
	owner, err := did.ParseFull(req.Owner)
	switch {
	case errors.Is(err, did.ErrLightDidNotAllowed):
		return nil, apperrors.New(apperrors.CategoryForbidden, ReasonLightDidNotAllowed, err, "light DIDs are not allowed")
	case err != nil:
		return nil, apperrors.New(apperrors.CategoryDataError, ReasonInvalidIdentifier, err, "invalid owner DID")
	}

	ct, err := ctype.Parse(req.Schema)
	if err != nil {
		return nil, apperrors.New(apperrors.CategoryDataError, ReasonInvalidSchema, err, err.Error())
	}

	if _, err := p.networks.Get(req.Network); err != nil {
		return nil, apperrors.New(apperrors.CategoryDataError, ReasonUnknownNetwork, err, err.Error())
	}

	submitter, err := p.submitter(req)
	if err != nil {
		return nil, err
	}

	call, err := p.encode(ctx, req.Network, ledger.RegisterCType{Schema: ct.Canonical})
	if err != nil {
		return nil, err
	}

	p.logger.Debug("prepared ctype registration",
		zap.String("ctype_id", ct.ID),
		zap.String("network", string(req.Network)),
		zap.Stringer("authorization", req.Authorization),
		zap.String("submitter", submitter),
	)

	return &Prepared{
		Envelope: &Envelope{
			Extrinsic:   hexutil.Encode(call),
			Submitter:   submitter,
			CTypeID:     ct.ID,
			UserDID:     owner.String(),
			Network:     req.Network,
			PaymentType: req.Authorization.PaymentType(),
			SigningType: req.Authorization.SigningType(),
		},
		CType: ct,
	}, nil
}

func (p *Preparer) submitter(req PrepareRequest) (string, error) {
	switch req.Authorization {
	case SystemPaysSystemSigns, SystemPaysUserSigns:
		payer, err := p.custody.Account(req.Network)
		if err != nil {
			return "", apperrors.GeneralError(err)
		}
		return payer.Address(), nil
	case UserPaysUserSigns:
		if req.UserAccount == "" {
			return "", apperrors.New(apperrors.CategoryDataError, ReasonMissingPayerAccount, ErrMissingPayerAccount,
				"account is required when the user pays")
		}
		if _, err := did.DecodeKiltAddress(req.UserAccount); err != nil {
			return "", apperrors.New(apperrors.CategoryDataError, ReasonInvalidPayerAccount, err,
				"account is not a KILT address")
		}
		return req.UserAccount, nil
	default:
		err := fmt.Errorf("%w: %s", ErrUnsupportedAuthorization, req.Authorization)
		return "", apperrors.New(apperrors.CategoryDataError, ReasonUnsupportedAuth, err, err.Error())
	}
}

func (p *Preparer) encode(ctx context.Context, name network.Name, call ledger.Call) ([]byte, error) {
	conn, err := p.dialer.Dial(ctx, name)
	if err != nil {
		return nil, unreachable(ctx, err)
	}
	defer func() {
		if cerr := conn.Close(); cerr != nil {
			p.logger.Warn("failed to close ledger connection", zap.String("network", string(name)), zap.Error(cerr))
		}
	}()

	encoded, err := conn.EncodeCall(ctx, call)
	if errors.Is(err, ledger.ErrUnreachable) {
		return nil, unreachable(ctx, err)
	}
	if err != nil {
		return nil, apperrors.GeneralError(fmt.Errorf("encode %s: %w", call.Method(), err))
	}
	return encoded, nil
}
