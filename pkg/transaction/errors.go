package transaction

import (
	"context"
	"errors"
	"fmt"

	apperrors "github.com/chainsafe/kilt-attester/pkg/app/errors"
	"github.com/chainsafe/kilt-attester/pkg/ledger"
)

// Reason codes attached to transaction errors.
const (
	ReasonLightDidNotAllowed     = "LightDidNotAllowed"
	ReasonInvalidIdentifier      = "InvalidIdentifier"
	ReasonInvalidSchema          = "InvalidSchema"
	ReasonMissingPayerAccount    = "MissingPayerAccount"
	ReasonInvalidPayerAccount    = "InvalidPayerAccount"
	ReasonUnsupportedAuth        = "UnsupportedAuthorization"
	ReasonInvalidEnvelope        = "InvalidEnvelope"
	ReasonUnknownNetwork         = "UnknownNetwork"
	ReasonIdentifierUnresolvable = "IdentifierUnresolvable"
	ReasonNoAssertionCapability  = "NoAssertionCapability"
	ReasonNoSigner               = "NoSigner"
	ReasonDispatchError          = "DispatchError"
	ReasonSubmissionUnreachable  = "SubmissionUnreachable"
)

var (
	// ErrMissingPayerAccount is returned when the user pays but no account was given.
	ErrMissingPayerAccount = errors.New("payer account is required when the user pays")
	// ErrInvalidEnvelope is returned for envelopes that cannot be submitted as they are.
	ErrInvalidEnvelope = errors.New("invalid transaction envelope")
	// ErrNoSigner is returned when the application does not hold the DID key that must authorize a call.
	ErrNoSigner = errors.New("no signer held for the DID assertion key")
	// ErrSubmissionUnreachable is returned for transport failures during submission.
	ErrSubmissionUnreachable = errors.New("submission unreachable")
)

func invalidEnvelope(format string, args ...any) error {
	err := fmt.Errorf("%w: "+format, append([]any{ErrInvalidEnvelope}, args...)...)
	return apperrors.New(apperrors.CategoryDataError, ReasonInvalidEnvelope, err, err.Error())
}

// unreachable maps a dial or transport failure.
func unreachable(ctx context.Context, err error) error {
	err = fmt.Errorf("%w: %w", ErrSubmissionUnreachable, err)
	if errors.Is(ctx.Err(), context.DeadlineExceeded) {
		return apperrors.New(apperrors.CategoryConnectionTimeout, ReasonSubmissionUnreachable, err,
			"timed out waiting for the network")
	}
	return apperrors.New(apperrors.CategoryDependencyFailure, ReasonSubmissionUnreachable, err,
		"network unreachable")
}

// submissionError maps an error returned while submitting and watching an extrinsic.
func submissionError(ctx context.Context, err error) error {
	var dispatchErr *ledger.DispatchError
	switch {
	case errors.As(err, &dispatchErr):
		return apperrors.New(apperrors.CategoryDataConflict, ReasonDispatchError, err, dispatchErr.Error())
	case errors.Is(err, ledger.ErrUnreachable), ctx.Err() != nil:
		return unreachable(ctx, err)
	default:
		return apperrors.GeneralError(err)
	}
}
