package transaction

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/ethereum/go-ethereum/common/hexutil"
	"go.uber.org/zap"

	"github.com/chainsafe/kilt-attester/internal/metrics"
	apperrors "github.com/chainsafe/kilt-attester/pkg/app/errors"
	"github.com/chainsafe/kilt-attester/pkg/ctype"
	"github.com/chainsafe/kilt-attester/pkg/did"
	"github.com/chainsafe/kilt-attester/pkg/keys"
	"github.com/chainsafe/kilt-attester/pkg/ledger"
	"github.com/chainsafe/kilt-attester/pkg/network"
)

// DefaultTimeout bounds the wait for inclusion when Options.Timeout is zero.
const DefaultTimeout = 2 * time.Minute

// Options configures a Submitter.
type Options struct {
	Timeout          time.Duration
	WaitFinalization bool
}

// DIDCall is a call the application authorizes with a DID it controls and pays for
// with the network's custodial account.
type DIDCall struct {
	Network    network.Name
	Call       ledger.Call
	Authorizer did.Identifier
	// ResourceHash is echoed in the result.
	ResourceHash string

	// expect, when set, must equal the encoded Call.
	expect []byte
}

// Submitter signs and submits extrinsics and waits for their inclusion.
//
// Submissions are serialized per paying account, from reading its nonce and the
// DID tx counter until inclusion. Different accounts proceed in parallel.
type Submitter struct {
	dialer   ledger.Dialer
	networks *network.Registry
	custody  *keys.Custody
	keyring  *keys.Keyring
	opts     Options
	locks    *keyLock
	logger   *zap.Logger
}

// NewSubmitter creates a Submitter.
func NewSubmitter(
	dialer ledger.Dialer,
	networks *network.Registry,
	custody *keys.Custody,
	keyring *keys.Keyring,
	opts Options,
	logger *zap.Logger,
) *Submitter {
	if opts.Timeout <= 0 {
		opts.Timeout = DefaultTimeout
	}
	return &Submitter{
		dialer:   dialer,
		networks: networks,
		custody:  custody,
		keyring:  keyring,
		opts:     opts,
		locks:    newKeyLock(),
		logger:   logger,
	}
}

// SignAndSubmit authorizes a prepared system-signed envelope with the application DID,
// pays with the custodial account and submits it. The call is re-encoded from ct and the
// envelope must carry exactly that call.
func (s *Submitter) SignAndSubmit(ctx context.Context, env *Envelope, ct *ctype.CType) (*SubmissionResult, error) {
	auth, err := env.Authorization()
	if err != nil {
		return nil, apperrors.New(apperrors.CategoryDataError, ReasonUnsupportedAuth, err, err.Error())
	}
	if auth != SystemPaysSystemSigns {
		return nil, invalidEnvelope("%s envelopes must be signed by the wallet", auth)
	}

	n, err := s.networks.Get(env.Network)
	if err != nil {
		return nil, apperrors.New(apperrors.CategoryDataError, ReasonUnknownNetwork, err, err.Error())
	}
	if err := s.checkCustodialSubmitter(env); err != nil {
		return nil, err
	}
	call, err := decodeEnvelope(env, ct)
	if err != nil {
		return nil, err
	}
	appDID, err := did.ParseFull(n.AppDID)
	if err != nil {
		return nil, apperrors.GeneralError(fmt.Errorf("application DID for %s: %w", n.Name, err))
	}

	return s.SubmitDIDCall(ctx, DIDCall{
		Network:      env.Network,
		Call:         ledger.RegisterCType{Schema: ct.Canonical},
		Authorizer:   appDID,
		ResourceHash: hexutil.Encode(ct.Hash[:]),
		expect:       call,
	})
}

// Submit submits a wallet-signed envelope for the registration of ct. For
// SystemPaysUserSigns signed is the DID-authorized call and the custodial account pays;
// for UserPaysUserSigns it is the complete extrinsic. Either way signed must authorize
// the envelope's call for the envelope's user DID and submitter.
func (s *Submitter) Submit(ctx context.Context, env *Envelope, ct *ctype.CType, signed string) (*SubmissionResult, error) {
	auth, err := env.Authorization()
	if err != nil {
		return nil, apperrors.New(apperrors.CategoryDataError, ReasonUnsupportedAuth, err, err.Error())
	}
	if _, err := s.networks.Get(env.Network); err != nil {
		return nil, apperrors.New(apperrors.CategoryDataError, ReasonUnknownNetwork, err, err.Error())
	}
	if auth == SystemPaysSystemSigns {
		return s.SignAndSubmit(ctx, env, ct)
	}

	call, err := decodeEnvelope(env, ct)
	if err != nil {
		return nil, err
	}
	userDID, err := did.ParseFull(env.UserDID)
	if err != nil {
		return nil, invalidEnvelope("user DID: %v", err)
	}
	payload, err := decodeSigned(signed)
	if err != nil {
		return nil, err
	}
	resource := hexutil.Encode(ct.Hash[:])

	switch auth {
	case SystemPaysUserSigns:
		if err := s.checkCustodialSubmitter(env); err != nil {
			return nil, err
		}
		payer, err := s.custody.Account(env.Network)
		if err != nil {
			return nil, apperrors.GeneralError(err)
		}
		want := ledger.DIDAuthorization{DID: userDID, Call: call, Submitter: payer.Address()}
		return s.withConn(ctx, env.Network, payer.Address(), func(ctx context.Context, conn ledger.Conn) (*SubmissionResult, error) {
			if err := s.expectCall(ctx, conn, ct, call); err != nil {
				return nil, err
			}
			if err := conn.VerifyDIDCall(ctx, payload, want); err != nil {
				return nil, s.verifyError(ctx, err)
			}
			ext, err := conn.SignExtrinsic(ctx, payload, payer)
			if err != nil {
				return nil, s.buildError(ctx, "sign extrinsic", err)
			}
			return s.submit(ctx, conn, env.Network, ext, resource)
		})
	case UserPaysUserSigns:
		want := ledger.DIDAuthorization{DID: userDID, Call: call, Submitter: env.Submitter}
		return s.withConn(ctx, env.Network, env.Submitter, func(ctx context.Context, conn ledger.Conn) (*SubmissionResult, error) {
			if err := s.expectCall(ctx, conn, ct, call); err != nil {
				return nil, err
			}
			if err := conn.VerifyExtrinsic(ctx, payload, want); err != nil {
				return nil, s.verifyError(ctx, err)
			}
			return s.submit(ctx, conn, env.Network, payload, resource)
		})
	default:
		return nil, invalidEnvelope("unsupported authorization %s", auth)
	}
}

// SubmitDIDCall authorizes call with the assertion key of c.Authorizer, which must be
// held in the keyring, and submits it paid by the custodial account.
func (s *Submitter) SubmitDIDCall(ctx context.Context, c DIDCall) (*SubmissionResult, error) {
	payer, err := s.custody.Account(c.Network)
	if err != nil {
		return nil, apperrors.New(apperrors.CategoryDataError, ReasonUnknownNetwork, err, err.Error())
	}

	return s.withConn(ctx, c.Network, payer.Address(), func(ctx context.Context, conn ledger.Conn) (*SubmissionResult, error) {
		// read the document under the lock so the tx counter is current
		doc, err := conn.ResolveDID(ctx, c.Authorizer)
		switch {
		case errors.Is(err, ledger.ErrNotFound):
			return nil, apperrors.New(apperrors.CategoryResourceNotFound, ReasonIdentifierUnresolvable,
				fmt.Errorf("%s on %s: %w", c.Authorizer, c.Network, err), "authorizing DID not found")
		case err != nil:
			return nil, s.buildError(ctx, "resolve authorizer", err)
		}

		vm, err := doc.AssertionKey()
		if err != nil {
			return nil, apperrors.New(apperrors.CategoryForbidden, ReasonNoAssertionCapability, err,
				"DID has no assertion key")
		}
		signer, ok := s.keyring.SignerFor(vm)
		if !ok {
			return nil, apperrors.New(apperrors.CategoryForbidden, ReasonNoSigner,
				fmt.Errorf("%w: %s", ErrNoSigner, vm.URI()), "application does not hold the DID assertion key")
		}

		encoded, err := conn.EncodeCall(ctx, c.Call)
		if err != nil {
			return nil, s.buildError(ctx, "encode call", err)
		}
		if c.expect != nil && !bytes.Equal(encoded, c.expect) {
			return nil, invalidEnvelope("extrinsic is not the expected %s call", c.Call.Method())
		}
		authorized, err := conn.AuthorizeCall(ctx, encoded, doc, signer, payer.Address())
		if err != nil {
			return nil, s.buildError(ctx, "authorize call", err)
		}
		ext, err := conn.SignExtrinsic(ctx, authorized, payer)
		if err != nil {
			return nil, s.buildError(ctx, "sign extrinsic", err)
		}
		return s.submit(ctx, conn, c.Network, ext, c.ResourceHash)
	})
}

// withConn locks the paying account, dials the network and always closes the connection.
func (s *Submitter) withConn(
	ctx context.Context,
	name network.Name,
	account string,
	fn func(ctx context.Context, conn ledger.Conn) (*SubmissionResult, error),
) (*SubmissionResult, error) {
	ctx, cancel := context.WithTimeout(ctx, s.opts.Timeout)
	defer cancel()

	unlock, err := s.locks.Lock(ctx, string(name)+"/"+account)
	if err != nil {
		return nil, unreachable(ctx, fmt.Errorf("waiting for account %s: %w", account, err))
	}
	defer unlock()

	conn, err := s.dialer.Dial(ctx, name)
	if err != nil {
		metrics.SubmissionsTotal.WithLabelValues(string(name), metrics.ResultUnreachable).Inc()
		return nil, unreachable(ctx, err)
	}
	defer func() {
		if cerr := conn.Close(); cerr != nil {
			s.logger.Warn("failed to close ledger connection", zap.String("network", string(name)), zap.Error(cerr))
		}
	}()

	return fn(ctx, conn)
}

func (s *Submitter) submit(
	ctx context.Context,
	conn ledger.Conn,
	name network.Name,
	ext []byte,
	resource string,
) (*SubmissionResult, error) {
	start := time.Now()
	inc, err := conn.SubmitAndWatch(ctx, ext, ledger.WatchOptions{WaitFinalization: s.opts.WaitFinalization})
	if err != nil {
		var dispatchErr *ledger.DispatchError
		result := metrics.ResultUnreachable
		if errors.As(err, &dispatchErr) {
			result = metrics.ResultRejected
		}
		metrics.SubmissionsTotal.WithLabelValues(string(name), result).Inc()
		s.logger.Warn("submission failed",
			zap.String("network", string(name)),
			zap.String("resource", resource),
			zap.Error(err),
		)
		return nil, submissionError(ctx, err)
	}

	metrics.SubmissionsTotal.WithLabelValues(string(name), metrics.ResultSuccess).Inc()
	metrics.SubmissionDuration.WithLabelValues(string(name)).Observe(time.Since(start).Seconds())

	res := newResult(inc, resource)
	s.logger.Info("transaction included",
		zap.String("network", string(name)),
		zap.String("tx_hash", res.TransactionHash),
		zap.String("block_hash", res.BlockHash),
		zap.Uint64("block_number", res.BlockNumber),
		zap.Bool("finalized", inc.Finalized),
	)
	return res, nil
}

func (s *Submitter) buildError(ctx context.Context, op string, err error) error {
	if errors.Is(err, ledger.ErrUnreachable) || ctx.Err() != nil {
		return unreachable(ctx, err)
	}
	return apperrors.GeneralError(fmt.Errorf("%s: %w", op, err))
}

func (s *Submitter) checkCustodialSubmitter(env *Envelope) error {
	payer, err := s.custody.Account(env.Network)
	if err != nil {
		return apperrors.GeneralError(err)
	}
	if env.Submitter != payer.Address() {
		return invalidEnvelope("submitter %s is not the custodial account of %s", env.Submitter, env.Network)
	}
	return nil
}

// decodeEnvelope returns the encoded call of an envelope prepared for ct.
func decodeEnvelope(env *Envelope, ct *ctype.CType) ([]byte, error) {
	if ct == nil || ct.ID != env.CTypeID {
		return nil, invalidEnvelope("envelope was not prepared for this ctype")
	}
	call, err := hexutil.Decode(env.Extrinsic)
	if err != nil || len(call) == 0 {
		return nil, invalidEnvelope("extrinsic must be 0x-prefixed hex")
	}
	return call, nil
}

// expectCall rejects envelopes whose call is not the registration of ct.
func (s *Submitter) expectCall(ctx context.Context, conn ledger.Conn, ct *ctype.CType, call []byte) error {
	want, err := conn.EncodeCall(ctx, ledger.RegisterCType{Schema: ct.Canonical})
	if err != nil {
		return s.buildError(ctx, "encode call", err)
	}
	if !bytes.Equal(want, call) {
		return invalidEnvelope("extrinsic is not the registration of %s", ct.ID)
	}
	return nil
}

func (s *Submitter) verifyError(ctx context.Context, err error) error {
	if errors.Is(err, ledger.ErrCallMismatch) {
		err = fmt.Errorf("%w: %w", ErrInvalidEnvelope, err)
		return apperrors.New(apperrors.CategoryDataError, ReasonInvalidEnvelope, err, err.Error())
	}
	return s.buildError(ctx, "verify signed payload", err)
}

func decodeSigned(signed string) ([]byte, error) {
	b, err := decodeHex(signed)
	if err != nil || len(b) == 0 {
		return nil, invalidEnvelope("signed payload must be hex")
	}
	return b, nil
}
