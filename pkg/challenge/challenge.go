// Package challenge implements the encrypted challenge/response handshake used to
// prove control of a KILT DID.
//
// The application issues a random challenge bound to its own key-agreement key.
// The wallet encrypts the challenge for that key with NaCl box, using one of the
// holder DID's key-agreement keys as sender. Verification consumes the challenge
// exactly once and then hands the response to a Verifier.
package challenge

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/ethereum/go-ethereum/common/hexutil"
	"go.uber.org/zap"

	"github.com/chainsafe/kilt-attester/internal/metrics"
	apperrors "github.com/chainsafe/kilt-attester/pkg/app/errors"
	"github.com/chainsafe/kilt-attester/pkg/did"
)

// Size is the challenge width in bytes.
const Size = 32

// NonceSize is the NaCl box nonce width in bytes.
const NonceSize = 24

// Reason codes attached to challenge errors.
const (
	ReasonEncryptionKeyUnset = "EncryptionKeyUnset"
	ReasonLightDidNotAllowed = "LightDidNotAllowed"
	ReasonInvalidIdentifier  = "InvalidIdentifier"
	ReasonMalformedResponse  = "MalformedResponse"
	ReasonChallengeNotFound  = "ChallengeNotFound"
	ReasonVerificationFailed = "VerificationFailed"
)

var (
	// ErrEncryptionKeyUnset is returned when the application's own key-agreement key is unknown.
	ErrEncryptionKeyUnset = errors.New("application encryption key is not set")
	// ErrMalformedResponse is returned for responses that cannot be decoded.
	ErrMalformedResponse = errors.New("malformed session response")
	// ErrChallengeNotFound is returned for unknown, expired or already used challenges.
	ErrChallengeNotFound = errors.New("challenge unknown, expired or already used")
	// ErrForeignRequest is returned when the session request was not bound to this application's key.
	ErrForeignRequest = errors.New("session request was not issued for this application")
	// ErrKeyMismatch is returned when the sender key does not belong to the claimed DID.
	ErrKeyMismatch = errors.New("sender key is not a key-agreement key of the claimed DID")
	// ErrChallengeMismatch is returned when the decrypted response does not match the challenge.
	ErrChallengeMismatch = errors.New("decrypted challenge does not match")
)

// SessionRequest is handed to the wallet to start a session.
type SessionRequest struct {
	Name             string `json:"name" validate:"required"`
	EncryptionKeyURI string `json:"encryptionKeyUri" validate:"required"`
	Challenge        string `json:"challenge" validate:"required"`
}

// SessionResponse is produced by the wallet.
type SessionResponse struct {
	EncryptionKeyURI   string `json:"encryptionKeyUri" validate:"required"`
	EncryptedChallenge string `json:"encryptedChallenge" validate:"required"`
	Nonce              string `json:"nonce" validate:"required"`
}

// Response is a decoded SessionResponse.
type Response struct {
	Sender     did.Identifier
	SenderKey  string
	Ciphertext []byte
	Nonce      [NonceSize]byte
}

// AuthenticatedIdentity is the outcome of a successful verification.
type AuthenticatedIdentity struct {
	DID    did.Identifier
	KeyURI string
}

// Verifier checks that a decoded response proves control of the claimed DID.
type Verifier interface {
	Verify(ctx context.Context, challenge []byte, resp *Response, claimed did.Identifier) error
}

// Service issues and verifies session challenges.
//
//go:generate mockery --name Service --output mocks --outpkg mocks --filename mock_service.go --with-expecter
type Service interface {
	IssueChallenge(ctx context.Context) (*SessionRequest, error)
	Verify(ctx context.Context, req *SessionRequest, resp *SessionResponse, claimed string) (*AuthenticatedIdentity, error)
}

// Config holds the application identity the challenges are bound to.
type Config struct {
	AppName string
	// AppKeyURI is the application's resolved key-agreement key. Empty leaves the
	// service unable to issue challenges.
	AppKeyURI string
	TTL       time.Duration
}

type service struct {
	cfg      Config
	registry Registry
	verifier Verifier
	logger   *zap.Logger
}

// NewService creates a challenge service.
func NewService(cfg Config, registry Registry, verifier Verifier, logger *zap.Logger) Service {
	if cfg.TTL <= 0 {
		cfg.TTL = 5 * time.Minute
	}
	return &service{cfg: cfg, registry: registry, verifier: verifier, logger: logger}
}

func (s *service) IssueChallenge(ctx context.Context) (*SessionRequest, error) {
	if s.cfg.AppKeyURI == "" {
		return nil, apperrors.New(apperrors.CategoryRecovering, ReasonEncryptionKeyUnset, ErrEncryptionKeyUnset,
			"application encryption key is not available")
	}

	raw := make([]byte, Size)
	if _, err := rand.Read(raw); err != nil {
		return nil, apperrors.GeneralError(fmt.Errorf("generate challenge: %w", err))
	}
	challenge := hex.EncodeToString(raw)

	if err := s.registry.Put(ctx, challenge, s.cfg.TTL); err != nil {
		return nil, apperrors.DependencyError(fmt.Errorf("store challenge: %w", err), "failed to store challenge")
	}
	metrics.ChallengesTotal.WithLabelValues("issue", metrics.ResultSuccess).Inc()

	return &SessionRequest{
		Name:             s.cfg.AppName,
		EncryptionKeyURI: s.cfg.AppKeyURI,
		Challenge:        challenge,
	}, nil
}

func (s *service) Verify(
	ctx context.Context,
	req *SessionRequest,
	resp *SessionResponse,
	claimed string,
) (*AuthenticatedIdentity, error) {
	id, err := did.ParseFull(claimed)
	if errors.Is(err, did.ErrLightDidNotAllowed) {
		return nil, apperrors.New(apperrors.CategoryForbidden, ReasonLightDidNotAllowed, err, "light DIDs are not allowed")
	}
	if err != nil {
		return nil, apperrors.New(apperrors.CategoryDataError, ReasonInvalidIdentifier, err, "invalid DID")
	}

	challenge, decoded, err := decode(req, resp)
	if err != nil {
		return nil, apperrors.New(apperrors.CategoryDataError, ReasonMalformedResponse, err, err.Error())
	}
	if req.EncryptionKeyURI != s.cfg.AppKeyURI {
		return nil, s.fail(ErrForeignRequest)
	}
	if !decoded.Sender.Equal(id) {
		return nil, s.fail(ErrKeyMismatch)
	}

	ok, err := s.registry.Consume(ctx, req.Challenge)
	if err != nil {
		return nil, apperrors.DependencyError(fmt.Errorf("consume challenge: %w", err), "failed to check challenge")
	}
	if !ok {
		metrics.ChallengesTotal.WithLabelValues("verify", metrics.ResultNotFound).Inc()
		return nil, apperrors.New(apperrors.CategoryUnauthorized, ReasonChallengeNotFound, ErrChallengeNotFound,
			"challenge unknown, expired or already used")
	}

	if err := s.verifier.Verify(ctx, challenge, decoded, id); err != nil {
		var svcErr *apperrors.ServiceError
		if errors.As(err, &svcErr) {
			metrics.ChallengesTotal.WithLabelValues("verify", metrics.ResultFailure).Inc()
			return nil, err
		}
		return nil, s.fail(err)
	}

	metrics.ChallengesTotal.WithLabelValues("verify", metrics.ResultSuccess).Inc()
	return &AuthenticatedIdentity{DID: id, KeyURI: decoded.SenderKey}, nil
}

func (s *service) fail(err error) error {
	metrics.ChallengesTotal.WithLabelValues("verify", metrics.ResultFailure).Inc()
	return apperrors.New(apperrors.CategoryUnauthorized, ReasonVerificationFailed, err, "session verification failed")
}

func decode(req *SessionRequest, resp *SessionResponse) ([]byte, *Response, error) {
	if req == nil || resp == nil {
		return nil, nil, fmt.Errorf("%w: session request and response are required", ErrMalformedResponse)
	}

	challenge, err := decodeHex(req.Challenge)
	if err != nil || len(challenge) != Size {
		return nil, nil, fmt.Errorf("%w: challenge must be %d hex encoded bytes", ErrMalformedResponse, Size)
	}

	sender, err := did.ParseFull(resp.EncryptionKeyURI)
	if err != nil || sender.Fragment() == "" {
		return nil, nil, fmt.Errorf("%w: encryptionKeyUri must be a full DID key reference", ErrMalformedResponse)
	}

	ciphertext, err := decodeHex(resp.EncryptedChallenge)
	if err != nil || len(ciphertext) == 0 {
		return nil, nil, fmt.Errorf("%w: encryptedChallenge must be hex", ErrMalformedResponse)
	}

	nonce, err := decodeHex(resp.Nonce)
	if err != nil || len(nonce) != NonceSize {
		return nil, nil, fmt.Errorf("%w: nonce must be %d hex encoded bytes", ErrMalformedResponse, NonceSize)
	}

	out := &Response{Sender: sender, SenderKey: resp.EncryptionKeyURI, Ciphertext: ciphertext}
	copy(out.Nonce[:], nonce)
	return challenge, out, nil
}

// decodeHex accepts hex with or without the 0x prefix.
func decodeHex(s string) ([]byte, error) {
	if !strings.HasPrefix(s, "0x") && !strings.HasPrefix(s, "0X") {
		s = "0x" + s
	}
	return hexutil.Decode(s)
}
