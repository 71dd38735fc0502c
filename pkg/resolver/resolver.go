// Package resolver finds which configured KILT network hosts a DID.
package resolver

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/chainsafe/kilt-attester/internal/metrics"
	apperrors "github.com/chainsafe/kilt-attester/pkg/app/errors"
	"github.com/chainsafe/kilt-attester/pkg/did"
	"github.com/chainsafe/kilt-attester/pkg/ledger"
	"github.com/chainsafe/kilt-attester/pkg/network"
)

// Reason codes attached to resolver errors.
const (
	ReasonIdentifierUnresolvable = "IdentifierUnresolvable"
	ReasonLightDidNotAllowed     = "LightDidNotAllowed"
	ReasonInvalidIdentifier      = "InvalidIdentifier"
)

// ErrIdentifierUnresolvable is returned when no configured network hosts the DID.
var ErrIdentifierUnresolvable = errors.New("identifier unresolvable")

// Attempt is the outcome of resolving on one network.
type Attempt struct {
	Network network.Name
	Err     error
}

// Resolved is a successful resolution.
type Resolved struct {
	Document *did.Document
	Network  network.Name
	Attempts []Attempt
}

// Resolver resolves DIDs against networks in their fixed resolution order.
//
//go:generate mockery --name Resolver --output mocks --outpkg mocks --filename mock_resolver.go --with-expecter
type Resolver interface {
	// Resolve probes every configured network in order and returns the first hit.
	Resolve(ctx context.Context, id string) (*Resolved, error)
	// ResolveOn resolves the DID on a single network.
	ResolveOn(ctx context.Context, id string, name network.Name) (*Resolved, error)
}

type resolver struct {
	dialer   ledger.Dialer
	networks *network.Registry
	logger   *zap.Logger
}

// New creates a Resolver. Results are not cached; every call repeats the probe.
func New(dialer ledger.Dialer, networks *network.Registry, logger *zap.Logger) Resolver {
	return &resolver{dialer: dialer, networks: networks, logger: logger}
}

func (r *resolver) Resolve(ctx context.Context, raw string) (*Resolved, error) {
	id, err := parse(raw)
	if err != nil {
		return nil, err
	}

	var attempts []Attempt
	for _, n := range r.networks.Ordered() {
		doc, err := r.attempt(ctx, id, n.Name)
		attempts = append(attempts, Attempt{Network: n.Name, Err: err})
		if err == nil {
			return &Resolved{Document: doc, Network: n.Name, Attempts: attempts}, nil
		}
		if ctx.Err() != nil {
			break
		}
	}
	return nil, unresolvable(id, attempts)
}

func (r *resolver) ResolveOn(ctx context.Context, raw string, name network.Name) (*Resolved, error) {
	id, err := parse(raw)
	if err != nil {
		return nil, err
	}
	if _, err := r.networks.Get(name); err != nil {
		return nil, apperrors.BadRequestError(err, fmt.Sprintf("network %q is not configured", name))
	}

	doc, err := r.attempt(ctx, id, name)
	attempts := []Attempt{{Network: name, Err: err}}
	if err != nil {
		return nil, unresolvable(id, attempts)
	}
	return &Resolved{Document: doc, Network: name, Attempts: attempts}, nil
}

// attempt opens a connection, resolves and always closes the connection.
func (r *resolver) attempt(ctx context.Context, id did.Identifier, name network.Name) (*did.Document, error) {
	conn, err := r.dialer.Dial(ctx, name)
	if err != nil {
		metrics.ResolverAttempts.WithLabelValues(string(name), metrics.ResultUnreachable).Inc()
		r.logger.Warn("DID resolution: network unreachable",
			zap.String("network", string(name)),
			zap.String("did", id.String()),
			zap.Error(err),
		)
		return nil, err
	}
	defer func() {
		if cerr := conn.Close(); cerr != nil {
			r.logger.Warn("failed to close ledger connection", zap.String("network", string(name)), zap.Error(cerr))
		}
	}()

	doc, err := conn.ResolveDID(ctx, id)
	switch {
	case err == nil:
		metrics.ResolverAttempts.WithLabelValues(string(name), metrics.ResultSuccess).Inc()
		return doc, nil
	case errors.Is(err, ledger.ErrNotFound):
		metrics.ResolverAttempts.WithLabelValues(string(name), metrics.ResultNotFound).Inc()
	default:
		metrics.ResolverAttempts.WithLabelValues(string(name), metrics.ResultFailure).Inc()
		r.logger.Warn("DID resolution failed",
			zap.String("network", string(name)),
			zap.String("did", id.String()),
			zap.Error(err),
		)
	}
	return nil, err
}

func parse(raw string) (did.Identifier, error) {
	id, err := did.ParseFull(raw)
	switch {
	case errors.Is(err, did.ErrLightDidNotAllowed):
		return did.Identifier{}, apperrors.New(apperrors.CategoryForbidden, ReasonLightDidNotAllowed, err,
			"light DIDs are not allowed")
	case err != nil:
		return did.Identifier{}, apperrors.New(apperrors.CategoryDataError, ReasonInvalidIdentifier, err,
			"invalid DID")
	}
	return id, nil
}

func unresolvable(id did.Identifier, attempts []Attempt) error {
	parts := make([]string, 0, len(attempts))
	for _, a := range attempts {
		parts = append(parts, fmt.Sprintf("%s: %v", a.Network, a.Err))
	}
	err := fmt.Errorf("%w: %s [%s]", ErrIdentifierUnresolvable, id, strings.Join(parts, "; "))
	return apperrors.New(apperrors.CategoryResourceNotFound, ReasonIdentifierUnresolvable, err,
		"DID not found on any configured network")
}
