// Package service reports the configured KILT networks and the state of their custodial accounts.
package service

import (
	"context"
	"math/big"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/chainsafe/kilt-attester/pkg/keys"
	"github.com/chainsafe/kilt-attester/pkg/ledger"
	"github.com/chainsafe/kilt-attester/pkg/network"
)

// kiltDecimals is the number of femtoKILT digits in one KILT.
const kiltDecimals = 15

// DefaultProbeTimeout bounds the balance lookup on each network.
const DefaultProbeTimeout = 10 * time.Second

// Status describes one configured network.
type Status struct {
	Name             string `json:"name"`
	Endpoint         string `json:"endpoint"`
	AppDID           string `json:"appDid"`
	CustodialAddress string `json:"custodialAddress"`
	// FreeBalance is the custodial free balance in KILT. Empty when the network is unreachable.
	FreeBalance string `json:"freeBalance,omitempty"`
	Reachable   bool   `json:"reachable"`
	Error       string `json:"error,omitempty"`
}

// Service lists the configured networks.
//
//go:generate mockery --name Service --output mocks --outpkg mocks --filename mock_service.go --with-expecter
type Service interface {
	List(ctx context.Context) ([]Status, error)
}

type networkService struct {
	dialer       ledger.Dialer
	networks     *network.Registry
	custody      *keys.Custody
	probeTimeout time.Duration
	logger       *zap.Logger
}

// NewService creates the network status service.
func NewService(dialer ledger.Dialer, networks *network.Registry, custody *keys.Custody, logger *zap.Logger) Service {
	return &networkService{
		dialer:       dialer,
		networks:     networks,
		custody:      custody,
		probeTimeout: DefaultProbeTimeout,
		logger:       logger,
	}
}

// List reports every network in resolution order. An unreachable network is
// reported in its own entry and does not fail the listing.
func (s *networkService) List(ctx context.Context) ([]Status, error) {
	nets := s.networks.Ordered()
	out := make([]Status, 0, len(nets))
	for _, n := range nets {
		st := Status{
			Name:     n.Name.String(),
			Endpoint: n.Endpoint,
			AppDID:   n.AppDID,
		}

		account, err := s.custody.Account(n.Name)
		if err != nil {
			return nil, err
		}
		st.CustodialAddress = account.Address()

		balance, err := s.freeBalance(ctx, n.Name, st.CustodialAddress)
		if err != nil {
			s.logger.Warn("network probe failed", zap.String("network", st.Name), zap.Error(err))
			st.Error = err.Error()
		} else {
			st.Reachable = true
			st.FreeBalance = decimal.NewFromBigInt(balance, -kiltDecimals).String()
		}
		out = append(out, st)
	}
	return out, nil
}

func (s *networkService) freeBalance(ctx context.Context, name network.Name, address string) (*big.Int, error) {
	ctx, cancel := context.WithTimeout(ctx, s.probeTimeout)
	defer cancel()

	conn, err := s.dialer.Dial(ctx, name)
	if err != nil {
		return nil, err
	}
	defer func() { _ = conn.Close() }()

	return conn.FreeBalance(ctx, address)
}
