// Package network describes the closed set of KILT networks the service talks to.
package network

import (
	"errors"
	"fmt"

	"github.com/chainsafe/kilt-attester/pkg/config"
)

// Name identifies a KILT network.
type Name string

const (
	// Peregrine is the KILT test network.
	Peregrine Name = "peregrine"
	// Spiritnet is the KILT production network.
	Spiritnet Name = "spiritnet"
)

// ResolutionOrder is the fixed order in which networks are probed. The test
// network comes first so that repeated probes are deterministic and cheap.
var ResolutionOrder = []Name{Peregrine, Spiritnet}

// ErrUnknownNetwork is returned for names outside the supported set or not configured.
var ErrUnknownNetwork = errors.New("unknown network")

// Parse validates a network name.
func Parse(s string) (Name, error) {
	switch Name(s) {
	case Peregrine, Spiritnet:
		return Name(s), nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownNetwork, s)
	}
}

func (n Name) String() string { return string(n) }

// Network is the runtime view of one configured network. It is read-only after startup.
type Network struct {
	Name     Name
	Endpoint string
	// Mnemonic is the custodial secret phrase paying for system transactions.
	Mnemonic string
	// AppDID is the application's own full DID on this network.
	AppDID string
	// DIDKeyURI is the derivation path of the application's DID keys.
	DIDKeyURI string
}

// Registry holds the configured networks in resolution order.
type Registry struct {
	byName  map[Name]Network
	ordered []Network
}

// NewRegistry builds a registry. Networks are kept in ResolutionOrder regardless of argument order.
func NewRegistry(nets ...Network) (*Registry, error) {
	byName := make(map[Name]Network, len(nets))
	for _, n := range nets {
		if _, err := Parse(string(n.Name)); err != nil {
			return nil, err
		}
		if _, dup := byName[n.Name]; dup {
			return nil, fmt.Errorf("network %s configured twice", n.Name)
		}
		byName[n.Name] = n
	}

	ordered := make([]Network, 0, len(byName))
	for _, name := range ResolutionOrder {
		if n, ok := byName[name]; ok {
			ordered = append(ordered, n)
		}
	}
	return &Registry{byName: byName, ordered: ordered}, nil
}

// FromConfig builds a registry from the networks section of the configuration.
func FromConfig(cfgs []config.NetworkConfig) (*Registry, error) {
	nets := make([]Network, 0, len(cfgs))
	for _, c := range cfgs {
		nets = append(nets, Network{
			Name:      Name(c.Name),
			Endpoint:  c.Endpoint,
			Mnemonic:  c.Mnemonic,
			AppDID:    c.AppDID,
			DIDKeyURI: c.DIDKeyURI,
		})
	}
	return NewRegistry(nets...)
}

// Get returns the named network or ErrUnknownNetwork.
func (r *Registry) Get(name Name) (Network, error) {
	n, ok := r.byName[name]
	if !ok {
		return Network{}, fmt.Errorf("%w: %q is not configured", ErrUnknownNetwork, name)
	}
	return n, nil
}

// Ordered returns the configured networks in resolution order.
func (r *Registry) Ordered() []Network {
	out := make([]Network, len(r.ordered))
	copy(out, r.ordered)
	return out
}
