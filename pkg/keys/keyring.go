package keys

import (
	"bytes"
	"fmt"

	"github.com/chainsafe/kilt-attester/pkg/did"
	"github.com/chainsafe/kilt-attester/pkg/network"
)

// Keyring holds the DID signing keys the application controls.
type Keyring struct {
	signers []Signer
}

// NewKeyring builds a keyring from the given signers.
func NewKeyring(signers ...Signer) *Keyring {
	return &Keyring{signers: signers}
}

// SignerFor returns the signer whose public key matches the verification method.
func (k *Keyring) SignerFor(vm did.VerificationMethod) (Signer, bool) {
	for _, s := range k.signers {
		if s.KeyType() == vm.Type && bytes.Equal(s.PublicKey(), vm.PublicKey) {
			return s, true
		}
	}
	return nil, false
}

// Custody holds the custodial account of every configured network.
type Custody struct {
	accounts map[network.Name]*KeyPair
}

// NewCustody derives one custodial account per network from its mnemonic.
func NewCustody(reg *network.Registry) (*Custody, error) {
	c := &Custody{accounts: make(map[network.Name]*KeyPair)}
	for _, n := range reg.Ordered() {
		kp, err := Derive(n.Mnemonic)
		if err != nil {
			return nil, fmt.Errorf("custodial account for %s: %w", n.Name, err)
		}
		c.accounts[n.Name] = kp
	}
	return c, nil
}

// Account returns the custodial account of a network.
func (c *Custody) Account(name network.Name) (*KeyPair, error) {
	kp, ok := c.accounts[name]
	if !ok {
		return nil, fmt.Errorf("%w: no custodial account for %q", network.ErrUnknownNetwork, name)
	}
	return kp, nil
}

// DIDKeyring derives the application's DID authentication and assertion keys for every network.
func DIDKeyring(reg *network.Registry) (*Keyring, error) {
	var signers []Signer
	for _, n := range reg.Ordered() {
		authPath := n.DIDKeyURI
		if authPath == "" {
			authPath = DefaultDIDKeyPath
		}
		for _, path := range []string{authPath, AssertionKeyPath} {
			kp, err := Derive(n.Mnemonic + path)
			if err != nil {
				return nil, fmt.Errorf("DID key for %s: %w", n.Name, err)
			}
			signers = append(signers, kp)
		}
	}
	return NewKeyring(signers...), nil
}
