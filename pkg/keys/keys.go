// Package keys derives the application's custodial accounts and DID keys from secret phrases.
//
// All keys are sr25519 and derived with substrate URI syntax ("<phrase>//hard/soft").
// The key-agreement key is an x25519 key derived from the mini-secret of a dedicated
// sr25519 derivation, hashed with blake2b-256.
package keys

import (
	"errors"
	"fmt"

	"github.com/vedhavyas/go-subkey/v2"
	"github.com/vedhavyas/go-subkey/v2/sr25519"
	"golang.org/x/crypto/blake2b"
	"golang.org/x/crypto/curve25519"

	"github.com/chainsafe/kilt-attester/pkg/did"
)

const (
	// DefaultDIDKeyPath derives the DID authentication key.
	DefaultDIDKeyPath = "//did//0"
	// AssertionKeyPath derives the DID assertion key.
	AssertionKeyPath = "//did//assertion//0"
	// KeyAgreementPath derives the seed of the x25519 key-agreement key.
	KeyAgreementPath = "//did//keyAgreement//0"
)

// ErrEmptySecret is returned when no secret phrase is configured.
var ErrEmptySecret = errors.New("empty secret phrase")

// Signer signs raw payloads with a DID verification key.
type Signer interface {
	KeyType() did.KeyType
	PublicKey() []byte
	Sign(msg []byte) ([]byte, error)
}

// KeyPair is an sr25519 key derived from a secret URI.
type KeyPair struct {
	uri string
	kp  subkey.KeyPair
}

// Derive derives an sr25519 key pair from a secret URI (phrase plus optional derivation path).
func Derive(uri string) (*KeyPair, error) {
	if uri == "" {
		return nil, ErrEmptySecret
	}
	kp, err := subkey.DeriveKeyPair(sr25519.Scheme{}, uri)
	if err != nil {
		return nil, fmt.Errorf("derive sr25519 key: %w", err)
	}
	return &KeyPair{uri: uri, kp: kp}, nil
}

// URI returns the secret URI the key was derived from.
func (k *KeyPair) URI() string { return k.uri }

// PublicKey returns the 32 byte public key.
func (k *KeyPair) PublicKey() []byte { return k.kp.Public() }

// Address returns the KILT SS58 address of the key.
func (k *KeyPair) Address() string { return did.EncodeAddress(k.kp.Public(), did.KiltPrefix) }

// KeyType reports the verification method type of the key.
func (k *KeyPair) KeyType() did.KeyType { return did.KeyTypeSr25519 }

// Sign signs msg as is. Substrate verifies sr25519 signatures over the raw payload.
func (k *KeyPair) Sign(msg []byte) ([]byte, error) { return k.kp.Sign(msg) }

// Verify checks an sr25519 signature produced by Sign.
func (k *KeyPair) Verify(msg, sig []byte) bool { return k.kp.Verify(msg, sig) }

// EncryptionKey is an x25519 key pair used for NaCl box encryption.
type EncryptionKey struct {
	Public [32]byte
	Secret [32]byte
}

// DeriveEncryptionKey derives the key-agreement key from a secret phrase.
func DeriveEncryptionKey(phrase string) (*EncryptionKey, error) {
	kp, err := Derive(phrase + KeyAgreementPath)
	if err != nil {
		return nil, err
	}
	return EncryptionKeyFromSeed(kp.kp.Seed())
}

// EncryptionKeyFromSeed builds an x25519 key pair whose secret is blake2b-256(seed).
func EncryptionKeyFromSeed(seed []byte) (*EncryptionKey, error) {
	if len(seed) == 0 {
		return nil, ErrEmptySecret
	}
	ek := &EncryptionKey{Secret: blake2b.Sum256(seed)}
	pub, err := curve25519.X25519(ek.Secret[:], curve25519.Basepoint)
	if err != nil {
		return nil, fmt.Errorf("derive x25519 public key: %w", err)
	}
	copy(ek.Public[:], pub)
	return ek, nil
}
