package ledgertest

import (
	"encoding/hex"

	"golang.org/x/crypto/blake2b"

	"github.com/chainsafe/kilt-attester/pkg/did"
)

// DocumentOptions selects the keys placed in a fixture document.
type DocumentOptions struct {
	// Authentication is the account whose DID is built. Required.
	Authentication []byte
	// Assertion adds an assertion method when set.
	Assertion []byte
	// KeyAgreement adds an x25519 key-agreement method when set.
	KeyAgreement []byte
	TxCounter    uint64
}

// NewDocument builds a DID document in the shape the chain adapter produces.
func NewDocument(opts DocumentOptions) *did.Document {
	id := did.FromAccount(opts.Authentication).String()
	doc := &did.Document{ID: id, LastTxCounter: opts.TxCounter}

	add := func(pub []byte, typ did.KeyType) string {
		vm := did.VerificationMethod{ID: KeyID(pub), Type: typ, Controller: id, PublicKey: pub}
		doc.VerificationMethods = append(doc.VerificationMethods, vm)
		return vm.ID
	}

	doc.Authentication = []string{add(opts.Authentication, did.KeyTypeSr25519)}
	if opts.Assertion != nil {
		doc.AssertionMethod = []string{add(opts.Assertion, did.KeyTypeSr25519)}
	}
	if opts.KeyAgreement != nil {
		doc.KeyAgreement = []string{add(opts.KeyAgreement, did.KeyTypeX25519)}
	}
	return doc
}

// KeyID returns the fragment used for a public key in fixture documents.
func KeyID(pub []byte) string {
	h := blake2b.Sum256(pub)
	return "#0x" + hex.EncodeToString(h[:])
}
