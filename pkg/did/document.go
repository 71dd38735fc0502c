package did

import (
	"bytes"
	"errors"
	"strings"
)

// ErrNoAssertionCapability is returned when a document has no assertion method.
var ErrNoAssertionCapability = errors.New("DID has no assertion key")

// KeyType is the algorithm of a verification method.
type KeyType string

const (
	KeyTypeEd25519 KeyType = "Ed25519VerificationKey2018"
	KeyTypeSr25519 KeyType = "Sr25519VerificationKey2020"
	KeyTypeEcdsa   KeyType = "EcdsaSecp256k1VerificationKey2019"
	KeyTypeX25519  KeyType = "X25519KeyAgreementKey2019"
)

// VerificationMethod is one key listed in a DID document.
type VerificationMethod struct {
	// ID is the key fragment including the leading '#', e.g. "#0x1a2b...".
	ID         string  `json:"id"`
	Type       KeyType `json:"type"`
	Controller string  `json:"controller"`
	PublicKey  []byte  `json:"publicKey"`
}

// URI returns the absolute key reference.
func (vm VerificationMethod) URI() string { return vm.Controller + vm.ID }

// Document is the resolved state of a full DID.
type Document struct {
	ID                   string               `json:"id"`
	VerificationMethods  []VerificationMethod `json:"verificationMethod"`
	Authentication       []string             `json:"authentication"`
	AssertionMethod      []string             `json:"assertionMethod,omitempty"`
	CapabilityDelegation []string             `json:"capabilityDelegation,omitempty"`
	KeyAgreement         []string             `json:"keyAgreement,omitempty"`
	// LastTxCounter is the replay counter of DID-authorized calls.
	LastTxCounter uint64 `json:"lastTxCounter"`
}

// Method looks up a verification method by fragment or absolute key URI.
func (d *Document) Method(ref string) (VerificationMethod, bool) {
	frag := fragmentOf(ref)
	for _, vm := range d.VerificationMethods {
		if vm.ID == frag {
			return vm, true
		}
	}
	return VerificationMethod{}, false
}

// AssertionKey returns the key used to authorize attestations and CType registrations.
func (d *Document) AssertionKey() (VerificationMethod, error) {
	if len(d.AssertionMethod) == 0 {
		return VerificationMethod{}, ErrNoAssertionCapability
	}
	vm, ok := d.Method(d.AssertionMethod[0])
	if !ok {
		return VerificationMethod{}, ErrNoAssertionCapability
	}
	return vm, nil
}

// KeyAgreementKey returns the key-agreement method referenced by ref, if the document lists it.
func (d *Document) KeyAgreementKey(ref string) (VerificationMethod, bool) {
	frag := fragmentOf(ref)
	for _, id := range d.KeyAgreement {
		if id == frag {
			return d.Method(id)
		}
	}
	return VerificationMethod{}, false
}

// FirstKeyAgreement returns the first key-agreement method, used as the application's encryption key.
func (d *Document) FirstKeyAgreement() (VerificationMethod, bool) {
	if len(d.KeyAgreement) == 0 {
		return VerificationMethod{}, false
	}
	return d.Method(d.KeyAgreement[0])
}

// MethodByPublicKey finds the verification method holding the given public key.
func (d *Document) MethodByPublicKey(pub []byte) (VerificationMethod, bool) {
	for _, vm := range d.VerificationMethods {
		if bytes.Equal(vm.PublicKey, pub) {
			return vm, true
		}
	}
	return VerificationMethod{}, false
}

func fragmentOf(ref string) string {
	if i := strings.IndexByte(ref, '#'); i >= 0 {
		return ref[i:]
	}
	return "#" + ref
}
