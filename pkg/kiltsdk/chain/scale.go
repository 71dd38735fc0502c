package chain

import (
	"encoding/hex"
	"fmt"
	"math/big"

	"github.com/centrifuge/go-substrate-rpc-client/v4/scale"
	"github.com/centrifuge/go-substrate-rpc-client/v4/types"

	"github.com/chainsafe/kilt-attester/pkg/did"
)

// Variants of the runtime's DidPublicKey, DidVerificationKey and DidEncryptionKey enums.
const (
	publicVerificationKey = 0
	publicEncryptionKey   = 1

	verificationEd25519 = 0
	verificationSr25519 = 1
	verificationEcdsa   = 2

	encryptionX25519 = 0
)

// publicKey is one entry of DidDetails.public_keys.
type publicKey struct {
	Type  did.KeyType
	Key   []byte
	Block uint64
}

func (k *publicKey) Decode(dec scale.Decoder) error {
	kind, err := dec.ReadOneByte()
	if err != nil {
		return err
	}
	variant, err := dec.ReadOneByte()
	if err != nil {
		return err
	}

	size := 32
	switch {
	case kind == publicVerificationKey && variant == verificationEd25519:
		k.Type = did.KeyTypeEd25519
	case kind == publicVerificationKey && variant == verificationSr25519:
		k.Type = did.KeyTypeSr25519
	case kind == publicVerificationKey && variant == verificationEcdsa:
		k.Type = did.KeyTypeEcdsa
		size = 33
	case kind == publicEncryptionKey && variant == encryptionX25519:
		k.Type = did.KeyTypeX25519
	default:
		return fmt.Errorf("unknown DID public key %d/%d", kind, variant)
	}

	k.Key = make([]byte, size)
	if err := dec.Read(k.Key); err != nil {
		return err
	}
	var block types.U64
	if err := dec.Decode(&block); err != nil {
		return err
	}
	k.Block = uint64(block)
	return nil
}

// didDetails is the value of the Did.Did storage map.
type didDetails struct {
	Authentication types.H256
	KeyAgreement   []types.H256
	Delegation     *types.H256
	Attestation    *types.H256
	PublicKeys     map[types.H256]publicKey
	// order preserves the on-chain (sorted) order of PublicKeys.
	order         []types.H256
	LastTxCounter uint64
	DepositOwner  types.AccountID
	DepositAmount *big.Int
}

func (d *didDetails) Decode(dec scale.Decoder) error {
	if err := dec.Decode(&d.Authentication); err != nil {
		return fmt.Errorf("authentication key: %w", err)
	}

	n, err := dec.DecodeUintCompact()
	if err != nil {
		return err
	}
	d.KeyAgreement = make([]types.H256, n.Uint64())
	for i := range d.KeyAgreement {
		if err := dec.Decode(&d.KeyAgreement[i]); err != nil {
			return fmt.Errorf("key agreement key: %w", err)
		}
	}

	if d.Delegation, err = decodeOptionalHash(dec); err != nil {
		return fmt.Errorf("delegation key: %w", err)
	}
	if d.Attestation, err = decodeOptionalHash(dec); err != nil {
		return fmt.Errorf("attestation key: %w", err)
	}

	if n, err = dec.DecodeUintCompact(); err != nil {
		return err
	}
	d.PublicKeys = make(map[types.H256]publicKey, n.Uint64())
	for i := uint64(0); i < n.Uint64(); i++ {
		var id types.H256
		if err := dec.Decode(&id); err != nil {
			return err
		}
		var pk publicKey
		if err := dec.Decode(&pk); err != nil {
			return fmt.Errorf("public key %s: %w", id.Hex(), err)
		}
		d.PublicKeys[id] = pk
		d.order = append(d.order, id)
	}

	var counter types.U64
	if err := dec.Decode(&counter); err != nil {
		return fmt.Errorf("tx counter: %w", err)
	}
	d.LastTxCounter = uint64(counter)

	if err := dec.Decode(&d.DepositOwner); err != nil {
		return fmt.Errorf("deposit owner: %w", err)
	}
	var amount types.U128
	if err := dec.Decode(&amount); err != nil {
		return fmt.Errorf("deposit amount: %w", err)
	}
	d.DepositAmount = amount.Int
	return nil
}

func decodeOptionalHash(dec scale.Decoder) (*types.H256, error) {
	some, err := dec.ReadOneByte()
	if err != nil {
		return nil, err
	}
	switch some {
	case 0:
		return nil, nil
	case 1:
		var h types.H256
		if err := dec.Decode(&h); err != nil {
			return nil, err
		}
		return &h, nil
	default:
		return nil, fmt.Errorf("invalid option tag %d", some)
	}
}

// document converts the on-chain details into a DID document.
func (d *didDetails) document(id did.Identifier) *did.Document {
	doc := &did.Document{ID: id.String(), LastTxCounter: d.LastTxCounter}
	for _, keyID := range d.order {
		pk := d.PublicKeys[keyID]
		doc.VerificationMethods = append(doc.VerificationMethods, did.VerificationMethod{
			ID:         keyFragment(keyID),
			Type:       pk.Type,
			Controller: doc.ID,
			PublicKey:  pk.Key,
		})
	}

	doc.Authentication = []string{keyFragment(d.Authentication)}
	if d.Attestation != nil {
		doc.AssertionMethod = []string{keyFragment(*d.Attestation)}
	}
	if d.Delegation != nil {
		doc.CapabilityDelegation = []string{keyFragment(*d.Delegation)}
	}
	for _, k := range d.KeyAgreement {
		doc.KeyAgreement = append(doc.KeyAgreement, keyFragment(k))
	}
	return doc
}

func keyFragment(id types.H256) string {
	return "#0x" + hex.EncodeToString(id[:])
}

// rawCall is an already encoded runtime call. It is written without a length prefix.
type rawCall []byte

func (c rawCall) Encode(enc scale.Encoder) error { return enc.Write(c) }

// none encodes Option::None.
type none struct{}

func (none) Encode(enc scale.Encoder) error { return enc.PushByte(0) }

// didCallOperation is DidAuthorizedCallOperation. Its encoding is the payload the DID key signs.
type didCallOperation struct {
	DID         types.AccountID
	TxCounter   types.U64
	Call        rawCall
	BlockNumber types.U64
	Submitter   types.AccountID
}

// didSignature is the DidSignature enum.
type didSignature struct {
	Type      did.KeyType
	Signature []byte
}

func (s didSignature) Encode(enc scale.Encoder) error {
	var variant byte
	switch s.Type {
	case did.KeyTypeEd25519:
		variant = verificationEd25519
	case did.KeyTypeSr25519:
		variant = verificationSr25519
	case did.KeyTypeEcdsa:
		variant = verificationEcdsa
	default:
		return fmt.Errorf("key type %s cannot sign DID calls", s.Type)
	}
	if err := enc.PushByte(variant); err != nil {
		return err
	}
	return enc.Write(s.Signature)
}
