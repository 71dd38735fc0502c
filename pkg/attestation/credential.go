// Package attestation composes credentials and anchors their root hash on a KILT network.
package attestation

import (
	"bytes"
	"errors"
	"fmt"
	"sort"

	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/google/uuid"
	"golang.org/x/crypto/blake2b"

	"github.com/chainsafe/kilt-attester/pkg/ctype"
)

var (
	// ErrInvalidClaim is returned for claims that cannot be hashed.
	ErrInvalidClaim = errors.New("invalid claim")
	// ErrCredentialTampered is returned when a credential's hashes do not match its claim.
	ErrCredentialTampered = errors.New("credential hashes do not match claim")
)

// Claim is a set of statements about Owner, shaped by a CType.
type Claim struct {
	CTypeHash string         `json:"cTypeHash" validate:"required"`
	Contents  map[string]any `json:"contents" validate:"required"`
	Owner     string         `json:"owner" validate:"required"`
}

// CTypeID returns the id of the claim's CType.
func (c Claim) CTypeID() (string, error) {
	hash, err := decodeHash(c.CTypeHash)
	if err != nil {
		return "", fmt.Errorf("%w: cTypeHash: %v", ErrInvalidClaim, err)
	}
	return ctype.IDFromHash(hash), nil
}

// Credential is a claim with its salted statement hashes. RootHash is what gets anchored.
type Credential struct {
	Claim         Claim             `json:"claim"`
	ClaimNonceMap map[string]string `json:"claimNonceMap"`
	ClaimHashes   []string          `json:"claimHashes"`
	Legitimations []Credential      `json:"legitimations"`
	DelegationID  *string           `json:"delegationId"`
	RootHash      string            `json:"rootHash"`
}

// Compose salts every statement of claim with a fresh nonce and computes the root hash.
func Compose(claim Claim) (*Credential, error) {
	return compose(claim, func(string) string { return uuid.NewString() })
}

func compose(claim Claim, nonce func(digest string) string) (*Credential, error) {
	digests, err := statementDigests(claim)
	if err != nil {
		return nil, err
	}

	nonces := make(map[string]string, len(digests))
	hashes := make([]string, 0, len(digests))
	for _, d := range digests {
		n := nonce(d)
		nonces[d] = n
		hashes = append(hashes, saltedHash(n, d))
	}
	sort.Strings(hashes)

	return &Credential{
		Claim:         claim,
		ClaimNonceMap: nonces,
		ClaimHashes:   hashes,
		Legitimations: []Credential{},
		RootHash:      rootHash(hashes),
	}, nil
}

// Verify recomputes the statement hashes and the root hash.
func (c *Credential) Verify() error {
	digests, err := statementDigests(c.Claim)
	if err != nil {
		return err
	}
	if len(digests) != len(c.ClaimHashes) {
		return fmt.Errorf("%w: %d statements, %d hashes", ErrCredentialTampered, len(digests), len(c.ClaimHashes))
	}

	hashes := make([]string, 0, len(digests))
	for _, d := range digests {
		n, ok := c.ClaimNonceMap[d]
		if !ok {
			return fmt.Errorf("%w: missing nonce", ErrCredentialTampered)
		}
		hashes = append(hashes, saltedHash(n, d))
	}
	sort.Strings(hashes)

	for i := range hashes {
		if hashes[i] != c.ClaimHashes[i] {
			return fmt.Errorf("%w: statement hash", ErrCredentialTampered)
		}
	}
	if rootHash(hashes) != c.RootHash {
		return fmt.Errorf("%w: root hash", ErrCredentialTampered)
	}
	return nil
}

// ClaimHash decodes the root hash.
func (c *Credential) ClaimHash() ([32]byte, error) {
	return decodeHash(c.RootHash)
}

// statementDigests hashes the owner, the type and one statement per content entry,
// keyed by the CType vocabulary. Keys are visited in sorted order.
func statementDigests(claim Claim) ([]string, error) {
	hash, err := decodeHash(claim.CTypeHash)
	if err != nil {
		return nil, fmt.Errorf("%w: cTypeHash: %v", ErrInvalidClaim, err)
	}
	if claim.Owner == "" {
		return nil, fmt.Errorf("%w: owner is required", ErrInvalidClaim)
	}
	id := ctype.IDFromHash(hash)

	statements := []map[string]any{
		{"@id": claim.Owner},
		{"@type": id},
	}
	keys := make([]string, 0, len(claim.Contents))
	for k := range claim.Contents {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		statements = append(statements, map[string]any{id + "#" + k: claim.Contents[k]})
	}

	digests := make([]string, 0, len(statements))
	for _, st := range statements {
		b, err := ctype.Canonical(st)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidClaim, err)
		}
		sum := blake2b.Sum256(b)
		digests = append(digests, hexutil.Encode(sum[:]))
	}
	return digests, nil
}

func saltedHash(nonce, digest string) string {
	sum := blake2b.Sum256([]byte(nonce + digest))
	return hexutil.Encode(sum[:])
}

func rootHash(hashes []string) string {
	var buf bytes.Buffer
	for _, h := range hashes {
		buf.Write(hexutil.MustDecode(h))
	}
	sum := blake2b.Sum256(buf.Bytes())
	return hexutil.Encode(sum[:])
}

func decodeHash(s string) ([32]byte, error) {
	var out [32]byte
	b, err := hexutil.Decode(s)
	if err != nil {
		return out, err
	}
	if len(b) != len(out) {
		return out, fmt.Errorf("want %d bytes, got %d", len(out), len(b))
	}
	copy(out[:], b)
	return out, nil
}
