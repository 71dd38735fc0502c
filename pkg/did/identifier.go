// Package did parses KILT decentralized identifiers and models their documents.
package did

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
)

const (
	// Prefix is the scheme and method of every KILT DID.
	Prefix = "did:kilt:"

	lightMarker = "light:"
)

var (
	// ErrInvalidIdentifier is returned for strings that are not KILT DIDs.
	ErrInvalidIdentifier = errors.New("invalid DID")
	// ErrLightDidNotAllowed is returned when a light DID is used where on-chain anchoring is required.
	ErrLightDidNotAllowed = errors.New("light DIDs are not allowed")
)

var (
	fullPattern  = regexp.MustCompile(`^did:kilt:(4[1-9A-HJ-NP-Za-km-z]{47})(?:#([^#\s]+))?$`)
	lightPattern = regexp.MustCompile(`^did:kilt:light:([0-9]{2})([1-9A-HJ-NP-Za-km-z]{47,48})(?::[A-Za-z0-9+/=_-]+)?(?:#([^#\s]+))?$`)
)

// Kind distinguishes anchored DIDs from light DIDs.
type Kind int

const (
	// Full DIDs are registered on chain.
	Full Kind = iota + 1
	// Light DIDs are derived from a key and have no on-chain document.
	Light
)

// Identifier is a parsed KILT DID, optionally carrying a key fragment.
type Identifier struct {
	did      string
	address  string
	fragment string
	kind     Kind
}

// IsLight reports whether s carries the light DID marker. It does not validate the rest.
func IsLight(s string) bool {
	return strings.HasPrefix(s, Prefix+lightMarker)
}

// Parse parses a full or light KILT DID. A trailing "#fragment" is kept separately.
func Parse(s string) (Identifier, error) {
	if m := fullPattern.FindStringSubmatch(s); m != nil {
		if _, err := DecodeKiltAddress(m[1]); err != nil {
			return Identifier{}, fmt.Errorf("%w: %v", ErrInvalidIdentifier, err)
		}
		return Identifier{did: Prefix + m[1], address: m[1], fragment: m[2], kind: Full}, nil
	}
	if m := lightPattern.FindStringSubmatch(s); m != nil {
		base := s
		if i := strings.IndexByte(s, '#'); i >= 0 {
			base = s[:i]
		}
		return Identifier{did: base, address: m[2], fragment: m[3], kind: Light}, nil
	}
	return Identifier{}, fmt.Errorf("%w: %q", ErrInvalidIdentifier, s)
}

// ParseFull parses s and rejects light DIDs with ErrLightDidNotAllowed.
func ParseFull(s string) (Identifier, error) {
	if IsLight(s) {
		return Identifier{}, ErrLightDidNotAllowed
	}
	id, err := Parse(s)
	if err != nil {
		return Identifier{}, err
	}
	return id, nil
}

// FromAccount builds the full DID controlled by a 32 byte account id.
func FromAccount(pub []byte) Identifier {
	addr := EncodeAddress(pub, KiltPrefix)
	return Identifier{did: Prefix + addr, address: addr, kind: Full}
}

// String returns the DID without its fragment.
func (id Identifier) String() string { return id.did }

// Kind returns whether the DID is full or light.
func (id Identifier) Kind() Kind { return id.kind }

// IsLight reports whether the DID is a light DID.
func (id Identifier) IsLight() bool { return id.kind == Light }

// Address returns the SS58 address embedded in the DID.
func (id Identifier) Address() string { return id.address }

// Fragment returns the key fragment without the leading '#', or "".
func (id Identifier) Fragment() string { return id.fragment }

// IsZero reports whether id is the zero value.
func (id Identifier) IsZero() bool { return id.did == "" }

// AccountID returns the 32 byte account id the full DID is bound to.
func (id Identifier) AccountID() ([32]byte, error) {
	if id.kind != Full {
		return [32]byte{}, ErrLightDidNotAllowed
	}
	return DecodeKiltAddress(id.address)
}

// KeyURI returns the key reference "<did>#<fragment>".
func (id Identifier) KeyURI(fragment string) string {
	return id.did + "#" + strings.TrimPrefix(fragment, "#")
}

// Equal compares two identifiers ignoring fragments.
func (id Identifier) Equal(other Identifier) bool { return id.did == other.did }
