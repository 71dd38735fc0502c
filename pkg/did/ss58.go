package did

import (
	"bytes"
	"errors"
	"fmt"

	"github.com/mr-tron/base58"
	"golang.org/x/crypto/blake2b"
)

// KiltPrefix is the SS58 network prefix of KILT addresses.
const KiltPrefix uint16 = 38

const checksumLen = 2

var ss58Context = []byte("SS58PRE")

// ErrInvalidAddress is returned for malformed SS58 addresses.
var ErrInvalidAddress = errors.New("invalid ss58 address")

// EncodeAddress encodes a 32 byte public key as an SS58 address with the given prefix.
func EncodeAddress(pub []byte, prefix uint16) string {
	payload := append(prefixBytes(prefix), pub...)
	return base58.Encode(append(payload, ss58Checksum(payload)...))
}

// DecodeAddress decodes an SS58 address into its public key and network prefix.
func DecodeAddress(addr string) ([]byte, uint16, error) {
	raw, err := base58.Decode(addr)
	if err != nil {
		return nil, 0, fmt.Errorf("%w: %v", ErrInvalidAddress, err)
	}
	if len(raw) < 1+32+checksumLen {
		return nil, 0, fmt.Errorf("%w: length %d", ErrInvalidAddress, len(raw))
	}

	prefixLen := 1
	prefix := uint16(raw[0])
	if raw[0]&0x40 != 0 {
		// two byte prefix form, used for identifiers >= 64
		prefixLen = 2
		lower := (raw[0]&0x3f)<<2 | raw[1]>>6
		upper := raw[1] & 0x3f
		prefix = uint16(lower) | uint16(upper)<<8
	}

	payload := raw[:len(raw)-checksumLen]
	if !bytes.Equal(raw[len(raw)-checksumLen:], ss58Checksum(payload)) {
		return nil, 0, fmt.Errorf("%w: checksum mismatch", ErrInvalidAddress)
	}
	pub := payload[prefixLen:]
	if len(pub) != 32 {
		return nil, 0, fmt.Errorf("%w: public key length %d", ErrInvalidAddress, len(pub))
	}
	return pub, prefix, nil
}

// DecodeKiltAddress decodes an address and checks that it carries the KILT prefix.
func DecodeKiltAddress(addr string) ([32]byte, error) {
	var out [32]byte
	pub, prefix, err := DecodeAddress(addr)
	if err != nil {
		return out, err
	}
	if prefix != KiltPrefix {
		return out, fmt.Errorf("%w: prefix %d is not a KILT address", ErrInvalidAddress, prefix)
	}
	copy(out[:], pub)
	return out, nil
}

func prefixBytes(prefix uint16) []byte {
	if prefix < 64 {
		return []byte{byte(prefix)}
	}
	return []byte{
		byte((prefix&0xfc)>>2) | 0x40,
		byte(prefix>>8) | byte((prefix&0x03)<<6),
	}
}

func ss58Checksum(payload []byte) []byte {
	h, _ := blake2b.New512(nil)
	h.Write(ss58Context)
	h.Write(payload)
	return h.Sum(nil)[:checksumLen]
}
