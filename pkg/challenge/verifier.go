package challenge

import (
	"context"
	"crypto/subtle"
	"errors"
	"fmt"

	"golang.org/x/crypto/nacl/box"

	"github.com/chainsafe/kilt-attester/pkg/did"
	"github.com/chainsafe/kilt-attester/pkg/keys"
	"github.com/chainsafe/kilt-attester/pkg/resolver"
)

// BoxVerifier decrypts the response with the application's key-agreement secret and
// checks that the sender key is a key-agreement key of the claimed DID on chain.
type BoxVerifier struct {
	resolver resolver.Resolver
	appKey   *keys.EncryptionKey
}

// NewBoxVerifier creates a verifier for the given application key.
func NewBoxVerifier(r resolver.Resolver, appKey *keys.EncryptionKey) *BoxVerifier {
	return &BoxVerifier{resolver: r, appKey: appKey}
}

func (v *BoxVerifier) Verify(ctx context.Context, challenge []byte, resp *Response, claimed did.Identifier) error {
	if v.appKey == nil {
		return ErrEncryptionKeyUnset
	}

	resolved, err := v.resolver.Resolve(ctx, claimed.String())
	if err != nil {
		return err
	}

	vm, ok := resolved.Document.KeyAgreementKey(resp.SenderKey)
	if !ok || vm.Type != did.KeyTypeX25519 || len(vm.PublicKey) != 32 {
		return ErrKeyMismatch
	}

	var senderPub [32]byte
	copy(senderPub[:], vm.PublicKey)

	plain, ok := box.Open(nil, resp.Ciphertext, &resp.Nonce, &senderPub, &v.appKey.Secret)
	if !ok {
		return fmt.Errorf("%w: cannot decrypt", ErrChallengeMismatch)
	}
	if subtle.ConstantTimeCompare(plain, challenge) != 1 {
		return ErrChallengeMismatch
	}
	return nil
}

// InsecureClaimTrustVerifier accepts every well-formed response. Test fixtures only.
type InsecureClaimTrustVerifier struct{}

func (InsecureClaimTrustVerifier) Verify(_ context.Context, _ []byte, resp *Response, claimed did.Identifier) error {
	if resp == nil || !resp.Sender.Equal(claimed) {
		return errors.New("response does not name the claimed DID")
	}
	return nil
}
