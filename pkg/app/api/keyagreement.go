package api

import (
	"bytes"
	"context"
	"errors"
	"fmt"

	"github.com/chainsafe/kilt-attester/pkg/keys"
	"github.com/chainsafe/kilt-attester/pkg/network"
	"github.com/chainsafe/kilt-attester/pkg/resolver"
)

var errKeyAgreementNotPublished = errors.New("application key agreement key is not published in the DID document")

// resolveAppKeyURI looks up the application DID on its network and returns the URI of the
// key-agreement method holding appKey's public key.
func resolveAppKeyURI(
	ctx context.Context,
	res resolver.Resolver,
	name network.Name,
	appDID string,
	appKey *keys.EncryptionKey,
) (string, error) {
	resolved, err := res.ResolveOn(ctx, appDID, name)
	if err != nil {
		return "", fmt.Errorf("resolve %s on %s: %w", appDID, name, err)
	}
	doc := resolved.Document
	for _, ref := range doc.KeyAgreement {
		vm, ok := doc.KeyAgreementKey(ref)
		if ok && bytes.Equal(vm.PublicKey, appKey.Public[:]) {
			return vm.URI(), nil
		}
	}
	return "", errKeyAgreementNotPublished
}
