//go:build ignore

// login-demo.go - Log in to a running API server with a DID derived from a mnemonic
//
// The holder's DID must already exist on chain with the authentication key at
// //did//0 and an x25519 key agreement key at //did//keyAgreement//0.
//
// Usage:
//   go run scripts/login-demo.go -config config.api-server.yaml \
//     -url http://localhost:8081 \
//     -mnemonic "bottom drive obey lake ..."

package main

import (
	"bytes"
	"context"
	"crypto/rand"
	"encoding/json"
	"flag"
	"fmt"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/ethereum/go-ethereum/common/hexutil"
	"go.uber.org/zap"
	"golang.org/x/crypto/nacl/box"

	"github.com/chainsafe/kilt-attester/pkg/challenge"
	"github.com/chainsafe/kilt-attester/pkg/config"
	"github.com/chainsafe/kilt-attester/pkg/did"
	"github.com/chainsafe/kilt-attester/pkg/keys"
	"github.com/chainsafe/kilt-attester/pkg/kiltsdk/chain"
	"github.com/chainsafe/kilt-attester/pkg/network"
	"github.com/chainsafe/kilt-attester/pkg/resolver"
	"github.com/chainsafe/kilt-attester/pkg/user"
)

var (
	configPath = flag.String("config", "config.api-server.yaml", "Path to config file")
	baseURL    = flag.String("url", "http://localhost:8081", "API server base URL")
	mnemonic   = flag.String("mnemonic", os.Getenv("HOLDER_MNEMONIC"), "Holder secret phrase")
)

func main() {
	flag.Parse()
	if *mnemonic == "" {
		fmt.Println("Error: -mnemonic or HOLDER_MNEMONIC is required")
		os.Exit(1)
	}

	cfg, err := config.LoadAPIServer(*configPath)
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}
	networks, err := network.FromConfig(cfg.Networks)
	if err != nil {
		fmt.Printf("Invalid networks: %v\n", err)
		os.Exit(1)
	}
	res := resolver.New(chain.NewDialer(networks, zap.NewNop()), networks, zap.NewNop())

	authKey, err := keys.Derive(*mnemonic + keys.DefaultDIDKeyPath)
	exitOn(err, "derive authentication key")
	encKey, err := keys.DeriveEncryptionKey(*mnemonic)
	exitOn(err, "derive key agreement key")
	holder := did.FromAccount(authKey.PublicKey())

	fmt.Println("======================================================================")
	fmt.Println("LOGIN DEMO - DID challenge/response against the API server")
	fmt.Println("======================================================================")
	fmt.Printf("Server: %s\n", *baseURL)
	fmt.Printf("Holder: %s\n\n", holder)

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	fmt.Println(">>> Resolving holder DID...")
	holderDoc, err := res.Resolve(ctx, holder.String())
	exitOn(err, "resolve holder")
	var senderURI string
	for _, ref := range holderDoc.Document.KeyAgreement {
		if vm, ok := holderDoc.Document.KeyAgreementKey(ref); ok && bytes.Equal(vm.PublicKey, encKey.Public[:]) {
			senderURI = vm.URI()
		}
	}
	if senderURI == "" {
		fmt.Println("Error: the holder DID does not publish the derived key agreement key")
		os.Exit(1)
	}
	fmt.Printf("    Found on %s, key %s\n\n", holderDoc.Network, senderURI)

	fmt.Println(">>> Requesting challenge...")
	var req challenge.SessionRequest
	exitOn(post(*baseURL+"/api/session/challenge", nil, &req), "request challenge")
	fmt.Printf("    Challenge: %s\n", req.Challenge)
	fmt.Printf("    App key:   %s\n\n", req.EncryptionKeyURI)

	fmt.Println(">>> Encrypting challenge for the application key...")
	appDID, _, _ := strings.Cut(req.EncryptionKeyURI, "#")
	appDoc, err := res.Resolve(ctx, appDID)
	exitOn(err, "resolve application DID")
	appVM, ok := appDoc.Document.KeyAgreementKey(req.EncryptionKeyURI)
	if !ok || len(appVM.PublicKey) != 32 {
		fmt.Println("Error: application key agreement key not found")
		os.Exit(1)
	}
	var appPub [32]byte
	copy(appPub[:], appVM.PublicKey)

	raw, err := hexutil.Decode("0x" + req.Challenge)
	exitOn(err, "decode challenge")
	var nonce [challenge.NonceSize]byte
	_, err = rand.Read(nonce[:])
	exitOn(err, "generate nonce")
	sealed := box.Seal(nil, raw, &nonce, &appPub, &encKey.Secret)

	fmt.Println(">>> Verifying...")
	var login user.LoginResponse
	exitOn(post(*baseURL+"/api/session/verify", &user.LoginRequest{
		Request: req,
		Response: challenge.SessionResponse{
			EncryptionKeyURI:   senderURI,
			EncryptedChallenge: hexutil.Encode(sealed),
			Nonce:              hexutil.Encode(nonce[:]),
		},
		DID: holder.String(),
	}, &login), "verify")

	fmt.Println()
	fmt.Println("======================================================================")
	fmt.Println("LOGGED IN")
	fmt.Println("======================================================================")
	fmt.Printf("User:    %s (%s)\n", login.User.DID, strings.Join(login.User.Roles, ","))
	fmt.Printf("Expires: %s\n", login.ExpiresAt.Format(time.RFC3339))
	fmt.Printf("Token:   %s\n", login.Token)
}

func post(url string, body, out any) error {
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			return err
		}
	}
	resp, err := http.Post(url, "application/json", &buf)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		var e struct {
			Error  string `json:"error"`
			Reason string `json:"reason"`
		}
		_ = json.NewDecoder(resp.Body).Decode(&e)
		return fmt.Errorf("%s: %s (%s)", resp.Status, e.Error, e.Reason)
	}
	return json.NewDecoder(resp.Body).Decode(out)
}

func exitOn(err error, step string) {
	if err != nil {
		fmt.Printf("Failed to %s: %v\n", step, err)
		os.Exit(1)
	}
}
