//go:build ignore

// generate-jwt.go - Issue an access token without the login handshake, for local testing
//
// Usage:
//   go run scripts/generate-jwt.go -config config.api-server.yaml \
//     -did did:kilt:4... -role attester

package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/chainsafe/kilt-attester/pkg/auth"
	"github.com/chainsafe/kilt-attester/pkg/config"
	"github.com/chainsafe/kilt-attester/pkg/did"
	"github.com/chainsafe/kilt-attester/pkg/user"
)

var (
	configPath = flag.String("config", "config.api-server.yaml", "Path to config file")
	subject    = flag.String("did", "", "Full DID the token is issued to")
	role       = flag.String("role", user.DefaultRole, "Role claim")
)

func main() {
	flag.Parse()

	id, err := did.ParseFull(*subject)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Invalid -did: %v\n", err)
		os.Exit(1)
	}

	cfg, err := config.LoadAPIServer(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}

	token, claims, err := auth.NewTokenIssuer(cfg.Session.JWTSecret).Issue(id, *role)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error generating token: %v\n", err)
		os.Exit(1)
	}

	fmt.Println("=== KILT Attester access token ===")
	fmt.Println()
	fmt.Printf("DID:     %s\n", id)
	fmt.Printf("Role:    %s\n", *role)
	fmt.Printf("Expires: %s\n", claims.ExpiresAt.Format(time.RFC3339))
	fmt.Println()
	fmt.Println(token)
}
