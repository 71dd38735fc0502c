// Package anchorstore records the CTypes and attestations the service anchored on a KILT network.
package anchorstore

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/chainsafe/kilt-attester/pkg/network"
)

var (
	// ErrCTypeNotFound is returned when no registered CType has the requested id.
	ErrCTypeNotFound = errors.New("ctype not found")
	// ErrAttestationNotFound is returned when no attestation has the requested claim hash.
	ErrAttestationNotFound = errors.New("attestation not found")
)

// CTypeRecord is a CType registered through the service.
type CTypeRecord struct {
	ID          string          `json:"id"`
	Schema      json.RawMessage `json:"schema"`
	Owner       string          `json:"owner"`
	Network     network.Name    `json:"network"`
	PaymentType string          `json:"paymentType"`
	SigningType string          `json:"signingType"`
	BlockHash   string          `json:"blockHash"`
	BlockNumber uint64          `json:"blockNumber"`
	TxHash      string          `json:"transactionHash"`
	CreatedAt   time.Time       `json:"createdAt"`
}

// AttestationRecord is an attestation anchored through the service.
type AttestationRecord struct {
	ClaimHash   string       `json:"claimHash"`
	CTypeID     string       `json:"ctypeId"`
	Attester    string       `json:"attester"`
	Owner       string       `json:"owner"`
	Network     network.Name `json:"network"`
	BlockHash   string       `json:"blockHash"`
	BlockNumber uint64       `json:"blockNumber"`
	TxHash      string       `json:"transactionHash"`
	CreatedAt   time.Time    `json:"createdAt"`
}

// Store persists anchored resources. Saves are idempotent on the resource id.
//
//go:generate mockery --name Store --output mocks --outpkg mocks --with-expecter
type Store interface {
	SaveCType(ctx context.Context, rec *CTypeRecord) error
	GetCType(ctx context.Context, id string) (*CTypeRecord, error)
	SaveAttestation(ctx context.Context, rec *AttestationRecord) error
	GetAttestation(ctx context.Context, claimHash string) (*AttestationRecord, error)
}
