package anchorstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/uptrace/bun"
)

type pgStore struct {
	db *bun.DB
}

// NewStore creates a new postgres implementation of the anchor store
func NewStore(db *bun.DB) *pgStore {
	return &pgStore{db: db}
}

func (s *pgStore) SaveCType(ctx context.Context, rec *CTypeRecord) error {
	_, err := s.db.NewInsert().
		Model(toCTypeDao(rec)).
		On("CONFLICT (id) DO NOTHING").
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("failed to save ctype %s: %w", rec.ID, err)
	}
	return nil
}

func (s *pgStore) GetCType(ctx context.Context, id string) (*CTypeRecord, error) {
	dao := new(CTypeDao)
	err := s.db.NewSelect().
		Model(dao).
		Where("id = ?", id).
		Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrCTypeNotFound
		}
		return nil, fmt.Errorf("failed to get ctype: %w", err)
	}
	return toCTypeRecord(dao), nil
}

func (s *pgStore) SaveAttestation(ctx context.Context, rec *AttestationRecord) error {
	_, err := s.db.NewInsert().
		Model(toAttestationDao(rec)).
		On("CONFLICT (claim_hash) DO NOTHING").
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("failed to save attestation %s: %w", rec.ClaimHash, err)
	}
	return nil
}

func (s *pgStore) GetAttestation(ctx context.Context, claimHash string) (*AttestationRecord, error) {
	dao := new(AttestationDao)
	err := s.db.NewSelect().
		Model(dao).
		Where("claim_hash = ?", claimHash).
		Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrAttestationNotFound
		}
		return nil, fmt.Errorf("failed to get attestation: %w", err)
	}
	return toAttestationRecord(dao), nil
}
