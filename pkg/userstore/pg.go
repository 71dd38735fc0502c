package userstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/pgdialect"

	"github.com/chainsafe/kilt-attester/pkg/user"
)

type pgStore struct {
	db *bun.DB
}

// NewStore creates a new postgres implementation of the user store
func NewStore(db *bun.DB) *pgStore {
	return &pgStore{db: db}
}

func (s *pgStore) GetOrCreateUser(ctx context.Context, did string, roles ...string) (*user.User, bool, error) {
	dao := toUserDao(user.New(did, roles...))

	res, err := s.db.NewInsert().
		Model(dao).
		On("CONFLICT (did) DO NOTHING").
		Exec(ctx)
	if err != nil {
		return nil, false, fmt.Errorf("failed to create user: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return nil, false, fmt.Errorf("failed to create user: %w", err)
	}

	usr, err := s.GetUser(ctx, did)
	if err != nil {
		return nil, false, err
	}
	return usr, n == 1, nil
}

func (s *pgStore) GetUser(ctx context.Context, did string) (*user.User, error) {
	dao := new(UserDao)
	err := s.db.NewSelect().
		Model(dao).
		Where("did = ?", did).
		Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	return toUser(dao), nil
}

func (s *pgStore) SetRoles(ctx context.Context, did string, roles ...string) error {
	if roles == nil {
		roles = []string{}
	}
	res, err := s.db.NewUpdate().
		Model((*UserDao)(nil)).
		Set("roles = ?", pgdialect.Array(roles)).
		Set("updated_at = NOW()").
		Where("did = ?", did).
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("failed to update roles: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrUserNotFound
	}
	return nil
}
