package userstore

import (
	"context"
	"errors"

	"github.com/chainsafe/kilt-attester/pkg/user"
)

// ErrUserNotFound is returned when a user lookup finds no matching record.
var ErrUserNotFound = errors.New("user not found")

// Store defines the interface for user data persistence
type Store interface {
	// GetOrCreateUser returns the user for did, inserting it with roles when absent.
	// created reports whether this call inserted the row.
	GetOrCreateUser(ctx context.Context, did string, roles ...string) (usr *user.User, created bool, err error)
	GetUser(ctx context.Context, did string) (*user.User, error)
	SetRoles(ctx context.Context, did string, roles ...string) error
}
