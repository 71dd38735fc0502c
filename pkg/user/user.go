package user

import (
	"time"

	"github.com/google/uuid"

	"github.com/chainsafe/kilt-attester/pkg/challenge"
)

const (
	// DefaultRole is assigned to users on their first login.
	DefaultRole = "user"
	// RoleAttester may anchor attestations with the application DID.
	RoleAttester = "attester"
)

// User represents the domain model for a DID holder that logged in at least once.
type User struct {
	ID        uuid.UUID `json:"id"`
	DID       string    `json:"did"`
	Roles     []string  `json:"roles"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// New creates a User for a DID with the given roles.
func New(did string, roles ...string) *User {
	now := time.Now().UTC()
	return &User{
		ID:        uuid.New(),
		DID:       did,
		Roles:     roles,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// PrimaryRole returns the first role, or fallback when the user has none.
func (u *User) PrimaryRole(fallback string) string {
	if len(u.Roles) == 0 || u.Roles[0] == "" {
		return fallback
	}
	return u.Roles[0]
}

// HasRole reports whether the user holds role.
func (u *User) HasRole(role string) bool {
	for _, r := range u.Roles {
		if r == role {
			return true
		}
	}
	return false
}

// LoginRequest carries a completed challenge handshake.
type LoginRequest struct {
	Request  challenge.SessionRequest  `json:"request"`
	Response challenge.SessionResponse `json:"response"`
	DID      string                    `json:"did" validate:"required"`
}

// LoginResponse is returned on a successful login.
type LoginResponse struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expiresAt"`
	User      *User     `json:"user"`
}
