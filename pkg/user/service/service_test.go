package service

import (
	"bytes"
	"context"
	"encoding/hex"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	apperrors "github.com/chainsafe/kilt-attester/pkg/app/errors"
	"github.com/chainsafe/kilt-attester/pkg/auth"
	"github.com/chainsafe/kilt-attester/pkg/challenge"
	"github.com/chainsafe/kilt-attester/pkg/did"
	eventmocks "github.com/chainsafe/kilt-attester/pkg/events/mocks"
	"github.com/chainsafe/kilt-attester/pkg/user"
	"github.com/chainsafe/kilt-attester/pkg/user/service/mocks"
	"github.com/chainsafe/kilt-attester/pkg/userstore"
)

const (
	testSecret = "0123456789abcdef0123456789abcdef"
	appKeyURI  = "did:kilt:4pnfkRn5UurBJTW92d9TaVLR2CqJdY4z5HPjrEbpGyBykare#0xapp"
)

var holder = did.FromAccount(bytes.Repeat([]byte{7}, 32))

type fixture struct {
	svc        Service
	challenges challenge.Service
	store      *mocks.Store
	notifier   *eventmocks.Notifier
	issuer     *auth.TokenIssuer
	now        time.Time
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	challenges := challenge.NewService(
		challenge.Config{AppName: "test", AppKeyURI: appKeyURI},
		challenge.NewMemoryRegistry(16),
		challenge.InsecureClaimTrustVerifier{},
		zap.NewNop(),
	)
	store := mocks.NewStore(t)
	notifier := eventmocks.NewNotifier(t)
	issuer := auth.NewTokenIssuer(testSecret).WithClock(func() time.Time { return now })

	return &fixture{
		svc:        NewLog(NewService(challenges, store, issuer, notifier, "", zap.NewNop()), zap.NewNop()),
		challenges: challenges,
		store:      store,
		notifier:   notifier,
		issuer:     issuer,
		now:        now,
	}
}

func (f *fixture) loginRequest(t *testing.T, claimed string) *user.LoginRequest {
	t.Helper()
	req, err := f.svc.Challenge(context.Background())
	require.NoError(t, err)
	return &user.LoginRequest{
		Request: *req,
		Response: challenge.SessionResponse{
			EncryptionKeyURI:   holder.KeyURI("0x" + hex.EncodeToString(bytes.Repeat([]byte{1}, 32))),
			EncryptedChallenge: "0xdeadbeef",
			Nonce:              hex.EncodeToString(make([]byte, challenge.NonceSize)),
		},
		DID: claimed,
	}
}

func TestLogin_NewUser(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	usr := user.New(holder.String(), user.DefaultRole)
	f.store.EXPECT().GetOrCreateUser(mock.Anything, holder.String(), user.DefaultRole).Return(usr, true, nil).Once()
	f.notifier.EXPECT().UserCreated(mock.Anything, usr).Return().Once()

	resp, err := f.svc.Login(ctx, f.loginRequest(t, holder.String()))
	require.NoError(t, err)
	assert.Equal(t, usr, resp.User)
	assert.True(t, f.now.Add(auth.TokenTTL).Equal(resp.ExpiresAt), "expires at %s", resp.ExpiresAt)

	claims, err := f.issuer.Verify(resp.Token)
	require.NoError(t, err)
	assert.Equal(t, holder.String(), claims.DID)
	assert.Equal(t, user.DefaultRole, claims.Role)
	assert.Equal(t, auth.TokenTTL, claims.ExpiresAt.Sub(claims.IssuedAt.Time))
}

func TestLogin_ExistingUserKeepsPrimaryRole(t *testing.T) {
	f := newFixture(t)

	usr := user.New(holder.String(), "attester", user.DefaultRole)
	f.store.EXPECT().GetOrCreateUser(mock.Anything, holder.String(), user.DefaultRole).Return(usr, false, nil).Once()

	resp, err := f.svc.Login(context.Background(), f.loginRequest(t, holder.String()))
	require.NoError(t, err)

	claims, err := f.issuer.Verify(resp.Token)
	require.NoError(t, err)
	assert.Equal(t, "attester", claims.Role)
	f.notifier.AssertNotCalled(t, "UserCreated", mock.Anything, mock.Anything)
}

func TestLogin_ChallengeIsSingleUse(t *testing.T) {
	f := newFixture(t)

	usr := user.New(holder.String(), user.DefaultRole)
	f.store.EXPECT().GetOrCreateUser(mock.Anything, holder.String(), user.DefaultRole).Return(usr, false, nil).Once()

	req := f.loginRequest(t, holder.String())
	_, err := f.svc.Login(context.Background(), req)
	require.NoError(t, err)

	_, err = f.svc.Login(context.Background(), req)
	require.Error(t, err)
	assert.True(t, errors.Is(err, challenge.ErrChallengeNotFound))
	assert.True(t, apperrors.Is(err, apperrors.CategoryUnauthorized))
}

func TestLogin_LightDIDRejectedWithoutStoreAccess(t *testing.T) {
	f := newFixture(t)

	req := f.loginRequest(t, "did:kilt:light:014nv4phaKc4EcwENdRERuMF79ZSSB5xvnAk3zNySSbVbXhSwS")
	_, err := f.svc.Login(context.Background(), req)
	require.Error(t, err)
	assert.True(t, errors.Is(err, did.ErrLightDidNotAllowed))
	assert.True(t, apperrors.Is(err, apperrors.CategoryForbidden))

	f.store.AssertNotCalled(t, "GetOrCreateUser", mock.Anything, mock.Anything, mock.Anything)
}

func TestLogin_StoreFailure(t *testing.T) {
	f := newFixture(t)

	f.store.EXPECT().GetOrCreateUser(mock.Anything, holder.String(), user.DefaultRole).
		Return(nil, false, errors.New("connection refused")).Once()

	_, err := f.svc.Login(context.Background(), f.loginRequest(t, holder.String()))
	require.ErrorContains(t, err, "failed to load user")
}

func TestChallenge_EncryptionKeyUnset(t *testing.T) {
	challenges := challenge.NewService(challenge.Config{AppName: "test"}, challenge.NewMemoryRegistry(4),
		challenge.InsecureClaimTrustVerifier{}, zap.NewNop())
	svc := NewService(challenges, mocks.NewStore(t), auth.NewTokenIssuer(testSecret), eventmocks.NewNotifier(t), "", zap.NewNop())

	_, err := svc.Challenge(context.Background())
	require.Error(t, err)
	assert.True(t, errors.Is(err, challenge.ErrEncryptionKeyUnset))
	assert.True(t, apperrors.Is(err, apperrors.CategoryRecovering))
}

func TestMe(t *testing.T) {
	f := newFixture(t)

	usr := user.New(holder.String(), user.DefaultRole)
	f.store.EXPECT().GetUser(mock.Anything, holder.String()).Return(usr, nil).Once()
	f.store.EXPECT().GetUser(mock.Anything, "did:kilt:unknown").Return(nil, userstore.ErrUserNotFound).Once()

	got, err := f.svc.Me(context.Background(), holder.String())
	require.NoError(t, err)
	assert.Equal(t, usr, got)

	_, err = f.svc.Me(context.Background(), "did:kilt:unknown")
	require.Error(t, err)
	assert.True(t, apperrors.Is(err, apperrors.CategoryResourceNotFound))
}
