package identity

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"codeberg.org/clickquest/server/clickquest/sessions"
	"codeberg.org/clickquest/server/clickquest/users"
	"codeberg.org/clickquest/server/internal/crypto"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// in-memory UserStore for tests
type fakeUserStore struct {
	byID   map[string]*users.User
	nextID int
}

func newFakeUserStore() *fakeUserStore {
	return &fakeUserStore{byID: make(map[string]*users.User)}
}

func (f *fakeUserStore) add(u *users.User) *users.User {
	f.nextID++
	u.ID = fmt.Sprintf("user-%d", f.nextID)
	u.CreatedAt = time.Now()
	u.UpdatedAt = time.Now()
	f.byID[u.ID] = u
	return u
}

func (f *fakeUserStore) Create(
	_ context.Context,
	name, email, passwordHash, verificationToken string,
	verificationExpiresAt time.Time,
) (*users.User, error) {
	for _, u := range f.byID {
		if strings.EqualFold(u.Email, email) {
			return nil, users.ErrDuplicateEmail
		}
	}

	return f.add(&users.User{
		Name:                       name,
		Email:                      email,
		PasswordHash:               &passwordHash,
		VerificationToken:          &verificationToken,
		VerificationTokenExpiresAt: &verificationExpiresAt,
	}), nil
}

func (f *fakeUserStore) FindByID(_ context.Context, userID string) (*users.User, error) {
	if u, ok := f.byID[userID]; ok {
		return u, nil
	}

	return nil, users.ErrUserNotFound
}

func (f *fakeUserStore) FindByEmail(_ context.Context, email string) (*users.User, error) {
	for _, u := range f.byID {
		if strings.EqualFold(u.Email, email) {
			return u, nil
		}
	}

	return nil, users.ErrUserNotFound
}

func (f *fakeUserStore) FindByVerificationToken(_ context.Context, token string) (*users.User, error) {
	for _, u := range f.byID {
		if u.VerificationToken != nil && *u.VerificationToken == token {
			return u, nil
		}
	}

	return nil, users.ErrUserNotFound
}

func (f *fakeUserStore) MarkVerified(_ context.Context, userID string) (*users.User, error) {
	u, ok := f.byID[userID]
	if !ok {
		return nil, users.ErrUserNotFound
	}

	u.IsVerified = true
	u.VerificationToken = nil
	u.VerificationTokenExpiresAt = nil
	return u, nil
}

func (f *fakeUserStore) SetResetToken(
	_ context.Context,
	userID, token string,
	expiresAt time.Time,
) (*users.User, error) {
	u, ok := f.byID[userID]
	if !ok {
		return nil, users.ErrUserNotFound
	}

	u.ResetPasswordToken = &token
	u.ResetPasswordExpiresAt = &expiresAt
	return u, nil
}

func (f *fakeUserStore) FindByResetToken(_ context.Context, token string) (*users.User, error) {
	for _, u := range f.byID {
		if u.ResetPasswordToken != nil && *u.ResetPasswordToken == token {
			return u, nil
		}
	}

	return nil, users.ErrUserNotFound
}

func (f *fakeUserStore) UpdatePassword(_ context.Context, userID, passwordHash string) (*users.User, error) {
	u, ok := f.byID[userID]
	if !ok {
		return nil, users.ErrUserNotFound
	}

	u.PasswordHash = &passwordHash
	u.ResetPasswordToken = nil
	u.ResetPasswordExpiresAt = nil
	return u, nil
}

func (f *fakeUserStore) FindByProvider(_ context.Context, provider, providerID string) (*users.User, error) {
	for _, u := range f.byID {
		if u.Provider != nil && *u.Provider == provider && u.ProviderID != nil && *u.ProviderID == providerID {
			return u, nil
		}
	}

	return nil, users.ErrUserNotFound
}

func (f *fakeUserStore) LinkProvider(_ context.Context, userID, provider, providerID string) (*users.User, error) {
	u, ok := f.byID[userID]
	if !ok {
		return nil, users.ErrUserNotFound
	}

	u.Provider = &provider
	u.ProviderID = &providerID
	u.IsVerified = true
	return u, nil
}

func (f *fakeUserStore) CreateOAuth(_ context.Context, name, email, provider, providerID string) (*users.User, error) {
	return f.add(&users.User{
		Name:       name,
		Email:      email,
		Provider:   &provider,
		ProviderID: &providerID,
		IsVerified: true,
	}), nil
}

// records dispatched emails; optionally fails every send
type fakeMailer struct {
	verifications []string
	welcomes      []string
	resets        []string
	failAll       bool
}

func (f *fakeMailer) SendVerificationEmail(_ context.Context, email, code string) error {
	if f.failAll {
		return errors.New("smtp unavailable")
	}

	f.verifications = append(f.verifications, email+":"+code)
	return nil
}

func (f *fakeMailer) SendWelcomeEmail(_ context.Context, email, _ string) error {
	if f.failAll {
		return errors.New("smtp unavailable")
	}

	f.welcomes = append(f.welcomes, email)
	return nil
}

func (f *fakeMailer) SendPasswordResetEmail(_ context.Context, email, resetURL, _ string) error {
	if f.failAll {
		return errors.New("smtp unavailable")
	}

	f.resets = append(f.resets, email+":"+resetURL)
	return nil
}

type fakeIssuer struct {
	issued int
}

func (f *fakeIssuer) IssueSession(_ context.Context, user *users.User) (*sessions.TokenPair, error) {
	f.issued++
	return &sessions.TokenPair{
		AccessToken:      "access-" + user.ID,
		RefreshToken:     "refresh-" + user.ID,
		RefreshExpiresAt: time.Now().Add(30 * 24 * time.Hour),
	}, nil
}

func newTestService() (*Service, *fakeUserStore, *fakeMailer, *fakeIssuer) {
	store := newFakeUserStore()
	mailer := &fakeMailer{}
	issuer := &fakeIssuer{}

	return NewService(store, mailer, issuer, "http://localhost:5173"), store, mailer, issuer
}

func TestRegister_Validation(t *testing.T) {
	svc, _, _, _ := newTestService()
	ctx := context.Background()

	cases := []struct {
		name, email, password string
	}{
		{"", "a@x.com", "secret1"},
		{"Alice", "", "secret1"},
		{"Alice", "a@x.com", ""},
		{"Alice", "a@x.com", "short"},
	}

	for _, tc := range cases {
		_, err := svc.Register(ctx, tc.name, tc.email, tc.password)
		assert.ErrorIs(t, err, ErrValidation)
	}
}

func TestRegister_Success(t *testing.T) {
	svc, _, mailer, issuer := newTestService()

	user, err := svc.Register(context.Background(), "Alice", "a@x.com", "secret1")

	require.NoError(t, err)
	assert.False(t, user.IsVerified, "password signups start unverified")
	require.NotNil(t, user.VerificationToken)
	assert.Len(t, *user.VerificationToken, 6)
	require.NotNil(t, user.VerificationTokenExpiresAt)
	assert.WithinDuration(t, time.Now().Add(24*time.Hour), *user.VerificationTokenExpiresAt, 5*time.Second)

	require.NotNil(t, user.PasswordHash)
	assert.True(t, crypto.CheckPassword("secret1", *user.PasswordHash))

	require.Len(t, mailer.verifications, 1)
	assert.Equal(t, "a@x.com:"+*user.VerificationToken, mailer.verifications[0])

	assert.Zero(t, issuer.issued, "registration must not issue session tokens")
}

func TestRegister_DuplicateEmail(t *testing.T) {
	svc, _, _, _ := newTestService()
	ctx := context.Background()

	_, err := svc.Register(ctx, "Alice", "a@x.com", "secret1")
	require.NoError(t, err)

	_, err = svc.Register(ctx, "Someone Else", "a@x.com", "other-password")
	assert.ErrorIs(t, err, ErrDuplicateAccount)
}

func TestRegister_EmailDispatchFailureDoesNotFailSignup(t *testing.T) {
	svc, store, mailer, _ := newTestService()
	mailer.failAll = true

	user, err := svc.Register(context.Background(), "Alice", "a@x.com", "secret1")

	require.NoError(t, err, "a failed email must not fail the committed signup")
	_, err = store.FindByID(context.Background(), user.ID)
	assert.NoError(t, err)
}

func TestVerifyEmail_WrongToken(t *testing.T) {
	svc, _, _, _ := newTestService()

	_, err := svc.Register(context.Background(), "Alice", "a@x.com", "secret1")
	require.NoError(t, err)

	_, err = svc.VerifyEmail(context.Background(), "000000")
	assert.ErrorIs(t, err, ErrInvalidOrExpiredToken)
}

func TestVerifyEmail_ExpiredToken(t *testing.T) {
	svc, store, _, _ := newTestService()

	user, err := svc.Register(context.Background(), "Alice", "a@x.com", "secret1")
	require.NoError(t, err)

	// age the token past its expiry
	stale := time.Now().Add(-time.Minute)
	store.byID[user.ID].VerificationTokenExpiresAt = &stale

	_, err = svc.VerifyEmail(context.Background(), *user.VerificationToken)
	assert.ErrorIs(t, err, ErrInvalidOrExpiredToken, "matching token string is not enough once expired")
}

func TestVerifyEmail_Success(t *testing.T) {
	svc, _, mailer, _ := newTestService()

	user, err := svc.Register(context.Background(), "Alice", "a@x.com", "secret1")
	require.NoError(t, err)

	verified, err := svc.VerifyEmail(context.Background(), *user.VerificationToken)

	require.NoError(t, err)
	assert.True(t, verified.IsVerified)
	assert.Nil(t, verified.VerificationToken, "token must be cleared once consumed")
	assert.Nil(t, verified.VerificationTokenExpiresAt)
	assert.Equal(t, []string{"a@x.com"}, mailer.welcomes)
}

func TestLogin_UnknownEmail(t *testing.T) {
	svc, _, _, _ := newTestService()

	_, _, err := svc.Login(context.Background(), "nobody@x.com", "secret1")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestLogin_WrongPassword(t *testing.T) {
	svc, _, _, _ := newTestService()
	ctx := context.Background()

	user, err := svc.Register(ctx, "Alice", "a@x.com", "secret1")
	require.NoError(t, err)

	_, err = svc.VerifyEmail(ctx, *user.VerificationToken)
	require.NoError(t, err)

	_, _, err = svc.Login(ctx, "a@x.com", "wrong")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestLogin_BlockedBeforeVerification(t *testing.T) {
	svc, _, _, issuer := newTestService()
	ctx := context.Background()

	_, err := svc.Register(ctx, "Alice", "a@x.com", "secret1")
	require.NoError(t, err)

	_, _, err = svc.Login(ctx, "a@x.com", "secret1")

	assert.ErrorIs(t, err, ErrUnverifiedAccount)
	assert.Zero(t, issuer.issued)
}

func TestLogin_SuccessAfterVerification(t *testing.T) {
	svc, _, _, issuer := newTestService()
	ctx := context.Background()

	user, err := svc.Register(ctx, "Alice", "a@x.com", "secret1")
	require.NoError(t, err)

	_, err = svc.VerifyEmail(ctx, *user.VerificationToken)
	require.NoError(t, err)

	loggedIn, pair, err := svc.Login(ctx, "a@x.com", "secret1")

	require.NoError(t, err)
	assert.Equal(t, user.ID, loggedIn.ID)
	require.NotNil(t, pair)
	assert.NotEmpty(t, pair.AccessToken)
	assert.NotEmpty(t, pair.RefreshToken)
	assert.Equal(t, 1, issuer.issued)
}

func TestLogin_OAuthOnlyAccountHasNoPassword(t *testing.T) {
	svc, _, _, _ := newTestService()
	ctx := context.Background()

	_, err := svc.FindOrCreateOAuthUser(ctx, "Alice", "a@x.com", "google", "gid-1")
	require.NoError(t, err)

	_, _, err = svc.Login(ctx, "a@x.com", "anything")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestRequestPasswordReset_UnknownEmail(t *testing.T) {
	svc, _, _, _ := newTestService()

	err := svc.RequestPasswordReset(context.Background(), "unknown@x.com")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestRequestPasswordReset_Success(t *testing.T) {
	svc, store, mailer, _ := newTestService()
	ctx := context.Background()

	user, err := svc.Register(ctx, "Alice", "a@x.com", "secret1")
	require.NoError(t, err)

	require.NoError(t, svc.RequestPasswordReset(ctx, "a@x.com"))

	stored := store.byID[user.ID]
	require.NotNil(t, stored.ResetPasswordToken)
	assert.Len(t, *stored.ResetPasswordToken, 64, "32 random bytes, hex-encoded")
	require.NotNil(t, stored.ResetPasswordExpiresAt)
	assert.WithinDuration(t, time.Now().Add(time.Hour), *stored.ResetPasswordExpiresAt, 5*time.Second)

	require.Len(t, mailer.resets, 1)
	assert.Contains(t, mailer.resets[0], "http://localhost:5173/reset-password?token="+*stored.ResetPasswordToken)
}

func TestResetPassword_ExpiredToken(t *testing.T) {
	svc, store, _, _ := newTestService()
	ctx := context.Background()

	user, err := svc.Register(ctx, "Alice", "a@x.com", "secret1")
	require.NoError(t, err)
	require.NoError(t, svc.RequestPasswordReset(ctx, "a@x.com"))

	stale := time.Now().Add(-time.Minute)
	store.byID[user.ID].ResetPasswordExpiresAt = &stale

	err = svc.ResetPassword(ctx, *store.byID[user.ID].ResetPasswordToken, "newpass1")
	assert.ErrorIs(t, err, ErrInvalidOrExpiredToken)
}

func TestResetPassword_ShortPassword(t *testing.T) {
	svc, store, _, _ := newTestService()
	ctx := context.Background()

	user, err := svc.Register(ctx, "Alice", "a@x.com", "secret1")
	require.NoError(t, err)
	require.NoError(t, svc.RequestPasswordReset(ctx, "a@x.com"))

	err = svc.ResetPassword(ctx, *store.byID[user.ID].ResetPasswordToken, "tiny")
	assert.ErrorIs(t, err, ErrValidation)
}

func TestResetPassword_SingleUse(t *testing.T) {
	svc, store, _, _ := newTestService()
	ctx := context.Background()

	user, err := svc.Register(ctx, "Alice", "a@x.com", "secret1")
	require.NoError(t, err)
	require.NoError(t, svc.RequestPasswordReset(ctx, "a@x.com"))

	token := *store.byID[user.ID].ResetPasswordToken

	require.NoError(t, svc.ResetPassword(ctx, token, "newpass1"))

	stored := store.byID[user.ID]
	assert.Nil(t, stored.ResetPasswordToken, "token cleared atomically with the update")
	assert.Nil(t, stored.ResetPasswordExpiresAt)
	assert.True(t, crypto.CheckPassword("newpass1", *stored.PasswordHash))

	// the consumed token grants exactly one change
	err = svc.ResetPassword(ctx, token, "anotherpass")
	assert.ErrorIs(t, err, ErrInvalidOrExpiredToken)
}

func TestFindOrCreateOAuthUser_ExistingProviderIdentity(t *testing.T) {
	svc, _, _, _ := newTestService()
	ctx := context.Background()

	created, err := svc.FindOrCreateOAuthUser(ctx, "Alice", "a@x.com", "google", "gid-1")
	require.NoError(t, err)

	found, err := svc.FindOrCreateOAuthUser(ctx, "Alice Renamed", "other@x.com", "google", "gid-1")

	require.NoError(t, err)
	assert.Equal(t, created.ID, found.ID, "provider identity wins when present")
}

func TestFindOrCreateOAuthUser_LinksExistingEmailAccount(t *testing.T) {
	svc, _, _, _ := newTestService()
	ctx := context.Background()

	// password account, still unverified
	registered, err := svc.Register(ctx, "Alice", "a@x.com", "secret1")
	require.NoError(t, err)
	assert.False(t, registered.IsVerified)

	linked, err := svc.FindOrCreateOAuthUser(ctx, "Alice", "a@x.com", "google", "gid-1")

	require.NoError(t, err)
	assert.Equal(t, registered.ID, linked.ID, "no duplicate row for the same email")
	assert.True(t, linked.IsVerified, "OAuth email ownership implies verification")
	require.NotNil(t, linked.Provider)
	assert.Equal(t, "google", *linked.Provider)
	require.NotNil(t, linked.ProviderID)
	assert.Equal(t, "gid-1", *linked.ProviderID)
}

func TestFindOrCreateOAuthUser_CreatesVerifiedPasswordlessAccount(t *testing.T) {
	svc, _, _, _ := newTestService()

	user, err := svc.FindOrCreateOAuthUser(context.Background(), "Alice", "a@x.com", "google", "gid-1")

	require.NoError(t, err)
	assert.True(t, user.IsVerified)
	assert.Nil(t, user.PasswordHash)
}

func TestFindOrCreateOAuthUser_MissingProfileFields(t *testing.T) {
	svc, _, _, _ := newTestService()

	_, err := svc.FindOrCreateOAuthUser(context.Background(), "", "a@x.com", "google", "gid-1")
	assert.ErrorIs(t, err, ErrValidation)

	_, err = svc.FindOrCreateOAuthUser(context.Background(), "Alice", "", "google", "gid-1")
	assert.ErrorIs(t, err, ErrValidation)
}
