package usecase

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"electromart/internal/data/entity"
	"electromart/internal/data/repository"
	"electromart/internal/dto/request"
	"electromart/pkg/utils"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// stubUserRepo keeps users in memory, keyed every way the service needs.
type stubUserRepo struct {
	mu    sync.Mutex
	users map[uuid.UUID]*entity.User

	createErr error
}

func newStubUserRepo() *stubUserRepo {
	return &stubUserRepo{users: make(map[uuid.UUID]*entity.User)}
}

func (r *stubUserRepo) Create(ctx context.Context, user *entity.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.createErr != nil {
		return r.createErr
	}
	copied := *user
	r.users[user.ID] = &copied
	return nil
}

func (r *stubUserRepo) FindByID(ctx context.Context, id uuid.UUID) (*entity.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if user, ok := r.users[id]; ok {
		copied := *user
		return &copied, nil
	}
	return nil, nil
}

func (r *stubUserRepo) FindByEmail(ctx context.Context, email string) (*entity.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, user := range r.users {
		if user.Email != nil && *user.Email == email {
			copied := *user
			return &copied, nil
		}
	}
	return nil, nil
}

func (r *stubUserRepo) FindByPhone(ctx context.Context, phone string) (*entity.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, user := range r.users {
		if user.Phone != nil && *user.Phone == phone {
			copied := *user
			return &copied, nil
		}
	}
	return nil, nil
}

func (r *stubUserRepo) Update(ctx context.Context, user *entity.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	copied := *user
	r.users[user.ID] = &copied
	return nil
}

func (r *stubUserRepo) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.users)
}

// stubSessionRepo records created sessions and revoked tokens.
type stubSessionRepo struct {
	mu       sync.Mutex
	sessions []*entity.Session
	revoked  []string

	createErr error
	revokeErr error
}

func (r *stubSessionRepo) Create(ctx context.Context, session *entity.Session) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.createErr != nil {
		return r.createErr
	}
	r.sessions = append(r.sessions, session)
	return nil
}

func (r *stubSessionRepo) FindValidSession(ctx context.Context, token string) (*entity.Session, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, session := range r.sessions {
		if session.Token.String() == token {
			return session, nil
		}
	}
	return nil, nil
}

func (r *stubSessionRepo) Revoke(ctx context.Context, token string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.revokeErr != nil {
		return r.revokeErr
	}
	r.revoked = append(r.revoked, token)
	return nil
}

func (r *stubSessionRepo) CleanExpiredSessions(ctx context.Context) error {
	return nil
}

// captureSender records the last code instead of delivering it.
type captureSender struct {
	mu      sync.Mutex
	contact string
	code    string
	err     error
}

func (s *captureSender) Send(ctx context.Context, contact string, kind utils.ContactKind, code string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return s.err
	}
	s.contact = contact
	s.code = code
	return nil
}

func (s *captureSender) lastCode() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.code
}

type authFixture struct {
	service  *authService
	users    *stubUserRepo
	sessions *stubSessionRepo
	sender   *captureSender
	clock    time.Time
}

func newAuthFixture() *authFixture {
	f := &authFixture{
		users:    newStubUserRepo(),
		sessions: &stubSessionRepo{},
		sender:   &captureSender{},
		clock:    time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC),
	}

	config := &utils.Config{
		OTP: utils.OTPConfig{
			ExpiryMinutes: 5,
			Length:        6,
			MaxAttempts:   4,
		},
	}

	repo := &repository.Repository{
		User:    f.users,
		Session: f.sessions,
	}

	f.service = &authService{
		repo:    repo,
		pending: newPendingStore(),
		sender:  f.sender,
		config:  config,
		log:     zap.NewNop(),
		now:     func() time.Time { return f.clock },
	}

	return f
}

func (f *authFixture) advance(d time.Duration) {
	f.clock = f.clock.Add(d)
}

func TestRequestOTPRejectsMalformedContact(t *testing.T) {
	f := newAuthFixture()

	for _, contact := range []string{"", "not-an-email", "12345", "0123456789", "5876543210"} {
		err := f.service.RequestOTP(context.Background(), contact)
		assert.Error(t, err, contact)
	}

	// Nothing pending, nothing sent
	assert.Empty(t, f.sender.lastCode())
	_, ok := f.service.pending.lookup("not-an-email")
	assert.False(t, ok)
}

func TestRequestOTPAcceptsEmailAndPhone(t *testing.T) {
	f := newAuthFixture()

	require.NoError(t, f.service.RequestOTP(context.Background(), "  Ravi@Example.COM "))
	assert.Equal(t, "ravi@example.com", f.sender.contact)
	assert.Len(t, f.sender.lastCode(), 6)

	require.NoError(t, f.service.RequestOTP(context.Background(), "9876543210"))
	assert.Equal(t, "9876543210", f.sender.contact)
}

func TestRequestOTPSendFailureClearsPending(t *testing.T) {
	f := newAuthFixture()
	f.sender.err = errors.New("smtp down")

	err := f.service.RequestOTP(context.Background(), "ravi@example.com")
	require.Error(t, err)

	_, ok := f.service.pending.lookup("ravi@example.com")
	assert.False(t, ok)
}

func TestVerifyOTPHappyPathCreatesUserAndSession(t *testing.T) {
	f := newAuthFixture()
	ctx := context.Background()

	require.NoError(t, f.service.RequestOTP(ctx, "ravi@example.com"))

	resp, err := f.service.VerifyOTP(ctx, &request.VerifyOTPRequest{
		Contact: "Ravi@Example.com",
		Code:    f.sender.lastCode(),
	})
	require.NoError(t, err)

	require.NotNil(t, resp.Email)
	assert.Equal(t, "ravi@example.com", *resp.Email)
	assert.Equal(t, entity.RoleCustomer, resp.Role)
	assert.True(t, resp.Verified)
	assert.NotEmpty(t, resp.Token)

	assert.Equal(t, 1, f.users.count())
	require.Len(t, f.sessions.sessions, 1)
	assert.Equal(t, f.clock.Add(24*time.Hour), f.sessions.sessions[0].ExpiresAt)

	// Single use: the same code is spent
	_, err = f.service.VerifyOTP(ctx, &request.VerifyOTPRequest{
		Contact: "ravi@example.com",
		Code:    f.sender.lastCode(),
	})
	assert.ErrorContains(t, err, "no OTP pending")
}

func TestVerifyOTPReusesExistingUser(t *testing.T) {
	f := newAuthFixture()
	ctx := context.Background()

	phone := "9876543210"
	existing := &entity.User{
		Base:     entity.Base{ID: uuid.New(), CreatedAt: f.clock, UpdatedAt: f.clock},
		Phone:    &phone,
		Role:     entity.RoleCustomer,
		IsActive: true,
	}
	require.NoError(t, f.users.Create(ctx, existing))

	require.NoError(t, f.service.RequestOTP(ctx, phone))
	resp, err := f.service.VerifyOTP(ctx, &request.VerifyOTPRequest{Contact: phone, Code: f.sender.lastCode()})
	require.NoError(t, err)

	assert.Equal(t, existing.ID.String(), resp.UserID)
	assert.Equal(t, 1, f.users.count())

	refreshed, _ := f.users.FindByID(ctx, existing.ID)
	assert.True(t, refreshed.Verified)
}

func TestVerifyOTPWrongContactConsumesNoAttempt(t *testing.T) {
	f := newAuthFixture()
	ctx := context.Background()

	require.NoError(t, f.service.RequestOTP(ctx, "ravi@example.com"))

	_, err := f.service.VerifyOTP(ctx, &request.VerifyOTPRequest{
		Contact: "someone@else.com",
		Code:    f.sender.lastCode(),
	})
	assert.ErrorContains(t, err, "no OTP pending")

	entry, ok := f.service.pending.lookup("ravi@example.com")
	require.True(t, ok)
	assert.Equal(t, 0, entry.attempts)
}

func TestVerifyOTPMalformedCodeConsumesNoAttempt(t *testing.T) {
	f := newAuthFixture()
	ctx := context.Background()

	require.NoError(t, f.service.RequestOTP(ctx, "ravi@example.com"))

	for _, code := range []string{"", "12345", "1234567", "12a456"} {
		_, err := f.service.VerifyOTP(ctx, &request.VerifyOTPRequest{Contact: "ravi@example.com", Code: code})
		assert.ErrorContains(t, err, "validation failed", code)
	}

	entry, ok := f.service.pending.lookup("ravi@example.com")
	require.True(t, ok)
	assert.Equal(t, 0, entry.attempts)
}

func TestVerifyOTPAttemptLimit(t *testing.T) {
	f := newAuthFixture()
	ctx := context.Background()

	require.NoError(t, f.service.RequestOTP(ctx, "ravi@example.com"))
	code := f.sender.lastCode()

	wrong := "000000"
	if wrong == code {
		wrong = "000001"
	}

	for i := 0; i < 4; i++ {
		_, err := f.service.VerifyOTP(ctx, &request.VerifyOTPRequest{Contact: "ravi@example.com", Code: wrong})
		assert.ErrorContains(t, err, "incorrect OTP")
	}

	// Limit reached on the fourth miss: even the correct code is dead
	_, err := f.service.VerifyOTP(ctx, &request.VerifyOTPRequest{Contact: "ravi@example.com", Code: code})
	assert.ErrorContains(t, err, "no OTP pending")
	assert.Equal(t, 0, f.users.count())
}

func TestVerifyOTPExpiry(t *testing.T) {
	f := newAuthFixture()
	ctx := context.Background()

	require.NoError(t, f.service.RequestOTP(ctx, "ravi@example.com"))
	code := f.sender.lastCode()

	f.advance(5*time.Minute + time.Second)

	_, err := f.service.VerifyOTP(ctx, &request.VerifyOTPRequest{Contact: "ravi@example.com", Code: code})
	assert.ErrorContains(t, err, "OTP expired")

	// The expired entry is gone; a retry reports nothing pending
	_, err = f.service.VerifyOTP(ctx, &request.VerifyOTPRequest{Contact: "ravi@example.com", Code: code})
	assert.ErrorContains(t, err, "no OTP pending")
}

func TestRequestOTPReplacesPriorPending(t *testing.T) {
	f := newAuthFixture()
	ctx := context.Background()

	require.NoError(t, f.service.RequestOTP(ctx, "ravi@example.com"))
	first := f.sender.lastCode()

	// Burn some attempts against the first code
	wrong := "000000"
	if wrong == first {
		wrong = "000001"
	}
	_, _ = f.service.VerifyOTP(ctx, &request.VerifyOTPRequest{Contact: "ravi@example.com", Code: wrong})

	// A fresh request resets the counter and invalidates the old code
	require.NoError(t, f.service.RequestOTP(ctx, "ravi@example.com"))
	second := f.sender.lastCode()

	entry, ok := f.service.pending.lookup("ravi@example.com")
	require.True(t, ok)
	assert.Equal(t, 0, entry.attempts)

	if first != second {
		_, err := f.service.VerifyOTP(ctx, &request.VerifyOTPRequest{Contact: "ravi@example.com", Code: first})
		assert.ErrorContains(t, err, "incorrect OTP")
	}
}

func TestAdminLogin(t *testing.T) {
	f := newAuthFixture()
	ctx := context.Background()

	hash, err := utils.HashPassword("s3cret-admin")
	require.NoError(t, err)
	f.service.config.Admin = utils.AdminConfig{
		Email:        "owner@electromart.in",
		PasswordHash: hash,
	}

	_, err = f.service.AdminLogin(ctx, &request.AdminLoginRequest{
		Email:    "owner@electromart.in",
		Password: "wrong-password",
	})
	assert.ErrorContains(t, err, "invalid credentials")

	resp, err := f.service.AdminLogin(ctx, &request.AdminLoginRequest{
		Email:    "Owner@Electromart.in",
		Password: "s3cret-admin",
	})
	require.NoError(t, err)
	assert.Equal(t, entity.RoleAdmin, resp.Role)
	assert.NotEmpty(t, resp.Token)
	assert.Equal(t, 1, f.users.count())

	// Second login reuses the account
	again, err := f.service.AdminLogin(ctx, &request.AdminLoginRequest{
		Email:    "owner@electromart.in",
		Password: "s3cret-admin",
	})
	require.NoError(t, err)
	assert.Equal(t, resp.UserID, again.UserID)
	assert.Equal(t, 1, f.users.count())
}

func TestAdminLoginWithoutConfiguredCredentials(t *testing.T) {
	f := newAuthFixture()

	_, err := f.service.AdminLogin(context.Background(), &request.AdminLoginRequest{
		Email:    "owner@electromart.in",
		Password: "whatever-123",
	})
	assert.ErrorContains(t, err, "invalid credentials")
}

func TestLogout(t *testing.T) {
	f := newAuthFixture()
	ctx := context.Background()

	assert.Error(t, f.service.Logout(ctx, "not-a-uuid"))

	token := uuid.New().String()
	require.NoError(t, f.service.Logout(ctx, token))
	assert.Equal(t, []string{token}, f.sessions.revoked)

	// Revoke failures are swallowed
	f.sessions.revokeErr = errors.New("store down")
	assert.NoError(t, f.service.Logout(ctx, uuid.New().String()))
}
