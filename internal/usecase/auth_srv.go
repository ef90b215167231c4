package usecase

import (
	"context"
	"crypto/subtle"
	"fmt"
	"strings"
	"time"

	"electromart/internal/data/entity"
	"electromart/internal/data/repository"
	"electromart/internal/dto/request"
	"electromart/internal/dto/response"
	"electromart/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type AuthService interface {
	RequestOTP(ctx context.Context, contact string) error
	VerifyOTP(ctx context.Context, req *request.VerifyOTPRequest) (*response.AuthResponse, error)
	AdminLogin(ctx context.Context, req *request.AdminLoginRequest) (*response.AuthResponse, error)
	Logout(ctx context.Context, token string) error
	CurrentUser(ctx context.Context, userID uuid.UUID) (*response.UserResponse, error)
}

type authService struct {
	repo    *repository.Repository
	pending *pendingStore
	sender  OTPSender
	config  *utils.Config
	log     *zap.Logger
	now     func() time.Time
}

func NewAuthService(
	repo *repository.Repository,
	sender OTPSender,
	config *utils.Config,
	log *zap.Logger,
) AuthService {
	return &authService{
		repo:    repo,
		pending: newPendingStore(),
		sender:  sender,
		config:  config,
		log:     log.With(zap.String("service", "auth")),
		now:     time.Now,
	}
}

func (s *authService) RequestOTP(ctx context.Context, contact string) error {
	contact = utils.NormalizeContact(contact)

	kind, ok := utils.ClassifyContact(contact)
	if !ok {
		s.log.Warn("OTP requested for malformed contact", zap.String("contact", contact))
		return fmt.Errorf("validation failed: enter a valid email or 10-digit mobile number")
	}

	code := utils.GenerateOTP(s.config.OTP.Length)
	digest := utils.ContactDigest(contact, code)
	expiresAt := s.now().Add(time.Duration(s.config.OTP.ExpiryMinutes) * time.Minute)

	// Unconditionally replaces any prior pending verification for this
	// contact, resetting the attempt counter.
	s.pending.put(contact, digest, expiresAt)

	if err := s.sender.Send(ctx, contact, kind, code); err != nil {
		s.log.Error("Failed to send OTP",
			zap.Error(err),
			zap.String("contact", contact),
		)
		s.pending.clear(contact)
		return fmt.Errorf("failed to send OTP")
	}

	s.log.Info("OTP issued",
		zap.String("contact", contact),
		zap.String("kind", string(kind)),
		zap.Time("expires_at", expiresAt),
	)

	return nil
}

func (s *authService) VerifyOTP(ctx context.Context, req *request.VerifyOTPRequest) (*response.AuthResponse, error) {
	contact := utils.NormalizeContact(req.Contact)

	entry, ok := s.pending.lookup(contact)
	if !ok {
		// Distinct failure: verifying with the wrong contact must not
		// consume an attempt of some other pending verification.
		return nil, fmt.Errorf("no OTP pending for this contact, request a new OTP")
	}

	if s.now().After(entry.expiresAt) {
		s.pending.clear(contact)
		return nil, fmt.Errorf("OTP expired, request a new OTP")
	}

	if entry.attempts >= s.config.OTP.MaxAttempts {
		s.pending.clear(contact)
		return nil, fmt.Errorf("too many incorrect attempts, request a new OTP")
	}

	if len(req.Code) != s.config.OTP.Length || strings.Trim(req.Code, "0123456789") != "" {
		return nil, fmt.Errorf("validation failed: code must be exactly %d digits", s.config.OTP.Length)
	}

	digest := utils.ContactDigest(contact, req.Code)
	if subtle.ConstantTimeCompare([]byte(digest), []byte(entry.digest)) != 1 {
		attempts := s.pending.fail(contact)
		if attempts >= s.config.OTP.MaxAttempts {
			// Limit reached: drop the pending verification so even the
			// correct code cannot go through anymore.
			s.pending.clear(contact)
		}
		s.log.Warn("Incorrect OTP",
			zap.String("contact", contact),
			zap.Int("attempts", attempts),
		)
		return nil, fmt.Errorf("incorrect OTP")
	}

	// Single use: successful verification consumes the pending state.
	s.pending.clear(contact)

	kind, _ := utils.ClassifyContact(contact)

	user, err := s.findOrCreateUser(ctx, contact, kind)
	if err != nil {
		return nil, err
	}

	session, err := s.createSession(ctx, user.ID)
	if err != nil {
		s.log.Error("Failed to create session",
			zap.Error(err),
			zap.String("user_id", user.ID.String()),
		)
		return nil, fmt.Errorf("failed to create session")
	}

	s.log.Info("User logged in via OTP",
		zap.String("user_id", user.ID.String()),
		zap.String("kind", string(kind)),
	)

	resp := response.AuthToResponse(user, session)
	return &resp, nil
}

func (s *authService) AdminLogin(ctx context.Context, req *request.AdminLoginRequest) (*response.AuthResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Admin login validation failed", zap.Any("errors", errs))
		return nil, fmt.Errorf("validation failed: %s", utils.FormatValidationErrors(errs))
	}

	admin := s.config.Admin
	if admin.Email == "" || admin.PasswordHash == "" {
		s.log.Warn("Admin login attempted without configured credentials")
		return nil, fmt.Errorf("invalid credentials")
	}

	if !strings.EqualFold(req.Email, admin.Email) || !utils.CheckPasswordHash(req.Password, admin.PasswordHash) {
		s.log.Warn("Invalid admin credentials", zap.String("email", req.Email))
		return nil, fmt.Errorf("invalid credentials")
	}

	email := utils.NormalizeContact(admin.Email)
	user, err := s.repo.User.FindByEmail(ctx, email)
	if err != nil {
		s.log.Error("Failed to find admin user", zap.Error(err))
		return nil, fmt.Errorf("failed to find user")
	}

	if user == nil {
		now := s.now()
		user = &entity.User{
			Base: entity.Base{
				ID:        uuid.New(),
				CreatedAt: now,
				UpdatedAt: now,
			},
			Email:    &email,
			Role:     entity.RoleAdmin,
			Verified: true,
			IsActive: true,
		}
		if err := s.repo.User.Create(ctx, user); err != nil {
			s.log.Error("Failed to create admin user", zap.Error(err))
			return nil, fmt.Errorf("failed to create account")
		}
	} else if user.Role != entity.RoleAdmin {
		user.Role = entity.RoleAdmin
		user.UpdatedAt = s.now()
		if err := s.repo.User.Update(ctx, user); err != nil {
			s.log.Error("Failed to promote admin user", zap.Error(err))
			return nil, fmt.Errorf("failed to update account")
		}
	}

	session, err := s.createSession(ctx, user.ID)
	if err != nil {
		s.log.Error("Failed to create admin session",
			zap.Error(err),
			zap.String("user_id", user.ID.String()),
		)
		return nil, fmt.Errorf("failed to create session")
	}

	s.log.Info("Admin logged in", zap.String("user_id", user.ID.String()))

	resp := response.AuthToResponse(user, session)
	return &resp, nil
}

// Logout revokes the session best effort. Revoke failures are logged and
// swallowed: the client is logging out either way.
func (s *authService) Logout(ctx context.Context, token string) error {
	if _, err := uuid.Parse(token); err != nil {
		s.log.Warn("Invalid token format on logout", zap.Error(err))
		return fmt.Errorf("invalid token format")
	}

	if err := s.repo.Session.Revoke(ctx, token); err != nil {
		s.log.Warn("Failed to revoke session on logout", zap.Error(err))
		return nil
	}

	s.log.Info("User logged out")
	return nil
}

func (s *authService) CurrentUser(ctx context.Context, userID uuid.UUID) (*response.UserResponse, error) {
	user, err := s.repo.User.FindByID(ctx, userID)
	if err != nil {
		s.log.Error("Failed to load current user",
			zap.Error(err),
			zap.String("user_id", userID.String()),
		)
		return nil, fmt.Errorf("failed to find user")
	}
	if user == nil {
		return nil, fmt.Errorf("user not found")
	}

	resp := response.UserToResponse(user)
	return &resp, nil
}

// ==================== HELPER METHODS ====================

func (s *authService) findOrCreateUser(ctx context.Context, contact string, kind utils.ContactKind) (*entity.User, error) {
	var user *entity.User
	var err error

	switch kind {
	case utils.ContactEmail:
		user, err = s.repo.User.FindByEmail(ctx, contact)
	case utils.ContactPhone:
		user, err = s.repo.User.FindByPhone(ctx, contact)
	}
	if err != nil {
		s.log.Error("Failed to find user by contact", zap.Error(err))
		return nil, fmt.Errorf("failed to find user")
	}

	now := s.now()

	if user == nil {
		user = &entity.User{
			Base: entity.Base{
				ID:        uuid.New(),
				CreatedAt: now,
				UpdatedAt: now,
			},
			Role:     entity.RoleCustomer,
			Verified: true,
			IsActive: true,
		}
		if kind == utils.ContactEmail {
			user.Email = &contact
		} else {
			user.Phone = &contact
		}

		if err := s.repo.User.Create(ctx, user); err != nil {
			s.log.Error("Failed to create user", zap.Error(err))
			return nil, fmt.Errorf("failed to create account")
		}

		return user, nil
	}

	// Existing user: refresh the verified contact field
	if kind == utils.ContactEmail {
		user.Email = &contact
	} else {
		user.Phone = &contact
	}
	user.Verified = true
	user.UpdatedAt = now

	if err := s.repo.User.Update(ctx, user); err != nil {
		s.log.Error("Failed to update user after verification",
			zap.Error(err),
			zap.String("user_id", user.ID.String()),
		)
		return nil, fmt.Errorf("failed to update account")
	}

	return user, nil
}

func (s *authService) createSession(ctx context.Context, userID uuid.UUID) (*entity.Session, error) {
	session := &entity.Session{
		BaseSimple: entity.BaseSimple{
			ID:        uuid.New(),
			CreatedAt: s.now(),
		},
		UserID:    userID,
		Token:     uuid.New(),
		ExpiresAt: s.now().Add(24 * time.Hour),
	}

	if err := s.repo.Session.Create(ctx, session); err != nil {
		return nil, err
	}

	return session, nil
}
