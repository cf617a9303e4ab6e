package auth

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"jobtrackr/internal/config"
	"jobtrackr/internal/denylist"
	domainUser "jobtrackr/internal/domain/user"
	"jobtrackr/internal/logger"
	appErrors "jobtrackr/pkg/errors"
	"jobtrackr/pkg/mailer"
	"jobtrackr/pkg/utils"
)

// Service implements the auth use cases: registration, login, profile,
// password change and the reset-token flow.
type Service struct {
	userRepo domainUser.Repository
	mailer   mailer.Mailer
	denylist *denylist.Denylist
	config   *config.Config

	// now is swapped out in tests to drive token expiry.
	now func() time.Time
}

// NewService creates a new auth service. deny may be nil, in which case
// logout is purely client-side.
func NewService(
	userRepo domainUser.Repository,
	m mailer.Mailer,
	deny *denylist.Denylist,
	cfg *config.Config,
) *Service {
	return &Service{
		userRepo: userRepo,
		mailer:   m,
		denylist: deny,
		config:   cfg,
		now:      time.Now,
	}
}

func (s *Service) Register(ctx context.Context, req *RegisterRequest) (*AuthResponse, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, appErrors.NewAppError("VALIDATION_ERROR", "Invalid input", err)
	}

	if err := utils.ValidatePassword(req.Password); err != nil {
		return nil, appErrors.NewAppError("WEAK_PASSWORD", err.Error(), nil)
	}

	existingUser, err := s.userRepo.GetByEmail(ctx, req.Email)
	if err != nil && !errors.Is(err, domainUser.ErrNotFound) {
		return nil, fmt.Errorf("failed to check existing user: %w", err)
	}
	if existingUser != nil {
		logger.Warn("Registration attempt with existing email",
			zap.String("email", req.Email),
			zap.String("event", "registration_failed_duplicate_email"),
		)
		return nil, appErrors.ErrEmailTaken
	}

	hashedPassword, err := utils.HashPassword(req.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &domainUser.User{
		Name:           req.Name,
		Email:          req.Email,
		PasswordHashed: hashedPassword,
		CreatedAt:      s.now(),
		UpdatedAt:      s.now(),
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		if errors.Is(err, domainUser.ErrEmailTaken) {
			return nil, appErrors.ErrEmailTaken
		}
		return nil, err
	}

	token, claims, err := utils.GenerateToken(user.ID, s.config.JWT.Secret, s.config.JWT.Lifetime)
	if err != nil {
		return nil, fmt.Errorf("failed to generate token: %w", err)
	}

	logger.Info("User registered successfully",
		zap.String("user_id", user.ID.String()),
		zap.String("email", user.Email),
		zap.String("event", "user_registered"),
	)

	return &AuthResponse{
		User:      ToUserResponse(user),
		Token:     token,
		ExpiresAt: claims.ExpiresAt.Unix(),
	}, nil
}

func (s *Service) Login(ctx context.Context, req *LoginRequest) (*AuthResponse, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, appErrors.NewAppError("VALIDATION_ERROR", "Invalid input", err)
	}

	user, err := s.userRepo.GetByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, domainUser.ErrNotFound) {
			logger.Warn("Login attempt with non-existent email",
				zap.String("email", req.Email),
				zap.String("event", "login_failed_unknown_email"),
			)
			// Same error as a wrong password so the two are
			// indistinguishable to the caller.
			return nil, appErrors.ErrInvalidCredentials
		}
		return nil, err
	}

	if !utils.CheckPassword(user.PasswordHashed, req.Password) {
		logger.Warn("Login attempt with invalid password",
			zap.String("user_id", user.ID.String()),
			zap.String("event", "login_failed_invalid_password"),
		)
		return nil, appErrors.ErrInvalidCredentials
	}

	token, claims, err := utils.GenerateToken(user.ID, s.config.JWT.Secret, s.config.JWT.Lifetime)
	if err != nil {
		return nil, fmt.Errorf("failed to generate token: %w", err)
	}

	logger.Info("User logged in successfully",
		zap.String("user_id", user.ID.String()),
		zap.String("event", "login_success"),
	)

	return &AuthResponse{
		User:      ToUserResponse(user),
		Token:     token,
		ExpiresAt: claims.ExpiresAt.Unix(),
	}, nil
}

func (s *Service) GetProfile(ctx context.Context, userID uuid.UUID) (*UserResponse, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, domainUser.ErrNotFound) {
			return nil, appErrors.ErrUserNotFound
		}
		return nil, err
	}

	return ToUserResponse(user), nil
}

func (s *Service) UpdateProfile(ctx context.Context, userID uuid.UUID, req *UpdateProfileRequest) (*UserResponse, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, appErrors.NewAppError("VALIDATION_ERROR", "Invalid input", err)
	}

	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, domainUser.ErrNotFound) {
			return nil, appErrors.ErrUserNotFound
		}
		return nil, err
	}

	if req.Name != nil {
		user.Name = *req.Name
	}
	user.UpdatedAt = s.now()

	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}

	return ToUserResponse(user), nil
}

func (s *Service) ChangePassword(ctx context.Context, userID uuid.UUID, req *ChangePasswordRequest) error {
	if err := utils.ValidateStruct(req); err != nil {
		return appErrors.NewAppError("VALIDATION_ERROR", "Invalid input", err)
	}

	if err := utils.ValidatePassword(req.NewPassword); err != nil {
		return appErrors.NewAppError("WEAK_PASSWORD", err.Error(), nil)
	}

	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, domainUser.ErrNotFound) {
			return appErrors.ErrUserNotFound
		}
		return err
	}

	if !utils.CheckPassword(user.PasswordHashed, req.OldPassword) {
		logger.Warn("Password change attempt with invalid old password",
			zap.String("user_id", user.ID.String()),
			zap.String("event", "password_change_failed_invalid_old_password"),
		)
		return appErrors.ErrInvalidCredentials
	}

	hashedPassword, err := utils.HashPassword(req.NewPassword)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	// UpdatePassword also clears any pending reset token.
	if err := s.userRepo.UpdatePassword(ctx, userID, hashedPassword); err != nil {
		return err
	}

	logger.Info("Password changed successfully",
		zap.String("user_id", user.ID.String()),
		zap.String("event", "password_change_success"),
	)

	return nil
}

// ForgotPassword runs the reset-token flow. It never reports whether the
// email is registered; the HTTP surface answers with the same generic
// message either way.
func (s *Service) ForgotPassword(ctx context.Context, req *ForgotPasswordRequest) error {
	if err := utils.ValidateStruct(req); err != nil {
		return appErrors.NewAppError("VALIDATION_ERROR", "Invalid input", err)
	}

	user, err := s.userRepo.GetByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, domainUser.ErrNotFound) {
			logger.Info("Password reset requested for non-existent email",
				zap.String("email", req.Email),
				zap.String("event", "password_reset_requested_unknown_email"),
			)
			return nil
		}
		return fmt.Errorf("failed to retrieve user: %w", err)
	}

	rawToken, tokenHash, err := utils.GenerateResetToken()
	if err != nil {
		return err
	}

	expiresAt := s.now().Add(s.config.Reset.TokenTTL)

	// Last write wins: a re-request overwrites the previous pair, so only
	// the most recently issued token stays valid.
	if err := s.userRepo.SetResetToken(ctx, user.ID, tokenHash, expiresAt); err != nil {
		return fmt.Errorf("failed to set reset token: %w", err)
	}

	logger.Info("Password reset token generated",
		zap.String("user_id", user.ID.String()),
		zap.Time("expires_at", expiresAt),
		zap.String("event", "password_reset_token_generated"),
	)

	s.deliverResetMail(user.Email, rawToken)

	return nil
}

// deliverResetMail sends the raw token out-of-band without blocking the
// request. Delivery failures are logged and never surfaced, so the HTTP
// response stays enumeration-safe.
func (s *Service) deliverResetMail(email, rawToken string) {
	resetURL := fmt.Sprintf("%s/reset-password?token=%s",
		s.config.Reset.BaseURL, url.QueryEscape(rawToken))

	timeout := s.config.SMTP.Timeout
	if timeout <= 0 {
		timeout = 5 * time.Second
	}

	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()

		if err := s.mailer.SendPasswordReset(ctx, email, resetURL); err != nil {
			logger.Error("Failed to deliver password reset mail",
				zap.String("email", email),
				zap.String("event", "password_reset_mail_failed"),
				zap.Error(err),
			)
		}
	}()
}

// ResetPassword completes the flow with the raw token from the emailed
// link. Wrong, unknown and expired tokens all fail identically with no hint
// about which user, if any, was involved.
func (s *Service) ResetPassword(ctx context.Context, rawToken string, req *ResetPasswordRequest) error {
	if rawToken == "" {
		return appErrors.ErrInvalidResetToken
	}

	if err := utils.ValidateStruct(req); err != nil {
		return appErrors.NewAppError("VALIDATION_ERROR", "Invalid input", err)
	}

	if err := utils.ValidatePassword(req.Password); err != nil {
		return appErrors.NewAppError("WEAK_PASSWORD", err.Error(), nil)
	}

	tokenHash := utils.HashResetToken(rawToken)

	user, err := s.userRepo.GetByResetTokenHash(ctx, tokenHash)
	if err != nil {
		if errors.Is(err, domainUser.ErrNotFound) {
			logger.Warn("Password reset attempt with unknown token",
				zap.String("event", "password_reset_failed_invalid_token"),
			)
			return appErrors.ErrInvalidResetToken
		}
		return err
	}

	if !user.HasPendingReset(s.now()) {
		// Lazy invalidation: the pair is cleared on the expiry-driven
		// rejection rather than by a background sweep.
		if err := s.userRepo.ClearResetToken(ctx, user.ID); err != nil {
			logger.Error("Failed to clear expired reset token",
				zap.String("user_id", user.ID.String()),
				zap.Error(err),
			)
		}
		logger.Warn("Password reset attempt with expired token",
			zap.String("user_id", user.ID.String()),
			zap.String("event", "password_reset_failed_expired_token"),
		)
		return appErrors.ErrInvalidResetToken
	}

	hashedPassword, err := utils.HashPassword(req.Password)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	// Clears the reset pair in the same write, making the token single-use.
	if err := s.userRepo.UpdatePassword(ctx, user.ID, hashedPassword); err != nil {
		return err
	}

	logger.Info("Password reset successfully",
		zap.String("user_id", user.ID.String()),
		zap.String("event", "password_reset_success"),
	)

	return nil
}

// Logout acknowledges unconditionally: tokens are stateless, so there is
// nothing to tear down server-side. When a denylist is configured and the
// presented token parses, its id is parked until the token would expire.
func (s *Service) Logout(ctx context.Context, rawToken string) {
	if rawToken == "" || s.denylist == nil {
		return
	}

	claims, err := utils.ValidateToken(rawToken, s.config.JWT.Secret)
	if err != nil {
		// Nothing to revoke; logout stays idempotent and silent.
		return
	}

	ttl := claims.ExpiresAt.Time.Sub(s.now())
	if err := s.denylist.Add(ctx, claims.ID, ttl); err != nil {
		logger.Error("Failed to denylist token on logout",
			zap.String("user_id", claims.UserID.String()),
			zap.Error(err),
		)
		return
	}

	logger.Info("Session token revoked on logout",
		zap.String("user_id", claims.UserID.String()),
		zap.String("event", "logout_token_revoked"),
	)
}
