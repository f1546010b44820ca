package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"kickstreet/internal/data/entity"
	"kickstreet/internal/data/repository"
	"kickstreet/internal/dto/request"
	"kickstreet/internal/dto/response"
	"kickstreet/pkg/mailer"
	"kickstreet/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type AuthService interface {
	Register(ctx context.Context, req *request.RegisterRequest) (*response.UserResponse, error)
	VerifyOTP(ctx context.Context, req *request.VerifyOTPRequest) error
	ResendOTP(ctx context.Context, email string) error
	Login(ctx context.Context, req *request.LoginRequest, client ClientInfo) (*response.AuthResponse, error)
	Logout(ctx context.Context, tokenID string) error
	ForgotPassword(ctx context.Context, email string) error
	ResetPassword(ctx context.Context, req *request.ResetPasswordRequest) error
	// Authenticate checks the token signature and that its session was not revoked.
	Authenticate(ctx context.Context, token string) (utils.Identity, error)
}

// ClientInfo is stored with the session for auditing.
type ClientInfo struct {
	UserAgent string
	IPAddress string
}

// Authorize decides whether role may use a route guarded by required. An admin may use
// every user route.
func Authorize(role, required entity.UserRole) error {
	if !role.Valid() {
		return errorf(ErrUnauthorized, "authentication required")
	}
	if required == entity.RoleAdmin && role != entity.RoleAdmin {
		return errorf(ErrForbidden, "admin access required")
	}
	return nil
}

type authService struct {
	repo   *repository.Repository
	config *utils.Config
	deps   Deps
	log    *zap.Logger
}

func NewAuthService(repo *repository.Repository, config *utils.Config, deps Deps, log *zap.Logger) AuthService {
	return &authService{
		repo:   repo,
		config: config,
		deps:   deps,
		log:    log.With(zap.String("service", "auth")),
	}
}

func (s *authService) Register(ctx context.Context, req *request.RegisterRequest) (*response.UserResponse, error) {
	if err := validate(req); err != nil {
		s.log.Warn("Register validation failed", zap.Error(err))
		return nil, err
	}

	email := utils.NormalizeEmail(req.Email)

	existing, err := s.repo.User.FindByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, errorf(ErrConflict, "email already registered")
	}

	existing, err = s.repo.User.FindByPhone(ctx, req.Phone)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, errorf(ErrConflict, "phone already registered")
	}

	hash, err := utils.HashPassword(req.Password, s.config.Security.BcryptCost)
	if err != nil {
		s.log.Error("Failed to hash password", zap.Error(err))
		return nil, err
	}

	code, expiresAt, err := s.newOTP()
	if err != nil {
		return nil, err
	}

	// the account only exists once the code has been delivered
	if err := s.sendOTP(ctx, email, req.Name, code, mailer.PurposeVerify); err != nil {
		return nil, err
	}

	now := s.deps.Clock()
	user := &entity.User{
		Base: entity.Base{
			ID:        uuid.New(),
			CreatedAt: now,
			UpdatedAt: now,
		},
		Name:         req.Name,
		Email:        email,
		Phone:        req.Phone,
		PasswordHash: hash,
		Role:         entity.RoleUser,
		OTP:          &code,
		OTPExpiresAt: &expiresAt,
	}

	if err := s.repo.User.Create(ctx, user); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, errorf(ErrConflict, "email or phone already registered")
		}
		return nil, err
	}

	s.log.Info("User registered", zap.String("user_id", user.ID.String()), zap.String("email", email))

	resp := response.UserToResponse(user)
	return &resp, nil
}

func (s *authService) VerifyOTP(ctx context.Context, req *request.VerifyOTPRequest) error {
	if err := validate(req); err != nil {
		return err
	}
	if err := s.checkOTPLength(req.OTP); err != nil {
		return err
	}

	user, err := s.repo.User.FindByEmail(ctx, utils.NormalizeEmail(req.Email))
	if err != nil {
		return err
	}
	if user == nil {
		return errorf(ErrNotFound, "user not found")
	}
	if user.IsVerified {
		return errorf(ErrAlreadyVerified, "account already verified")
	}

	if !user.OTPMatches(req.OTP, s.deps.Clock()) {
		s.log.Warn("OTP rejected", zap.String("user_id", user.ID.String()))
		return errorf(ErrInvalidOrExpiredCode, "invalid or expired OTP")
	}

	if err := s.repo.User.MarkVerified(ctx, user.ID); err != nil {
		return err
	}

	s.log.Info("Email verified", zap.String("user_id", user.ID.String()))
	return nil
}

func (s *authService) ResendOTP(ctx context.Context, email string) error {
	user, err := s.repo.User.FindByEmail(ctx, utils.NormalizeEmail(email))
	if err != nil {
		return err
	}
	if user == nil {
		return errorf(ErrNotFound, "user not found")
	}
	if user.IsVerified {
		return errorf(ErrAlreadyVerified, "account already verified")
	}

	return s.issueOTP(ctx, user, mailer.PurposeVerify)
}

func (s *authService) Login(ctx context.Context, req *request.LoginRequest, client ClientInfo) (*response.AuthResponse, error) {
	if err := validate(req); err != nil {
		return nil, err
	}

	user, err := s.repo.User.FindByEmail(ctx, utils.NormalizeEmail(req.Email))
	if err != nil {
		return nil, err
	}
	if user == nil || !utils.CheckPasswordHash(req.Password, user.PasswordHash) {
		s.log.Warn("Login rejected", zap.String("email", req.Email))
		return nil, errorf(ErrInvalidCredentials, "invalid email or password")
	}
	if !user.IsVerified {
		return nil, errorf(ErrNotVerified, "please verify your email before logging in")
	}

	now := s.deps.Clock()
	token, tokenID, expiresAt, err := s.deps.Tokens.Issue(utils.Identity{
		UserID: user.ID,
		Role:   string(user.Role),
		Email:  user.Email,
		Phone:  user.Phone,
	}, now)
	if err != nil {
		s.log.Error("Failed to issue token", zap.Error(err), zap.String("user_id", user.ID.String()))
		return nil, err
	}

	session := &entity.Session{
		BaseSimple: entity.BaseSimple{ID: uuid.New(), CreatedAt: now},
		UserID:     user.ID,
		TokenID:    tokenID,
		ExpiresAt:  expiresAt,
	}
	if client.UserAgent != "" {
		session.UserAgent = &client.UserAgent
	}
	if client.IPAddress != "" {
		session.IPAddress = &client.IPAddress
	}

	if err := s.repo.Session.Create(ctx, session); err != nil {
		return nil, err
	}

	s.log.Info("User logged in", zap.String("user_id", user.ID.String()))

	resp := response.AuthToResponse(user, token, expiresAt)
	return &resp, nil
}

func (s *authService) Logout(ctx context.Context, tokenID string) error {
	if err := s.repo.Session.Revoke(ctx, tokenID); err != nil {
		s.log.Warn("Failed to revoke session", zap.Error(err))
		return errorf(ErrUnauthorized, "session already ended")
	}
	return nil
}

func (s *authService) ForgotPassword(ctx context.Context, email string) error {
	user, err := s.repo.User.FindByEmail(ctx, utils.NormalizeEmail(email))
	if err != nil {
		return err
	}
	if user == nil {
		// unknown emails get the same answer as known ones
		s.log.Info("Password reset requested for unknown email")
		return nil
	}
	if !user.IsVerified {
		return errorf(ErrNotVerified, "please verify your email first")
	}

	return s.issueOTP(ctx, user, mailer.PurposeReset)
}

func (s *authService) ResetPassword(ctx context.Context, req *request.ResetPasswordRequest) error {
	if err := validate(req); err != nil {
		return err
	}
	if err := s.checkOTPLength(req.OTP); err != nil {
		return err
	}

	user, err := s.repo.User.FindByEmail(ctx, utils.NormalizeEmail(req.Email))
	if err != nil {
		return err
	}
	if user == nil {
		return errorf(ErrInvalidOrExpiredCode, "invalid or expired OTP")
	}
	// a verification code must not be spent on a reset
	if !user.IsVerified {
		return errorf(ErrNotVerified, "please verify your email first")
	}
	if !user.OTPMatches(req.OTP, s.deps.Clock()) {
		return errorf(ErrInvalidOrExpiredCode, "invalid or expired OTP")
	}

	hash, err := utils.HashPassword(req.NewPassword, s.config.Security.BcryptCost)
	if err != nil {
		return err
	}

	err = s.repo.Tx.WithinTx(ctx, func(tx *repository.Repository) error {
		if err := tx.User.ResetPassword(ctx, user.ID, hash); err != nil {
			return err
		}
		return tx.Session.RevokeAllUserSessions(ctx, user.ID)
	})
	if err != nil {
		return err
	}

	s.log.Info("Password reset", zap.String("user_id", user.ID.String()))
	return nil
}

func (s *authService) Authenticate(ctx context.Context, token string) (utils.Identity, error) {
	id, err := s.deps.Tokens.Parse(token)
	if err != nil {
		return utils.Identity{}, errorf(ErrUnauthorized, "invalid or expired token")
	}

	session, err := s.repo.Session.FindValidSession(ctx, id.TokenID)
	if err != nil {
		return utils.Identity{}, err
	}
	if session == nil || session.UserID != id.UserID {
		return utils.Identity{}, errorf(ErrUnauthorized, "session expired, please log in again")
	}

	return id, nil
}

// ==================== HELPER METHODS ====================

// checkOTPLength rejects codes that cannot have been issued under the configured length.
func (s *authService) checkOTPLength(code string) error {
	length := s.config.OTP.Length
	if length <= 0 {
		length = utils.DefaultOTPLength
	}
	if len(code) == length {
		return nil
	}

	msg := fmt.Sprintf("Must be exactly %d characters", length)
	return &Error{
		Kind:    ErrValidation,
		Message: "validation failed: OTP: " + msg,
		Fields:  map[string]string{"OTP": msg},
	}
}

func (s *authService) newOTP() (string, time.Time, error) {
	code, err := utils.GenerateOTP(s.config.OTP.Length)
	if err != nil {
		return "", time.Time{}, err
	}
	return code, utils.OTPExpiry(s.deps.Clock(), s.config.OTP.ExpiryMinutes), nil
}

// issueOTP stores a fresh code on the user and mails it.
func (s *authService) issueOTP(ctx context.Context, user *entity.User, purpose mailer.Purpose) error {
	code, expiresAt, err := s.newOTP()
	if err != nil {
		return err
	}

	if err := s.repo.User.SetOTP(ctx, user.ID, code, expiresAt); err != nil {
		return err
	}

	return s.sendOTP(ctx, user.Email, user.Name, code, purpose)
}

func (s *authService) sendOTP(ctx context.Context, email, name, code string, purpose mailer.Purpose) error {
	if s.config.App.Debug {
		s.log.Debug("OTP generated", zap.String("email", email), zap.String("otp_code", code))
	}

	err := s.deps.Mailer.SendOTP(ctx, mailer.OTPMessage{
		To:        email,
		Name:      name,
		Code:      code,
		Purpose:   purpose,
		ExpiresIn: time.Duration(s.config.OTP.ExpiryMinutes) * time.Minute,
	})
	if err != nil {
		s.log.Error("Failed to send OTP", zap.Error(err), zap.String("email", email))
		return errorf(ErrUpstream, "could not send the verification email, please try again")
	}
	return nil
}
