package usecase

import (
	"context"
	"strings"
	"testing"
	"time"

	"kickstreet/internal/data/entity"
	"kickstreet/internal/dto/request"
	"kickstreet/pkg/mailer"
	"kickstreet/pkg/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func registerReq(email, phone string) *request.RegisterRequest {
	return &request.RegisterRequest{Name: "Asha", Email: email, Phone: phone, Password: "secret123"}
}

// registerVerified registers an account and confirms it with the mailed code.
func registerVerified(t *testing.T, f *fixture, email, phone string) {
	t.Helper()
	ctx := context.Background()

	_, err := f.svc.Auth.Register(ctx, registerReq(email, phone))
	require.NoError(t, err)
	require.NoError(t, f.svc.Auth.VerifyOTP(ctx, &request.VerifyOTPRequest{Email: email, OTP: f.mail.lastCode()}))
}

func TestAuth_RegisterStoresHashAndMailsCode(t *testing.T) {
	f := newFixture()

	user, err := f.svc.Auth.Register(context.Background(), registerReq("Asha@Example.com", "9876543210"))
	require.NoError(t, err)
	assert.Equal(t, "asha@example.com", user.Email)
	assert.False(t, user.IsVerified)
	assert.Equal(t, entity.RoleUser, user.Role)

	stored, _ := f.repo.User.FindByEmail(context.Background(), "asha@example.com")
	require.NotNil(t, stored)
	assert.NotEqual(t, "secret123", stored.PasswordHash)
	assert.True(t, utils.CheckPasswordHash("secret123", stored.PasswordHash))

	require.Len(t, f.mail.otps, 1)
	assert.Equal(t, mailer.PurposeVerify, f.mail.otps[0].Purpose)
	assert.Len(t, f.mail.otps[0].Code, 6)
	assert.Equal(t, *stored.OTP, f.mail.otps[0].Code)
}

func TestAuth_RegisterMailFailureLeavesNoAccount(t *testing.T) {
	f := newFixture()
	f.mail.fail = true

	_, err := f.svc.Auth.Register(context.Background(), registerReq("asha@example.com", "9876543210"))
	require.ErrorIs(t, err, ErrUpstream)

	n, _ := f.repo.User.CountAll(context.Background())
	assert.Zero(t, n)
}

func TestAuth_RegisterDuplicateEmail(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	_, err := f.svc.Auth.Register(ctx, registerReq("asha@example.com", "9876543210"))
	require.NoError(t, err)

	_, err = f.svc.Auth.Register(ctx, registerReq("ASHA@example.com", "9999999999"))
	assert.ErrorIs(t, err, ErrConflict)

	_, err = f.svc.Auth.Register(ctx, registerReq("other@example.com", "9876543210"))
	assert.ErrorIs(t, err, ErrConflict)
}

func TestAuth_RegisterValidation(t *testing.T) {
	f := newFixture()

	_, err := f.svc.Auth.Register(context.Background(), registerReq("not-an-email", "123"))
	require.ErrorIs(t, err, ErrValidation)

	var svcErr *Error
	require.ErrorAs(t, err, &svcErr)
	assert.Contains(t, svcErr.Fields, "Email")
	assert.Contains(t, svcErr.Fields, "Phone")

	// bcrypt only hashes the first 72 bytes
	long := registerReq("asha@example.com", "9876543210")
	long.Password = strings.Repeat("p", 80)
	_, err = f.svc.Auth.Register(context.Background(), long)
	require.ErrorIs(t, err, ErrValidation)
	require.ErrorAs(t, err, &svcErr)
	assert.Equal(t, "Maximum is 72", svcErr.Fields["Password"])

	n, _ := f.repo.User.CountAll(context.Background())
	assert.Zero(t, n)
}

func TestAuth_ResetPasswordTooLong(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	registerVerified(t, f, "asha@example.com", "9876543210")
	require.NoError(t, f.svc.Auth.ForgotPassword(ctx, "asha@example.com"))

	err := f.svc.Auth.ResetPassword(ctx, &request.ResetPasswordRequest{
		Email: "asha@example.com", OTP: f.mail.lastCode(), NewPassword: strings.Repeat("p", 73),
	})
	assert.ErrorIs(t, err, ErrValidation)
}

func TestAuth_LoginRequiresVerification(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	_, err := f.svc.Auth.Register(ctx, registerReq("asha@example.com", "9876543210"))
	require.NoError(t, err)

	_, err = f.svc.Auth.Login(ctx, &request.LoginRequest{Email: "asha@example.com", Password: "secret123"}, ClientInfo{})
	assert.ErrorIs(t, err, ErrNotVerified)
}

func TestAuth_LoginWrongPassword(t *testing.T) {
	f := newFixture()
	registerVerified(t, f, "asha@example.com", "9876543210")

	_, err := f.svc.Auth.Login(context.Background(), &request.LoginRequest{Email: "asha@example.com", Password: "nope"}, ClientInfo{})
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = f.svc.Auth.Login(context.Background(), &request.LoginRequest{Email: "ghost@example.com", Password: "secret123"}, ClientInfo{})
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestAuth_OTPExpiryBoundary(t *testing.T) {
	tests := []struct {
		name    string
		advance time.Duration
		wantErr error
	}{
		{name: "one second before expiry", advance: 5*time.Minute - time.Second},
		{name: "at expiry", advance: 5 * time.Minute, wantErr: ErrInvalidOrExpiredCode},
		{name: "one second after expiry", advance: 5*time.Minute + time.Second, wantErr: ErrInvalidOrExpiredCode},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture()
			ctx := context.Background()

			_, err := f.svc.Auth.Register(ctx, registerReq("asha@example.com", "9876543210"))
			require.NoError(t, err)

			f.now = f.now.Add(tt.advance)
			err = f.svc.Auth.VerifyOTP(ctx, &request.VerifyOTPRequest{Email: "asha@example.com", OTP: f.mail.lastCode()})
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestAuth_VerifyOTPWrongCodeAndAlreadyVerified(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	_, err := f.svc.Auth.Register(ctx, registerReq("asha@example.com", "9876543210"))
	require.NoError(t, err)

	wrong := "000000"
	if f.mail.lastCode() == wrong {
		wrong = "111111"
	}
	err = f.svc.Auth.VerifyOTP(ctx, &request.VerifyOTPRequest{Email: "asha@example.com", OTP: wrong})
	assert.ErrorIs(t, err, ErrInvalidOrExpiredCode)

	require.NoError(t, f.svc.Auth.VerifyOTP(ctx, &request.VerifyOTPRequest{Email: "asha@example.com", OTP: f.mail.lastCode()}))

	err = f.svc.Auth.VerifyOTP(ctx, &request.VerifyOTPRequest{Email: "asha@example.com", OTP: f.mail.lastCode()})
	assert.ErrorIs(t, err, ErrAlreadyVerified)

	assert.ErrorIs(t, f.svc.Auth.ResendOTP(ctx, "asha@example.com"), ErrAlreadyVerified)
}

func TestAuth_ResendOTPReplacesCode(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	_, err := f.svc.Auth.Register(ctx, registerReq("asha@example.com", "9876543210"))
	require.NoError(t, err)

	require.NoError(t, f.svc.Auth.ResendOTP(ctx, "asha@example.com"))
	require.Len(t, f.mail.otps, 2)

	stored, _ := f.repo.User.FindByEmail(ctx, "asha@example.com")
	assert.Equal(t, f.mail.lastCode(), *stored.OTP)

	assert.ErrorIs(t, f.svc.Auth.ResendOTP(ctx, "ghost@example.com"), ErrNotFound)
}

func TestAuth_LoginAuthenticateLogout(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	registerVerified(t, f, "asha@example.com", "9876543210")

	auth, err := f.svc.Auth.Login(ctx, &request.LoginRequest{Email: "asha@example.com", Password: "secret123"},
		ClientInfo{UserAgent: "test", IPAddress: "127.0.0.1"})
	require.NoError(t, err)
	require.NotEmpty(t, auth.Token)
	assert.True(t, auth.IsVerified)

	identity, err := f.svc.Auth.Authenticate(ctx, auth.Token)
	require.NoError(t, err)
	assert.Equal(t, auth.UserID, identity.UserID.String())
	assert.Equal(t, "user", identity.Role)
	assert.Equal(t, "asha@example.com", identity.Email)

	require.NoError(t, f.svc.Auth.Logout(ctx, identity.TokenID))

	_, err = f.svc.Auth.Authenticate(ctx, auth.Token)
	assert.ErrorIs(t, err, ErrUnauthorized)

	assert.ErrorIs(t, f.svc.Auth.Logout(ctx, identity.TokenID), ErrUnauthorized)
}

func TestAuth_AuthenticateRejectsGarbage(t *testing.T) {
	f := newFixture()

	_, err := f.svc.Auth.Authenticate(context.Background(), "not.a.token")
	assert.ErrorIs(t, err, ErrUnauthorized)
}

func TestAuth_ResetPasswordRevokesSessions(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	registerVerified(t, f, "asha@example.com", "9876543210")

	auth, err := f.svc.Auth.Login(ctx, &request.LoginRequest{Email: "asha@example.com", Password: "secret123"}, ClientInfo{})
	require.NoError(t, err)

	require.NoError(t, f.svc.Auth.ForgotPassword(ctx, "asha@example.com"))
	assert.Equal(t, mailer.PurposeReset, f.mail.otps[len(f.mail.otps)-1].Purpose)

	err = f.svc.Auth.ResetPassword(ctx, &request.ResetPasswordRequest{
		Email: "asha@example.com", OTP: f.mail.lastCode(), NewPassword: "newsecret1",
	})
	require.NoError(t, err)

	_, err = f.svc.Auth.Authenticate(ctx, auth.Token)
	assert.ErrorIs(t, err, ErrUnauthorized)

	_, err = f.svc.Auth.Login(ctx, &request.LoginRequest{Email: "asha@example.com", Password: "secret123"}, ClientInfo{})
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = f.svc.Auth.Login(ctx, &request.LoginRequest{Email: "asha@example.com", Password: "newsecret1"}, ClientInfo{})
	assert.NoError(t, err)

	// the code is single use
	err = f.svc.Auth.ResetPassword(ctx, &request.ResetPasswordRequest{
		Email: "asha@example.com", OTP: f.mail.lastCode(), NewPassword: "another1",
	})
	assert.ErrorIs(t, err, ErrInvalidOrExpiredCode)
}

func TestAuth_ResetPasswordRequiresVerifiedAccount(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	_, err := f.svc.Auth.Register(ctx, registerReq("asha@example.com", "9876543210"))
	require.NoError(t, err)
	code := f.mail.lastCode()

	err = f.svc.Auth.ResetPassword(ctx, &request.ResetPasswordRequest{
		Email: "asha@example.com", OTP: code, NewPassword: "newsecret1",
	})
	require.ErrorIs(t, err, ErrNotVerified)

	stored, _ := f.repo.User.FindByEmail(ctx, "asha@example.com")
	require.NotNil(t, stored)
	assert.False(t, stored.IsVerified)
	require.NotNil(t, stored.OTP)
	assert.Equal(t, code, *stored.OTP)
	assert.True(t, utils.CheckPasswordHash("secret123", stored.PasswordHash))

	// the verification code is still good for its purpose
	require.NoError(t, f.svc.Auth.VerifyOTP(ctx, &request.VerifyOTPRequest{Email: "asha@example.com", OTP: code}))
}

func TestAuth_OTPLengthFollowsConfig(t *testing.T) {
	f := newFixture()
	f.config.OTP.Length = 8
	ctx := context.Background()

	_, err := f.svc.Auth.Register(ctx, registerReq("asha@example.com", "9876543210"))
	require.NoError(t, err)
	code := f.mail.lastCode()
	require.Len(t, code, 8)

	err = f.svc.Auth.VerifyOTP(ctx, &request.VerifyOTPRequest{Email: "asha@example.com", OTP: code[:6]})
	require.ErrorIs(t, err, ErrValidation)
	var svcErr *Error
	require.ErrorAs(t, err, &svcErr)
	assert.Equal(t, "Must be exactly 8 characters", svcErr.Fields["OTP"])

	require.NoError(t, f.svc.Auth.VerifyOTP(ctx, &request.VerifyOTPRequest{Email: "asha@example.com", OTP: code}))
}

func TestAuth_ForgotPasswordUnknownEmailIsSilent(t *testing.T) {
	f := newFixture()

	require.NoError(t, f.svc.Auth.ForgotPassword(context.Background(), "ghost@example.com"))
	assert.Empty(t, f.mail.otps)
}

func TestAuthorize(t *testing.T) {
	tests := []struct {
		name     string
		role     entity.UserRole
		required entity.UserRole
		wantErr  error
	}{
		{"user on user route", entity.RoleUser, entity.RoleUser, nil},
		{"admin on user route", entity.RoleAdmin, entity.RoleUser, nil},
		{"admin on admin route", entity.RoleAdmin, entity.RoleAdmin, nil},
		{"user on admin route", entity.RoleUser, entity.RoleAdmin, ErrForbidden},
		{"unknown role", entity.UserRole("guest"), entity.RoleUser, ErrUnauthorized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Authorize(tt.role, tt.required)
			if tt.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}
