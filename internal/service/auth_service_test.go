package service

import (
	"context"
	"testing"
	"time"

	"winetour-be/internal/dto"
	"winetour-be/internal/pkg/apperror"
	"winetour-be/internal/repository/specification"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// waitForOTP polls the recording mailer; Register sends the mail from a
// goroutine after committing.
func waitForOTP(t *testing.T, mail *recordingMailer, email string) string {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		mail.mu.Lock()
		otp, ok := mail.otps[email]
		mail.mu.Unlock()
		if ok {
			return otp
		}
		time.Sleep(10 * time.Millisecond)
	}
	t.Fatalf("no OTP mail for %s", email)
	return ""
}

func TestRegisterVerifyLogin(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	resp, err := f.auth.Register(ctx, &dto.RegisterRequest{
		Email:    "new@example.com",
		Password: "secret123",
		FullName: "New Taster",
	})
	require.NoError(t, err)
	assert.Equal(t, "new@example.com", resp.Email)

	// Unverified accounts cannot log in yet.
	_, err = f.auth.Login(ctx, &dto.LoginRequest{Email: "new@example.com", Password: "secret123"}, "1.2.3.4", "test")
	assert.True(t, apperror.IsCode(err, apperror.CodeUnauthorized), "got %v", err)

	otp := waitForOTP(t, f.mailer, "new@example.com")
	require.NoError(t, f.auth.VerifyEmail(ctx, &dto.VerifyEmailRequest{Email: "new@example.com", Token: otp}))

	login, err := f.auth.Login(ctx, &dto.LoginRequest{Email: "new@example.com", Password: "secret123"}, "1.2.3.4", "test")
	require.NoError(t, err)
	assert.NotEmpty(t, login.AccessToken)
	assert.Empty(t, login.RefreshToken) // no remember-me
	assert.Equal(t, "user", login.User.Role)

	// Duplicate registration for the same address.
	_, err = f.auth.Register(ctx, &dto.RegisterRequest{
		Email:    "new@example.com",
		Password: "other",
		FullName: "Impostor",
	})
	assert.True(t, apperror.IsCode(err, apperror.CodeValidation), "got %v", err)
}

func TestVerifyEmailWrongOTP(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.auth.Register(ctx, &dto.RegisterRequest{
		Email:    "typo@example.com",
		Password: "secret123",
		FullName: "Fat Fingers",
	})
	require.NoError(t, err)

	err = f.auth.VerifyEmail(ctx, &dto.VerifyEmailRequest{Email: "typo@example.com", Token: "000000"})
	// A wildly unlucky random collision aside, this is the wrong code.
	if !apperror.IsCode(err, apperror.CodeValidation) {
		t.Fatalf("got %v, want VALIDATION_ERROR", err)
	}
}

func TestLoginWrongPassword(t *testing.T) {
	f := newFixture(t)
	user := f.seedUser(t, "known@example.com")

	_, err := f.auth.Login(context.Background(), &dto.LoginRequest{Email: user.Email, Password: "wrong"}, "", "")
	assert.True(t, apperror.IsCode(err, apperror.CodeUnauthorized), "got %v", err)

	_, err = f.auth.Login(context.Background(), &dto.LoginRequest{Email: "nobody@example.com", Password: "wrong"}, "", "")
	assert.True(t, apperror.IsCode(err, apperror.CodeUnauthorized), "got %v", err)
}

func TestLoginAdminRequiresAdminRole(t *testing.T) {
	f := newFixture(t)
	user := f.seedUser(t, "plain@example.com")

	_, err := f.auth.LoginAdmin(context.Background(), &dto.LoginRequest{Email: user.Email, Password: "secret123"}, "", "")
	assert.True(t, apperror.IsCode(err, apperror.CodeUnauthorized), "got %v", err)
}

func TestRememberMeIssuesRefreshToken(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	user := f.seedUser(t, "remember@example.com")

	login, err := f.auth.Login(ctx, &dto.LoginRequest{
		Email: user.Email, Password: "secret123", RememberMe: true,
	}, "10.0.0.1", "test-agent")
	require.NoError(t, err)
	require.NotEmpty(t, login.RefreshToken)

	require.NoError(t, f.auth.Logout(ctx, login.RefreshToken))
}

func TestPasswordResetFlow(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	user := f.seedUser(t, "forgot@example.com")

	require.NoError(t, f.auth.ForgotPassword(ctx, &dto.ForgotPasswordRequest{Email: user.Email}))

	// Unknown addresses are acknowledged identically.
	require.NoError(t, f.auth.ForgotPassword(ctx, &dto.ForgotPasswordRequest{Email: "ghost@example.com"}))

	token, err := f.repos.Users.FindPasswordResetToken(ctx, specification.OwnedBy{UserID: user.Id})
	require.NoError(t, err)
	require.NotNil(t, token)

	require.NoError(t, f.auth.ResetPassword(ctx, &dto.ResetPasswordRequest{
		Token: token.Token, NewPassword: "brandnew1",
	}))

	// Old password dead, new one works.
	_, err = f.auth.Login(ctx, &dto.LoginRequest{Email: user.Email, Password: "secret123"}, "", "")
	assert.True(t, apperror.IsCode(err, apperror.CodeUnauthorized), "got %v", err)
	_, err = f.auth.Login(ctx, &dto.LoginRequest{Email: user.Email, Password: "brandnew1"}, "", "")
	require.NoError(t, err)

	// The token is single-use.
	err = f.auth.ResetPassword(ctx, &dto.ResetPasswordRequest{Token: token.Token, NewPassword: "again"})
	assert.True(t, apperror.IsCode(err, apperror.CodeValidation), "got %v", err)
}
