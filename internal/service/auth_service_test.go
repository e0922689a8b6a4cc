package service

import (
	"context"
	"errors"
	"testing"

	"go-safecity-ws/internal/model"
)

func seedUser(t *testing.T, repo *fakeUserRepo, email, password string, role model.UserRole) *model.User {
	t.Helper()

	user := &model.User{
		Name:     "Test User",
		Email:    email,
		Role:     role,
		IsActive: true,
	}
	if err := user.SetPassword(password); err != nil {
		t.Fatalf("SetPassword: %v", err)
	}
	if err := repo.Create(user); err != nil {
		t.Fatalf("Create: %v", err)
	}
	return user
}

func TestSignIn(t *testing.T) {
	repo := newFakeUserRepo()
	seedUser(t, repo, "officer@safecity.gov.in", "secret123", model.RoleOfficer)

	svc := NewAuthService(repo, newFakeOTPStore())

	resp, err := svc.SignIn("officer@safecity.gov.in", "secret123")
	if err != nil {
		t.Fatalf("SignIn failed: %v", err)
	}
	if resp.Token == "" {
		t.Error("expected a token")
	}
	if len(resp.Roles) != 1 || resp.Roles[0] != "ROLE_OFFICER" {
		t.Errorf("Roles = %v, want [ROLE_OFFICER]", resp.Roles)
	}
}

func TestSignInRotatesTokenVersion(t *testing.T) {
	repo := newFakeUserRepo()
	user := seedUser(t, repo, "a@b.c", "secret123", model.RoleUser)

	svc := NewAuthService(repo, newFakeOTPStore())

	if _, err := svc.SignIn("a@b.c", "secret123"); err != nil {
		t.Fatalf("first SignIn failed: %v", err)
	}
	first, _ := repo.FindByID(user.ID)

	if _, err := svc.SignIn("a@b.c", "secret123"); err != nil {
		t.Fatalf("second SignIn failed: %v", err)
	}
	second, _ := repo.FindByID(user.ID)

	if first.TokenVersion == second.TokenVersion {
		t.Error("token version should rotate on every sign-in")
	}
}

func TestSignInWrongPassword(t *testing.T) {
	repo := newFakeUserRepo()
	seedUser(t, repo, "a@b.c", "secret123", model.RoleUser)

	svc := NewAuthService(repo, newFakeOTPStore())

	if _, err := svc.SignIn("a@b.c", "wrong"); !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("err = %v, want ErrInvalidCredentials", err)
	}
}

func TestSignInInactiveUser(t *testing.T) {
	repo := newFakeUserRepo()
	user := seedUser(t, repo, "a@b.c", "secret123", model.RoleUser)
	user.IsActive = false
	repo.Update(user)

	svc := NewAuthService(repo, newFakeOTPStore())

	if _, err := svc.SignIn("a@b.c", "secret123"); !errors.Is(err, ErrUserInactive) {
		t.Errorf("err = %v, want ErrUserInactive", err)
	}
}

func TestSignUpDuplicateEmail(t *testing.T) {
	repo := newFakeUserRepo()
	seedUser(t, repo, "taken@b.c", "secret123", model.RoleUser)

	svc := NewAuthService(repo, newFakeOTPStore())

	_, err := svc.SignUp(&SignUpRequest{
		Name:     "Second",
		Email:    "taken@b.c",
		Password: "secret456",
	})
	if !errors.Is(err, ErrEmailTaken) {
		t.Errorf("err = %v, want ErrEmailTaken", err)
	}
}

func TestSignUpRejectsUnknownRole(t *testing.T) {
	svc := NewAuthService(newFakeUserRepo(), newFakeOTPStore())

	_, err := svc.SignUp(&SignUpRequest{
		Name:     "X",
		Email:    "x@b.c",
		Password: "secret123",
		Role:     "SUPERADMIN",
	})
	if err == nil {
		t.Error("expected unknown role to be rejected")
	}
}

func TestSignInAnonymously(t *testing.T) {
	repo := newFakeUserRepo()
	svc := NewAuthService(repo, newFakeOTPStore())

	resp, err := svc.SignInAnonymously()
	if err != nil {
		t.Fatalf("SignInAnonymously failed: %v", err)
	}
	if resp.Token == "" {
		t.Error("expected a token")
	}
	if resp.Email != "" {
		t.Errorf("anonymous session exposed email %q", resp.Email)
	}
	if len(resp.Roles) != 1 || resp.Roles[0] != "ROLE_USER" {
		t.Errorf("Roles = %v, want [ROLE_USER]", resp.Roles)
	}

	user, err := repo.FindByID(resp.ID)
	if err != nil {
		t.Fatalf("anonymous user not persisted: %v", err)
	}
	if !user.Anonymous {
		t.Error("backing user should be flagged anonymous")
	}
}

func TestAadhaarOTPFlow(t *testing.T) {
	repo := newFakeUserRepo()
	otps := newFakeOTPStore()

	const aadhaar = "234567890123"
	user := seedUser(t, repo, "citizen@b.c", "secret123", model.RoleUser)
	user.AadhaarNumber = aadhaar
	repo.Update(user)

	svc := NewAuthService(repo, otps)
	ctx := context.Background()

	if err := svc.RequestAadhaarOTP(ctx, aadhaar); err != nil {
		t.Fatalf("RequestAadhaarOTP failed: %v", err)
	}

	otp := otps.codes[aadhaar]
	if len(otp) != 6 {
		t.Fatalf("OTP = %q, want 6 digits", otp)
	}

	resp, err := svc.VerifyAadhaarOTP(ctx, aadhaar, otp)
	if err != nil {
		t.Fatalf("VerifyAadhaarOTP failed: %v", err)
	}
	if !resp.AadharVerified {
		t.Error("aadharVerified should be true after Aadhaar login")
	}

	// Codes are single-use.
	if _, err := svc.VerifyAadhaarOTP(ctx, aadhaar, otp); !errors.Is(err, ErrInvalidOTP) {
		t.Errorf("second verify err = %v, want ErrInvalidOTP", err)
	}
}

func TestRequestAadhaarOTPBadFormat(t *testing.T) {
	svc := NewAuthService(newFakeUserRepo(), newFakeOTPStore())

	// Aadhaar numbers are 12 digits and never start with 0 or 1.
	for _, number := range []string{"", "12345", "123456789012", "034567890123", "23456789012a"} {
		if err := svc.RequestAadhaarOTP(context.Background(), number); !errors.Is(err, ErrInvalidAadhaar) {
			t.Errorf("RequestAadhaarOTP(%q) err = %v, want ErrInvalidAadhaar", number, err)
		}
	}
}

func TestRequestAadhaarOTPUnregistered(t *testing.T) {
	svc := NewAuthService(newFakeUserRepo(), newFakeOTPStore())

	err := svc.RequestAadhaarOTP(context.Background(), "234567890123")
	if !errors.Is(err, ErrAadhaarNotRegistered) {
		t.Errorf("err = %v, want ErrAadhaarNotRegistered", err)
	}
}

func TestVerifyAadhaarOTPWrongCode(t *testing.T) {
	repo := newFakeUserRepo()
	otps := newFakeOTPStore()

	const aadhaar = "234567890123"
	user := seedUser(t, repo, "citizen@b.c", "secret123", model.RoleUser)
	user.AadhaarNumber = aadhaar
	repo.Update(user)

	svc := NewAuthService(repo, otps)
	ctx := context.Background()

	if err := svc.RequestAadhaarOTP(ctx, aadhaar); err != nil {
		t.Fatalf("RequestAadhaarOTP failed: %v", err)
	}

	if _, err := svc.VerifyAadhaarOTP(ctx, aadhaar, "000000"); !errors.Is(err, ErrInvalidOTP) {
		t.Errorf("err = %v, want ErrInvalidOTP", err)
	}
}
