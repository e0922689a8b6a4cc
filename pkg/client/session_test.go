package client

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
)

const testToken = "test-token-1"

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()

	mux := http.NewServeMux()

	mux.HandleFunc("/api/auth/signin", func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			Email    string `json:"email"`
			Password string `json:"password"`
		}
		json.NewDecoder(r.Body).Decode(&req)

		if req.Email != "officer@safecity.gov.in" || req.Password != "secret123" {
			w.WriteHeader(http.StatusUnauthorized)
			json.NewEncoder(w).Encode(map[string]string{"error": "invalid email or password"})
			return
		}
		json.NewEncoder(w).Encode(Credentials{
			Token: testToken,
			ID:    uuid.New(),
			Name:  "Officer Singh",
			Email: req.Email,
			Roles: []string{"ROLE_OFFICER"},
			Badge: "PB-1021",
		})
	})

	mux.HandleFunc("/api/auth/signup", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(Credentials{
			Token: testToken,
			ID:    uuid.New(),
			Roles: []string{"ROLE_USER"},
		})
	})

	mux.HandleFunc("/api/auth/aadhaar-login/request-otp", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]string{"message": "OTP sent"})
	})

	mux.HandleFunc("/api/auth/aadhaar-login/verify-otp", func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			OTP string `json:"otp"`
		}
		json.NewDecoder(r.Body).Decode(&req)
		if req.OTP != "123456" {
			w.WriteHeader(http.StatusUnauthorized)
			json.NewEncoder(w).Encode(map[string]string{"error": "invalid or expired otp"})
			return
		}
		json.NewEncoder(w).Encode(Credentials{
			Token:          testToken,
			ID:             uuid.New(),
			Name:           "Citizen",
			Roles:          []string{"ROLE_USER"},
			AadharVerified: true,
		})
	})

	mux.HandleFunc("/api/auth/anonymous", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(Credentials{
			Token: testToken,
			ID:    uuid.New(),
			Name:  "Anonymous-1a2b3c4d",
			Roles: []string{"ROLE_USER"},
		})
	})

	mux.HandleFunc("/api/auth/user", func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Bearer "+testToken {
			w.WriteHeader(http.StatusUnauthorized)
			json.NewEncoder(w).Encode(map[string]string{"error": "Session expired"})
			return
		}
		json.NewEncoder(w).Encode(map[string]string{"name": "Officer Singh"})
	})

	mux.HandleFunc("/api/reports", func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Bearer "+testToken {
			w.WriteHeader(http.StatusUnauthorized)
			json.NewEncoder(w).Encode(map[string]string{"error": "Session expired"})
			return
		}
		json.NewEncoder(w).Encode(map[string]any{"content": []any{}})
	})

	mux.HandleFunc("/api/users", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
		json.NewEncoder(w).Encode(map[string]string{"error": "Forbidden: missing capability"})
	})

	return httptest.NewServer(mux)
}

func TestLoginGrantsOfficerPermissions(t *testing.T) {
	srv := newTestServer(t)
	defer srv.Close()

	store := NewMemoryStore()
	session := NewSession(srv.URL, store)

	creds, err := session.Login(context.Background(), "officer@safecity.gov.in", "secret123")
	if err != nil {
		t.Fatalf("Login failed: %v", err)
	}
	if creds.Token != testToken {
		t.Errorf("Token = %q", creds.Token)
	}

	perms := session.Permissions()
	if !perms.CanApproveReports {
		t.Error("officer should be able to approve reports")
	}
	if perms.CanManageUsers {
		t.Error("officer must not manage users")
	}

	saved, err := store.Load()
	if err != nil {
		t.Fatalf("credentials not persisted: %v", err)
	}
	if saved.Token != testToken {
		t.Errorf("persisted token = %q", saved.Token)
	}
}

func TestLoginWrongPassword(t *testing.T) {
	srv := newTestServer(t)
	defer srv.Close()

	session := NewSession(srv.URL, NewMemoryStore())

	_, err := session.Login(context.Background(), "officer@safecity.gov.in", "wrong")
	var authErr *AuthError
	if !errors.As(err, &authErr) {
		t.Errorf("err = %v, want AuthError", err)
	}
	if session.Current() != nil {
		t.Error("failed login must not leave a session behind")
	}
}

func TestLoginRejectsUnknownRole(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(Credentials{
			Token: testToken,
			ID:    uuid.New(),
			Roles: []string{"ROLE_SUPERVISOR"},
		})
	}))
	defer srv.Close()

	session := NewSession(srv.URL, NewMemoryStore())

	if _, err := session.Login(context.Background(), "a@b.c", "x"); err == nil {
		t.Error("unknown role string should fail the login")
	}
	if session.Current() != nil {
		t.Error("session must stay logged out after a malformed role")
	}
}

func TestRegisterDoesNotAuthenticate(t *testing.T) {
	srv := newTestServer(t)
	defer srv.Close()

	session := NewSession(srv.URL, NewMemoryStore())

	err := session.Register(context.Background(), &RegisterRequest{
		Name:     "New Citizen",
		Email:    "new@b.c",
		Password: "secret123",
	})
	if err != nil {
		t.Fatalf("Register failed: %v", err)
	}
	if session.Authenticated() {
		t.Error("Register must not open a session")
	}
}

func TestLoginWithAadhaar(t *testing.T) {
	srv := newTestServer(t)
	defer srv.Close()

	session := NewSession(srv.URL, NewMemoryStore())
	ctx := context.Background()

	if err := session.RequestAadhaarOTP(ctx, "234567890123"); err != nil {
		t.Fatalf("RequestAadhaarOTP failed: %v", err)
	}

	if _, err := session.LoginWithAadhaar(ctx, "234567890123", "000000"); err == nil {
		t.Error("wrong OTP should fail")
	}
	if session.Authenticated() {
		t.Error("failed OTP login must not open a session")
	}

	creds, err := session.LoginWithAadhaar(ctx, "234567890123", "123456")
	if err != nil {
		t.Fatalf("LoginWithAadhaar failed: %v", err)
	}
	if !creds.AadharVerified {
		t.Error("aadharVerified should be true")
	}
	if !session.Authenticated() {
		t.Error("session should be active")
	}
}

func TestLoginAnonymously(t *testing.T) {
	srv := newTestServer(t)
	defer srv.Close()

	session := NewSession(srv.URL, NewMemoryStore())

	creds, err := session.LoginAnonymously(context.Background())
	if err != nil {
		t.Fatalf("LoginAnonymously failed: %v", err)
	}
	if creds.Email != "" {
		t.Errorf("anonymous credentials expose email %q", creds.Email)
	}

	perms := session.Permissions()
	if !perms.CanViewMap || perms.CanApproveReports {
		t.Errorf("anonymous session has wrong permissions: %+v", perms)
	}
}

func TestLogoutClearsStore(t *testing.T) {
	srv := newTestServer(t)
	defer srv.Close()

	store := NewMemoryStore()
	session := NewSession(srv.URL, store)

	if _, err := session.Login(context.Background(), "officer@safecity.gov.in", "secret123"); err != nil {
		t.Fatalf("Login failed: %v", err)
	}
	if err := session.Logout(); err != nil {
		t.Fatalf("Logout failed: %v", err)
	}

	if session.Current() != nil {
		t.Error("Current() should be nil after logout")
	}
	if _, err := store.Load(); !errors.Is(err, ErrNoCredentials) {
		t.Errorf("store.Load() err = %v, want ErrNoCredentials", err)
	}
	if p := session.Permissions(); p.CanViewMap || p.CanViewReports {
		t.Errorf("logged-out permissions = %+v, want all false", p)
	}
}

func TestRestore(t *testing.T) {
	srv := newTestServer(t)
	defer srv.Close()

	store := NewMemoryStore()
	store.Save(&Credentials{Token: testToken, Name: "Officer Singh", Roles: []string{"ROLE_OFFICER"}})

	session := NewSession(srv.URL, store)

	creds, err := session.Restore(context.Background())
	if err != nil {
		t.Fatalf("Restore failed: %v", err)
	}
	if creds.Name != "Officer Singh" {
		t.Errorf("Name = %q", creds.Name)
	}
	if !session.Permissions().CanApproveReports {
		t.Error("restored officer session should approve reports")
	}
}

func TestRestoreExpiredSession(t *testing.T) {
	srv := newTestServer(t)
	defer srv.Close()

	store := NewMemoryStore()
	store.Save(&Credentials{Token: "stale-token", Roles: []string{"ROLE_USER"}})

	session := NewSession(srv.URL, store)
	expired := false
	session.OnSessionExpired = func() { expired = true }

	_, err := session.Restore(context.Background())
	var authErr *AuthError
	if !errors.As(err, &authErr) {
		t.Fatalf("err = %v, want AuthError", err)
	}
	if !expired {
		t.Error("OnSessionExpired did not fire")
	}
	if _, err := store.Load(); !errors.Is(err, ErrNoCredentials) {
		t.Error("stale credentials should be cleared")
	}
}

func TestDoForcesLogoutOn401(t *testing.T) {
	srv := newTestServer(t)
	defer srv.Close()

	store := NewMemoryStore()
	session := NewSession(srv.URL, store)
	expired := false
	session.OnSessionExpired = func() { expired = true }

	if _, err := session.Login(context.Background(), "officer@safecity.gov.in", "secret123"); err != nil {
		t.Fatalf("Login failed: %v", err)
	}

	// Simulate a server-side token rotation.
	session.mu.Lock()
	session.creds.Token = "revoked"
	session.mu.Unlock()

	err := session.Do(context.Background(), http.MethodGet, "/api/reports", nil, nil)
	var authErr *AuthError
	if !errors.As(err, &authErr) {
		t.Fatalf("err = %v, want AuthError", err)
	}
	if !expired {
		t.Error("OnSessionExpired did not fire")
	}
	if session.Current() != nil {
		t.Error("session should be cleared after a 401")
	}
}

func TestDoPermissionError(t *testing.T) {
	srv := newTestServer(t)
	defer srv.Close()

	session := NewSession(srv.URL, NewMemoryStore())
	if _, err := session.Login(context.Background(), "officer@safecity.gov.in", "secret123"); err != nil {
		t.Fatalf("Login failed: %v", err)
	}

	err := session.Do(context.Background(), http.MethodGet, "/api/users", nil, nil)
	var permErr *PermissionError
	if !errors.As(err, &permErr) {
		t.Errorf("err = %v, want PermissionError", err)
	}
	if session.Current() == nil {
		t.Error("403 must not destroy the session")
	}
}

func TestNetworkError(t *testing.T) {
	session := NewSession("http://127.0.0.1:1", NewMemoryStore())

	_, err := session.Login(context.Background(), "a@b.c", "x")
	var netErr *NetworkError
	if !errors.As(err, &netErr) {
		t.Errorf("err = %v, want NetworkError", err)
	}
}
