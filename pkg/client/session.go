package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"go-safecity-ws/internal/model"
	"go-safecity-ws/internal/permission"
)

// Credentials is the session state returned by every login variant. The
// `aadharVerified` spelling matches the server contract.
type Credentials struct {
	Token             string    `json:"token"`
	ID                uuid.UUID `json:"id"`
	Name              string    `json:"name"`
	Email             string    `json:"email,omitempty"`
	Roles             []string  `json:"roles"`
	Avatar            string    `json:"avatar,omitempty"`
	Badge             string    `json:"badge,omitempty"`
	AadharVerified    bool      `json:"aadharVerified"`
	PerformanceRating *float64  `json:"performanceRating,omitempty"`
}

// Role resolves the primary role from the roles list. Unknown role
// strings are an error, never silently coerced.
func (c *Credentials) Role() (model.UserRole, error) {
	if len(c.Roles) == 0 {
		return "", errors.New("credentials carry no role")
	}
	return model.ParseRole(c.Roles[0])
}

// RegisterRequest is the signup payload.
type RegisterRequest struct {
	Name         string `json:"name"`
	Email        string `json:"email"`
	Password     string `json:"password"`
	Role         string `json:"role,omitempty"`
	AadharNumber string `json:"aadharNumber,omitempty"`
}

// Session manages authentication against the portal API: login variants,
// restore-on-startup, and forced logout when the server invalidates the
// token.
type Session struct {
	baseURL    string
	httpClient *http.Client
	store      CredentialStore

	// OnSessionExpired fires when any authenticated call comes back 401.
	// The session is already cleared by the time it runs.
	OnSessionExpired func()

	mu    sync.RWMutex
	creds *Credentials
}

func NewSession(baseURL string, store CredentialStore) *Session {
	return &Session{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: 15 * time.Second},
		store:      store,
	}
}

// Login authenticates with email and password.
func (s *Session) Login(ctx context.Context, email, password string) (*Credentials, error) {
	body := map[string]string{"email": email, "password": password}
	return s.authenticate(ctx, "/api/auth/signin", body)
}

// Register creates an account. It does not authenticate: callers log
// in explicitly afterwards.
func (s *Session) Register(ctx context.Context, req *RegisterRequest) error {
	resp, err := s.post(ctx, "/api/auth/signup", req, "")
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	return checkStatus(resp)
}

// LoginAnonymously opens a throwaway session with no email or password.
func (s *Session) LoginAnonymously(ctx context.Context) (*Credentials, error) {
	return s.authenticate(ctx, "/api/auth/anonymous", struct{}{})
}

// RequestAadhaarOTP starts the Aadhaar login flow. The OTP is delivered
// out of band.
func (s *Session) RequestAadhaarOTP(ctx context.Context, aadhaarNumber string) error {
	body := map[string]string{"aadhaarNumber": aadhaarNumber}
	resp, err := s.post(ctx, "/api/auth/aadhaar-login/request-otp", body, "")
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	return checkStatus(resp)
}

// LoginWithAadhaar completes the Aadhaar login flow with the OTP the
// user received.
func (s *Session) LoginWithAadhaar(ctx context.Context, aadhaarNumber, otp string) (*Credentials, error) {
	body := map[string]string{"aadhaarNumber": aadhaarNumber, "otp": otp}
	return s.authenticate(ctx, "/api/auth/aadhaar-login/verify-otp", body)
}

// Restore loads persisted credentials and validates them against the
// server. Stale credentials are cleared, not kept around half-working.
func (s *Session) Restore(ctx context.Context) (*Credentials, error) {
	creds, err := s.store.Load()
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.baseURL+"/api/auth/user", nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+creds.Token)

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return nil, &NetworkError{Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusUnauthorized {
		s.forceLogout()
		return nil, &AuthError{Message: "session expired"}
	}
	if err := checkStatus(resp); err != nil {
		return nil, err
	}

	s.mu.Lock()
	s.creds = creds
	s.mu.Unlock()
	return creds, nil
}

// Logout drops the session locally. The server-side token dies on its
// own at expiry or on the next rotation.
func (s *Session) Logout() error {
	s.mu.Lock()
	s.creds = nil
	s.mu.Unlock()
	return s.store.Clear()
}

// Authenticated reports whether a session is active.
func (s *Session) Authenticated() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.creds != nil
}

// Current returns the active credentials, or nil when logged out.
func (s *Session) Current() *Credentials {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.creds == nil {
		return nil
	}
	copied := *s.creds
	return &copied
}

// Token returns the bearer token, or "" when logged out.
func (s *Session) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.creds == nil {
		return ""
	}
	return s.creds.Token
}

// Permissions returns the capability set for the current role. Logged
// out, unknown or missing roles grant nothing.
func (s *Session) Permissions() permission.Permissions {
	creds := s.Current()
	if creds == nil {
		return permission.Permissions{}
	}
	role, err := creds.Role()
	if err != nil {
		return permission.Permissions{}
	}
	return permission.For(role)
}

// Do performs an authenticated request against the API and decodes the
// JSON response into out (when out is non-nil). A 401 response forces a
// local logout before the error is returned.
func (s *Session) Do(ctx context.Context, method, path string, body, out any) error {
	token := s.Token()
	if token == "" {
		return &AuthError{Message: "not logged in"}
	}

	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, s.baseURL+path, reader)
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", "Bearer "+token)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return &NetworkError{Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusUnauthorized {
		s.forceLogout()
		return &AuthError{Message: "session expired"}
	}
	if err := checkStatus(resp); err != nil {
		return err
	}

	if out == nil {
		return nil
	}
	return json.NewDecoder(resp.Body).Decode(out)
}

func (s *Session) authenticate(ctx context.Context, path string, body any) (*Credentials, error) {
	resp, err := s.post(ctx, path, body, "")
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if err := checkStatus(resp); err != nil {
		return nil, err
	}

	var creds Credentials
	if err := json.NewDecoder(resp.Body).Decode(&creds); err != nil {
		return nil, err
	}

	// Reject a malformed role up front instead of surfacing it later as
	// mysteriously missing permissions.
	if _, err := creds.Role(); err != nil {
		return nil, err
	}

	s.mu.Lock()
	s.creds = &creds
	s.mu.Unlock()

	if err := s.store.Save(&creds); err != nil {
		return nil, err
	}
	return &creds, nil
}

func (s *Session) post(ctx context.Context, path string, body any, token string) (*http.Response, error) {
	data, err := json.Marshal(body)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.baseURL+path, bytes.NewReader(data))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return nil, &NetworkError{Err: err}
	}
	return resp, nil
}

func (s *Session) forceLogout() {
	s.mu.Lock()
	s.creds = nil
	s.mu.Unlock()
	s.store.Clear()

	if s.OnSessionExpired != nil {
		s.OnSessionExpired()
	}
}

// checkStatus maps non-2xx responses onto the client error taxonomy.
func checkStatus(resp *http.Response) error {
	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return nil
	}

	msg := serverMessage(resp)
	switch {
	case resp.StatusCode == http.StatusUnauthorized:
		return &AuthError{Message: msg}
	case resp.StatusCode == http.StatusForbidden:
		return &PermissionError{Message: msg}
	case resp.StatusCode == http.StatusBadRequest,
		resp.StatusCode == http.StatusUnprocessableEntity,
		resp.StatusCode == http.StatusConflict:
		return &ValidationError{Message: msg}
	default:
		return &ServerError{Status: resp.StatusCode, Message: msg}
	}
}

func serverMessage(resp *http.Response) string {
	var body struct {
		Error   string `json:"error"`
		Message string `json:"message"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return resp.Status
	}
	if body.Error != "" {
		return body.Error
	}
	if body.Message != "" {
		return body.Message
	}
	return resp.Status
}
