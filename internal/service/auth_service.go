package service

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"log"
	"math/big"
	"time"

	"github.com/google/uuid"

	"go-safecity-ws/internal/model"
	"go-safecity-ws/internal/repository"
	"go-safecity-ws/pkg/jwt"
	"go-safecity-ws/pkg/validator"
)

var (
	ErrInvalidCredentials   = errors.New("invalid email or password")
	ErrUserNotFound         = errors.New("user not found")
	ErrUserInactive         = errors.New("user account is inactive")
	ErrEmailTaken           = errors.New("email is already taken")
	ErrInvalidAadhaar       = errors.New("invalid aadhaar number format")
	ErrAadhaarNotRegistered = errors.New("aadhaar number not registered")
	ErrInvalidOTP           = errors.New("invalid or expired otp")
)

type AuthService interface {
	SignIn(email, password string) (*AuthResponse, error)
	SignUp(req *SignUpRequest) (*AuthResponse, error)
	SignInAnonymously() (*AuthResponse, error)
	RequestAadhaarOTP(ctx context.Context, aadhaarNumber string) error
	VerifyAadhaarOTP(ctx context.Context, aadhaarNumber, otp string) (*AuthResponse, error)
	CurrentUser(userID uuid.UUID) (*model.UserResponse, error)
}

// AuthResponse is the wire shape every login variant returns. The
// `aadharVerified` spelling is part of the frontend contract.
type AuthResponse struct {
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

type SignUpRequest struct {
	Name         string `json:"name" validate:"required"`
	Email        string `json:"email" validate:"required,email"`
	Password     string `json:"password" validate:"required,min=6"`
	Role         string `json:"role"`
	AadharNumber string `json:"aadharNumber" validate:"omitempty,aadhaar"`
}

type authService struct {
	userRepo repository.UserRepository
	otpStore repository.OTPStore
}

func NewAuthService(userRepo repository.UserRepository, otpStore repository.OTPStore) AuthService {
	return &authService{
		userRepo: userRepo,
		otpStore: otpStore,
	}
}

func (s *authService) SignIn(email, password string) (*AuthResponse, error) {
	// 1. Find user by email
	user, err := s.userRepo.FindByEmail(email)
	if err != nil {
		return nil, ErrInvalidCredentials
	}

	// 2. Check if user is active
	if !user.IsActive {
		return nil, ErrUserInactive
	}

	// 3. Verify password
	if !user.CheckPassword(password) {
		return nil, ErrInvalidCredentials
	}

	return s.issueSession(user)
}

func (s *authService) SignUp(req *SignUpRequest) (*AuthResponse, error) {
	if errs := validator.ValidateStruct(req); len(errs) > 0 {
		first := errs[0]
		return nil, fmt.Errorf("validation failed: field '%s' failed on tag '%s'", first.FailedField, first.Tag)
	}

	// Default role is USER; anything else must parse into the closed set.
	role := model.RoleUser
	if req.Role != "" {
		parsed, err := model.ParseRole(req.Role)
		if err != nil {
			return nil, err
		}
		role = parsed
	}

	if _, err := s.userRepo.FindByEmail(req.Email); err == nil {
		return nil, ErrEmailTaken
	}

	user := &model.User{
		Name:          req.Name,
		Email:         req.Email,
		Role:          role,
		AadhaarNumber: req.AadharNumber,
		IsActive:      true,
	}
	user.CreatedBy = "signup"
	user.UpdatedBy = "signup"

	if err := user.SetPassword(req.Password); err != nil {
		return nil, errors.New("failed to hash password")
	}

	if err := s.userRepo.Create(user); err != nil {
		return nil, err
	}

	return s.issueSession(user)
}

func (s *authService) SignInAnonymously() (*AuthResponse, error) {
	// Anonymous sessions are backed by a throwaway user so reports and
	// alerts still have an owning id. No email or password is exposed.
	short := uuid.New().String()[:8]

	user := &model.User{
		Name:      "Anonymous-" + short,
		Email:     "anonymous+" + short + "@safecity.invalid",
		Role:      model.RoleUser,
		Anonymous: true,
		IsActive:  true,
	}
	user.CreatedBy = "anonymous"
	user.UpdatedBy = "anonymous"

	if err := user.SetPassword(uuid.New().String()); err != nil {
		return nil, errors.New("failed to create anonymous user")
	}

	if err := s.userRepo.Create(user); err != nil {
		return nil, err
	}

	return s.issueSession(user)
}

func (s *authService) RequestAadhaarOTP(ctx context.Context, aadhaarNumber string) error {
	if !validator.ValidAadhaar(aadhaarNumber) {
		return ErrInvalidAadhaar
	}

	if _, err := s.userRepo.FindByAadhaar(aadhaarNumber); err != nil {
		return ErrAadhaarNotRegistered
	}

	otp, err := generateOTP()
	if err != nil {
		return err
	}

	if err := s.otpStore.Put(ctx, aadhaarNumber, otp); err != nil {
		return err
	}

	// In production this goes out via SMS.
	log.Printf("[OTP] Aadhaar: %s OTP: %s", aadhaarNumber, otp)
	return nil
}

func (s *authService) VerifyAadhaarOTP(ctx context.Context, aadhaarNumber, otp string) (*AuthResponse, error) {
	if !validator.ValidAadhaar(aadhaarNumber) {
		return nil, ErrInvalidAadhaar
	}

	user, err := s.userRepo.FindByAadhaar(aadhaarNumber)
	if err != nil {
		return nil, ErrAadhaarNotRegistered
	}

	stored, err := s.otpStore.Take(ctx, aadhaarNumber)
	if err != nil || stored != otp {
		return nil, ErrInvalidOTP
	}

	return s.issueSession(user)
}

func (s *authService) CurrentUser(userID uuid.UUID) (*model.UserResponse, error) {
	user, err := s.userRepo.FindByID(userID)
	if err != nil {
		return nil, ErrUserNotFound
	}
	if !user.IsActive {
		return nil, ErrUserInactive
	}
	resp := user.ToResponse()
	return &resp, nil
}

// issueSession rotates the token version and returns the auth wire response.
func (s *authService) issueSession(user *model.User) (*AuthResponse, error) {
	newTokenVersion := uuid.New().String()
	now := time.Now()
	user.TokenVersion = newTokenVersion
	user.LastSeenAt = &now

	if err := s.userRepo.Update(user); err != nil {
		return nil, errors.New("failed to update session")
	}

	token, err := jwt.GenerateToken(user.ID, user.Email, user.Name, user.Role, newTokenVersion)
	if err != nil {
		return nil, errors.New("failed to generate token")
	}

	email := user.Email
	if user.Anonymous {
		email = ""
	}

	return &AuthResponse{
		Token:             token,
		ID:                user.ID,
		Name:              user.Name,
		Email:             email,
		Roles:             []string{user.Role.WireName()},
		Avatar:            user.Avatar,
		Badge:             user.BadgeNumber,
		AadharVerified:    user.AadhaarVerified(),
		PerformanceRating: user.PerformanceRating,
	}, nil
}

func generateOTP() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(1000000))
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%06d", n.Int64()), nil
}
