package handler

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"go-safecity-ws/internal/service"
)

type AuthHandler struct {
	authService service.AuthService
}

func NewAuthHandler(authService service.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

type SignInRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type AadhaarRequest struct {
	AadhaarNumber string `json:"aadhaarNumber"`
}

type AadhaarVerifyRequest struct {
	AadhaarNumber string `json:"aadhaarNumber"`
	OTP           string `json:"otp"`
}

// SignIn handles user authentication
// POST /api/auth/signin
func (h *AuthHandler) SignIn(c *fiber.Ctx) error {
	var req SignInRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}

	if req.Email == "" || req.Password == "" {
		return c.Status(400).JSON(fiber.Map{"error": "Email and password are required"})
	}

	response, err := h.authService.SignIn(req.Email, req.Password)
	if err != nil {
		return c.Status(401).JSON(fiber.Map{"error": err.Error()})
	}

	return c.JSON(response)
}

// SignUp registers a new account
// POST /api/auth/signup
func (h *AuthHandler) SignUp(c *fiber.Ctx) error {
	var req service.SignUpRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}

	response, err := h.authService.SignUp(&req)
	if err != nil {
		if errors.Is(err, service.ErrEmailTaken) {
			return c.Status(409).JSON(fiber.Map{"error": err.Error()})
		}
		return c.Status(422).JSON(fiber.Map{"error": err.Error()})
	}

	return c.Status(201).JSON(response)
}

// SignInAnonymously creates a throwaway session
// POST /api/auth/anonymous
func (h *AuthHandler) SignInAnonymously(c *fiber.Ctx) error {
	response, err := h.authService.SignInAnonymously()
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to create anonymous session"})
	}

	return c.JSON(response)
}

// RequestAadhaarOTP sends (simulates) an OTP for Aadhaar login
// POST /api/auth/aadhaar-login/request-otp
func (h *AuthHandler) RequestAadhaarOTP(c *fiber.Ctx) error {
	var req AadhaarRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}

	err := h.authService.RequestAadhaarOTP(c.Context(), req.AadhaarNumber)
	if err != nil {
		if errors.Is(err, service.ErrInvalidAadhaar) {
			return c.Status(400).JSON(fiber.Map{"error": err.Error()})
		}
		if errors.Is(err, service.ErrAadhaarNotRegistered) {
			return c.Status(401).JSON(fiber.Map{"error": err.Error()})
		}
		return c.Status(500).JSON(fiber.Map{"error": "Failed to send OTP"})
	}

	return c.JSON(fiber.Map{"message": "OTP sent to registered mobile (simulated)"})
}

// VerifyAadhaarOTP completes Aadhaar login
// POST /api/auth/aadhaar-login/verify-otp
func (h *AuthHandler) VerifyAadhaarOTP(c *fiber.Ctx) error {
	var req AadhaarVerifyRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}

	response, err := h.authService.VerifyAadhaarOTP(c.Context(), req.AadhaarNumber, req.OTP)
	if err != nil {
		if errors.Is(err, service.ErrInvalidAadhaar) {
			return c.Status(400).JSON(fiber.Map{"error": err.Error()})
		}
		return c.Status(401).JSON(fiber.Map{"error": err.Error()})
	}

	return c.JSON(response)
}

// CurrentUser is the session validation probe
// GET /api/auth/user
func (h *AuthHandler) CurrentUser(c *fiber.Ctx) error {
	id, err := uuid.Parse(getUserID(c))
	if err != nil {
		return c.Status(401).JSON(fiber.Map{"error": "Unauthorized"})
	}

	user, err := h.authService.CurrentUser(id)
	if err != nil {
		return c.Status(401).JSON(fiber.Map{"error": err.Error()})
	}

	return c.JSON(user)
}
