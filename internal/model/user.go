package model

import (
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// User represents an authenticated identity: citizen, officer or admin.
// Anonymous logins create a throwaway user with a synthetic name and no
// real email.
type User struct {
	BaseModel
	Name          string   `gorm:"type:varchar(255)" json:"name" validate:"required"`
	Email         string   `gorm:"type:varchar(255);uniqueIndex;not null" json:"email" validate:"required,email"`
	Password      string   `gorm:"type:varchar(255);not null" json:"-"` // Hidden from JSON
	Role          UserRole `gorm:"type:varchar(20);not null" json:"role"`
	AadhaarNumber string   `gorm:"type:varchar(12);index" json:"-" validate:"omitempty,aadhaar"`
	BadgeNumber   string   `gorm:"type:varchar(50)" json:"badgeNumber,omitempty"`
	Avatar        string   `gorm:"type:varchar(512)" json:"avatar,omitempty"`
	Anonymous     bool     `gorm:"default:false" json:"anonymous"`
	IsActive      bool     `gorm:"default:true" json:"isActive"`

	// Officer performance, 0-5. Nil until first review.
	PerformanceRating *float64 `json:"performanceRating,omitempty"`

	TokenVersion string     `gorm:"type:varchar(255);default:''" json:"-"` // Rotated on login
	LastSeenAt   *time.Time `json:"lastSeenAt,omitempty"`
}

// SetPassword hashes and sets the user's password
func (u *User) SetPassword(password string) error {
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	u.Password = string(hashedPassword)
	return nil
}

// CheckPassword verifies if the provided password matches the stored hash
func (u *User) CheckPassword(password string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(u.Password), []byte(password))
	return err == nil
}

// AadhaarVerified reports whether the user has a registered Aadhaar number.
func (u *User) AadhaarVerified() bool {
	return u.AadhaarNumber != ""
}

// UserResponse is used for API responses (without sensitive data)
type UserResponse struct {
	ID                uuid.UUID  `json:"id"`
	Name              string     `json:"name"`
	Email             string     `json:"email,omitempty"`
	Role              UserRole   `json:"role"`
	BadgeNumber       string     `json:"badgeNumber,omitempty"`
	Avatar            string     `json:"avatar,omitempty"`
	Anonymous         bool       `json:"anonymous"`
	IsActive          bool       `json:"isActive"`
	AadhaarVerified   bool       `json:"aadhaarVerified"`
	PerformanceRating *float64   `json:"performanceRating,omitempty"`
	LastSeenAt        *time.Time `json:"lastSeenAt,omitempty"`
}

// ToResponse converts User to UserResponse
func (u *User) ToResponse() UserResponse {
	email := u.Email
	if u.Anonymous {
		email = ""
	}
	return UserResponse{
		ID:                u.ID,
		Name:              u.Name,
		Email:             email,
		Role:              u.Role,
		BadgeNumber:       u.BadgeNumber,
		Avatar:            u.Avatar,
		Anonymous:         u.Anonymous,
		IsActive:          u.IsActive,
		AadhaarVerified:   u.AadhaarVerified(),
		PerformanceRating: u.PerformanceRating,
		LastSeenAt:        u.LastSeenAt,
	}
}
