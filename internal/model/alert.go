package model

import (
	"time"

	"github.com/google/uuid"
)

// AlertType is the severity class shown in the Alerts view.
type AlertType string

const (
	AlertEmergency AlertType = "emergency"
	AlertWarning   AlertType = "warning"
	AlertInfo      AlertType = "info"
)

// Alert is a user-facing notice raised by the system or by officers.
type Alert struct {
	BaseModel
	Type      AlertType  `gorm:"type:varchar(20);index" json:"type" validate:"required"`
	Title     string     `gorm:"type:varchar(255);not null" json:"title" validate:"required"`
	Message   string     `gorm:"type:text;not null" json:"message" validate:"required"`
	Location  string     `gorm:"type:varchar(255)" json:"location,omitempty"`
	Timestamp time.Time  `json:"timestamp"`
	IsRead    bool       `gorm:"default:false;index" json:"isRead"`
	UserID    *uuid.UUID `gorm:"index" json:"userId,omitempty"`
}
