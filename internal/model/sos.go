package model

import (
	"time"

	"github.com/google/uuid"
)

// SOSStatus tracks a panic alert from trigger to resolution.
type SOSStatus string

const (
	SOSActive       SOSStatus = "ACTIVE"
	SOSAcknowledged SOSStatus = "ACKNOWLEDGED"
	SOSResolved     SOSStatus = "RESOLVED"
)

// SOSAlert is a panic-button alert with the triggering location. Nearby
// officers are notified when one goes active.
type SOSAlert struct {
	BaseModel
	Latitude  float64   `json:"latitude" validate:"latitude"`
	Longitude float64   `json:"longitude" validate:"longitude"`
	Details   string    `gorm:"type:text" json:"details"`
	Status    SOSStatus `gorm:"type:varchar(20);index" json:"status"`

	TriggeredBy         uuid.UUID  `gorm:"type:uuid;index" json:"triggeredBy"`
	RespondingOfficerID *uuid.UUID `gorm:"type:uuid" json:"respondingOfficerId,omitempty"`
	AcknowledgedAt      *time.Time `json:"acknowledgedAt,omitempty"`
	ResolvedAt          *time.Time `json:"resolvedAt,omitempty"`
}
