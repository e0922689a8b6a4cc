package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type CaseStatus string

const (
	CaseStatusOpen               CaseStatus = "OPEN"
	CaseStatusUnderInvestigation CaseStatus = "UNDER_INVESTIGATION"
	CaseStatusClosed             CaseStatus = "CLOSED"
)

type CasePriority string

const (
	CasePriorityLow      CasePriority = "LOW"
	CasePriorityMedium   CasePriority = "MEDIUM"
	CasePriorityHigh     CasePriority = "HIGH"
	CasePriorityCritical CasePriority = "CRITICAL"
)

// Case is an investigation opened from one or more reports, assigned to an
// officer and annotated over time.
type Case struct {
	BaseModel
	CaseNumber  string       `gorm:"type:varchar(20);uniqueIndex;not null" json:"caseNumber"`
	Title       string       `gorm:"type:varchar(255)" json:"title" validate:"required"`
	Description string       `gorm:"type:text" json:"description"`
	Status      CaseStatus   `gorm:"type:varchar(30);index" json:"status"`
	Priority    CasePriority `gorm:"type:varchar(20);index" json:"priority"`
	Location    string       `gorm:"type:varchar(255)" json:"location"`
	District    string       `gorm:"type:varchar(100);index" json:"district"`
	AssignedTo  *uuid.UUID   `gorm:"index" json:"assignedTo,omitempty"`
	Notes       []CaseNote   `gorm:"foreignKey:CaseID" json:"notes,omitempty"`
}

// CaseNote is a timestamped annotation on a case.
type CaseNote struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	CaseID    uuid.UUID `gorm:"type:uuid;index;not null" json:"caseId"`
	Content   string    `gorm:"type:text;not null" json:"content" validate:"required"`
	CreatedBy string    `gorm:"type:varchar(255)" json:"createdBy"`
	CreatedAt time.Time `json:"createdAt"`
}

func (n *CaseNote) BeforeCreate(tx *gorm.DB) error {
	if n.ID == uuid.Nil {
		n.ID = uuid.New()
	}
	return nil
}
