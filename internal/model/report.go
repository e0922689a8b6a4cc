package model

// ReportStatus tracks a citizen report through review.
type ReportStatus string

const (
	ReportStatusNew      ReportStatus = "NEW"
	ReportStatusApproved ReportStatus = "APPROVED"
	ReportStatusRejected ReportStatus = "REJECTED"
)

// AnonymousReporter is the literal marker stored when a report carries no
// reporter identity.
const AnonymousReporter = "anonymous"

// Report is a citizen-submitted crime report.
type Report struct {
	BaseModel
	ReportNumber string       `gorm:"type:varchar(20);uniqueIndex;not null" json:"reportNumber"`
	ReportType   string       `gorm:"type:varchar(100)" json:"reportType"`
	Description  string       `gorm:"type:text" json:"description" validate:"required"`
	Status       ReportStatus `gorm:"type:varchar(20);index" json:"status"`
	Location     string       `gorm:"type:varchar(255)" json:"location"`
	ReportedBy   string       `gorm:"type:varchar(255);index" json:"reportedBy"`
	ContactInfo  string       `gorm:"type:varchar(255)" json:"contactInfo,omitempty"`
	Anonymous    bool         `gorm:"default:false" json:"anonymous"`
	Latitude     *float64     `json:"latitude,omitempty"`
	Longitude    *float64     `json:"longitude,omitempty"`

	// Set for voice reports; points at the uploaded audio.
	AudioURL string `gorm:"type:varchar(512)" json:"audioUrl,omitempty"`
}
