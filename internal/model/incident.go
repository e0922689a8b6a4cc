package model

// Incident is a confirmed event shown on the live map.
type Incident struct {
	BaseModel
	IncidentNumber string   `gorm:"type:varchar(20);uniqueIndex;not null" json:"incidentNumber"`
	Title          string   `gorm:"type:varchar(255)" json:"title" validate:"required"`
	Description    string   `gorm:"type:text" json:"description"`
	Type           string   `gorm:"type:varchar(100);index" json:"type"`
	Severity       string   `gorm:"type:varchar(20);index" json:"severity"`
	Location       string   `gorm:"type:varchar(255)" json:"location"`
	Status         string   `gorm:"type:varchar(20);index" json:"status"`
	Latitude       *float64 `json:"latitude,omitempty"`
	Longitude      *float64 `json:"longitude,omitempty"`
}

// MapBounds is a lat/lng bounding box for map queries.
type MapBounds struct {
	North float64 `query:"north"`
	South float64 `query:"south"`
	East  float64 `query:"east"`
	West  float64 `query:"west"`
}

// Valid reports whether the box is well-formed.
func (b MapBounds) Valid() bool {
	return b.North >= b.South && b.North <= 90 && b.South >= -90 &&
		b.East <= 180 && b.West >= -180
}
