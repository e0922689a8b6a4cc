package repository

import (
	"time"

	"go-safecity-ws/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type IncidentRepository interface {
	FindAll(req PageRequest) (*Page[model.Incident], error)
	FindByID(id uuid.UUID) (*model.Incident, error)
	FindInBounds(bounds model.MapBounds) ([]model.Incident, error)
	CountByTypeSince(since time.Time) (map[string]int64, error)
	CountPerDay(start, end time.Time) ([]TrendPoint, error)
	CountByLocation(location string, since time.Time) (int64, error)
	Create(incident *model.Incident) error
	Update(incident *model.Incident) error
	Delete(id uuid.UUID) error
}

// TrendPoint is one bucket of the crime-trends chart.
type TrendPoint struct {
	Date  string `json:"date"`
	Count int64  `json:"count"`
}

type incidentRepo struct {
	db *gorm.DB
}

func NewIncidentRepo(db *gorm.DB) IncidentRepository {
	return &incidentRepo{db}
}

func (r *incidentRepo) FindAll(req PageRequest) (*Page[model.Incident], error) {
	req = req.Normalize("created_at", "severity", "type", "status")

	var total int64
	if err := r.db.Model(&model.Incident{}).Count(&total).Error; err != nil {
		return nil, err
	}

	var incidents []model.Incident
	err := r.db.
		Order(req.Order()).
		Offset(req.Page * req.Size).
		Limit(req.Size).
		Find(&incidents).Error
	if err != nil {
		return nil, err
	}

	return &Page[model.Incident]{
		Content:       incidents,
		Page:          req.Page,
		Size:          req.Size,
		TotalElements: total,
		TotalPages:    totalPages(total, req.Size),
	}, nil
}

func (r *incidentRepo) FindByID(id uuid.UUID) (*model.Incident, error) {
	var incident model.Incident
	if err := r.db.First(&incident, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &incident, nil
}

func (r *incidentRepo) FindInBounds(bounds model.MapBounds) ([]model.Incident, error) {
	var incidents []model.Incident
	err := r.db.
		Where("latitude IS NOT NULL AND longitude IS NOT NULL").
		Where("latitude BETWEEN ? AND ?", bounds.South, bounds.North).
		Where("longitude BETWEEN ? AND ?", bounds.West, bounds.East).
		Find(&incidents).Error
	if err != nil {
		return nil, err
	}
	return incidents, nil
}

func (r *incidentRepo) CountByTypeSince(since time.Time) (map[string]int64, error) {
	rows, err := r.db.Model(&model.Incident{}).
		Select("type, COUNT(*) as count").
		Where("created_at >= ?", since).
		Group("type").
		Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	counts := make(map[string]int64)
	for rows.Next() {
		var typ string
		var count int64
		if err := rows.Scan(&typ, &count); err != nil {
			return nil, err
		}
		counts[typ] = count
	}
	return counts, rows.Err()
}

func (r *incidentRepo) CountPerDay(start, end time.Time) ([]TrendPoint, error) {
	var results []TrendPoint

	rows, err := r.db.Model(&model.Incident{}).
		Select("DATE(created_at) as date, COUNT(*) as count").
		Where("created_at BETWEEN ? AND ?", start, end).
		Group("DATE(created_at)").
		Order("date ASC").
		Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var p TrendPoint
		if err := rows.Scan(&p.Date, &p.Count); err != nil {
			return nil, err
		}
		results = append(results, p)
	}
	return results, rows.Err()
}

func (r *incidentRepo) CountByLocation(location string, since time.Time) (int64, error) {
	var count int64
	err := r.db.Model(&model.Incident{}).
		Where("location ILIKE ?", "%"+location+"%").
		Where("created_at >= ?", since).
		Count(&count).Error
	return count, err
}

func (r *incidentRepo) Create(incident *model.Incident) error {
	return r.db.Create(incident).Error
}

func (r *incidentRepo) Update(incident *model.Incident) error {
	return r.db.Save(incident).Error
}

func (r *incidentRepo) Delete(id uuid.UUID) error {
	return r.db.Delete(&model.Incident{}, "id = ?", id).Error
}
