package repository

import (
	"go-safecity-ws/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type CaseRepository interface {
	FindAll(req PageRequest) (*Page[model.Case], error)
	FindByID(id uuid.UUID) (*model.Case, error)
	FindByAssignee(officerID uuid.UUID) ([]model.Case, error)
	CountByStatus() (map[model.CaseStatus]int64, error)
	CountResolvedByOfficer() (map[uuid.UUID]int64, error)
	Create(c *model.Case) error
	Update(c *model.Case) error
	Delete(id uuid.UUID) error
	AddNote(note *model.CaseNote) error
}

type caseRepo struct {
	db *gorm.DB
}

func NewCaseRepo(db *gorm.DB) CaseRepository {
	return &caseRepo{db}
}

func (r *caseRepo) FindAll(req PageRequest) (*Page[model.Case], error) {
	req = req.Normalize("created_at", "priority", "status", "district")

	var total int64
	if err := r.db.Model(&model.Case{}).Count(&total).Error; err != nil {
		return nil, err
	}

	var cases []model.Case
	err := r.db.
		Preload("Notes").
		Order(req.Order()).
		Offset(req.Page * req.Size).
		Limit(req.Size).
		Find(&cases).Error
	if err != nil {
		return nil, err
	}

	return &Page[model.Case]{
		Content:       cases,
		Page:          req.Page,
		Size:          req.Size,
		TotalElements: total,
		TotalPages:    totalPages(total, req.Size),
	}, nil
}

func (r *caseRepo) FindByID(id uuid.UUID) (*model.Case, error) {
	var c model.Case
	if err := r.db.Preload("Notes").First(&c, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *caseRepo) FindByAssignee(officerID uuid.UUID) ([]model.Case, error) {
	var cases []model.Case
	if err := r.db.Where("assigned_to = ?", officerID).Find(&cases).Error; err != nil {
		return nil, err
	}
	return cases, nil
}

func (r *caseRepo) CountByStatus() (map[model.CaseStatus]int64, error) {
	rows, err := r.db.Model(&model.Case{}).
		Select("status, COUNT(*) as count").
		Group("status").
		Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	counts := make(map[model.CaseStatus]int64)
	for rows.Next() {
		var status model.CaseStatus
		var count int64
		if err := rows.Scan(&status, &count); err != nil {
			return nil, err
		}
		counts[status] = count
	}
	return counts, rows.Err()
}

func (r *caseRepo) CountResolvedByOfficer() (map[uuid.UUID]int64, error) {
	rows, err := r.db.Model(&model.Case{}).
		Select("assigned_to, COUNT(*) as count").
		Where("status = ? AND assigned_to IS NOT NULL", model.CaseStatusClosed).
		Group("assigned_to").
		Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	counts := make(map[uuid.UUID]int64)
	for rows.Next() {
		var officerID uuid.UUID
		var count int64
		if err := rows.Scan(&officerID, &count); err != nil {
			return nil, err
		}
		counts[officerID] = count
	}
	return counts, rows.Err()
}

func (r *caseRepo) Create(c *model.Case) error {
	return r.db.Create(c).Error
}

func (r *caseRepo) Update(c *model.Case) error {
	return r.db.Save(c).Error
}

func (r *caseRepo) Delete(id uuid.UUID) error {
	return r.db.Delete(&model.Case{}, "id = ?", id).Error
}

func (r *caseRepo) AddNote(note *model.CaseNote) error {
	return r.db.Create(note).Error
}
