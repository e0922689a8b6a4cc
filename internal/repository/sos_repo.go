package repository

import (
	"go-safecity-ws/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type SOSRepository interface {
	Create(alert *model.SOSAlert) error
	FindByID(id uuid.UUID) (*model.SOSAlert, error)
	FindActive() ([]model.SOSAlert, error)
	Update(alert *model.SOSAlert) error
}

type sosRepo struct {
	db *gorm.DB
}

func NewSOSRepo(db *gorm.DB) SOSRepository {
	return &sosRepo{db}
}

func (r *sosRepo) Create(alert *model.SOSAlert) error {
	return r.db.Create(alert).Error
}

func (r *sosRepo) FindByID(id uuid.UUID) (*model.SOSAlert, error) {
	var alert model.SOSAlert
	if err := r.db.First(&alert, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &alert, nil
}

func (r *sosRepo) FindActive() ([]model.SOSAlert, error) {
	var alerts []model.SOSAlert
	err := r.db.
		Where("status IN ?", []model.SOSStatus{model.SOSActive, model.SOSAcknowledged}).
		Order("created_at DESC").
		Find(&alerts).Error
	if err != nil {
		return nil, err
	}
	return alerts, nil
}

func (r *sosRepo) Update(alert *model.SOSAlert) error {
	return r.db.Save(alert).Error
}
