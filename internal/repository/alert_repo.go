package repository

import (
	"go-safecity-ws/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type AlertRepository interface {
	FindAll() ([]model.Alert, error)
	FindByID(id uuid.UUID) (*model.Alert, error)
	FindByType(t model.AlertType) ([]model.Alert, error)
	FindByRead(isRead bool) ([]model.Alert, error)
	FindByUser(userID uuid.UUID) ([]model.Alert, error)
	Create(alert *model.Alert) error
	Update(alert *model.Alert) error
	Delete(id uuid.UUID) error
}

type alertRepo struct {
	db *gorm.DB
}

func NewAlertRepo(db *gorm.DB) AlertRepository {
	return &alertRepo{db}
}

func (r *alertRepo) FindAll() ([]model.Alert, error) {
	var alerts []model.Alert
	if err := r.db.Order("timestamp DESC").Find(&alerts).Error; err != nil {
		return nil, err
	}
	return alerts, nil
}

func (r *alertRepo) FindByID(id uuid.UUID) (*model.Alert, error) {
	var alert model.Alert
	if err := r.db.First(&alert, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &alert, nil
}

func (r *alertRepo) FindByType(t model.AlertType) ([]model.Alert, error) {
	var alerts []model.Alert
	if err := r.db.Where("type = ?", t).Order("timestamp DESC").Find(&alerts).Error; err != nil {
		return nil, err
	}
	return alerts, nil
}

func (r *alertRepo) FindByRead(isRead bool) ([]model.Alert, error) {
	var alerts []model.Alert
	if err := r.db.Where("is_read = ?", isRead).Order("timestamp DESC").Find(&alerts).Error; err != nil {
		return nil, err
	}
	return alerts, nil
}

func (r *alertRepo) FindByUser(userID uuid.UUID) ([]model.Alert, error) {
	var alerts []model.Alert
	if err := r.db.Where("user_id = ?", userID).Order("timestamp DESC").Find(&alerts).Error; err != nil {
		return nil, err
	}
	return alerts, nil
}

func (r *alertRepo) Create(alert *model.Alert) error {
	return r.db.Create(alert).Error
}

func (r *alertRepo) Update(alert *model.Alert) error {
	return r.db.Save(alert).Error
}

func (r *alertRepo) Delete(id uuid.UUID) error {
	return r.db.Delete(&model.Alert{}, "id = ?", id).Error
}
