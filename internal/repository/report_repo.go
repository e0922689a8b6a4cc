package repository

import (
	"go-safecity-ws/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ReportRepository interface {
	FindAll(req PageRequest) (*Page[model.Report], error)
	FindByStatus(status model.ReportStatus, req PageRequest) (*Page[model.Report], error)
	FindByReporter(reporter string) ([]model.Report, error)
	FindByID(id uuid.UUID) (*model.Report, error)
	Create(report *model.Report) error
	Update(report *model.Report) error
	Delete(id uuid.UUID) error
}

type reportRepo struct {
	db *gorm.DB
}

func NewReportRepo(db *gorm.DB) ReportRepository {
	return &reportRepo{db}
}

func (r *reportRepo) paginate(query *gorm.DB, req PageRequest) (*Page[model.Report], error) {
	req = req.Normalize("created_at", "status", "report_type")

	var total int64
	if err := query.Model(&model.Report{}).Count(&total).Error; err != nil {
		return nil, err
	}

	var reports []model.Report
	err := query.
		Order(req.Order()).
		Offset(req.Page * req.Size).
		Limit(req.Size).
		Find(&reports).Error
	if err != nil {
		return nil, err
	}

	return &Page[model.Report]{
		Content:       reports,
		Page:          req.Page,
		Size:          req.Size,
		TotalElements: total,
		TotalPages:    totalPages(total, req.Size),
	}, nil
}

func (r *reportRepo) FindAll(req PageRequest) (*Page[model.Report], error) {
	return r.paginate(r.db.Session(&gorm.Session{}), req)
}

func (r *reportRepo) FindByStatus(status model.ReportStatus, req PageRequest) (*Page[model.Report], error) {
	return r.paginate(r.db.Where("status = ?", status), req)
}

func (r *reportRepo) FindByReporter(reporter string) ([]model.Report, error) {
	var reports []model.Report
	if err := r.db.Where("reported_by = ?", reporter).Order("created_at DESC").Find(&reports).Error; err != nil {
		return nil, err
	}
	return reports, nil
}

func (r *reportRepo) FindByID(id uuid.UUID) (*model.Report, error) {
	var report model.Report
	if err := r.db.First(&report, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &report, nil
}

func (r *reportRepo) Create(report *model.Report) error {
	return r.db.Create(report).Error
}

func (r *reportRepo) Update(report *model.Report) error {
	return r.db.Save(report).Error
}

func (r *reportRepo) Delete(id uuid.UUID) error {
	return r.db.Delete(&model.Report{}, "id = ?", id).Error
}
