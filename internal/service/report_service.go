package service

import (
	"context"
	"errors"
	"fmt"
	"mime/multipart"
	"strings"

	"github.com/google/uuid"

	"go-safecity-ws/internal/model"
	"go-safecity-ws/internal/repository"
	"go-safecity-ws/internal/storage"
	"go-safecity-ws/internal/ws"
	"go-safecity-ws/pkg/validator"
)

var ErrReportNotFound = errors.New("report not found")

type ReportService interface {
	GetReports(req repository.PageRequest) (*repository.Page[model.Report], error)
	GetReportsByStatus(status model.ReportStatus, req repository.PageRequest) (*repository.Page[model.Report], error)
	GetReportsByUser(reporter string) ([]model.Report, error)
	GetReport(id uuid.UUID) (*model.Report, error)
	CreateReport(report *model.Report, reporter string) (*model.Report, error)
	CreateVoiceReport(ctx context.Context, audio multipart.File, report *model.Report, reporter string) (*model.Report, error)
	UpdateReport(id uuid.UUID, details *model.Report, updatedBy string) (*model.Report, error)
	ApproveReport(id uuid.UUID, updatedBy string) (*model.Report, error)
	RejectReport(id uuid.UUID, updatedBy string) (*model.Report, error)
	DeleteReport(id uuid.UUID) error
}

type reportService struct {
	reportRepo repository.ReportRepository
	uploader   storage.Uploader
	hub        ws.Broadcaster
}

func NewReportService(reportRepo repository.ReportRepository, uploader storage.Uploader, hub ws.Broadcaster) ReportService {
	return &reportService{
		reportRepo: reportRepo,
		uploader:   uploader,
		hub:        hub,
	}
}

func (s *reportService) GetReports(req repository.PageRequest) (*repository.Page[model.Report], error) {
	return s.reportRepo.FindAll(req)
}

func (s *reportService) GetReportsByStatus(status model.ReportStatus, req repository.PageRequest) (*repository.Page[model.Report], error) {
	return s.reportRepo.FindByStatus(status, req)
}

func (s *reportService) GetReportsByUser(reporter string) ([]model.Report, error) {
	return s.reportRepo.FindByReporter(reporter)
}

func (s *reportService) GetReport(id uuid.UUID) (*model.Report, error) {
	report, err := s.reportRepo.FindByID(id)
	if err != nil {
		return nil, ErrReportNotFound
	}
	return report, nil
}

func (s *reportService) CreateReport(report *model.Report, reporter string) (*model.Report, error) {
	if errs := validator.ValidateStruct(report); len(errs) > 0 {
		first := errs[0]
		return nil, fmt.Errorf("validation failed: field '%s' failed on tag '%s'", first.FailedField, first.Tag)
	}

	if report.ReportNumber == "" {
		report.ReportNumber = generateNumber("RPT")
	}
	if report.ReportType == "" {
		report.ReportType = "GENERAL"
	}
	if report.Status == "" {
		report.Status = model.ReportStatusNew
	}

	// Anonymous reports carry the literal marker and no reporter identity.
	if report.Anonymous || reporter == "" {
		report.ReportedBy = model.AnonymousReporter
		report.ContactInfo = ""
	} else {
		report.ReportedBy = reporter
	}
	report.CreatedBy = report.ReportedBy
	report.UpdatedBy = report.ReportedBy

	if err := s.reportRepo.Create(report); err != nil {
		return nil, err
	}

	s.hub.BroadcastMessage(ws.TypeIncidentReport, report)
	return report, nil
}

func (s *reportService) CreateVoiceReport(ctx context.Context, audio multipart.File, report *model.Report, reporter string) (*model.Report, error) {
	url, err := s.uploader.UploadAudio(ctx, audio)
	if err != nil {
		return nil, fmt.Errorf("voice upload failed: %w", err)
	}

	report.AudioURL = url
	if report.Description == "" {
		report.Description = "Voice report (see attached audio)"
	}
	if report.ReportType == "" {
		report.ReportType = "VOICE"
	}

	return s.CreateReport(report, reporter)
}

func (s *reportService) UpdateReport(id uuid.UUID, details *model.Report, updatedBy string) (*model.Report, error) {
	existing, err := s.reportRepo.FindByID(id)
	if err != nil {
		return nil, ErrReportNotFound
	}

	existing.ReportType = details.ReportType
	existing.Description = details.Description
	existing.Location = details.Location
	existing.Latitude = details.Latitude
	existing.Longitude = details.Longitude
	existing.UpdatedBy = updatedBy

	if err := s.reportRepo.Update(existing); err != nil {
		return nil, err
	}
	return existing, nil
}

func (s *reportService) ApproveReport(id uuid.UUID, updatedBy string) (*model.Report, error) {
	return s.setStatus(id, model.ReportStatusApproved, updatedBy)
}

func (s *reportService) RejectReport(id uuid.UUID, updatedBy string) (*model.Report, error) {
	return s.setStatus(id, model.ReportStatusRejected, updatedBy)
}

func (s *reportService) setStatus(id uuid.UUID, status model.ReportStatus, updatedBy string) (*model.Report, error) {
	report, err := s.reportRepo.FindByID(id)
	if err != nil {
		return nil, ErrReportNotFound
	}

	report.Status = status
	report.UpdatedBy = updatedBy
	if err := s.reportRepo.Update(report); err != nil {
		return nil, err
	}

	s.hub.BroadcastMessage(ws.TypeAlertStatusUpdate, map[string]any{
		"reportId":     report.ID,
		"reportNumber": report.ReportNumber,
		"status":       report.Status,
	})
	return report, nil
}

func (s *reportService) DeleteReport(id uuid.UUID) error {
	if _, err := s.reportRepo.FindByID(id); err != nil {
		return ErrReportNotFound
	}
	return s.reportRepo.Delete(id)
}

// generateNumber builds human-readable record numbers like RPT-1A2B3C4D.
func generateNumber(prefix string) string {
	return prefix + "-" + strings.ToUpper(uuid.New().String()[:8])
}
