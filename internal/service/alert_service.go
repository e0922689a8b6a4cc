package service

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"go-safecity-ws/internal/model"
	"go-safecity-ws/internal/repository"
	"go-safecity-ws/internal/ws"
	"go-safecity-ws/pkg/validator"
)

var ErrAlertNotFound = errors.New("alert not found")

type AlertService interface {
	GetAlerts() ([]model.Alert, error)
	GetAlertsByType(t model.AlertType) ([]model.Alert, error)
	GetAlertsByRead(isRead bool) ([]model.Alert, error)
	GetAlertsByUser(userID uuid.UUID) ([]model.Alert, error)
	CreateAlert(alert *model.Alert, createdBy string) (*model.Alert, error)
	MarkAsRead(id uuid.UUID) (*model.Alert, error)
	DeleteAlert(id uuid.UUID) error
}

type alertService struct {
	alertRepo repository.AlertRepository
	hub       ws.Broadcaster
}

func NewAlertService(alertRepo repository.AlertRepository, hub ws.Broadcaster) AlertService {
	return &alertService{alertRepo: alertRepo, hub: hub}
}

func (s *alertService) GetAlerts() ([]model.Alert, error) {
	return s.alertRepo.FindAll()
}

func (s *alertService) GetAlertsByType(t model.AlertType) ([]model.Alert, error) {
	return s.alertRepo.FindByType(t)
}

func (s *alertService) GetAlertsByRead(isRead bool) ([]model.Alert, error) {
	return s.alertRepo.FindByRead(isRead)
}

func (s *alertService) GetAlertsByUser(userID uuid.UUID) ([]model.Alert, error) {
	return s.alertRepo.FindByUser(userID)
}

func (s *alertService) CreateAlert(alert *model.Alert, createdBy string) (*model.Alert, error) {
	if errs := validator.ValidateStruct(alert); len(errs) > 0 {
		first := errs[0]
		return nil, fmt.Errorf("validation failed: field '%s' failed on tag '%s'", first.FailedField, first.Tag)
	}

	if alert.Timestamp.IsZero() {
		alert.Timestamp = time.Now()
	}
	alert.IsRead = false
	alert.CreatedBy = createdBy
	alert.UpdatedBy = createdBy

	if err := s.alertRepo.Create(alert); err != nil {
		return nil, err
	}

	// Emergency alerts use the dedicated tag so clients raise the
	// emergency cue.
	if alert.Type == model.AlertEmergency {
		s.hub.BroadcastMessage(ws.TypeEmergency, alert)
	} else {
		s.hub.BroadcastMessage(ws.TypeAlertStatusUpdate, alert)
	}
	return alert, nil
}

func (s *alertService) MarkAsRead(id uuid.UUID) (*model.Alert, error) {
	alert, err := s.alertRepo.FindByID(id)
	if err != nil {
		return nil, ErrAlertNotFound
	}

	alert.IsRead = true
	if err := s.alertRepo.Update(alert); err != nil {
		return nil, err
	}

	s.hub.BroadcastMessage(ws.TypeAlertStatusUpdate, map[string]any{
		"alertId": alert.ID,
		"isRead":  true,
	})
	return alert, nil
}

func (s *alertService) DeleteAlert(id uuid.UUID) error {
	if _, err := s.alertRepo.FindByID(id); err != nil {
		return ErrAlertNotFound
	}
	return s.alertRepo.Delete(id)
}
