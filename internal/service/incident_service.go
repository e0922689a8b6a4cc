package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"go-safecity-ws/internal/model"
	"go-safecity-ws/internal/repository"
	"go-safecity-ws/internal/ws"
	"go-safecity-ws/pkg/validator"
)

var (
	ErrIncidentNotFound = errors.New("incident not found")
	ErrInvalidBounds    = errors.New("invalid map bounds")
)

// Officers within this radius of a new incident get a NEARBY_INCIDENT frame.
const nearbyIncidentRadiusKm = 5.0

type IncidentService interface {
	GetIncidents(req repository.PageRequest) (*repository.Page[model.Incident], error)
	GetIncident(id uuid.UUID) (*model.Incident, error)
	GetIncidentsInBounds(bounds model.MapBounds) ([]model.Incident, error)
	CreateIncident(ctx context.Context, incident *model.Incident, createdBy string) (*model.Incident, error)
	UpdateIncident(id uuid.UUID, details *model.Incident, updatedBy string) (*model.Incident, error)
	DeleteIncident(id uuid.UUID) error
}

type incidentService struct {
	incidentRepo repository.IncidentRepository
	locations    repository.LocationStore
	hub          ws.Broadcaster
}

func NewIncidentService(incidentRepo repository.IncidentRepository, locations repository.LocationStore, hub ws.Broadcaster) IncidentService {
	return &incidentService{
		incidentRepo: incidentRepo,
		locations:    locations,
		hub:          hub,
	}
}

func (s *incidentService) GetIncidents(req repository.PageRequest) (*repository.Page[model.Incident], error) {
	return s.incidentRepo.FindAll(req)
}

func (s *incidentService) GetIncident(id uuid.UUID) (*model.Incident, error) {
	incident, err := s.incidentRepo.FindByID(id)
	if err != nil {
		return nil, ErrIncidentNotFound
	}
	return incident, nil
}

func (s *incidentService) GetIncidentsInBounds(bounds model.MapBounds) ([]model.Incident, error) {
	if !bounds.Valid() {
		return nil, ErrInvalidBounds
	}
	return s.incidentRepo.FindInBounds(bounds)
}

func (s *incidentService) CreateIncident(ctx context.Context, incident *model.Incident, createdBy string) (*model.Incident, error) {
	if errs := validator.ValidateStruct(incident); len(errs) > 0 {
		first := errs[0]
		return nil, fmt.Errorf("validation failed: field '%s' failed on tag '%s'", first.FailedField, first.Tag)
	}

	if incident.IncidentNumber == "" {
		incident.IncidentNumber = generateNumber("INC")
	}
	if incident.Status == "" {
		incident.Status = "NEW"
	}
	incident.CreatedBy = createdBy
	incident.UpdatedBy = createdBy

	if err := s.incidentRepo.Create(incident); err != nil {
		return nil, err
	}

	s.hub.BroadcastMessage(ws.TypeNewIncident, incident)
	s.notifyNearbyOfficers(ctx, incident)

	return incident, nil
}

// notifyNearbyOfficers pushes a NEARBY_INCIDENT frame with per-officer
// distances when the incident carries coordinates. Lookup failures only
// cost the proximity hint, never the incident itself.
func (s *incidentService) notifyNearbyOfficers(ctx context.Context, incident *model.Incident) {
	if incident.Latitude == nil || incident.Longitude == nil {
		return
	}

	officers, err := s.locations.Nearby(ctx, *incident.Latitude, *incident.Longitude, nearbyIncidentRadiusKm)
	if err != nil || len(officers) == 0 {
		return
	}

	s.hub.BroadcastMessage(ws.TypeNearbyIncident, map[string]any{
		"incidentId":     incident.ID,
		"incidentNumber": incident.IncidentNumber,
		"title":          incident.Title,
		"severity":       incident.Severity,
		"latitude":       *incident.Latitude,
		"longitude":      *incident.Longitude,
		"officers":       officers,
	})
}

func (s *incidentService) UpdateIncident(id uuid.UUID, details *model.Incident, updatedBy string) (*model.Incident, error) {
	existing, err := s.incidentRepo.FindByID(id)
	if err != nil {
		return nil, ErrIncidentNotFound
	}

	existing.Title = details.Title
	existing.Description = details.Description
	existing.Type = details.Type
	existing.Severity = details.Severity
	existing.Location = details.Location
	existing.Status = details.Status
	existing.Latitude = details.Latitude
	existing.Longitude = details.Longitude
	existing.UpdatedBy = updatedBy

	if err := s.incidentRepo.Update(existing); err != nil {
		return nil, err
	}
	return existing, nil
}

func (s *incidentService) DeleteIncident(id uuid.UUID) error {
	if _, err := s.incidentRepo.FindByID(id); err != nil {
		return ErrIncidentNotFound
	}
	return s.incidentRepo.Delete(id)
}
