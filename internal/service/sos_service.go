package service

import (
	"context"
	"errors"
	"math"
	"time"

	"github.com/google/uuid"

	"go-safecity-ws/internal/model"
	"go-safecity-ws/internal/repository"
	"go-safecity-ws/internal/ws"
)

var (
	ErrSOSNotFound   = errors.New("sos alert not found")
	ErrSOSNotActive  = errors.New("sos alert is not active")
	ErrInvalidLatLng = errors.New("invalid coordinates")
)

// Officers within this radius are flagged as responders for a new SOS.
const sosNearbyRadiusKm = 5.0

type SOSService interface {
	Trigger(ctx context.Context, userID uuid.UUID, lat, lng float64, details string) (*model.SOSAlert, error)
	GetActive() ([]model.SOSAlert, error)
	Respond(id, officerID uuid.UUID) (*model.SOSAlert, error)
	Resolve(id uuid.UUID) (*model.SOSAlert, error)
}

type sosService struct {
	sosRepo   repository.SOSRepository
	locations repository.LocationStore
	hub       ws.Broadcaster
}

func NewSOSService(sosRepo repository.SOSRepository, locations repository.LocationStore, hub ws.Broadcaster) SOSService {
	return &sosService{
		sosRepo:   sosRepo,
		locations: locations,
		hub:       hub,
	}
}

func (s *sosService) Trigger(ctx context.Context, userID uuid.UUID, lat, lng float64, details string) (*model.SOSAlert, error) {
	if lat < -90 || lat > 90 || lng < -180 || lng > 180 {
		return nil, ErrInvalidLatLng
	}

	alert := &model.SOSAlert{
		Latitude:    lat,
		Longitude:   lng,
		Details:     details,
		Status:      model.SOSActive,
		TriggeredBy: userID,
	}
	alert.CreatedBy = userID.String()
	alert.UpdatedBy = userID.String()

	if err := s.sosRepo.Create(alert); err != nil {
		return nil, err
	}

	nearby, err := s.locations.Nearby(ctx, lat, lng, sosNearbyRadiusKm)
	if err != nil {
		// Proximity is an enhancement; the alert still goes out.
		nearby = nil
	}

	s.hub.BroadcastMessage(ws.TypeSOSAlert, map[string]any{
		"alertId":        alert.ID,
		"latitude":       alert.Latitude,
		"longitude":      alert.Longitude,
		"details":        alert.Details,
		"triggeredBy":    alert.TriggeredBy,
		"timestamp":      alert.CreatedAt.UnixMilli(),
		"nearbyOfficers": nearby,
	})
	return alert, nil
}

func (s *sosService) GetActive() ([]model.SOSAlert, error) {
	return s.sosRepo.FindActive()
}

func (s *sosService) Respond(id, officerID uuid.UUID) (*model.SOSAlert, error) {
	alert, err := s.sosRepo.FindByID(id)
	if err != nil {
		return nil, ErrSOSNotFound
	}
	if alert.Status != model.SOSActive {
		return nil, ErrSOSNotActive
	}

	now := time.Now()
	alert.Status = model.SOSAcknowledged
	alert.RespondingOfficerID = &officerID
	alert.AcknowledgedAt = &now
	alert.UpdatedBy = officerID.String()

	if err := s.sosRepo.Update(alert); err != nil {
		return nil, err
	}

	s.hub.BroadcastMessage(ws.TypeAlertStatusUpdate, map[string]any{
		"alertId":   alert.ID,
		"status":    alert.Status,
		"officerId": officerID,
	})
	return alert, nil
}

func (s *sosService) Resolve(id uuid.UUID) (*model.SOSAlert, error) {
	alert, err := s.sosRepo.FindByID(id)
	if err != nil {
		return nil, ErrSOSNotFound
	}

	now := time.Now()
	alert.Status = model.SOSResolved
	alert.ResolvedAt = &now

	if err := s.sosRepo.Update(alert); err != nil {
		return nil, err
	}

	s.hub.BroadcastMessage(ws.TypeAlertStatusUpdate, map[string]any{
		"alertId": alert.ID,
		"status":  alert.Status,
	})
	return alert, nil
}

// Haversine distance in kilometres.
func Distance(lat1, lng1, lat2, lng2 float64) float64 {
	const earthRadiusKm = 6371

	latDelta := toRadians(lat2 - lat1)
	lngDelta := toRadians(lng2 - lng1)

	a := math.Sin(latDelta/2)*math.Sin(latDelta/2) +
		math.Cos(toRadians(lat1))*math.Cos(toRadians(lat2))*
			math.Sin(lngDelta/2)*math.Sin(lngDelta/2)
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))

	return earthRadiusKm * c
}

func toRadians(deg float64) float64 {
	return deg * math.Pi / 180
}
