package service

import (
	"context"

	"github.com/google/uuid"

	"go-safecity-ws/internal/model"
	"go-safecity-ws/internal/repository"
	"go-safecity-ws/internal/ws"
)

type UserService interface {
	GetUsers() ([]model.UserResponse, error)
	GetUser(id uuid.UUID) (*model.UserResponse, error)
	UpdateUser(id uuid.UUID, details *model.User, updatedBy string) (*model.UserResponse, error)
	UpdateRole(id uuid.UUID, role string, updatedBy string) (*model.UserResponse, error)
	GetOfficerPerformance(id uuid.UUID) (*OfficerPerformance, error)
	GetAllOfficersPerformance() ([]OfficerPerformance, error)
	UpdateOfficerLocation(ctx context.Context, officerID uuid.UUID, lat, lng float64) error
	Heartbeat(userID uuid.UUID) error
}

// OfficerPerformance aggregates an officer's workload and rating.
type OfficerPerformance struct {
	OfficerID     uuid.UUID `json:"officerId"`
	Name          string    `json:"name"`
	BadgeNumber   string    `json:"badgeNumber,omitempty"`
	Rating        *float64  `json:"rating,omitempty"`
	AssignedCases int       `json:"assignedCases"`
	ResolvedCases int64     `json:"resolvedCases"`
}

type userService struct {
	userRepo  repository.UserRepository
	caseRepo  repository.CaseRepository
	locations repository.LocationStore
	hub       ws.Broadcaster
}

func NewUserService(userRepo repository.UserRepository, caseRepo repository.CaseRepository, locations repository.LocationStore, hub ws.Broadcaster) UserService {
	return &userService{
		userRepo:  userRepo,
		caseRepo:  caseRepo,
		locations: locations,
		hub:       hub,
	}
}

func (s *userService) GetUsers() ([]model.UserResponse, error) {
	users, err := s.userRepo.FindAll()
	if err != nil {
		return nil, err
	}

	responses := make([]model.UserResponse, len(users))
	for i, u := range users {
		responses[i] = u.ToResponse()
	}
	return responses, nil
}

func (s *userService) GetUser(id uuid.UUID) (*model.UserResponse, error) {
	user, err := s.userRepo.FindByID(id)
	if err != nil {
		return nil, ErrUserNotFound
	}
	resp := user.ToResponse()
	return &resp, nil
}

func (s *userService) UpdateUser(id uuid.UUID, details *model.User, updatedBy string) (*model.UserResponse, error) {
	user, err := s.userRepo.FindByID(id)
	if err != nil {
		return nil, ErrUserNotFound
	}

	if details.Name != "" {
		user.Name = details.Name
	}
	if details.Avatar != "" {
		user.Avatar = details.Avatar
	}
	if details.BadgeNumber != "" {
		user.BadgeNumber = details.BadgeNumber
	}
	user.UpdatedBy = updatedBy

	if err := s.userRepo.Update(user); err != nil {
		return nil, err
	}
	resp := user.ToResponse()
	return &resp, nil
}

func (s *userService) UpdateRole(id uuid.UUID, role string, updatedBy string) (*model.UserResponse, error) {
	parsed, err := model.ParseRole(role)
	if err != nil {
		return nil, err
	}

	user, err := s.userRepo.FindByID(id)
	if err != nil {
		return nil, ErrUserNotFound
	}

	if err := s.userRepo.UpdateRole(id, parsed); err != nil {
		return nil, err
	}

	// Role changes revoke outstanding tokens so stale capabilities die
	// with the old session.
	if err := s.userRepo.UpdateTokenVersion(id, uuid.New().String()); err != nil {
		return nil, err
	}

	user.Role = parsed
	user.UpdatedBy = updatedBy
	resp := user.ToResponse()
	return &resp, nil
}

func (s *userService) GetOfficerPerformance(id uuid.UUID) (*OfficerPerformance, error) {
	user, err := s.userRepo.FindByID(id)
	if err != nil {
		return nil, ErrUserNotFound
	}

	assigned, err := s.caseRepo.FindByAssignee(id)
	if err != nil {
		return nil, err
	}

	resolved, err := s.caseRepo.CountResolvedByOfficer()
	if err != nil {
		return nil, err
	}

	return &OfficerPerformance{
		OfficerID:     user.ID,
		Name:          user.Name,
		BadgeNumber:   user.BadgeNumber,
		Rating:        user.PerformanceRating,
		AssignedCases: len(assigned),
		ResolvedCases: resolved[id],
	}, nil
}

func (s *userService) GetAllOfficersPerformance() ([]OfficerPerformance, error) {
	officers, err := s.userRepo.FindByRole(model.RoleOfficer)
	if err != nil {
		return nil, err
	}

	resolved, err := s.caseRepo.CountResolvedByOfficer()
	if err != nil {
		return nil, err
	}

	performances := make([]OfficerPerformance, 0, len(officers))
	for _, officer := range officers {
		assigned, err := s.caseRepo.FindByAssignee(officer.ID)
		if err != nil {
			return nil, err
		}
		performances = append(performances, OfficerPerformance{
			OfficerID:     officer.ID,
			Name:          officer.Name,
			BadgeNumber:   officer.BadgeNumber,
			Rating:        officer.PerformanceRating,
			AssignedCases: len(assigned),
			ResolvedCases: resolved[officer.ID],
		})
	}
	return performances, nil
}

func (s *userService) UpdateOfficerLocation(ctx context.Context, officerID uuid.UUID, lat, lng float64) error {
	if err := s.locations.Update(ctx, officerID, lat, lng); err != nil {
		return err
	}

	s.hub.BroadcastMessage(ws.TypeOfficerLocationUpdate, map[string]any{
		"officerId": officerID,
		"latitude":  lat,
		"longitude": lng,
	})
	return nil
}

func (s *userService) Heartbeat(userID uuid.UUID) error {
	return s.userRepo.UpdateLastSeen(userID)
}
