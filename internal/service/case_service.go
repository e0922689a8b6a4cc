package service

import (
	"errors"
	"fmt"

	"github.com/google/uuid"

	"go-safecity-ws/internal/model"
	"go-safecity-ws/internal/repository"
	"go-safecity-ws/internal/ws"
	"go-safecity-ws/pkg/validator"
)

var ErrCaseNotFound = errors.New("case not found")

type CaseService interface {
	GetCases(req repository.PageRequest) (*repository.Page[model.Case], error)
	GetCase(id uuid.UUID) (*model.Case, error)
	CreateCase(c *model.Case, createdBy string) (*model.Case, error)
	UpdateCase(id uuid.UUID, details *model.Case, updatedBy string) (*model.Case, error)
	DeleteCase(id uuid.UUID) error
	AddNote(caseID uuid.UUID, content, createdBy string) (*model.CaseNote, error)
}

type caseService struct {
	caseRepo repository.CaseRepository
	hub      ws.Broadcaster
}

func NewCaseService(caseRepo repository.CaseRepository, hub ws.Broadcaster) CaseService {
	return &caseService{caseRepo: caseRepo, hub: hub}
}

func (s *caseService) GetCases(req repository.PageRequest) (*repository.Page[model.Case], error) {
	return s.caseRepo.FindAll(req)
}

func (s *caseService) GetCase(id uuid.UUID) (*model.Case, error) {
	c, err := s.caseRepo.FindByID(id)
	if err != nil {
		return nil, ErrCaseNotFound
	}
	return c, nil
}

func (s *caseService) CreateCase(c *model.Case, createdBy string) (*model.Case, error) {
	if errs := validator.ValidateStruct(c); len(errs) > 0 {
		first := errs[0]
		return nil, fmt.Errorf("validation failed: field '%s' failed on tag '%s'", first.FailedField, first.Tag)
	}

	if c.CaseNumber == "" {
		c.CaseNumber = generateNumber("CASE")
	}
	if c.Status == "" {
		c.Status = model.CaseStatusOpen
	}
	if c.Priority == "" {
		c.Priority = model.CasePriorityMedium
	}
	c.CreatedBy = createdBy
	c.UpdatedBy = createdBy

	if err := s.caseRepo.Create(c); err != nil {
		return nil, err
	}

	s.hub.BroadcastMessage(ws.TypeCaseUpdate, c)
	return c, nil
}

func (s *caseService) UpdateCase(id uuid.UUID, details *model.Case, updatedBy string) (*model.Case, error) {
	existing, err := s.caseRepo.FindByID(id)
	if err != nil {
		return nil, ErrCaseNotFound
	}

	existing.Title = details.Title
	existing.Description = details.Description
	existing.Status = details.Status
	existing.Priority = details.Priority
	existing.Location = details.Location
	existing.District = details.District
	existing.AssignedTo = details.AssignedTo
	existing.UpdatedBy = updatedBy

	if err := s.caseRepo.Update(existing); err != nil {
		return nil, err
	}

	s.hub.BroadcastMessage(ws.TypeCaseUpdate, existing)
	return existing, nil
}

func (s *caseService) DeleteCase(id uuid.UUID) error {
	if _, err := s.caseRepo.FindByID(id); err != nil {
		return ErrCaseNotFound
	}
	return s.caseRepo.Delete(id)
}

func (s *caseService) AddNote(caseID uuid.UUID, content, createdBy string) (*model.CaseNote, error) {
	if _, err := s.caseRepo.FindByID(caseID); err != nil {
		return nil, ErrCaseNotFound
	}

	note := &model.CaseNote{
		CaseID:    caseID,
		Content:   content,
		CreatedBy: createdBy,
	}
	if err := s.caseRepo.AddNote(note); err != nil {
		return nil, err
	}

	s.hub.BroadcastMessage(ws.TypeCaseUpdate, map[string]any{
		"caseId": caseID,
		"note":   note,
	})
	return note, nil
}
