package service

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"go-safecity-ws/internal/model"
	"go-safecity-ws/internal/repository"
	"go-safecity-ws/internal/ws"
)

var errNotFound = errors.New("record not found")

// fakeBroadcaster records every broadcast for assertions.
type fakeBroadcaster struct {
	messages []broadcastRecord
}

type broadcastRecord struct {
	Type    ws.MessageType
	Payload any
}

func (f *fakeBroadcaster) BroadcastMessage(t ws.MessageType, payload any) {
	f.messages = append(f.messages, broadcastRecord{Type: t, Payload: payload})
}

func (f *fakeBroadcaster) last() (broadcastRecord, bool) {
	if len(f.messages) == 0 {
		return broadcastRecord{}, false
	}
	return f.messages[len(f.messages)-1], true
}

type fakeUserRepo struct {
	users map[uuid.UUID]*model.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[uuid.UUID]*model.User)}
}

func (r *fakeUserRepo) FindByEmail(email string) (*model.User, error) {
	for _, u := range r.users {
		if u.Email == email {
			copied := *u
			return &copied, nil
		}
	}
	return nil, errNotFound
}

func (r *fakeUserRepo) FindByAadhaar(number string) (*model.User, error) {
	for _, u := range r.users {
		if u.AadhaarNumber != "" && u.AadhaarNumber == number {
			copied := *u
			return &copied, nil
		}
	}
	return nil, errNotFound
}

func (r *fakeUserRepo) FindByID(id uuid.UUID) (*model.User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, errNotFound
	}
	copied := *u
	return &copied, nil
}

func (r *fakeUserRepo) Create(user *model.User) error {
	if user.ID == uuid.Nil {
		user.ID = uuid.New()
	}
	copied := *user
	r.users[user.ID] = &copied
	return nil
}

func (r *fakeUserRepo) Update(user *model.User) error {
	if _, ok := r.users[user.ID]; !ok {
		return errNotFound
	}
	copied := *user
	r.users[user.ID] = &copied
	return nil
}

func (r *fakeUserRepo) Delete(id uuid.UUID) error {
	delete(r.users, id)
	return nil
}

func (r *fakeUserRepo) FindAll() ([]model.User, error) {
	out := make([]model.User, 0, len(r.users))
	for _, u := range r.users {
		out = append(out, *u)
	}
	return out, nil
}

func (r *fakeUserRepo) FindByRole(role model.UserRole) ([]model.User, error) {
	var out []model.User
	for _, u := range r.users {
		if u.Role == role {
			out = append(out, *u)
		}
	}
	return out, nil
}

func (r *fakeUserRepo) UpdateRole(userID uuid.UUID, role model.UserRole) error {
	u, ok := r.users[userID]
	if !ok {
		return errNotFound
	}
	u.Role = role
	return nil
}

func (r *fakeUserRepo) UpdateTokenVersion(userID uuid.UUID, version string) error {
	u, ok := r.users[userID]
	if !ok {
		return errNotFound
	}
	u.TokenVersion = version
	return nil
}

func (r *fakeUserRepo) UpdateLastSeen(userID uuid.UUID) error {
	if _, ok := r.users[userID]; !ok {
		return errNotFound
	}
	return nil
}

type fakeOTPStore struct {
	codes map[string]string
}

func newFakeOTPStore() *fakeOTPStore {
	return &fakeOTPStore{codes: make(map[string]string)}
}

func (s *fakeOTPStore) Put(ctx context.Context, aadhaarNumber, otp string) error {
	s.codes[aadhaarNumber] = otp
	return nil
}

func (s *fakeOTPStore) Take(ctx context.Context, aadhaarNumber string) (string, error) {
	otp, ok := s.codes[aadhaarNumber]
	if !ok {
		return "", repository.ErrOTPNotFound
	}
	delete(s.codes, aadhaarNumber)
	return otp, nil
}

type fakeReportRepo struct {
	reports map[uuid.UUID]*model.Report
}

func newFakeReportRepo() *fakeReportRepo {
	return &fakeReportRepo{reports: make(map[uuid.UUID]*model.Report)}
}

func (r *fakeReportRepo) FindAll(req repository.PageRequest) (*repository.Page[model.Report], error) {
	var out []model.Report
	for _, rep := range r.reports {
		out = append(out, *rep)
	}
	return &repository.Page[model.Report]{Content: out, TotalElements: int64(len(out))}, nil
}

func (r *fakeReportRepo) FindByStatus(status model.ReportStatus, req repository.PageRequest) (*repository.Page[model.Report], error) {
	var out []model.Report
	for _, rep := range r.reports {
		if rep.Status == status {
			out = append(out, *rep)
		}
	}
	return &repository.Page[model.Report]{Content: out, TotalElements: int64(len(out))}, nil
}

func (r *fakeReportRepo) FindByReporter(reporter string) ([]model.Report, error) {
	var out []model.Report
	for _, rep := range r.reports {
		if rep.ReportedBy == reporter {
			out = append(out, *rep)
		}
	}
	return out, nil
}

func (r *fakeReportRepo) FindByID(id uuid.UUID) (*model.Report, error) {
	rep, ok := r.reports[id]
	if !ok {
		return nil, errNotFound
	}
	copied := *rep
	return &copied, nil
}

func (r *fakeReportRepo) Create(report *model.Report) error {
	if report.ID == uuid.Nil {
		report.ID = uuid.New()
	}
	copied := *report
	r.reports[report.ID] = &copied
	return nil
}

func (r *fakeReportRepo) Update(report *model.Report) error {
	if _, ok := r.reports[report.ID]; !ok {
		return errNotFound
	}
	copied := *report
	r.reports[report.ID] = &copied
	return nil
}

func (r *fakeReportRepo) Delete(id uuid.UUID) error {
	delete(r.reports, id)
	return nil
}

type fakeSOSRepo struct {
	alerts map[uuid.UUID]*model.SOSAlert
}

func newFakeSOSRepo() *fakeSOSRepo {
	return &fakeSOSRepo{alerts: make(map[uuid.UUID]*model.SOSAlert)}
}

func (r *fakeSOSRepo) Create(alert *model.SOSAlert) error {
	if alert.ID == uuid.Nil {
		alert.ID = uuid.New()
	}
	copied := *alert
	r.alerts[alert.ID] = &copied
	return nil
}

func (r *fakeSOSRepo) FindByID(id uuid.UUID) (*model.SOSAlert, error) {
	alert, ok := r.alerts[id]
	if !ok {
		return nil, errNotFound
	}
	copied := *alert
	return &copied, nil
}

func (r *fakeSOSRepo) FindActive() ([]model.SOSAlert, error) {
	var out []model.SOSAlert
	for _, a := range r.alerts {
		if a.Status == model.SOSActive || a.Status == model.SOSAcknowledged {
			out = append(out, *a)
		}
	}
	return out, nil
}

func (r *fakeSOSRepo) Update(alert *model.SOSAlert) error {
	if _, ok := r.alerts[alert.ID]; !ok {
		return errNotFound
	}
	copied := *alert
	r.alerts[alert.ID] = &copied
	return nil
}

type fakeCaseRepo struct {
	cases map[uuid.UUID]*model.Case
	notes []model.CaseNote
}

func newFakeCaseRepo() *fakeCaseRepo {
	return &fakeCaseRepo{cases: make(map[uuid.UUID]*model.Case)}
}

func (r *fakeCaseRepo) FindAll(req repository.PageRequest) (*repository.Page[model.Case], error) {
	var out []model.Case
	for _, c := range r.cases {
		out = append(out, *c)
	}
	return &repository.Page[model.Case]{Content: out, TotalElements: int64(len(out))}, nil
}

func (r *fakeCaseRepo) FindByID(id uuid.UUID) (*model.Case, error) {
	c, ok := r.cases[id]
	if !ok {
		return nil, errNotFound
	}
	copied := *c
	return &copied, nil
}

func (r *fakeCaseRepo) FindByAssignee(officerID uuid.UUID) ([]model.Case, error) {
	var out []model.Case
	for _, c := range r.cases {
		if c.AssignedTo != nil && *c.AssignedTo == officerID {
			out = append(out, *c)
		}
	}
	return out, nil
}

func (r *fakeCaseRepo) CountByStatus() (map[model.CaseStatus]int64, error) {
	out := make(map[model.CaseStatus]int64)
	for _, c := range r.cases {
		out[c.Status]++
	}
	return out, nil
}

func (r *fakeCaseRepo) CountResolvedByOfficer() (map[uuid.UUID]int64, error) {
	out := make(map[uuid.UUID]int64)
	for _, c := range r.cases {
		if c.Status == model.CaseStatusClosed && c.AssignedTo != nil {
			out[*c.AssignedTo]++
		}
	}
	return out, nil
}

func (r *fakeCaseRepo) Create(c *model.Case) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	copied := *c
	r.cases[c.ID] = &copied
	return nil
}

func (r *fakeCaseRepo) Update(c *model.Case) error {
	if _, ok := r.cases[c.ID]; !ok {
		return errNotFound
	}
	copied := *c
	r.cases[c.ID] = &copied
	return nil
}

func (r *fakeCaseRepo) Delete(id uuid.UUID) error {
	delete(r.cases, id)
	return nil
}

func (r *fakeCaseRepo) AddNote(note *model.CaseNote) error {
	if note.ID == uuid.Nil {
		note.ID = uuid.New()
	}
	r.notes = append(r.notes, *note)
	return nil
}

type fakeLocationStore struct {
	positions []repository.OfficerPosition
	updates   []repository.OfficerPosition
}

func (s *fakeLocationStore) Update(ctx context.Context, officerID uuid.UUID, lat, lng float64) error {
	s.updates = append(s.updates, repository.OfficerPosition{OfficerID: officerID, Latitude: lat, Longitude: lng})
	return nil
}

func (s *fakeLocationStore) Nearby(ctx context.Context, lat, lng, radiusKm float64) ([]repository.OfficerPosition, error) {
	return s.positions, nil
}

func (s *fakeLocationStore) Active(ctx context.Context) ([]repository.OfficerPosition, error) {
	return s.positions, nil
}
