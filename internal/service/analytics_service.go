package service

import (
	"errors"
	"time"

	"go-safecity-ws/internal/model"
	"go-safecity-ws/internal/repository"
)

var ErrUnknownTimeframe = errors.New("unknown timeframe")

type AnalyticsService interface {
	GetCrimeStatistics() (*CrimeStatistics, error)
	GetCrimeTrends(timeframe string) ([]repository.TrendPoint, error)
	GetPredictiveAnalysis(area string) (*AreaRiskAssessment, error)
}

// CrimeStatistics is the admin dashboard overview.
type CrimeStatistics struct {
	IncidentsByType map[string]int64           `json:"incidentsByType"`
	CasesByStatus   map[model.CaseStatus]int64 `json:"casesByStatus"`
	WindowDays      int                        `json:"windowDays"`
}

// AreaRiskAssessment is a coarse risk score for one area based on recent
// incident volume.
type AreaRiskAssessment struct {
	Area            string `json:"area"`
	RecentIncidents int64  `json:"recentIncidents"`
	RiskLevel       string `json:"riskLevel"`
}

const statsWindowDays = 30

type analyticsService struct {
	incidentRepo repository.IncidentRepository
	caseRepo     repository.CaseRepository
}

func NewAnalyticsService(incidentRepo repository.IncidentRepository, caseRepo repository.CaseRepository) AnalyticsService {
	return &analyticsService{
		incidentRepo: incidentRepo,
		caseRepo:     caseRepo,
	}
}

func (s *analyticsService) GetCrimeStatistics() (*CrimeStatistics, error) {
	since := time.Now().AddDate(0, 0, -statsWindowDays)

	byType, err := s.incidentRepo.CountByTypeSince(since)
	if err != nil {
		return nil, err
	}

	byStatus, err := s.caseRepo.CountByStatus()
	if err != nil {
		return nil, err
	}

	return &CrimeStatistics{
		IncidentsByType: byType,
		CasesByStatus:   byStatus,
		WindowDays:      statsWindowDays,
	}, nil
}

func (s *analyticsService) GetCrimeTrends(timeframe string) ([]repository.TrendPoint, error) {
	end := time.Now()
	var start time.Time

	switch timeframe {
	case "weekly":
		start = end.AddDate(0, 0, -7)
	case "monthly", "":
		start = end.AddDate(0, -1, 0)
	case "yearly":
		start = end.AddDate(-1, 0, 0)
	default:
		return nil, ErrUnknownTimeframe
	}

	return s.incidentRepo.CountPerDay(start, end)
}

func (s *analyticsService) GetPredictiveAnalysis(area string) (*AreaRiskAssessment, error) {
	since := time.Now().AddDate(0, 0, -statsWindowDays)

	count, err := s.incidentRepo.CountByLocation(area, since)
	if err != nil {
		return nil, err
	}

	return &AreaRiskAssessment{
		Area:            area,
		RecentIncidents: count,
		RiskLevel:       riskLevel(count),
	}, nil
}

func riskLevel(recentIncidents int64) string {
	switch {
	case recentIncidents >= 50:
		return "HIGH"
	case recentIncidents >= 15:
		return "MEDIUM"
	default:
		return "LOW"
	}
}
