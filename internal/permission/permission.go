package permission

import "go-safecity-ws/internal/model"

// Permissions is the set of UI capabilities a role grants. It is derived,
// never stored: recompute from the current role on every read.
type Permissions struct {
	CanViewDashboard           bool `json:"canViewDashboard"`
	CanViewReports             bool `json:"canViewReports"`
	CanManageUsers             bool `json:"canManageUsers"`
	CanApproveReports          bool `json:"canApproveReports"`
	CanEditAlerts              bool `json:"canEditAlerts"`
	CanViewMap                 bool `json:"canViewMap"`
	CanAccessAnalytics         bool `json:"canAccessAnalytics"`
	CanViewPerformanceInsights bool `json:"canViewPerformanceInsights"`
	CanUsePredictiveAnalysis   bool `json:"canUsePredictiveAnalysis"`
	CanViewOfficerPerformance  bool `json:"canViewOfficerPerformance"`
}

// For returns the capability set for a role. An unknown or empty role
// (unauthenticated) grants nothing.
func For(role model.UserRole) Permissions {
	switch role {
	case model.RoleAdmin:
		return Permissions{
			CanViewDashboard:           true,
			CanViewReports:             true,
			CanManageUsers:             true,
			CanApproveReports:          true,
			CanEditAlerts:              true,
			CanViewMap:                 true,
			CanAccessAnalytics:         true,
			CanViewPerformanceInsights: true,
			CanUsePredictiveAnalysis:   true,
			CanViewOfficerPerformance:  true,
		}
	case model.RoleOfficer:
		return Permissions{
			CanViewDashboard:  true,
			CanViewReports:    true,
			CanApproveReports: true,
			CanEditAlerts:     true,
			CanViewMap:        true,
		}
	case model.RoleUser:
		return Permissions{
			CanViewReports: true,
			CanViewMap:     true,
		}
	default:
		return Permissions{}
	}
}
