package permission

import (
	"testing"

	"go-safecity-ws/internal/model"
)

func TestAdminPermissions(t *testing.T) {
	p := For(model.RoleAdmin)

	if p != (Permissions{
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
	}) {
		t.Errorf("admin permissions mismatch: %+v", p)
	}
}

func TestOfficerPermissions(t *testing.T) {
	p := For(model.RoleOfficer)

	if !p.CanViewDashboard || !p.CanViewReports || !p.CanApproveReports || !p.CanEditAlerts || !p.CanViewMap {
		t.Errorf("officer is missing granted capabilities: %+v", p)
	}
	if p.CanManageUsers || p.CanAccessAnalytics || p.CanViewPerformanceInsights || p.CanUsePredictiveAnalysis || p.CanViewOfficerPerformance {
		t.Errorf("officer has admin-only capabilities: %+v", p)
	}
}

func TestUserPermissions(t *testing.T) {
	p := For(model.RoleUser)

	if !p.CanViewReports || !p.CanViewMap {
		t.Errorf("user is missing granted capabilities: %+v", p)
	}
	if p.CanViewDashboard || p.CanManageUsers || p.CanApproveReports || p.CanEditAlerts ||
		p.CanAccessAnalytics || p.CanViewPerformanceInsights || p.CanUsePredictiveAnalysis || p.CanViewOfficerPerformance {
		t.Errorf("user has elevated capabilities: %+v", p)
	}
}

func TestUnknownRoleGrantsNothing(t *testing.T) {
	for _, role := range []model.UserRole{"", "GUEST", "SUPERADMIN"} {
		if p := For(role); p != (Permissions{}) {
			t.Errorf("For(%q) = %+v, want all false", role, p)
		}
	}
}
