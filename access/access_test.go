package access

import (
	"testing"

	"cityfix-be/models"

	"github.com/stretchr/testify/assert"
)

func TestCan(t *testing.T) {
	tests := []struct {
		name   string
		role   models.Role
		action Action
		facts  Facts
		want   bool
	}{
		{"citizen creates issue", models.RoleCitizen, ActionCreateIssue, Facts{}, true},
		{"sector admin cannot create issue", models.RoleSectorAdmin, ActionCreateIssue, Facts{}, false},
		{"citizen votes", models.RoleCitizen, ActionVote, Facts{}, true},
		{"super admin cannot vote", models.RoleSuperAdmin, ActionVote, Facts{}, false},
		{"anyone comments", models.RoleSectorAdmin, ActionComment, Facts{}, true},
		{"owner edits", models.RoleCitizen, ActionEditIssue, Facts{Owner: true}, true},
		{"non-owner cannot edit", models.RoleCitizen, ActionEditIssue, Facts{}, false},
		{"sector admin updates own department", models.RoleSectorAdmin, ActionUpdateStatus, Facts{SameDepartment: true}, true},
		{"sector admin cannot update other department", models.RoleSectorAdmin, ActionUpdateStatus, Facts{}, false},
		{"super admin cannot update status", models.RoleSuperAdmin, ActionUpdateStatus, Facts{SameDepartment: true}, false},
		{"sector admin views analytics", models.RoleSectorAdmin, ActionViewAnalytics, Facts{}, true},
		{"citizen cannot view analytics", models.RoleCitizen, ActionViewAnalytics, Facts{}, false},
		{"super admin moderates", models.RoleSuperAdmin, ActionModerate, Facts{}, true},
		{"sector admin cannot moderate", models.RoleSectorAdmin, ActionModerate, Facts{}, false},
		{"super admin reconciles", models.RoleSuperAdmin, ActionReconcile, Facts{}, true},
		{"unknown role", models.Role("GUEST"), ActionComment, Facts{}, false},
		{"unknown action", models.RoleSuperAdmin, Action("launch"), Facts{}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Can(tt.role, tt.action, tt.facts))
		})
	}
}

func TestRoleMayAttemptIgnoresFacts(t *testing.T) {
	assert.True(t, RoleMayAttempt(models.RoleCitizen, ActionEditIssue))
	assert.True(t, RoleMayAttempt(models.RoleSectorAdmin, ActionUpdateStatus))
	assert.False(t, RoleMayAttempt(models.RoleSuperAdmin, ActionUpdateStatus))
}
