// Package access decides who may do what. Every rule is a pure function of the caller's role and two
// facts about the target: whether the caller owns it and whether it falls in the caller's department.
package access

import "cityfix-be/models"

type Action string

const (
	ActionCreateIssue     Action = "create_issue"
	ActionVote            Action = "vote"
	ActionReportIssue     Action = "report_issue"
	ActionComment         Action = "comment"
	ActionSubmitFeedback  Action = "submit_feedback"
	ActionEditIssue       Action = "edit_issue"
	ActionViewOwnIssues   Action = "view_own_issues"
	ActionViewAdminIssues Action = "view_admin_issues"
	ActionUpdateStatus    Action = "update_status"
	ActionViewAnalytics   Action = "view_analytics"
	ActionManageUsers     Action = "manage_users"
	ActionModerate        Action = "moderate"
	ActionReconcile       Action = "reconcile"
)

// Facts about the target of an action.
type Facts struct {
	Owner          bool
	SameDepartment bool
}

type rule struct {
	roles         []models.Role
	needsOwner    bool
	needsSameDept bool
}

var (
	citizenOnly = []models.Role{models.RoleCitizen}
	adminRoles  = []models.Role{models.RoleSectorAdmin, models.RoleSuperAdmin}
	superOnly   = []models.Role{models.RoleSuperAdmin}
	everyone    = []models.Role{models.RoleCitizen, models.RoleSectorAdmin, models.RoleSuperAdmin}
)

var rules = map[Action]rule{
	ActionCreateIssue:     {roles: citizenOnly},
	ActionVote:            {roles: citizenOnly},
	ActionReportIssue:     {roles: citizenOnly},
	ActionSubmitFeedback:  {roles: citizenOnly},
	ActionViewOwnIssues:   {roles: citizenOnly},
	ActionEditIssue:       {roles: citizenOnly, needsOwner: true},
	ActionComment:         {roles: everyone},
	ActionViewAdminIssues: {roles: adminRoles},
	ActionViewAnalytics:   {roles: adminRoles},
	// Super admins only observe status; the department's sector admin owns it.
	ActionUpdateStatus: {roles: []models.Role{models.RoleSectorAdmin}, needsSameDept: true},
	ActionManageUsers:  {roles: superOnly},
	ActionModerate:     {roles: superOnly},
	ActionReconcile:    {roles: superOnly},
}

// RoleMayAttempt is the role-only half of Can, for gates that run before the target is loaded.
func RoleMayAttempt(role models.Role, action Action) bool {
	r, ok := rules[action]
	if !ok {
		return false
	}
	for _, allowed := range r.roles {
		if allowed == role {
			return true
		}
	}
	return false
}

// Can reports whether role may perform action on a target described by facts.
func Can(role models.Role, action Action, facts Facts) bool {
	if !RoleMayAttempt(role, action) {
		return false
	}
	r := rules[action]
	if r.needsOwner && !facts.Owner {
		return false
	}
	if r.needsSameDept && !facts.SameDepartment {
		return false
	}
	return true
}

// Roles lists the roles allowed to attempt action, for error messages.
func Roles(action Action) []models.Role {
	return rules[action].roles
}
