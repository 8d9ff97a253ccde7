package routes

import (
	"cityfix-be/access"
	"cityfix-be/controllers"
	"cityfix-be/middlewares"

	"github.com/gin-gonic/gin"
)

// UserRoutes is super-admin account management
func UserRoutes(r *gin.Engine, g Guards, ac *controllers.AdminController) {
	users := r.Group("/api/admin/users", g.Auth, middlewares.RequireAction(access.ActionManageUsers))
	{
		users.POST("", ac.CreateAdmin)
		users.GET("", ac.GetSystemUsers)
		users.PUT("/:id/status", ac.ToggleUserStatus)
	}
}

// AdminRoutes covers the dashboard and moderation routes
func AdminRoutes(r *gin.Engine, g Guards, ac *controllers.AdminController) {
	admin := r.Group("/api/admin", g.Auth)
	{
		admin.GET("/issues", middlewares.RequireAction(access.ActionViewAdminIssues), ac.GetAdminIssues)
		admin.PUT("/issues/:id/status", middlewares.RequireAction(access.ActionUpdateStatus), ac.UpdateIssueStatus)
		admin.POST("/issues/:id/reconcile", middlewares.RequireAction(access.ActionReconcile), ac.ReconcileIssue)
		admin.GET("/analytics", middlewares.RequireAction(access.ActionViewAnalytics), ac.GetAdminAnalytics)

		moderation := admin.Group("/moderation", middlewares.RequireAction(access.ActionModerate))
		moderation.GET("/reports", ac.GetModerationReports)
		moderation.DELETE("/reports/:id/dismiss", ac.DismissReport)
		moderation.DELETE("/reports/:id/issue", ac.DeleteReportedIssue)
	}
}
