package routes

import (
	"cityfix-be/access"
	"cityfix-be/controllers"
	"cityfix-be/middlewares"

	"github.com/gin-gonic/gin"
)

// IssueRoutes sets up the public feed and the citizen issue routes
func IssueRoutes(r *gin.Engine, g Guards, ic *controllers.IssueController) {
	issue := r.Group("/api/issues")
	{
		issue.GET("", ic.GetIssues)
		issue.GET("/mine", g.Auth, middlewares.RequireAction(access.ActionViewOwnIssues), ic.GetMyIssues)
		issue.GET("/:id", ic.GetIssue)

		create := []gin.HandlerFunc{g.Auth, middlewares.RequireAction(access.ActionCreateIssue)}
		if g.IssueLimit != nil {
			create = append(create, g.IssueLimit)
		}
		issue.POST("", append(create, ic.CreateIssue)...)

		issue.PUT("/:id", g.Auth, middlewares.RequireAction(access.ActionEditIssue), ic.UpdateIssue)
		issue.POST("/:id/vote", g.Auth, middlewares.RequireAction(access.ActionVote), ic.VoteOnIssue)
		issue.POST("/:id/comments", g.Auth, middlewares.RequireAction(access.ActionComment), ic.AddComment)
		issue.POST("/:id/report", g.Auth, middlewares.RequireAction(access.ActionReportIssue), ic.ReportIssue)
		issue.POST("/:id/feedback", g.Auth, middlewares.RequireAction(access.ActionSubmitFeedback), ic.SubmitFeedback)
	}
}
