package routes

import (
	"cityfix-be/controllers"

	"github.com/gin-gonic/gin"
)

// Guards are the middlewares the route groups share.
type Guards struct {
	// Verify checks the provider token only; used before the account exists.
	Verify gin.HandlerFunc
	// Auth checks the token and loads the registered, enabled user.
	Auth gin.HandlerFunc
	// IssueLimit throttles issue creation. Nil disables it.
	IssueLimit gin.HandlerFunc
}

type Controllers struct {
	Auth     *controllers.AuthController
	Issues   *controllers.IssueController
	Admin    *controllers.AdminController
	Realtime *controllers.RealtimeController
}

// Register mounts every API route on r.
func Register(r *gin.Engine, g Guards, c Controllers) {
	AuthRoutes(r, g, c.Auth)
	IssueRoutes(r, g, c.Issues)
	AdminRoutes(r, g, c.Admin)
	UserRoutes(r, g, c.Admin)

	r.GET("/ws", c.Realtime.Connect)
}
