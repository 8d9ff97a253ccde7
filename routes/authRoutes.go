package routes

import (
	"cityfix-be/controllers"

	"github.com/gin-gonic/gin"
)

// AuthRoutes sets up registration and the caller's own account routes
func AuthRoutes(r *gin.Engine, g Guards, ac *controllers.AuthController) {
	auth := r.Group("/api/auth")
	{
		auth.POST("/register", g.Verify, ac.RegisterUser)
		auth.POST("/fcm-token", g.Auth, ac.UpdateFCMToken)
	}

	r.GET("/api/users/me", g.Auth, ac.GetMe)
	r.PUT("/api/citizen/profile", g.Auth, ac.UpdateProfile)
}
