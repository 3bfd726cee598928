package auth

import (
	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"

	"github.com/zkkaa/sipetak-sub000/internal/middleware"
)

func RegisterRoutes(r *gin.RouterGroup, handler *Handler) {
	authGroup := r.Group("/auth")
	{
		// Endpoint publik dibatasi per IP untuk meredam brute force
		authGroup.POST("/register", middleware.RateLimitByIP(rate.Limit(1), 5), handler.Register)
		authGroup.POST("/login", middleware.RateLimitByIP(rate.Limit(1), 5), handler.Login)
		authGroup.POST("/refresh", handler.Refresh)

		protected := authGroup.Group("")
		protected.Use(middleware.AuthMiddleware(), middleware.ExtractUserID())
		{
			protected.GET("/me", handler.Me)
			protected.POST("/change-password", handler.ChangePassword)
			protected.POST("/logout", handler.Logout)
		}
	}
}
