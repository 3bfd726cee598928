package notification

import (
	"github.com/gin-gonic/gin"

	"github.com/zkkaa/sipetak-sub000/internal/middleware"
	"github.com/zkkaa/sipetak-sub000/internal/rbac"
)

func RegisterRoutes(
	r *gin.RouterGroup,
	handler *Handler,
	rbacService rbac.Service,
) {
	notifications := r.Group("/notifications")
	notifications.Use(middleware.AuthMiddleware(), middleware.ExtractUserID())
	{
		notifications.GET("", middleware.RBACAuthorize(rbacService, "notification", "read"), handler.GetMine)
		notifications.GET("/unread-count", middleware.RBACAuthorize(rbacService, "notification", "read"), handler.UnreadCount)
		notifications.POST("/:id/read", middleware.RBACAuthorize(rbacService, "notification", "update"), handler.MarkRead)
		notifications.POST("/read-all", middleware.RBACAuthorize(rbacService, "notification", "update"), handler.MarkAllRead)
	}
}
