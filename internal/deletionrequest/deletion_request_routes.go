package deletionrequest

import (
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	"github.com/zkkaa/sipetak-sub000/internal/middleware"
	"github.com/zkkaa/sipetak-sub000/internal/rbac"
)

func RegisterRoutes(
	r *gin.RouterGroup,
	handler *Handler,
	rbacService rbac.Service,
	rdb *redis.Client,
) {
	requests := r.Group("/deletion-requests")
	requests.Use(middleware.AuthMiddleware(), middleware.ExtractUserID())
	{
		requests.GET("", middleware.RBACAuthorize(rbacService, "deletion_request", "read"), handler.GetMine)
		requests.GET("/queue", middleware.RBACAuthorize(rbacService, "deletion_request", "approve"), handler.Queue)
		requests.POST("",
			middleware.RBACAuthorize(rbacService, "deletion_request", "create"),
			middleware.Idempotency(rdb),
			handler.Create,
		)
		requests.DELETE("/:id", middleware.RBACAuthorize(rbacService, "deletion_request", "cancel"), handler.Cancel)
		requests.POST("/:id/approve", middleware.RBACAuthorize(rbacService, "deletion_request", "approve"), handler.Approve)
		requests.POST("/:id/reject", middleware.RBACAuthorize(rbacService, "deletion_request", "approve"), handler.Reject)
	}
}
