package masterlocation

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
	locations := r.Group("/master-locations")
	locations.Use(middleware.AuthMiddleware())
	{
		locations.GET("", middleware.RBACAuthorize(rbacService, "master_location", "read"), handler.GetAll)
		locations.GET("/:id", middleware.RBACAuthorize(rbacService, "master_location", "read"), handler.GetById)
		locations.POST("", middleware.RBACAuthorize(rbacService, "master_location", "create"), handler.Create)
		locations.POST("/:id/restrict", middleware.RBACAuthorize(rbacService, "master_location", "update"), handler.Restrict)
	}
}
