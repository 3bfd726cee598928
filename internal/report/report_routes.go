package report

import (
	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"

	"github.com/zkkaa/sipetak-sub000/internal/middleware"
	"github.com/zkkaa/sipetak-sub000/internal/rbac"
)

func RegisterRoutes(
	r *gin.RouterGroup,
	handler *Handler,
	rbacService rbac.Service,
) {
	reports := r.Group("/reports")

	// Laporan warga masuk tanpa login, cukup dibatasi per IP.
	reports.POST("", middleware.RateLimitByIP(rate.Limit(1), 5), handler.Create)

	admin := reports.Group("")
	admin.Use(middleware.AuthMiddleware(), middleware.ExtractUserID())
	{
		admin.GET("", middleware.RBACAuthorize(rbacService, "report", "read"), handler.GetAll)
		admin.GET("/:id", middleware.RBACAuthorize(rbacService, "report", "read"), handler.GetById)
		admin.POST("/:id/take", middleware.RBACAuthorize(rbacService, "report", "update"), handler.Take)
		admin.POST("/:id/resolve", middleware.RBACAuthorize(rbacService, "report", "update"), handler.Resolve)
	}
}
