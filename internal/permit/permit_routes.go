package permit

import (
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"golang.org/x/time/rate"

	"github.com/zkkaa/sipetak-sub000/internal/middleware"
	"github.com/zkkaa/sipetak-sub000/internal/rbac"
)

func RegisterRoutes(
	r *gin.RouterGroup,
	handler *Handler,
	rbacService rbac.Service,
	rdb *redis.Client,
) {
	permits := r.Group("/permits")
	permits.Use(middleware.AuthMiddleware(), middleware.ExtractUserID())
	{
		permits.GET("", middleware.RBACAuthorize(rbacService, "permit", "read"), handler.GetAll)
		permits.GET("/:id", middleware.RBACAuthorize(rbacService, "permit", "read"), handler.GetById)
		permits.POST("",
			middleware.RBACAuthorize(rbacService, "permit", "create"),
			middleware.RateLimitByUser(rate.Limit(1), 3),
			middleware.Idempotency(rdb),
			handler.Submit,
		)
		permits.POST("/:id/approve", middleware.RBACAuthorize(rbacService, "permit", "approve"), handler.Approve)
		permits.POST("/:id/reject", middleware.RBACAuthorize(rbacService, "permit", "approve"), handler.Reject)
		permits.DELETE("/:id", middleware.RBACAuthorize(rbacService, "permit", "delete"), handler.Delete)

		permits.GET("/:id/certificate", middleware.RBACAuthorize(rbacService, "permit", "read"), handler.Certificate)
	}

	certificates := r.Group("/certificates")
	certificates.Use(middleware.AuthMiddleware(), middleware.ExtractUserID())
	{
		certificates.GET("", middleware.RBACAuthorize(rbacService, "permit", "read"), handler.ListCertificates)
	}
}
