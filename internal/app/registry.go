package app

import (
	"database/sql"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/zkkaa/sipetak-sub000/internal/auth"
	"github.com/zkkaa/sipetak-sub000/internal/deletionrequest"
	"github.com/zkkaa/sipetak-sub000/internal/masterlocation"
	"github.com/zkkaa/sipetak-sub000/internal/messaging/kafka"
	"github.com/zkkaa/sipetak-sub000/internal/notification"
	"github.com/zkkaa/sipetak-sub000/internal/permit"
	"github.com/zkkaa/sipetak-sub000/internal/rbac"
	"github.com/zkkaa/sipetak-sub000/internal/rbac/infra"
	"github.com/zkkaa/sipetak-sub000/internal/report"
	"github.com/zkkaa/sipetak-sub000/internal/user"
)

func registerModules(
	router *gin.Engine,
	db *sql.DB,
	gormDB *gorm.DB,
	rdb *redis.Client,
) error {
	// --- Repositories ---
	authRepo := auth.NewRepository(gormDB)
	masterLocationRepo := masterlocation.NewRepository(gormDB)
	notificationRepo := notification.NewRepository(gormDB)
	permitRepo := permit.NewRepository(gormDB)
	deletionRequestRepo := deletionrequest.NewRepository(gormDB)
	reportRepo := report.NewRepository(gormDB)
	userRepo := user.NewRepository(gormDB, db)
	outboxRepo := kafka.NewOutboxRepository(db)

	// --- RBAC Core ---
	enforcer, err := infra.NewEnforcer()
	if err != nil {
		return err
	}
	rbacService := rbac.NewService(enforcer)

	// --- Services ---
	authService := auth.NewService(authRepo)
	masterLocationService := masterlocation.NewService(masterLocationRepo)
	notificationService := notification.NewService(notificationRepo)
	permitService := permit.NewService(db, permitRepo, notificationRepo, outboxRepo)
	deletionRequestService := deletionrequest.NewService(db, deletionRequestRepo, permitRepo, notificationRepo, outboxRepo)
	reportService := report.NewService(db, reportRepo, notificationRepo)
	userService := user.NewService(db, userRepo)

	// --- Handlers ---
	authHandler := auth.NewHandler(authService)
	masterLocationHandler := masterlocation.NewHandler(masterLocationService)
	notificationHandler := notification.NewHandler(notificationService)
	permitHandler := permit.NewHandler(permitService)
	deletionRequestHandler := deletionrequest.NewHandler(deletionRequestService)
	reportHandler := report.NewHandler(reportService)
	userHandler := user.NewHandler(userService)

	// --- Routes Registration ---
	api := router.Group("/api/v1")
	{
		auth.RegisterRoutes(api, authHandler)
		user.RegisterRoutes(api, userHandler, rbacService)
		masterlocation.RegisterRoutes(api, masterLocationHandler, rbacService)
		permit.RegisterRoutes(api, permitHandler, rbacService, rdb)
		deletionrequest.RegisterRoutes(api, deletionRequestHandler, rbacService, rdb)
		report.RegisterRoutes(api, reportHandler, rbacService)
		notification.RegisterRoutes(api, notificationHandler, rbacService)
	}

	return nil
}
