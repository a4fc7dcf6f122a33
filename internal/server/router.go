package server

import (
	"net/http"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	goredis "github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/Gulrukh07/BeautyShopBooking/internal/booking"
	"github.com/Gulrukh07/BeautyShopBooking/internal/business"
	"github.com/Gulrukh07/BeautyShopBooking/internal/catalog"
	"github.com/Gulrukh07/BeautyShopBooking/internal/config"
	"github.com/Gulrukh07/BeautyShopBooking/internal/notifications"
	"github.com/Gulrukh07/BeautyShopBooking/internal/otp"
	"github.com/Gulrukh07/BeautyShopBooking/internal/reviews"
	"github.com/Gulrukh07/BeautyShopBooking/internal/schedule"
	"github.com/Gulrukh07/BeautyShopBooking/internal/security"
	"github.com/Gulrukh07/BeautyShopBooking/internal/server/handlers"
	"github.com/Gulrukh07/BeautyShopBooking/internal/server/mw"
	"github.com/Gulrukh07/BeautyShopBooking/internal/server/resp"
	"github.com/Gulrukh07/BeautyShopBooking/internal/store"
	"github.com/Gulrukh07/BeautyShopBooking/internal/users"
)

func NewRouter(cfg *config.Config, pg *pgxpool.Pool, rdb *goredis.Client, logger *zap.Logger) http.Handler {
	if cfg.AppEnv == "local" {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(mw.RequestLogger(logger))

	r.Use(cors.New(cors.Config{
		AllowOrigins: []string{"*"},
		AllowMethods: []string{"GET", "POST", "PATCH", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders: []string{"*"},
	}))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	usersRepo := users.NewRepo(pg)
	businessRepo := business.NewRepo(pg)
	catalogRepo := catalog.NewRepo(pg)
	bookingRepo := booking.NewRepo(pg)
	reviewsRepo := reviews.NewRepo(pg)
	notificationsRepo := notifications.NewRepo(pg)
	scheduleRepo := schedule.NewRepo(pg)
	phoneChangeStore := store.NewPhoneChangeStore(pg)

	jwtm := security.NewJWTManager(cfg.Security.JWTSecret, cfg.Security.AccessTTL, cfg.Security.RefreshTTL)
	otpSvc := otp.NewService(usersRepo, phoneChangeStore, otp.Config{
		Expiry:      cfg.Security.OTPExpiry,
		ResendAfter: cfg.Security.OTPResendAfter,
	})

	authH := handlers.NewAuthHandler(logger, usersRepo, jwtm)
	phoneH := handlers.NewPhoneHandler(logger, otpSvc, cfg.Security.OTPEchoCode)
	usersH := handlers.NewUsersHandler(logger, usersRepo)
	businessesH := handlers.NewBusinessesHandler(logger, businessRepo, catalogRepo)
	catalogH := handlers.NewCatalogHandler(logger, catalogRepo)
	appointmentsH := handlers.NewAppointmentsHandler(logger, bookingRepo)
	reviewsH := handlers.NewReviewsHandler(logger, reviewsRepo)
	notificationsH := handlers.NewNotificationsHandler(logger, notificationsRepo)
	schedulesH := handlers.NewSchedulesHandler(logger, scheduleRepo)
	statsH := handlers.NewStatsHandler(logger, bookingRepo)

	v1 := r.Group("/api/v1")
	if rdb != nil {
		v1.Use(mw.RateLimit(rdb, cfg.Security.RateLimitRPS, logger))
	}

	v1.POST("/auth/login", authH.Login)
	v1.POST("/auth/refresh", authH.Refresh)
	v1.POST("/users", usersH.Create) // registration

	authed := v1.Group("")
	authed.Use(mw.RequireUser(jwtm))

	authed.GET("/users/me", usersH.Me)
	authed.POST("/users/change-phone", phoneH.RequestChange)
	authed.POST("/users/verify-phone", phoneH.VerifyChange)
	authed.GET("/users", usersH.List)
	authed.GET("/users/:id", usersH.Get)
	authed.PATCH("/users/:id", usersH.Update)

	authed.GET("/businesses", businessesH.List)
	authed.GET("/businesses/:id", businessesH.Get)
	authed.POST("/businesses", businessesH.Create)
	authed.PUT("/businesses/:id", businessesH.Update)

	authed.GET("/services", catalogH.ListServices)
	authed.GET("/services/:id", catalogH.GetService)
	authed.POST("/services", catalogH.CreateService)
	authed.PUT("/services/:id", catalogH.UpdateService)
	authed.DELETE("/services/:id", catalogH.DeleteService)

	authed.GET("/sub-services", catalogH.ListSubServices)
	authed.POST("/sub-services", catalogH.CreateSubService)
	authed.POST("/specialist-services", catalogH.CreateSpecialistService)

	authed.GET("/business-workers", catalogH.ListWorkers)
	authed.GET("/business-workers/:id", catalogH.GetWorker)
	authed.POST("/business-workers", catalogH.CreateWorker)
	authed.DELETE("/business-workers/:id", catalogH.DeleteWorker)

	authed.GET("/appointments", appointmentsH.List)
	authed.GET("/appointments/:id", appointmentsH.Get)
	authed.POST("/appointments", appointmentsH.Create)
	authed.PATCH("/appointments/:id/status", appointmentsH.UpdateStatus)
	authed.DELETE("/appointments/:id", appointmentsH.Delete)

	authed.GET("/reviews", reviewsH.List)
	authed.GET("/reviews/:id", reviewsH.Get)
	authed.POST("/reviews", reviewsH.Create)
	authed.DELETE("/reviews/:id", reviewsH.Delete)

	authed.GET("/notifications", notificationsH.List)
	authed.GET("/notifications/:id", notificationsH.Get)
	authed.POST("/notifications", notificationsH.Create)
	authed.PATCH("/notifications/:id/read", notificationsH.MarkRead)
	authed.DELETE("/notifications/:id", notificationsH.Delete)

	authed.GET("/work-schedules", schedulesH.ListWorkSchedules)
	authed.GET("/work-schedules/:id", schedulesH.GetWorkSchedule)
	authed.POST("/work-schedules", schedulesH.CreateWorkSchedule)
	authed.DELETE("/work-schedules/:id", schedulesH.DeleteWorkSchedule)

	authed.GET("/time-offs", schedulesH.ListTimeOffs)
	authed.POST("/time-offs", schedulesH.CreateTimeOff)
	authed.DELETE("/time-offs/:id", schedulesH.DeleteTimeOff)

	authed.GET("/statistics/appointments", statsH.AppointmentsBetween)
	authed.GET("/statistics/top-services", statsH.TopServices)
	authed.GET("/statistics/top-clients", statsH.TopClients)
	authed.GET("/statistics/top-specialists", statsH.TopSpecialists)
	authed.GET("/statistics/top-businesses", statsH.TopBusinesses)

	// Destructive operations are admin-only.
	admin := authed.Group("")
	admin.Use(mw.RequireAdmin())
	admin.DELETE("/users/:id", usersH.Delete)
	admin.DELETE("/businesses/:id", businessesH.Delete)

	// 404 with the flat error shape instead of gin's default.
	r.NoRoute(func(c *gin.Context) {
		resp.Error(c, http.StatusNotFound, "route not found")
	})

	return r
}
