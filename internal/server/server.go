package server

import (
	"context"
	"net/http"

	"thryve/internal/auth"
	"thryve/internal/booking"
	"thryve/internal/class"
	"thryve/internal/config"
	"thryve/internal/membership"
	"thryve/internal/notification"
	"thryve/internal/pack"
	"thryve/internal/template"
	"thryve/internal/user"
	"thryve/internal/waitlist"

	"github.com/gin-gonic/gin"
	"github.com/jmoiron/sqlx"
)

type Server struct {
	router *gin.Engine
	http   *http.Server
	db     *sqlx.DB
	config *config.Config
}

func New(database *sqlx.DB, cfg *config.Config, notifications *notification.Service) *Server {
	router := gin.New()
	router.Use(
		gin.Recovery(),
		RequestLoggingMiddleware(),
		MetricsMiddleware(),
		corsMiddleware(),
		RateLimitMiddleware(cfg.RateLimitRPS, cfg.RateLimitBurst),
	)

	userRepo := user.NewRepository(database)
	templateRepo := template.NewRepository(database)
	classRepo := class.NewRepository(database)
	membershipRepo := membership.NewRepository(database)
	packRepo := pack.NewRepository(database)
	bookingRepo := booking.NewRepository(database)
	waitlistRepo := waitlist.NewRepository(database)

	userService := user.NewService(userRepo, cfg.JWTSecret)
	templateService := template.NewService(templateRepo)
	classService := class.NewService(classRepo, templateRepo)
	membershipService := membership.NewService(membershipRepo)
	packService := pack.NewService(packRepo)

	// The waitlist service promotes into freed seats, so the booking service
	// depends on it, not the other way around.
	waitlistService := waitlist.NewService(
		waitlistRepo, classRepo, bookingRepo, membershipRepo, userRepo,
		notifications, cfg.WaitlistConfirmWindow,
	)
	bookingService := booking.NewService(
		bookingRepo, classRepo, membershipRepo, userRepo,
		notifications, waitlistService,
	)

	userHandler := user.NewHandler(userService)
	templateHandler := template.NewHandler(templateService)
	classHandler := class.NewHandler(classService)
	membershipHandler := membership.NewHandler(membershipService)
	packHandler := pack.NewHandler(packService)
	bookingHandler := booking.NewHandler(bookingService)
	waitlistHandler := waitlist.NewHandler(waitlistService)

	public := router.Group("/auth")
	{
		public.POST("/register", userHandler.Register)
		public.POST("/login", userHandler.Login)
		public.POST("/refresh", userHandler.Refresh)
	}

	authMiddleware := auth.AuthMiddleware(cfg.JWTSecret)
	protected := router.Group("/")
	protected.Use(authMiddleware)
	{
		protected.GET("/me", userHandler.GetMe)
		protected.GET("/me/membership", membershipHandler.GetMyMembership)
		protected.GET("/me/pack", packHandler.GetBalance)
		protected.POST("/me/pack/topup", packHandler.TopUp)
		protected.GET("/me/pack/transactions", packHandler.ListTransactions)

		protected.GET("/templates", templateHandler.ListTemplates)
		protected.GET("/templates/:templateID", templateHandler.GetTemplate)

		protected.GET("/classes", classHandler.SearchClasses)
		protected.GET("/classes/:instanceID", classHandler.GetClass)

		protected.POST("/classes/:instanceID/book", bookingHandler.BookClass)
		protected.GET("/bookings", bookingHandler.ListMyBookings)
		protected.POST("/bookings/:bookingID/cancel", bookingHandler.CancelBooking)

		protected.POST("/classes/:instanceID/waitlist", waitlistHandler.JoinWaitlist)
		protected.GET("/waitlist", waitlistHandler.ListMyWaitlist)
		protected.POST("/waitlist/:entryID/cancel", waitlistHandler.LeaveWaitlist)
		protected.POST("/waitlist/:entryID/confirm", waitlistHandler.ConfirmPromotion)
	}

	staffMiddleware := auth.RequireRole(user.RoleStaff)
	admin := router.Group("/admin")
	admin.Use(authMiddleware, staffMiddleware)
	{
		admin.POST("/templates", templateHandler.CreateTemplate)
		admin.POST("/templates/validate", templateHandler.ValidateTemplate)
		admin.PATCH("/templates/:templateID", templateHandler.UpdateTemplate)
		admin.DELETE("/templates/:templateID", templateHandler.DeleteTemplate)
		admin.POST("/templates/:templateID/instances", classHandler.GenerateInstances)

		admin.POST("/classes/:instanceID/cancel", classHandler.CancelClass)
		admin.GET("/classes/:instanceID/bookings", bookingHandler.ListBookingsByInstance)
		admin.GET("/classes/:instanceID/waitlist", waitlistHandler.ListWaitlistByInstance)

		admin.POST("/memberships", membershipHandler.CreateMembership)
		admin.GET("/analytics/bookings", bookingHandler.GetBookingAnalytics)
	}

	router.GET("/health", Health)
	router.GET("/metrics", Metrics())
	SetupSwagger(router)

	return &Server{
		router: router,
		db:     database,
		config: cfg,
	}
}

func (s *Server) Start(port string) error {
	s.http = &http.Server{
		Addr:    ":" + port,
		Handler: s.router,
	}
	return s.http.ListenAndServe()
}

func (s *Server) Shutdown(ctx context.Context) error {
	if s.http == nil {
		return nil
	}
	return s.http.Shutdown(ctx)
}

func corsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, X-CSRF-Token, Authorization, accept, origin, Cache-Control, X-Requested-With")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS, GET, PUT, DELETE, PATCH")
		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}
		c.Next()
	}
}
