package api

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	ginzap "github.com/gin-contrib/zap"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	limiter "github.com/ulule/limiter/v3"
	ginlimiter "github.com/ulule/limiter/v3/drivers/middleware/gin"
	"github.com/ulule/limiter/v3/drivers/store/memory"

	"ridedispatch/config"
	"ridedispatch/pkg/logger"
	"ridedispatch/service"
)

const authCookiePath = "/api/v1/auth"

// HealthChecker reports whether the database is reachable.
type HealthChecker interface {
	Ping(ctx context.Context) error
}

type Server struct {
	router    *gin.Engine
	cfg       config.Config
	svc       service.IServiceManager
	health    HealthChecker
	authLimit gin.HandlerFunc
	log       logger.ILogger
}

func NewServer(cfg config.Config, svc service.IServiceManager, health HealthChecker, log logger.ILogger) (*Server, error) {
	registerValidatorTagNames()

	rate, err := limiter.NewRateFromFormatted(cfg.LoginRateLimit)
	if err != nil {
		return nil, err
	}

	s := &Server{
		cfg:       cfg,
		svc:       svc,
		health:    health,
		authLimit: ginlimiter.NewMiddleware(limiter.New(memory.NewStore(), rate)),
		log:       log,
	}

	r := gin.New()
	r.Use(ginzap.Ginzap(log.Zap(), time.RFC3339, true))
	r.Use(ginzap.RecoveryWithZap(log.Zap(), true))
	r.Use(requestID(), metricsMiddleware())
	r.Use(cors.New(corsConfig(cfg.CORSOrigins)))

	s.router = r
	s.registerRoutes()
	return s, nil
}

// Handler returns the router for http.Server and tests.
func (s *Server) Handler() http.Handler {
	return s.router
}

func corsConfig(origins []string) cors.Config {
	cfg := cors.Config{
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", requestIDHeader},
		ExposeHeaders:    []string{"Content-Length", "Content-Disposition", requestIDHeader},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}
	for _, o := range origins {
		if o == "*" {
			// a literal * is not allowed together with credentials, so echo the origin instead
			cfg.AllowOriginFunc = func(string) bool { return true }
			return cfg
		}
	}
	cfg.AllowOrigins = origins
	if len(origins) == 0 {
		cfg.AllowOriginFunc = func(string) bool { return false }
	}
	return cfg
}

func (s *Server) registerRoutes() {
	s.router.GET("/health", s.healthCheck)
	s.router.GET("/metrics", gin.WrapH(promhttp.Handler()))
	if s.cfg.DashboardDir != "" {
		s.router.Static("/dashboard", s.cfg.DashboardDir)
	}

	v1 := s.router.Group("/api/v1")

	auth := v1.Group("/auth")
	{
		auth.POST("/login", s.authLimit, s.login)
		auth.POST("/refresh", s.authLimit, s.refresh)
		auth.POST("/logout", s.optionalAuth(), s.logout)
		auth.GET("/me", s.requireAuth(), s.me)
	}

	protected := v1.Group("")
	protected.Use(s.requireAuth())

	users := protected.Group("/users")
	{
		users.GET("", s.listUsers)
		users.GET("/:id", s.getUser)
		users.POST("", requireAdmin(), s.createUser)
		users.PUT("/:id", requireAdmin(), s.updateUser)
		users.DELETE("/:id", requireAdmin(), s.deleteUser)
		users.PUT("/:id/password", s.changePassword)
	}

	clients := protected.Group("/clients")
	{
		clients.GET("", s.listClients)
		clients.GET("/:id", s.getClient)
		clients.GET("/:id/rides", s.listClientRides)
		clients.POST("", s.createClient)
		clients.PUT("/:id", s.updateClient)
		clients.DELETE("/:id", s.deleteClient)
	}

	drivers := protected.Group("/drivers")
	{
		drivers.GET("", s.listDrivers)
		drivers.GET("/:id", s.getDriver)
		drivers.GET("/:id/rides", s.listDriverRides)
		drivers.POST("", s.createDriver)
		drivers.PUT("/:id", s.updateDriver)
		drivers.DELETE("/:id", s.deleteDriver)
	}

	classes := protected.Group("/ride-classes")
	{
		classes.GET("", s.listRideClasses)
		classes.GET("/:id", s.getRideClass)
		classes.POST("", requireAdmin(), s.createRideClass)
		classes.PUT("/:id", requireAdmin(), s.updateRideClass)
		classes.DELETE("/:id", requireAdmin(), s.deleteRideClass)
	}

	options := protected.Group("/extra-options")
	{
		options.GET("", s.listExtraOptions)
		options.GET("/:id", s.getExtraOption)
		options.POST("", requireAdmin(), s.createExtraOption)
		options.PUT("/:id", requireAdmin(), s.updateExtraOption)
		options.DELETE("/:id", requireAdmin(), s.deleteExtraOption)
	}

	rides := protected.Group("/rides")
	{
		rides.GET("", s.listRides)
		rides.GET("/:id", s.getRide)
		rides.POST("", s.createRide)
		rides.POST("/quote", s.quoteRide)
		rides.PUT("/:id", s.updateRide)
		rides.DELETE("/:id", s.deleteRide)
	}

	files := protected.Group("/files")
	{
		files.POST("", s.uploadFile)
		files.GET("/:id", s.downloadFile)
		files.GET("/:id/meta", s.getFileMeta)
		files.DELETE("/:id", s.deleteFile)
	}
}

func (s *Server) healthCheck(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
	defer cancel()
	if err := s.health.Ping(ctx); err != nil {
		s.log.Error("health check failed", logger.Error(err))
		c.JSON(http.StatusServiceUnavailable, gin.H{"status": "degraded"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
