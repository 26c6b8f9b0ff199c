package routes

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"mobypark/internal/auth"
	"mobypark/internal/invoices"
	"mobypark/internal/lots"
	"mobypark/internal/passes"
	"mobypark/internal/payments"
	"mobypark/internal/sessions"
	"mobypark/internal/shared/config"
	"mobypark/internal/shared/database"
	"mobypark/pkg/cache"
	"mobypark/pkg/logger"
)

// Router holds all route dependencies
type Router struct {
	config *config.Config
	db     *database.DB
	gate   sessions.GateController
	logger *logger.Logger

	lotService     lots.Service
	passService    passes.Service
	invoiceService invoices.Service
}

// NewRouter creates a new router instance
func NewRouter(cfg *config.Config, db *database.DB, gate sessions.GateController, log *logger.Logger) *Router {
	return &Router{
		config: cfg,
		db:     db,
		gate:   gate,
		logger: log,
	}
}

// SetupRoutes configures all application routes
func (r *Router) SetupRoutes(engine *gin.Engine) {
	r.setupHealthRoutes(engine)

	api := engine.Group(r.config.GetAPIBasePath())
	{
		r.setupAuthRoutes(api)
		r.setupLotRoutes(api)
		r.setupPassRoutes(api)
		r.setupSessionRoutes(api)
	}
}

// setupHealthRoutes sets up health check and system status routes
func (r *Router) setupHealthRoutes(engine *gin.Engine) {
	engine.GET("/health", func(c *gin.Context) {
		if err := r.db.HealthCheck(c.Request.Context()); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{
				"status":    "unhealthy",
				"error":     err.Error(),
				"timestamp": time.Now(),
				"service":   "mobypark-backend",
			})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"status":    "healthy",
			"timestamp": time.Now(),
			"service":   "mobypark-backend",
		})
	})

	engine.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"message": "pong",
			"version": r.config.APIVersion,
		})
	})

	engine.GET("/status", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":      "operational",
			"api_version": r.config.APIVersion,
			"timestamp":   time.Now(),
		})
	})
}

func (r *Router) setupAuthRoutes(rg *gin.RouterGroup) {
	authRepo := auth.NewRepository(r.db.GetPostgreSQL())
	authService := auth.NewService(authRepo, r.config)
	authController := auth.NewController(authService)

	auth.RegisterRoutes(rg, authController, r.config)
}

func (r *Router) setupLotRoutes(rg *gin.RouterGroup) {
	lotRepo := lots.NewRepository(r.db.GetPostgreSQL())

	var cacheService cache.Service
	if r.db.Redis != nil {
		cacheService = cache.NewService(r.db.GetRedisClient())
	}
	r.lotService = lots.NewService(lotRepo, cacheService, r.config.Redis.LotCacheTTL)

	lotController := lots.NewController(r.lotService)
	lots.RegisterRoutes(rg, lotController, r.config)
}

func (r *Router) setupPassRoutes(rg *gin.RouterGroup) {
	passRepo := passes.NewRepository(r.db.GetPostgreSQL())
	r.passService = passes.NewService(passRepo)

	passController := passes.NewController(r.passService)
	passes.RegisterRoutes(rg, passController, r.config)
}

func (r *Router) setupSessionRoutes(rg *gin.RouterGroup) {
	invoiceRepo := invoices.NewRepository(r.db.GetPostgreSQL())
	r.invoiceService = invoices.NewService(invoiceRepo)

	sessionRepo := sessions.NewRepository(r.db.GetPostgreSQL())
	sessionService := sessions.NewService(
		sessionRepo,
		r.lotService,
		r.passService,
		payments.NewSimulatedGateway(),
		r.gate,
		r.invoiceService,
		r.logger,
		r.config.Payment.PreAuthMinHours,
	)

	sessionController := sessions.NewController(sessionService)
	sessions.RegisterRoutes(rg, sessionController, r.config)
}
