// api/routes/router.go
package routes

import (
	"net/http"
	"time"

	"busline/internal/artifacts"
	"busline/internal/bookings"
	"busline/internal/buses"
	"busline/internal/notifications"
	"busline/internal/payments"
	busroutes "busline/internal/routes"
	"busline/internal/schedules"
	"busline/internal/shared/config"
	"busline/internal/shared/database"
	"busline/internal/tickets"
	"busline/internal/trips"
	"busline/internal/users"
	"busline/pkg/cache"
	"busline/pkg/logger"
	"busline/pkg/ratelimit"

	"github.com/gin-gonic/gin"
)

// Router holds all route dependencies
type Router struct {
	config      *config.Config
	db          *database.DB
	rateLimiter *ratelimit.RateLimiter
	publisher   notifications.Publisher
	log         *logger.Logger

	// shared across feature groups
	userRepo       users.Repository
	routeRepo      busroutes.Repository
	busRepo        buses.Repository
	scheduleRepo   schedules.Repository
	bookingRepo    bookings.Repository
	bookingService bookings.Service
	ticketRepo     tickets.Repository
}

// NewRouter creates a new router instance
func NewRouter(cfg *config.Config, db *database.DB, rateLimiter *ratelimit.RateLimiter, publisher notifications.Publisher, log *logger.Logger) *Router {
	return &Router{
		config:      cfg,
		db:          db,
		rateLimiter: rateLimiter,
		publisher:   publisher,
		log:         log,
	}
}

// SetupRoutes configures all application routes
func (r *Router) SetupRoutes(engine *gin.Engine) {
	r.setupHealthRoutes(engine)
	r.setupArtifactRoutes(engine)

	// Repositories shared by several feature groups.
	pg := r.db.GetPostgreSQL()
	r.userRepo = users.NewRepository(pg)
	r.routeRepo = busroutes.NewRepository(pg)
	r.busRepo = buses.NewRepository(pg)
	r.scheduleRepo = schedules.NewRepository(pg)
	r.bookingRepo = bookings.NewRepository(pg)
	r.ticketRepo = tickets.NewRepository(pg)

	api := engine.Group(r.config.GetAPIBasePath())
	{
		r.setupRouteRoutes(api)
		r.setupBusRoutes(api)
		r.setupScheduleRoutes(api)
		r.setupTripRoutes(api)

		// Booking routes must come before payments and tickets: both
		// reuse the booking service for cache invalidation.
		r.setupBookingRoutes(api)
		r.setupPaymentRoutes(api)
		r.setupTicketRoutes(api)
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
				"service":   "busline-backend",
			})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"status":    "healthy",
			"timestamp": time.Now(),
			"service":   "busline-backend",
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

// setupArtifactRoutes serves the stored ticket PDFs
func (r *Router) setupArtifactRoutes(engine *gin.Engine) {
	engine.Static("/artifacts", r.config.Artifacts.Dir)
}

func (r *Router) setupRouteRoutes(rg *gin.RouterGroup) {
	routeService := busroutes.NewService(r.routeRepo)
	routeController := busroutes.NewController(routeService)

	busroutes.SetupRouteRoutes(rg, routeController)
}

func (r *Router) setupBusRoutes(rg *gin.RouterGroup) {
	busService := buses.NewService(r.busRepo, r.userRepo)
	busController := buses.NewController(busService)

	buses.SetupBusRoutes(rg, busController)
}

func (r *Router) setupScheduleRoutes(rg *gin.RouterGroup) {
	scheduleService := schedules.NewService(r.scheduleRepo, r.busRepo, r.routeRepo)
	scheduleController := schedules.NewController(scheduleService)

	schedules.SetupScheduleRoutes(rg, scheduleController)
}

func (r *Router) setupTripRoutes(rg *gin.RouterGroup) {
	tripRepo := trips.NewRepository(r.db.GetPostgreSQL())
	tripService := trips.NewService(tripRepo, r.scheduleRepo)
	tripController := trips.NewController(tripService)

	trips.SetupTripRoutes(rg, tripController)
}

func (r *Router) setupBookingRoutes(rg *gin.RouterGroup) {
	cacheService := cache.NewService(r.db.GetRedisClient())
	bookingService := bookings.NewService(
		r.bookingRepo,
		r.scheduleRepo,
		r.busRepo,
		r.routeRepo,
		r.userRepo,
		cacheService,
		r.publisher,
		r.log,
		r.config.Redis.AvailabilityTTL,
	)
	bookingController := bookings.NewController(bookingService)

	// Kept for the payment and ticket groups below.
	r.bookingService = bookingService

	bookings.SetupBookingRoutes(rg, bookingController, r.bookingLimiter())
}

func (r *Router) setupPaymentRoutes(rg *gin.RouterGroup) {
	renderer := artifacts.NewPDFRenderer()
	store, err := artifacts.NewDiskStore(r.config.Artifacts.Dir, r.config.Artifacts.PublicBaseURL)
	if err != nil {
		panic("failed to initialize artifact store: " + err.Error())
	}

	paymentRepo := payments.NewRepository(r.db.GetPostgreSQL())
	paymentService := payments.NewService(
		paymentRepo,
		r.bookingRepo,
		r.scheduleRepo,
		r.busRepo,
		r.routeRepo,
		r.userRepo,
		renderer,
		store,
		r.publisher,
		r.log,
	)
	paymentController := payments.NewController(paymentService)

	payments.SetupPaymentRoutes(rg, paymentController, r.bookingLimiter())
}

func (r *Router) setupTicketRoutes(rg *gin.RouterGroup) {
	ticketService := tickets.NewService(
		r.ticketRepo,
		r.bookingRepo,
		r.bookingService,
		r.userRepo,
		r.publisher,
		r.log,
	)
	ticketController := tickets.NewController(ticketService)

	tickets.SetupTicketRoutes(rg, ticketController, r.bookingLimiter())
}

// bookingLimiter is the stricter limiter applied to the booking,
// payment and refund endpoints.
func (r *Router) bookingLimiter() gin.HandlerFunc {
	if r.rateLimiter == nil {
		return ratelimit.Noop()
	}
	return ratelimit.ForType(r.rateLimiter, ratelimit.RateLimitTypeBooking)
}
