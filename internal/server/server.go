package server

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/eventease/eventease/config"
	"github.com/eventease/eventease/internal/clock"
	"github.com/eventease/eventease/internal/handlers"
	"github.com/eventease/eventease/internal/middleware"
	"github.com/eventease/eventease/internal/models"
	"github.com/eventease/eventease/internal/services"
	"github.com/eventease/eventease/internal/store"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

func Start() error {
	cfg, err := config.LoadConfig()
	if err != nil {
		return fmt.Errorf("failed to load config: %v", err)
	}

	db, err := config.InitDatabase(cfg)
	if err != nil {
		return fmt.Errorf("failed to initialize database: %v", err)
	}

	storeDB := store.NewDB(db, cfg.StoreTimeout)
	userStore := store.NewUserStore(storeDB)
	eventStore := store.NewEventStore(storeDB)
	ticketStore := store.NewTicketStore(storeDB)
	announcementStore := store.NewAnnouncementStore(storeDB)
	lostItemStore := store.NewLostItemStore(storeDB)
	parkingStore := store.NewParkingStore(storeDB)
	emergencyStore := store.NewEmergencyStore(storeDB)

	clk := clock.NewSystem()

	authService := services.NewAuthService(userStore, clk, cfg.JWTSecret, cfg.JWTTTL, cfg.VolunteerAccessCode)
	eventService := services.NewEventService(eventStore, clk, cfg.DefaultCapacity)
	ticketService := services.NewTicketService(ticketStore, eventStore, clk, services.WithTokenTTL(cfg.QRTokenTTL))
	announcementService := services.NewAnnouncementService(announcementStore, clk)
	lostItemService := services.NewLostItemService(lostItemStore, clk)
	parkingService := services.NewParkingService(parkingStore)
	emergencyService := services.NewEmergencyService(emergencyStore, clk)

	r := gin.Default()
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		MaxAge:           12 * time.Hour,
		AllowCredentials: false,
	}))

	setupRoutes(r, routeDeps{
		auth:          handlers.NewAuthHandler(authService),
		events:        handlers.NewEventHandler(eventService),
		qr:            handlers.NewQRHandler(ticketService, cfg.JWTSecret),
		announcements: handlers.NewAnnouncementHandler(announcementService, authService),
		lostItems:     handlers.NewLostItemHandler(lostItemService),
		parking:       handlers.NewParkingHandler(parkingService),
		emergencies:   handlers.NewEmergencyHandler(emergencyService),
		verifier:      authService,
	})

	janitorCtx, stopJanitor := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stopJanitor()
	go runAnnouncementJanitor(janitorCtx, announcementService, time.Minute)

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	return r.Run(":" + port)
}

type routeDeps struct {
	auth          *handlers.AuthHandler
	events        *handlers.EventHandler
	qr            *handlers.QRHandler
	announcements *handlers.AnnouncementHandler
	lostItems     *handlers.LostItemHandler
	parking       *handlers.ParkingHandler
	emergencies   *handlers.EmergencyHandler
	verifier      middleware.TokenVerifier
}

func setupRoutes(r *gin.Engine, deps routeDeps) {
	public := r.Group("/v1")
	{
		auth := public.Group("/auth")
		{
			auth.POST("/register", deps.auth.Register)
			auth.POST("/login", deps.auth.Login)
			auth.POST("/verify-token", deps.auth.VerifyToken)
		}

		eventPublic := public.Group("/events")
		{
			eventPublic.GET("", deps.events.ListEvents)
			eventPublic.GET("/:id", deps.events.GetEvent)
		}

		public.GET("/announcements", deps.announcements.ListAnnouncements)
	}

	protected := r.Group("/v1")
	protected.Use(middleware.JWTAuthMiddleware(deps.verifier))
	{
		eventProtected := protected.Group("/events")
		{
			eventProtected.POST("", deps.events.CreateEvent)
			eventProtected.PUT("/:id", deps.events.UpdateEvent)
			eventProtected.DELETE("/:id", deps.events.DeleteEvent)
			eventProtected.POST("/:id/attendees", deps.events.ManageAttendees)
			eventProtected.GET("/:id/qr", deps.events.EventEntryQR)
		}

		qr := protected.Group("/qr")
		{
			qr.POST("/generate", deps.qr.GenerateQR)
			qr.POST("/validate",
				middleware.RequireRoles(models.RoleVolunteer, models.RoleAdmin),
				deps.qr.ValidateQR)
		}

		announcements := protected.Group("/announcements")
		announcements.Use(middleware.RequireRoles(models.RoleVolunteer, models.RoleAdmin))
		{
			announcements.POST("", deps.announcements.CreateAnnouncement)
			announcements.DELETE("/:id", deps.announcements.DeleteAnnouncement)
		}

		lostItems := protected.Group("/lost-items")
		{
			lostItems.GET("", deps.lostItems.ListItems)
			lostItems.POST("", deps.lostItems.ReportItem)
			lostItems.POST("/:id/claim", deps.lostItems.ClaimItem)
		}

		parking := protected.Group("/parking")
		{
			parking.GET("", deps.parking.ParkingStatus)
			parking.POST("/book", deps.parking.BookSlot)
			parking.POST("/release", deps.parking.ReleaseSlot)
		}

		emergencies := protected.Group("/emergencies")
		{
			emergencies.POST("", deps.emergencies.RaiseEmergency)
			emergencies.GET("",
				middleware.RequireRoles(models.RoleVolunteer, models.RoleAdmin),
				deps.emergencies.ListEmergencies)
			emergencies.POST("/:id/resolve",
				middleware.RequireRoles(models.RoleVolunteer, models.RoleAdmin),
				deps.emergencies.ResolveEmergency)
		}
	}
}

type announcementPruner interface {
	PruneExpired(ctx context.Context) (int64, error)
}

// runAnnouncementJanitor prunes expired announcements on every tick
// until the context is cancelled.
func runAnnouncementJanitor(ctx context.Context, svc announcementPruner, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			pruned, err := svc.PruneExpired(ctx)
			if err != nil {
				log.Printf("announcement janitor: %v", err)
				continue
			}
			if pruned > 0 {
				log.Printf("announcement janitor: pruned %d expired announcements", pruned)
			}
		}
	}
}
