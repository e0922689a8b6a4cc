package main

import (
	"context"
	"encoding/json"
	"log"
	"os"
	"os/signal"
	"syscall"

	"go-safecity-ws/internal/handler"
	"go-safecity-ws/internal/middleware"
	"go-safecity-ws/internal/model"
	"go-safecity-ws/internal/permission"
	"go-safecity-ws/internal/repository"
	"go-safecity-ws/internal/service"
	"go-safecity-ws/internal/storage"
	wshub "go-safecity-ws/internal/ws"
	"go-safecity-ws/pkg/database"
	"go-safecity-ws/pkg/jwt"

	"github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"gorm.io/gorm"
)

func main() {
	// 1. Load Env
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found")
	}

	// 2. Setup Database
	db := database.ConnectDB()
	// Auto Migrate (use a dedicated migration tool in production)
	db.AutoMigrate(
		&model.User{},
		&model.Report{},
		&model.Incident{},
		&model.Case{},
		&model.CaseNote{},
		&model.Alert{},
		&model.SOSAlert{},
	)

	// 3. Seed default admin user
	seedAdmin(db)

	// 4. Redis-backed stores (OTP delivery, live officer positions)
	rdb := database.ConnectRedis()
	otpStore := repository.NewOTPStore(rdb)
	locationStore := repository.NewLocationStore(rdb)

	// 5. Cloudinary for voice report audio
	uploader, err := storage.NewCloudinaryService(
		os.Getenv("CLOUDINARY_CLOUD_NAME"),
		os.Getenv("CLOUDINARY_API_KEY"),
		os.Getenv("CLOUDINARY_API_SECRET"),
	)
	if err != nil {
		log.Fatalf("Failed to init Cloudinary: %v", err)
	}

	// 6. Setup WebSocket Hub
	hub := wshub.NewHub()
	go hub.Run()

	// 7. Dependency Injection (Wiring Layers)
	userRepo := repository.NewUserRepo(db)
	reportRepo := repository.NewReportRepo(db)
	incidentRepo := repository.NewIncidentRepo(db)
	caseRepo := repository.NewCaseRepo(db)
	alertRepo := repository.NewAlertRepo(db)
	sosRepo := repository.NewSOSRepo(db)

	authService := service.NewAuthService(userRepo, otpStore)
	reportService := service.NewReportService(reportRepo, uploader, hub)
	incidentService := service.NewIncidentService(incidentRepo, locationStore, hub)
	caseService := service.NewCaseService(caseRepo, hub)
	alertService := service.NewAlertService(alertRepo, hub)
	sosService := service.NewSOSService(sosRepo, locationStore, hub)
	userService := service.NewUserService(userRepo, caseRepo, locationStore, hub)
	analyticsService := service.NewAnalyticsService(incidentRepo, caseRepo)

	authHandler := handler.NewAuthHandler(authService)
	reportHandler := handler.NewReportHandler(reportService)
	incidentHandler := handler.NewIncidentHandler(incidentService)
	caseHandler := handler.NewCaseHandler(caseService)
	alertHandler := handler.NewAlertHandler(alertService)
	sosHandler := handler.NewSOSHandler(sosService)
	userHandler := handler.NewUserHandler(userService)
	analyticsHandler := handler.NewAnalyticsHandler(analyticsService)

	// 8. Setup Fiber
	app := fiber.New(fiber.Config{
		AppName: "SafeCity Portal v1.0",
	})

	// Middleware
	app.Use(logger.New())  // Logging request
	app.Use(recover.New()) // Panic recovery
	app.Use(cors.New())    // CORS

	// 9. Routes
	api := app.Group("/api")

	// ============ PUBLIC ROUTES ============
	auth := api.Group("/auth")
	auth.Post("/signin", authHandler.SignIn)
	auth.Post("/signup", authHandler.SignUp)
	auth.Post("/anonymous", authHandler.SignInAnonymously)
	auth.Post("/aadhaar-login/request-otp", authHandler.RequestAadhaarOTP)
	auth.Post("/aadhaar-login/verify-otp", authHandler.VerifyAadhaarOTP)
	auth.Get("/user", middleware.RequireAuth(userRepo), authHandler.CurrentUser)

	// ============ PROTECTED ROUTES ============
	protected := api.Group("", middleware.RequireAuth(userRepo))

	// Report Routes (any authenticated user can file; moderation is gated)
	protected.Get("/reports", middleware.RequireCapability(func(p permission.Permissions) bool { return p.CanViewReports }), reportHandler.GetReports)
	protected.Get("/reports/mine", reportHandler.GetMyReports)
	protected.Get("/reports/:id", middleware.RequireCapability(func(p permission.Permissions) bool { return p.CanViewReports }), reportHandler.GetReport)
	protected.Post("/reports", reportHandler.CreateReport)
	protected.Post("/reports/voice", reportHandler.CreateVoiceReport)
	protected.Put("/reports/:id", middleware.RequireCapability(func(p permission.Permissions) bool { return p.CanApproveReports }), reportHandler.UpdateReport)
	protected.Put("/reports/:id/approve", middleware.RequireCapability(func(p permission.Permissions) bool { return p.CanApproveReports }), reportHandler.ApproveReport)
	protected.Put("/reports/:id/reject", middleware.RequireCapability(func(p permission.Permissions) bool { return p.CanApproveReports }), reportHandler.RejectReport)
	protected.Delete("/reports/:id", middleware.RequireRole(model.RoleAdmin), reportHandler.DeleteReport)

	// Incident Routes
	protected.Get("/incidents", incidentHandler.GetIncidents)
	protected.Get("/incidents/map", middleware.RequireCapability(func(p permission.Permissions) bool { return p.CanViewMap }), incidentHandler.GetIncidentsForMap)
	protected.Get("/incidents/:id", incidentHandler.GetIncident)
	protected.Post("/incidents", middleware.RequireRole(model.RoleOfficer, model.RoleAdmin), incidentHandler.CreateIncident)
	protected.Put("/incidents/:id", middleware.RequireRole(model.RoleOfficer, model.RoleAdmin), incidentHandler.UpdateIncident)
	protected.Delete("/incidents/:id", middleware.RequireRole(model.RoleAdmin), incidentHandler.DeleteIncident)

	// Case Routes (officer tooling)
	cases := protected.Group("/cases", middleware.RequireRole(model.RoleOfficer, model.RoleAdmin))
	cases.Get("/", caseHandler.GetCases)
	cases.Get("/:id", caseHandler.GetCase)
	cases.Post("/", caseHandler.CreateCase)
	cases.Put("/:id", caseHandler.UpdateCase)
	cases.Post("/:id/notes", caseHandler.AddNote)
	cases.Delete("/:id", middleware.RequireRole(model.RoleAdmin), caseHandler.DeleteCase)

	// Alert Routes
	protected.Get("/alerts", alertHandler.GetAlerts)
	protected.Get("/alerts/mine", alertHandler.GetMyAlerts)
	protected.Post("/alerts", middleware.RequireCapability(func(p permission.Permissions) bool { return p.CanEditAlerts }), alertHandler.CreateAlert)
	protected.Put("/alerts/:id/read", alertHandler.MarkAlertRead)
	protected.Delete("/alerts/:id", middleware.RequireCapability(func(p permission.Permissions) bool { return p.CanEditAlerts }), alertHandler.DeleteAlert)

	// SOS Routes (anyone can trigger; responding is officer work)
	protected.Post("/sos/trigger", sosHandler.TriggerSOS)
	protected.Get("/sos/active", middleware.RequireRole(model.RoleOfficer, model.RoleAdmin), sosHandler.GetActiveSOS)
	protected.Post("/sos/:id/respond", middleware.RequireRole(model.RoleOfficer, model.RoleAdmin), sosHandler.RespondSOS)
	protected.Put("/sos/:id/resolve", middleware.RequireRole(model.RoleOfficer, model.RoleAdmin), sosHandler.ResolveSOS)

	// User Management Routes
	protected.Get("/users", middleware.RequireCapability(func(p permission.Permissions) bool { return p.CanManageUsers }), userHandler.GetUsers)
	protected.Get("/users/officers/performance", middleware.RequireCapability(func(p permission.Permissions) bool { return p.CanViewOfficerPerformance }), userHandler.GetAllOfficersPerformance)
	protected.Get("/users/:id", middleware.RequireCapability(func(p permission.Permissions) bool { return p.CanManageUsers }), userHandler.GetUser)
	protected.Put("/users/:id", middleware.RequireCapability(func(p permission.Permissions) bool { return p.CanManageUsers }), userHandler.UpdateUser)
	protected.Put("/users/:id/role", middleware.RequireCapability(func(p permission.Permissions) bool { return p.CanManageUsers }), userHandler.UpdateUserRole)
	protected.Get("/users/:id/performance", middleware.RequireCapability(func(p permission.Permissions) bool { return p.CanViewOfficerPerformance }), userHandler.GetOfficerPerformance)
	protected.Post("/users/location", middleware.RequireRole(model.RoleOfficer, model.RoleAdmin), userHandler.UpdateLocation)
	protected.Post("/users/heartbeat", userHandler.Heartbeat)

	// Analytics Routes (admin dashboard)
	analytics := protected.Group("/analytics", middleware.RequireCapability(func(p permission.Permissions) bool { return p.CanAccessAnalytics }))
	analytics.Get("/crime-statistics", analyticsHandler.GetStatistics)
	analytics.Get("/crime-trends", analyticsHandler.GetTrends)
	analytics.Get("/officer-performance", middleware.RequireCapability(func(p permission.Permissions) bool { return p.CanViewOfficerPerformance }), userHandler.GetAllOfficersPerformance)
	analytics.Get("/predictive", middleware.RequireCapability(func(p permission.Permissions) bool { return p.CanUsePredictiveAnalysis }), analyticsHandler.GetPredictiveAnalysis)

	// WebSocket Route. The token travels as a query param because browser
	// WebSocket clients cannot set headers.
	app.Use("/ws", func(c *fiber.Ctx) error {
		if !websocket.IsWebSocketUpgrade(c) {
			return c.SendStatus(fiber.StatusUpgradeRequired)
		}

		claims, err := jwt.ValidateToken(c.Query("token"))
		if err != nil {
			return c.SendStatus(fiber.StatusUnauthorized)
		}
		user, err := userRepo.FindByID(claims.UserID)
		if err != nil || user.TokenVersion != claims.TokenVersion {
			return c.SendStatus(fiber.StatusUnauthorized)
		}

		c.Locals("ws_user_id", claims.UserID)
		c.Locals("ws_user_role", user.Role)
		return c.Next()
	})
	app.Get("/ws", websocket.New(func(c *websocket.Conn) {
		userID, _ := c.Locals("ws_user_id").(uuid.UUID)
		role, _ := c.Locals("ws_user_role").(model.UserRole)

		hub.Register <- c
		defer func() { hub.Unregister <- c }()

		for {
			_, raw, err := c.ReadMessage()
			if err != nil {
				break
			}

			// Officers push their position over the socket; everything
			// else inbound is ignored.
			var msg wshub.Message
			if err := json.Unmarshal(raw, &msg); err != nil {
				continue
			}
			if msg.Type != wshub.TypeOfficerLocationUpdate {
				continue
			}
			if role != model.RoleOfficer && role != model.RoleAdmin {
				continue
			}

			var loc struct {
				Latitude  float64 `json:"latitude"`
				Longitude float64 `json:"longitude"`
			}
			payload, err := json.Marshal(msg.Payload)
			if err != nil {
				continue
			}
			if err := json.Unmarshal(payload, &loc); err != nil {
				continue
			}

			if err := userService.UpdateOfficerLocation(context.Background(), userID, loc.Latitude, loc.Longitude); err != nil {
				log.Printf("ws: failed to store officer location: %v", err)
			}
		}
	}))

	// 10. Graceful Shutdown
	go func() {
		port := os.Getenv("PORT")
		if port == "" {
			port = "3000"
		}
		if err := app.Listen(":" + port); err != nil {
			log.Panic(err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")
	if err := app.Shutdown(); err != nil {
		log.Fatal("Server forced to shutdown:", err)
	}

	log.Println("Server exited")
}

// seedAdmin creates the default admin account if missing.
func seedAdmin(db *gorm.DB) {
	userRepo := repository.NewUserRepo(db)

	if _, err := userRepo.FindByEmail("admin@safecity.gov.in"); err == nil {
		return
	}

	admin := &model.User{
		Name:     "SafeCity Administrator",
		Email:    "admin@safecity.gov.in",
		Role:     model.RoleAdmin,
		IsActive: true,
	}
	admin.CreatedBy = "system"
	admin.UpdatedBy = "system"

	password := os.Getenv("ADMIN_PASSWORD")
	if password == "" {
		password = "admin123"
	}
	if err := admin.SetPassword(password); err != nil {
		log.Printf("Warning: Failed to hash admin password: %v", err)
		return
	}

	if err := userRepo.Create(admin); err != nil {
		log.Printf("Warning: Failed to create admin user: %v", err)
	} else {
		log.Println("✅ Admin user created: admin@safecity.gov.in")
	}
}
