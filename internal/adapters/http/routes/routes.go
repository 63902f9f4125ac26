package routes

import (
	"nagari-society/internal/adapters/http/handlers"
	"nagari-society/internal/adapters/http/middleware"
	"nagari-society/internal/adapters/persistence/repositories"
	"nagari-society/internal/config"
	"nagari-society/internal/core/services"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// Setup wires repositories, services and handlers, and registers all routes
func Setup(app *fiber.App, db *gorm.DB, cfg *config.Config) {
	// Repositories
	identityRepo := repositories.NewIdentityRepository(db)
	deviceRepo := repositories.NewDeviceSessionRepository(db)
	tokenRepo := repositories.NewRefreshTokenRepository(db)
	noticeRepo := repositories.NewNoticeRepository(db)
	issueRepo := repositories.NewIssueRepository(db)
	vendorRepo := repositories.NewVendorRepository(db)
	expenseRepo := repositories.NewExpenseRepository(db)
	taskRepo := repositories.NewTaskRepository(db)
	paymentRepo := repositories.NewPaymentRepository(db)
	agmRepo := repositories.NewAGMRepository(db)

	// Services
	directoryService := services.NewDirectoryService(identityRepo, cfg)
	sessionService := services.NewSessionService(deviceRepo, identityRepo, tokenRepo, cfg)

	// In dev mode the OTP is fixed so the flow can be exercised without
	// an SMS gateway
	otpCode := ""
	if cfg.IsDev() {
		otpCode = "1234"
	}
	otpService := services.NewOTPService(otpCode)

	flowService := services.NewAuthFlowService(directoryService, sessionService, otpService)
	noticeService := services.NewNoticeService(noticeRepo)
	issueService := services.NewIssueService(issueRepo)
	vendorService := services.NewVendorService(vendorRepo)
	expenseService := services.NewExpenseService(expenseRepo)
	taskService := services.NewTaskService(taskRepo)
	paymentService := services.NewPaymentService(paymentRepo, identityRepo)
	agmService := services.NewAGMService(agmRepo)
	dashboardService := services.NewDashboardService(
		identityRepo, noticeRepo, issueRepo, taskRepo, paymentRepo,
		vendorService, expenseService,
	)

	// Handlers
	healthHandler := handlers.NewHealthHandler()
	authHandler := handlers.NewAuthHandler(flowService, sessionService, cfg)
	memberHandler := handlers.NewMemberHandler(directoryService)
	noticeHandler := handlers.NewNoticeHandler(noticeService)
	issueHandler := handlers.NewIssueHandler(issueService)
	vendorHandler := handlers.NewVendorHandler(vendorService)
	expenseHandler := handlers.NewExpenseHandler(expenseService)
	taskHandler := handlers.NewTaskHandler(taskService)
	paymentHandler := handlers.NewPaymentHandler(paymentService, cfg)
	agmHandler := handlers.NewAGMHandler(agmService)
	dashboardHandler := handlers.NewDashboardHandler(dashboardService)

	authed := middleware.AuthMiddleware(cfg)
	adminOnly := middleware.RoleMiddleware("admin")

	app.Get("/health", healthHandler.Check)

	api := app.Group("/api/v1")

	// Auth flow - rate limited, no token required
	authRoutes := api.Group("/auth")
	authRoutes.Use(middleware.AuthRateLimiter())
	authRoutes.Post("/bootstrap", authHandler.Bootstrap)
	authRoutes.Post("/phone", authHandler.SubmitPhone)
	authRoutes.Post("/otp", authHandler.SubmitOTP)
	authRoutes.Post("/change-number", authHandler.ChangeNumber)
	authRoutes.Post("/register", authHandler.Register)
	authRoutes.Post("/mpin", authHandler.SubmitMPIN)
	authRoutes.Post("/switch-account", authHandler.SwitchAccount)
	authRoutes.Post("/refresh", authHandler.RefreshToken)
	authRoutes.Post("/logout", authHandler.Logout)

	api.Get("/me", authed, memberHandler.Me)

	memberRoutes := api.Group("/members")
	memberRoutes.Use(authed)
	memberRoutes.Get("/", adminOnly, memberHandler.List)

	dashboardRoutes := api.Group("/dashboard")
	dashboardRoutes.Use(authed)
	dashboardRoutes.Get("/", dashboardHandler.Member)
	dashboardRoutes.Get("/admin", adminOnly, dashboardHandler.Admin)

	noticeRoutes := api.Group("/notices")
	noticeRoutes.Use(authed)
	noticeRoutes.Get("/", noticeHandler.List)
	noticeRoutes.Post("/", adminOnly, noticeHandler.Create)
	noticeRoutes.Get("/:id", noticeHandler.Get)
	noticeRoutes.Post("/:id/read", noticeHandler.MarkRead)

	issueRoutes := api.Group("/issues")
	issueRoutes.Use(authed)
	issueRoutes.Get("/", issueHandler.List)
	issueRoutes.Post("/", issueHandler.Create)
	issueRoutes.Get("/:id", issueHandler.Get)
	issueRoutes.Patch("/:id/status", adminOnly, issueHandler.UpdateStatus)

	vendorRoutes := api.Group("/vendors")
	vendorRoutes.Use(authed)
	vendorRoutes.Get("/", vendorHandler.List)
	vendorRoutes.Post("/", adminOnly, vendorHandler.Create)
	vendorRoutes.Get("/expiring", vendorHandler.ExpiringSoon)
	vendorRoutes.Get("/:id", vendorHandler.Get)

	expenseRoutes := api.Group("/expenses")
	expenseRoutes.Use(authed)
	expenseRoutes.Get("/", expenseHandler.List)
	expenseRoutes.Post("/", adminOnly, expenseHandler.Create)
	expenseRoutes.Get("/:id", expenseHandler.Get)

	taskRoutes := api.Group("/tasks")
	taskRoutes.Use(authed)
	taskRoutes.Get("/", taskHandler.List)
	taskRoutes.Post("/", adminOnly, taskHandler.Create)
	taskRoutes.Post("/:id/toggle", taskHandler.Toggle)

	paymentRoutes := api.Group("/payments")
	paymentRoutes.Use(authed)
	paymentRoutes.Get("/", paymentHandler.List)
	paymentRoutes.Post("/generate", adminOnly, paymentHandler.GenerateDues)
	paymentRoutes.Post("/:id/proof", paymentHandler.UploadProof)

	agmRoutes := api.Group("/agm")
	agmRoutes.Use(authed)
	agmRoutes.Get("/", agmHandler.List)
	agmRoutes.Post("/", adminOnly, agmHandler.Create)
	agmRoutes.Patch("/agenda/:id/outcome", adminOnly, agmHandler.RecordOutcome)
	agmRoutes.Get("/:year", agmHandler.GetByYear)
	agmRoutes.Post("/:year/agenda", adminOnly, agmHandler.AddAgendaItem)
}
