package main

import (
	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"

	"github.com/lmercat/productivity-api/internal/config"
	"github.com/lmercat/productivity-api/internal/database"
	"github.com/lmercat/productivity-api/internal/handlers"
	"github.com/lmercat/productivity-api/internal/metrics"
	"github.com/lmercat/productivity-api/internal/middleware"
	"github.com/lmercat/productivity-api/internal/repository"
	"github.com/lmercat/productivity-api/internal/services"
)

func main() {
	// Load configuration
	cfg := config.Load()

	// Set Gin mode
	gin.SetMode(cfg.GinMode)

	// Connect to database
	if err := database.Connect(cfg); err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	// Run migrations
	if err := database.Migrate(); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	db := database.GetDB()

	// Repositories
	userRepo := repository.NewUserRepository(db)
	sessionRepo := repository.NewSessionRepository(db)
	noteRepo := repository.NewNoteRepository(db)
	taskRepo := repository.NewTaskRepository(db)
	habitRepo := repository.NewHabitRepository(db)
	reminderRepo := repository.NewReminderRepository(db)
	shareRepo := repository.NewShareRepository(db)
	contactRepo := repository.NewContactRepository(db)
	subscriptionRepo := repository.NewSubscriptionRepository(db)

	// Services
	authService := services.NewAuthService(userRepo, sessionRepo)
	subscriptionService := services.NewSubscriptionService(subscriptionRepo, userRepo, noteRepo, reminderRepo)
	calendarService := services.NewCalendarService(cfg.CalendarWebhookURL)
	noteService := services.NewNoteService(noteRepo, subscriptionService, calendarService)
	taskService := services.NewTaskService(taskRepo)
	habitService := services.NewHabitService(habitRepo)
	reminderService := services.NewReminderService(reminderRepo, noteRepo, userRepo, subscriptionService)
	shareService := services.NewShareService(shareRepo, userRepo, noteRepo, taskRepo, habitRepo, reminderRepo)
	contactService := services.NewContactService(contactRepo, userRepo)
	billingService := services.NewBillingService(
		cfg.StripeSecretKey,
		cfg.StripeWebhookSecret,
		cfg.StripeProPriceID,
		cfg.AppBaseURL,
		subscriptionService,
	)

	// Handlers
	authHandler := handlers.NewAuthHandler(authService, cfg.IsProduction())
	noteHandler := handlers.NewNoteHandler(noteService)
	taskHandler := handlers.NewTaskHandler(taskService)
	habitHandler := handlers.NewHabitHandler(habitService)
	reminderHandler := handlers.NewReminderHandler(reminderService)
	shareHandler := handlers.NewShareHandler(shareService, cfg.AppBaseURL)
	contactHandler := handlers.NewContactHandler(contactService)
	subscriptionHandler := handlers.NewSubscriptionHandler(subscriptionService, billingService)
	adminHandler := handlers.NewAdminHandler(userRepo)

	// Initialize Gin router
	r := gin.Default()
	r.Use(metrics.Middleware())

	// Health check endpoint
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "ok",
			"message": "Productivity API is running",
		})
	})

	// Prometheus endpoint
	r.GET("/metrics", metrics.Handler())

	// Public note links
	r.GET("/shared/:token", shareHandler.ResolvePublicShare)

	requireAuth := middleware.RequireAuth(authService)

	// API routes
	api := r.Group("/api")
	{
		// Auth routes (public)
		auth := api.Group("/auth")
		{
			auth.POST("/signup", authHandler.Signup)
			auth.POST("/login", authHandler.Login)
			auth.POST("/logout", authHandler.Logout)
			auth.GET("/me", requireAuth, authHandler.GetCurrentUser)
		}

		// Note routes (protected)
		notes := api.Group("/notes")
		notes.Use(requireAuth)
		{
			notes.GET("", noteHandler.ListNotes)
			notes.POST("", noteHandler.CreateNote)
			notes.GET("/:id", noteHandler.GetNote)
			notes.PATCH("/:id", noteHandler.UpdateNote)
			notes.DELETE("/:id", noteHandler.DeleteNote)
		}

		// Task routes (protected)
		tasks := api.Group("/tasks")
		tasks.Use(requireAuth)
		{
			tasks.GET("", taskHandler.ListTasks)
			tasks.POST("", taskHandler.CreateTask)
			tasks.GET("/:id", taskHandler.GetTask)
			tasks.PATCH("/:id", taskHandler.UpdateTask)
			tasks.DELETE("/:id", taskHandler.DeleteTask)
			tasks.POST("/:id/subtasks", taskHandler.AddSubTask)
			tasks.POST("/:id/subtasks/:subTaskId/toggle", taskHandler.ToggleSubTask)
			tasks.PATCH("/:id/subtasks/:subTaskId", taskHandler.UpdateSubTask)
			tasks.DELETE("/:id/subtasks/:subTaskId", taskHandler.DeleteSubTask)
		}

		// Habit routes (protected)
		habits := api.Group("/habits")
		habits.Use(requireAuth)
		{
			habits.GET("", habitHandler.ListHabits)
			habits.POST("", habitHandler.CreateHabit)
			habits.GET("/stats", habitHandler.GetHabitStats)
			habits.GET("/:id", habitHandler.GetHabit)
			habits.PATCH("/:id", habitHandler.UpdateHabit)
			habits.DELETE("/:id", habitHandler.DeleteHabit)
			habits.POST("/:id/status", habitHandler.SetHabitStatus)
		}

		// Reminder routes (protected)
		reminders := api.Group("/reminders")
		reminders.Use(requireAuth)
		{
			reminders.GET("", reminderHandler.ListReminders)
			reminders.POST("", reminderHandler.CreateReminder)
			reminders.DELETE("/:id", reminderHandler.DeleteReminder)
		}

		// Share routes (protected)
		shares := api.Group("/shares")
		shares.Use(requireAuth)
		{
			shares.GET("", shareHandler.ListSharedWithMe)
			shares.GET("/owned", shareHandler.ListSharedByMe)
			shares.POST("", shareHandler.CreateShare)
			shares.DELETE("/:id", shareHandler.DeleteShare)
			shares.POST("/public", shareHandler.CreatePublicShare)
			shares.DELETE("/public/:id", shareHandler.DeletePublicShare)
		}

		// Contact routes (protected)
		contacts := api.Group("/contacts")
		contacts.Use(requireAuth)
		{
			contacts.GET("", contactHandler.ListContacts)
			contacts.DELETE("/:id", contactHandler.DeleteContact)
			contacts.GET("/search", contactHandler.SearchUsers)
			contacts.GET("/requests", contactHandler.ListContactRequests)
			contacts.POST("/requests", contactHandler.CreateContactRequest)
			contacts.POST("/requests/:id/accept", contactHandler.AcceptContactRequest)
			contacts.POST("/requests/:id/reject", contactHandler.RejectContactRequest)
		}

		// Subscription routes
		subscription := api.Group("/subscription")
		{
			subscription.GET("/plans", subscriptionHandler.ListPlans)
			subscription.POST("/webhook", subscriptionHandler.HandleWebhook)
			subscription.GET("", requireAuth, subscriptionHandler.GetSubscription)
			subscription.POST("/checkout", requireAuth, subscriptionHandler.CreateCheckout)
		}

		// Admin routes
		admin := api.Group("/admin")
		admin.Use(requireAuth, middleware.RequireAdmin())
		{
			admin.GET("/users", adminHandler.ListUsers)
		}
	}

	// Start server
	log.Infof("Server starting on :%s", cfg.Port)
	if err := r.Run(":" + cfg.Port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
