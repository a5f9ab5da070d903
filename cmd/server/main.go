package main

import (
	"fmt"
	"log"
	"net/http"

	"github.com/Aidana2206/GrowthSpace/internal/config"
	"github.com/Aidana2206/GrowthSpace/internal/database"
	"github.com/Aidana2206/GrowthSpace/internal/handlers"
	"github.com/Aidana2206/GrowthSpace/internal/repository"
	cronjobs "github.com/Aidana2206/GrowthSpace/internal/scheduler"
	"github.com/Aidana2206/GrowthSpace/internal/services"
	"github.com/Aidana2206/GrowthSpace/internal/ws"
	"github.com/Aidana2206/GrowthSpace/pkg/logger"
	"github.com/Aidana2206/GrowthSpace/pkg/middleware"
	"github.com/gorilla/mux"
	"github.com/rs/cors"
)

func main() {
	// Load configuration from .env file
	cfg := config.LoadConfig()

	logger.InitLogger()
	logger.Log.Info("Logger initialized")

	// Connect to MongoDB
	db, err := database.ConnectDB(cfg)
	if err != nil {
		log.Fatalf("Database connection error: %v", err)
	}

	// --- Repositories ---
	userRepo := repository.NewUserRepository(db)
	profileRepo := repository.NewProfileRepository(db)
	communityRepo := repository.NewCommunityRepository(db)
	membershipRepo := repository.NewMembershipRepository(db)
	messageRepo := repository.NewMessageRepository(db)
	goalRepo := repository.NewGoalRepository(db)
	progressRepo := repository.NewProgressRepository(db)
	notificationRepo := repository.NewNotificationRepository(db)
	feedbackRepo := repository.NewFeedbackRepository(db)
	recommendationRepo := repository.NewRecommendationRepository(db)
	contentRepo := repository.NewContentRepository(db)

	// --- Services ---
	userService := services.NewUserService(userRepo, profileRepo, goalRepo, progressRepo, membershipRepo, notificationRepo, cfg.BaseURL)
	communityService := services.NewCommunityService(communityRepo, membershipRepo, messageRepo)
	membershipService := services.NewMembershipService(membershipRepo, communityRepo)
	messageService := services.NewMessageService(messageRepo, membershipRepo, userRepo)
	notificationService := services.NewNotificationService(notificationRepo, userRepo)
	goalService := services.NewGoalService(goalRepo, profileRepo, progressRepo, notificationService)
	progressService := services.NewProgressService(progressRepo, goalRepo, profileRepo)
	feedbackService := services.NewFeedbackService(feedbackRepo)
	recommendationService := services.NewRecommendationService(recommendationRepo)
	contentService := services.NewContentService(contentRepo)

	// --- Realtime chat ---
	hub := ws.NewHub()
	messageService.SetBroadcaster(hub)
	membershipService.SetEvictor(hub)
	chatHandler := ws.NewChatHandler(hub, membershipService, cfg.JWTSecret)

	// --- Handlers ---
	userHandler := handlers.NewUserHandler(userService, cfg)
	communityHandler := handlers.NewCommunityHandler(communityService)
	membershipHandler := handlers.NewMembershipHandler(membershipService)
	messageHandler := handlers.NewMessageHandler(messageService, cfg.UploadDir)
	goalHandler := handlers.NewGoalHandler(goalService)
	progressHandler := handlers.NewProgressHandler(progressService)
	notificationHandler := handlers.NewNotificationHandler(notificationService)
	feedbackHandler := handlers.NewFeedbackHandler(feedbackService)
	recommendationHandler := handlers.NewRecommendationHandler(recommendationService)
	contentHandler := handlers.NewContentHandler(contentService)

	// Initialize Gorilla Mux router
	router := mux.NewRouter()

	// Public auth routes
	router.HandleFunc("/api/auth/user/register", userHandler.RegisterUserHandler).Methods("POST")
	router.HandleFunc("/api/auth/user/login", userHandler.LoginUserHandler).Methods("POST")
	router.HandleFunc("/api/auth/user/verify", userHandler.VerifyEmailHandler).Methods("GET")
	router.HandleFunc("/api/auth/admin/login", userHandler.LoginUserHandler).Methods("POST")

	// Admin registration requires an authenticated SuperAdmin
	adminRegister := router.PathPrefix("/api/auth/admin/register").Subrouter()
	adminRegister.Use(middleware.AuthMiddleware(cfg.JWTSecret))
	adminRegister.Use(middleware.RequireRole("SuperAdmin"))
	adminRegister.HandleFunc("", userHandler.RegisterAdminHandler).Methods("POST")

	// User and profile routes
	userRoutes := router.PathPrefix("/api/users").Subrouter()
	userRoutes.Use(middleware.AuthMiddleware(cfg.JWTSecret))
	userRoutes.HandleFunc("/me/profile", userHandler.GetProfileHandler).Methods("GET")
	userRoutes.HandleFunc("/me/profile", userHandler.UpdateProfileHandler).Methods("PUT")
	userRoutes.HandleFunc("/me/avatar", userHandler.UploadAvatarHandler).Methods("POST")
	userRoutes.HandleFunc("/{id}", userHandler.GetUserHandler).Methods("GET")
	userRoutes.HandleFunc("/{id}", userHandler.UpdateUserHandler).Methods("PATCH")
	userRoutes.HandleFunc("/{id}", userHandler.DeleteUserHandler).Methods("DELETE")

	// Community routes
	communityRoutes := router.PathPrefix("/api/communities").Subrouter()
	communityRoutes.Use(middleware.AuthMiddleware(cfg.JWTSecret))
	communityRoutes.HandleFunc("", communityHandler.CreateCommunityHandler).Methods("POST")
	communityRoutes.HandleFunc("", communityHandler.ListCommunitiesHandler).Methods("GET")
	communityRoutes.HandleFunc("/{communityId}", communityHandler.GetCommunityHandler).Methods("GET")
	communityRoutes.Handle("/{communityId}",
		middleware.RequireRole("Admin", "SuperAdmin")(http.HandlerFunc(communityHandler.DeleteCommunityHandler))).Methods("DELETE")

	// Membership routes
	membershipRoutes := router.PathPrefix("/api/user-communities").Subrouter()
	membershipRoutes.Use(middleware.AuthMiddleware(cfg.JWTSecret))
	membershipRoutes.HandleFunc("/user", membershipHandler.ListOwnMembershipsHandler).Methods("GET")
	membershipRoutes.HandleFunc("/community/{communityId}", membershipHandler.ListMembersHandler).Methods("GET")
	membershipRoutes.HandleFunc("/{communityId}", membershipHandler.JoinCommunityHandler).Methods("POST")
	membershipRoutes.HandleFunc("/{communityId}", membershipHandler.LeaveCommunityHandler).Methods("DELETE")

	// Message routes
	messageRoutes := router.PathPrefix("/api/messages").Subrouter()
	messageRoutes.Use(middleware.AuthMiddleware(cfg.JWTSecret))
	messageRoutes.HandleFunc("", messageHandler.SendMessageHandler).Methods("POST")
	messageRoutes.HandleFunc("/upload", messageHandler.UploadAttachmentHandler).Methods("POST")
	messageRoutes.HandleFunc("/community/{communityId}", messageHandler.ListMessagesHandler).Methods("GET")
	messageRoutes.HandleFunc("/{id}", messageHandler.DeleteMessageHandler).Methods("DELETE")

	// Goal and progress routes
	goalRoutes := router.PathPrefix("/api/goals").Subrouter()
	goalRoutes.Use(middleware.AuthMiddleware(cfg.JWTSecret))
	goalRoutes.HandleFunc("", goalHandler.CreateGoalHandler).Methods("POST")
	goalRoutes.HandleFunc("", goalHandler.GetGoalsHandler).Methods("GET")
	goalRoutes.HandleFunc("/{id}", goalHandler.GetGoalHandler).Methods("GET")
	goalRoutes.HandleFunc("/{id}", goalHandler.UpdateGoalHandler).Methods("PUT")
	goalRoutes.HandleFunc("/{id}", goalHandler.DeleteGoalHandler).Methods("DELETE")
	goalRoutes.HandleFunc("/{id}/progress", progressHandler.RecordProgressHandler).Methods("POST")
	goalRoutes.HandleFunc("/{id}/progress", progressHandler.ListProgressHandler).Methods("GET")

	// Notification routes
	notificationRoutes := router.PathPrefix("/api/notifications").Subrouter()
	notificationRoutes.Use(middleware.AuthMiddleware(cfg.JWTSecret))
	notificationRoutes.HandleFunc("", notificationHandler.ListOwnHandler).Methods("GET")
	notificationRoutes.HandleFunc("/{id}/read", notificationHandler.MarkReadHandler).Methods("PATCH")
	notificationRoutes.HandleFunc("/{id}", notificationHandler.DeleteHandler).Methods("DELETE")

	// Feedback routes
	feedbackRoutes := router.PathPrefix("/api/feedback").Subrouter()
	feedbackRoutes.Use(middleware.AuthMiddleware(cfg.JWTSecret))
	feedbackRoutes.HandleFunc("", feedbackHandler.CreateFeedbackHandler).Methods("POST")
	feedbackRoutes.HandleFunc("", feedbackHandler.ListOwnFeedbackHandler).Methods("GET")
	feedbackRoutes.HandleFunc("/{id}", feedbackHandler.DeleteFeedbackHandler).Methods("DELETE")

	// Recommendation routes
	recommendationRoutes := router.PathPrefix("/api/recommendations").Subrouter()
	recommendationRoutes.Use(middleware.AuthMiddleware(cfg.JWTSecret))
	recommendationRoutes.HandleFunc("", recommendationHandler.CreateRecommendationHandler).Methods("POST")
	recommendationRoutes.HandleFunc("", recommendationHandler.ListOwnRecommendationsHandler).Methods("GET")
	recommendationRoutes.HandleFunc("/{id}", recommendationHandler.UpdateRecommendationHandler).Methods("PUT")
	recommendationRoutes.HandleFunc("/{id}", recommendationHandler.DeleteRecommendationHandler).Methods("DELETE")

	// Content library (read-only for regular users)
	contentRoutes := router.PathPrefix("/api/content").Subrouter()
	contentRoutes.Use(middleware.AuthMiddleware(cfg.JWTSecret))
	contentRoutes.HandleFunc("", contentHandler.ListContentHandler).Methods("GET")
	contentRoutes.HandleFunc("/{id}", contentHandler.GetContentHandler).Methods("GET")

	// Admin routes
	adminRoutes := router.PathPrefix("/api/admin").Subrouter()
	adminRoutes.Use(middleware.AuthMiddleware(cfg.JWTSecret))
	adminRoutes.Use(middleware.RequireRole("Moderator", "Admin", "SuperAdmin"))
	adminRoutes.HandleFunc("/users", userHandler.AdminGetAllUsersHandler).Methods("GET")
	adminRoutes.HandleFunc("/feedback", feedbackHandler.ListFeedbackHandler).Methods("GET")

	// Mutating admin routes are closed to Moderators
	adminWriteRoutes := router.PathPrefix("/api/admin").Subrouter()
	adminWriteRoutes.Use(middleware.AuthMiddleware(cfg.JWTSecret))
	adminWriteRoutes.Use(middleware.RequireRole("Admin", "SuperAdmin"))
	adminWriteRoutes.Handle("/users/{id}/role",
		middleware.RequireRole("SuperAdmin")(http.HandlerFunc(userHandler.AdminUpdateRoleHandler))).Methods("PUT")
	adminWriteRoutes.HandleFunc("/users/{id}", userHandler.DeleteUserHandler).Methods("DELETE")
	adminWriteRoutes.HandleFunc("/communities/{communityId}", communityHandler.DeleteCommunityHandler).Methods("DELETE")
	adminWriteRoutes.HandleFunc("/user-communities/{communityId}/{userId}", membershipHandler.RemoveMemberHandler).Methods("DELETE")
	adminWriteRoutes.HandleFunc("/notifications", notificationHandler.BulkCreateHandler).Methods("POST")
	adminWriteRoutes.HandleFunc("/content", contentHandler.CreateContentHandler).Methods("POST")
	adminWriteRoutes.HandleFunc("/content/{id}", contentHandler.UpdateContentHandler).Methods("PUT")
	adminWriteRoutes.HandleFunc("/content/{id}", contentHandler.DeleteContentHandler).Methods("DELETE")

	// Realtime chat endpoint
	router.HandleFunc("/ws", chatHandler.ServeWS)

	// Uploaded files
	router.PathPrefix("/uploads/").Handler(http.StripPrefix("/uploads/", http.FileServer(http.Dir(cfg.UploadDir))))

	// Apply middleware for logging
	router.Use(middleware.LoggingMiddleware)

	// Background notification jobs
	cronjobs.StartNotificationCronJobs(notificationService)

	// Start the HTTP server
	port := cfg.Port
	c := cors.New(cors.Options{
		AllowedOrigins:   []string{"http://localhost:3000"}, // adjust to frontend origin
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS", "PATCH"},
		AllowedHeaders:   []string{"Authorization", "Content-Type"},
		AllowCredentials: true,
	})

	handler := c.Handler(router)

	fmt.Printf("Server running on port %s\n", port)
	log.Fatal(http.ListenAndServe(":"+port, handler))
}
