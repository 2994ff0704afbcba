package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/yourusername/quizverse-api/internal/config"
	"github.com/yourusername/quizverse-api/internal/handler"
	"github.com/yourusername/quizverse-api/internal/middleware"
	pgRepo "github.com/yourusername/quizverse-api/internal/repository/postgres"
	redisRepo "github.com/yourusername/quizverse-api/internal/repository/redis"
	"github.com/yourusername/quizverse-api/internal/service"
	"github.com/yourusername/quizverse-api/internal/ws"
	"github.com/yourusername/quizverse-api/pkg/auth"
	"github.com/yourusername/quizverse-api/pkg/database"
)

func main() {
	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = "config/config.yaml"
	}
	log.Printf("Loading configuration from %s", configPath)

	cfg, err := config.Load(configPath)
	if err != nil {
		log.Printf("Failed to load config: %v", err)
		os.Exit(1)
	}

	db, err := database.NewPostgresDB(cfg.Database.PostgresConnectionString())
	if err != nil {
		log.Printf("Failed to connect to database: %v", err)
		os.Exit(1)
	}

	if err := database.MigrateDB(db); err != nil {
		log.Printf("Failed to migrate database: %v", err)
		os.Exit(1)
	}

	redisClient, err := database.NewUniversalRedisClient(cfg.Redis)
	if err != nil {
		log.Printf("Failed to connect to Redis: %v", err)
		os.Exit(1)
	}

	// Repositories.
	userRepo := pgRepo.NewUserRepo(db)
	quizRepo := pgRepo.NewQuizRepo(db)
	questionRepo := pgRepo.NewQuestionRepo(db)
	answerRepo := pgRepo.NewUserAnswerRepo(db)
	completionRepo := pgRepo.NewCompletionRepo(db)
	activityRepo := pgRepo.NewActivityRepo(db)

	cacheRepo, err := redisRepo.NewCacheRepo(redisClient)
	if err != nil {
		log.Printf("Failed to create cache repository: %v", err)
		os.Exit(1)
	}

	// Auth plumbing.
	jwtService, err := auth.NewJWTService(cfg.JWT.Secret, cfg.JWT.ExpirationHrs)
	if err != nil {
		log.Printf("Failed to create JWT service: %v", err)
		os.Exit(1)
	}

	// Notification hub for owner pushes.
	hub := ws.NewHub()

	// Services.
	activityService := service.NewActivityService(activityRepo, completionRepo, db)
	authService, err := service.NewAuthService(userRepo, jwtService, activityService, db)
	if err != nil {
		log.Printf("Failed to create auth service: %v", err)
		os.Exit(1)
	}
	quizService := service.NewQuizService(quizRepo, questionRepo, completionRepo, db)
	playService := service.NewPlayService(quizRepo, questionRepo, answerRepo, completionRepo, activityRepo, userRepo, cacheRepo, hub)

	// Handlers.
	authHandler := handler.NewAuthHandler(authService)
	quizHandler := handler.NewQuizHandler(quizService)
	playHandler := handler.NewPlayHandler(playService)
	activityHandler := handler.NewActivityHandler(activityService)
	wsHandler := handler.NewWSHandler(hub)

	// Middleware.
	authMiddleware := middleware.NewAuthMiddleware(jwtService)
	rateLimiter := middleware.NewRateLimiter(redisClient)

	isProduction := os.Getenv("GIN_MODE") == "release"
	if isProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.Default()

	// Trusted proxies: in production do not trust proxy headers at all, in
	// development trust localhost so c.ClientIP() works behind a dev proxy.
	if isProduction {
		if err := router.SetTrustedProxies(nil); err != nil {
			log.Printf("Warning: failed to set trusted proxies: %v", err)
		}
	} else {
		if err := router.SetTrustedProxies([]string{"127.0.0.1", "::1"}); err != nil {
			log.Printf("Warning: failed to set trusted proxies: %v", err)
		}
	}

	router.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"http://localhost:5173", "http://localhost:3000", "http://localhost:8000"},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization"},
		ExposeHeaders:    []string{"Content-Length", "Content-Disposition"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	api := router.Group("/api")
	{
		authGroup := api.Group("/auth")
		authGroup.Use(rateLimiter.Limit(middleware.StrictAuthRateLimitConfig()))
		{
			authGroup.POST("/register", authHandler.Register)
			authGroup.POST("/login", authHandler.Login)
		}

		users := api.Group("/users")
		users.Use(authMiddleware.RequireAuth())
		{
			users.GET("/me", authHandler.Me)
			users.PUT("/me/password", authHandler.ChangePassword)
			users.DELETE("/me", authHandler.DeleteAccount)
		}

		quizzes := api.Group("/quizzes")
		quizzes.Use(authMiddleware.RequireAuth())
		quizzes.Use(rateLimiter.Limit(middleware.DefaultAuthRateLimitConfig()))
		{
			quizzes.GET("", quizHandler.ListPublic)
			quizzes.POST("", quizHandler.CreateQuiz)
			quizzes.GET("/mine", quizHandler.ListMine)

			byID := quizzes.Group("/:id")
			byID.Use(middleware.ExtractUintParam("id", "quizID"))
			{
				byID.POST("/code", quizHandler.GenerateJoinCode)
				byID.DELETE("", quizHandler.DeleteQuiz)
				byID.GET("/completions", quizHandler.ListCompletions)
				byID.GET("/completions/export", quizHandler.ExportCompletions)
			}
		}

		play := api.Group("/play")
		play.Use(authMiddleware.RequireAuth())
		play.Use(rateLimiter.Limit(middleware.DefaultAuthRateLimitConfig()))
		{
			play.POST("/join", playHandler.Join)

			playQuiz := play.Group("/quizzes/:id")
			playQuiz.Use(middleware.ExtractUintParam("id", "quizID"))
			{
				playQuiz.GET("", playHandler.GetPlayQuiz)
				playQuiz.POST("/answers", playHandler.SubmitAnswer)
				playQuiz.POST("/complete", playHandler.Complete)
				playQuiz.GET("/results", playHandler.Results)
			}
		}

		activity := api.Group("/activity")
		activity.Use(authMiddleware.RequireAuth())
		{
			activity.GET("", activityHandler.Feed)
			activity.DELETE("", activityHandler.Clear)
		}
	}

	router.GET("/ws", authMiddleware.RequireAuth(), wsHandler.Connect)

	// Timeouts guard against slow client attacks.
	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
	}

	go func() {
		log.Printf("Starting server on port %s", cfg.Server.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Printf("Failed to start server: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("Server forced to shutdown: %v", err)
		os.Exit(1)
	}

	if err := redisClient.Close(); err != nil {
		log.Printf("Error closing Redis client: %v", err)
	}

	log.Println("Server exited properly")
}
