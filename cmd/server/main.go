package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/joho/godotenv"

	"github.com/teddy12-design/my-blog/internal/config"
	"github.com/teddy12-design/my-blog/internal/database"
	"github.com/teddy12-design/my-blog/internal/handlers"
	"github.com/teddy12-design/my-blog/internal/logging"
	"github.com/teddy12-design/my-blog/internal/middleware"
	"github.com/teddy12-design/my-blog/internal/routes"
	"github.com/teddy12-design/my-blog/internal/services"
	"github.com/teddy12-design/my-blog/internal/store"
)

func main() {
	// Load env
	envErr := godotenv.Load()
	cfg := config.Load()

	logger, err := logging.New(cfg.LogLevel, cfg.LogPath)
	if err != nil {
		panic(err)
	}
	defer logger.Sync()
	log := logger.Sugar()

	if envErr != nil {
		log.Info("No .env file found")
	}

	// A missing signing secret means sessions cannot be issued or verified
	// at all, so refuse to start.
	if cfg.JWTSecret == "" {
		log.Fatal("JWT_SECRET is not set; refusing to start")
	}

	// Connect to MongoDB
	log.Info("Connecting to MongoDB...")
	client, db, err := database.Connect(cfg.MongoURI)
	if err != nil {
		log.Fatalw("Failed to connect to MongoDB", "error", err)
	}
	defer database.Disconnect(client)

	userStore := store.NewMongoUserStore(db)
	postStore := store.NewMongoPostStore(db)

	// Ensure the unique username index before serving registrations.
	indexCtx, indexCancel := context.WithTimeout(context.Background(), 10*time.Second)
	if err := userStore.EnsureIndexes(indexCtx); err != nil {
		indexCancel()
		log.Fatalw("Failed to ensure MongoDB indexes", "error", err)
	}
	indexCancel()
	log.Info("Connected to MongoDB, indexes ensured")

	// Optional Redis for the dashboard post list cache
	var cache services.ListCache
	if cfg.RedisURI != "" {
		redisClient, err := database.ConnectRedis(cfg.RedisURI)
		if err != nil {
			log.Warnw("Failed to connect to Redis; post list cache disabled", "error", err)
		} else {
			defer redisClient.Close()
			cache = services.NewPostListCache(redisClient)
			log.Info("Connected to Redis, post list cache enabled")
		}
	}

	// Optional Cloudinary; without it posts can still be managed, just not
	// with image attachments.
	var uploader services.Uploader
	if cfg.CloudinaryName != "" && cfg.CloudinaryAPIKey != "" && cfg.CloudinaryAPISecret != "" {
		cld, err := services.NewCloudinaryService(cfg.CloudinaryName, cfg.CloudinaryAPIKey, cfg.CloudinaryAPISecret)
		if err != nil {
			log.Fatalw("Failed to initialize Cloudinary", "error", err)
		}
		uploader = cld
		log.Info("Cloudinary service initialized")
	} else {
		log.Warn("Cloudinary credentials not found; image uploads will not be available")
	}

	authService := services.NewAuthService(userStore, []byte(cfg.JWTSecret), cfg.TokenTTL, log)
	postService := services.NewPostService(postStore, uploader, cache, log)
	adminHandler := handlers.NewAdminHandler(authService, postService, cfg.IsProduction(), log)

	r := chi.NewRouter()
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-Requested-With"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("OK"))
	})

	routes.SetupRoutes(r, adminHandler, middleware.RequireAuth(authService, log))

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: r,
	}

	go func() {
		log.Infof("Blog admin backend running on :%s", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalw("Failed to start server", "error", err)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	log.Info("Shutting down...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Errorw("Graceful shutdown failed", "error", err)
	}
}
