package main

import (
	"database/sql"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/hibiken/asynq"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
	config "github.com/marafield/brandops/configs"
	"github.com/marafield/brandops/internal/api/handlers"
	"github.com/marafield/brandops/internal/api/middleware"
	job "github.com/marafield/brandops/internal/jobs"
	"github.com/marafield/brandops/internal/queue"
	"github.com/marafield/brandops/internal/repository"
	"github.com/marafield/brandops/internal/service"
	"github.com/robfig/cron"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: Failed to load environment variables", err)
	}

	cfg := config.LoadConfig()

	db, err := sql.Open("postgres", cfg.PostgresURI)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer closeDB(db)

	if err := db.Ping(); err != nil {
		log.Fatalf("Database is unreachable: %v", err)
	}

	redisConn := asynq.RedisClientOpt{Addr: cfg.RedisURI}
	client := asynq.NewClient(redisConn)
	defer client.Close()

	app := fiber.New(fiber.Config{
		ReadTimeout:  10 * time.Minute,
		WriteTimeout: 10 * time.Minute,
		BodyLimit:    100 * 1024 * 1024, // 100 MB
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			log.Printf("Error: %v", err)
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
		},
	})

	app.Use(logger.New())
	app.Use(cors.New(cors.Config{
		AllowOriginsFunc: func(origin string) bool {
			return true
		},
		AllowMethods:     "GET,POST,PUT,DELETE,OPTIONS",
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization",
		AllowCredentials: true,
		MaxAge:           3600,
	}))

	userRepo := repository.NewUserRepository(db)
	brandRepo := repository.NewBrandRepository(db)
	postRepo := repository.NewPostRepository(db)
	socialAccountRepo := repository.NewSocialAccountRepository(db)
	postMediaRepo := repository.NewPostMediaRepository(db)
	mediaAssetRepo := repository.NewMediaAssetRepository(db)
	postingHistoryRepo := repository.NewPostingHistoryRepository(db)
	productRepo := repository.NewProductRepository(db)
	apiKeyRepo := repository.NewApiKeyRepository(db)

	authService := service.NewAuthService(*cfg, userRepo)
	userService := service.NewUserService(userRepo)
	apiKeyService := service.NewApiKeyService(apiKeyRepo)
	storageService := service.NewStorageService(*cfg)
	brandService := service.NewBrandService(brandRepo, socialAccountRepo)
	metaService := service.NewMetaService(*cfg, socialAccountRepo)
	facebookService := service.NewFacebookService(*cfg)
	instagramService := service.NewInstagramService(*cfg, storageService)
	publisherService := service.NewPublisherService(facebookService, instagramService)
	postService := service.NewPostService(db, postRepo, mediaAssetRepo, postMediaRepo, brandRepo)
	mediaService := service.NewMediaService(mediaAssetRepo, storageService)
	openAIService := service.NewOpenAIService(*cfg, storageService, mediaAssetRepo)
	printifyService := service.NewPrintifyService(*cfg, productRepo)
	shopifyService := service.NewShopifyService(*cfg, productRepo)
	emailService := service.NewEmailService(*cfg)

	authMiddleware := middleware.NewAuthMiddleware(*cfg, apiKeyService)

	auth := handlers.NewAuthHandler(*cfg, authService)
	app.Get("/login", auth.Login)
	app.Get("/login/callback", auth.LoginCallback)
	app.Get("/logout", auth.Logout)

	api := app.Group("/api")
	api.Use(authMiddleware.AuthMiddleware())

	user := handlers.NewUserHandler(userService)
	api.Get("/user/info", user.GetUserInfo)
	api.Post("/user/remove", user.RemoveUser)

	apiKeys := handlers.NewApiKeyHandler(apiKeyService)
	api.Post("/api_key/new", apiKeys.CreateApiKey)
	api.Get("/api_key/list", apiKeys.ListKeys)
	api.Post("/api_key/remove", apiKeys.RemoveAPIKey)

	brand := handlers.NewBrandHandler(brandService, metaService)
	api.Get("/brands", brand.ListBrands)
	api.Get("/brands/info", brand.BrandInfo)
	api.Get("/brands/connect/meta", brand.ConnectMeta)
	api.Get("/brands/connect/meta/callback", brand.MetaCallback)
	api.Post("/brands/accounts/active", brand.SetAccountActive)
	api.Post("/brands/accounts/remove", brand.DisconnectAccount)

	post := handlers.NewPostHandler(postService, client)
	api.Post("/posts/create", post.CreatePost)
	api.Get("/posts", post.ListPosts)
	api.Post("/posts/remove", post.RemovePost)

	media := handlers.NewMediaHandler(mediaService, brandService)
	api.Post("/media/upload", media.UploadMedia)
	api.Get("/media", media.ListMedia)
	api.Post("/media/remove", media.RemoveMedia)

	generate := handlers.NewGenerateHandler(openAIService, brandService)
	api.Post("/generate/caption", generate.GenerateCaption)
	api.Post("/generate/image", generate.GenerateImage)

	product := handlers.NewProductHandler(printifyService, shopifyService, brandService, productRepo)
	api.Post("/products/sync", product.SyncCatalog)
	api.Get("/products", product.ListProducts)
	api.Post("/products/publish", product.PublishProduct)

	email := handlers.NewEmailHandler(emailService)
	api.Post("/email/campaign", email.SendCampaign)

	// cron jobs
	sweepJob := job.NewScheduledPublishJob(postRepo, client)

	// queue
	queueW := queue.NewQueue(postRepo, brandRepo, socialAccountRepo, mediaAssetRepo, postMediaRepo, postingHistoryRepo, publisherService)

	c := cron.New()
	c.AddFunc("@every 00h01m00s", sweepJob.SweepDuePosts)
	c.Start()

	go func() {
		server := asynq.NewServer(redisConn, asynq.Config{
			Concurrency: 10,
		})

		mux := asynq.NewServeMux()
		mux.HandleFunc(queue.TaskTypePublishPost, queueW.HandlePublishPostTask)

		log.Println("Starting the Asynq server...")
		if err := server.Run(mux); err != nil {
			log.Fatalf("Could not start Asynq server: %v", err)
		}
	}()

	go func() {
		if err := app.Listen(":3000"); err != nil {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()
	log.Println("Server is running on http://localhost:3000")

	gracefulShutdown(app, db)
}

func closeDB(db *sql.DB) {
	fmt.Fprint(os.Stdout, "Closing database connection... ")
	if err := db.Close(); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to close database: %v", err)
		return
	}
	fmt.Fprintln(os.Stdout, "Done")
}

func gracefulShutdown(app *fiber.App, db *sql.DB) {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)

	<-quit
	log.Println("Shutting down server...")

	if err := app.Shutdown(); err != nil {
		log.Fatalf("Failed to shut down server: %v", err)
	}

	closeDB(db)
	log.Println("Server shutdown complete.")
}
