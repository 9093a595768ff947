package main

import (
	"log"
	"os"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/dealerhub/portal-api/cart"
	"github.com/dealerhub/portal-api/catalog"
	"github.com/dealerhub/portal-api/favorites"
	"github.com/dealerhub/portal-api/models"
	"github.com/dealerhub/portal-api/notify"
	"github.com/dealerhub/portal-api/orders"
	"github.com/dealerhub/portal-api/routes"
)

func main() {
	log.Println("✅ Starting application...")

	// Load environment variables
	_ = godotenv.Load()

	// Init DB
	db := initDatabase()

	// Auto-migrate all tables
	if err := db.AutoMigrate(
		&models.User{},
		&models.Product{},
		&models.Vehicle{},
		&models.Order{},
		&models.OrderItem{},
		&models.OrderHistoryEntry{},
		&models.OrderNote{},
	); err != nil {
		log.Fatalf("❌ AutoMigrate failed: %v", err)
	}

	// Redis-backed client persistence for carts and favorites
	kv := cart.NewRedisKV(redis.NewClient(&redis.Options{
		Addr:     getEnv("REDIS_ADDR", "localhost:6379"),
		Password: os.Getenv("REDIS_PASSWORD"),
	}))

	catalogSvc := catalog.NewService(db)
	reconciler := cart.NewReconciler(catalogSvc)
	tracker := favorites.NewTracker(kv, catalogSvc)
	lifecycle := orders.NewLifecycle(db, buildNotifier())

	// Gin setup
	r := gin.Default()

	// CORS settings
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", "X-API-KEY", "X-Admin-ID", "X-Admin-Name"},
		ExposeHeaders:    []string{"Content-Length", "Content-Disposition"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	// Setup routes
	routes.SetupRoutes(r, routes.Deps{
		DB:         db,
		KV:         kv,
		Reconciler: reconciler,
		Lifecycle:  lifecycle,
		Favorites:  tracker,
	})

	// Start server
	port := getEnv("PORT", "8080")
	log.Printf("🚀 Server running on port %s...", port)
	if err := r.Run(":" + port); err != nil {
		log.Fatalf("❌ Server failed: %v", err)
	}
}

func initDatabase() *gorm.DB {
	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		log.Fatal("❌ DATABASE_URL is not set")
	}
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		log.Fatalf("❌ Failed to connect to database: %v", err)
	}
	return db
}

// buildNotifier picks SMTP when configured, otherwise logs notifications.
func buildNotifier() notify.Notifier {
	host := os.Getenv("SMTP_HOST")
	if host == "" {
		log.Println("⚠️ SMTP_HOST not set, notifications will be logged only")
		return notify.LogNotifier{}
	}
	return notify.NewEmailNotifier(
		host,
		getEnv("SMTP_PORT", "587"),
		os.Getenv("SMTP_USERNAME"),
		os.Getenv("SMTP_PASSWORD"),
		getEnv("SMTP_FROM", "noreply@dealerhub.example"),
	)
}

func getEnv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}
