package main

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/dominio-lash/lumiere-api/internal/config"
	dbpkg "github.com/dominio-lash/lumiere-api/internal/db"
	infradocstore "github.com/dominio-lash/lumiere-api/internal/infra/docstore"
	"github.com/dominio-lash/lumiere-api/internal/photostore"
	"github.com/dominio-lash/lumiere-api/internal/routes"
	"github.com/dominio-lash/lumiere-api/internal/scheduler"
	"github.com/dominio-lash/lumiere-api/internal/timezone"
)

func main() {

	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found")
	}

	cfg := config.Load()

	logger, err := zap.NewProduction()
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logger.Sync()

	opts, err := redis.ParseURL(cfg.RedisURL)
	if err != nil {
		log.Fatalf("invalid REDIS_URL: %v", err)
	}
	store := infradocstore.NewRedisStore(redis.NewClient(opts), logger)

	db := dbpkg.NewDB(cfg)

	var photos photostore.Storage
	if cfg.S3Bucket != "" {
		s3store, err := photostore.NewS3Storage(cfg)
		if err != nil {
			log.Fatalf("failed to init photo storage: %v", err)
		}
		photos = s3store
	}

	r := gin.Default()

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	fc := routes.RegisterRoutes(r, store, db, photos, cfg, logger)

	greeter := scheduler.NewBirthdayGreeter(cfg, store, fc, logger, timezone.Location(cfg.Timezone))
	cronJob := greeter.Start()
	defer cronJob.Stop()

	log.Printf("Server running on %s", cfg.Addr())
	if err := r.Run(cfg.Addr()); err != nil {
		log.Fatalf("failed to start server: %v", err)
	}
}
