package main

import (
	"encoding/base64"
	"log"
	"os"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"gestirh.com/gestirh/anomalie"
	"gestirh.com/gestirh/core"
	"gestirh.com/gestirh/web/handlers/anomalies"
	"gestirh.com/gestirh/web/middlewares"
)

func main() {
	cfg, err := core.LoadConfig(os.Getenv("CONFIG_FILE"))
	if err != nil {
		log.Fatal(err)
	}

	logger := buildLogger(cfg.LogMode)
	defer logger.Sync()
	sugar := logger.Sugar()

	db, err := core.ConnectDB(cfg.DSN, cfg.MaxConnections)
	if err != nil {
		sugar.Fatalw("database connection failed", "error", err)
	}

	jwtSecret, err := base64.StdEncoding.DecodeString(cfg.JWTSecret)
	if err != nil {
		sugar.Fatalw("failed to decode JWT secret", "error", err)
	}

	var rdb *redis.Client
	if cfg.Redis.Addr != "" {
		rdb = redis.NewClient(&redis.Options{Addr: cfg.Redis.Addr})
	}
	cache := anomalie.NewCacheStats(rdb, time.Duration(cfg.Redis.StatsTTLSec)*time.Second, sugar)

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middlewares.RequestLogger(sugar))
	r.Use(cors.Default())

	r.GET("/ping", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"message": "pong",
		})
	})

	protected := r.Group("/api/rh/v1.0")
	protected.Use(middlewares.Authentication(jwtSecret))
	{
		anomalies.Register(protected, &anomalies.Endpoint{
			DB:          db,
			Classifieur: anomalie.NewClassifieur(cfg.TauxHoraireSup),
			Cache:       cache,
			Log:         sugar,
		})
	}

	sugar.Infow("listening", "addr", cfg.Addr)
	if err := r.Run(cfg.Addr); err != nil {
		sugar.Fatalw("server stopped", "error", err)
	}
}

func buildLogger(mode string) *zap.Logger {
	var logger *zap.Logger
	var err error
	switch mode {
	case "prod", "production":
		logger, err = zap.NewProduction()
	default:
		logger, err = zap.NewDevelopment()
	}
	if err != nil {
		log.Fatal(err)
	}
	return logger
}
