package main

import (
	"net/http"

	"github.com/gin-gonic/gin"
	_ "github.com/joho/godotenv/autoload"
	"go.uber.org/zap"

	"github.com/agendahub/scheduler/internal/config"
	dbpkg "github.com/agendahub/scheduler/internal/db"
	"github.com/agendahub/scheduler/internal/logger"
	"github.com/agendahub/scheduler/internal/middleware"
	"github.com/agendahub/scheduler/internal/payments"
	"github.com/agendahub/scheduler/internal/routes"
)

func main() {

	cfg := config.Load()

	log, err := logger.New(cfg.LogLevel, gin.Mode() != gin.ReleaseMode)
	if err != nil {
		panic(err)
	}
	defer log.Sync()

	db := dbpkg.NewDB(cfg)
	rdb := dbpkg.NewRedis(cfg)

	refunder, err := payments.NewMercadoPagoRefunder(cfg.MPAccessToken)
	if err != nil {
		log.Fatal("failed to configure payment gateway", zap.Error(err))
	}

	r := gin.Default()

	r.Use(middleware.CORSMiddleware())

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	routes.RegisterRoutes(r, db, rdb, log, refunder, cfg)

	log.Info("server starting", zap.String("addr", cfg.Addr()))
	if err := r.Run(cfg.Addr()); err != nil {
		log.Fatal("server failed", zap.Error(err))
	}
}
