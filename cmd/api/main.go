package main

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	amqp "github.com/rabbitmq/amqp091-go"
	"go.uber.org/zap"

	"github.com/quickcourt/quickcourt-api/internal/cache"
	"github.com/quickcourt/quickcourt-api/internal/config"
	dbpkg "github.com/quickcourt/quickcourt-api/internal/db"
	infraRepo "github.com/quickcourt/quickcourt-api/internal/infra/repository"
	"github.com/quickcourt/quickcourt-api/internal/logger"
	"github.com/quickcourt/quickcourt-api/internal/queue"
	"github.com/quickcourt/quickcourt-api/internal/routes"
	"github.com/quickcourt/quickcourt-api/internal/scheduler"
)

func main() {

	cfg := config.Load()

	log := logger.New(cfg.Env)
	defer func() { _ = log.Sync() }()

	db := dbpkg.NewDB(cfg)
	rc := cache.NewRedisCache(cfg.RedisAddr)

	// The API stays up without the broker; notifications just stop
	// flowing until it comes back.
	amqpConn, err := amqp.Dial(cfg.AMQPUrl)
	if err != nil {
		log.Warn("amqp dial failed, notifications disabled", zap.Error(err))
		amqpConn = nil
	}
	notify := queue.NewPublisher(amqpConn, log)

	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.Default()

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	routes.RegisterRoutes(r, db, cfg, rc, notify, log)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	extender := scheduler.NewSlotExtender(
		infraRepo.NewCourtGormRepository(db),
		cfg.Timezone,
		log,
	)
	go extender.Start(ctx)

	go queue.StartConsumer(cfg.AMQPUrl, log, nil)

	log.Info("server starting", zap.String("addr", cfg.Addr()), zap.String("env", cfg.Env))
	if err := r.Run(cfg.Addr()); err != nil {
		log.Fatal("failed to start server", zap.Error(err))
	}
}
