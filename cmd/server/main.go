package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"idolagency/internal/config"
	"idolagency/internal/handler"
	"idolagency/internal/infrastructure/cache"
	"idolagency/internal/infrastructure/database"
	"idolagency/internal/infrastructure/mq"
	"idolagency/internal/job"
	"idolagency/internal/model"
	"idolagency/pkg/idgen"

	"github.com/sirupsen/logrus"
)

func main() {
	cfg := config.LoadConfig("config/config.yaml")

	logrus.SetFormatter(&logrus.JSONFormatter{})

	idgen.Init(1)

	db := database.InitMySQL(&cfg.MySQL)
	redisClient := cache.InitRedis(&cfg.Redis)

	if err := mq.InitKafka(); err != nil {
		logrus.WithError(err).Fatal("failed to init kafka")
	}
	defer mq.CloseKafka()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	outboxSender := job.NewOutboxSender(db, cfg)
	go outboxSender.Start(ctx)

	dice := model.NewDice(time.Now().UnixNano())
	router := handler.SetupRouter(db, redisClient, cfg, dice)

	server := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.Server.Port),
		Handler: router,
	}

	go func() {
		logrus.WithField("port", cfg.Server.Port).Info("server listening")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logrus.WithError(err).Fatal("server failed")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logrus.Info("shutting down")

	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logrus.WithError(err).Warn("server shutdown error")
	}

	logrus.Info("server stopped")
}
