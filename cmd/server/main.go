package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"time"

	"taproom/internal/audit"
	commithandler "taproom/internal/commit/handler"
	commitservice "taproom/internal/commit/service"
	"taproom/internal/logstore"
	"taproom/internal/platform/config"
	"taproom/internal/platform/httpserver"
	"taproom/internal/platform/logger"
	"taproom/internal/platform/metrics"
	platformredis "taproom/internal/platform/redis"
	"taproom/internal/ratelimit"
	httptransport "taproom/internal/transport/http"
)

// main wires high-level dependencies, exposes the HTTP router, and keeps the
// server lifecycle small. Business logic lives in internal services packages.
func main() {
	cfg, err := config.Load()
	if err != nil {
		os.Stderr.WriteString("config: " + err.Error() + "\n")
		os.Exit(1)
	}
	log := logger.New(cfg.LogLevel)
	m := metrics.New()

	remote := logstore.NewGitHub(cfg.GitHub, log)
	reader := logstore.NewFallback(remote, logstore.NewLocal(cfg.LocalLogPath), log, m)

	var publisher audit.Publisher = audit.Nop{}
	if len(cfg.Kafka.Brokers) > 0 {
		kafka, err := audit.NewKafka(cfg.Kafka.Brokers, cfg.Kafka.AuditTopic, log)
		if err != nil {
			log.Error("audit publisher init failed", "error", err)
			os.Exit(1)
		}
		publisher = kafka
	}
	defer publisher.Close()

	redisClient, err := platformredis.New(cfg.Redis)
	if err != nil {
		log.Error("redis init failed", "error", err)
		os.Exit(1)
	}
	var limiter *ratelimit.Limiter
	if redisClient != nil {
		defer redisClient.Close()
		limiter = ratelimit.New(redisClient.Client, cfg.ApproveRateLimit, cfg.ApproveRateWindow)
	}

	commits := commitservice.New(remote, reader, cfg.AdminSecret, log, m, publisher)
	handler := commithandler.New(commits, limiter, log, m)
	router := httptransport.NewRouter(handler)

	srv := httpserver.New(cfg.Addr, router)

	log.Info("starting taproom", "addr", cfg.Addr)

	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt)
	<-quit

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Error("graceful shutdown failed", "error", err)
		os.Exit(1)
	}
}
