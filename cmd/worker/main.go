package main

import (
	"context"
	"encoding/json"
	"os"
	"os/signal"
	"syscall"

	"dtr/internal/config"
	"dtr/internal/logger"
	"dtr/internal/metrics"
	"dtr/internal/queue"
	"dtr/internal/store"
)

// Worker consumes attendance audit events and writes structured audit lines.
func main() {
	cfg := config.Load()
	logger.Init(cfg.Log)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigCh
		logger.Info("shutdown signal received")
		cancel()
	}()

	redisClient := store.NewRedis(cfg.RedisAddr)

	var q queue.Queue
	if cfg.QueueBackend == "memory" {
		q = queue.NewInMemory(64)
	} else {
		q = queue.NewRedisQueue(redisClient.Client, "dtr:audit")
	}

	messages, err := q.Consume(ctx)
	if err != nil {
		logger.Error("queue consume init failed", "error", err)
		os.Exit(1)
	}

	logger.Info("worker started, waiting for audit events")
	for msg := range messages {
		if msg.Type != "clock_in" && msg.Type != "clock_out" {
			continue
		}

		var evt struct {
			Type     string `json:"type"`
			InternID string `json:"intern_id"`
			Day      string `json:"date"`
			At       string `json:"at"`
		}
		if err := json.Unmarshal(msg.Body, &evt); err != nil {
			logger.Warn("malformed audit event", "error", err)
			continue
		}

		metrics.AuditEvents.WithLabelValues(evt.Type).Inc()
		logger.Info("attendance audit", "type", evt.Type, "intern_id", evt.InternID, "date", evt.Day, "at", evt.At)
	}

	logger.Info("worker stopped")
}
