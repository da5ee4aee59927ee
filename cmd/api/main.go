package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"dtr/internal/auth"
	"dtr/internal/config"
	"dtr/internal/dtr"
	"dtr/internal/handler"
	"dtr/internal/httpmiddleware"
	"dtr/internal/logger"
	"dtr/internal/queue"
	"dtr/internal/store"
	"dtr/internal/user"
)

func main() {
	cfg := config.Load()
	logger.Init(cfg.Log)

	if cfg.Env == "production" || cfg.Env == "prod" {
		gin.SetMode(gin.ReleaseMode)
	}

	if err := runHTTP(cfg); err != nil {
		logger.Error("http server failed", "error", err)
		os.Exit(1)
	}
}

func runHTTP(cfg config.App) error {
	db, err := store.NewDB(cfg.DatabaseURL)
	if err != nil {
		logger.Warn("db not reachable", "error", err)
	}
	defer func() {
		if db != nil {
			_ = db.Close()
		}
	}()

	redisClient := store.NewRedis(cfg.RedisAddr)

	var q queue.Queue
	if cfg.QueueBackend == "memory" {
		q = queue.NewInMemory(64)
	} else {
		q = queue.NewRedisQueue(redisClient.Client, "dtr:audit")
	}

	userRepo := user.NewPostgresRepository(db.Client)
	dtrRepo := dtr.NewPostgresRepository(db.Client)
	dtrSvc := dtr.NewService(dtrRepo)
	userSvc := user.NewService(userRepo, dtrRepo, user.TokenConfig{
		Issuer:     cfg.JWTIssuer,
		SigningKey: cfg.JWTSigningKey,
		TTL:        cfg.TokenTTL,
	}, cfg.BcryptCost)

	h := handler.New(userSvc, dtrSvc, q)

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(gin.LoggerWithConfig(gin.LoggerConfig{
		SkipPaths: []string{"/healthz", "/metrics"},
	}))

	corsCfg := cors.DefaultConfig()
	corsCfg.AllowAllOrigins = true
	corsCfg.AllowHeaders = append(corsCfg.AllowHeaders, "Authorization")
	corsCfg.AddAllowMethods("PATCH")
	r.Use(cors.New(corsCfg))

	r.Use(securityHeaders())
	r.Use(httpmiddleware.NewSimpleTokenBucket(cfg.RateLimitPerMin, cfg.RateLimitPerMin).GinMiddleware())

	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	r.GET("/healthz", func(c *gin.Context) {
		redisHealthy := redisClient.Healthy(c.Request.Context())
		dbHealthy := db != nil && db.Client.PingContext(c.Request.Context()) == nil
		status := http.StatusOK
		if !redisHealthy || !dbHealthy {
			status = http.StatusServiceUnavailable
		}
		c.JSON(status, gin.H{"status": "ok", "redis": redisHealthy, "db": dbHealthy})
	})

	r.POST("/register", h.Register)
	r.POST("/login", h.Login)

	bearer := r.Group("/", auth.Bearer(cfg.JWTSigningKey, cfg.JWTIssuer))
	bearer.GET("/user", h.Profile)
	bearer.POST("/dtr/clock_in", h.ClockIn)
	bearer.GET("/dtr/check_clock_in&out", h.CheckToday)
	bearer.POST("/dtr/clock_out", h.ClockOut)
	bearer.GET("/dtr/record", h.History)

	admin := r.Group("/interns", auth.Bearer(cfg.JWTSigningKey, cfg.JWTIssuer), auth.RequireRole(user.RoleAdmin))
	admin.GET("", h.ListInterns)
	admin.GET("/active_today", h.ListActiveToday)
	admin.PATCH("/update_approval", h.UpdateApproval)

	srv := &http.Server{
		Addr:         ":" + cfg.HTTPPort,
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info("starting server", "port", cfg.HTTPPort)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("shutting down server")

	// Give outstanding requests 10 seconds to complete
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Warn("server forced shutdown", "error", err)
	}

	logger.Info("server exited")
	return nil
}

// Security headers middleware
func securityHeaders() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("X-Content-Type-Options", "nosniff")
		c.Header("X-Frame-Options", "DENY")
		c.Header("X-XSS-Protection", "1; mode=block")
		c.Header("Referrer-Policy", "strict-origin-when-cross-origin")

		// Only add HSTS in production
		if gin.Mode() == gin.ReleaseMode {
			c.Header("Strict-Transport-Security", "max-age=31536000; includeSubDomains")
		}

		c.Next()
	}
}
