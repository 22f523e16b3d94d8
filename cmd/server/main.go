package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/robfig/cron/v3"

	"github.com/nkraev/pos-backend/internal/config"
	"github.com/nkraev/pos-backend/internal/db"
	"github.com/nkraev/pos-backend/internal/es"
	"github.com/nkraev/pos-backend/internal/httpserver"
	"github.com/nkraev/pos-backend/internal/logging"
	authmw "github.com/nkraev/pos-backend/internal/middleware/auth"
	loggingmw "github.com/nkraev/pos-backend/internal/middleware/logging"
	"github.com/nkraev/pos-backend/internal/mykafka"
	"github.com/nkraev/pos-backend/internal/repo"
	"github.com/nkraev/pos-backend/internal/service"
)

func main() {
	cfg := config.Load()
	config.MustNonEmpty(cfg.DatabaseURL, "DATABASE_URL")
	config.MustNonEmptyBytes(cfg.JWTSecret, "JWT_SECRET")

	logger := logging.New(cfg.LogLevel)

	ctx := context.Background()
	gormDB, err := db.Open(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("db init error: %v", err)
	}
	if err := db.Migrate(gormDB); err != nil {
		log.Fatalf("db migrate error: %v", err)
	}

	prod := mykafka.NewProducer(cfg.KafkaBrokers)

	r := repo.New(gormDB)
	authSvc := &service.AuthService{
		Repo:      r,
		JWTSecret: cfg.JWTSecret,
		AccessTTL: time.Duration(cfg.AccessTokenTTL) * time.Minute,
	}
	catalogSvc := &service.CatalogService{Repo: r}
	orderSvc := &service.OrderService{Repo: r}
	customerSvc := &service.CustomerService{Repo: r}
	reportSvc := &service.ReportService{Repo: r}

	deps := httpserver.Deps{
		DB:              gormDB,
		AuthHandler:     &httpserver.AuthHandler{Svc: authSvc},
		ItemHandler:     &httpserver.ItemHandler{Svc: catalogSvc, Producer: prod},
		OrderHandler:    &httpserver.OrderHandler{Svc: orderSvc, Producer: prod},
		CustomerHandler: &httpserver.CustomerHandler{Svc: customerSvc, Producer: prod},
		ReportHandler:   &httpserver.ReportHandler{Svc: reportSvc},
		AuthMW:          authmw.New(authSvc),
	}

	if cfg.ESURL != "" {
		esClient, err := es.NewClient(cfg)
		if err != nil {
			log.Printf("elasticsearch unavailable, search falls back to db: %v", err)
		} else {
			deps.CustomerHandler.ES = esClient
		}
	}

	e := echo.New()
	e.Pre(middleware.RemoveTrailingSlash())
	e.Use(middleware.Recover(), middleware.RequestID())
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins:     cfg.CORSOrigins,
		AllowMethods:     []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete},
		AllowCredentials: true,
	}))
	e.Use(loggingmw.RequestLogger(logger))

	httpserver.Register(e, &deps)

	digest := cron.New()
	if _, err := digest.AddJob("0 7 * * *", &service.DailyDigest{
		Reports:  reportSvc,
		Producer: prod,
		Log:      logger,
	}); err != nil {
		log.Fatalf("cron schedule error: %v", err)
	}
	digest.Start()

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.ServerPort),
		Handler:      e,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Printf("http server error: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("shutting down...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("server shutdown error: %v", err)
	}

	digest.Stop()

	if sqlDB, err := gormDB.DB(); err == nil {
		if err := sqlDB.Close(); err != nil {
			log.Printf("db close error: %v", err)
		}
	} else {
		log.Printf("db() error: %v", err)
	}

	if err := prod.Close(); err != nil {
		log.Printf("kafka close error: %v", err)
	}

	log.Println("shutdown complete")
}
