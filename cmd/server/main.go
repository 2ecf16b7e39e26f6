package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"

	"github.com/mhoudali/interim_app/internal/config"
	"github.com/mhoudali/interim_app/internal/httpserver"
	"github.com/mhoudali/interim_app/internal/logging"
	authmw "github.com/mhoudali/interim_app/internal/middleware/auth"
	"github.com/mhoudali/interim_app/internal/mykafka"
	"github.com/mhoudali/interim_app/internal/repo"
	"github.com/mhoudali/interim_app/internal/service"
	"github.com/mhoudali/interim_app/internal/tokens"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatal(err)
	}

	logger := logging.New(cfg.LOG_LEVEL)

	db, err := config.InitDB(cfg)
	if err != nil {
		log.Fatalf("db init error: %v", err)
	}

	var producer *mykafka.Producer
	if cfg.KAFKA_ADDRESS != "" {
		producer = mykafka.NewProducer(cfg.KAFKA_ADDRESS)
	}

	rp := repo.New(db)
	tokenSvc := tokens.NewService([]byte(cfg.JWT_SECRET))

	deps := &httpserver.Deps{
		Auth: &httpserver.AuthHandler{
			Svc: &service.AuthService{Repo: rp, Tokens: tokenSvc, Producer: producer},
		},
		Users:     &httpserver.UserHandler{Svc: &service.UserService{Repo: rp}},
		Companies: &httpserver.CompanyHandler{Svc: &service.CompanyService{Repo: rp}},
		Jobs: &httpserver.JobHandler{
			Svc: &service.JobService{Repo: rp, Producer: producer},
		},
		Applications: &httpserver.ApplicationHandler{
			Svc: &service.ApplicationService{Repo: rp, Producer: producer},
		},
		MW: authmw.New(tokenSvc),
	}

	e := echo.New()
	e.Pre(echomw.RemoveTrailingSlash())
	e.Use(echomw.Recover(), echomw.RequestID())
	e.Use(func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			req := c.Request()
			l := logger.With("request_id", c.Response().Header().Get(echo.HeaderXRequestID))
			c.SetRequest(req.WithContext(logging.IntoContext(req.Context(), l)))
			return next(c)
		}
	})

	httpserver.Register(e, deps)

	srv := &http.Server{
		Addr:         ":" + cfg.PORT,
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

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Printf("server shutdown error: %v", err)
	}

	if sqlDB, err := db.DB(); err == nil {
		if err := sqlDB.Close(); err != nil {
			log.Printf("db close error: %v", err)
		}
	}

	if err := producer.Close(); err != nil {
		log.Printf("kafka close error: %v", err)
	}

	log.Println("shutdown complete")
}
