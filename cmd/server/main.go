package main

import (
	"log"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/125mkl54l7m/flaskblog/internal/auth"
	"github.com/125mkl54l7m/flaskblog/internal/cache"
	"github.com/125mkl54l7m/flaskblog/internal/config"
	"github.com/125mkl54l7m/flaskblog/internal/db"
	"github.com/125mkl54l7m/flaskblog/internal/handler"
	"github.com/125mkl54l7m/flaskblog/internal/model"
	"github.com/125mkl54l7m/flaskblog/internal/render"
	"github.com/125mkl54l7m/flaskblog/internal/repository"
	"github.com/125mkl54l7m/flaskblog/internal/router"
	"github.com/125mkl54l7m/flaskblog/internal/service"
)

func main() {
	cfg := config.Load()

	gormDB, err := db.Open(cfg)
	if err != nil {
		log.Fatalf("database init: %v", err)
	}

	if err := gormDB.AutoMigrate(
		&model.User{},
		&model.BlogPost{},
		&model.Comment{},
	); err != nil {
		log.Fatalf("auto-migrate: %v", err)
	}

	cacheClient := cache.New(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)

	// Repositories
	userRepo := repository.NewUserRepository(gormDB)
	postRepo := repository.NewPostRepository(gormDB)
	commentRepo := repository.NewCommentRepository(gormDB)

	// Sessions
	sessions := auth.NewSessionService(cfg.SessionSecret)

	// Services
	authService := service.NewAuthService(userRepo)
	postService := service.NewPostService(postRepo, cacheClient)
	commentService := service.NewCommentService(commentRepo, postRepo)

	// Handlers
	authHandler := handler.NewAuthHandler(authService, sessions)
	postHandler := handler.NewPostHandler(postService, commentService)
	pageHandler := handler.NewPageHandler()

	e := echo.New()

	renderer, err := render.New(cfg.TemplateDir)
	if err != nil {
		log.Fatalf("templates: %v", err)
	}
	e.Renderer = renderer

	router.Register(e, sessions, authHandler, postHandler, pageHandler)

	addr := ":" + cfg.ServerPort
	if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
		log.Fatalf("server start: %v", err)
	}
}
