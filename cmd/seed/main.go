package main

import (
	"context"
	"errors"
	"log"

	"github.com/125mkl54l7m/flaskblog/internal/config"
	"github.com/125mkl54l7m/flaskblog/internal/db"
	blogerrors "github.com/125mkl54l7m/flaskblog/internal/errors"
	"github.com/125mkl54l7m/flaskblog/internal/model"
	"github.com/125mkl54l7m/flaskblog/internal/repository"
	"github.com/125mkl54l7m/flaskblog/internal/service"
)

const (
	samplePostTitle    = "Welcome to the Blog"
	samplePostSubtitle = "The very first post"
	samplePostBody     = "This post was created by the seed command. Log in as the administrator to edit or delete it."
	samplePostImgURL   = "https://images.unsplash.com/photo-1499750310107-5fef28a66643"
)

func main() {
	log.Println("Starting seed script...")

	cfg := config.Load()

	gormDB, err := db.Open(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	log.Println("Connected to database")

	if err := gormDB.AutoMigrate(&model.User{}, &model.BlogPost{}, &model.Comment{}); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}
	log.Println("Database migrations completed")

	userRepo := repository.NewUserRepository(gormDB)
	postRepo := repository.NewPostRepository(gormDB)
	authService := service.NewAuthService(userRepo)
	postService := service.NewPostService(postRepo, nil)

	ctx := context.Background()

	// The first registered account gets the administrator role, so seeding on
	// an empty database makes the configured account the admin.
	admin, err := authService.Register(ctx, cfg.AdminName, cfg.AdminEmail, cfg.AdminPassword)
	switch {
	case err == nil:
		log.Printf("Created account %s (role %s)", admin.Email, admin.Role)
	case errors.Is(err, blogerrors.ErrEmailTaken):
		log.Printf("Account %s already exists, skipping", cfg.AdminEmail)
		if admin, err = userRepo.FindByEmail(ctx, cfg.AdminEmail); err != nil {
			log.Fatalf("Failed to load existing account: %v", err)
		}
	default:
		log.Fatalf("Failed to create admin account: %v", err)
	}

	if _, err := postService.Create(ctx, admin.ID, service.PostInput{
		Title:    samplePostTitle,
		Subtitle: samplePostSubtitle,
		Body:     samplePostBody,
		ImgURL:   samplePostImgURL,
	}); err != nil {
		if errors.Is(err, blogerrors.ErrTitleTaken) {
			log.Println("Sample post already exists, skipping")
		} else {
			log.Fatalf("Failed to create sample post: %v", err)
		}
	} else {
		log.Printf("Created sample post %q", samplePostTitle)
	}

	log.Println("Seed completed successfully!")
}
