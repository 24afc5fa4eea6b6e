package main

import (
	"context"
	"log"

	"gorm.io/gorm"

	"pressroom/internal/auth"
	"pressroom/internal/config"
	"pressroom/internal/db"
	"pressroom/internal/model"
	"pressroom/internal/repository"
)

// seedUser is a development account created by the seed script.
type seedUser struct {
	name     string
	email    string
	password string
	role     model.Role
}

var seedUsers = []seedUser{
	{name: "Admin", email: "admin@example.com", password: "Admin123", role: model.RoleAdmin},
	{name: "Eddie Editor", email: "editor@example.com", password: "Editor123", role: model.RoleEditor},
	{name: "Vera Viewer", email: "viewer@example.com", password: "Viewer123", role: model.RoleViewer},
}

func main() {
	log.Println("Starting seed script...")

	cfg := config.Load()

	gormDB, err := db.NewMySQL(cfg.MySQLDSN)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	log.Println("Connected to database")

	if err := gormDB.AutoMigrate(&model.User{}, &model.Article{}); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}
	log.Println("Database migrations completed")

	ctx := context.Background()
	userRepo := repository.NewUserRepository(gormDB)
	articleRepo := repository.NewArticleRepository(gormDB)

	var editorID uint
	for _, su := range seedUsers {
		existing, err := userRepo.FindByEmail(ctx, su.email)
		if err == nil {
			log.Printf("User %s already exists, skipping", su.email)
			if su.role == model.RoleEditor {
				editorID = existing.ID
			}
			continue
		}
		if err != gorm.ErrRecordNotFound {
			log.Fatalf("Failed to check user %s: %v", su.email, err)
		}

		hash, err := auth.HashPassword(su.password)
		if err != nil {
			log.Fatalf("Failed to hash password: %v", err)
		}

		user := &model.User{
			Name:         su.name,
			Email:        su.email,
			PasswordHash: hash,
			Role:         su.role,
		}
		if err := userRepo.Create(ctx, user); err != nil {
			log.Fatalf("Failed to create user %s: %v", su.email, err)
		}
		log.Printf("Created %s user %s", su.role, su.email)

		if su.role == model.RoleEditor {
			editorID = user.ID
		}
	}

	articles := []model.Article{
		{
			Title:    "Welcome to Pressroom",
			Content:  "This published article is visible on the public listing without authentication.",
			Status:   model.StatusPublished,
			AuthorID: editorID,
		},
		{
			Title:    "Draft in progress",
			Content:  "Drafts are only visible to authenticated users with a viewing role.",
			Status:   model.StatusDraft,
			AuthorID: editorID,
		},
	}

	for _, a := range articles {
		article := a
		if err := articleRepo.Create(ctx, &article); err != nil {
			log.Printf("Failed to create article %q: %v", a.Title, err)
			continue
		}
		log.Printf("Created article %q (%s)", article.Title, article.Status)
	}

	log.Println("Seed completed")
}
