// Seed creates one demo user per role and a few starter categories.
// Intended for local development only.
package main

import (
	"context"
	"errors"
	"log"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"storeapi/internal/config"
	"storeapi/internal/db"
	apperrors "storeapi/internal/errors"
	"storeapi/internal/model"
	"storeapi/internal/repository"
)

type seedUser struct {
	username string
	password string
	role     string
}

func main() {
	log.Println("Starting seed script...")

	cfg := config.Load()

	gormDB, err := db.NewMySQL(cfg.MySQLDSN)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	if err := gormDB.AutoMigrate(&model.User{}, &model.Category{}); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	ctx := context.Background()
	users := repository.NewUserRepository(gormDB)

	demoUsers := []seedUser{
		{username: "admin", password: "admin123", role: "admin"},
		{username: "manager", password: "manager123", role: "manager"},
		{username: "employee", password: "employee123", role: "employee"},
	}

	for _, u := range demoUsers {
		hashed, err := bcrypt.GenerateFromPassword([]byte(u.password), bcrypt.DefaultCost)
		if err != nil {
			log.Fatalf("Failed to hash password for %s: %v", u.username, err)
		}
		err = users.Create(ctx, &model.User{
			Username:     u.username,
			PasswordHash: string(hashed),
			Role:         u.role,
		})
		if errors.Is(err, apperrors.ErrDuplicateUsername) {
			log.Printf("User %s already exists, skipping", u.username)
			continue
		}
		if err != nil {
			log.Fatalf("Failed to create user %s: %v", u.username, err)
		}
		log.Printf("Created user %s with role %s", u.username, u.role)
	}

	categories := repository.NewCategoryRepository(gormDB)
	for _, name := range []string{"beverages", "snacks", "household"} {
		_, err := categories.FindByName(ctx, name)
		if err == nil {
			log.Printf("Category %s already exists, skipping", name)
			continue
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			log.Fatalf("Failed to look up category %s: %v", name, err)
		}
		if err := categories.Create(ctx, &model.Category{Name: name}); err != nil {
			log.Fatalf("Failed to create category %s: %v", name, err)
		}
		log.Printf("Created category %s", name)
	}

	log.Println("Seed completed")
}
