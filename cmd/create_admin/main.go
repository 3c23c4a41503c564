package main

import (
	"context"
	"errors"
	"log"
	"os"

	"adclick_webapp/internal/db"
	"adclick_webapp/internal/domain"
	"adclick_webapp/internal/repository"
	"adclick_webapp/internal/service"

	"golang.org/x/crypto/bcrypt"
)

// Seeds an active admin account and prints its id and a token. Add the id to
// ADMIN_USER_IDS afterwards.
func main() {
	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		log.Fatal("DATABASE_URL not set")
	}

	username := os.Getenv("ADMIN_USERNAME")
	if username == "" {
		username = "admin"
	}
	password := os.Getenv("ADMIN_PASSWORD")
	if password == "" {
		log.Fatal("ADMIN_PASSWORD not set")
	}

	pool := db.Connect(dsn)
	defer pool.Close()

	repo := repository.NewUserRepository(pool)
	ctx := context.Background()

	u, err := repo.GetByUsername(ctx, username)
	if err != nil {
		if !errors.Is(err, repository.ErrUserNotFound) {
			log.Fatalf("lookup failed: %v", err)
		}
		hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
		if err != nil {
			log.Fatalf("hash password: %v", err)
		}
		u, err = repo.Create(ctx, username, "", hash)
		if err != nil {
			log.Fatalf("create admin failed: %v", err)
		}
		log.Printf("admin created id=%d", u.ID)
	} else {
		log.Printf("admin already exists id=%d", u.ID)
	}

	if err := repo.SetStatus(ctx, u.ID, domain.StatusActive); err != nil {
		log.Fatalf("activate admin: %v", err)
	}

	service.InitJWT()
	token, err := service.GenerateJWT(u.ID)
	if err != nil {
		log.Fatalf("failed to generate token: %v", err)
	}
	log.Printf("token: %s", token)
	log.Printf("add %d to ADMIN_USER_IDS", u.ID)
}
