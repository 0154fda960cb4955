package main

import (
	"context"
	"log"
	"time"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"caltrack/internal/authz"
	"caltrack/internal/config"
	"caltrack/internal/db"
	"caltrack/internal/model"
	"caltrack/internal/repository"
)

type seedUser struct {
	name     string
	email    string
	password string
	role     string
}

var seedUsers = []seedUser{
	{name: "admin", email: "admin@example.com", password: "admin1234", role: authz.RoleAdmin},
	{name: "manager", email: "manager@example.com", password: "manager1234", role: authz.RoleManager},
	{name: "demo", email: "demo@example.com", password: "demo1234", role: authz.RoleRegular},
}

func main() {
	log.Println("Starting seed script...")

	cfg := config.Load()

	gormDB, err := db.NewMySQL(cfg.MySQLDSN)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	log.Println("Connected to database")

	if err := gormDB.AutoMigrate(&model.User{}, &model.Entry{}); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}
	log.Println("Database migrations completed")

	ctx := context.Background()
	userRepo := repository.NewUserRepository(gormDB)
	entryRepo := repository.NewEntryRepository(gormDB)

	var demo *model.User
	for _, su := range seedUsers {
		existing, err := userRepo.FindByEmail(ctx, su.email)
		if err == nil {
			log.Printf("User %s already exists, skipping", su.email)
			if su.role == authz.RoleRegular {
				demo = existing
			}
			continue
		}
		if err != gorm.ErrRecordNotFound {
			log.Fatalf("Failed to check user %s: %v", su.email, err)
		}

		hash, err := bcrypt.GenerateFromPassword([]byte(su.password), 10)
		if err != nil {
			log.Fatalf("Failed to hash password: %v", err)
		}
		user := &model.User{
			Name:         su.name,
			Email:        su.email,
			PasswordHash: string(hash),
			Role:         su.role,
		}
		if err := userRepo.Create(ctx, user); err != nil {
			log.Fatalf("Failed to create user %s: %v", su.email, err)
		}
		log.Printf("Created %s user %s", su.role, su.email)
		if su.role == authz.RoleRegular {
			demo = user
		}
	}

	if demo == nil {
		log.Println("Seed completed")
		return
	}

	// A few resolved demo entries for today, so listings and the budget flag
	// have something to show immediately.
	today := time.Now().Format("2006-01-02")
	calories := []int{350, 600, 420}
	texts := []string{"oatmeal with banana", "chicken sandwich", "pasta with tomato sauce"}
	for i, text := range texts {
		c := calories[i]
		entry := &model.Entry{
			Date:     today,
			Time:     time.Now().Format("15:04:05"),
			Text:     text,
			Calories: &c,
			UserID:   demo.ID,
		}
		if err := entryRepo.Create(ctx, entry); err != nil {
			log.Fatalf("Failed to create entry %q: %v", text, err)
		}
	}
	log.Printf("Created %d demo entries for %s", len(texts), demo.Email)
	log.Println("Seed completed")
}
