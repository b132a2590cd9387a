package main

import (
	"context"
	"log"

	"gorm.io/gorm"

	"userdir/internal/config"
	"userdir/internal/db"
	"userdir/internal/model"
	"userdir/internal/repository"
)

func main() {
	log.Println("Starting seed script...")

	// Load configuration
	cfg := config.Load()

	// Connect to database
	gormDB, err := db.NewMySQL(cfg.MySQLDSN)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	log.Println("Connected to database")

	// Run migrations to ensure schema is up to date
	if err := gormDB.AutoMigrate(&model.User{}, &model.Role{}); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}
	log.Println("Database migrations completed")

	userRepo := repository.NewUserRepository(gormDB)
	ctx := context.Background()

	log.Println("Seeding users into database...")
	created, skipped, err := seedUsers(ctx, userRepo, model.SeedUsers())
	if err != nil {
		log.Fatalf("Failed to seed users: %v", err)
	}

	log.Printf("Seed completed successfully!")
	log.Printf("  - New users created: %d", created)
	log.Printf("  - Existing users skipped: %d", skipped)
}

// seedUsers inserts users that are not present yet, matching by email.
func seedUsers(ctx context.Context, repo repository.UserRepository, users []model.User) (created, skipped int, err error) {
	for i := range users {
		_, findErr := repo.FindByEmail(ctx, users[i].Email)
		if findErr == nil {
			skipped++
			continue
		}
		if findErr != gorm.ErrRecordNotFound {
			return created, skipped, findErr
		}
		if createErr := repo.Create(ctx, &users[i]); createErr != nil {
			return created, skipped, createErr
		}
		created++
	}
	return created, skipped, nil
}
