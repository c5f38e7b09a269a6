package main

import (
	"context"
	"log"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"maaziride/internal/config"
	"maaziride/internal/db"
	"maaziride/internal/model"
	"maaziride/internal/repository"
)

type seedUser struct {
	Name     string
	Email    string
	Password string
	Role     model.Role
}

var seedUsers = []seedUser{
	{Name: "Platform Admin", Email: "admin@maaziride.local", Password: "admin-change-me", Role: model.RoleAdmin},
	{Name: "Demo Rider", Email: "rider@maaziride.local", Password: "rider-demo", Role: model.RoleRider},
	{Name: "Demo Driver", Email: "driver@maaziride.local", Password: "driver-demo", Role: model.RoleDriver},
}

func main() {
	log.Println("Starting seed script...")

	cfg := config.Load()

	gormDB, err := db.NewMySQL(cfg.MySQLDSN)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	log.Println("Connected to database")

	if err := gormDB.AutoMigrate(&model.User{}, &model.Vehicle{}, &model.Ride{}); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}
	log.Println("Database migrations completed")

	users := repository.NewUserRepository(gormDB)
	ctx := context.Background()

	created := 0
	for _, seed := range seedUsers {
		existing, err := users.FindByEmail(ctx, seed.Email)
		if err != nil && err != gorm.ErrRecordNotFound {
			log.Fatalf("Failed to check %s: %v", seed.Email, err)
		}
		if existing != nil {
			log.Printf("Skipping %s (already exists)", seed.Email)
			continue
		}

		hash, err := bcrypt.GenerateFromPassword([]byte(seed.Password), 10)
		if err != nil {
			log.Fatalf("Failed to hash password for %s: %v", seed.Email, err)
		}

		user := &model.User{
			Name:         seed.Name,
			Email:        seed.Email,
			PasswordHash: string(hash),
			Role:         seed.Role,
		}
		if err := users.Create(ctx, user); err != nil {
			log.Fatalf("Failed to create %s: %v", seed.Email, err)
		}
		log.Printf("Created %s (%s)", seed.Email, seed.Role)
		created++
	}

	log.Printf("Seed complete: %d users created", created)
}
