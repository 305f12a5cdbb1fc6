// Command seed creates (or promotes) an administrator account.
//
//	go run ./cmd/seed -email admin@example.com -password secret123
package main

import (
	"errors"
	"flag"
	"log"
	"strings"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/wheelsup-garage/vehicle-care-api/internal/config"
	dbpkg "github.com/wheelsup-garage/vehicle-care-api/internal/db"
	"github.com/wheelsup-garage/vehicle-care-api/internal/models"
)

func main() {
	var (
		email    = flag.String("email", "admin123@gmail.com", "admin email")
		password = flag.String("password", "admin123", "admin password (used only when creating)")
		name     = flag.String("name", "Admin User", "admin display name")
	)
	flag.Parse()

	cfg := config.Load()

	gdb, err := gorm.Open(postgres.Open(cfg.DBUrl), &gorm.Config{TranslateError: true})
	if err != nil {
		log.Fatalf("failed to connect database: %v", err)
	}
	if err := dbpkg.Migrate(gdb); err != nil {
		log.Fatalf("failed to migrate: %v", err)
	}

	normalized := strings.ToLower(strings.TrimSpace(*email))

	var user models.User
	err = gdb.Where("email = ?", normalized).First(&user).Error
	switch {
	case err == nil:
		user.IsAdmin = true
		if err := gdb.Save(&user).Error; err != nil {
			log.Fatalf("failed to promote user: %v", err)
		}
		log.Printf("Existing user promoted to admin: %s", normalized)

	case errors.Is(err, gorm.ErrRecordNotFound):
		hashed, hashErr := bcrypt.GenerateFromPassword([]byte(*password), bcrypt.DefaultCost)
		if hashErr != nil {
			log.Fatalf("failed to hash password: %v", hashErr)
		}
		user = models.User{
			Name:         *name,
			Email:        normalized,
			PasswordHash: string(hashed),
			PhoneNumber:  "9999999999",
			IsAdmin:      true,
			Vehicles:     models.JSONRaw("[]"),
		}
		if err := gdb.Create(&user).Error; err != nil {
			log.Fatalf("failed to create admin: %v", err)
		}
		log.Printf("Admin user created: %s", normalized)

	default:
		log.Fatalf("lookup failed: %v", err)
	}
}
