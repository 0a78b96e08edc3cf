package models

import (
	"fmt"
	"os"

	"golang.org/x/crypto/bcrypt"

	console "brandbase/internal/utils/logger"

	"gorm.io/gorm"
)

var log = console.New("SEEDER")

// CreateAdminFromEnv bootstraps the first admin account. A no-op once any
// admin exists, so restarts are safe.
func CreateAdminFromEnv(db *gorm.DB) error {
	var count int64
	db.Model(&User{}).Where("role = ?", UserRoleAdmin).Count(&count)
	if count > 0 {
		return nil
	}

	email, ok := os.LookupEnv("ADMIN_EMAIL")
	if !ok {
		return fmt.Errorf("ADMIN_EMAIL not set")
	}

	password, ok := os.LookupEnv("ADMIN_PASSWORD")
	if !ok {
		return fmt.Errorf("ADMIN_PASSWORD not set")
	}

	name, ok := os.LookupEnv("ADMIN_NAME")
	if !ok {
		name = "Admin"
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash password: %v", err)
	}

	user := User{
		Name:     name,
		Email:    email,
		Role:     UserRoleAdmin,
		Tier:     TierEnterprise,
		Password: string(hashedPassword),
	}

	if err := db.Create(&user).Error; err != nil {
		return fmt.Errorf("failed to create admin user: %v", err)
	}

	log.Info("Created admin user %s", email)
	return nil
}
