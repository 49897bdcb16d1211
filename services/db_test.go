package services

import (
	"testing"

	"github.com/johndev38/LocationMatchmaker-sub000/models"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// newTestDB opens a fresh in-memory database per test so state never leaks
// between cases.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}

	err = db.AutoMigrate(
		&models.User{},
		&models.Property{},
		&models.RentalRequest{},
		&models.PropertyOffer{},
		&models.Reservation{},
		&models.Message{},
		&models.Notification{},
	)
	if err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}

	return db
}

func createTestUser(t *testing.T, db *gorm.DB, username string, isLandlord bool) models.User {
	t.Helper()

	user := models.User{
		Username:   username,
		Email:      username + "@example.com",
		IsLandlord: isLandlord,
	}
	if err := db.Create(&user).Error; err != nil {
		t.Fatalf("failed to create user %q: %v", username, err)
	}
	return user
}

func countNotifications(t *testing.T, db *gorm.DB, userID uint, notificationType string) int64 {
	t.Helper()

	var count int64
	err := db.Model(&models.Notification{}).
		Where("user_id = ? AND type = ?", userID, notificationType).
		Count(&count).Error
	if err != nil {
		t.Fatalf("failed to count notifications: %v", err)
	}
	return count
}
