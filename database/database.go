package database

import (
	"fmt"
	"log"

	"coursemarket-app/internal/domain/billing"
	"coursemarket-app/internal/domain/cart"
	"coursemarket-app/internal/domain/catalog"
	"coursemarket-app/internal/domain/checkout"
	"coursemarket-app/internal/domain/fulfillment"
	"coursemarket-app/internal/domain/outbox"
	"coursemarket-app/internal/domain/reviews"
	"coursemarket-app/internal/domain/users"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// Connect opens the database and migrates all domain models. The returned
// handle is owned by main and passed down to handlers and services.
func Connect(dsn string) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if err := db.AutoMigrate(
		// core
		&users.User{},
		&users.VerificationToken{},

		// catalog
		&catalog.Course{},
		&catalog.Product{},
		&catalog.ShippingOption{},

		// purchase flow
		&cart.Cart{},
		&cart.Item{},
		&checkout.Checkout{},
		&billing.Payment{},

		// fulfillment
		&fulfillment.Enrollment{},
		&fulfillment.CompanyPurchase{},
		&fulfillment.PurchaseItem{},
		&fulfillment.EmployeeCredential{},

		// misc
		&reviews.Review{},
		&outbox.EmailMessage{},
	); err != nil {
		return nil, fmt.Errorf("AutoMigrate error: %w", err)
	}

	log.Println("✅ Connected and migrated successfully")
	return db, nil
}

// Close releases the underlying connection pool.
func Close(db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
