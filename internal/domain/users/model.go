package users

import (
	"time"
)

const (
	RoleBuyer   = "buyer"
	RoleCompany = "company"
	RoleAdmin   = "admin"

	StatusActive  = "ACTIVE"
	StatusBlocked = "BLOCKED"
)

type User struct {
	ID           uint `gorm:"primaryKey"`
	Name         string
	Email        string  `gorm:"not null;uniqueIndex:idx_users_email"`
	Password     *string `gorm:""`
	AuthProvider string  `gorm:"type:varchar(20);not null;default:'local'"`
	GoogleSub    *string `gorm:"uniqueIndex:idx_users_google_sub"`
	Role         string  `gorm:"type:varchar(20);not null;default:'buyer'"`
	Status       string  `gorm:"type:varchar(20);not null;default:'ACTIVE'"`
	IsVerified   bool

	// Companies buy seats for their employees; credential logins are derived
	// from the domain of ContactEmail (falls back to Email when empty).
	CompanyName  *string
	ContactEmail *string

	StripeCustomerID *string `gorm:"column:stripe_customer_id;uniqueIndex:idx_users_stripe_customer_id"`

	CreatedAt time.Time
	UpdatedAt time.Time
}

type VerificationToken struct {
	ID        uint `gorm:"primaryKey"`
	UserID    uint
	Token     string `gorm:"uniqueIndex"`
	CreatedAt time.Time
}
