package fulfillment

import "time"

// Enrollment grants one user access to one course. The unique index makes
// webhook redelivery a no-op instead of a double grant.
type Enrollment struct {
	ID       uint `gorm:"primaryKey"`
	UserID   uint `gorm:"not null;uniqueIndex:idx_enrollments_user_course"`
	CourseID uint `gorm:"not null;uniqueIndex:idx_enrollments_user_course"`

	CreatedAt time.Time
}

// CompanyPurchase is the purchase record for the company branch.
type CompanyPurchase struct {
	ID         uint `gorm:"primaryKey"`
	CompanyID  uint `gorm:"not null;index"`
	CheckoutID uint `gorm:"not null;uniqueIndex:idx_company_purchases_checkout"`
	PaymentID  string

	Items []PurchaseItem

	CreatedAt time.Time
}

type PurchaseItem struct {
	ID                uint `gorm:"primaryKey"`
	CompanyPurchaseID uint `gorm:"not null;index"`
	ProductID         uint `gorm:"not null"`
	Seats             int  `gorm:"not null;default:1"`

	Credentials []EmployeeCredential
}

// EmployeeCredential is one generated login per purchased seat. The plaintext
// password exists only in memory until the credential email is enqueued; the
// row keeps the bcrypt hash. IsSent stays false until the outbox dispatcher
// delivers the email.
type EmployeeCredential struct {
	ID             uint   `gorm:"primaryKey"`
	PurchaseItemID uint   `gorm:"not null;index"`
	LoginEmail     string `gorm:"not null;uniqueIndex:idx_employee_credentials_login"`
	PasswordHash   string `gorm:"not null"`
	IsSent         bool   `gorm:"default:false"`
	SentAt         *time.Time

	CreatedAt time.Time
}
