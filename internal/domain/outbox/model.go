package outbox

import "time"

const (
	StatusPending = "PENDING"
	StatusSent    = "SENT"
	StatusFailed  = "FAILED"
)

// EmailMessage is a pending-notification row. Rows are inserted inside the
// same transaction as the business write they announce, then drained
// at-least-once by the dispatcher, so a crash between commit and send is
// recoverable.
type EmailMessage struct {
	ID        uint `gorm:"primaryKey"`
	Recipient string
	Subject   string
	Body      string

	// Set for credential emails so delivery can flip is_sent/sent_at.
	CredentialID *uint `gorm:"index"`

	Status   string `gorm:"type:varchar(20);not null;default:'PENDING';index"`
	Attempts int    `gorm:"default:0"`
	SentAt   *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}
