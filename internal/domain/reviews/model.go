package reviews

import "time"

type Review struct {
	ID        uint `gorm:"primaryKey"`
	UserID    uint `gorm:"not null;uniqueIndex:idx_reviews_user_product"`
	ProductID uint `gorm:"not null;uniqueIndex:idx_reviews_user_product"`
	Rating    int  `gorm:"not null"`
	Comment   string

	CreatedAt time.Time
	UpdatedAt time.Time
}
