package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Review is a user's single review of a movie. The (user_id, movie_id)
// uniqueness constraint makes a resubmission a full replace: rating, text
// and visibility are always overwritten together.
type Review struct {
	ID       uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	UserID   string    `gorm:"size:255;not null;uniqueIndex:idx_reviews_user_movie" json:"user_id" validate:"required"`
	MovieID  string    `gorm:"size:255;not null;uniqueIndex:idx_reviews_user_movie" json:"movie_id" validate:"required"`
	Rating   float64   `gorm:"type:decimal(2,1);check:rating >= 0.5 AND rating <= 5.0" json:"rating" validate:"required,gte=0.5,lte=5"`
	Text     string    `gorm:"type:text" json:"text" validate:"required"`
	IsPublic bool      `gorm:"not null" json:"is_public"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`

	User  User  `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
	Movie Movie `gorm:"foreignKey:MovieID;constraint:OnDelete:CASCADE" json:"-"`
}

func (r *Review) BeforeCreate(tx *gorm.DB) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	return nil
}
