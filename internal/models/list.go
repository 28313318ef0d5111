package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// MovieList is a user-curated, optionally public list of movies.
type MovieList struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	UserID      string    `gorm:"size:255;not null;index" json:"user_id"`
	Name        string    `gorm:"size:100;not null" json:"name" validate:"required,max=100"`
	Description string    `gorm:"type:text" json:"description,omitempty" validate:"omitempty,max=1000"`
	IsPublic    bool      `gorm:"not null" json:"is_public"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`

	User  User       `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
	Items []ListItem `gorm:"foreignKey:ListID;constraint:OnDelete:CASCADE" json:"items,omitempty"`
}

func (l *MovieList) BeforeCreate(tx *gorm.DB) error {
	if l.ID == uuid.Nil {
		l.ID = uuid.New()
	}
	return nil
}

// ListItem joins lists and movies. Insertion order is not preserved beyond
// the added_at timestamp.
type ListItem struct {
	ListID  uuid.UUID `gorm:"type:uuid;primaryKey" json:"list_id"`
	MovieID string    `gorm:"size:255;primaryKey" json:"movie_id"`
	AddedAt time.Time `gorm:"autoCreateTime" json:"added_at"`

	Movie Movie `gorm:"foreignKey:MovieID;constraint:OnDelete:CASCADE" json:"movie"`
}
