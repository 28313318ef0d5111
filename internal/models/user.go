// Package models defines the persisted entities of the FilmFriend app.
package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// User is an account profile. IDs are strings rather than native UUIDs so
// the seeded mock user can keep the literal id "1" until real
// authentication lands.
type User struct {
	ID        string `gorm:"size:255;primaryKey" json:"id"`
	Username  string `gorm:"size:50;not null;unique" json:"username" validate:"required,min=3,max=50,alphanum"`
	Name      string `gorm:"size:100" json:"name" validate:"omitempty,max=100"`
	AvatarURL string `gorm:"size:255" json:"avatar_url" validate:"omitempty,url"`
	Bio       string `gorm:"type:text" json:"bio" validate:"omitempty,max=500"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == "" {
		u.ID = uuid.NewString()
	}
	return nil
}
