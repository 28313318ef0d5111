package models

import "time"

// WatchStatus enumerates a user's relationship to a movie.
type WatchStatus string

const (
	StatusWatched     WatchStatus = "watched"
	StatusWantToWatch WatchStatus = "want_to_watch"
	StatusRewatched   WatchStatus = "rewatched"
)

// Valid reports whether s is one of the known watch statuses.
func (s WatchStatus) Valid() bool {
	switch s {
	case StatusWatched, StatusWantToWatch, StatusRewatched:
		return true
	}
	return false
}

// UserMovieInteraction holds a user's like flag and watch status for a
// movie. At most one row exists per (user, movie) pair; writes are
// partial-merge upserts, last-write-wins per field.
type UserMovieInteraction struct {
	UserID  string       `gorm:"size:255;primaryKey" json:"user_id"`
	MovieID string       `gorm:"size:255;primaryKey" json:"movie_id"`
	Liked   bool         `gorm:"default:false" json:"liked"`
	Status  *WatchStatus `gorm:"size:20" json:"status,omitempty"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`

	User  User  `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
	Movie Movie `gorm:"foreignKey:MovieID;constraint:OnDelete:CASCADE" json:"-"`
}

func (UserMovieInteraction) TableName() string {
	return "user_movie_interactions"
}
