package store

import (
	"context"
	"time"

	"gorm.io/gorm/clause"

	"github.com/filmfriend/filmfriend/internal/models"
)

// SetInteraction merges the supplied fields into the user's interaction row
// for the movie, creating the row if none exists. Only fields explicitly
// supplied overwrite prior values; updated_at is always refreshed. A call
// supplying neither field is rejected rather than degenerating into a
// timestamp-only touch.
func (s *Store) SetInteraction(ctx context.Context, userID, movieID string, liked *bool, status *models.WatchStatus) (*models.UserMovieInteraction, error) {
	if liked == nil && status == nil {
		return nil, ErrNoFields
	}

	row := models.UserMovieInteraction{
		UserID:  userID,
		MovieID: movieID,
		Status:  status,
	}
	if liked != nil {
		row.Liked = *liked
	}

	assigns := map[string]interface{}{
		"updated_at": time.Now().UTC(),
	}
	if liked != nil {
		assigns["liked"] = *liked
	}
	if status != nil {
		assigns["status"] = *status
	}

	err := s.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_id"}, {Name: "movie_id"}},
			DoUpdates: clause.Assignments(assigns),
		}).
		Create(&row).Error
	if err != nil {
		return nil, err
	}

	return s.GetInteraction(ctx, userID, movieID)
}

// GetInteraction returns the interaction row for a (user, movie) pair.
func (s *Store) GetInteraction(ctx context.Context, userID, movieID string) (*models.UserMovieInteraction, error) {
	var row models.UserMovieInteraction
	err := s.db.WithContext(ctx).
		First(&row, "user_id = ? AND movie_id = ?", userID, movieID).Error
	if err != nil {
		return nil, translate(err)
	}
	return &row, nil
}
