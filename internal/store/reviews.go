package store

import (
	"context"
	"time"

	"gorm.io/gorm/clause"

	"github.com/filmfriend/filmfriend/internal/models"
)

// UpsertReview inserts the review or fully replaces the existing one for
// the (user, movie) pair: rating, text and visibility are always
// overwritten together, so no field can be left stale from a prior write.
func (s *Store) UpsertReview(ctx context.Context, review *models.Review) (*models.Review, error) {
	err := s.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "user_id"}, {Name: "movie_id"}},
			DoUpdates: clause.Assignments(map[string]interface{}{
				"rating":     review.Rating,
				"text":       review.Text,
				"is_public":  review.IsPublic,
				"updated_at": time.Now().UTC(),
			}),
		}).
		Create(review).Error
	if err != nil {
		return nil, err
	}

	var stored models.Review
	err = s.db.WithContext(ctx).
		First(&stored, "user_id = ? AND movie_id = ?", review.UserID, review.MovieID).Error
	if err != nil {
		return nil, translate(err)
	}
	return &stored, nil
}

// ReviewsForMovie returns the public reviews of a movie, newest first.
func (s *Store) ReviewsForMovie(ctx context.Context, movieID string) ([]models.Review, error) {
	var reviews []models.Review
	err := s.db.WithContext(ctx).
		Where("movie_id = ? AND is_public = ?", movieID, true).
		Order("created_at DESC").
		Find(&reviews).Error
	if err != nil {
		return nil, err
	}
	return reviews, nil
}

// ReviewsByUser returns all reviews written by a user, newest first.
func (s *Store) ReviewsByUser(ctx context.Context, userID string) ([]models.Review, error) {
	var reviews []models.Review
	err := s.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&reviews).Error
	if err != nil {
		return nil, err
	}
	return reviews, nil
}
