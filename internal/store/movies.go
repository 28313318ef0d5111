package store

import (
	"context"

	"gorm.io/gorm/clause"

	"github.com/filmfriend/filmfriend/internal/models"
)

func movieKey(id string) string { return "movie:" + id }

// GetOrInsertMovie ensures the movie exists locally and returns the stored
// row. The insert uses conflict-ignore semantics, so concurrent callers for
// the same id are safe and the call is idempotent: metadata already on
// record wins over whatever the caller supplied.
func (s *Store) GetOrInsertMovie(ctx context.Context, movie *models.Movie) (*models.Movie, error) {
	insert := *movie
	err := s.db.WithContext(ctx).
		Clauses(clause.OnConflict{Columns: []clause.Column{{Name: "id"}}, DoNothing: true}).
		Create(&insert).Error
	if err != nil {
		return nil, err
	}

	var stored models.Movie
	if err := s.db.WithContext(ctx).First(&stored, "id = ?", movie.ID).Error; err != nil {
		return nil, translate(err)
	}

	s.cache.Set(ctx, movieKey(stored.ID), &stored, 0)
	return &stored, nil
}

// GetMovie returns the locally stored movie, consulting the cache first.
func (s *Store) GetMovie(ctx context.Context, id string) (*models.Movie, error) {
	var movie models.Movie
	if s.cache.Get(ctx, movieKey(id), &movie) {
		return &movie, nil
	}

	if err := s.db.WithContext(ctx).First(&movie, "id = ?", id).Error; err != nil {
		return nil, translate(err)
	}

	s.cache.Set(ctx, movieKey(id), &movie, 0)
	return &movie, nil
}
