package store

import (
	"context"

	"github.com/filmfriend/filmfriend/internal/ai"
	"github.com/filmfriend/filmfriend/internal/models"
)

// UserTasteProfile assembles the recommendation-engine input for a user:
// watched movies, liked movies, and their lists. The taste description is
// the user's bio; callers may override it with request-supplied text.
func (s *Store) UserTasteProfile(ctx context.Context, userID string) (*ai.UserProfile, error) {
	user, err := s.GetUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	watched, err := s.interactionMovies(ctx, userID, "umi.status IN ?", []models.WatchStatus{models.StatusWatched, models.StatusRewatched})
	if err != nil {
		return nil, err
	}

	liked, err := s.interactionMovies(ctx, userID, "umi.liked = ?", true)
	if err != nil {
		return nil, err
	}

	lists, err := s.UserLists(ctx, userID)
	if err != nil {
		return nil, err
	}

	profile := &ai.UserProfile{
		WatchedMovies:    toRefs(watched),
		LikedMovies:      toRefs(liked),
		MovieLists:       make([]ai.ListRef, 0, len(lists)),
		TasteDescription: user.Bio,
	}
	for _, list := range lists {
		ref := ai.ListRef{Name: list.Name, Movies: make([]ai.MovieRef, 0, len(list.Items))}
		for _, item := range list.Items {
			ref.Movies = append(ref.Movies, ai.MovieRef{Title: item.Movie.Title, Year: item.Movie.Year})
		}
		profile.MovieLists = append(profile.MovieLists, ref)
	}

	return profile, nil
}

func (s *Store) interactionMovies(ctx context.Context, userID, cond string, arg interface{}) ([]models.Movie, error) {
	var movies []models.Movie
	err := s.db.WithContext(ctx).
		Model(&models.Movie{}).
		Joins("JOIN user_movie_interactions umi ON umi.movie_id = movies.id").
		Where("umi.user_id = ?", userID).
		Where(cond, arg).
		Find(&movies).Error
	if err != nil {
		return nil, err
	}
	return movies, nil
}

func toRefs(movies []models.Movie) []ai.MovieRef {
	refs := make([]ai.MovieRef, 0, len(movies))
	for _, m := range movies {
		refs = append(refs, ai.MovieRef{Title: m.Title, Year: m.Year})
	}
	return refs
}
