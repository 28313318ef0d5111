package store

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm/clause"

	"github.com/filmfriend/filmfriend/internal/models"
)

func listKey(id uuid.UUID) string   { return "list:" + id.String() }
func userListsKey(id string) string { return "user:" + id + ":lists" }

// CreateList stores a new list owned by list.UserID.
func (s *Store) CreateList(ctx context.Context, list *models.MovieList) (*models.MovieList, error) {
	if err := s.db.WithContext(ctx).Create(list).Error; err != nil {
		return nil, err
	}
	s.cache.Del(ctx, userListsKey(list.UserID))
	return list, nil
}

// GetList returns a list with its items and their movies.
func (s *Store) GetList(ctx context.Context, id uuid.UUID) (*models.MovieList, error) {
	var list models.MovieList
	if s.cache.Get(ctx, listKey(id), &list) {
		return &list, nil
	}

	err := s.db.WithContext(ctx).
		Preload("Items.Movie").
		First(&list, "id = ?", id).Error
	if err != nil {
		return nil, translate(err)
	}

	s.cache.Set(ctx, listKey(id), &list, 0)
	return &list, nil
}

// UserLists returns all lists owned by a user, most recently updated first.
func (s *Store) UserLists(ctx context.Context, userID string) ([]models.MovieList, error) {
	var lists []models.MovieList
	if s.cache.Get(ctx, userListsKey(userID), &lists) {
		return lists, nil
	}

	err := s.db.WithContext(ctx).
		Preload("Items.Movie").
		Where("user_id = ?", userID).
		Order("updated_at DESC").
		Find(&lists).Error
	if err != nil {
		return nil, err
	}

	s.cache.Set(ctx, userListsKey(userID), &lists, 0)
	return lists, nil
}

// ListUpdate carries the optional fields of a list edit.
type ListUpdate struct {
	Name        *string
	Description *string
	IsPublic    *bool
}

// UpdateList applies a partial edit to a list the caller owns.
func (s *Store) UpdateList(ctx context.Context, id uuid.UUID, userID string, upd ListUpdate) (*models.MovieList, error) {
	list, err := s.ownedList(ctx, id, userID)
	if err != nil {
		return nil, err
	}

	updates := map[string]interface{}{}
	if upd.Name != nil {
		updates["name"] = *upd.Name
	}
	if upd.Description != nil {
		updates["description"] = *upd.Description
	}
	if upd.IsPublic != nil {
		updates["is_public"] = *upd.IsPublic
	}
	if len(updates) == 0 {
		return nil, ErrNoFields
	}

	err = s.db.WithContext(ctx).Model(&models.MovieList{}).Where("id = ?", id).Updates(updates).Error
	if err != nil {
		return nil, err
	}

	s.cache.Del(ctx, listKey(id), userListsKey(list.UserID))
	return s.GetList(ctx, id)
}

// DeleteList removes a list the caller owns along with its items.
func (s *Store) DeleteList(ctx context.Context, id uuid.UUID, userID string) error {
	list, err := s.ownedList(ctx, id, userID)
	if err != nil {
		return err
	}

	if err := s.db.WithContext(ctx).Delete(&models.ListItem{}, "list_id = ?", id).Error; err != nil {
		return err
	}
	if err := s.db.WithContext(ctx).Delete(&models.MovieList{}, "id = ?", id).Error; err != nil {
		return err
	}

	s.cache.Del(ctx, listKey(id), userListsKey(list.UserID))
	return nil
}

// AddListItem adds a movie to a list the caller owns. Adding a movie that
// is already present is a no-op. Callers ensure the movie row exists via
// GetOrInsertMovie first.
func (s *Store) AddListItem(ctx context.Context, listID uuid.UUID, userID, movieID string) error {
	list, err := s.ownedList(ctx, listID, userID)
	if err != nil {
		return err
	}

	item := models.ListItem{ListID: listID, MovieID: movieID}
	err = s.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "list_id"}, {Name: "movie_id"}},
			DoNothing: true,
		}).
		Create(&item).Error
	if err != nil {
		return err
	}

	s.cache.Del(ctx, listKey(listID), userListsKey(list.UserID))
	return nil
}

// RemoveListItem removes a movie from a list the caller owns.
func (s *Store) RemoveListItem(ctx context.Context, listID uuid.UUID, userID, movieID string) error {
	list, err := s.ownedList(ctx, listID, userID)
	if err != nil {
		return err
	}

	err = s.db.WithContext(ctx).
		Delete(&models.ListItem{}, "list_id = ? AND movie_id = ?", listID, movieID).Error
	if err != nil {
		return err
	}

	s.cache.Del(ctx, listKey(listID), userListsKey(list.UserID))
	return nil
}

// ownedList loads a list and checks ownership, bypassing the cache so a
// stale entry can never authorize a mutation.
func (s *Store) ownedList(ctx context.Context, id uuid.UUID, userID string) (*models.MovieList, error) {
	var list models.MovieList
	if err := s.db.WithContext(ctx).First(&list, "id = ?", id).Error; err != nil {
		return nil, translate(err)
	}
	if list.UserID != userID {
		return nil, ErrNotOwner
	}
	return &list, nil
}
