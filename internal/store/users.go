package store

import (
	"context"
	"strings"

	"gorm.io/gorm/clause"

	"github.com/filmfriend/filmfriend/internal/models"
)

func userKey(id string) string { return "user:" + id }

// EnsureUser inserts the user if absent and returns the stored row. Used to
// seed the mock account at startup; signup proper is out of scope.
func (s *Store) EnsureUser(ctx context.Context, user *models.User) (*models.User, error) {
	insert := *user
	err := s.db.WithContext(ctx).
		Clauses(clause.OnConflict{Columns: []clause.Column{{Name: "id"}}, DoNothing: true}).
		Create(&insert).Error
	if err != nil {
		return nil, err
	}

	var stored models.User
	if err := s.db.WithContext(ctx).First(&stored, "id = ?", user.ID).Error; err != nil {
		return nil, translate(err)
	}
	return &stored, nil
}

// GetUser returns a user profile by id.
func (s *Store) GetUser(ctx context.Context, id string) (*models.User, error) {
	var user models.User
	if s.cache.Get(ctx, userKey(id), &user) {
		return &user, nil
	}

	if err := s.db.WithContext(ctx).First(&user, "id = ?", id).Error; err != nil {
		return nil, translate(err)
	}

	s.cache.Set(ctx, userKey(id), &user, 0)
	return &user, nil
}

// UserUpdate carries the optional fields of a profile edit. Omitted fields
// retain their prior values.
type UserUpdate struct {
	Username  *string
	Name      *string
	AvatarURL *string
	Bio       *string
}

// UpdateUserProfile applies a partial profile edit and returns the updated
// row. A username collision surfaces as ErrDuplicateEntry.
func (s *Store) UpdateUserProfile(ctx context.Context, id string, upd UserUpdate) (*models.User, error) {
	updates := map[string]interface{}{}
	if upd.Username != nil {
		updates["username"] = *upd.Username
	}
	if upd.Name != nil {
		updates["name"] = *upd.Name
	}
	if upd.AvatarURL != nil {
		updates["avatar_url"] = *upd.AvatarURL
	}
	if upd.Bio != nil {
		updates["bio"] = *upd.Bio
	}
	if len(updates) == 0 {
		return nil, ErrNoFields
	}

	res := s.db.WithContext(ctx).Model(&models.User{}).Where("id = ?", id).Updates(updates)
	if res.Error != nil {
		if isUniqueViolation(res.Error) {
			return nil, ErrDuplicateEntry
		}
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, ErrNotFound
	}

	s.cache.Del(ctx, userKey(id))

	var user models.User
	if err := s.db.WithContext(ctx).First(&user, "id = ?", id).Error; err != nil {
		return nil, translate(err)
	}
	return &user, nil
}

// isUniqueViolation sniffs driver-specific uniqueness errors; both the
// postgres and sqlite drivers mention the constraint in the message.
func isUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "duplicate") || strings.Contains(msg, "unique")
}
