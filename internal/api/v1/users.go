package v1

import (
	"fmt"

	"github.com/gofiber/fiber/v2"

	"github.com/filmfriend/filmfriend/internal/store"
	"github.com/filmfriend/filmfriend/pkg/utils"
)

// GetUser returns a user profile.
func (a *API) GetUser(c *fiber.Ctx) error {
	user, err := a.Store.GetUser(c.UserContext(), c.Params("id"))
	if err != nil {
		return a.storeError(c, err)
	}
	return c.JSON(fiber.Map{"user": user})
}

// UpdateProfile applies a partial edit to the current user's profile.
func (a *API) UpdateProfile(c *fiber.Ctx) error {
	type ProfileInput struct {
		Username  *string `json:"username" validate:"omitempty,min=3,max=50,alphanum"`
		Name      *string `json:"name" validate:"omitempty,max=100"`
		AvatarURL *string `json:"avatar_url" validate:"omitempty,url"`
		Bio       *string `json:"bio" validate:"omitempty,max=500"`
	}
	pi := new(ProfileInput)
	if err := utils.StrictBodyParser(c, pi); err != nil {
		a.Logger.Warn(c.UserContext()).Logs(fmt.Sprintf("Failed to parse request body: %v", err))
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request format",
		})
	}
	if err := a.Validator.Validate(pi); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error":   "Validation failed",
			"details": err,
		})
	}

	user, err := a.Store.UpdateUserProfile(c.UserContext(), a.currentUser(c), store.UserUpdate{
		Username:  pi.Username,
		Name:      pi.Name,
		AvatarURL: pi.AvatarURL,
		Bio:       pi.Bio,
	})
	if err != nil {
		return a.storeError(c, err)
	}

	return c.JSON(fiber.Map{"user": user})
}

// GetUserReviews returns all reviews written by a user.
func (a *API) GetUserReviews(c *fiber.Ctx) error {
	reviews, err := a.Store.ReviewsByUser(c.UserContext(), c.Params("id"))
	if err != nil {
		return a.storeError(c, err)
	}
	return c.JSON(fiber.Map{"reviews": reviews})
}

// GetUserLists returns all lists owned by a user.
func (a *API) GetUserLists(c *fiber.Ctx) error {
	lists, err := a.Store.UserLists(c.UserContext(), c.Params("id"))
	if err != nil {
		return a.storeError(c, err)
	}
	return c.JSON(fiber.Map{"lists": lists})
}
