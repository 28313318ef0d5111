package v1

import (
	"fmt"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/filmfriend/filmfriend/internal/models"
	"github.com/filmfriend/filmfriend/internal/store"
	"github.com/filmfriend/filmfriend/pkg/utils"
)

// listID parses the :id route parameter.
func listID(c *fiber.Ctx) (uuid.UUID, error) {
	return uuid.Parse(c.Params("id"))
}

// CreateList creates a list owned by the current user.
func (a *API) CreateList(c *fiber.Ctx) error {
	type ListInput struct {
		Name        string `json:"name" validate:"required,max=100"`
		Description string `json:"description" validate:"omitempty,max=1000"`
		IsPublic    *bool  `json:"is_public"`
	}
	li := new(ListInput)
	if err := utils.StrictBodyParser(c, li); err != nil {
		a.Logger.Warn(c.UserContext()).Logs(fmt.Sprintf("Failed to parse request body: %v", err))
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request format",
		})
	}
	if err := a.Validator.Validate(li); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error":   "Validation failed",
			"details": err,
		})
	}

	isPublic := true
	if li.IsPublic != nil {
		isPublic = *li.IsPublic
	}

	list, err := a.Store.CreateList(c.UserContext(), &models.MovieList{
		UserID:      a.currentUser(c),
		Name:        li.Name,
		Description: li.Description,
		IsPublic:    isPublic,
	})
	if err != nil {
		return a.storeError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"list": list})
}

// GetList returns a list with its items.
func (a *API) GetList(c *fiber.Ctx) error {
	id, err := listID(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid list id"})
	}

	list, err := a.Store.GetList(c.UserContext(), id)
	if err != nil {
		return a.storeError(c, err)
	}
	if !list.IsPublic && list.UserID != a.currentUser(c) {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "This list is private"})
	}

	return c.JSON(fiber.Map{"list": list})
}

// UpdateList applies a partial edit to a list the current user owns.
func (a *API) UpdateList(c *fiber.Ctx) error {
	id, err := listID(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid list id"})
	}

	type ListUpdateInput struct {
		Name        *string `json:"name" validate:"omitempty,max=100"`
		Description *string `json:"description" validate:"omitempty,max=1000"`
		IsPublic    *bool   `json:"is_public"`
	}
	li := new(ListUpdateInput)
	if err := utils.StrictBodyParser(c, li); err != nil {
		a.Logger.Warn(c.UserContext()).Logs(fmt.Sprintf("Failed to parse request body: %v", err))
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request format",
		})
	}
	if err := a.Validator.Validate(li); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error":   "Validation failed",
			"details": err,
		})
	}

	list, err := a.Store.UpdateList(c.UserContext(), id, a.currentUser(c), store.ListUpdate{
		Name:        li.Name,
		Description: li.Description,
		IsPublic:    li.IsPublic,
	})
	if err != nil {
		return a.storeError(c, err)
	}

	return c.JSON(fiber.Map{"list": list})
}

// DeleteList removes a list the current user owns.
func (a *API) DeleteList(c *fiber.Ctx) error {
	id, err := listID(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid list id"})
	}

	if err := a.Store.DeleteList(c.UserContext(), id, a.currentUser(c)); err != nil {
		return a.storeError(c, err)
	}

	return c.JSON(fiber.Map{"message": "List deleted"})
}

// AddListItem adds a movie to a list, inserting the movie locally first.
func (a *API) AddListItem(c *fiber.Ctx) error {
	id, err := listID(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid list id"})
	}

	mi := new(models.Movie)
	if err := utils.StrictBodyParser(c, mi); err != nil {
		a.Logger.Warn(c.UserContext()).Logs(fmt.Sprintf("Failed to parse request body: %v", err))
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request format",
		})
	}
	if err := a.Validator.Validate(mi); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error":   "Validation failed",
			"details": err,
		})
	}

	if _, err := a.Store.GetOrInsertMovie(c.UserContext(), mi); err != nil {
		return a.storeError(c, err)
	}
	if err := a.Store.AddListItem(c.UserContext(), id, a.currentUser(c), mi.ID); err != nil {
		return a.storeError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"message": "Movie added to list"})
}

// RemoveListItem removes a movie from a list the current user owns.
func (a *API) RemoveListItem(c *fiber.Ctx) error {
	id, err := listID(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid list id"})
	}

	if err := a.Store.RemoveListItem(c.UserContext(), id, a.currentUser(c), c.Params("movieId")); err != nil {
		return a.storeError(c, err)
	}

	return c.JSON(fiber.Map{"message": "Movie removed from list"})
}
