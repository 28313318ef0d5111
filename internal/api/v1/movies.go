package v1

import (
	"errors"
	"fmt"

	"github.com/gofiber/fiber/v2"

	"github.com/filmfriend/filmfriend/internal/models"
	"github.com/filmfriend/filmfriend/internal/store"
	"github.com/filmfriend/filmfriend/pkg/utils"
)

// UpsertMovie ensures a movie from the external catalog exists locally and
// returns the stored row.
func (a *API) UpsertMovie(c *fiber.Ctx) error {
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

	movie, err := a.Store.GetOrInsertMovie(c.UserContext(), mi)
	if err != nil {
		return a.storeError(c, err)
	}

	return c.JSON(fiber.Map{"movie": movie})
}

// GetMovie returns the locally stored movie metadata.
func (a *API) GetMovie(c *fiber.Ctx) error {
	movie, err := a.Store.GetMovie(c.UserContext(), c.Params("id"))
	if err != nil {
		return a.storeError(c, err)
	}
	return c.JSON(fiber.Map{"movie": movie})
}

// SetInteraction merges a like flag and/or watch status into the current
// user's interaction with the movie. The movie payload is upserted first so
// the interaction never references an unknown movie.
func (a *API) SetInteraction(c *fiber.Ctx) error {
	type InteractionInput struct {
		Movie  *models.Movie       `json:"movie"`
		Liked  *bool               `json:"liked"`
		Status *models.WatchStatus `json:"status" validate:"omitempty,oneof=watched want_to_watch rewatched"`
	}
	ii := new(InteractionInput)
	if err := utils.StrictBodyParser(c, ii); err != nil {
		a.Logger.Warn(c.UserContext()).Logs(fmt.Sprintf("Failed to parse request body: %v", err))
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request format",
		})
	}

	// The movie id always comes from the route, so backfill it before
	// validation dives into the nested payload.
	movieID := c.Params("id")
	if ii.Movie != nil {
		ii.Movie.ID = movieID
	}

	if err := a.Validator.Validate(ii); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error":   "Validation failed",
			"details": err,
		})
	}
	if ii.Liked == nil && ii.Status == nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "No fields to update",
		})
	}

	if ii.Movie != nil {
		if _, err := a.Store.GetOrInsertMovie(c.UserContext(), ii.Movie); err != nil {
			return a.storeError(c, err)
		}
	} else if _, err := a.Store.GetMovie(c.UserContext(), movieID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "Movie not found; include a movie payload",
			})
		}
		return a.storeError(c, err)
	}

	interaction, err := a.Store.SetInteraction(c.UserContext(), a.currentUser(c), movieID, ii.Liked, ii.Status)
	if err != nil {
		return a.storeError(c, err)
	}

	return c.JSON(fiber.Map{"interaction": interaction})
}

// GetInteraction returns the current user's interaction with the movie.
func (a *API) GetInteraction(c *fiber.Ctx) error {
	interaction, err := a.Store.GetInteraction(c.UserContext(), a.currentUser(c), c.Params("id"))
	if err != nil {
		return a.storeError(c, err)
	}
	return c.JSON(fiber.Map{"interaction": interaction})
}
