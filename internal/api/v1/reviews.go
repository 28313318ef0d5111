package v1

import (
	"fmt"

	"github.com/gofiber/fiber/v2"

	"github.com/filmfriend/filmfriend/internal/models"
	"github.com/filmfriend/filmfriend/pkg/utils"
)

// SubmitReview inserts or fully replaces the current user's review of a
// movie. Rating and text are required; rating must lie in [0.5, 5.0].
func (a *API) SubmitReview(c *fiber.Ctx) error {
	type ReviewInput struct {
		MovieTitle string  `json:"movie_title" validate:"required,max=255"`
		Rating     float64 `json:"rating" validate:"required,gte=0.5,lte=5"`
		Text       string  `json:"text" validate:"required"`
		IsPublic   *bool   `json:"is_public"`
	}
	ri := new(ReviewInput)
	if err := utils.StrictBodyParser(c, ri); err != nil {
		a.Logger.Warn(c.UserContext()).Logs(fmt.Sprintf("Failed to parse request body: %v", err))
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request format",
		})
	}
	if err := a.Validator.Validate(ri); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error":   "Validation failed",
			"details": err,
		})
	}

	movieID := c.Params("id")
	userID := a.currentUser(c)

	// Ensure the movie exists locally before the review references it.
	if _, err := a.Store.GetOrInsertMovie(c.UserContext(), &models.Movie{ID: movieID, Title: ri.MovieTitle}); err != nil {
		return a.storeError(c, err)
	}

	isPublic := true
	if ri.IsPublic != nil {
		isPublic = *ri.IsPublic
	}

	review, err := a.Store.UpsertReview(c.UserContext(), &models.Review{
		UserID:   userID,
		MovieID:  movieID,
		Rating:   ri.Rating,
		Text:     ri.Text,
		IsPublic: isPublic,
	})
	if err != nil {
		return a.storeError(c, err)
	}

	return c.JSON(fiber.Map{"review": review})
}

// GetMovieReviews returns the public reviews of a movie, newest first.
func (a *API) GetMovieReviews(c *fiber.Ctx) error {
	reviews, err := a.Store.ReviewsForMovie(c.UserContext(), c.Params("id"))
	if err != nil {
		return a.storeError(c, err)
	}
	return c.JSON(fiber.Map{"reviews": reviews})
}
