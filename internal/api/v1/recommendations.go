package v1

import (
	"errors"
	"fmt"

	"github.com/gofiber/fiber/v2"

	"github.com/filmfriend/filmfriend/internal/ai"
	"github.com/filmfriend/filmfriend/pkg/utils"
)

// GetRecommendations runs the recommendation engine for the current user.
// The profile is assembled server-side from the user's interactions and
// lists; the request selects the task and may override the taste text.
func (a *API) GetRecommendations(c *fiber.Ctx) error {
	if a.Engine == nil {
		return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{
			"error": "Recommendations are not configured",
		})
	}

	type RecommendationRequest struct {
		RecommendationType ai.RecommendationType     `json:"recommendation_type" validate:"required,oneof=LIST_SUGGESTIONS WATCH_NEXT SIMILAR_USERS"`
		TasteDescription   string                    `json:"taste_description" validate:"omitempty,max=1000"`
		Context            *ai.RecommendationContext `json:"context"`
	}
	rr := new(RecommendationRequest)
	if err := utils.StrictBodyParser(c, rr); err != nil {
		a.Logger.Warn(c.UserContext()).Logs(fmt.Sprintf("Failed to parse request body: %v", err))
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request format",
		})
	}
	if err := a.Validator.Validate(rr); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error":   "Validation failed",
			"details": err,
		})
	}

	profile, err := a.Store.UserTasteProfile(c.UserContext(), a.currentUser(c))
	if err != nil {
		return a.storeError(c, err)
	}
	if rr.TasteDescription != "" {
		profile.TasteDescription = rr.TasteDescription
	}

	out, err := a.Engine.GetRecommendations(c.UserContext(), ai.RecommendationInput{
		UserProfile:        *profile,
		RecommendationType: rr.RecommendationType,
		Context:            rr.Context,
	})
	if err != nil {
		return a.aiError(c, err)
	}

	return c.JSON(fiber.Map{"recommendations": out})
}

// ListSuggestions asks the model for movies that fit an existing list.
func (a *API) ListSuggestions(c *fiber.Ctx) error {
	if a.Engine == nil {
		return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{
			"error": "Recommendations are not configured",
		})
	}

	id, err := listID(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid list id"})
	}

	type SuggestionsRequest struct {
		UserTaste string `json:"user_taste" validate:"omitempty,max=1000"`
	}
	sr := new(SuggestionsRequest)
	if len(c.Body()) > 0 {
		if err := utils.StrictBodyParser(c, sr); err != nil {
			a.Logger.Warn(c.UserContext()).Logs(fmt.Sprintf("Failed to parse request body: %v", err))
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "Invalid request format",
			})
		}
		if err := a.Validator.Validate(sr); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error":   "Validation failed",
				"details": err,
			})
		}
	}

	list, err := a.Store.GetList(c.UserContext(), id)
	if err != nil {
		return a.storeError(c, err)
	}
	if !list.IsPublic && list.UserID != a.currentUser(c) {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "This list is private"})
	}

	titles := make([]string, 0, len(list.Items))
	for _, item := range list.Items {
		titles = append(titles, item.Movie.Title)
	}

	out, err := a.Engine.GenerateListSuggestions(c.UserContext(), ai.ListSuggestionsInput{
		ListName:    list.Name,
		MovieTitles: titles,
		UserTaste:   sr.UserTaste,
	})
	if err != nil {
		return a.aiError(c, err)
	}

	return c.JSON(fiber.Map{"suggestions": out})
}

// aiError maps engine errors to HTTP responses. Model failures propagate as
// a bad gateway; there is no fallback recommendation logic.
func (a *API) aiError(c *fiber.Ctx, err error) error {
	if errors.Is(err, ai.ErrInvalidInput) {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": err.Error(),
		})
	}
	a.Logger.Error(c.UserContext()).WithMeta(utils.Map{"error": err.Error()}).Logs("recommendation flow failed")
	return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{
		"error": "Failed to generate recommendations",
	})
}
