// Package v1 holds the REST handlers of the FilmFriend API.
package v1

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/filmfriend/filmfriend/internal/ai"
	"github.com/filmfriend/filmfriend/internal/store"
	"github.com/filmfriend/filmfriend/pkg/logger"
	"github.com/filmfriend/filmfriend/pkg/utils"
)

// MockUserID stands in for the session until real authentication lands.
const MockUserID = "1"

// API carries the handler dependencies. Everything is injected at startup;
// there are no package-level singletons.
type API struct {
	Store     *store.Store
	Engine    *ai.Engine
	Logger    *logger.Logger
	Validator *utils.Validator
}

func New(s *store.Store, engine *ai.Engine, log *logger.Logger) *API {
	return &API{
		Store:     s,
		Engine:    engine,
		Logger:    log,
		Validator: utils.NewValidator(),
	}
}

// Register mounts all v1 routes on the router group.
func (a *API) Register(r fiber.Router) {
	r.Get("/users/:id", a.GetUser)
	r.Patch("/me", a.UpdateProfile)
	r.Get("/users/:id/reviews", a.GetUserReviews)
	r.Get("/users/:id/lists", a.GetUserLists)

	r.Post("/movies", a.UpsertMovie)
	r.Get("/movies/:id", a.GetMovie)
	r.Put("/movies/:id/interaction", a.SetInteraction)
	r.Get("/movies/:id/interaction", a.GetInteraction)
	r.Put("/movies/:id/review", a.SubmitReview)
	r.Get("/movies/:id/reviews", a.GetMovieReviews)

	r.Post("/lists", a.CreateList)
	r.Get("/lists/:id", a.GetList)
	r.Patch("/lists/:id", a.UpdateList)
	r.Delete("/lists/:id", a.DeleteList)
	r.Post("/lists/:id/items", a.AddListItem)
	r.Delete("/lists/:id/items/:movieId", a.RemoveListItem)
	r.Post("/lists/:id/suggestions", a.ListSuggestions)

	r.Post("/recommendations", a.GetRecommendations)
}

// currentUser resolves the acting user. Authentication is out of scope; the
// X-User-ID header (or the mock id) plays the part of a session.
func (a *API) currentUser(c *fiber.Ctx) string {
	if id := c.Get("X-User-ID"); id != "" {
		return id
	}
	return MockUserID
}

// storeError maps store sentinel errors to HTTP responses.
func (a *API) storeError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, store.ErrNotFound):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Resource not found",
		})
	case errors.Is(err, store.ErrNotOwner):
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
			"error": "You do not own this resource",
		})
	case errors.Is(err, store.ErrDuplicateEntry):
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{
			"error": "Resource already exists",
		})
	case errors.Is(err, store.ErrNoFields):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "No fields to update",
		})
	}
	a.Logger.Error(c.UserContext()).WithMeta(utils.Map{"error": err.Error()}).Logs("persistence error")
	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
		"error": "Something went wrong",
	})
}
