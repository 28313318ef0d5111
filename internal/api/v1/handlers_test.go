package v1_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/filmfriend/filmfriend/internal/ai"
	v1 "github.com/filmfriend/filmfriend/internal/api/v1"
	"github.com/filmfriend/filmfriend/internal/cache"
	"github.com/filmfriend/filmfriend/internal/models"
	"github.com/filmfriend/filmfriend/internal/store"
	"github.com/filmfriend/filmfriend/pkg/logger"
)

type fixedModel struct {
	response string
}

func (f fixedModel) Generate(context.Context, string) (string, error) {
	return f.response, nil
}

func newTestApp(t *testing.T, engine *ai.Engine) (*fiber.App, *store.Store) {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	require.NoError(t, db.AutoMigrate(models.All()...))

	log, err := logger.NewLogger(logger.WithOutputDir(t.TempDir()))
	require.NoError(t, err)
	t.Cleanup(log.Close)

	st := store.New(db, cache.New(nil, nil))
	_, err = st.EnsureUser(context.Background(), &models.User{ID: v1.MockUserID, Username: "filmfriend"})
	require.NoError(t, err)

	app := fiber.New()
	v1.New(st, engine, log).Register(app.Group("/api/v1"))
	return app, st
}

// request performs a JSON request against the app and decodes the response
// body into a generic map.
func request(t *testing.T, app *fiber.App, method, path string, body interface{}, headers map[string]string) (int, map[string]interface{}) {
	t.Helper()

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(payload)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	var decoded map[string]interface{}
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	if len(raw) > 0 {
		require.NoError(t, json.Unmarshal(raw, &decoded))
	}
	return resp.StatusCode, decoded
}

func TestInteractionLifecycle(t *testing.T) {
	app, _ := newTestApp(t, nil)

	status, body := request(t, app, http.MethodPut, "/api/v1/movies/42/interaction", fiber.Map{
		"movie": fiber.Map{"title": "Test Film"},
		"liked": true,
	}, nil)
	require.Equal(t, http.StatusOK, status)
	interaction := body["interaction"].(map[string]interface{})
	require.Equal(t, true, interaction["liked"])
	require.Nil(t, interaction["status"])

	// Setting the status must not disturb the like flag.
	status, body = request(t, app, http.MethodPut, "/api/v1/movies/42/interaction", fiber.Map{
		"status": "watched",
	}, nil)
	require.Equal(t, http.StatusOK, status)
	interaction = body["interaction"].(map[string]interface{})
	require.Equal(t, true, interaction["liked"])
	require.Equal(t, "watched", interaction["status"])

	// Unliking must not clear the status.
	status, body = request(t, app, http.MethodPut, "/api/v1/movies/42/interaction", fiber.Map{
		"liked": false,
	}, nil)
	require.Equal(t, http.StatusOK, status)
	interaction = body["interaction"].(map[string]interface{})
	require.Equal(t, false, interaction["liked"])
	require.Equal(t, "watched", interaction["status"])

	status, body = request(t, app, http.MethodGet, "/api/v1/movies/42/interaction", nil, nil)
	require.Equal(t, http.StatusOK, status)
	interaction = body["interaction"].(map[string]interface{})
	require.Equal(t, false, interaction["liked"])
	require.Equal(t, "watched", interaction["status"])
}

func TestInteractionValidation(t *testing.T) {
	app, _ := newTestApp(t, nil)

	status, body := request(t, app, http.MethodPut, "/api/v1/movies/42/interaction", fiber.Map{}, nil)
	require.Equal(t, http.StatusBadRequest, status)
	require.Equal(t, "No fields to update", body["error"])

	status, _ = request(t, app, http.MethodPut, "/api/v1/movies/42/interaction", fiber.Map{
		"status": "binged",
	}, nil)
	require.Equal(t, http.StatusBadRequest, status)

	// Unknown fields are rejected, not ignored.
	status, _ = request(t, app, http.MethodPut, "/api/v1/movies/42/interaction", fiber.Map{
		"likedd": true,
	}, nil)
	require.Equal(t, http.StatusBadRequest, status)
}

func TestInteractionRequiresKnownMovie(t *testing.T) {
	app, _ := newTestApp(t, nil)

	// Without a movie payload the movie must already exist locally.
	status, body := request(t, app, http.MethodPut, "/api/v1/movies/999/interaction", fiber.Map{
		"liked": true,
	}, nil)
	require.Equal(t, http.StatusNotFound, status)
	require.Equal(t, "Movie not found; include a movie payload", body["error"])

	// A payload without an id is fine: the route parameter supplies it.
	status, body = request(t, app, http.MethodPut, "/api/v1/movies/999/interaction", fiber.Map{
		"movie": fiber.Map{"title": "Late Arrival"},
		"liked": true,
	}, nil)
	require.Equal(t, http.StatusOK, status)
	interaction := body["interaction"].(map[string]interface{})
	require.Equal(t, "999", interaction["movie_id"])
}

func TestSubmitReviewReplacesPrevious(t *testing.T) {
	app, _ := newTestApp(t, nil)

	status, _ := request(t, app, http.MethodPut, "/api/v1/movies/42/review", fiber.Map{
		"movie_title": "Test Film",
		"rating":      4.5,
		"text":        "Great",
	}, nil)
	require.Equal(t, http.StatusOK, status)

	status, body := request(t, app, http.MethodPut, "/api/v1/movies/42/review", fiber.Map{
		"movie_title": "Test Film",
		"rating":      3.0,
		"text":        "Changed my mind",
	}, nil)
	require.Equal(t, http.StatusOK, status)
	review := body["review"].(map[string]interface{})
	require.Equal(t, 3.0, review["rating"])
	require.Equal(t, "Changed my mind", review["text"])

	status, body = request(t, app, http.MethodGet, "/api/v1/users/1/reviews", nil, nil)
	require.Equal(t, http.StatusOK, status)
	reviews := body["reviews"].([]interface{})
	require.Len(t, reviews, 1)
}

func TestSubmitReviewRejectsBadRating(t *testing.T) {
	app, _ := newTestApp(t, nil)

	for _, rating := range []float64{0.0, 0.4, 5.5} {
		status, _ := request(t, app, http.MethodPut, "/api/v1/movies/42/review", fiber.Map{
			"movie_title": "Test Film",
			"rating":      rating,
			"text":        "Out of range",
		}, nil)
		require.Equal(t, http.StatusBadRequest, status, "rating %v", rating)
	}
}

func TestGetMovieNotFound(t *testing.T) {
	app, _ := newTestApp(t, nil)

	status, body := request(t, app, http.MethodGet, "/api/v1/movies/999", nil, nil)
	require.Equal(t, http.StatusNotFound, status)
	require.Equal(t, "Resource not found", body["error"])
}

func TestListLifecycle(t *testing.T) {
	app, _ := newTestApp(t, nil)

	status, body := request(t, app, http.MethodPost, "/api/v1/lists", fiber.Map{
		"name":      "Slow Cinema",
		"is_public": false,
	}, nil)
	require.Equal(t, http.StatusCreated, status)
	listID := body["list"].(map[string]interface{})["id"].(string)

	status, _ = request(t, app, http.MethodPost, "/api/v1/lists/"+listID+"/items", fiber.Map{
		"id":    "42",
		"title": "Test Film",
	}, nil)
	require.Equal(t, http.StatusCreated, status)

	status, body = request(t, app, http.MethodGet, "/api/v1/lists/"+listID, nil, nil)
	require.Equal(t, http.StatusOK, status)
	items := body["list"].(map[string]interface{})["items"].([]interface{})
	require.Len(t, items, 1)

	// A private list is invisible to anyone but its owner.
	status, _ = request(t, app, http.MethodGet, "/api/v1/lists/"+listID, nil, map[string]string{"X-User-ID": "2"})
	require.Equal(t, http.StatusForbidden, status)

	status, _ = request(t, app, http.MethodPatch, "/api/v1/lists/"+listID, fiber.Map{
		"name": "Stolen",
	}, map[string]string{"X-User-ID": "2"})
	require.Equal(t, http.StatusForbidden, status)

	status, _ = request(t, app, http.MethodDelete, "/api/v1/lists/"+listID+"/items/42", nil, nil)
	require.Equal(t, http.StatusOK, status)

	status, _ = request(t, app, http.MethodDelete, "/api/v1/lists/"+listID, nil, nil)
	require.Equal(t, http.StatusOK, status)

	status, _ = request(t, app, http.MethodGet, "/api/v1/lists/"+listID, nil, nil)
	require.Equal(t, http.StatusNotFound, status)
}

func TestUpdateProfile(t *testing.T) {
	app, _ := newTestApp(t, nil)

	status, body := request(t, app, http.MethodPatch, "/api/v1/me", fiber.Map{
		"bio": "I watch too many movies.",
	}, nil)
	require.Equal(t, http.StatusOK, status)
	user := body["user"].(map[string]interface{})
	require.Equal(t, "I watch too many movies.", user["bio"])
	require.Equal(t, "filmfriend", user["username"])

	status, _ = request(t, app, http.MethodPatch, "/api/v1/me", fiber.Map{}, nil)
	require.Equal(t, http.StatusBadRequest, status)

	status, _ = request(t, app, http.MethodPatch, "/api/v1/me", fiber.Map{
		"username": "x",
	}, nil)
	require.Equal(t, http.StatusBadRequest, status)
}

func TestRecommendationsUnconfigured(t *testing.T) {
	app, _ := newTestApp(t, nil)

	status, body := request(t, app, http.MethodPost, "/api/v1/recommendations", fiber.Map{
		"recommendation_type": "WATCH_NEXT",
	}, nil)
	require.Equal(t, http.StatusServiceUnavailable, status)
	require.Equal(t, "Recommendations are not configured", body["error"])
}

func TestRecommendationsEndToEnd(t *testing.T) {
	engine := ai.NewEngine(fixedModel{response: `{"suggestedMovies": ["Arrival", "Moon"]}`})
	app, _ := newTestApp(t, engine)

	// Give the profile something to chew on.
	status, _ := request(t, app, http.MethodPut, "/api/v1/movies/42/interaction", fiber.Map{
		"movie":  fiber.Map{"title": "Test Film"},
		"liked":  true,
		"status": "watched",
	}, nil)
	require.Equal(t, http.StatusOK, status)

	status, body := request(t, app, http.MethodPost, "/api/v1/recommendations", fiber.Map{
		"recommendation_type": "WATCH_NEXT",
		"taste_description":   "Slow-burn science fiction.",
	}, nil)
	require.Equal(t, http.StatusOK, status)
	recs := body["recommendations"].(map[string]interface{})
	require.Len(t, recs["suggestedMovies"].([]interface{}), 2)

	status, _ = request(t, app, http.MethodPost, "/api/v1/recommendations", fiber.Map{
		"recommendation_type": "BINGE_FOREVER",
	}, nil)
	require.Equal(t, http.StatusBadRequest, status)
}

func TestListSuggestionsEndToEnd(t *testing.T) {
	engine := ai.NewEngine(fixedModel{response: `{"suggestedMovies": ["Le Cercle Rouge"]}`})
	app, _ := newTestApp(t, engine)

	status, body := request(t, app, http.MethodPost, "/api/v1/lists", fiber.Map{
		"name": "Heist Classics",
	}, nil)
	require.Equal(t, http.StatusCreated, status)
	listID := body["list"].(map[string]interface{})["id"].(string)

	status, _ = request(t, app, http.MethodPost, "/api/v1/lists/"+listID+"/items", fiber.Map{
		"id":    "7",
		"title": "Rififi",
	}, nil)
	require.Equal(t, http.StatusCreated, status)

	status, body = request(t, app, http.MethodPost, "/api/v1/lists/"+listID+"/suggestions", nil, nil)
	require.Equal(t, http.StatusOK, status)
	suggestions := body["suggestions"].(map[string]interface{})
	require.Equal(t, []interface{}{"Le Cercle Rouge"}, suggestions["suggestedMovies"].([]interface{}))
}
