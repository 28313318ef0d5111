package ai

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

// fakeModel records the last prompt and returns a canned response.
type fakeModel struct {
	response string
	err      error
	prompt   string
}

func (f *fakeModel) Generate(_ context.Context, prompt string) (string, error) {
	f.prompt = prompt
	return f.response, f.err
}

func watchNextInput() RecommendationInput {
	return RecommendationInput{
		UserProfile: UserProfile{
			WatchedMovies:    []MovieRef{{Title: "Alien", Year: 1979}},
			LikedMovies:      []MovieRef{{Title: "Blade Runner", Year: 1982, Genres: []string{"Sci-Fi"}}},
			TasteDescription: "Slow-burn science fiction.",
		},
		RecommendationType: TypeWatchNext,
	}
}

func TestGetRecommendationsWatchNext(t *testing.T) {
	model := &fakeModel{response: `{"suggestedMovies": ["Arrival", "Moon", "Sunshine"]}`}
	engine := NewEngine(model)

	out, err := engine.GetRecommendations(context.Background(), watchNextInput())
	require.NoError(t, err)
	require.Equal(t, []string{"Arrival", "Moon", "Sunshine"}, out.SuggestedMovies)
	require.Empty(t, out.SimilarUsers)

	// The prompt must carry the profile, not just the task name.
	require.Contains(t, model.prompt, "Blade Runner")
	require.Contains(t, model.prompt, "Slow-burn science fiction.")
	require.Contains(t, model.prompt, "suggestedMovies")
}

func TestGetRecommendationsSimilarUsers(t *testing.T) {
	model := &fakeModel{response: `{"similarUsers": [{"username": "noirfan42", "reason": "Also rewatches Blade Runner."}]}`}
	engine := NewEngine(model)

	in := watchNextInput()
	in.RecommendationType = TypeSimilarUsers

	out, err := engine.GetRecommendations(context.Background(), in)
	require.NoError(t, err)
	require.Len(t, out.SimilarUsers, 1)
	require.Equal(t, "noirfan42", out.SimilarUsers[0].Username)
}

func TestGetRecommendationsEmptyOutputRejected(t *testing.T) {
	model := &fakeModel{response: `{"similarUsers": []}`}
	engine := NewEngine(model)

	in := watchNextInput()
	in.RecommendationType = TypeSimilarUsers

	_, err := engine.GetRecommendations(context.Background(), in)
	require.ErrorIs(t, err, ErrInvalidOutput)

	model.response = `{"suggestedMovies": []}`
	_, err = engine.GetRecommendations(context.Background(), watchNextInput())
	require.ErrorIs(t, err, ErrInvalidOutput)
}

func TestGetRecommendationsInputValidation(t *testing.T) {
	model := &fakeModel{response: `{"suggestedMovies": ["Arrival"]}`}
	engine := NewEngine(model)

	in := watchNextInput()
	in.RecommendationType = "SOMETHING_ELSE"
	_, err := engine.GetRecommendations(context.Background(), in)
	require.ErrorIs(t, err, ErrInvalidInput)

	// LIST_SUGGESTIONS needs a list name in the context.
	in = watchNextInput()
	in.RecommendationType = TypeListSuggestions
	_, err = engine.GetRecommendations(context.Background(), in)
	require.ErrorIs(t, err, ErrInvalidInput)

	// The model must not have been called for invalid inputs.
	require.Empty(t, model.prompt)

	in.Context = &RecommendationContext{ListName: "Heist Classics", ListMovies: []MovieRef{{Title: "Rififi"}}}
	out, err := engine.GetRecommendations(context.Background(), in)
	require.NoError(t, err)
	require.NotEmpty(t, out.SuggestedMovies)
	require.Contains(t, model.prompt, "Heist Classics")
}

func TestGetRecommendationsCodeFenceTolerated(t *testing.T) {
	model := &fakeModel{response: "```json\n{\"suggestedMovies\": [\"Arrival\"]}\n```"}
	engine := NewEngine(model)

	out, err := engine.GetRecommendations(context.Background(), watchNextInput())
	require.NoError(t, err)
	require.Equal(t, []string{"Arrival"}, out.SuggestedMovies)
}

func TestGetRecommendationsModelErrorPropagates(t *testing.T) {
	modelErr := errors.New("upstream unavailable")
	engine := NewEngine(&fakeModel{err: modelErr})

	_, err := engine.GetRecommendations(context.Background(), watchNextInput())
	require.ErrorIs(t, err, modelErr)
}

func TestGetRecommendationsMalformedOutput(t *testing.T) {
	engine := NewEngine(&fakeModel{response: "I would suggest Arrival."})

	_, err := engine.GetRecommendations(context.Background(), watchNextInput())
	require.ErrorIs(t, err, ErrInvalidOutput)
}

func TestGenerateListSuggestions(t *testing.T) {
	model := &fakeModel{response: `{"suggestedMovies": ["Le Cercle Rouge"]}`}
	engine := NewEngine(model)

	out, err := engine.GenerateListSuggestions(context.Background(), ListSuggestionsInput{
		ListName:    "Heist Classics",
		MovieTitles: []string{"Rififi", "The Killing"},
		UserTaste:   "French crime cinema.",
	})
	require.NoError(t, err)
	require.Equal(t, []string{"Le Cercle Rouge"}, out.SuggestedMovies)

	require.Contains(t, model.prompt, "Heist Classics")
	require.Contains(t, model.prompt, "Rififi")
	require.True(t, strings.Contains(model.prompt, "French crime cinema."))
}

func TestGenerateListSuggestionsValidation(t *testing.T) {
	engine := NewEngine(&fakeModel{response: `{"suggestedMovies": ["Le Cercle Rouge"]}`})

	_, err := engine.GenerateListSuggestions(context.Background(), ListSuggestionsInput{})
	require.ErrorIs(t, err, ErrInvalidInput)

	engine = NewEngine(&fakeModel{response: `{"suggestedMovies": []}`})
	_, err = engine.GenerateListSuggestions(context.Background(), ListSuggestionsInput{ListName: "Heist Classics"})
	require.ErrorIs(t, err, ErrInvalidOutput)
}
