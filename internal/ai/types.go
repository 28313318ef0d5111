// Package ai implements the recommendation flows: a structurally validated
// profile is rendered into a natural-language prompt, sent to a hosted
// generative model, and the model's structured output is validated against
// a fixed schema. No ranking, filtering or deduplication is applied locally;
// correctness of the recommendations is entirely delegated to the model.
package ai

// MovieRef is the minimal movie shape fed into prompts.
type MovieRef struct {
	Title  string   `json:"title" validate:"required"`
	Year   int      `json:"year,omitempty"`
	Genres []string `json:"genres,omitempty"`
}

// ListRef is a named list of movies in a user's profile.
type ListRef struct {
	Name   string     `json:"name" validate:"required"`
	Movies []MovieRef `json:"movies" validate:"dive"`
}

// UserProfile describes the user's viewing history and taste.
type UserProfile struct {
	WatchedMovies    []MovieRef `json:"watched_movies" validate:"dive"`
	LikedMovies      []MovieRef `json:"liked_movies" validate:"dive"`
	MovieLists       []ListRef  `json:"movie_lists" validate:"dive"`
	TasteDescription string     `json:"taste_description"`
}

// RecommendationType selects which task the engine performs.
type RecommendationType string

const (
	TypeListSuggestions RecommendationType = "LIST_SUGGESTIONS"
	TypeWatchNext       RecommendationType = "WATCH_NEXT"
	TypeSimilarUsers    RecommendationType = "SIMILAR_USERS"
)

// RecommendationContext carries per-type context. ListName and ListMovies
// are required for LIST_SUGGESTIONS.
type RecommendationContext struct {
	ListName   string     `json:"list_name,omitempty"`
	ListMovies []MovieRef `json:"list_movies,omitempty" validate:"dive"`
}

// RecommendationInput is the request shape of the recommendation engine.
type RecommendationInput struct {
	UserProfile        UserProfile            `json:"user_profile"`
	RecommendationType RecommendationType     `json:"recommendation_type" validate:"required,oneof=LIST_SUGGESTIONS WATCH_NEXT SIMILAR_USERS"`
	Context            *RecommendationContext `json:"context,omitempty"`
}

// SimilarUser is a fictional kindred spirit invented by the model.
type SimilarUser struct {
	Username string `json:"username" validate:"required"`
	Reason   string `json:"reason" validate:"required"`
}

// RecommendationOutput is the schema the model's response must conform to.
// Which field is populated depends on the recommendation type.
type RecommendationOutput struct {
	SuggestedMovies []string      `json:"suggestedMovies,omitempty"`
	SimilarUsers    []SimilarUser `json:"similarUsers,omitempty" validate:"dive"`
}

// ListSuggestionsInput is the request shape of the standalone
// list-suggestion flow.
type ListSuggestionsInput struct {
	ListName    string   `json:"list_name" validate:"required"`
	MovieTitles []string `json:"movie_titles"`
	UserTaste   string   `json:"user_taste"`
}

// ListSuggestionsOutput holds the titles the model suggests adding.
type ListSuggestionsOutput struct {
	SuggestedMovies []string `json:"suggestedMovies" validate:"required,min=1"`
}
