package ai

import (
	"strings"
	"text/template"
)

var promptFuncs = template.FuncMap{
	"titles": func(movies []MovieRef) string {
		parts := make([]string, len(movies))
		for i, m := range movies {
			parts[i] = m.Title
		}
		return strings.Join(parts, ", ")
	},
	"join": func(items []string) string {
		return strings.Join(items, ", ")
	},
}

var recommendationTmpl = template.Must(template.New("recommendation").Funcs(promptFuncs).Parse(
	`You are a world-class movie recommendation engine named FilmFriend AI.
Your goal is to provide personalized and insightful recommendations based on a user's profile.

User Profile:
- Taste: {{.UserProfile.TasteDescription}}
- Watched Movies: {{titles .UserProfile.WatchedMovies}}
- Liked Movies: {{titles .UserProfile.LikedMovies}}
{{if eq .RecommendationType "LIST_SUGGESTIONS"}}
Task: Suggest movies to add to a specific list.
List Name: {{.Context.ListName}}
Movies already in the list: {{titles .Context.ListMovies}}

Based on the movies already in the list and the user's general taste, suggest 3-5 new movies that would be a perfect fit.
The suggestions should be complementary and enhance the theme of the list.
Return ONLY the movie titles in the 'suggestedMovies' array.
{{end}}{{if eq .RecommendationType "WATCH_NEXT"}}
Task: Recommend movies for the user to watch next.

Based on the user's entire profile (watched, liked, lists), suggest 5 movies they would likely enjoy.
Provide a diverse set of recommendations that touch upon different aspects of their taste.
Do not suggest movies that are already in their watched or liked history.
Return ONLY the movie titles in the 'suggestedMovies' array.
{{end}}{{if eq .RecommendationType "SIMILAR_USERS"}}
Task: Find other users with similar tastes.

Analyze the user's profile and invent 3 fictional user profiles who would be great "film friends" for this user.
For each fictional user, provide a creative username and a short, compelling reason explaining why their tastes align.
Example reason: "Like you, @classic_connoisseur appreciates timeless black-and-white cinema but also shares your love for modern sci-fi epics."
Return the users in the 'similarUsers' array.
{{end}}
Respond with a single JSON object matching this schema:
{"suggestedMovies": ["title", ...], "similarUsers": [{"username": "...", "reason": "..."}, ...]}
Populate only the field relevant to the task.`))

var listSuggestionsTmpl = template.Must(template.New("listSuggestions").Funcs(promptFuncs).Parse(
	`You are a movie expert. Given the name of a movie list and the movies currently in it, suggest other movies that would be a good fit for the list, based on user preference.

List Name: {{.ListName}}
Existing Movies: {{join .MovieTitles}}
User Taste: {{.UserTaste}}

Suggest movies similar to the movies in the existing list. Return ONLY movie titles in the suggestedMovies array.
Respond with a single JSON object: {"suggestedMovies": ["title", ...]}`))

func renderPrompt(tmpl *template.Template, data interface{}) (string, error) {
	var sb strings.Builder
	if err := tmpl.Execute(&sb, data); err != nil {
		return "", err
	}
	return sb.String(), nil
}
