package ai

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/filmfriend/filmfriend/pkg/utils"
)

var (
	// ErrInvalidInput is returned when a request fails schema validation
	// before any model call is made.
	ErrInvalidInput = errors.New("invalid recommendation input")
	// ErrInvalidOutput is returned when the model's response does not
	// conform to the output schema. There is no fallback heuristic.
	ErrInvalidOutput = errors.New("model output does not conform to schema")
)

// Engine runs the recommendation flows against a Model.
type Engine struct {
	model    Model
	validate *utils.Validator
}

func NewEngine(model Model) *Engine {
	return &Engine{model: model, validate: utils.NewValidator()}
}

// GetRecommendations performs one of the recommendation tasks selected by
// the input's type discriminator.
func (e *Engine) GetRecommendations(ctx context.Context, in RecommendationInput) (*RecommendationOutput, error) {
	if verr := e.validate.Validate(in); verr != nil {
		return nil, fmt.Errorf("%w: %s", ErrInvalidInput, firstValidationMsg(verr))
	}
	if in.RecommendationType == TypeListSuggestions {
		if in.Context == nil || in.Context.ListName == "" {
			return nil, fmt.Errorf("%w: context.list_name is required for LIST_SUGGESTIONS", ErrInvalidInput)
		}
	}
	if in.Context == nil {
		in.Context = &RecommendationContext{}
	}

	prompt, err := renderPrompt(recommendationTmpl, in)
	if err != nil {
		return nil, err
	}

	raw, err := e.model.Generate(ctx, prompt)
	if err != nil {
		return nil, err
	}

	var out RecommendationOutput
	if err := decodeModelJSON(raw, &out); err != nil {
		return nil, err
	}
	if verr := e.validate.Validate(out); verr != nil {
		return nil, fmt.Errorf("%w: %s", ErrInvalidOutput, firstValidationMsg(verr))
	}

	switch in.RecommendationType {
	case TypeSimilarUsers:
		if len(out.SimilarUsers) == 0 {
			return nil, fmt.Errorf("%w: similarUsers is empty", ErrInvalidOutput)
		}
	default:
		if len(out.SuggestedMovies) == 0 {
			return nil, fmt.Errorf("%w: suggestedMovies is empty", ErrInvalidOutput)
		}
	}

	return &out, nil
}

// GenerateListSuggestions suggests movies to add to a single list.
func (e *Engine) GenerateListSuggestions(ctx context.Context, in ListSuggestionsInput) (*ListSuggestionsOutput, error) {
	if verr := e.validate.Validate(in); verr != nil {
		return nil, fmt.Errorf("%w: %s", ErrInvalidInput, firstValidationMsg(verr))
	}

	prompt, err := renderPrompt(listSuggestionsTmpl, in)
	if err != nil {
		return nil, err
	}

	raw, err := e.model.Generate(ctx, prompt)
	if err != nil {
		return nil, err
	}

	var out ListSuggestionsOutput
	if err := decodeModelJSON(raw, &out); err != nil {
		return nil, err
	}
	if verr := e.validate.Validate(out); verr != nil {
		return nil, fmt.Errorf("%w: %s", ErrInvalidOutput, firstValidationMsg(verr))
	}

	return &out, nil
}

// decodeModelJSON unmarshals a model response, tolerating markdown code
// fences that models sometimes wrap JSON in.
func decodeModelJSON(raw string, dest interface{}) error {
	trimmed := strings.TrimSpace(raw)
	trimmed = strings.TrimPrefix(trimmed, "```json")
	trimmed = strings.TrimPrefix(trimmed, "```")
	trimmed = strings.TrimSuffix(trimmed, "```")
	trimmed = strings.TrimSpace(trimmed)

	if err := json.Unmarshal([]byte(trimmed), dest); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidOutput, err)
	}
	return nil
}

func firstValidationMsg(verr *utils.ErrorResponse) string {
	if verr == nil || len(verr.Errors) == 0 {
		return "validation failed"
	}
	return verr.Errors[0].Msg
}
