package pitch

import "github.com/abhisek/cinematch/internal/llm"

// Schema is the structured output requested from the model.
var Schema = &llm.Schema{
	Name:        "movie-pitches",
	Description: "One short pitch per movie explaining why it suits the viewer",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"pitches": map[string]any{
				"type": "array",
				"items": map[string]any{
					"type": "object",
					"properties": map[string]any{
						"id": map[string]any{
							"type":        "integer",
							"description": "The movie id from the list",
						},
						"pitch": map[string]any{
							"type":        "string",
							"description": "One sentence, at most 30 words, tying the movie to the viewer's temperament",
						},
					},
					"required":             []any{"id", "pitch"},
					"additionalProperties": false,
				},
			},
		},
		"required":             []any{"pitches"},
		"additionalProperties": false,
	},
}
