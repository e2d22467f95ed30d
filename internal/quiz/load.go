package quiz

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"fmt"
	"os"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"
	"gopkg.in/yaml.v3"
)

//go:embed default.yaml
var defaultTable []byte

// tableSchema describes the shape of a quiz table file. Cross references
// (hint targets, priority members) are checked by Config.Validate.
var tableSchema = map[string]any{
	"type":     "object",
	"required": []any{"priority", "categories", "labels", "questions"},
	"properties": map[string]any{
		"priority": map[string]any{
			"type":        "array",
			"items":       map[string]any{"type": "string", "minLength": 1},
			"minItems":    NumCategories,
			"maxItems":    NumCategories,
			"uniqueItems": true,
		},
		"categories": map[string]any{
			"type": "object",
			"additionalProperties": map[string]any{
				"type":     "object",
				"required": []any{"reason", "labels"},
				"properties": map[string]any{
					"name":    map[string]any{"type": "string"},
					"reason":  map[string]any{"type": "string", "minLength": 1},
					"labels":  map[string]any{"type": "array", "items": map[string]any{"type": "string"}, "minItems": 1, "maxItems": 2},
					"default": map[string]any{"type": "string"},
					"hints": map[string]any{
						"type": "array",
						"items": map[string]any{
							"type":     "object",
							"required": []any{"question", "choice", "label", "weight"},
							"properties": map[string]any{
								"question": map[string]any{"type": "string"},
								"choice":   map[string]any{"type": "string"},
								"label":    map[string]any{"type": "string"},
								"weight":   map[string]any{"type": "integer", "minimum": 1},
							},
							"additionalProperties": false,
						},
					},
				},
				"additionalProperties": false,
			},
		},
		"labels": map[string]any{
			"type": "object",
			"additionalProperties": map[string]any{
				"type":     "object",
				"required": []any{"reason"},
				"properties": map[string]any{
					"name":   map[string]any{"type": "string"},
					"reason": map[string]any{"type": "string", "minLength": 1},
				},
				"additionalProperties": false,
			},
		},
		"questions": map[string]any{
			"type":     "array",
			"minItems": 1,
			"items": map[string]any{
				"type":     "object",
				"required": []any{"id", "prompt", "choices"},
				"properties": map[string]any{
					"id":     map[string]any{"type": "string", "minLength": 1},
					"prompt": map[string]any{"type": "string", "minLength": 1},
					"choices": map[string]any{
						"type":     "array",
						"minItems": ChoicesPerQuestion,
						"maxItems": ChoicesPerQuestion,
						"items": map[string]any{
							"type":     "object",
							"required": []any{"text", "category"},
							"properties": map[string]any{
								"text":     map[string]any{"type": "string", "minLength": 1},
								"category": map[string]any{"type": "string", "minLength": 1},
							},
							"additionalProperties": false,
						},
					},
				},
				"additionalProperties": false,
			},
		},
	},
	"additionalProperties": false,
}

var compiledSchema = sync.OnceValues(func() (*jsonschema.Schema, error) {
	// Round-trip through JSON so the compiler sees plain decoded values.
	raw, err := json.Marshal(tableSchema)
	if err != nil {
		return nil, fmt.Errorf("marshal table schema: %w", err)
	}
	doc, err := jsonschema.UnmarshalJSON(bytes.NewReader(raw))
	if err != nil {
		return nil, fmt.Errorf("parse table schema: %w", err)
	}

	c := jsonschema.NewCompiler()
	const url = "schema://quiz-table.json"
	if err := c.AddResource(url, doc); err != nil {
		return nil, fmt.Errorf("add resource: %w", err)
	}
	return c.Compile(url)
})

var defaultConfig = sync.OnceValues(func() (*Config, error) {
	return Parse(defaultTable)
})

// Default returns the embedded quiz table. It panics if the embedded table
// is invalid, which is a build defect.
func Default() *Config {
	cfg, err := defaultConfig()
	if err != nil {
		panic(fmt.Sprintf("quiz: embedded table is invalid: %v", err))
	}
	return cfg
}

// LoadFile reads and validates a quiz table from a YAML file.
func LoadFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read quiz table: %w", err)
	}
	cfg, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Parse decodes a YAML quiz table, checks it against the table schema and
// validates its cross references.
func Parse(data []byte) (*Config, error) {
	if err := validateShape(data); err != nil {
		return nil, err
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("decode quiz table: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid quiz table: %w", err)
	}
	return &cfg, nil
}

func validateShape(data []byte) error {
	var doc any
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return fmt.Errorf("parse quiz table: %w", err)
	}
	raw, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("quiz table is not JSON-compatible: %w", err)
	}
	inst, err := jsonschema.UnmarshalJSON(bytes.NewReader(raw))
	if err != nil {
		return fmt.Errorf("parse quiz table: %w", err)
	}

	schema, err := compiledSchema()
	if err != nil {
		return fmt.Errorf("compile table schema: %w", err)
	}
	if err := schema.Validate(inst); err != nil {
		return fmt.Errorf("quiz table does not match schema: %w", err)
	}
	return nil
}
