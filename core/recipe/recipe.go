// Package recipe decodes schema.org Recipe data from JSON-LD blocks.
//
// JSON-LD in the wild is loosely typed: @type may be a string or a list,
// image may be a URL or an ImageObject, recipeYield comes in four shapes,
// and a block may hold one object or an array of them. The types here
// accept each of those shapes explicitly and reject anything else, so a
// block either decodes into well-typed candidates or fails as a whole.
package recipe

import (
	"encoding/json"
	"strings"
)

// Accepted @context values and the @type a recipe must carry.
const (
	SchemaOrgHTTPS = "https://schema.org"
	SchemaOrgHTTP  = "http://schema.org"
	RecipeType     = "Recipe"
)

// Recipe is a schema.org Recipe as found in JSON-LD markup. Every field is
// optional; nil pointers and nil slices are absent and are left out when
// encoding.
type Recipe struct {
	Context       *string       `json:"@context,omitempty"`
	Type          *Kind         `json:"@type,omitempty"`
	CookTime      *string       `json:"cookTime,omitempty"`
	DatePublished *string       `json:"datePublished,omitempty"`
	Description   *string       `json:"description,omitempty"`
	Image         *Image        `json:"image,omitempty"`
	Ingredients   []string      `json:"recipeIngredient,omitzero"`
	Name          *string       `json:"name,omitempty"`
	Instructions  []Instruction `json:"recipeInstructions,omitzero"`
	Yield         *Yield        `json:"recipeYield,omitempty"`
}

// recipeKeys are the JSON-LD keys a Recipe reads. Any other key, including
// a differently cased spelling of one of these, is ignored.
var recipeKeys = []string{
	"@context", "@type", "cookTime", "datePublished", "description",
	"image", "recipeIngredient", "name", "recipeInstructions", "recipeYield",
}

type recipeFields Recipe

func (r *Recipe) UnmarshalJSON(data []byte) error {
	if jsonKind(data) != "object" {
		return shapeError("record", data, "object")
	}
	data, err := exactKeys(data, recipeKeys...)
	if err != nil {
		return err
	}
	*r = Recipe{}
	aux := struct {
		*recipeFields
		Ingredients json.RawMessage `json:"recipeIngredient"`
	}{recipeFields: (*recipeFields)(r)}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	if aux.Ingredients != nil && jsonKind(aux.Ingredients) != "null" {
		ingredients, ok := decodeList[string](aux.Ingredients)
		if !ok {
			return shapeError("recipeIngredient", aux.Ingredients, "list of strings")
		}
		r.Ingredients = ingredients
	}
	return nil
}

// Valid reports whether r is a schema.org Recipe: @context is exactly
// https://schema.org or http://schema.org and @type is or contains
// "Recipe".
func (r *Recipe) Valid() bool {
	if r == nil || r.Context == nil || r.Type == nil {
		return false
	}
	switch *r.Context {
	case SchemaOrgHTTPS, SchemaOrgHTTP:
	default:
		return false
	}
	return r.Type.Has(RecipeType)
}

// Instruction is one recipeInstructions step. Both @type and text must be
// present.
type Instruction struct {
	Type string `json:"@type"`
	Text string `json:"text"`
}

func (in *Instruction) UnmarshalJSON(data []byte) error {
	data, err := exactKeys(data, "@type", "text")
	if err != nil {
		return err
	}
	var raw struct {
		Type *string `json:"@type"`
		Text *string `json:"text"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	if raw.Type == nil {
		return &ShapeError{Field: "recipeInstructions.@type", Want: []string{"string"}, Got: "nothing"}
	}
	if raw.Text == nil {
		return &ShapeError{Field: "recipeInstructions.text", Want: []string{"string"}, Got: "nothing"}
	}
	*in = Instruction{Type: *raw.Type, Text: *raw.Text}
	return nil
}

// Script is the decoded body of one JSON-LD block: a single record or an
// array of records.
type Script struct {
	Records []Recipe
	Array   bool

	// Graph holds the raw members of a single record's @graph, if any.
	Graph []json.RawMessage
	// GraphErr is set when a single record carries an @graph that is not
	// an array. The record itself still decodes.
	GraphErr error
}

func (s *Script) UnmarshalJSON(data []byte) error {
	switch jsonKind(data) {
	case "object":
		var single Recipe
		if err := json.Unmarshal(data, &single); err != nil {
			return err
		}
		*s = Script{Records: []Recipe{single}}
		var fields map[string]json.RawMessage
		if err := json.Unmarshal(data, &fields); err != nil {
			return err
		}
		if raw, ok := fields["@graph"]; ok {
			if jsonKind(raw) != "array" {
				s.GraphErr = shapeError("@graph", raw, "array")
				return nil
			}
			if err := json.Unmarshal(raw, &s.Graph); err != nil {
				return err
			}
		}
		return nil
	case "array":
		var many []Recipe
		if err := json.Unmarshal(data, &many); err != nil {
			return err
		}
		*s = Script{Records: many, Array: true}
		return nil
	default:
		return shapeError("payload", data, "object", "array")
	}
}

// DecodeScript decodes the text of one JSON-LD block. Errors wrap
// ErrSyntax or ErrShape.
func DecodeScript(text string) (Script, error) {
	var s Script
	if err := json.Unmarshal([]byte(strings.TrimSpace(text)), &s); err != nil {
		return Script{}, classify(err)
	}
	return s, nil
}

// DecodeRecipe decodes a single record.
func DecodeRecipe(data []byte) (Recipe, error) {
	var r Recipe
	if err := json.Unmarshal(data, &r); err != nil {
		return Recipe{}, classify(err)
	}
	return r, nil
}

// Str returns a pointer to s, for building optional fields.
func Str(s string) *string {
	return &s
}

// Deref returns *s, or "" when s is nil.
func Deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
