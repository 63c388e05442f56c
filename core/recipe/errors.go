package recipe

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors for a JSON-LD block that could not be decoded.
// ErrSyntax means the text was not JSON at all; ErrShape means it was JSON
// but some value matched none of the accepted shapes.
var (
	ErrSyntax = errors.New("malformed JSON")
	ErrShape  = errors.New("unexpected JSON shape")
)

// ShapeError reports a field whose JSON value matched none of its
// accepted shapes.
type ShapeError struct {
	Field string
	Want  []string
	Got   string
}

func (e *ShapeError) Error() string {
	return fmt.Sprintf("%s: want %s, got %s", e.Field, strings.Join(e.Want, " or "), e.Got)
}

// Unwrap lets callers match any ShapeError with errors.Is(err, ErrShape).
func (e *ShapeError) Unwrap() error {
	return ErrShape
}

func shapeError(field string, data []byte, want ...string) *ShapeError {
	return &ShapeError{Field: field, Want: want, Got: jsonKind(data)}
}

// jsonKind names the kind of a raw JSON value from its first token.
func jsonKind(data []byte) string {
	trimmed := strings.TrimSpace(string(data))
	if trimmed == "" {
		return "nothing"
	}
	switch trimmed[0] {
	case '{':
		return "object"
	case '[':
		return "array"
	case '"':
		return "string"
	case 't', 'f':
		return "boolean"
	case 'n':
		return "null"
	default:
		return "number"
	}
}

// classify maps an encoding/json error onto ErrSyntax or ErrShape.
func classify(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, ErrShape) {
		return err
	}
	var syntaxErr *json.SyntaxError
	if errors.As(err, &syntaxErr) {
		return fmt.Errorf("%w: %v", ErrSyntax, err)
	}
	return fmt.Errorf("%w: %v", ErrShape, err)
}
