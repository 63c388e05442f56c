package recipe

import (
	"encoding/json"
	"strconv"
	"strings"
)

// YieldShape tells which of the accepted recipeYield encodings was used.
type YieldShape uint8

const (
	YieldText YieldShape = iota + 1
	YieldNumber
	YieldNumbers
	YieldTexts
)

// Yield is a recipeYield value. Sites write servings as "4 servings", 4,
// [4, 6] or ["4", "6 servings"]; the value is stored as written and never
// interpreted.
type Yield struct {
	Shape   YieldShape
	Text    string
	Number  int
	Numbers []int
	Texts   []string
}

// TextYield returns a yield written as a single string.
func TextYield(text string) Yield {
	return Yield{Shape: YieldText, Text: text}
}

// NumberYield returns a yield written as a single integer.
func NumberYield(n int) Yield {
	return Yield{Shape: YieldNumber, Number: n}
}

// NumbersYield returns a yield written as a list of integers.
func NumbersYield(ns ...int) Yield {
	if ns == nil {
		ns = []int{}
	}
	return Yield{Shape: YieldNumbers, Numbers: ns}
}

// TextsYield returns a yield written as a list of strings.
func TextsYield(texts ...string) Yield {
	if texts == nil {
		texts = []string{}
	}
	return Yield{Shape: YieldTexts, Texts: texts}
}

// UnmarshalJSON tries string, integer, integer list, string list in that
// order and keeps the first shape that decodes.
func (y *Yield) UnmarshalJSON(data []byte) error {
	var text string
	if err := json.Unmarshal(data, &text); err == nil {
		*y = TextYield(text)
		return nil
	}
	var n int
	if err := json.Unmarshal(data, &n); err == nil {
		*y = NumberYield(n)
		return nil
	}
	if ns, ok := decodeList[int](data); ok {
		*y = NumbersYield(ns...)
		return nil
	}
	if texts, ok := decodeList[string](data); ok {
		*y = TextsYield(texts...)
		return nil
	}
	return shapeError("recipeYield", data, "string", "integer", "list of integers", "list of strings")
}

func (y Yield) MarshalJSON() ([]byte, error) {
	switch y.Shape {
	case YieldNumber:
		return json.Marshal(y.Number)
	case YieldNumbers:
		return json.Marshal(NumbersYield(y.Numbers...).Numbers)
	case YieldTexts:
		return json.Marshal(TextsYield(y.Texts...).Texts)
	default:
		return json.Marshal(y.Text)
	}
}

// String renders the yield for display.
func (y Yield) String() string {
	switch y.Shape {
	case YieldNumber:
		return strconv.Itoa(y.Number)
	case YieldNumbers:
		parts := make([]string, len(y.Numbers))
		for i, n := range y.Numbers {
			parts[i] = strconv.Itoa(n)
		}
		return strings.Join(parts, ", ")
	case YieldTexts:
		return strings.Join(y.Texts, ", ")
	default:
		return y.Text
	}
}
