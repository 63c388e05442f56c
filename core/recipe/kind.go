package recipe

import (
	"encoding/json"
	"slices"
)

// Kind is a schema.org @type tag. Markup carries it either as a single
// name or as a list of names; the list form is kept so it encodes back
// the way it arrived.
type Kind struct {
	names []string
	list  bool
}

// TypeName returns a single-name type tag.
func TypeName(name string) Kind {
	return Kind{names: []string{name}}
}

// TypeList returns a list type tag.
func TypeList(names ...string) Kind {
	if names == nil {
		names = []string{}
	}
	return Kind{names: names, list: true}
}

// IsList reports whether the tag was written as a JSON array.
func (k Kind) IsList() bool {
	return k.list
}

// Names returns the type names in markup order.
func (k Kind) Names() []string {
	return slices.Clone(k.names)
}

// Has reports whether name is the tag (single form) or one of its members
// (list form).
func (k Kind) Has(name string) bool {
	return slices.Contains(k.names, name)
}

func (k *Kind) UnmarshalJSON(data []byte) error {
	var name string
	if err := json.Unmarshal(data, &name); err == nil {
		*k = TypeName(name)
		return nil
	}
	if names, ok := decodeList[string](data); ok {
		*k = TypeList(names...)
		return nil
	}
	return shapeError("@type", data, "string", "list of strings")
}

func (k Kind) MarshalJSON() ([]byte, error) {
	if k.list {
		return json.Marshal(TypeList(k.names...).names)
	}
	if len(k.names) == 0 {
		return json.Marshal("")
	}
	return json.Marshal(k.names[0])
}
