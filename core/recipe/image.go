package recipe

import "encoding/json"

// Image is a recipe image: a bare URL or an ImageObject-like record.
// Object is non-nil exactly when the markup used the record form.
type Image struct {
	URL    string
	Object Record
}

// IsObject reports whether the image was written as a record.
func (i Image) IsObject() bool {
	return i.Object != nil
}

// Href returns the image location: the URL form itself, or the record's
// "url" (falling back to "contentUrl") when it is a string.
func (i Image) Href() string {
	if !i.IsObject() {
		return i.URL
	}
	for _, key := range []string{"url", "contentUrl"} {
		if v, ok := i.Object.Get(key); ok && v.Kind == ValueString {
			return v.String
		}
	}
	return ""
}

func (i *Image) UnmarshalJSON(data []byte) error {
	var url string
	if err := json.Unmarshal(data, &url); err == nil {
		*i = Image{URL: url}
		return nil
	}
	if jsonKind(data) == "object" {
		var rec Record
		if err := rec.UnmarshalJSON(data); err != nil {
			return err
		}
		*i = Image{Object: rec}
		return nil
	}
	return shapeError("image", data, "string", "object")
}

func (i Image) MarshalJSON() ([]byte, error) {
	if i.IsObject() {
		return i.Object.MarshalJSON()
	}
	return json.Marshal(i.URL)
}
