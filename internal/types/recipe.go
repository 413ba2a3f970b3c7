package types

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// RecipeID is the server-assigned identifier of a recipe. The catalog API
// issues numeric ids; the client keeps the digits as received but does not
// remember the JSON type, so a string id such as "42" is sent back as 42.
type RecipeID string

// String returns the id as it appears in URLs
func (id RecipeID) String() string {
	return string(id)
}

// MarshalJSON writes numeric ids as JSON numbers and anything else as a string
func (id RecipeID) MarshalJSON() ([]byte, error) {
	if id == "" {
		return []byte(`""`), nil
	}
	var n json.Number
	if err := json.Unmarshal([]byte(id), &n); err == nil {
		return []byte(id), nil
	}
	return json.Marshal(string(id))
}

// UnmarshalJSON accepts either a JSON number or a JSON string
func (id *RecipeID) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*id = ""
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*id = RecipeID(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("invalid recipe id %s: %w", string(data), err)
	}
	*id = RecipeID(n.String())
	return nil
}

// Recipe represents a recipe as returned by the catalog API
type Recipe struct {
	ID           RecipeID `json:"id"`
	Title        string   `json:"title"`
	Ingredients  string   `json:"ingredients"`
	Instructions string   `json:"instructions"`
	Image        string   `json:"image"`
	Category     string   `json:"category"`
}

// ApplyEdit returns a copy of the recipe with the editable fields replaced.
// The id, image and category are carried over unchanged.
func (r Recipe) ApplyEdit(edit RecipeEdit) Recipe {
	r.Title = edit.Title
	r.Ingredients = edit.Ingredients
	r.Instructions = edit.Instructions
	return r
}

// Edit returns the editable fields of the recipe
func (r Recipe) Edit() RecipeEdit {
	return RecipeEdit{
		Title:        r.Title,
		Ingredients:  r.Ingredients,
		Instructions: r.Instructions,
	}
}
