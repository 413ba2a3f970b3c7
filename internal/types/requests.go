package types

import (
	"fmt"
	"io"
	"strings"
)

// ImageUpload is an image file attached to a new recipe
type ImageUpload struct {
	Filename string
	Content  io.Reader
}

// NewRecipe holds the fields submitted by the creation form
type NewRecipe struct {
	Title        string
	Ingredients  string
	Instructions string
	Category     string
	Image        *ImageUpload
}

// RecipeEdit holds the three fields that can be changed by an edit
type RecipeEdit struct {
	Title        string
	Ingredients  string
	Instructions string
}

// MissingFieldsError is returned when required creation fields are blank
type MissingFieldsError struct {
	Fields []string
}

func (e *MissingFieldsError) Error() string {
	return fmt.Sprintf("missing required fields: %s", strings.Join(e.Fields, ", "))
}

// Validate performs the presence checks on a new recipe
func (n NewRecipe) Validate() error {
	var missing []string
	if strings.TrimSpace(n.Title) == "" {
		missing = append(missing, "title")
	}
	if strings.TrimSpace(n.Ingredients) == "" {
		missing = append(missing, "ingredients")
	}
	if strings.TrimSpace(n.Instructions) == "" {
		missing = append(missing, "instructions")
	}
	if n.Image == nil || n.Image.Content == nil || strings.TrimSpace(n.Image.Filename) == "" {
		missing = append(missing, "image")
	}
	if strings.TrimSpace(n.Category) == "" {
		missing = append(missing, "category")
	}
	if len(missing) > 0 {
		return &MissingFieldsError{Fields: missing}
	}
	return nil
}
