package service

import (
	"context"
	"errors"
	"html/template"

	"github.com/pageza/recipebox/frontend/internal/types"
)

// ErrUserCancelled is returned by an Editor when the user dismisses the edit
var ErrUserCancelled = errors.New("edit cancelled by user")

// RecipeAPI defines the catalog API operations the client depends on
type RecipeAPI interface {
	List(ctx context.Context) ([]types.Recipe, error)
	Search(ctx context.Context, query string) ([]types.Recipe, error)
	Filter(ctx context.Context, category string) ([]types.Recipe, error)
	Get(ctx context.Context, id types.RecipeID) (*types.Recipe, error)
	Create(ctx context.Context, in types.NewRecipe) (*types.Recipe, error)
	Update(ctx context.Context, recipe types.Recipe) (*types.Recipe, error)
	Delete(ctx context.Context, id types.RecipeID) error
}

// CardRenderer turns a recipe list into the HTML placed in the container
type CardRenderer interface {
	Cards(recipes []types.Recipe) (template.HTML, error)
}

// View is the surface an operation reflects its outcome into
type View interface {
	// Replace swaps the whole content of the recipe container
	Replace(html template.HTML)
	// Notify shows a message the user has to acknowledge
	Notify(message string)
	// ClearForm empties the title, ingredients, instructions and image inputs
	ClearForm()
}

// Editor asks the user for new values of the editable recipe fields,
// starting from the current ones. It returns ErrUserCancelled when the
// user backs out.
type Editor interface {
	Prompt(ctx context.Context, current types.Recipe) (types.RecipeEdit, error)
}
