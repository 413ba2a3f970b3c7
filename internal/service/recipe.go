package service

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/pageza/recipebox/frontend/internal/types"
)

// RecipeClient turns user actions into catalog API calls and reflects the
// results into a View. It keeps no state between calls: every operation is
// one request followed by a render or a list refresh.
type RecipeClient struct {
	api      RecipeAPI
	renderer CardRenderer
}

// NewRecipeClient creates a new RecipeClient instance
func NewRecipeClient(api RecipeAPI, renderer CardRenderer) *RecipeClient {
	return &RecipeClient{
		api:      api,
		renderer: renderer,
	}
}

// List shows every recipe, or the recipes matching query when it is not empty
func (c *RecipeClient) List(ctx context.Context, view View, query string) error {
	var (
		recipes []types.Recipe
		err     error
	)
	if query == "" {
		recipes, err = c.api.List(ctx)
	} else {
		recipes, err = c.api.Search(ctx, query)
	}
	return c.show(view, recipes, err, "fetching recipes", "Failed to load recipes")
}

// Filter shows the recipes in category
func (c *RecipeClient) Filter(ctx context.Context, view View, category string) error {
	recipes, err := c.api.Filter(ctx, category)
	return c.show(view, recipes, err, "filtering recipes", "Failed to filter recipes")
}

// show renders the result of a list-style call. The container is only
// replaced once the whole list has rendered.
func (c *RecipeClient) show(view View, recipes []types.Recipe, err error, activity, failure string) error {
	if err == nil {
		html, renderErr := c.renderer.Cards(recipes)
		if renderErr == nil {
			view.Replace(html)
			return nil
		}
		err = renderErr
	}
	return c.fail(view, err, activity, failure)
}

// Create submits a new recipe. On success the list is refreshed and the
// creation form cleared; on failure the form is left as it was.
func (c *RecipeClient) Create(ctx context.Context, view View, in types.NewRecipe) error {
	if err := in.Validate(); err != nil {
		return c.fail(view, err, "adding recipe", "Failed to add recipe")
	}

	created, err := c.api.Create(ctx, in)
	if err != nil {
		return c.fail(view, err, "adding recipe", "Failed to add recipe")
	}
	log.Printf("[RecipeClient] Added recipe %s (%q)", created.ID, created.Title)

	_ = c.List(ctx, view, "")
	view.ClearForm()
	return nil
}

// Remove deletes a recipe and refreshes the list
func (c *RecipeClient) Remove(ctx context.Context, view View, id types.RecipeID) error {
	if err := c.api.Delete(ctx, id); err != nil {
		return c.fail(view, err, "deleting recipe", "Failed to delete recipe")
	}
	log.Printf("[RecipeClient] Deleted recipe %s", id)

	_ = c.List(ctx, view, "")
	return nil
}

// Recipe fetches the current values of a recipe so an edit form can be
// pre-filled
func (c *RecipeClient) Recipe(ctx context.Context, view View, id types.RecipeID) (*types.Recipe, error) {
	recipe, err := c.api.Get(ctx, id)
	if err != nil {
		return nil, c.fail(view, err, "fetching recipe details", "Failed to fetch recipe details for editing")
	}
	return recipe, nil
}

// Edit fetches a recipe, lets the user change its title, ingredients and
// instructions, and saves the result with the image and category untouched.
// If the editor is cancelled nothing is sent and ErrUserCancelled is
// returned without notifying the user.
func (c *RecipeClient) Edit(ctx context.Context, view View, id types.RecipeID, editor Editor) error {
	current, err := c.Recipe(ctx, view, id)
	if err != nil {
		return err
	}

	edit, err := editor.Prompt(ctx, *current)
	if errors.Is(err, ErrUserCancelled) {
		log.Printf("[RecipeClient] Edit of recipe %s cancelled", id)
		return ErrUserCancelled
	}
	if err != nil {
		return c.fail(view, err, "editing recipe", "Failed to edit recipe")
	}

	updated := current.ApplyEdit(edit)
	updated.ID = id
	if _, err := c.api.Update(ctx, updated); err != nil {
		return c.fail(view, err, "editing recipe", "Failed to edit recipe")
	}
	log.Printf("[RecipeClient] Updated recipe %s", id)

	_ = c.List(ctx, view, "")
	return nil
}

// fail logs the diagnostic, notifies the user and returns the wrapped error
func (c *RecipeClient) fail(view View, err error, activity, failure string) error {
	log.Printf("[RecipeClient] Error %s: %v", activity, err)
	view.Notify(fmt.Sprintf("%s: %v", failure, err))
	return fmt.Errorf("%s: %w", activity, err)
}
