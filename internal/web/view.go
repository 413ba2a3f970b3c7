package web

import (
	"context"
	"html/template"

	"github.com/gin-gonic/gin"

	"github.com/pageza/recipebox/frontend/internal/render"
	"github.com/pageza/recipebox/frontend/internal/service"
	"github.com/pageza/recipebox/frontend/internal/types"
)

// pageView collects what one request's operation does to the page
type pageView struct {
	cards  template.HTML
	alerts []string
	form   render.FormValues
}

func (v *pageView) Replace(html template.HTML) {
	v.cards = html
}

func (v *pageView) Notify(message string) {
	v.alerts = append(v.alerts, message)
}

// ClearForm drops the submitted values but keeps the selected category,
// which the creation form never resets
func (v *pageView) ClearForm() {
	v.form = render.FormValues{Category: v.form.Category}
}

// formEditor answers the edit prompt with the values posted by the inline
// edit form. A cancel button, or a missing field, cancels the edit.
type formEditor struct {
	c *gin.Context
}

func (e formEditor) Prompt(_ context.Context, _ types.Recipe) (types.RecipeEdit, error) {
	if e.c.PostForm("action") == "cancel" {
		return types.RecipeEdit{}, service.ErrUserCancelled
	}

	title, okTitle := e.c.GetPostForm("title")
	ingredients, okIngredients := e.c.GetPostForm("ingredients")
	instructions, okInstructions := e.c.GetPostForm("instructions")
	if !okTitle || !okIngredients || !okInstructions {
		return types.RecipeEdit{}, service.ErrUserCancelled
	}

	return types.RecipeEdit{
		Title:        title,
		Ingredients:  ingredients,
		Instructions: instructions,
	}, nil
}
