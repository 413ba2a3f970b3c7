// Package web serves the recipe catalog as server-rendered HTML pages.
package web

import (
	"context"
	"errors"
	"log"
	"mime/multipart"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/pageza/recipebox/frontend/internal/client"
	"github.com/pageza/recipebox/frontend/internal/render"
	"github.com/pageza/recipebox/frontend/internal/service"
	"github.com/pageza/recipebox/frontend/internal/types"
)

// ImageSource returns a URL an image filename can be fetched from
type ImageSource interface {
	ImageURL(ctx context.Context, filename string) (string, error)
}

// RecipeHandler maps page requests onto RecipeClient operations
type RecipeHandler struct {
	recipes    *service.RecipeClient
	renderer   *render.Renderer
	categories []string
	images     http.Handler
}

// NewRecipeHandler creates a new recipe page handler. images serves
// /images/*name and may be nil.
func NewRecipeHandler(recipes *service.RecipeClient, renderer *render.Renderer, categories []string, images http.Handler) *RecipeHandler {
	return &RecipeHandler{
		recipes:    recipes,
		renderer:   renderer,
		categories: categories,
		images:     images,
	}
}

// RegisterRoutes registers the page routes. mutating runs in front of the
// routes that change recipes.
func (h *RecipeHandler) RegisterRoutes(router gin.IRouter, mutating ...gin.HandlerFunc) {
	router.GET("/", h.Index)
	router.GET("/filter", h.Filter)
	router.GET("/recipes/:id/edit", h.EditForm)
	if h.images != nil {
		router.GET("/images/*name", gin.WrapH(h.images))
	}

	changes := router.Group("/recipes", mutating...)
	{
		changes.POST("", h.Create)
		changes.POST("/:id/delete", h.Delete)
		changes.POST("/:id/edit", h.Edit)
	}
}

// Index lists all recipes, or searches when the q parameter is set
func (h *RecipeHandler) Index(c *gin.Context) {
	query := c.Query("q")
	view := &pageView{}
	err := h.recipes.List(c.Request.Context(), view, query)
	h.respond(c, err, view, render.PageData{Query: query})
}

// Filter lists the recipes in one category
func (h *RecipeHandler) Filter(c *gin.Context) {
	view := &pageView{}
	err := h.recipes.Filter(c.Request.Context(), view, c.Query("category"))
	h.respond(c, err, view, render.PageData{})
}

// Create adds a recipe from the multipart creation form
func (h *RecipeHandler) Create(c *gin.Context) {
	view := &pageView{}
	view.form = render.FormValues{
		Title:        c.PostForm("title"),
		Ingredients:  c.PostForm("ingredients"),
		Instructions: c.PostForm("instructions"),
		Category:     c.PostForm("category"),
	}

	in := types.NewRecipe{
		Title:        view.form.Title,
		Ingredients:  view.form.Ingredients,
		Instructions: view.form.Instructions,
		Category:     view.form.Category,
	}
	if header, err := c.FormFile("image"); err == nil && header.Filename != "" {
		file, err := header.Open()
		if err != nil {
			log.Printf("[RecipeHandler] Failed to open uploaded image %s: %v", header.Filename, err)
		} else {
			defer func(f multipart.File) { _ = f.Close() }(file)
			in.Image = &types.ImageUpload{Filename: header.Filename, Content: file}
		}
	}

	err := h.recipes.Create(c.Request.Context(), view, in)
	h.respond(c, err, view, render.PageData{})
}

// Delete removes a recipe
func (h *RecipeHandler) Delete(c *gin.Context) {
	view := &pageView{}
	err := h.recipes.Remove(c.Request.Context(), view, types.RecipeID(c.Param("id")))
	h.respond(c, err, view, render.PageData{})
}

// EditForm shows the inline edit form pre-filled with the current values
func (h *RecipeHandler) EditForm(c *gin.Context) {
	view := &pageView{}
	recipe, err := h.recipes.Recipe(c.Request.Context(), view, types.RecipeID(c.Param("id")))
	if err != nil {
		h.respond(c, err, view, render.PageData{})
		return
	}

	h.respond(c, nil, view, render.PageData{Editing: &render.EditForm{
		ID:           types.RecipeID(c.Param("id")),
		Title:        recipe.Title,
		Ingredients:  recipe.Ingredients,
		Instructions: recipe.Instructions,
	}})
}

// Edit saves the inline edit form, or goes back to the list when cancelled
func (h *RecipeHandler) Edit(c *gin.Context) {
	if c.PostForm("action") == "cancel" {
		c.Redirect(http.StatusSeeOther, "/")
		return
	}

	id := types.RecipeID(c.Param("id"))
	view := &pageView{}

	err := h.recipes.Edit(c.Request.Context(), view, id, formEditor{c: c})
	if errors.Is(err, service.ErrUserCancelled) {
		c.Redirect(http.StatusSeeOther, "/")
		return
	}

	data := render.PageData{}
	if err != nil {
		// Keep the user's input so the edit can be retried.
		data.Editing = &render.EditForm{
			ID:           id,
			Title:        c.PostForm("title"),
			Ingredients:  c.PostForm("ingredients"),
			Instructions: c.PostForm("instructions"),
		}
	}
	h.respond(c, err, view, data)
}

// respond renders the page for a finished operation
func (h *RecipeHandler) respond(c *gin.Context, err error, view *pageView, data render.PageData) {
	data.Categories = h.categories
	data.Alerts = view.alerts
	data.Form = view.form
	data.Cards = view.cards

	c.Header("Cache-Control", "no-store")
	c.Header("Content-Type", "text/html; charset=utf-8")
	c.Status(statusFor(err))
	if renderErr := h.renderer.Page(c.Writer, data); renderErr != nil {
		log.Printf("[RecipeHandler] Failed to render page: %v", renderErr)
		_ = c.Error(renderErr)
	}
}

// statusFor maps an operation error onto the status of the rendered page
func statusFor(err error) int {
	var missing *types.MissingFieldsError
	switch {
	case err == nil:
		return http.StatusOK
	case errors.As(err, &missing):
		return http.StatusBadRequest
	case errors.Is(err, client.ErrRequestFailed):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}
