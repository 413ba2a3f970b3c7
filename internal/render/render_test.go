package render

import (
	"bytes"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pageza/recipebox/frontend/internal/types"
)

func newRenderer(t *testing.T) *Renderer {
	t.Helper()
	r, err := New()
	require.NoError(t, err)
	return r
}

func TestCardsSingleRecipe(t *testing.T) {
	r := newRenderer(t)

	html, err := r.Cards([]types.Recipe{{
		ID: "1", Title: "Soup", Ingredients: "Water", Instructions: "Boil", Image: "soup.png", Category: "Starter",
	}})
	require.NoError(t, err)

	out := string(html)
	assert.Equal(t, 1, strings.Count(out, `class="recipe `))
	assert.Contains(t, out, `<h3 class="card-title">Soup</h3>`)
	assert.Contains(t, out, `<strong>Ingredients:</strong> Water`)
	assert.Contains(t, out, `<strong>Instructions:</strong> Boil`)
	assert.Contains(t, out, `src="images/soup.png"`)
	assert.Contains(t, out, `alt="Soup"`)
	assert.Contains(t, out, `action="/recipes/1/delete"`)
	assert.Contains(t, out, `href="/recipes/1/edit"`)
	assert.Contains(t, out, ">Delete</button>")
	assert.Contains(t, out, ">Edit</a>")
}

func TestCardsPreserveOrder(t *testing.T) {
	r := newRenderer(t)

	var recipes []types.Recipe
	for i := 0; i < 5; i++ {
		recipes = append(recipes, types.Recipe{
			ID:    types.RecipeID(fmt.Sprint(i + 10)),
			Title: fmt.Sprintf("Recipe-%d", i),
		})
	}

	html, err := r.Cards(recipes)
	require.NoError(t, err)
	out := string(html)

	assert.Equal(t, len(recipes), strings.Count(out, `class="recipe `))
	last := -1
	for _, rec := range recipes {
		idx := strings.Index(out, ">"+rec.Title+"</h3>")
		require.GreaterOrEqual(t, idx, 0, rec.Title)
		assert.Greater(t, idx, last)
		last = idx
	}
}

func TestCardsEmpty(t *testing.T) {
	r := newRenderer(t)

	html, err := r.Cards(nil)
	require.NoError(t, err)
	assert.Empty(t, strings.TrimSpace(string(html)))
}

func TestCardsEscapeUserText(t *testing.T) {
	r := newRenderer(t)

	html, err := r.Cards([]types.Recipe{{
		ID:           "2",
		Title:        `<script>alert("x")</script>`,
		Ingredients:  `<b>salt</b> & pepper`,
		Instructions: `"quoted"`,
		Image:        `x.png" onerror="alert(1)`,
	}})
	require.NoError(t, err)
	out := string(html)

	assert.NotContains(t, out, "<script>")
	assert.NotContains(t, out, "<b>salt</b>")
	assert.NotContains(t, out, `onerror="alert(1)"`)
	assert.Contains(t, out, "&lt;script&gt;")
	assert.Contains(t, out, "&amp; pepper")
}

func TestCardsEscapeURLPathSegments(t *testing.T) {
	r := newRenderer(t)

	html, err := r.Cards([]types.Recipe{{
		ID: "a/b?c", Title: "Pie", Ingredients: "Apples", Instructions: "Bake", Image: "pie #2?.png",
	}})
	require.NoError(t, err)
	out := string(html)

	assert.Contains(t, out, `src="images/pie%20%232%3F.png"`)
	assert.Contains(t, out, `action="/recipes/a%2Fb%3Fc/delete"`)
	assert.Contains(t, out, `href="/recipes/a%2Fb%3Fc/edit"`)
}

func TestEditFormActionEscapesID(t *testing.T) {
	r := newRenderer(t)

	var buf bytes.Buffer
	require.NoError(t, r.Page(&buf, PageData{Editing: &EditForm{ID: "7#x", Title: "Soup"}}))
	assert.Contains(t, buf.String(), `action="/recipes/7%23x/edit"`)
}

func TestPageRendersSections(t *testing.T) {
	r := newRenderer(t)
	cards, err := r.Cards([]types.Recipe{{ID: "1", Title: "Soup"}})
	require.NoError(t, err)

	var buf bytes.Buffer
	err = r.Page(&buf, PageData{
		Query:      "soup",
		Categories: []string{"Starter", "Main"},
		Alerts:     []string{"Failed to load recipes: boom"},
		Form:       FormValues{Title: "Draft", Category: "Main"},
		Editing:    &EditForm{ID: "1", Title: "Soup", Ingredients: "Water", Instructions: "Boil"},
		Cards:      cards,
	})
	require.NoError(t, err)
	out := buf.String()

	assert.Contains(t, out, `value="soup"`)
	assert.Contains(t, out, `href="/filter?category=Starter"`)
	assert.Contains(t, out, "Failed to load recipes: boom")
	assert.Contains(t, out, `<option value="Main" selected>`)
	assert.Contains(t, out, `action="/recipes/1/edit"`)
	assert.Contains(t, out, `value="cancel"`)
	assert.Contains(t, out, `<div id="recipe-list" class="row">`)
	assert.Contains(t, out, `<h3 class="card-title">Soup</h3>`)
	assert.Contains(t, out, `id="title" name="title" value="Draft"`)
}

func TestPageWithoutEditForm(t *testing.T) {
	r := newRenderer(t)

	var buf bytes.Buffer
	require.NoError(t, r.Page(&buf, PageData{}))
	assert.NotContains(t, buf.String(), `id="edit-recipe"`)
}
