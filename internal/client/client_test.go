package client

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pageza/recipebox/frontend/internal/types"
)

const soupJSON = `{"id":1,"title":"Soup","ingredients":"Water","instructions":"Boil","image":"soup.png","category":"Starter"}`

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	c, err := New(srv.URL + "/")
	require.NoError(t, err)
	return c
}

func TestNewRejectsBadBaseURL(t *testing.T) {
	_, err := New("ftp://example.com")
	assert.Error(t, err)

	_, err = New("://nope")
	assert.Error(t, err)
}

func TestListUsesPlainEndpoint(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/recipes.json", r.URL.Path)
		assert.Empty(t, r.URL.RawQuery)
		assert.Equal(t, "no-cache", r.Header.Get("Cache-Control"))
		assert.Equal(t, "no-cache", r.Header.Get("Pragma"))
		assert.NotEmpty(t, r.Header.Get("X-Request-Id"))
		_, _ = io.WriteString(w, "["+soupJSON+"]")
	})

	recipes, err := c.List(context.Background())
	require.NoError(t, err)
	require.Len(t, recipes, 1)
	assert.Equal(t, types.RecipeID("1"), recipes[0].ID)
	assert.Equal(t, "Soup", recipes[0].Title)
}

func TestSearchEncodesQuery(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/recipes.json/search", r.URL.Path)
		assert.Equal(t, "mac & cheese", r.URL.Query().Get("q"))
		_, _ = io.WriteString(w, "[]")
	})

	recipes, err := c.Search(context.Background(), "mac & cheese")
	require.NoError(t, err)
	assert.NotNil(t, recipes)
	assert.Empty(t, recipes)
}

func TestFilterByCategory(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/recipes.json/filter", r.URL.Path)
		assert.Equal(t, "Starter", r.URL.Query().Get("category"))
		assert.Equal(t, "no-cache", r.Header.Get("Cache-Control"))
		_, _ = io.WriteString(w, "["+soupJSON+"]")
	})

	recipes, err := c.Filter(context.Background(), "Starter")
	require.NoError(t, err)
	assert.Len(t, recipes, 1)
}

func TestGetRecipe(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/recipes.json/1", r.URL.Path)
		_, _ = io.WriteString(w, soupJSON)
	})

	recipe, err := c.Get(context.Background(), "1")
	require.NoError(t, err)
	assert.Equal(t, "soup.png", recipe.Image)
}

func TestCreateSendsMultipart(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/recipes.json", r.URL.Path)
		assert.Equal(t, "no-cache", r.Header.Get("Cache-Control"))
		require.NoError(t, r.ParseMultipartForm(1<<20))

		assert.Equal(t, "Soup", r.FormValue("title"))
		assert.Equal(t, "Water", r.FormValue("ingredients"))
		assert.Equal(t, "Boil", r.FormValue("instructions"))
		assert.Equal(t, "Starter", r.FormValue("category"))

		file, header, err := r.FormFile("image")
		require.NoError(t, err)
		defer file.Close()
		content, _ := io.ReadAll(file)
		assert.Equal(t, "soup.png", header.Filename)
		assert.Equal(t, "png-bytes", string(content))

		w.WriteHeader(http.StatusCreated)
		_, _ = io.WriteString(w, soupJSON)
	})

	created, err := c.Create(context.Background(), types.NewRecipe{
		Title:        "Soup",
		Ingredients:  "Water",
		Instructions: "Boil",
		Category:     "Starter",
		Image:        &types.ImageUpload{Filename: "soup.png", Content: strings.NewReader("png-bytes")},
	})
	require.NoError(t, err)
	assert.Equal(t, types.RecipeID("1"), created.ID)
}

func TestUpdateSendsFullJSONBody(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPut, r.Method)
		assert.Equal(t, "/recipes.json/7", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		var body map[string]interface{}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, float64(7), body["id"])
		assert.Equal(t, "Stew", body["title"])
		assert.Equal(t, "Beef", body["ingredients"])
		assert.Equal(t, "Simmer", body["instructions"])
		assert.Equal(t, "stew.jpg", body["image"])
		assert.Equal(t, "Main", body["category"])

		_, _ = io.WriteString(w, `{"id":7,"title":"Stew"}`)
	})

	updated, err := c.Update(context.Background(), types.Recipe{
		ID: "7", Title: "Stew", Ingredients: "Beef", Instructions: "Simmer", Image: "stew.jpg", Category: "Main",
	})
	require.NoError(t, err)
	assert.Equal(t, "Stew", updated.Title)
}

func TestDelete(t *testing.T) {
	called := false
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		called = true
		assert.Equal(t, http.MethodDelete, r.Method)
		assert.Equal(t, "/recipes.json/3", r.URL.Path)
		assert.Equal(t, "no-cache", r.Header.Get("Cache-Control"))
		_, _ = io.WriteString(w, `{"success":"Recipe deleted"}`)
	})

	require.NoError(t, c.Delete(context.Background(), "3"))
	assert.True(t, called)
}

func TestDeleteAcceptsAnyJSONAcknowledgement(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"object", `{"success":"Recipe deleted"}`},
		{"boolean", `true`},
		{"string", `"deleted"`},
		{"array", `[]`},
		{"number", `1`},
		{"null", `null`},
		{"empty body", ``},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				_, _ = io.WriteString(w, tt.body)
			})
			assert.NoError(t, c.Delete(context.Background(), "3"))
		})
	}
}

func TestDeleteMalformedAcknowledgementIsRequestFailed(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, `{"success":`)
	})

	err := c.Delete(context.Background(), "3")
	assert.ErrorIs(t, err, ErrRequestFailed)
}

func TestNonSuccessStatusIsRequestFailed(t *testing.T) {
	for _, status := range []int{http.StatusBadRequest, http.StatusNotFound, http.StatusInternalServerError, http.StatusNotModified} {
		c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(status)
			_, _ = io.WriteString(w, `{"error":"Recipe not found"}`)
		})

		_, err := c.Get(context.Background(), "9")
		require.Error(t, err)
		assert.True(t, errors.Is(err, ErrRequestFailed))

		var rf *RequestFailedError
		require.True(t, errors.As(err, &rf))
		assert.Equal(t, status, rf.StatusCode)
		assert.Equal(t, "get", rf.Op)
	}
}

func TestErrorDetailIsReported(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = io.WriteString(w, `{"error":"No image part"}`)
	})

	_, err := c.Create(context.Background(), types.NewRecipe{Title: "x"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "No image part")
	assert.Contains(t, err.Error(), "400")
}

func TestNetworkErrorIsRequestFailed(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	c, err := New(srv.URL)
	require.NoError(t, err)
	srv.Close()

	_, err = c.List(context.Background())
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrRequestFailed))
}

func TestMalformedBodyIsRequestFailed(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, "<html>not json</html>")
	})

	_, err := c.List(context.Background())
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrRequestFailed))
}

func TestRequestIDIsForwarded(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "req-123", r.Header.Get("X-Request-Id"))
		_, _ = io.WriteString(w, "[]")
	})

	_, err := c.List(WithRequestID(context.Background(), "req-123"))
	require.NoError(t, err)
}
