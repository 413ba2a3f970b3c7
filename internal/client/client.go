// Package client talks to the remote recipe catalog API.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"mime/multipart"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/pageza/recipebox/frontend/internal/types"
)

const recipesPath = "/recipes.json"

// Client is a thin typed wrapper over the catalog API endpoints
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// Option configures a Client
type Option func(*Client)

// WithHTTPClient replaces the default http.Client
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// WithTimeout sets an overall per-request timeout. Zero leaves requests
// bounded only by their context and the transport.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		c.httpClient.Timeout = d
	}
}

// New creates a client for the API rooted at baseURL
func New(baseURL string, opts ...Option) (*Client, error) {
	u, err := url.Parse(strings.TrimSpace(baseURL))
	if err != nil {
		return nil, fmt.Errorf("invalid API base URL: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("invalid API base URL %q: scheme must be http or https", baseURL)
	}

	c := &Client{
		baseURL:    strings.TrimRight(u.String(), "/"),
		httpClient: &http.Client{},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// BaseURL returns the API root the client was created with
func (c *Client) BaseURL() string {
	return c.baseURL
}

// List fetches every recipe
func (c *Client) List(ctx context.Context) ([]types.Recipe, error) {
	var recipes []types.Recipe
	err := c.do(ctx, "list", http.MethodGet, c.endpoint(recipesPath, nil), nil, "", &recipes)
	if err != nil {
		return nil, err
	}
	return orEmpty(recipes), nil
}

// Search fetches the recipes matching query
func (c *Client) Search(ctx context.Context, query string) ([]types.Recipe, error) {
	var recipes []types.Recipe
	u := c.endpoint(recipesPath+"/search", url.Values{"q": {query}})
	if err := c.do(ctx, "search", http.MethodGet, u, nil, "", &recipes); err != nil {
		return nil, err
	}
	return orEmpty(recipes), nil
}

// Filter fetches the recipes in category
func (c *Client) Filter(ctx context.Context, category string) ([]types.Recipe, error) {
	var recipes []types.Recipe
	u := c.endpoint(recipesPath+"/filter", url.Values{"category": {category}})
	if err := c.do(ctx, "filter", http.MethodGet, u, nil, "", &recipes); err != nil {
		return nil, err
	}
	return orEmpty(recipes), nil
}

// Get fetches a single recipe
func (c *Client) Get(ctx context.Context, id types.RecipeID) (*types.Recipe, error) {
	var recipe types.Recipe
	if err := c.do(ctx, "get", http.MethodGet, c.recipeURL(id), nil, "", &recipe); err != nil {
		return nil, err
	}
	return &recipe, nil
}

// Create uploads a new recipe as a multipart form
func (c *Client) Create(ctx context.Context, in types.NewRecipe) (*types.Recipe, error) {
	body := &bytes.Buffer{}
	mw := multipart.NewWriter(body)

	fields := []struct{ name, value string }{
		{"title", in.Title},
		{"ingredients", in.Ingredients},
		{"instructions", in.Instructions},
	}
	for _, f := range fields {
		if err := mw.WriteField(f.name, f.value); err != nil {
			return nil, fmt.Errorf("failed to write %s field: %w", f.name, err)
		}
	}
	if in.Image != nil && in.Image.Content != nil {
		part, err := mw.CreateFormFile("image", in.Image.Filename)
		if err != nil {
			return nil, fmt.Errorf("failed to create image part: %w", err)
		}
		if _, err := io.Copy(part, in.Image.Content); err != nil {
			return nil, fmt.Errorf("failed to read image %s: %w", in.Image.Filename, err)
		}
	}
	if err := mw.WriteField("category", in.Category); err != nil {
		return nil, fmt.Errorf("failed to write category field: %w", err)
	}
	if err := mw.Close(); err != nil {
		return nil, fmt.Errorf("failed to finish multipart body: %w", err)
	}

	var created types.Recipe
	err := c.do(ctx, "create", http.MethodPost, c.endpoint(recipesPath, nil), body, mw.FormDataContentType(), &created)
	if err != nil {
		return nil, err
	}
	return &created, nil
}

// Update replaces a recipe with the given values
func (c *Client) Update(ctx context.Context, recipe types.Recipe) (*types.Recipe, error) {
	payload, err := json.Marshal(recipe)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal recipe: %w", err)
	}

	var updated types.Recipe
	err = c.do(ctx, "update", http.MethodPut, c.recipeURL(recipe.ID), bytes.NewReader(payload), "application/json", &updated)
	if err != nil {
		return nil, err
	}
	return &updated, nil
}

// Delete removes a recipe. Any JSON acknowledgement is accepted.
func (c *Client) Delete(ctx context.Context, id types.RecipeID) error {
	var ack json.RawMessage
	return c.do(ctx, "delete", http.MethodDelete, c.recipeURL(id), nil, "", &ack)
}

func (c *Client) endpoint(path string, query url.Values) string {
	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}
	return u
}

func (c *Client) recipeURL(id types.RecipeID) string {
	return c.endpoint(recipesPath+"/"+url.PathEscape(id.String()), nil)
}

// do sends one request and decodes a successful JSON response into out
func (c *Client) do(ctx context.Context, op, method, rawURL string, body io.Reader, contentType string, out interface{}) (err error) {
	start := time.Now()
	defer func() {
		apiRequestsTotal.WithLabelValues(op, outcome(err)).Inc()
		apiRequestDuration.WithLabelValues(op).Observe(time.Since(start).Seconds())
		if err != nil {
			log.Printf("[APIClient] %s failed: %v", op, err)
		}
	}()

	fail := func(resp *http.Response, detail string, cause error) error {
		e := &RequestFailedError{Op: op, Method: method, URL: rawURL, Detail: detail, Err: cause}
		if resp != nil {
			e.StatusCode = resp.StatusCode
			e.Status = resp.Status
		}
		return e
	}

	req, err := http.NewRequestWithContext(ctx, method, rawURL, body)
	if err != nil {
		return fail(nil, "", fmt.Errorf("failed to create request: %w", err))
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Cache-Control", "no-cache")
	req.Header.Set("Pragma", "no-cache")
	req.Header.Set("X-Request-Id", requestID(ctx))
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fail(nil, "", err)
	}
	defer func() { _ = resp.Body.Close() }()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return fail(resp, "", fmt.Errorf("failed to read response: %w", err))
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fail(resp, errorDetail(data), nil)
	}

	if out == nil || len(bytes.TrimSpace(data)) == 0 {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fail(nil, "", fmt.Errorf("failed to decode response: %w", err))
	}
	return nil
}

// errorDetail extracts the message from an {"error": "..."} body
func errorDetail(data []byte) string {
	var body struct {
		Error string `json:"error"`
	}
	if err := json.Unmarshal(data, &body); err != nil {
		return ""
	}
	return body.Error
}

func orEmpty(recipes []types.Recipe) []types.Recipe {
	if recipes == nil {
		return []types.Recipe{}
	}
	return recipes
}

type requestIDKey struct{}

// WithRequestID attaches a request id that is forwarded to the API
func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, requestIDKey{}, id)
}

func requestID(ctx context.Context) string {
	if id, ok := ctx.Value(requestIDKey{}).(string); ok && id != "" {
		return id
	}
	return uuid.New().String()
}
