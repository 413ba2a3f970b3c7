package mocks

import (
	"context"

	"github.com/pageza/recipebox/frontend/internal/types"
	"github.com/stretchr/testify/mock"
)

// MockRecipeAPI is a mock implementation of the catalog API
type MockRecipeAPI struct {
	mock.Mock
}

// List mocks the List method
func (m *MockRecipeAPI) List(ctx context.Context) ([]types.Recipe, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]types.Recipe), args.Error(1)
}

// Search mocks the Search method
func (m *MockRecipeAPI) Search(ctx context.Context, query string) ([]types.Recipe, error) {
	args := m.Called(ctx, query)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]types.Recipe), args.Error(1)
}

// Filter mocks the Filter method
func (m *MockRecipeAPI) Filter(ctx context.Context, category string) ([]types.Recipe, error) {
	args := m.Called(ctx, category)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]types.Recipe), args.Error(1)
}

// Get mocks the Get method
func (m *MockRecipeAPI) Get(ctx context.Context, id types.RecipeID) (*types.Recipe, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*types.Recipe), args.Error(1)
}

// Create mocks the Create method
func (m *MockRecipeAPI) Create(ctx context.Context, in types.NewRecipe) (*types.Recipe, error) {
	args := m.Called(ctx, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*types.Recipe), args.Error(1)
}

// Update mocks the Update method
func (m *MockRecipeAPI) Update(ctx context.Context, recipe types.Recipe) (*types.Recipe, error) {
	args := m.Called(ctx, recipe)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*types.Recipe), args.Error(1)
}

// Delete mocks the Delete method
func (m *MockRecipeAPI) Delete(ctx context.Context, id types.RecipeID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}
