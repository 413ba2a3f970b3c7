package mocks

import (
	"context"
	"html/template"

	"github.com/pageza/recipebox/frontend/internal/types"
	"github.com/stretchr/testify/mock"
)

// MockEditor is a mock implementation of the edit prompt
type MockEditor struct {
	mock.Mock
}

// Prompt mocks the Prompt method
func (m *MockEditor) Prompt(ctx context.Context, current types.Recipe) (types.RecipeEdit, error) {
	args := m.Called(ctx, current)
	return args.Get(0).(types.RecipeEdit), args.Error(1)
}

// RecordingView records everything an operation does to its view
type RecordingView struct {
	Content      template.HTML
	Replacements int
	Messages     []string
	FormCleared  int
}

// Replace records the new container content
func (v *RecordingView) Replace(html template.HTML) {
	v.Content = html
	v.Replacements++
}

// Notify records a user notification
func (v *RecordingView) Notify(message string) {
	v.Messages = append(v.Messages, message)
}

// ClearForm records a form reset
func (v *RecordingView) ClearForm() {
	v.FormCleared++
}
