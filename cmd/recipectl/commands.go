package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/pageza/recipebox/frontend/internal/client"
	"github.com/pageza/recipebox/frontend/internal/render"
	"github.com/pageza/recipebox/frontend/internal/service"
	"github.com/pageza/recipebox/frontend/internal/types"
)

const defaultAPIURL = "http://localhost:8000"

// reportedError marks a failure the user has already been notified about
type reportedError struct {
	err error
}

func (e *reportedError) Error() string { return e.err.Error() }
func (e *reportedError) Unwrap() error { return e.err }

// errorLines passes through only the log lines that report a failure
type errorLines struct {
	w io.Writer
}

func (e errorLines) Write(p []byte) (int, error) {
	line := string(p)
	if strings.Contains(line, "] Error ") || strings.Contains(line, " failed: ") {
		if _, err := e.w.Write(p); err != nil {
			return 0, err
		}
	}
	return len(p), nil
}

// cli holds the state shared by every subcommand
type cli struct {
	stdout io.Writer
	stderr io.Writer

	apiURL  string
	timeout time.Duration
	output  string
	verbose bool

	recipes *service.RecipeClient
	editor  service.Editor
}

func newRootCmd(stdout, stderr io.Writer, editor service.Editor) *cobra.Command {
	app := &cli{stdout: stdout, stderr: stderr, editor: editor}

	apiURL := os.Getenv("API_BASE_URL")
	if apiURL == "" {
		apiURL = defaultAPIURL
	}

	rootCmd := &cobra.Command{
		Use:   "recipectl",
		Short: "Browse and manage the recipe catalog from the terminal",
		Long: `recipectl talks to the recipe catalog API and prints the rendered recipe
cards as HTML.

Examples:
  recipectl list                          # All recipes
  recipectl search soup                   # Recipes matching "soup"
  recipectl filter Dessert -o cards.html  # Write the Dessert cards to a file
  recipectl create --title Soup --ingredients Water --instructions Boil \
      --category Lunch --image soup.png
  recipectl edit 7                        # Edit a recipe in an interactive form
  recipectl delete 7`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return app.connect()
		},
	}

	rootCmd.PersistentFlags().StringVar(&app.apiURL, "api-url", apiURL, "Base URL of the recipe API (env API_BASE_URL)")
	rootCmd.PersistentFlags().DurationVar(&app.timeout, "timeout", 0, "Per-request timeout, 0 for none")
	rootCmd.PersistentFlags().StringVarP(&app.output, "output", "o", "", "Write the rendered recipe cards to this file instead of stdout")
	rootCmd.PersistentFlags().BoolVarP(&app.verbose, "verbose", "v", false, "Also log successful API calls and cancellations")

	rootCmd.AddCommand(app.listCmd())
	rootCmd.AddCommand(app.searchCmd())
	rootCmd.AddCommand(app.filterCmd())
	rootCmd.AddCommand(app.createCmd())
	rootCmd.AddCommand(app.deleteCmd())
	rootCmd.AddCommand(app.editCmd())

	return rootCmd
}

// connect builds the recipe client from the global flags
func (a *cli) connect() error {
	if a.verbose {
		log.SetOutput(a.stderr)
	} else {
		log.SetOutput(errorLines{w: a.stderr})
	}

	apiClient, err := client.New(a.apiURL, client.WithTimeout(a.timeout))
	if err != nil {
		return err
	}
	renderer, err := render.New()
	if err != nil {
		return err
	}
	a.recipes = service.NewRecipeClient(apiClient, renderer)
	return nil
}

// run executes one recipe operation against a fresh terminal view
func (a *cli) run(ctx context.Context, op func(ctx context.Context, view service.View) error) error {
	view := newTerminalView(a.stdout, a.stderr, a.output)
	if err := op(ctx, view); err != nil {
		if errors.Is(err, service.ErrUserCancelled) {
			return nil
		}
		return &reportedError{err: err}
	}
	return view.Err()
}

func (a *cli) listCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "Show every recipe",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.run(cmd.Context(), func(ctx context.Context, view service.View) error {
				return a.recipes.List(ctx, view, "")
			})
		},
	}
}

func (a *cli) searchCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "search <query>",
		Short: "Show the recipes matching a search query",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.run(cmd.Context(), func(ctx context.Context, view service.View) error {
				return a.recipes.List(ctx, view, args[0])
			})
		},
	}
}

func (a *cli) filterCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "filter <category>",
		Short: "Show the recipes in one category",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.run(cmd.Context(), func(ctx context.Context, view service.View) error {
				return a.recipes.Filter(ctx, view, args[0])
			})
		},
	}
}

func (a *cli) createCmd() *cobra.Command {
	var (
		in        types.NewRecipe
		imagePath string
	)

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Add a recipe with an image",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if imagePath != "" {
				file, err := os.Open(imagePath)
				if err != nil {
					return fmt.Errorf("failed to open image: %w", err)
				}
				defer file.Close()
				in.Image = &types.ImageUpload{Filename: filepath.Base(imagePath), Content: file}
			}
			return a.run(cmd.Context(), func(ctx context.Context, view service.View) error {
				return a.recipes.Create(ctx, view, in)
			})
		},
	}

	cmd.Flags().StringVar(&in.Title, "title", "", "Recipe title")
	cmd.Flags().StringVar(&in.Ingredients, "ingredients", "", "Ingredients")
	cmd.Flags().StringVar(&in.Instructions, "instructions", "", "Instructions")
	cmd.Flags().StringVar(&in.Category, "category", "", "Category")
	cmd.Flags().StringVar(&imagePath, "image", "", "Path of the image to upload")
	return cmd
}

func (a *cli) deleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Remove a recipe",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.run(cmd.Context(), func(ctx context.Context, view service.View) error {
				return a.recipes.Remove(ctx, view, types.RecipeID(args[0]))
			})
		},
	}
}

func (a *cli) editCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "edit <id>",
		Short: "Edit a recipe's title, ingredients and instructions",
		Long: `Fetches the recipe and opens a form pre-filled with its current title,
ingredients and instructions. Ctrl+C cancels without saving.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.run(cmd.Context(), func(ctx context.Context, view service.View) error {
				return a.recipes.Edit(ctx, view, types.RecipeID(args[0]), a.editor)
			})
		},
	}
}
