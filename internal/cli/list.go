package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mvreilly/recipebox/internal/config"
	"github.com/mvreilly/recipebox/internal/database"
	"github.com/mvreilly/recipebox/internal/output"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List saved recipes",
	Long: `List recipes in the collection, newest first, with optional filters.

Examples:
  recipebox list                        # List all recipes
  recipebox list --source=skinnytaste   # Only recipes from one source
  recipebox list --limit=10             # The 10 most recent recipes
  recipebox list -o json                # Output as JSON`,
	RunE: runList,
}

var (
	listSource string
	listLimit  int
)

func init() {
	rootCmd.AddCommand(listCmd)

	listCmd.Flags().StringVar(&listSource, "source", "", "Filter by source (e.g. skinnytaste, the_lost_kitchen)")
	listCmd.Flags().IntVar(&listLimit, "limit", 0, "Maximum number of results")
}

func runList(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	// Load configuration
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}

	// Open database
	db, err := database.Open(cfg.Database.Path)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer db.Close()

	recipes, err := db.ListRecipes(ctx, database.ListOptions{
		Source: listSource,
		Limit:  listLimit,
	})
	if err != nil {
		return fmt.Errorf("failed to list recipes: %w", err)
	}

	return output.Output(outputFmt, recipes)
}
