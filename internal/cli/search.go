package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mvreilly/recipebox/internal/config"
	"github.com/mvreilly/recipebox/internal/database"
	"github.com/mvreilly/recipebox/internal/output"
)

var searchCmd = &cobra.Command{
	Use:   "search <terms>",
	Short: "Search saved recipes by title or URL",
	Long: `Search the collection for recipes whose title or URL contains the
given terms.

Examples:
  recipebox search chicken
  recipebox search "apple crisp"
  recipebox search tacos -o json`,
	Args: cobra.MinimumNArgs(1),
	RunE: runSearch,
}

func init() {
	rootCmd.AddCommand(searchCmd)
}

func runSearch(cmd *cobra.Command, args []string) error {
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

	query := strings.Join(args, " ")
	recipes, err := db.Search(ctx, query)
	if err != nil {
		return fmt.Errorf("search failed: %w", err)
	}

	if len(recipes) == 0 {
		fmt.Printf("No recipes matching %q.\n", query)
		return nil
	}

	return output.Output(outputFmt, recipes)
}
