package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mvreilly/recipebox/internal/config"
	"github.com/mvreilly/recipebox/internal/database"
	"github.com/mvreilly/recipebox/internal/output"
)

var showCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Show one recipe in full",
	Args:  cobra.ExactArgs(1),
	RunE:  runShow,
}

func init() {
	rootCmd.AddCommand(showCmd)
}

func runShow(cmd *cobra.Command, args []string) error {
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

	r, err := db.GetRecipe(ctx, args[0])
	if err != nil {
		return fmt.Errorf("failed to load recipe: %w", err)
	}
	if r == nil {
		return fmt.Errorf("no recipe with id %s", args[0])
	}

	return output.Output(outputFmt, r)
}
