package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/mvreilly/recipebox/internal/config"
	"github.com/mvreilly/recipebox/internal/database"
	"github.com/mvreilly/recipebox/internal/page"
	"github.com/mvreilly/recipebox/internal/recipe"
	"github.com/mvreilly/recipebox/internal/urlutil"
)

var addTitle string

var addCmd = &cobra.Command{
	Use:   "add <url>",
	Short: "Add a recipe to the collection by hand",
	Long: `Add saves a recipe URL directly, without going through email sync.
The URL must belong to one of the known sources. The title is fetched
from the recipe page unless --title is given.

Examples:
  recipebox add https://www.skinnytaste.com/chicken-tacos
  recipebox add --title="Nana's Stew" https://findthelostkitchen.com/recipes/stew`,
	Args: cobra.ExactArgs(1),
	RunE: runAdd,
}

func init() {
	rootCmd.AddCommand(addCmd)
	addCmd.Flags().StringVar(&addTitle, "title", "", "Recipe title (default: fetched from the page)")
}

func runAdd(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	rawURL := args[0]

	// Load configuration
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}

	// Ensure directories exist
	if err := cfg.EnsureDirectories(); err != nil {
		return err
	}

	// Open database
	db, err := database.Open(cfg.Database.Path)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer db.Close()

	client := page.NewClient(
		page.WithTimeout(cfg.Fetch.Timeout()),
		page.WithUserAgent(cfg.Fetch.UserAgent),
	)
	registry := recipe.DefaultRegistry(client)

	provider := registry.Find(rawURL)
	if provider == nil {
		return fmt.Errorf("no known source for %s", rawURL)
	}

	title := addTitle
	if title == "" {
		title = page.NewTitleFetcher(client).FetchTitle(ctx, rawURL)
	}
	if title == "" {
		title = urlutil.TitleFromPath(rawURL)
	}
	if title == "" {
		return fmt.Errorf("could not determine a title for %s (use --title)", rawURL)
	}

	homepage := urlutil.Homepage(rawURL)
	r := &database.Recipe{
		MessageID: database.ManualMessageID,
		Source:    provider.Name(),
		Title:     title,
		URL:       rawURL,
		Homepage:  &homepage,
		CreatedAt: time.Now(),
	}

	inserted, err := db.InsertIfAbsent(ctx, r)
	if err != nil {
		return fmt.Errorf("failed to save recipe: %w", err)
	}
	if !inserted {
		fmt.Printf("Already saved: %s\n", rawURL)
		return nil
	}

	fmt.Printf("Saved %q (%s)\n", title, provider.Name())
	return nil
}
