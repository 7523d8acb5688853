package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/mvreilly/recipebox/internal/config"
	"github.com/mvreilly/recipebox/internal/database"
	"github.com/mvreilly/recipebox/internal/email/gmail"
	"github.com/mvreilly/recipebox/internal/page"
	"github.com/mvreilly/recipebox/internal/recipe"
	"github.com/mvreilly/recipebox/internal/syncer"
)

var (
	syncQuery string
	syncMax   int
)

var syncCmd = &cobra.Command{
	Use:   "sync",
	Short: "Fetch recipe newsletters from Gmail and save their recipes",
	Long: `Sync searches your Gmail account for recipe newsletters, extracts
every recipe link they contain, and stores the recipes in the local
database. Recipes already saved are skipped, so sync is safe to run
repeatedly.

On first run, it will open a browser for Google authentication.

Examples:
  recipebox sync                          # Use the configured search query
  recipebox sync --max=10                 # Only look at the 10 newest matches
  recipebox sync --query='from:chef@example.com'`,
	RunE: runSync,
}

func init() {
	rootCmd.AddCommand(syncCmd)
	syncCmd.Flags().StringVar(&syncQuery, "query", "", "Gmail search query (default: from config)")
	syncCmd.Flags().IntVar(&syncMax, "max", 0, "Maximum number of messages to scan (default: from config)")
}

func runSync(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

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

	// Initialize Gmail provider
	provider := gmail.New(cfg.Gmail.CredentialsPath, cfg.Gmail.TokenPath)

	// Authenticate
	fmt.Println("Authenticating with Gmail...")
	if err := provider.Authenticate(ctx); err != nil {
		return fmt.Errorf("authentication failed: %w", err)
	}

	// Build the extraction pipeline
	client := page.NewClient(
		page.WithTimeout(cfg.Fetch.Timeout()),
		page.WithUserAgent(cfg.Fetch.UserAgent),
	)
	registry := recipe.DefaultRegistry(client)
	titles := page.NewTitleFetcher(client)

	query := cfg.Sync.Query
	if syncQuery != "" {
		query = syncQuery
	}
	maxResults := cfg.Sync.MaxResults
	if syncMax > 0 {
		maxResults = syncMax
	}

	s := syncer.New(db, provider, registry, titles, query, maxResults)

	fmt.Printf("Searching for newsletters matching %s\n", query)

	// Set up progress callback with terminal utilities
	var lastPhase syncer.ProgressPhase
	var phaseStartTime time.Time
	terminal := NewTerminal()

	opts := syncer.SyncOptions{
		Progress: func(p syncer.Progress) {
			if p.Phase != lastPhase {
				phaseStartTime = time.Now()
			}
			p.StartedAt = phaseStartTime

			terminal.ClearLine()

			phaseColor := PhaseColor(string(p.Phase))

			var msg string
			switch p.Phase {
			case syncer.PhaseListingMessages:
				spinner := terminal.Spinner()
				msg = fmt.Sprintf("%s Listing messages...", spinner)
			case syncer.PhaseExtracting:
				pct := p.Percentage()
				var eta string
				if etaDur := p.ETA(); etaDur > 0 {
					eta = fmt.Sprintf(" (ETA: %s)", FormatETA(etaDur))
				}
				msg = fmt.Sprintf("Extracting recipes: %d/%d messages (%d%%)%s", p.Current, p.Total, pct, eta)
			case syncer.PhaseSaving:
				spinner := terminal.Spinner()
				msg = fmt.Sprintf("%s Saving recipes...", spinner)
			}

			if terminal.UseColor {
				msg = terminal.Color(phaseColor, msg)
			}

			if terminal.IsTerminal {
				fmt.Print(msg)
				terminal.Flush()
			} else if p.Phase != lastPhase || p.Current == p.Total {
				fmt.Println(msg)
			}
			lastPhase = p.Phase
		},
	}

	result, err := s.SyncWithOptions(ctx, opts)

	// Clear progress line
	terminal.ClearLine()

	if err != nil {
		return fmt.Errorf("sync failed: %w", err)
	}

	// Display results
	fmt.Println()
	fmt.Println("Sync complete:")
	fmt.Printf("  Messages scanned:  %d\n", result.MessagesProcessed)
	fmt.Printf("  Recipes found:     %d\n", result.RecipesFound)
	fmt.Printf("  New recipes saved: %d\n", result.RecipesInserted)
	if result.Duplicates > 0 {
		fmt.Printf("  Already saved:     %d\n", result.Duplicates)
	}

	if len(result.Errors) > 0 {
		fmt.Println()
		fmt.Printf("Warnings: %d\n", len(result.Errors))
		for _, e := range result.Errors {
			fmt.Printf("  - %v\n", e)
		}
	}

	if result.RecipesInserted > 0 {
		fmt.Println()
		fmt.Println("Run 'recipebox list' to see your collection.")
	}

	return nil
}
