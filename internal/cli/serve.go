package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mvreilly/recipebox/internal/config"
	"github.com/mvreilly/recipebox/internal/database"
	"github.com/mvreilly/recipebox/internal/page"
	"github.com/mvreilly/recipebox/internal/recipe"
	"github.com/mvreilly/recipebox/internal/web"
)

var serveAddr string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the local web UI",
	Long: `Serve starts a local web server for browsing the recipe collection.

Examples:
  recipebox serve                          # Use the configured address
  recipebox serve --addr=localhost:3000`,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().StringVar(&serveAddr, "addr", "", "Listen address (default: from config)")
}

func runServe(cmd *cobra.Command, args []string) error {
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
	titles := page.NewTitleFetcher(client)

	addr := cfg.Web.ListenAddr
	if serveAddr != "" {
		addr = serveAddr
	}

	srv := web.New(db, registry, titles)

	fmt.Printf("Serving recipes at http://%s\n", addr)
	return srv.Run(addr)
}
