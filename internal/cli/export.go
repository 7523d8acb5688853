package cli

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/mvreilly/recipebox/internal/config"
	"github.com/mvreilly/recipebox/internal/database"
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export recipes to CSV or JSON",
	Long: `Export the recipe collection to a file.

Supported formats:
  - csv: Comma-separated values (spreadsheet-compatible)
  - json: JSON array of recipe objects

Examples:
  recipebox export --format=csv > recipes.csv
  recipebox export --format=json > recipes.json
  recipebox export --format=csv --source=skinnytaste > skinnytaste.csv`,
	RunE: runExport,
}

var (
	exportFormat string
	exportSource string
)

func init() {
	rootCmd.AddCommand(exportCmd)

	exportCmd.Flags().StringVar(&exportFormat, "format", "csv", "Export format (csv, json)")
	exportCmd.Flags().StringVar(&exportSource, "source", "", "Only export recipes from this source")
}

func runExport(cmd *cobra.Command, args []string) error {
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

	recipes, err := db.ListRecipes(ctx, database.ListOptions{Source: exportSource})
	if err != nil {
		return fmt.Errorf("failed to list recipes: %w", err)
	}

	switch exportFormat {
	case "csv":
		return exportCSV(recipes)
	case "json":
		return exportJSON(recipes)
	default:
		return fmt.Errorf("unknown format: %s (use csv or json)", exportFormat)
	}
}

// ExportRow represents a row in the export (with additional computed fields)
type ExportRow struct {
	ID        string `json:"id"`
	Title     string `json:"title"`
	Source    string `json:"source"`
	URL       string `json:"url"`
	ParentURL string `json:"parent_url"`
	Homepage  string `json:"homepage"`
	Manual    bool   `json:"manual"`
	CreatedAt string `json:"created_at"`
}

func toExportRow(r database.Recipe) ExportRow {
	row := ExportRow{
		ID:        r.ID,
		Title:     r.Title,
		Source:    r.Source,
		URL:       r.URL,
		Manual:    r.IsManual(),
		CreatedAt: r.CreatedAt.Format(time.RFC3339),
	}
	if r.ParentURL != nil {
		row.ParentURL = *r.ParentURL
	}
	if r.Homepage != nil {
		row.Homepage = *r.Homepage
	}
	return row
}

func exportCSV(recipes []database.Recipe) error {
	w := csv.NewWriter(os.Stdout)
	defer w.Flush()

	// Write header
	header := []string{
		"id", "title", "source", "url", "parent_url", "homepage",
		"manual", "created_at",
	}
	if err := w.Write(header); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}

	// Write rows
	for _, r := range recipes {
		row := toExportRow(r)
		record := []string{
			row.ID,
			row.Title,
			row.Source,
			row.URL,
			row.ParentURL,
			row.Homepage,
			fmt.Sprintf("%t", row.Manual),
			row.CreatedAt,
		}
		if err := w.Write(record); err != nil {
			return fmt.Errorf("failed to write CSV row: %w", err)
		}
	}

	return nil
}

func exportJSON(recipes []database.Recipe) error {
	rows := make([]ExportRow, len(recipes))
	for i, r := range recipes {
		rows[i] = toExportRow(r)
	}

	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(rows); err != nil {
		return fmt.Errorf("failed to encode JSON: %w", err)
	}
	return nil
}
