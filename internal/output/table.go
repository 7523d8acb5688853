package output

import (
	"fmt"
	"io"
	"os"
	"sort"
	"strings"
	"text/tabwriter"

	"github.com/mvreilly/recipebox/internal/database"
)

// Table writes data as a formatted table to stdout
func Table(data interface{}) error {
	return TableTo(os.Stdout, data)
}

// TableTo writes data as a formatted table to the given writer
func TableTo(w io.Writer, data interface{}) error {
	switch v := data.(type) {
	case []database.Recipe:
		return recipesTable(w, v)
	case *database.Recipe:
		return recipeDetail(w, v)
	case *database.Stats:
		return statsTable(w, v)
	default:
		return fmt.Errorf("unsupported data type for table output: %T", data)
	}
}

func recipesTable(w io.Writer, recipes []database.Recipe) error {
	if len(recipes) == 0 {
		fmt.Fprintln(w, "No recipes found.")
		return nil
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "TITLE\tSOURCE\tURL\tADDED")
	fmt.Fprintln(tw, "-----\t------\t---\t-----")

	for _, r := range recipes {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n",
			truncate(r.Title, 40),
			r.Source,
			truncate(r.URL, 55),
			r.CreatedAt.Format("Jan 02, 2006"),
		)
	}

	return tw.Flush()
}

func recipeDetail(w io.Writer, r *database.Recipe) error {
	fmt.Fprintf(w, "Title:     %s\n", r.Title)
	fmt.Fprintf(w, "Source:    %s\n", r.Source)
	fmt.Fprintf(w, "URL:       %s\n", r.URL)

	if r.ParentURL != nil && *r.ParentURL != "" {
		fmt.Fprintf(w, "Found on:  %s\n", *r.ParentURL)
	}
	if r.Homepage != nil && *r.Homepage != "" {
		fmt.Fprintf(w, "Homepage:  %s\n", *r.Homepage)
	}

	if r.IsManual() {
		fmt.Fprintln(w, "Added:     manually")
	} else {
		fmt.Fprintf(w, "Email:     %s\n", r.MessageID)
	}

	fmt.Fprintf(w, "Saved:     %s\n", r.CreatedAt.Format("Jan 02, 2006"))
	fmt.Fprintf(w, "ID:        %s\n", r.ID)

	return nil
}

func statsTable(w io.Writer, s *database.Stats) error {
	fmt.Fprintln(w, "Recipe Collection")
	fmt.Fprintln(w, strings.Repeat("-", 30))
	fmt.Fprintf(w, "Total recipes:       %d\n", s.TotalRecipes)
	fmt.Fprintf(w, "From landing pages:  %d\n", s.LandingPages)
	fmt.Fprintf(w, "Added manually:      %d\n", s.ManualAdds)

	if len(s.BySource) > 0 {
		fmt.Fprintln(w)
		fmt.Fprintln(w, "By source:")

		sources := make([]string, 0, len(s.BySource))
		for source := range s.BySource {
			sources = append(sources, source)
		}
		sort.Strings(sources)

		tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
		for _, source := range sources {
			fmt.Fprintf(tw, "  %s\t%d\n", source, s.BySource[source])
		}
		if err := tw.Flush(); err != nil {
			return err
		}
	}

	return nil
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max-3] + "..."
}
