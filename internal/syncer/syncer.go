// Package syncer drives one full sync pass: list mailbox messages,
// extract and resolve recipe links, derive titles, persist records.
package syncer

import (
	"context"
	"fmt"
	"time"

	"github.com/mvreilly/recipebox/internal/database"
	"github.com/mvreilly/recipebox/internal/email"
	"github.com/mvreilly/recipebox/internal/recipe"
	"github.com/mvreilly/recipebox/internal/urlutil"
)

// TitleFetcher derives a display title for a recipe page; an empty string
// means "no title" and the caller falls through to the next source.
type TitleFetcher interface {
	FetchTitle(ctx context.Context, url string) string
}

// Syncer orchestrates the recipe sync pipeline
type Syncer struct {
	db         *database.DB
	mailbox    email.Provider
	registry   *recipe.Registry
	titles     TitleFetcher
	query      string
	maxResults int
}

// New creates a new Syncer. query is the mailbox search used to recognize
// recipe newsletters; maxResults caps one run.
func New(db *database.DB, mailbox email.Provider, registry *recipe.Registry, titles TitleFetcher, query string, maxResults int) *Syncer {
	return &Syncer{
		db:         db,
		mailbox:    mailbox,
		registry:   registry,
		titles:     titles,
		query:      query,
		maxResults: maxResults,
	}
}

// SyncOptions configures the sync behavior
type SyncOptions struct {
	Progress ProgressCallback // Optional progress callback
}

// Result contains the results of a sync operation. Errors holds per-message
// failures that were collected rather than raised; they never abort a run.
type Result struct {
	MessagesProcessed int
	RecipesFound      int
	RecipesInserted   int
	Duplicates        int
	Errors            []error
}

// Sync runs one pass with default options.
func (s *Syncer) Sync(ctx context.Context) (*Result, error) {
	return s.SyncWithOptions(ctx, SyncOptions{})
}

// SyncWithOptions runs one full sync pass. Messages are processed
// sequentially; a message that yields no recipes, or whose body cannot be
// fetched, is skipped and the run continues. Only listing failures (bad
// credentials, dead mailbox) are fatal.
func (s *Syncer) SyncWithOptions(ctx context.Context, opts SyncOptions) (*Result, error) {
	result := &Result{}

	report := func(phase ProgressPhase, current, total int, desc string) {
		if opts.Progress != nil {
			opts.Progress(Progress{
				Phase:       phase,
				Current:     current,
				Total:       total,
				Description: desc,
			})
		}
	}

	report(PhaseListingMessages, 0, 0, "Listing messages")
	ids, err := s.mailbox.ListMessages(ctx, s.query, s.maxResults)
	if err != nil {
		return nil, fmt.Errorf("failed to list messages: %w", err)
	}
	report(PhaseListingMessages, len(ids), len(ids), "Listing complete")

	if len(ids) == 0 {
		return result, nil
	}

	for i, id := range ids {
		report(PhaseExtracting, i+1, len(ids), "Extracting recipes")

		if err := s.processMessage(ctx, id, result); err != nil {
			result.Errors = append(result.Errors, fmt.Errorf("message %s: %w", id, err))
			continue
		}
		result.MessagesProcessed++
	}

	return result, nil
}

// processMessage extracts and persists every recipe found in one message.
func (s *Syncer) processMessage(ctx context.Context, id string, result *Result) error {
	meta, err := s.mailbox.GetMetadata(ctx, id)
	if err != nil {
		return fmt.Errorf("fetching metadata: %w", err)
	}

	body, err := s.mailbox.GetBodyHTML(ctx, id)
	if err != nil {
		return fmt.Errorf("fetching body: %w", err)
	}

	recipes := s.registry.ExtractAll(ctx, body)
	if len(recipes) == 0 {
		// Not an error: a matching message without recipe links happens
		return nil
	}
	result.RecipesFound += len(recipes)

	for _, r := range recipes {
		title := s.resolveTitle(ctx, r.URL, meta.Subject)
		homepage := urlutil.Homepage(r.URL)

		var parentURL *string
		if r.Parent != r.URL {
			parent := r.Parent
			parentURL = &parent
		}

		record := &database.Recipe{
			MessageID: id,
			Source:    r.Provider,
			Title:     title,
			URL:       r.URL,
			ParentURL: parentURL,
			Homepage:  &homepage,
			CreatedAt: time.Now(),
		}

		inserted, err := s.db.InsertIfAbsent(ctx, record)
		if err != nil {
			result.Errors = append(result.Errors, fmt.Errorf("saving %s: %w", r.URL, err))
			continue
		}
		if inserted {
			result.RecipesInserted++
		} else {
			result.Duplicates++
		}
	}

	return nil
}

// resolveTitle evaluates the title fallback chain left to right, stopping
// at the first non-empty result. The URL-derived title ranks above the
// email subject so every recipe in a multi-recipe digest gets its own
// title instead of sharing the subject line.
func (s *Syncer) resolveTitle(ctx context.Context, url, subject string) string {
	fallbacks := []func() string{
		func() string { return s.titles.FetchTitle(ctx, url) },
		func() string { return urlutil.TitleFromPath(url) },
		func() string { return subject },
	}

	for _, next := range fallbacks {
		if title := next(); title != "" {
			return title
		}
	}
	return subject
}
