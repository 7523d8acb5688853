package recipe

import (
	"context"
	"fmt"
	"os"

	"github.com/mvreilly/recipebox/internal/page"
)

// Anchor text that marks a recipe call-to-action button in Skinnytaste
// newsletters.
var skinnytasteCTAs = []string{
	"get the recipe",
	"get recipe",
	"view recipe",
	"read more",
}

// Paths that point at account management rather than recipes.
var accountPaths = []string{"preferences", "unsubscribe", "account"}

// Skinnytaste is a direct-recipe source: newsletter buttons link straight
// to recipe pages, but through MailChimp tracking URLs that must be
// de-referenced to get a clean address.
type Skinnytaste struct {
	fetcher page.Fetcher
	domains []string
}

// NewSkinnytaste creates the Skinnytaste provider.
func NewSkinnytaste(f page.Fetcher) *Skinnytaste {
	return &Skinnytaste{
		fetcher: f,
		domains: []string{"skinnytaste.us", "skinnytaste.com"},
	}
}

// Name returns the stable source identifier.
func (p *Skinnytaste) Name() string { return "skinnytaste" }

// Matches reports whether url belongs to Skinnytaste, including its
// MailChimp tracking domain.
func (p *Skinnytaste) Matches(url string) bool {
	return domainMatch(url, p.domains)
}

// ExtractLinks finds "GET THE RECIPE" buttons and follows their tracking
// redirects to clean recipe URLs. A button whose redirect cannot be
// followed is dropped; the rest of the email still yields links.
func (p *Skinnytaste) ExtractLinks(ctx context.Context, emailHTML string) []string {
	var links []string
	for _, a := range collectAnchors(emailHTML) {
		if !p.Matches(a.href) {
			continue
		}
		if matchesAny(a.path, accountPaths) {
			continue
		}
		if !matchesAny(a.text, skinnytasteCTAs) {
			continue
		}

		clean, err := p.fetcher.FinalURL(ctx, a.href)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Warning: could not follow redirect for %s: %v\n", a.href, err)
			continue
		}
		links = append(links, clean)
	}
	return dedupe(links)
}

// Resolve treats every candidate as a recipe page itself.
func (p *Skinnytaste) Resolve(_ context.Context, candidate string) []Resolution {
	return []Resolution{{Parent: candidate, URL: candidate}}
}
