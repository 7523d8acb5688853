package recipe

import (
	"context"
	"fmt"
	"net/url"
	"os"
	"strings"

	"github.com/mvreilly/recipebox/internal/page"
)

// A candidate page with at least this many distinct "Get the Recipe"
// links is treated as a multi-recipe landing page; below it, the page is
// assumed to be a single recipe with at most one extra CTA. Heuristic
// cutoff, tune here if a source changes its layout.
const lostKitchenLandingMin = 2

// The Lost Kitchen's footer links to their shop with CTA-like text.
const lostKitchenFooterText = "everyday shop"

// LostKitchen is a landing-page source: newsletter links may point at a
// digest page listing several recipes, each behind its own CTA.
type LostKitchen struct {
	fetcher page.Fetcher
	domains []string
}

// NewLostKitchen creates the Lost Kitchen provider.
func NewLostKitchen(f page.Fetcher) *LostKitchen {
	return &LostKitchen{
		fetcher: f,
		domains: []string{"thelostkitchen", "findthelostkitchen"},
	}
}

// Name returns the stable source identifier.
func (p *LostKitchen) Name() string { return "the_lost_kitchen" }

// Matches reports whether url belongs to The Lost Kitchen.
func (p *LostKitchen) Matches(url string) bool {
	return domainMatch(url, p.domains)
}

// ExtractLinks keeps anchors whose path or text looks recipe-related.
func (p *LostKitchen) ExtractLinks(_ context.Context, emailHTML string) []string {
	var links []string
	for _, a := range collectAnchors(emailHTML) {
		if !p.Matches(a.href) {
			continue
		}
		if strings.Contains(a.path, "unsubscribe") || strings.Contains(a.path, "account") {
			continue
		}
		if strings.Contains(a.path, "recipe") || strings.Contains(a.text, "recipe") ||
			strings.Contains(a.path, "very+good") {
			links = append(links, a.href)
		}
	}
	return dedupe(links)
}

// Resolve fetches the candidate page and scans it for "Get the Recipe"
// CTAs. Two or more distinct links make it a landing page, one resolution
// per link with the candidate as parent. A failed fetch, or fewer than
// two links, degrades to treating the candidate as a recipe page itself.
func (p *LostKitchen) Resolve(ctx context.Context, candidate string) []Resolution {
	body, err := p.fetcher.Fetch(ctx, candidate)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not fetch %s: %v\n", candidate, err)
		return []Resolution{{Parent: candidate, URL: candidate}}
	}

	base, baseErr := url.Parse(candidate)

	var recipeLinks []string
	for _, a := range collectAnchors(body) {
		if strings.Contains(a.text, lostKitchenFooterText) {
			continue
		}
		if !strings.Contains(a.text, "get") || !strings.Contains(a.text, "recipe") {
			continue
		}

		href := a.href
		if baseErr == nil {
			if ref, err := url.Parse(href); err == nil {
				href = base.ResolveReference(ref).String()
			}
		}
		recipeLinks = append(recipeLinks, href)
	}
	recipeLinks = dedupe(recipeLinks)

	if len(recipeLinks) < lostKitchenLandingMin {
		return []Resolution{{Parent: candidate, URL: candidate}}
	}

	resolutions := make([]Resolution, 0, len(recipeLinks))
	for _, link := range recipeLinks {
		resolutions = append(resolutions, Resolution{Parent: candidate, URL: link})
	}
	return resolutions
}
