// Package recipe implements the extraction-and-resolution pipeline core:
// source-specific providers that pull candidate links out of newsletter
// HTML and resolve them to canonical recipe pages, plus the registry that
// dispatches across providers.
package recipe

import (
	"context"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/mvreilly/recipebox/internal/urlutil"
)

// Resolution maps a candidate link to a final recipe page. For direct
// recipe links Parent equals URL; callers treat that as "no parent".
type Resolution struct {
	Parent string
	URL    string
}

// Provider is the capability set implemented once per recipe source.
// Implementations are code-defined and registered at startup; new sources
// are added by a developer, not at runtime.
type Provider interface {
	// Name is the stable identifier stored as the source on records.
	Name() string

	// Matches reports whether a URL belongs to this provider's domains.
	Matches(url string) bool

	// ExtractLinks pulls candidate recipe URLs out of one email's HTML,
	// deduplicated, order of first appearance preserved.
	ExtractLinks(ctx context.Context, emailHTML string) []string

	// Resolve maps a candidate link to one or more final recipe pages,
	// deduplicated by recipe URL. Landing pages yield multiple
	// resolutions; direct links yield exactly one with Parent == URL.
	Resolve(ctx context.Context, candidate string) []Resolution
}

// anchor is one <a href> from an email or landing page, with its href
// already unwrapped from tracking redirects.
type anchor struct {
	href string
	text string
	path string
}

// collectAnchors walks every anchor element in markup, unwrapping Google
// redirect hrefs and lowercasing text/path for matching.
func collectAnchors(markup string) []anchor {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(markup))
	if err != nil {
		return nil
	}

	var anchors []anchor
	doc.Find("a[href]").Each(func(_ int, s *goquery.Selection) {
		href, ok := s.Attr("href")
		if !ok || href == "" {
			return
		}
		href = urlutil.UnwrapRedirect(href)

		var path string
		if u, err := url.Parse(href); err == nil {
			path = strings.ToLower(u.Path)
		}

		anchors = append(anchors, anchor{
			href: href,
			text: strings.ToLower(strings.TrimSpace(s.Text())),
			path: path,
		})
	})
	return anchors
}

// matchesAny reports whether s contains any of the given substrings.
func matchesAny(s string, substrings []string) bool {
	for _, sub := range substrings {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}

// dedupe removes duplicate URLs preserving order of first appearance.
func dedupe(urls []string) []string {
	seen := make(map[string]struct{}, len(urls))
	var out []string
	for _, u := range urls {
		if _, ok := seen[u]; ok {
			continue
		}
		seen[u] = struct{}{}
		out = append(out, u)
	}
	return out
}

// domainMatch is the shared Matches implementation: case-insensitive
// substring match of the URL against a domain list.
func domainMatch(rawurl string, domains []string) bool {
	return matchesAny(strings.ToLower(rawurl), domains)
}
