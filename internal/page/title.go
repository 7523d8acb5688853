package page

import (
	"context"
	"fmt"
	"html"
	"os"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// titleSeparators are the characters recipe sites use to append the site
// name to a <title>, e.g. "Chicken Tacos – Skinnytaste".
var titleSeparators = []string{"|", "—", "–", "-"}

// titleStrategy extracts a candidate title from a parsed page. Strategies
// are tried in order; the first non-empty result wins.
type titleStrategy func(doc *goquery.Document) string

var titleStrategies = []titleStrategy{
	ogTitle,
	firstH1,
	titleTag,
}

// TitleFetcher derives display titles for recipe pages.
type TitleFetcher struct {
	fetcher Fetcher
}

// NewTitleFetcher creates a TitleFetcher backed by the given page fetcher.
func NewTitleFetcher(f Fetcher) *TitleFetcher {
	return &TitleFetcher{fetcher: f}
}

// FetchTitle fetches the page at url and extracts a title. Any fetch or
// parse failure yields "" — network flakiness must never abort a sync, so
// failures are logged and swallowed. No retries are made.
func (t *TitleFetcher) FetchTitle(ctx context.Context, url string) string {
	body, err := t.fetcher.Fetch(ctx, url)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not fetch %s: %v\n", url, err)
		return ""
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(body))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not parse %s: %v\n", url, err)
		return ""
	}

	return ExtractTitle(doc)
}

// ExtractTitle runs the title strategies in priority order: og:title, then
// the first <h1>, then the <title> tag.
func ExtractTitle(doc *goquery.Document) string {
	for _, strategy := range titleStrategies {
		if title := strategy(doc); title != "" {
			return title
		}
	}
	return ""
}

func ogTitle(doc *goquery.Document) string {
	content, _ := doc.Find(`meta[property="og:title"]`).First().Attr("content")
	return strings.TrimSpace(content)
}

func firstH1(doc *goquery.Document) string {
	return strings.TrimSpace(doc.Find("h1").First().Text())
}

// titleTag reads the <title> element, truncating at the first separator so
// "Chicken Tacos – Skinnytaste" becomes "Chicken Tacos".
func titleTag(doc *goquery.Document) string {
	title := strings.TrimSpace(doc.Find("title").First().Text())
	if title == "" {
		return ""
	}

	for _, sep := range titleSeparators {
		if i := strings.Index(title, sep); i != -1 {
			title = strings.TrimSpace(title[:i])
			break
		}
	}
	return html.UnescapeString(title)
}
