package recipe

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

// fakeFetcher serves canned pages and redirect targets for tests.
type fakeFetcher struct {
	pages  map[string]string // Fetch responses by URL
	finals map[string]string // FinalURL responses by URL; identity if absent
}

func (f *fakeFetcher) Fetch(_ context.Context, url string) (string, error) {
	body, ok := f.pages[url]
	if !ok {
		return "", errors.New("fetch failed")
	}
	return body, nil
}

func (f *fakeFetcher) FinalURL(_ context.Context, url string) (string, error) {
	if final, ok := f.finals[url]; ok {
		if final == "" {
			return "", errors.New("redirect failed")
		}
		return final, nil
	}
	return url, nil
}

const skinnytasteEmail = `<html><body>
<a href="https://www.google.com/url?q=https%3A%2F%2Fskinnytaste.us%2Ftrack%2Fabc">GET THE RECIPE</a>
<a href="https://skinnytaste.us/track/def">View Recipe</a>
<a href="https://skinnytaste.us/track/abc">Get the recipe</a>
<a href="https://www.skinnytaste.com/preferences/update">Update preferences</a>
<a href="https://www.skinnytaste.com/unsubscribe">Unsubscribe</a>
<a href="https://example.com/other">GET THE RECIPE</a>
<a href="https://skinnytaste.us/track/xyz">Some other text</a>
</body></html>`

func TestSkinnytasteExtractLinks(t *testing.T) {
	f := &fakeFetcher{
		finals: map[string]string{
			"https://skinnytaste.us/track/abc": "https://www.skinnytaste.com/chicken-tacos",
			"https://skinnytaste.us/track/def": "https://www.skinnytaste.com/beef-stew",
		},
	}
	p := NewSkinnytaste(f)

	links := p.ExtractLinks(context.Background(), skinnytasteEmail)

	// CTA anchors only, redirects unwrapped and de-referenced, duplicates
	// collapsed, first-appearance order preserved. The example.com anchor
	// and the account/preferences links never make it in.
	assert.Equal(t, []string{
		"https://www.skinnytaste.com/chicken-tacos",
		"https://www.skinnytaste.com/beef-stew",
	}, links)
}

func TestSkinnytasteExtractLinks_RedirectFailureDropsLink(t *testing.T) {
	f := &fakeFetcher{
		finals: map[string]string{
			"https://skinnytaste.us/track/abc": "", // fails
			"https://skinnytaste.us/track/def": "https://www.skinnytaste.com/beef-stew",
		},
	}
	p := NewSkinnytaste(f)

	links := p.ExtractLinks(context.Background(), skinnytasteEmail)

	assert.Equal(t, []string{"https://www.skinnytaste.com/beef-stew"}, links)
}

func TestSkinnytasteMatches(t *testing.T) {
	p := NewSkinnytaste(&fakeFetcher{})

	assert.True(t, p.Matches("https://www.skinnytaste.com/chicken-tacos"))
	assert.True(t, p.Matches("https://SKINNYTASTE.US/track/abc"))
	assert.False(t, p.Matches("https://example.com/recipe"))
}

func TestSkinnytasteResolve_Direct(t *testing.T) {
	p := NewSkinnytaste(&fakeFetcher{})

	res := p.Resolve(context.Background(), "https://www.skinnytaste.com/chicken-tacos")

	assert.Equal(t, []Resolution{{
		Parent: "https://www.skinnytaste.com/chicken-tacos",
		URL:    "https://www.skinnytaste.com/chicken-tacos",
	}}, res)
}
