package recipe

import (
	"context"

	"github.com/mvreilly/recipebox/internal/page"
)

// Extracted is one resolved recipe attributed to its provider.
type Extracted struct {
	Provider string
	Parent   string
	URL      string
}

// Registry holds the ordered set of providers. Registration order is
// fixed at construction and significant: Find returns the first match.
type Registry struct {
	providers []Provider
}

// NewRegistry creates a registry with the given providers in order.
func NewRegistry(providers ...Provider) *Registry {
	return &Registry{providers: providers}
}

// DefaultRegistry builds the registry with every known source.
func DefaultRegistry(f page.Fetcher) *Registry {
	return NewRegistry(
		NewSkinnytaste(f),
		NewLostKitchen(f),
	)
}

// Providers returns the registered providers in registration order.
func (r *Registry) Providers() []Provider {
	return r.providers
}

// Find returns the first registered provider whose Matches reports true,
// or nil when no provider owns the URL.
func (r *Registry) Find(url string) Provider {
	for _, p := range r.providers {
		if p.Matches(url) {
			return p
		}
	}
	return nil
}

// ExtractAll runs every provider over one email's HTML and resolves each
// candidate link. Results are concatenated in registration order and
// deduplicated globally by recipe URL, keeping the first occurrence, so
// identical markup always yields identical output.
func (r *Registry) ExtractAll(ctx context.Context, emailHTML string) []Extracted {
	var results []Extracted
	seen := make(map[string]struct{})

	for _, p := range r.providers {
		for _, candidate := range p.ExtractLinks(ctx, emailHTML) {
			for _, res := range p.Resolve(ctx, candidate) {
				if _, ok := seen[res.URL]; ok {
					continue
				}
				seen[res.URL] = struct{}{}
				results = append(results, Extracted{
					Provider: p.Name(),
					Parent:   res.Parent,
					URL:      res.URL,
				})
			}
		}
	}
	return results
}
