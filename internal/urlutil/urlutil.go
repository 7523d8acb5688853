// Package urlutil contains small pure helpers for the URLs that show up in
// recipe newsletters: tracking-redirect unwrapping, homepage derivation,
// and slug-based fallback titles.
package urlutil

import (
	"net/url"
	"strings"
)

// UnwrapRedirect unwraps Google redirect URLs of the form
// https://www.google.com/url?q=<target>. Anything else, including input
// that fails to parse, is returned unchanged.
func UnwrapRedirect(href string) string {
	u, err := url.Parse(href)
	if err != nil {
		return href
	}

	if !strings.Contains(u.Host, "google.com") || u.Path != "/url" {
		return href
	}

	q := u.Query().Get("q")
	if q == "" {
		return href
	}

	if decoded, err := url.QueryUnescape(q); err == nil {
		return decoded
	}
	return q
}

// Homepage returns the scheme://host portion of rawurl.
func Homepage(rawurl string) string {
	u, err := url.Parse(rawurl)
	if err != nil {
		return rawurl
	}
	return u.Scheme + "://" + u.Host
}

// TitleFromPath derives a readable title from the last path segment of a
// URL, e.g. /easy-chicken-tacos/ -> "Easy Chicken Tacos". Returns "" when
// the path has no segments; callers treat that as "no title".
func TitleFromPath(rawurl string) string {
	u, err := url.Parse(rawurl)
	if err != nil {
		return ""
	}

	segment := strings.Trim(u.Path, "/")
	if i := strings.LastIndex(segment, "/"); i != -1 {
		segment = segment[i+1:]
	}

	segment = strings.TrimSuffix(segment, ".html")
	segment = strings.TrimSuffix(segment, ".htm")
	segment = strings.ReplaceAll(segment, "-", " ")
	segment = strings.ReplaceAll(segment, "_", " ")

	words := strings.Fields(segment)
	for i, w := range words {
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}
