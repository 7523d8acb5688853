package urlutil

import "testing"

func TestUnwrapRedirect(t *testing.T) {
	tests := []struct {
		name string
		href string
		want string
	}{
		{
			name: "google redirect",
			href: "https://www.google.com/url?q=https%3A%2F%2Fwww.skinnytaste.com%2Fchicken-tacos%2F",
			want: "https://www.skinnytaste.com/chicken-tacos/",
		},
		{
			name: "google redirect with extra params",
			href: "https://google.com/url?q=https%3A%2F%2Fexample.com%2Frecipe&sa=D&usg=abc",
			want: "https://example.com/recipe",
		},
		{
			name: "plain url unchanged",
			href: "https://www.skinnytaste.com/chicken-tacos/",
			want: "https://www.skinnytaste.com/chicken-tacos/",
		},
		{
			name: "google host but not redirect path",
			href: "https://www.google.com/search?q=tacos",
			want: "https://www.google.com/search?q=tacos",
		},
		{
			name: "redirect path without q param",
			href: "https://www.google.com/url?sa=D",
			want: "https://www.google.com/url?sa=D",
		},
		{
			name: "malformed url unchanged",
			href: "http://%zz",
			want: "http://%zz",
		},
		{
			name: "empty string",
			href: "",
			want: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := UnwrapRedirect(tt.href); got != tt.want {
				t.Errorf("UnwrapRedirect(%q) = %q, want %q", tt.href, got, tt.want)
			}
		})
	}
}

func TestHomepage(t *testing.T) {
	tests := []struct {
		rawurl string
		want   string
	}{
		{"https://www.skinnytaste.com/chicken-tacos/", "https://www.skinnytaste.com"},
		{"http://example.com/a/b/c?x=1", "http://example.com"},
		{"https://findthelostkitchen.com", "https://findthelostkitchen.com"},
	}

	for _, tt := range tests {
		if got := Homepage(tt.rawurl); got != tt.want {
			t.Errorf("Homepage(%q) = %q, want %q", tt.rawurl, got, tt.want)
		}
	}
}

func TestTitleFromPath(t *testing.T) {
	tests := []struct {
		name   string
		rawurl string
		want   string
	}{
		{
			name:   "hyphenated slug",
			rawurl: "https://example.com/easy-chicken-tacos/",
			want:   "Easy Chicken Tacos",
		},
		{
			name:   "nested path uses last segment",
			rawurl: "https://example.com/recipes/2024/slow-cooker-chili",
			want:   "Slow Cooker Chili",
		},
		{
			name:   "html suffix stripped",
			rawurl: "https://example.com/apple-pie.html",
			want:   "Apple Pie",
		},
		{
			name:   "underscores",
			rawurl: "https://example.com/beef_stew_recipe",
			want:   "Beef Stew Recipe",
		},
		{
			name:   "no path segments",
			rawurl: "https://example.com/",
			want:   "",
		},
		{
			name:   "bare host",
			rawurl: "https://example.com",
			want:   "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := TitleFromPath(tt.rawurl); got != tt.want {
				t.Errorf("TitleFromPath(%q) = %q, want %q", tt.rawurl, got, tt.want)
			}
		})
	}
}
