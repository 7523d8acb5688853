package database

import (
	"database/sql"
	"time"
)

// ManualMessageID is the message_id used for recipes added by hand rather
// than found in an email. It shares the (message_id, url) uniqueness
// constraint, so the same URL can only be added manually once.
const ManualMessageID = "manual"

// Recipe is a persisted recipe record. ParentURL is set only when the
// recipe was found on a multi-recipe landing page; for direct recipe
// links it is nil.
type Recipe struct {
	ID        string    `json:"id"`
	MessageID string    `json:"message_id"`
	Source    string    `json:"source"`
	Title     string    `json:"title"`
	URL       string    `json:"url"`
	ParentURL *string   `json:"parent_url,omitempty"`
	Homepage  *string   `json:"homepage,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// IsManual reports whether the recipe was added by hand.
func (r *Recipe) IsManual() bool {
	return r.MessageID == ManualMessageID
}

// Stats represents aggregate statistics over the store.
type Stats struct {
	TotalRecipes int            `json:"total_recipes"`
	BySource     map[string]int `json:"by_source"`
	LandingPages int            `json:"landing_pages"`
	ManualAdds   int            `json:"manual_adds"`
}

// ListOptions contains options for listing recipes
type ListOptions struct {
	Search string // LIKE match over title and url
	Source string // exact source match
	Limit  int
	Offset int
}

// NullString is a helper to convert *string to sql.NullString
func NullString(s *string) sql.NullString {
	if s == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: *s, Valid: true}
}

// StringPtr converts sql.NullString to *string
func StringPtr(ns sql.NullString) *string {
	if !ns.Valid {
		return nil
	}
	return &ns.String
}
