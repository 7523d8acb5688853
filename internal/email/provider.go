// Package email defines the mailbox capability the sync pipeline consumes.
package email

import (
	"context"
	"time"
)

// Metadata is the subset of message headers the pipeline needs.
type Metadata struct {
	Subject string
	Date    time.Time
}

// Provider defines the interface for mailbox providers
type Provider interface {
	// Name returns the provider identifier
	Name() string

	// Authenticate performs OAuth or credential validation
	Authenticate(ctx context.Context) error

	// IsAuthenticated checks if valid credentials exist
	IsAuthenticated() bool

	// ListMessages returns IDs of messages matching the query, newest
	// first, up to maxResults.
	ListMessages(ctx context.Context, query string, maxResults int) ([]string, error)

	// GetMetadata retrieves a message's subject and date headers.
	GetMetadata(ctx context.Context, id string) (*Metadata, error)

	// GetBodyHTML retrieves a message's HTML body, preferring the
	// text/html part of multipart messages. Returns "" when the message
	// has no decodable body.
	GetBodyHTML(ctx context.Context, id string) (string, error)
}
