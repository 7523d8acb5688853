// Package gmail implements the mailbox provider on top of the Gmail API.
package gmail

import (
	"context"
	"fmt"

	"google.golang.org/api/gmail/v1"
	"google.golang.org/api/option"

	"github.com/mvreilly/recipebox/internal/email"
)

// Provider implements the email.Provider interface for Gmail
type Provider struct {
	credPath  string
	tokenPath string
	service   *gmail.Service
}

// New creates a new Gmail provider
func New(credPath, tokenPath string) *Provider {
	return &Provider{
		credPath:  credPath,
		tokenPath: tokenPath,
	}
}

// Name returns the provider identifier
func (p *Provider) Name() string {
	return "gmail"
}

// IsAuthenticated checks if valid token exists
func (p *Provider) IsAuthenticated() bool {
	_, err := loadToken(p.tokenPath)
	return err == nil
}

// Authenticate performs OAuth authentication
func (p *Provider) Authenticate(ctx context.Context) error {
	config, err := loadCredentials(p.credPath)
	if err != nil {
		return err
	}

	client, err := getClient(ctx, config, p.tokenPath)
	if err != nil {
		return fmt.Errorf("failed to get OAuth client: %w", err)
	}

	service, err := gmail.NewService(ctx, option.WithHTTPClient(client))
	if err != nil {
		return fmt.Errorf("failed to create Gmail service: %w", err)
	}

	p.service = service
	return nil
}

// ListMessages returns IDs of messages matching the Gmail search query.
func (p *Provider) ListMessages(ctx context.Context, query string, maxResults int) ([]string, error) {
	if p.service == nil {
		return nil, fmt.Errorf("not authenticated - call Authenticate() first")
	}

	var ids []string
	pageToken := ""

	for {
		req := p.service.Users.Messages.List("me").
			Q(query).
			MaxResults(int64(min(maxResults-len(ids), 100)))

		if pageToken != "" {
			req = req.PageToken(pageToken)
		}

		resp, err := req.Context(ctx).Do()
		if err != nil {
			return nil, fmt.Errorf("failed to list messages: %w", err)
		}

		for _, msg := range resp.Messages {
			ids = append(ids, msg.Id)
			if len(ids) >= maxResults {
				return ids, nil
			}
		}

		pageToken = resp.NextPageToken
		if pageToken == "" || len(ids) >= maxResults {
			break
		}
	}

	return ids, nil
}

// GetMetadata retrieves a message's Subject and Date headers.
func (p *Provider) GetMetadata(ctx context.Context, id string) (*email.Metadata, error) {
	if p.service == nil {
		return nil, fmt.Errorf("not authenticated")
	}

	msg, err := p.service.Users.Messages.Get("me", id).
		Format("metadata").
		MetadataHeaders("Subject", "Date").
		Context(ctx).
		Do()
	if err != nil {
		return nil, fmt.Errorf("failed to get message metadata: %w", err)
	}

	return convertMetadata(msg), nil
}

// GetBodyHTML retrieves the HTML body of a message.
func (p *Provider) GetBodyHTML(ctx context.Context, id string) (string, error) {
	if p.service == nil {
		return "", fmt.Errorf("not authenticated")
	}

	msg, err := p.service.Users.Messages.Get("me", id).
		Format("full").
		Context(ctx).
		Do()
	if err != nil {
		return "", fmt.Errorf("failed to get message: %w", err)
	}

	return extractHTMLBody(msg.Payload), nil
}

func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}
