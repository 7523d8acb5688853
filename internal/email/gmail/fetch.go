package gmail

import (
	"encoding/base64"
	"fmt"
	"strings"
	"time"

	"google.golang.org/api/gmail/v1"

	"github.com/mvreilly/recipebox/internal/email"
)

// convertMetadata extracts Subject and Date headers from a Gmail message
func convertMetadata(msg *gmail.Message) *email.Metadata {
	meta := &email.Metadata{
		Subject: "(no subject)",
	}

	if msg.Payload != nil {
		for _, header := range msg.Payload.Headers {
			switch strings.ToLower(header.Name) {
			case "subject":
				if header.Value != "" {
					meta.Subject = header.Value
				}
			case "date":
				if t, err := parseDate(header.Value); err == nil {
					meta.Date = t
				}
			}
		}
	}

	// Fallback to internal timestamp if date parsing failed
	if meta.Date.IsZero() && msg.InternalDate > 0 {
		meta.Date = time.Unix(msg.InternalDate/1000, 0)
	}

	return meta
}

// parseDate attempts to parse various date formats
func parseDate(s string) (time.Time, error) {
	formats := []string{
		time.RFC1123Z,
		time.RFC1123,
		"Mon, 2 Jan 2006 15:04:05 -0700",
		"Mon, 2 Jan 2006 15:04:05 MST",
		"2 Jan 2006 15:04:05 -0700",
		"Mon, 02 Jan 2006 15:04:05 -0700 (MST)",
	}

	for _, format := range formats {
		if t, err := time.Parse(format, s); err == nil {
			return t, nil
		}
	}

	return time.Time{}, fmt.Errorf("unable to parse date: %s", s)
}

// extractHTMLBody extracts the HTML body from the message payload,
// preferring a text/html part and falling back to the top-level body.
func extractHTMLBody(payload *gmail.MessagePart) string {
	if html := extractPartByMime(payload, "text/html"); html != "" {
		return html
	}

	// Single-part message: decode the top-level body whatever its type
	if payload != nil && payload.Body != nil && payload.Body.Data != "" {
		if decoded, err := base64.URLEncoding.DecodeString(payload.Body.Data); err == nil {
			return string(decoded)
		}
	}

	return ""
}

// extractPartByMime recursively finds a part with the given MIME type
func extractPartByMime(part *gmail.MessagePart, mimeType string) string {
	if part == nil {
		return ""
	}

	if strings.HasPrefix(part.MimeType, mimeType) {
		if part.Body != nil && part.Body.Data != "" {
			decoded, err := base64.URLEncoding.DecodeString(part.Body.Data)
			if err == nil {
				return string(decoded)
			}
		}
	}

	for _, subpart := range part.Parts {
		if result := extractPartByMime(subpart, mimeType); result != "" {
			return result
		}
	}

	return ""
}
