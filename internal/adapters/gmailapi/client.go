// Package gmailapi reads messages from the Gmail REST API.
package gmailapi

import (
	"context"
	"fmt"

	"go.uber.org/zap"
	"golang.org/x/oauth2"
	"google.golang.org/api/gmail/v1"
	"google.golang.org/api/option"

	"github.com/syncapply/syncapply/internal/core"
	"github.com/syncapply/syncapply/internal/extract"
)

// Client is a MailSource backed by the Gmail API, bound to one user's
// access token. Calls are single-attempt; upstream failures surface to the
// caller untouched.
type Client struct {
	svc    *gmail.Service
	logger *zap.Logger
}

// NewClient builds a Gmail client for a bearer access token. Tokens arrive
// per HTTP request, so a fresh client is constructed for each caller.
func NewClient(ctx context.Context, accessToken string, logger *zap.Logger) (*Client, error) {
	source := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: accessToken})
	svc, err := gmail.NewService(ctx, option.WithTokenSource(source))
	if err != nil {
		return nil, fmt.Errorf("failed to create Gmail service: %w", err)
	}
	return &Client{
		svc:    svc,
		logger: logger,
	}, nil
}

// NewSourceFactory returns a MailSourceFactory that builds per-token clients.
func NewSourceFactory(logger *zap.Logger) core.MailSourceFactory {
	return func(ctx context.Context, accessToken string) (core.MailSource, error) {
		return NewClient(ctx, accessToken, logger)
	}
}

// List returns refs for messages matching a Gmail search query.
func (c *Client) List(ctx context.Context, query string, maxResults int64) ([]core.MessageRef, error) {
	res, err := c.svc.Users.Messages.List("me").Q(query).MaxResults(maxResults).Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("failed to list messages: %w", err)
	}

	refs := make([]core.MessageRef, 0, len(res.Messages))
	for _, m := range res.Messages {
		refs = append(refs, core.MessageRef{ID: m.Id, ThreadID: m.ThreadId})
	}
	c.logger.Debug("Listed messages",
		zap.String("query", query),
		zap.Int("count", len(refs)))
	return refs, nil
}

// Fetch retrieves one message in full detail and extracts its content.
func (c *Client) Fetch(ctx context.Context, id string) (*core.ExtractedEmail, error) {
	msg, err := c.svc.Users.Messages.Get("me", id).Format("full").Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("failed to fetch message %s: %w", id, err)
	}
	return extract.Extract(msg), nil
}
