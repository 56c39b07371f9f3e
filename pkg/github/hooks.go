package github

import (
	"context"
	"fmt"
	"net/http"

	"github.com/sgaunet/gitci/pkg/endpoint"
)

// WebhookOptions tunes webhook creation. The zero value delivers push
// events with certificate validation disabled on the remote side.
type WebhookOptions struct {
	// Events to deliver. Defaults to ["push"].
	Events []string

	// VerifySSL makes the remote validate the hook endpoint's TLS
	// certificate. Off by default: GitHub used to reject certain
	// CA-issued certificates, so deliveries default to insecure_ssl.
	VerifySSL bool
}

// CreateWebhook creates a JSON push webhook on the repository, delivering
// to url and signing with secret. Success is a 201; anything else fails
// with a [endpoint.StatusError].
func (c *Client) CreateWebhook(ctx context.Context, owner, repo, url, secret string, options WebhookOptions) error {
	events := options.Events
	if len(events) == 0 {
		events = []string{"push"}
	}

	request := createWebhookRequest{
		Name:   "web",
		Active: true,
		Events: events,
		Config: webhookConfig{
			URL:         url,
			ContentType: "json",
			Secret:      secret,
		},
	}
	if !options.VerifySSL {
		request.Config.InsecureSSL = "1"
	}

	opts, err := endpoint.JSONPayload(http.MethodPost, request)
	if err != nil {
		return fmt.Errorf("encoding webhook payload: %w", err)
	}

	resource := fmt.Sprintf("/repos/%s/%s/hooks", owner, repo)
	response, err := c.endpoint.Do(ctx, resource, opts)
	if err != nil {
		return fmt.Errorf("creating webhook on %s/%s: %w", owner, repo, err)
	}
	if response.StatusCode != http.StatusCreated {
		return endpoint.NewStatusError("create webhook", owner+"/"+repo, response)
	}
	return nil
}
