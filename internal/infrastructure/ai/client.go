package ai

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/doeshing/askcmd/internal/domain"
	"github.com/doeshing/askcmd/internal/ports"
)

// maxDiagnosticBytes caps how much of an unparseable body ends up in an error.
const maxDiagnosticBytes = 512

// Client talks to an OpenAI-compatible chat completions endpoint.
type Client struct {
	transport ports.Transport
	endpoint  string
	logger    ports.Logger
	requestID func() string
}

// NewClient builds a client posting to endpoint (the OpenAI endpoint when empty).
func NewClient(transport ports.Transport, endpoint string, logger ports.Logger) *Client {
	if endpoint == "" {
		endpoint = domain.DefaultEndpoint
	}
	return &Client{
		transport: transport,
		endpoint:  endpoint,
		logger:    logger,
		requestID: uuid.NewString,
	}
}

// Endpoint returns the URL requests are sent to.
func (c *Client) Endpoint() string {
	return c.endpoint
}

// Complete implements ports.CompletionClient.
func (c *Client) Complete(ctx context.Context, messages []domain.ConversationMessage, credential, model string) (string, error) {
	body, err := json.Marshal(chatCompletionRequest{Model: model, Messages: messages})
	if err != nil {
		return "", fmt.Errorf("encode request: %w", err)
	}

	requestID := c.requestID()
	headers := map[string]string{
		"Content-Type":  "application/json",
		"Authorization": "Bearer " + credential,
		"X-Request-Id":  requestID,
	}

	c.logger.Debug("calling completion endpoint", map[string]interface{}{
		"endpoint":   c.endpoint,
		"model":      model,
		"messages":   len(messages),
		"request_id": requestID,
	})

	started := time.Now()
	status, respBody, err := c.transport.Post(ctx, c.endpoint, headers, body)
	if err != nil {
		return "", domain.NewError(domain.ErrTransport, "POST "+c.endpoint, err)
	}

	c.logger.Debug("completion endpoint responded", map[string]interface{}{
		"status":     status,
		"bytes":      len(respBody),
		"latency_ms": time.Since(started).Milliseconds(),
		"request_id": requestID,
	})

	return parseCompletion(status, respBody)
}

func parseCompletion(status int, body []byte) (string, error) {
	var decoded chatCompletionResponse
	parseErr := json.Unmarshal(body, &decoded)

	if status >= http.StatusBadRequest {
		detail := http.StatusText(status)
		if parseErr == nil && decoded.Error != nil {
			detail = decoded.Error.String()
		}
		return "", domain.NewUpstreamError("completion", status, errors.New(detail))
	}
	if parseErr != nil {
		return "", domain.NewUpstreamError("completion", status,
			fmt.Errorf("decode response: %w (body: %s)", parseErr, truncate(body, maxDiagnosticBytes)))
	}

	content, ok := decoded.FirstMessage()
	if !ok {
		detail := "response contained no choices"
		if decoded.Error != nil {
			detail = decoded.Error.String()
		}
		return "", domain.NewUpstreamError("completion", status, errors.New(detail))
	}
	return content, nil
}

func truncate(body []byte, limit int) string {
	if len(body) <= limit {
		return string(body)
	}
	return string(body[:limit]) + "..."
}

var _ ports.CompletionClient = (*Client)(nil)
