package mailer

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"path"
	"time"

	"github.com/google/uuid"
)

// HTTPClient sends mail through a Resend-style HTTP API. When no API key is
// configured the client runs in simulated mode: the mail is logged instead of
// sent and a synthetic message id is returned, so staging environments work
// without a transport account.
type HTTPClient struct {
	baseURL    *url.URL
	apiKey     string
	from       string
	override   string
	httpClient *http.Client
	logger     *slog.Logger
}

type sendRequest struct {
	From    string   `json:"from"`
	To      []string `json:"to"`
	Subject string   `json:"subject"`
	HTML    string   `json:"html"`
}

type sendResponse struct {
	ID string `json:"id"`
}

type errorResponse struct {
	Name    string `json:"name"`
	Message string `json:"message"`
}

// APIError is a structured failure returned by the mail API.
type APIError struct {
	StatusCode int
	Name       string
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("mail api error %d (%s): %s", e.StatusCode, e.Name, e.Message)
}

// NewHTTPClient creates the mail transport client.
func NewHTTPClient(baseURL, apiKey, from, override string, logger *slog.Logger) (*HTTPClient, error) {
	parsed, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("parse mail api url: %w", err)
	}
	if !parsed.IsAbs() {
		return nil, fmt.Errorf("mail api url must be absolute")
	}
	return &HTTPClient{
		baseURL:  parsed,
		apiKey:   apiKey,
		from:     from,
		override: override,
		logger:   logger,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}, nil
}

// Send delivers one message. A configured override address silently replaces
// the recipient so staging runs never reach real customers.
func (c *HTTPClient) Send(ctx context.Context, to, subject, body string) (string, error) {
	recipient := to
	if c.override != "" {
		recipient = c.override
	}

	if c.apiKey == "" {
		c.logger.Warn("mail transport not configured, simulating delivery",
			slog.String("to", recipient),
			slog.String("original_to", to),
			slog.String("subject", subject),
		)
		return "simulated_" + uuid.NewString(), nil
	}

	payload, err := json.Marshal(sendRequest{
		From:    c.from,
		To:      []string{recipient},
		Subject: subject,
		HTML:    body,
	})
	if err != nil {
		return "", err
	}

	endpoint := *c.baseURL
	endpoint.Path = path.Join(endpoint.Path, "/emails")

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint.String(), bytes.NewReader(payload))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", err
	}

	if resp.StatusCode != http.StatusOK {
		var apiErr errorResponse
		if err := json.Unmarshal(raw, &apiErr); err != nil || apiErr.Message == "" {
			apiErr.Message = string(raw)
		}
		return "", &APIError{StatusCode: resp.StatusCode, Name: apiErr.Name, Message: apiErr.Message}
	}

	var data sendResponse
	if err := json.Unmarshal(raw, &data); err != nil {
		return "", err
	}
	return data.ID, nil
}
