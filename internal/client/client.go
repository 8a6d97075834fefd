package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"

	"transaction-entry/internal/domain"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	"golang.org/x/oauth2"
)

const (
	accountsPath     = "/accounts"
	transactionsPath = "/transactions"
)

// APIError is returned when the server answers with a non-2xx status
type APIError struct {
	StatusCode int
	Body       string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api error (status %d): %s", e.StatusCode, e.Body)
}

type Client struct {
	baseURL    string
	httpClient *http.Client
	log        *log.Logger
}

// NewClient builds a client whose requests carry a bearer token from tokens.
// A nil logger falls back to a stderr logger.
func NewClient(baseURL string, tokens oauth2.TokenSource, logger *log.Logger) (*Client, error) {
	baseURL = strings.TrimRight(strings.TrimSpace(baseURL), "/")
	if baseURL == "" {
		return nil, errors.New("api base url is required")
	}
	if tokens == nil {
		return nil, errors.New("token source is required")
	}
	if logger == nil {
		logger = log.NewWithOptions(os.Stderr, log.Options{Prefix: "api-client"})
	}

	return &Client{
		baseURL:    baseURL,
		httpClient: oauth2.NewClient(context.Background(), tokens),
		log:        logger,
	}, nil
}

// ListAccounts fetches the accounts a transaction can be booked against
func (c *Client) ListAccounts(ctx context.Context) ([]domain.Account, error) {
	var accounts []domain.Account
	if err := c.do(ctx, http.MethodGet, accountsPath, nil, &accounts); err != nil {
		return nil, fmt.Errorf("failed to list accounts: %w", err)
	}

	c.log.Info("successfully fetched accounts", "count", len(accounts))
	return accounts, nil
}

func (c *Client) CreateTransaction(ctx context.Context, tx domain.Transaction) error {
	if err := c.do(ctx, http.MethodPost, transactionsPath, tx, nil); err != nil {
		return fmt.Errorf("failed to create transaction: %w", err)
	}

	c.log.Info("transaction created successfully",
		"account_number", tx.AccountNumber, "type", tx.TransactionType, "category", tx.Category)
	return nil
}

// do sends body as JSON (when non-nil) and decodes a JSON response into out (when non-nil)
func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode request: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	requestID := uuid.NewString()
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-ID", requestID)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	c.log.Debug("sending request", "method", method, "path", path, "request_id", requestID)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &APIError{StatusCode: resp.StatusCode, Body: strings.TrimSpace(string(respBody))}
	}

	if out == nil || len(bytes.TrimSpace(respBody)) == 0 {
		return nil
	}
	if err := json.Unmarshal(respBody, out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}
