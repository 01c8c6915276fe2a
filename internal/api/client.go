package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/nzaccagnino/studydesk/internal/domain"
)

// MasterKeyHeader authenticates every request against the document store.
const MasterKeyHeader = "X-Master-Key"

// ErrNotFound is returned when the bin does not exist yet.
var ErrNotFound = errors.New("bin not found")

// Client talks to a jsonbin-compatible document store: one bin holds the
// whole document.
type Client struct {
	baseURL    string
	binID      string
	masterKey  string
	httpClient *http.Client
}

// BinResponse is the envelope of every read and write.
type BinResponse struct {
	Record   json.RawMessage `json:"record"`
	Metadata BinMetadata     `json:"metadata"`
}

type BinMetadata struct {
	ID        string `json:"id,omitempty"`
	CreatedAt string `json:"createdAt,omitempty"`
	Private   bool   `json:"private"`
}

type ErrorResponse struct {
	Message string `json:"message"`
}

func NewClient(baseURL, binID, masterKey string) *Client {
	return &Client{
		baseURL:   strings.TrimRight(baseURL, "/"),
		binID:     binID,
		masterKey: masterKey,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// IsConfigured reports whether URL, bin id and key are all set. An
// unconfigured client must never be used for I/O.
func (c *Client) IsConfigured() bool {
	return c.baseURL != "" && c.binID != "" && c.masterKey != ""
}

func (c *Client) BinID() string {
	return c.binID
}

// Fetch reads the latest version of the bin. Collections that are absent or
// null in the stored record come back nil.
func (c *Client) Fetch(ctx context.Context) (domain.Document, error) {
	var resp BinResponse
	if err := c.get(ctx, "/b/"+c.binID+"/latest", &resp); err != nil {
		return domain.Document{}, err
	}

	var doc domain.Document
	if len(resp.Record) == 0 || string(resp.Record) == "null" {
		return doc, nil
	}
	if err := json.Unmarshal(resp.Record, &doc); err != nil {
		return domain.Document{}, fmt.Errorf("failed to decode record: %w", err)
	}
	return doc, nil
}

// Put overwrites the bin with doc. Last write wins.
func (c *Client) Put(ctx context.Context, doc domain.Document) error {
	return c.send(ctx, http.MethodPut, "/b/"+c.binID, doc, nil)
}

// Create makes a new bin holding doc and returns its id. The client keeps
// using its configured bin; callers persist the new id themselves.
func (c *Client) Create(ctx context.Context, doc domain.Document) (string, error) {
	var resp BinResponse
	if err := c.send(ctx, http.MethodPost, "/b", doc, &resp); err != nil {
		return "", err
	}
	if resp.Metadata.ID == "" {
		return "", errors.New("create response carries no bin id")
	}
	return resp.Metadata.ID, nil
}

// HTTP helpers

func (c *Client) get(ctx context.Context, path string, result interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return err
	}
	return c.doRequest(req, result)
}

func (c *Client) send(ctx context.Context, method, path string, body interface{}, result interface{}) error {
	jsonBody, err := json.Marshal(body)
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, bytes.NewReader(jsonBody))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	return c.doRequest(req, result)
}

func (c *Client) doRequest(req *http.Request, result interface{}) error {
	req.Header.Set(MasterKeyHeader, c.masterKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode == http.StatusNotFound {
		return ErrNotFound
	}
	if resp.StatusCode >= 400 {
		var errResp ErrorResponse
		if json.Unmarshal(body, &errResp) == nil && errResp.Message != "" {
			return fmt.Errorf("%s (status %d)", errResp.Message, resp.StatusCode)
		}
		return fmt.Errorf("request failed with status %d", resp.StatusCode)
	}

	if result != nil && len(body) > 0 {
		if err := json.Unmarshal(body, result); err != nil {
			return fmt.Errorf("failed to decode response: %w", err)
		}
	}

	return nil
}
