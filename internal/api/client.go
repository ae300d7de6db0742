// Package api is the HTTP client for the recipe API gateway.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"net/url"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"recipebox/internal/model"
)

// ErrMalformedResponse is returned when a response body does not match the
// schema of its endpoint.
var ErrMalformedResponse = errors.New("malformed response")

// StatusError is returned for non-2xx responses.
type StatusError struct {
	Op     string
	Status int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("%s: API error: status %d", e.Op, e.Status)
}

// Options configures a Client.
type Options struct {
	Origin      string // scheme://host[:port], no trailing slash needed
	RecipesPath string
	UploadPath  string
	Timeout     time.Duration
}

// Client talks to the recipe API.
type Client struct {
	origin     string
	recipesURL string
	uploadURL  string
	httpClient *http.Client
}

// NewClient creates a new API client.
func NewClient(opts Options) *Client {
	if opts.RecipesPath == "" {
		opts.RecipesPath = "/recipes"
	}
	if opts.UploadPath == "" {
		opts.UploadPath = "/upload"
	}
	if opts.Timeout <= 0 {
		opts.Timeout = 10 * time.Second
	}
	origin := strings.TrimSuffix(opts.Origin, "/")
	return &Client{
		origin:     origin,
		recipesURL: origin + opts.RecipesPath,
		uploadURL:  origin + opts.UploadPath,
		httpClient: &http.Client{Timeout: opts.Timeout},
	}
}

// Origin returns the API origin used to absolutize relative URLs.
func (c *Client) Origin() string {
	return c.origin
}

// List fetches every recipe record.
func (c *Client) List(ctx context.Context) ([]model.RawRecipe, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.recipesURL, nil)
	if err != nil {
		return nil, fmt.Errorf("request creation failed: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	body, err := c.do(req, "list recipes")
	if err != nil {
		return nil, err
	}

	trimmed := bytes.TrimSpace(body)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return []model.RawRecipe{}, nil
	}
	if trimmed[0] != '[' {
		return nil, fmt.Errorf("list recipes: %w: expected array", ErrMalformedResponse)
	}

	var raws []model.RawRecipe
	if err := json.Unmarshal(trimmed, &raws); err != nil {
		return nil, fmt.Errorf("list recipes: %w: %v", ErrMalformedResponse, err)
	}
	return raws, nil
}

// Create posts a new recipe and returns its id.
func (c *Client) Create(ctx context.Context, p model.Payload) (int64, error) {
	body, err := c.sendJSON(ctx, http.MethodPost, c.recipesURL, p, "create recipe")
	if err != nil {
		return 0, err
	}

	var created model.CreateResponse
	if len(bytes.TrimSpace(body)) > 0 {
		if err := json.Unmarshal(body, &created); err != nil {
			return 0, fmt.Errorf("create recipe: %w: %v", ErrMalformedResponse, err)
		}
	}
	return int64(created.ID), nil
}

// Update replaces the recipe with the given id.
func (c *Client) Update(ctx context.Context, id int64, p model.Payload) error {
	_, err := c.sendJSON(ctx, http.MethodPut, c.byID(id), p, "update recipe")
	return err
}

// Delete removes the recipe with the given id.
func (c *Client) Delete(ctx context.Context, id int64) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodDelete, c.byID(id), nil)
	if err != nil {
		return fmt.Errorf("request creation failed: %w", err)
	}
	_, err = c.do(req, "delete recipe")
	return err
}

// Upload sends an image as multipart form field "image" and returns the URL
// reported by the server, which may be relative to the origin.
func (c *Client) Upload(ctx context.Context, filename, contentType string, r io.Reader) (string, error) {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	header := make(textproto.MIMEHeader)
	header.Set("Content-Disposition", fmt.Sprintf(`form-data; name="image"; filename=%q`, filepath.Base(filename)))
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	header.Set("Content-Type", contentType)

	part, err := w.CreatePart(header)
	if err != nil {
		return "", fmt.Errorf("upload image: %w", err)
	}
	if _, err := io.Copy(part, r); err != nil {
		return "", fmt.Errorf("upload image: %w", err)
	}
	if err := w.Close(); err != nil {
		return "", fmt.Errorf("upload image: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.uploadURL, &buf)
	if err != nil {
		return "", fmt.Errorf("request creation failed: %w", err)
	}
	req.Header.Set("Content-Type", w.FormDataContentType())
	req.Header.Set("Accept", "application/json")

	body, err := c.do(req, "upload image")
	if err != nil {
		return "", err
	}

	var uploaded model.UploadResponse
	if err := json.Unmarshal(body, &uploaded); err != nil {
		return "", fmt.Errorf("upload image: %w: %v", ErrMalformedResponse, err)
	}
	return uploaded.URL, nil
}

func (c *Client) byID(id int64) string {
	q := url.Values{}
	q.Set("id", strconv.FormatInt(id, 10))
	return c.recipesURL + "?" + q.Encode()
}

func (c *Client) sendJSON(ctx context.Context, method, target string, p model.Payload, op string) ([]byte, error) {
	data, err := json.Marshal(withEmptyLists(p))
	if err != nil {
		return nil, fmt.Errorf("%s: encode payload: %w", op, err)
	}
	req, err := http.NewRequestWithContext(ctx, method, target, bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("request creation failed: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	return c.do(req, op)
}

func (c *Client) do(req *http.Request, op string) ([]byte, error) {
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%s: network error: %w", op, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil, &StatusError{Op: op, Status: resp.StatusCode}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%s: read body: %w", op, err)
	}
	return body, nil
}

// withEmptyLists makes sure list fields encode as [] rather than null.
func withEmptyLists(p model.Payload) model.Payload {
	if p.Categories == nil {
		p.Categories = []string{}
	}
	if p.Tags == nil {
		p.Tags = []string{}
	}
	if p.Steps == nil {
		p.Steps = []string{}
	}
	return p
}
