package imagesearch

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"strings"
	"time"
)

const userAgent = "mangareel/0.1.0"

// maxImageBytes caps a single cover download.
const maxImageBytes = 32 << 20

// Searcher resolves a title to a cover image URL. An empty result with a nil
// error means no cover was found; callers fall back to a placeholder.
type Searcher interface {
	Search(ctx context.Context, title string) (string, error)
}

// Client queries SerpAPI's Google Images engine for cover art.
type Client struct {
	apiKey     string
	baseURL    string
	httpClient *http.Client
}

var _ Searcher = (*Client)(nil)

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient overrides the default HTTP client.
func WithHTTPClient(client *http.Client) Option {
	return func(c *Client) {
		if client != nil {
			c.httpClient = client
		}
	}
}

// New creates a cover search client. When the API key is empty a disabled
// client is returned that finds nothing, so placeholder art is used.
func New(apiKey, baseURL string, timeout time.Duration, opts ...Option) Searcher {
	apiKey = strings.TrimSpace(apiKey)
	if apiKey == "" {
		return disabled{}
	}
	baseURL = strings.TrimSpace(baseURL)
	if baseURL == "" {
		baseURL = "https://serpapi.com/search.json"
	}
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	client := &Client{
		apiKey:     apiKey,
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
	}
	for _, opt := range opts {
		opt(client)
	}
	return client
}

type imageResult struct {
	Original  string `json:"original"`
	Thumbnail string `json:"thumbnail"`
}

type searchResponse struct {
	ImagesResults []imageResult `json:"images_results"`
	Images        []imageResult `json:"images"`
}

// Search returns the first image result's URL for "<title> manga cover".
func (c *Client) Search(ctx context.Context, title string) (string, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return "", errors.New("search title required")
	}

	params := url.Values{}
	params.Set("engine", "google")
	params.Set("q", title+" manga cover")
	params.Set("tbm", "isch")
	params.Set("api_key", c.apiKey)
	params.Set("num", "1")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"?"+params.Encode(), nil)
	if err != nil {
		return "", fmt.Errorf("build search request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("search cover: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return "", fmt.Errorf("search returned %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}

	var payload searchResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return "", fmt.Errorf("decode search response: %w", err)
	}

	results := payload.ImagesResults
	if len(results) == 0 {
		results = payload.Images
	}
	if len(results) == 0 {
		return "", nil
	}
	if results[0].Original != "" {
		return results[0].Original, nil
	}
	return results[0].Thumbnail, nil
}

type disabled struct{}

func (disabled) Search(context.Context, string) (string, error) { return "", nil }

// Download fetches an image URL to dest, bounded by a size cap.
func Download(ctx context.Context, client *http.Client, imageURL, dest string) error {
	if client == nil {
		client = &http.Client{Timeout: 20 * time.Second}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, imageURL, nil)
	if err != nil {
		return fmt.Errorf("build download request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := client.Do(req)
	if err != nil {
		return fmt.Errorf("download image: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("image download returned %d", resp.StatusCode)
	}

	file, err := os.Create(dest)
	if err != nil {
		return fmt.Errorf("create image file: %w", err)
	}
	defer file.Close()

	if _, err := io.Copy(file, io.LimitReader(resp.Body, maxImageBytes)); err != nil {
		return fmt.Errorf("write image file: %w", err)
	}
	return nil
}
