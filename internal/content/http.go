package content

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// HTTPSource reads content from the blog's REST API.
type HTTPSource struct {
	BaseURL string
	Client  *http.Client
}

// NewHTTPSource returns a source for the API at baseURL, e.g.
// http://localhost:8000/api/v1.
func NewHTTPSource(baseURL string) *HTTPSource {
	return &HTTPSource{
		BaseURL: strings.TrimRight(baseURL, "/"),
		Client:  &http.Client{Timeout: 10 * time.Second},
	}
}

// StatusError is returned for non-2xx responses.
type StatusError struct {
	Method string
	Path   string
	Code   int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("%s %s: unexpected status %d", e.Method, e.Path, e.Code)
}

func (s *HTTPSource) do(ctx context.Context, method, path string, body, out any) error {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, s.BaseURL+path, reader)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := s.Client.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return fmt.Errorf("%s: %w", path, ErrNotFound)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &StatusError{Method: method, Path: path, Code: resp.StatusCode}
	}
	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode %s: %w", path, err)
	}
	return nil
}

// Catalog fetches posts, quests and items.
func (s *HTTPSource) Catalog(ctx context.Context) (Catalog, error) {
	var cat Catalog
	if err := s.do(ctx, http.MethodGet, "/content/posts", nil, &cat.Posts); err != nil {
		return Catalog{}, err
	}
	if err := s.do(ctx, http.MethodGet, "/content/quests", nil, &cat.Quests); err != nil {
		return Catalog{}, err
	}
	if err := s.do(ctx, http.MethodGet, "/content/items", nil, &cat.Items); err != nil {
		return Catalog{}, err
	}
	return cat, nil
}

// Post fetches one post by slug.
func (s *HTTPSource) Post(ctx context.Context, slug string) (Post, error) {
	var p Post
	if err := s.do(ctx, http.MethodGet, "/content/posts/"+url.PathEscape(slug), nil, &p); err != nil {
		return Post{}, err
	}
	return p, nil
}

// SendContact posts a contact message.
func (s *HTTPSource) SendContact(ctx context.Context, msg ContactMessage) error {
	return s.do(ctx, http.MethodPost, "/contact", msg, nil)
}
