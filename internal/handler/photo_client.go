package handler

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	middleware "github.com/octobees/nearby-restaurants/internal/middleware"
)

const maxPhotoBytes = 10 << 20

// PhotoFetcher downloads the media behind a synthesized photo URL.
type PhotoFetcher interface {
	Fetch(ctx context.Context, photoURL string, requestID string) (*Photo, error)
}

// Photo is a downloaded image.
type Photo struct {
	ContentType string
	Data        []byte
}

// PhotoClient fetches photos from the Places media endpoint.
type PhotoClient struct {
	client *http.Client
}

// NewPhotoClient builds a photo client; a nil client gets a 10 second timeout.
func NewPhotoClient(client *http.Client) *PhotoClient {
	if client == nil {
		client = &http.Client{Timeout: 10 * time.Second}
	}
	return &PhotoClient{client: client}
}

// Fetch downloads the photo. The media endpoint answers with a redirect to
// the image, which the client follows.
func (c *PhotoClient) Fetch(ctx context.Context, photoURL string, requestID string) (*Photo, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, photoURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create photo request: %w", err)
	}
	if requestID != "" {
		req.Header.Set(middleware.HeaderRequestID, requestID)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		var urlErr *url.Error
		if errors.As(err, &urlErr) {
			urlErr.URL = redactKey(urlErr.URL)
		}
		return nil, fmt.Errorf("photo request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return nil, fmt.Errorf("photo error (status %d): %s", resp.StatusCode, extractPhotoError(resp.Body))
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxPhotoBytes+1))
	if err != nil {
		return nil, fmt.Errorf("could not read photo: %w", err)
	}
	if len(data) > maxPhotoBytes {
		return nil, fmt.Errorf("photo exceeds %d bytes", maxPhotoBytes)
	}
	if len(data) == 0 {
		return nil, fmt.Errorf("photo response was empty")
	}

	contentType := resp.Header.Get("Content-Type")
	if contentType == "" {
		contentType = http.DetectContentType(data)
	}
	return &Photo{ContentType: contentType, Data: data}, nil
}

func extractPhotoError(body io.Reader) string {
	data, err := io.ReadAll(io.LimitReader(body, 4096))
	if err != nil || len(data) == 0 {
		return "media endpoint returned an error"
	}

	var payload struct {
		Error struct {
			Message string `json:"message"`
		} `json:"error"`
	}
	if err := json.Unmarshal(data, &payload); err == nil && payload.Error.Message != "" {
		return payload.Error.Message
	}
	return string(data)
}

// redactKey strips the credential from a photo URL before it is logged.
func redactKey(raw string) string {
	u, err := url.Parse(raw)
	if err != nil {
		return "<unparseable photo url>"
	}
	q := u.Query()
	if q.Has("key") {
		q.Set("key", "REDACTED")
		u.RawQuery = q.Encode()
	}
	return u.String()
}

var _ PhotoFetcher = (*PhotoClient)(nil)
