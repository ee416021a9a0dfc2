// Package avatar fetches the profile image from the external avatar
// service. The service is decorative, so every failure degrades to the
// embedded placeholder instead of an error.
package avatar

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"time"
)

// DefaultURL is the external profile-image endpoint.
const DefaultURL = "https://images.unsplash.com/photo-1494790108377-be9c29b29330?w=400"

const fetchTimeout = 3 * time.Second

// maxImageBytes caps how much of the upstream response is read.
const maxImageBytes = 5 << 20

// Placeholder is served whenever the upstream image is unavailable.
var Placeholder = []byte(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 40 40"><circle cx="20" cy="20" r="20" fill="#e5e7eb"/><circle cx="20" cy="15" r="7" fill="#9ca3af"/><path d="M6 36a14 14 0 0 1 28 0" fill="#9ca3af"/></svg>`)

const placeholderContentType = "image/svg+xml"

// Image is a fetched avatar, or the placeholder when Degraded is set.
type Image struct {
	Data        []byte
	ContentType string
	Degraded    bool
}

type Fetcher struct {
	client *http.Client
	url    string
}

func NewFetcher(url string) *Fetcher {
	if url == "" {
		url = DefaultURL
	}
	return &Fetcher{
		client: &http.Client{Timeout: fetchTimeout},
		url:    url,
	}
}

// Fetch returns the profile image, or the placeholder on any failure.
func (f *Fetcher) Fetch(ctx context.Context) Image {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, f.url, nil)
	if err != nil {
		return f.degrade(ctx, err)
	}

	resp, err := f.client.Do(req)
	if err != nil {
		return f.degrade(ctx, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		slog.WarnContext(ctx, "Avatar service returned non-OK status",
			"status", resp.StatusCode, "url", f.url)
		return placeholderImage()
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxImageBytes))
	if err != nil || len(data) == 0 {
		return f.degrade(ctx, err)
	}

	contentType := resp.Header.Get("Content-Type")
	if contentType == "" {
		contentType = http.DetectContentType(data)
	}
	return Image{Data: data, ContentType: contentType}
}

func (f *Fetcher) degrade(ctx context.Context, err error) Image {
	slog.WarnContext(ctx, "Avatar fetch failed, serving placeholder",
		"error", err, "url", f.url)
	return placeholderImage()
}

func placeholderImage() Image {
	return Image{Data: Placeholder, ContentType: placeholderContentType, Degraded: true}
}
