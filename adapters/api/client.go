package api

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"datapreview/domain/preview"
	"datapreview/internal"
	"datapreview/internal/config"
	"datapreview/internal/errors"
)

// maxBodyBytes caps how much of a preview body is read
const maxBodyBytes = 32 << 20

// PreviewClient fetches previews from the upstream backend
type PreviewClient struct {
	baseURL    string
	httpClient *http.Client
	logger     *internal.Logger
}

// NewPreviewClient creates a client for the configured upstream
func NewPreviewClient(cfg config.UpstreamConfig) (*PreviewClient, error) {
	base, err := url.Parse(cfg.BaseURL)
	if err != nil || base.Scheme == "" || base.Host == "" {
		return nil, errors.ConfigInvalid("invalid upstream URL: " + cfg.BaseURL)
	}
	return &PreviewClient{
		baseURL: strings.TrimRight(base.String(), "/"),
		httpClient: &http.Client{
			Timeout: cfg.Timeout,
		},
		logger: internal.NewComponentLogger("Upstream"),
	}, nil
}

// PreviewURL returns the absolute URL of the preview resource for fileID
func (c *PreviewClient) PreviewURL(fileID string) string {
	return c.baseURL + "/preview/" + url.PathEscape(fileID) + "/"
}

// FetchPreview issues GET /preview/{id}/ and parses the body whatever the
// status code: the backend reports logical failures in the "error" field.
func (c *PreviewClient) FetchPreview(ctx context.Context, fileID string) (*preview.Response, error) {
	if fileID == "" || fileID == "." || fileID == ".." {
		return nil, errors.InvalidInput(fmt.Sprintf("invalid file id %q", fileID))
	}

	startTime := time.Now()
	target := c.PreviewURL(fileID)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return nil, errors.Wrap(err, "failed to build preview request")
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Warn("GET %s failed: %v", target, err)
		return nil, errors.Upstream("preview", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return nil, errors.Upstream("preview", fmt.Errorf("failed to read response: %w", err))
	}

	parsed, err := preview.Parse(body)
	if err != nil {
		c.logger.Warn("GET %s -> %d, unreadable body (%d bytes)", target, resp.StatusCode, len(body))
		return nil, errors.Wrapf(err, "preview %s returned status %d", fileID, resp.StatusCode)
	}

	c.logger.Debug("GET %s -> %d (%d bytes, %s)", target, resp.StatusCode, len(body), time.Since(startTime).Round(time.Millisecond))
	return parsed, nil
}
