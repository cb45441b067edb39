package app

import (
	"context"
	"html/template"
	"log"

	"datapreview/domain/preview"
	"datapreview/internal/errors"
)

// PreviewFetcher retrieves the preview of one file
type PreviewFetcher interface {
	FetchPreview(ctx context.Context, fileID string) (*preview.Response, error)
}

// ViewRenderer turns preview states into HTML
type ViewRenderer interface {
	Loading() (template.HTML, error)
	ErrorPanel(message string) (template.HTML, error)
	Preview(resp *preview.Response) (template.HTML, error)
	LoadFailedMessage() string
}

// Container receives rendered content. Each call replaces whatever the
// container showed before.
type Container interface {
	Replace(content template.HTML) error
}

// Outcome tells which view a load ended on
type Outcome int

const (
	OutcomeRendered Outcome = iota
	OutcomeServerError
	OutcomeLoadFailed
)

func (o Outcome) String() string {
	switch o {
	case OutcomeRendered:
		return "rendered"
	case OutcomeServerError:
		return "server_error"
	case OutcomeLoadFailed:
		return "load_failed"
	}
	return "unknown"
}

// PreviewLoader runs one preview load per call. Calls share nothing, so
// concurrent loads for different containers are independent.
type PreviewLoader struct {
	fetcher  PreviewFetcher
	renderer ViewRenderer
}

// NewPreviewLoader creates a loader
func NewPreviewLoader(fetcher PreviewFetcher, renderer ViewRenderer) *PreviewLoader {
	return &PreviewLoader{
		fetcher:  fetcher,
		renderer: renderer,
	}
}

// LoadPreview shows the loading indicator, fetches the preview of fileID and
// replaces the container with the error panel or the stats panel and table.
// Fetch, parse and render failures end on the generic localized message; the
// returned error is only set when the container itself could not be written.
func (l *PreviewLoader) LoadPreview(ctx context.Context, fileID string, c Container) (Outcome, error) {
	outcome, _, err := l.Load(ctx, fileID, c)
	return outcome, err
}

// Load is LoadPreview that also hands back the fetched response, nil when
// the fetch failed, for callers exporting the same data elsewhere.
func (l *PreviewLoader) Load(ctx context.Context, fileID string, c Container) (Outcome, *preview.Response, error) {
	loading, err := l.renderer.Loading()
	if err != nil {
		outcome, err := l.fail(c, fileID, errors.Wrap(err, "failed to render loading indicator"))
		return outcome, nil, err
	}
	if err := c.Replace(loading); err != nil {
		return OutcomeLoadFailed, nil, errors.Wrap(err, "failed to show loading indicator")
	}

	resp, err := l.fetcher.FetchPreview(ctx, fileID)
	if err != nil {
		outcome, err := l.fail(c, fileID, err)
		return outcome, nil, err
	}

	if resp.HasError {
		panel, err := l.renderer.ErrorPanel(resp.Error)
		if err != nil {
			outcome, err := l.fail(c, fileID, errors.Wrap(err, "failed to render error panel"))
			return outcome, resp, err
		}
		if err := c.Replace(panel); err != nil {
			return OutcomeServerError, resp, errors.Wrap(err, "failed to show error panel")
		}
		return OutcomeServerError, resp, nil
	}

	content, err := l.renderer.Preview(resp)
	if err != nil {
		outcome, err := l.fail(c, fileID, errors.Wrap(err, "failed to render preview"))
		return outcome, resp, err
	}
	if err := c.Replace(content); err != nil {
		return OutcomeRendered, resp, errors.Wrap(err, "failed to show preview")
	}
	return OutcomeRendered, resp, nil
}

func (l *PreviewLoader) fail(c Container, fileID string, cause error) (Outcome, error) {
	log.Printf("[Preview] Erreur: file %s: %v (code %s)", fileID, cause, errors.GetCode(cause))

	panel, err := l.renderer.ErrorPanel(l.renderer.LoadFailedMessage())
	if err != nil {
		panel = template.HTML(`<div class="alert alert-danger">` + template.HTMLEscapeString(l.renderer.LoadFailedMessage()) + `</div>`)
	}
	if err := c.Replace(panel); err != nil {
		return OutcomeLoadFailed, errors.Wrap(err, "failed to show load failure")
	}
	return OutcomeLoadFailed, nil
}
