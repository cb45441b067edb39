package app

import (
	"context"
	"fmt"
	"html/template"
	"strings"
	"sync"
	"testing"

	"datapreview/domain/preview"
	"datapreview/internal/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockPreviewFetcher struct {
	mock.Mock
}

func (m *MockPreviewFetcher) FetchPreview(ctx context.Context, fileID string) (*preview.Response, error) {
	args := m.Called(ctx, fileID)
	resp, _ := args.Get(0).(*preview.Response)
	return resp, args.Error(1)
}

type stubRenderer struct {
	failPreview bool
}

func (stubRenderer) Loading() (template.HTML, error) {
	return `<div class="spinner-border"></div>`, nil
}

func (stubRenderer) ErrorPanel(message string) (template.HTML, error) {
	return template.HTML(`<div class="alert alert-danger">` + template.HTMLEscapeString(message) + `</div>`), nil
}

func (s stubRenderer) Preview(resp *preview.Response) (template.HTML, error) {
	if s.failPreview {
		return "", fmt.Errorf("template exploded")
	}
	return template.HTML(fmt.Sprintf(`<table data-columns="%d" data-rows="%d"></table>`, len(resp.Columns), len(resp.Rows))), nil
}

func (stubRenderer) LoadFailedMessage() string {
	return "Erreur lors du chargement des données"
}

type recordingContainer struct {
	mu      sync.Mutex
	history []template.HTML
	failOn  int
}

func (c *recordingContainer) Replace(content template.HTML) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.history = append(c.history, content)
	if c.failOn > 0 && len(c.history) == c.failOn {
		return fmt.Errorf("container detached")
	}
	return nil
}

func (c *recordingContainer) last() string {
	return string(c.history[len(c.history)-1])
}

func TestLoadPreviewRendersTable(t *testing.T) {
	fetcher := new(MockPreviewFetcher)
	resp, err := preview.Parse([]byte(`{"columns": ["A", "B"], "data": [{"A": 1}, {"A": 2}, {"A": 3}]}`))
	require.NoError(t, err)
	fetcher.On("FetchPreview", mock.Anything, "7").Return(resp, nil)

	c := &recordingContainer{}
	outcome, err := NewPreviewLoader(fetcher, stubRenderer{}).LoadPreview(context.Background(), "7", c)

	require.NoError(t, err)
	assert.Equal(t, OutcomeRendered, outcome)
	require.Len(t, c.history, 2)
	assert.Contains(t, string(c.history[0]), "spinner-border")
	assert.Equal(t, `<table data-columns="2" data-rows="3"></table>`, c.last())
	fetcher.AssertExpectations(t)
}

func TestLoadReturnsFetchedResponse(t *testing.T) {
	fetcher := new(MockPreviewFetcher)
	resp, err := preview.Parse([]byte(`{"columns": ["A"], "data": [{"A": 1}]}`))
	require.NoError(t, err)
	fetcher.On("FetchPreview", mock.Anything, "7").Return(resp, nil).Once()
	fetcher.On("FetchPreview", mock.Anything, "8").Return(nil, errors.Upstream("preview", fmt.Errorf("connection refused"))).Once()

	loader := NewPreviewLoader(fetcher, stubRenderer{})

	outcome, got, err := loader.Load(context.Background(), "7", &recordingContainer{})
	require.NoError(t, err)
	assert.Equal(t, OutcomeRendered, outcome)
	assert.Same(t, resp, got)

	outcome, got, err = loader.Load(context.Background(), "8", &recordingContainer{})
	require.NoError(t, err)
	assert.Equal(t, OutcomeLoadFailed, outcome)
	assert.Nil(t, got)
	fetcher.AssertExpectations(t)
}

func TestLoadPreviewServerError(t *testing.T) {
	fetcher := new(MockPreviewFetcher)
	fetcher.On("FetchPreview", mock.Anything, "9").Return(&preview.Response{HasError: true, Error: "Fichier <introuvable>"}, nil)

	c := &recordingContainer{}
	outcome, err := NewPreviewLoader(fetcher, stubRenderer{}).LoadPreview(context.Background(), "9", c)

	require.NoError(t, err)
	assert.Equal(t, OutcomeServerError, outcome)
	assert.Contains(t, c.last(), "Fichier &lt;introuvable&gt;")
	assert.NotContains(t, c.last(), "<table")
}

func TestLoadPreviewFetchFailureShowsGenericMessage(t *testing.T) {
	for name, cause := range map[string]error{
		"transport": errors.Upstream("preview", fmt.Errorf("connection refused")),
		"malformed": errors.Malformed("preview body is not valid JSON"),
	} {
		fetcher := new(MockPreviewFetcher)
		fetcher.On("FetchPreview", mock.Anything, "3").Return(nil, cause)

		c := &recordingContainer{}
		outcome, err := NewPreviewLoader(fetcher, stubRenderer{}).LoadPreview(context.Background(), "3", c)

		require.NoError(t, err, name)
		assert.Equal(t, OutcomeLoadFailed, outcome, name)
		assert.Contains(t, c.last(), "Erreur lors du chargement des données", name)
		assert.NotContains(t, c.last(), "spinner", name)
		assert.NotContains(t, c.last(), "connection refused", name)
	}
}

func TestLoadPreviewRenderFailureShowsGenericMessage(t *testing.T) {
	fetcher := new(MockPreviewFetcher)
	fetcher.On("FetchPreview", mock.Anything, "1").Return(&preview.Response{Columns: []string{"A"}}, nil)

	c := &recordingContainer{}
	outcome, err := NewPreviewLoader(fetcher, stubRenderer{failPreview: true}).LoadPreview(context.Background(), "1", c)

	require.NoError(t, err)
	assert.Equal(t, OutcomeLoadFailed, outcome)
	assert.Contains(t, c.last(), "Erreur lors du chargement")
}

func TestLoadPreviewContainerFailure(t *testing.T) {
	fetcher := new(MockPreviewFetcher)

	c := &recordingContainer{failOn: 1}
	_, err := NewPreviewLoader(fetcher, stubRenderer{}).LoadPreview(context.Background(), "1", c)

	require.Error(t, err)
	fetcher.AssertNotCalled(t, "FetchPreview", mock.Anything, mock.Anything)
}

func TestLoadPreviewConcurrentLoadsAreIndependent(t *testing.T) {
	fetcher := new(MockPreviewFetcher)
	for i := 0; i < 5; i++ {
		id := fmt.Sprint(i)
		fetcher.On("FetchPreview", mock.Anything, id).Return(&preview.Response{Columns: []string{id}}, nil)
	}
	loader := NewPreviewLoader(fetcher, stubRenderer{})

	containers := make([]*recordingContainer, 5)
	var wg sync.WaitGroup
	for i := range containers {
		containers[i] = &recordingContainer{}
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, err := loader.LoadPreview(context.Background(), fmt.Sprint(i), containers[i])
			assert.NoError(t, err)
		}(i)
	}
	wg.Wait()

	for _, c := range containers {
		require.Len(t, c.history, 2)
		assert.True(t, strings.HasPrefix(c.last(), `<table data-columns="1"`))
	}
	fetcher.AssertNumberOfCalls(t, "FetchPreview", 5)
}

func TestOutcomeString(t *testing.T) {
	assert.Equal(t, "rendered", OutcomeRendered.String())
	assert.Equal(t, "server_error", OutcomeServerError.String())
	assert.Equal(t, "load_failed", OutcomeLoadFailed.String())
}
