package container

import (
	"context"
	"testing"

	"datapreview/internal/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/language"
)

func testConfig() *config.Config {
	return &config.Config{
		Upstream: config.UpstreamConfig{BaseURL: "http://backend.local"},
		Catalog:  config.CatalogConfig{DatabaseURL: ":memory:"},
		UI:       config.UIConfig{Language: "en", RenderConcurrency: 2},
	}
}

func TestNew(t *testing.T) {
	c, err := New(testConfig())
	require.NoError(t, err)

	assert.Equal(t, language.English, c.Localizer.Tag())
	assert.Equal(t, "http://backend.local/preview/7/", c.Previews.PreviewURL("7"))
	assert.NotNil(t, c.Renderer)
	assert.NotNil(t, c.Loader)
	assert.Nil(t, c.Catalog)
}

func TestNewRejectsNilConfig(t *testing.T) {
	_, err := New(nil)
	assert.Error(t, err)
}

func TestNewRejectsBadUpstream(t *testing.T) {
	cfg := testConfig()
	cfg.Upstream.BaseURL = "backend.local"

	_, err := New(cfg)
	assert.Error(t, err)
}

func TestInitWithDatabase(t *testing.T) {
	c, err := New(testConfig())
	require.NoError(t, err)

	require.NoError(t, c.InitWithDatabase(context.Background()))
	files, err := c.Catalog.List(context.Background())
	require.NoError(t, err)
	assert.Empty(t, files)

	require.NoError(t, c.Shutdown(context.Background()))
	assert.Nil(t, c.DB)
}
