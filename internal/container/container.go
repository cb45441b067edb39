package container

import (
	"context"
	"fmt"
	"log"

	"datapreview/adapters/api"
	"datapreview/adapters/catalog"
	"datapreview/adapters/excel"
	"datapreview/app"
	"datapreview/internal/config"
	"datapreview/internal/i18n"
	"datapreview/ui/render"

	"github.com/jmoiron/sqlx"
)

// Container holds all application dependencies and manages their lifecycle
type Container struct {
	Config *config.Config

	// Infrastructure
	DB *sqlx.DB

	// Repositories (data access layer)
	Catalog catalog.Repository

	// Upstream access
	Previews *api.PreviewClient

	// Presentation
	Localizer *i18n.Localizer
	Renderer  *render.Renderer
	Loader    *app.PreviewLoader
	Workbooks *excel.WorkbookWriter
}

// New creates a new dependency injection container
func New(cfg *config.Config) (*Container, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config cannot be nil")
	}

	c := &Container{
		Config:    cfg,
		Localizer: i18n.New(cfg.UI.Language),
	}

	client, err := api.NewPreviewClient(cfg.Upstream)
	if err != nil {
		return nil, err
	}
	c.Previews = client

	renderer, err := render.NewRenderer(c.Localizer)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize renderer: %w", err)
	}
	c.Renderer = renderer
	c.Loader = app.NewPreviewLoader(client, renderer)
	c.Workbooks = excel.NewWorkbookWriter(c.Localizer)

	log.Printf("[Container] Upstream %s, language %s", cfg.Upstream.BaseURL, c.Localizer.Tag())
	return c, nil
}

// InitWithDatabase opens the catalog database and its repository
func (c *Container) InitWithDatabase(ctx context.Context) error {
	db, err := catalog.Open(ctx, c.Config.Catalog)
	if err != nil {
		return err
	}

	c.DB = db
	c.Catalog = catalog.NewRepository(db)
	return nil
}

// Shutdown gracefully shuts down all components
func (c *Container) Shutdown(ctx context.Context) error {
	if c.DB != nil {
		if err := c.DB.Close(); err != nil {
			return fmt.Errorf("failed to close catalog database: %w", err)
		}
		c.DB = nil
	}
	log.Println("[Container] Shutdown complete")
	return nil
}
