package ui

import (
	"log"
	"net/http"

	"datapreview/adapters/catalog"
	"datapreview/adapters/excel"
	"datapreview/app"
	"datapreview/internal/container"
	"datapreview/ui/middleware"
	"datapreview/ui/render"

	"github.com/gin-gonic/gin"
)

// Server represents the web server of the preview views
type Server struct {
	router    *gin.Engine
	catalog   catalog.Repository
	fetcher   app.PreviewFetcher
	loader    *app.PreviewLoader
	renderer  *render.Renderer
	workbooks *excel.WorkbookWriter
}

// NewServer creates a server on the components of c, with its middleware
// and routes in place. c must have its catalog open.
func NewServer(c *container.Container) *Server {
	s := &Server{
		router:    gin.Default(),
		catalog:   c.Catalog,
		fetcher:   c.Previews,
		loader:    c.Loader,
		renderer:  c.Renderer,
		workbooks: c.Workbooks,
	}

	s.setupMiddleware()
	s.setupRoutes()
	return s
}

// setupMiddleware configures Gin middleware
func (s *Server) setupMiddleware() {
	s.router.Use(middleware.RequestID())

	log.Printf("[Static] Serving static files from embedded FS at /static")
	s.router.StaticFS("/static", http.FS(render.StaticFS()))
}

// setupRoutes configures the application routes
func (s *Server) setupRoutes() {
	s.router.GET("/", s.handleIndex)
	s.router.GET("/healthz", s.handleHealth)

	// preview container content, as a final fragment or as a stream of replacements
	s.router.GET("/ui/preview/:id", s.handlePreviewFragment)
	s.router.GET("/ui/preview/:id/stream", s.handlePreviewStream)
	s.router.GET("/ui/preview/:id/workbook.xlsx", s.handleWorkbook)

	s.router.GET("/files/:id/statistics", s.handleStatistics)
	s.router.GET("/files/:id/chart.png", s.handleChartPNG)
}

// Handler exposes the router, mostly for tests
func (s *Server) Handler() http.Handler {
	return s.router
}

// Start starts the web server
func (s *Server) Start(addr string) error {
	log.Printf("[Server] Starting preview UI on http://%s", addr)
	return s.router.Run(addr)
}

func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
