package ui

import (
	"github.com/gin-gonic/gin"
)

// handleIndex renders the file list with its preview triggers and dialogs
func (s *Server) handleIndex(c *gin.Context) {
	files, err := s.catalog.List(c.Request.Context())
	if err != nil {
		abortWithError(c, err)
		return
	}

	page, err := s.renderer.IndexPage(files)
	s.renderPage(c, "index", page, err)
}
