package ui

import (
	"log"
	"net/http"

	"datapreview/internal/errors"

	"github.com/gin-gonic/gin"
)

// renderPage writes a rendered page, or a JSON error when rendering failed
func (s *Server) renderPage(c *gin.Context, name string, page []byte, err error) {
	if err != nil {
		log.Printf("[Server] Template error for %s: %v", name, err)
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Template rendering failed", "details": err.Error()})
		return
	}
	c.Data(http.StatusOK, "text/html; charset=utf-8", page)
}

// abortWithError maps an application error onto an HTTP status
func abortWithError(c *gin.Context, err error) {
	status := http.StatusInternalServerError
	switch errors.GetCode(err) {
	case errors.CodeNotFound:
		status = http.StatusNotFound
	case errors.CodeInvalidInput:
		status = http.StatusBadRequest
	case errors.CodeUpstream, errors.CodeMalformedResponse:
		status = http.StatusBadGateway
	}
	log.Printf("[Server] %s %s failed (%d): %v", c.Request.Method, c.Request.URL.Path, status, err)
	if !errors.IsAppError(err) {
		// plain errors may carry internals, keep them in the log
		c.AbortWithStatusJSON(status, gin.H{"error": http.StatusText(status)})
		return
	}
	c.AbortWithStatusJSON(status, gin.H{"error": err.Error()})
}
