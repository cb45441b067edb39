package ui

import (
	"html/template"
	"log"
	"net/http"

	"datapreview/ui/middleware"
	"datapreview/ui/render"

	"github.com/gin-gonic/gin"
)

// OutcomeHeader reports which view a preview load ended on
const OutcomeHeader = "X-Preview-Outcome"

// handlePreviewFragment returns the final content of the preview container.
// Load failures are part of the content, so the status stays 200.
func (s *Server) handlePreviewFragment(c *gin.Context) {
	fileID := c.Param("id")
	buf := render.NewBuffer()

	outcome, err := s.loader.LoadPreview(c.Request.Context(), fileID, buf)
	if err != nil {
		abortWithError(c, err)
		return
	}

	c.Header(OutcomeHeader, outcome.String())
	c.Data(http.StatusOK, "text/html; charset=utf-8", []byte(buf.Content()))
}

// handlePreviewStream streams every replacement of the preview container as
// a "replace" event, then a "done" event carrying the outcome
func (s *Server) handlePreviewStream(c *gin.Context) {
	fileID := c.Param("id")

	c.Header("Content-Type", "text/event-stream")
	c.Header("Cache-Control", "no-cache")
	c.Header("Connection", "keep-alive")

	stream := &streamContainer{c: c}
	outcome, err := s.loader.LoadPreview(c.Request.Context(), fileID, stream)
	if err != nil {
		log.Printf("[SSE] Stream for file %s (request %s) ended early: %v",
			fileID, c.GetString(middleware.RequestIDKey), err)
		return
	}

	c.SSEvent("done", outcome.String())
	c.Writer.Flush()
}

// replaceEvent is the payload of a "replace" event. The HTML travels as a
// JSON string: plain event data cannot carry a carriage return.
type replaceEvent struct {
	HTML string `json:"html"`
}

// streamContainer is a preview container whose replacements go to an event stream
type streamContainer struct {
	c *gin.Context
}

// Replace sends content as one "replace" event
func (sc *streamContainer) Replace(content template.HTML) error {
	if err := sc.c.Request.Context().Err(); err != nil {
		return err
	}
	sc.c.SSEvent("replace", replaceEvent{HTML: string(content)})
	sc.c.Writer.Flush()
	return nil
}
