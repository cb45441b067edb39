package ui

import (
	"bytes"
	"context"
	"log"
	"net/http"
	"net/url"

	"datapreview/domain/preview"
	"datapreview/internal/errors"
	"datapreview/ui/chart"
	"datapreview/ui/render"

	"github.com/gin-gonic/gin"
)

// handleStatistics renders the statistics table of a file and draws its chart
func (s *Server) handleStatistics(c *gin.Context) {
	ctx := c.Request.Context()
	fileID := c.Param("id")

	data := render.StatisticsData{FileID: fileID, Title: s.fileTitle(ctx, fileID)}
	resp, err := s.fetcher.FetchPreview(ctx, fileID)
	switch {
	case err != nil:
		data.Message = s.renderer.LoadFailedMessage()
	case resp.HasError:
		data.Message = resp.Error
	default:
		data.View = preview.NewView(resp)
	}

	page, err := s.renderer.StatisticsPage(data)
	if err == nil {
		page, err = chart.InitCharts(page, s.renderer.Localizer())
	}
	s.renderPage(c, "statistics", page, err)
}

// handleChartPNG draws the mean and median of each column as a PNG image
func (s *Server) handleChartPNG(c *gin.Context) {
	view, err := s.fetchView(c.Request.Context(), c.Param("id"))
	if err != nil {
		abortWithError(c, err)
		return
	}
	if !view.HasStats {
		abortWithError(c, errors.NotFound("statistics of file "+c.Param("id")))
		return
	}

	var buf bytes.Buffer
	if err := chart.RenderPNG(chart.FromView(view), &buf, s.renderer.Localizer()); err != nil {
		abortWithError(c, err)
		return
	}
	c.Data(http.StatusOK, "image/png", buf.Bytes())
}

// handleWorkbook exports the fetched preview as a spreadsheet
func (s *Server) handleWorkbook(c *gin.Context) {
	fileID := c.Param("id")
	view, err := s.fetchView(c.Request.Context(), fileID)
	if err != nil {
		abortWithError(c, err)
		return
	}

	var buf bytes.Buffer
	if err := s.workbooks.Write(&buf, view); err != nil {
		abortWithError(c, errors.Wrap(err, "failed to build workbook"))
		return
	}

	c.Header("Content-Disposition", `attachment; filename="preview-`+url.PathEscape(fileID)+`.xlsx"`)
	c.Data(http.StatusOK, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", buf.Bytes())
}

// fetchView fetches a preview; a logical error from upstream is a not found
func (s *Server) fetchView(ctx context.Context, fileID string) (preview.View, error) {
	resp, err := s.fetcher.FetchPreview(ctx, fileID)
	if err != nil {
		return preview.View{}, err
	}
	if resp.HasError {
		return preview.View{}, errors.New(errors.CodeNotFound, resp.Error)
	}
	return preview.NewView(resp), nil
}

// fileTitle is the original filename when the catalog knows the file
func (s *Server) fileTitle(ctx context.Context, fileID string) string {
	f, err := s.catalog.Get(ctx, fileID)
	if err == nil {
		return f.OriginalFilename
	}
	if !errors.HasCode(err, errors.CodeNotFound) {
		log.Printf("[Server] Catalog lookup for %s failed: %v", fileID, err)
	}
	return fileID
}
