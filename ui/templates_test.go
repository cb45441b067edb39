package ui

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"datapreview/internal/errors"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func TestAbortWithError(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tests := []struct {
		name   string
		err    error
		status int
		body   string
	}{
		{"not found", errors.NotFound("file 12"), http.StatusNotFound, "file 12 not found"},
		{"invalid input", errors.InvalidInput("invalid file id"), http.StatusBadRequest, "invalid file id"},
		{"upstream", errors.Upstream("preview", fmt.Errorf("connection refused")), http.StatusBadGateway, "preview service error: connection refused"},
		{"malformed", errors.Wrap(errors.Malformed("no columns"), "decode"), http.StatusBadGateway, "decode: no columns"},
		{"plain error", fmt.Errorf("open /var/lib/catalog.db: permission denied"), http.StatusInternalServerError, "Internal Server Error"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(w)
			c.Request = httptest.NewRequest(http.MethodGet, "/files/12/chart.png", nil)

			abortWithError(c, tt.err)

			assert.Equal(t, tt.status, w.Code)
			assert.JSONEq(t, fmt.Sprintf(`{"error": %q}`, tt.body), w.Body.String())
		})
	}
}
