package handlers

import (
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"
)

// SPAHandler serves the single-page client for every unmatched path:
// existing files under the static dir are served verbatim, everything
// else falls back to index.html so client-side routing works. Unmatched
// /api/ paths stay JSON 404s.
type SPAHandler struct {
	staticDir string
}

func NewSPAHandler(staticDir string) *SPAHandler {
	return &SPAHandler{staticDir: staticDir}
}

func (h *SPAHandler) Serve(c *gin.Context) {
	path := c.Request.URL.Path

	if strings.HasPrefix(path, "/api/") || path == "/api" {
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
		return
	}

	// Clean the rooted path first so ".." can never escape the static dir.
	file := filepath.Join(h.staticDir, filepath.Clean("/"+path))
	if info, err := os.Stat(file); err == nil && !info.IsDir() {
		c.File(file)
		return
	}

	c.File(filepath.Join(h.staticDir, "index.html"))
}
