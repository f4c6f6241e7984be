package handlers

import (
	"net/http"
	"os"
	"path/filepath"

	"github.com/ternarybob/arbor"
)

type PageHandler struct {
	logger    arbor.ILogger
	indexPath string
}

// NewPageHandler serves index from dir. A relative dir is resolved against the
// working directory, falling back to the executable's directory.
func NewPageHandler(logger arbor.ILogger, dir, index string) *PageHandler {
	return &PageHandler{
		logger:    logger,
		indexPath: filepath.Join(findStaticDir(dir, index), index),
	}
}

// findStaticDir locates the directory holding the index page
func findStaticDir(dir, index string) string {
	if filepath.IsAbs(dir) {
		return dir
	}

	candidates := []string{dir}
	if exePath, err := os.Executable(); err == nil {
		candidates = append(candidates, filepath.Join(filepath.Dir(exePath), dir))
	}

	for _, d := range candidates {
		if _, err := os.Stat(filepath.Join(d, index)); err == nil {
			abs, _ := filepath.Abs(d)
			return abs
		}
	}

	return dir
}

// ServeIndex serves the front-end page at "/". Any other path is not found.
func (h *PageHandler) ServeIndex(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	if !RequireMethod(w, r, http.MethodGet) {
		return
	}

	if _, err := os.Stat(h.indexPath); err != nil {
		h.logger.Error().
			Err(err).
			Str("path", h.indexPath).
			Msg("Index page not found")
		http.NotFound(w, r)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	http.ServeFile(w, r, h.indexPath)
}
