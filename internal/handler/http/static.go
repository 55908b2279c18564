package http

import (
	"net/http"
	"os"
	"path"
	"path/filepath"
	"strings"
)

// serveStatic delivers the dashboard assets for any path the API does not
// claim. The root path maps to index.html; requests resolving outside the
// static directory are rejected.
func (h *Handler) serveStatic(w http.ResponseWriter, r *http.Request) {
	if h.staticDir == "" || r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}

	rel := strings.TrimPrefix(path.Clean(r.URL.Path), "/")
	if rel == "" || rel == "." {
		rel = "index.html"
	}

	root := filepath.Clean(h.staticDir)
	full := filepath.Join(root, filepath.FromSlash(rel))
	if full != root && !strings.HasPrefix(full, root+string(os.PathSeparator)) {
		http.NotFound(w, r)
		return
	}

	info, err := os.Stat(full)
	if err != nil || info.IsDir() {
		http.NotFound(w, r)
		return
	}

	http.ServeFile(w, r, full)
}
