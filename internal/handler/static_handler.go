package handler

import (
	"net/http"
	"os"
	"path/filepath"
	"strings"
)

// StaticHandler serves the login, admin and generator pages plus the web
// app manifest from a directory on disk. The pages are a collaborator of
// the API, not part of it.
type StaticHandler struct {
	webRoot string
}

func NewStaticHandler(webRoot string) *StaticHandler {
	return &StaticHandler{webRoot: strings.TrimSpace(webRoot)}
}

// Page returns a handler serving a single named HTML file, uncached so
// deployments take effect immediately.
func (h *StaticHandler) Page(filename string) http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		content, err := os.ReadFile(filepath.Join(h.webRoot, filename))
		if err != nil {
			http.Error(w, "page not found", http.StatusNotFound)
			return
		}

		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.Header().Set("Cache-Control", "no-cache, no-store, must-revalidate")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write(content)
	}
}

func (h *StaticHandler) Manifest(w http.ResponseWriter, _ *http.Request) {
	content, err := os.ReadFile(filepath.Join(h.webRoot, "manifest.json"))
	if err != nil {
		http.Error(w, "manifest not found", http.StatusNotFound)
		return
	}

	w.Header().Set("Content-Type", "application/manifest+json")
	w.Header().Set("Cache-Control", "public, max-age=3600")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(content)
}

// Assets serves files under webRoot/assets.
func (h *StaticHandler) Assets() http.Handler {
	dir := filepath.Join(h.webRoot, "assets")
	return http.StripPrefix("/assets/", http.FileServer(http.Dir(dir)))
}
