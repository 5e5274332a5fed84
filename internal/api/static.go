package api

import (
	_ "embed"
	"net/http"
	"os"
	"path/filepath"
)

//go:embed embedded/map.html
var mapHTML []byte

//go:embed embedded/map.js
var mapJS []byte

//go:embed embedded/map.css
var mapCSS []byte

// StaticHandler serves the map page and its assets. When STATIC_DIR is set the
// files are read from disk instead, for editing the page without rebuilding.
func (s *Server) StaticHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet && r.Method != http.MethodHead {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	var name, ctype string
	var body []byte
	switch r.URL.Path {
	case "/", "/map", "/map/":
		name, ctype, body = "map.html", "text/html; charset=utf-8", mapHTML
	case "/static/map.js":
		name, ctype, body = "map.js", "application/javascript", mapJS
	case "/static/map.css":
		name, ctype, body = "map.css", "text/css", mapCSS
	default:
		http.NotFound(w, r)
		return
	}
	if dir := os.Getenv("STATIC_DIR"); dir != "" {
		p := filepath.Join(dir, name)
		if _, err := os.Stat(p); err == nil {
			http.ServeFile(w, r, p)
			return
		}
	}
	w.Header().Set("Content-Type", ctype)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(body)
}
