package api

import (
	"net/http"
	"time"

	"routeviz/internal/buildinfo"
	"routeviz/internal/config"
)

// DebugJSON reports build info, the dataset and the effective config without secrets.
func (s *Server) DebugJSON(w http.ResponseWriter, r *http.Request) {
	info := map[string]any{
		"build":   buildinfo.Info(),
		"time":    time.Now().UTC().Format(time.RFC3339),
		"dataset": s.Store.Info(),
		"config":  config.Redacted(s.Config),
	}
	writeJSON(w, http.StatusOK, info)
}
