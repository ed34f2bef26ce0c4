package api

import (
	"encoding/json"
	"net/http"

	"github.com/dgallion1/annoview/internal/palette"
)

func (s *Server) handleParseStats(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]any{
		"stats":          s.metrics.Snapshot(),
		"documents":      s.docs.Len(),
		"library_cached": s.library.Cached(),
	})
}

func (s *Server) handleLegend(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]any{
		"default_color": palette.DefaultColor,
		"groups":        palette.Legend(),
	})
}
