package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/dgallion1/annoview/internal/library"
	"github.com/dgallion1/annoview/internal/parser"
	"github.com/go-chi/chi/v5"
)

// handleListFiles lists the TSV files available in the library directory.
func (s *Server) handleListFiles(w http.ResponseWriter, r *http.Request) {
	entries, err := s.library.List()
	if err != nil {
		jsonError(w, "failed to list files: "+err.Error(), http.StatusInternalServerError)
		return
	}
	if entries == nil {
		entries = []library.Entry{}
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]any{"files": entries})
}

// handleGetFile loads a library file by its relative path.
func (s *Server) handleGetFile(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "*")
	log := s.log.With("file", name)

	doc, err := s.library.Load(name)
	switch {
	case err == nil:
	case errors.Is(err, library.ErrInvalidName):
		jsonError(w, err.Error(), http.StatusBadRequest)
		return
	case errors.Is(err, library.ErrNotFound):
		jsonError(w, err.Error(), http.StatusNotFound)
		return
	case errors.Is(err, parser.ErrNoSections):
		log.Warn("library file has no sections")
		jsonError(w, parser.ErrNoSections.Error(), http.StatusUnprocessableEntity)
		return
	default:
		log.Error("library load failed", "error", err)
		jsonError(w, "failed to load the file: "+name, http.StatusInternalServerError)
		return
	}

	notes, err := s.library.Notes(name)
	if err != nil {
		log.Warn("notes unavailable", "error", err)
	}
	s.writeDocument(w, r, doc, notes)
}
