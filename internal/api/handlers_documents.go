package api

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"path/filepath"
	"strings"
	"time"

	"github.com/dgallion1/annoview/internal/parser"
	"github.com/dgallion1/annoview/internal/store"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

// uploadError carries the HTTP status for a rejected upload.
type uploadError struct {
	status int
	msg    string
}

func (e *uploadError) Error() string { return e.msg }

// ingest parses one uploaded file and stores it. Nothing is stored when
// parsing fails, so a bad upload never disturbs existing documents.
func (s *Server) ingest(filename string, r io.Reader, title string) (*store.Entry, error) {
	if !parser.IsSupportedExtension(filename) {
		return nil, &uploadError{http.StatusBadRequest, fmt.Sprintf("unsupported file type: %s", filepath.Ext(filename))}
	}

	data, err := io.ReadAll(io.LimitReader(r, s.cfg.MaxUploadBytes+1))
	if err != nil {
		return nil, &uploadError{http.StatusInternalServerError, "failed to read the uploaded file"}
	}
	if int64(len(data)) > s.cfg.MaxUploadBytes {
		return nil, &uploadError{http.StatusRequestEntityTooLarge, fmt.Sprintf("file exceeds max size (%d bytes)", s.cfg.MaxUploadBytes)}
	}

	p, err := parser.ForFile(filename)
	if err != nil {
		return nil, &uploadError{http.StatusBadRequest, err.Error()}
	}

	start := time.Now()
	doc, err := p.Parse(bytes.NewReader(data), filename)
	s.metrics.ObserveParse("upload", time.Since(start), doc, err)
	if err != nil {
		if errors.Is(err, parser.ErrNoSections) {
			return nil, &uploadError{http.StatusUnprocessableEntity, parser.ErrNoSections.Error()}
		}
		return nil, &uploadError{http.StatusBadRequest, "failed to process the WebAnno TSV data: " + err.Error()}
	}
	if title != "" {
		doc.Title = title
	}

	entry := store.NewEntry(filename, data, doc)
	s.docs.Put(entry)
	return entry, nil
}

func (s *Server) handleUpload(w http.ResponseWriter, r *http.Request) {
	// Limit total request size.
	r.Body = http.MaxBytesReader(w, r.Body, s.cfg.MaxUploadBytes+1024*1024) // extra 1MB for form overhead

	if err := r.ParseMultipartForm(32 << 20); err != nil {
		jsonError(w, "invalid multipart form: "+err.Error(), http.StatusBadRequest)
		return
	}
	defer r.MultipartForm.RemoveAll()

	file, header, err := r.FormFile("file")
	if err != nil {
		jsonError(w, "file is required: "+err.Error(), http.StatusBadRequest)
		return
	}
	defer file.Close()

	filename := sanitizeFilename(header.Filename)
	entry, err := s.ingest(filename, file, r.FormValue("title"))
	if err != nil {
		var ue *uploadError
		if errors.As(err, &ue) {
			s.log.Warn("upload rejected", "filename", filename, "status", ue.status, "error", ue.msg)
			jsonError(w, ue.msg, ue.status)
			return
		}
		jsonError(w, err.Error(), http.StatusInternalServerError)
		return
	}

	snap := entry.Snapshot()
	s.log.Info("document uploaded", "doc_id", snap.ID, "filename", filename, "sections", snap.Sections, "annotations", snap.Annotations)

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(map[string]any{
		"document": snap,
		"view_url": fmt.Sprintf("/api/documents/%s?format=html", snap.ID),
	})
}

func (s *Server) handleBatchUpload(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, s.cfg.MaxUploadBytes*10+10*1024*1024)

	if err := r.ParseMultipartForm(64 << 20); err != nil {
		jsonError(w, "invalid multipart form: "+err.Error(), http.StatusBadRequest)
		return
	}
	defer r.MultipartForm.RemoveAll()

	files := r.MultipartForm.File["files"]
	if len(files) == 0 {
		jsonError(w, "at least one file is required", http.StatusBadRequest)
		return
	}

	batchID := uuid.New().String()
	log := s.log.With("batch_id", batchID)

	var results []map[string]any
	for _, fh := range files {
		filename := sanitizeFilename(fh.Filename)

		f, err := fh.Open()
		if err != nil {
			results = append(results, map[string]any{
				"filename": filename,
				"error":    "failed to open file",
			})
			continue
		}
		entry, err := s.ingest(filename, f, "")
		f.Close()
		if err != nil {
			log.Warn("batch file rejected", "filename", filename, "error", err)
			results = append(results, map[string]any{
				"filename": filename,
				"error":    err.Error(),
			})
			continue
		}

		snap := entry.Snapshot()
		results = append(results, map[string]any{
			"filename": filename,
			"document": snap,
			"view_url": fmt.Sprintf("/api/documents/%s?format=html", snap.ID),
		})
	}
	log.Info("batch processed", "files", len(files))

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusMultiStatus)
	json.NewEncoder(w).Encode(map[string]any{
		"batch_id": batchID,
		"results":  results,
	})
}

func (s *Server) handleListDocuments(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]any{"documents": s.docs.List()})
}

func (s *Server) handleGetDocument(w http.ResponseWriter, r *http.Request) {
	entry := s.docs.Get(chi.URLParam(r, "docID"))
	if entry == nil {
		jsonError(w, "document not found", http.StatusNotFound)
		return
	}
	entry.Touch()
	s.writeDocument(w, r, entry.Document(), nil)
}

func (s *Server) handleDeleteDocument(w http.ResponseWriter, r *http.Request) {
	docID := chi.URLParam(r, "docID")
	if !s.docs.Delete(docID) {
		jsonError(w, "document not found", http.StatusNotFound)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]any{"deleted": docID})
}

func jsonError(w http.ResponseWriter, msg string, code int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(map[string]string{"error": msg})
}

func sanitizeFilename(name string) string {
	// Strip path components, keep only the base name.
	name = filepath.Base(name)
	// Remove any path separators that might have survived.
	name = strings.ReplaceAll(name, "/", "_")
	name = strings.ReplaceAll(name, "\\", "_")
	name = strings.ReplaceAll(name, "..", "_")
	if name == "" || name == "." {
		name = "unnamed"
	}
	return name
}

