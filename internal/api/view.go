package api

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/dgallion1/annoview/internal/render"
	"github.com/dgallion1/annoview/internal/webanno"
)

// viewOptions reads the ne/pred/rel toggles; missing or malformed values
// leave the category enabled.
func viewOptions(r *http.Request) render.Options {
	q := r.URL.Query()
	flag := func(key string) bool {
		if v := q.Get(key); v != "" {
			if b, err := strconv.ParseBool(v); err == nil {
				return b
			}
		}
		return true
	}
	return render.Options{
		NamedEntities:      flag("ne"),
		SemanticPredicates: flag("pred"),
		RelationTypes:      flag("rel"),
	}
}

// writeDocument renders doc in the format requested by ?format=
// (json, html, text or docx).
func (s *Server) writeDocument(w http.ResponseWriter, r *http.Request, doc *webanno.Document, notes []byte) {
	opts := viewOptions(r)
	format := strings.ToLower(r.URL.Query().Get("format"))

	switch format {
	case "", "json":
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]any{
			"document": doc,
			"options":  opts,
			"view":     render.View(doc, opts),
		})

	case "html":
		notesHTML, err := render.Notes(notes)
		if err != nil {
			s.log.Warn("notes render failed", "error", err)
			notesHTML = ""
		}
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		if err := render.HTML(w, doc, opts, notesHTML); err != nil {
			s.log.Error("html render failed", "error", err)
		}

	case "text":
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		if err := render.Terminal(w, doc, opts, 0); err != nil {
			s.log.Error("text render failed", "error", err)
		}

	case "docx":
		w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.wordprocessingml.document")
		w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", docxName(doc.Title)))
		if err := render.DOCX(w, doc, opts); err != nil {
			s.log.Error("docx render failed", "error", err)
		}

	default:
		jsonError(w, fmt.Sprintf("unsupported format: %s", format), http.StatusBadRequest)
	}
}

func docxName(title string) string {
	if title == "" {
		title = "annotations"
	}
	return sanitizeFilename(title) + ".docx"
}
