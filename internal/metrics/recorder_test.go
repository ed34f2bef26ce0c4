package metrics

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/dgallion1/annoview/internal/webanno"
)

func TestRecorder_ExposesCounters(t *testing.T) {
	r := NewRecorder(time.Hour)
	doc := &webanno.Document{Sections: []webanno.Section{{Annotations: make([]webanno.Annotation, 3)}}}
	r.ObserveParse("upload", time.Millisecond, doc, nil)
	r.ObserveParse("library", time.Millisecond, nil, errors.New("boom"))
	r.ObserveCache(true)

	rec := httptest.NewRecorder()
	r.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	body := rec.Body.String()

	for _, want := range []string{
		`annoview_parses_total{result="ok",source="upload"} 1`,
		`annoview_parses_total{result="error",source="library"} 1`,
		`annoview_annotations_total 3`,
		`annoview_library_cache_lookups_total{outcome="hit"} 1`,
		`annoview_parse_latency_seconds_count{source="upload"} 1`,
	} {
		if !strings.Contains(body, want) {
			t.Errorf("expected metrics output to contain %q", want)
		}
	}
	snap := r.Snapshot()
	if snap.Parses != 2 || snap.Failures != 1 {
		t.Errorf("expected 2 parses with 1 failure, got %+v", snap)
	}
	if up := snap.Sources["upload"]; up.Sections != 1 || up.Annotations != 3 {
		t.Errorf("expected upload totals sections=1 annotations=3, got %+v", up)
	}
}

func TestRecorder_NilIsNoop(t *testing.T) {
	var r *Recorder
	r.ObserveParse("upload", time.Millisecond, nil, nil)
	r.ObserveCache(false)
	if r.Snapshot().Parses != 0 {
		t.Error("expected empty snapshot from nil recorder")
	}
}
