package metrics

import (
	"testing"
	"time"
)

func TestParseStatsPerSource(t *testing.T) {
	stats := NewParseStats(time.Hour)
	for _, us := range []int64{100, 200, 300, 400, 500} {
		stats.Record("upload", time.Duration(us)*time.Microsecond, 2, 10, false)
	}
	stats.Record("library", 50*time.Microsecond, 0, 0, true)

	snap := stats.Snapshot()
	if snap.Parses != 6 || snap.Failures != 1 {
		t.Fatalf("expected parses=6 failures=1, got parses=%d failures=%d", snap.Parses, snap.Failures)
	}
	if snap.WindowSeconds != 3600 {
		t.Errorf("expected window=3600s, got %f", snap.WindowSeconds)
	}

	up, ok := snap.Sources["upload"]
	if !ok {
		t.Fatal("expected upload source in snapshot")
	}
	if up.Parses != 5 || up.Failures != 0 {
		t.Fatalf("expected 5 clean upload parses, got %+v", up)
	}
	if up.MinUs != 100 || up.MaxUs != 500 || up.AvgUs != 300 {
		t.Fatalf("expected min=100 max=500 avg=300, got min=%d max=%d avg=%f", up.MinUs, up.MaxUs, up.AvgUs)
	}
	if up.Sections != 10 || up.Annotations != 50 || up.AvgSections != 2 {
		t.Fatalf("expected sections=10 annotations=50 avg_sections=2, got %+v", up)
	}
	if up.P50Us < 200 || up.P50Us > 400 {
		t.Errorf("expected p50 near 300us, got %f", up.P50Us)
	}
	if up.P99Us < up.P50Us || up.P99Us > 500.5 {
		t.Errorf("expected p50 <= p99 <= 500us, got p50=%f p99=%f", up.P50Us, up.P99Us)
	}
	if up.LastParse.IsZero() {
		t.Error("expected last parse time to be set")
	}

	lib := snap.Sources["library"]
	if lib.Parses != 1 || lib.Failures != 1 || lib.Sections != 0 || lib.AvgSections != 0 {
		t.Fatalf("expected one failed library parse with no sections, got %+v", lib)
	}
}

func TestParseStatsQuantilesExpireWithWindow(t *testing.T) {
	stats := NewParseStats(10 * time.Millisecond)
	stats.Record("upload", 100*time.Microsecond, 1, 1, false)
	time.Sleep(50 * time.Millisecond)

	up := stats.Snapshot().Sources["upload"]
	if up.P50Us != 0 || up.P99Us != 0 {
		t.Fatalf("expected quantiles to expire, got p50=%f p99=%f", up.P50Us, up.P99Us)
	}
	if up.Parses != 1 || up.MaxUs != 100 {
		t.Fatalf("expected lifetime totals to survive the window, got %+v", up)
	}
}

func TestParseStatsClampsNegativeDuration(t *testing.T) {
	stats := NewParseStats(time.Hour)
	stats.Record("upload", -10*time.Microsecond, 1, 1, false)
	up := stats.Snapshot().Sources["upload"]
	if up.Parses != 1 || up.MaxUs != 0 || up.MinUs != 0 {
		t.Fatalf("expected one clamped sample, got %+v", up)
	}
}

func TestParseStatsEmpty(t *testing.T) {
	snap := NewParseStats(0).Snapshot()
	if snap.Parses != 0 || len(snap.Sources) != 0 {
		t.Fatalf("expected empty snapshot, got %+v", snap)
	}
	if snap.WindowSeconds != 3600 {
		t.Errorf("expected default window of 1h, got %fs", snap.WindowSeconds)
	}
}
