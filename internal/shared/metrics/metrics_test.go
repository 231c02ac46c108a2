package metrics

import (
	"strings"
	"testing"
)

func TestRenderIncludesAllSeries(t *testing.T) {
	IncDocumentUploaded()
	IncApplicationSubmitted()
	ObserveReplayBatchMs(42)

	out := Render()
	for _, name := range []string{
		"documents_uploaded_total",
		"documents_superseded_total",
		"applications_submitted_total",
		"replay_items_success_total",
		"replay_items_error_total",
		"replay_batch_duration_ms_bucket",
		"replay_batch_duration_ms_count",
	} {
		if !strings.Contains(out, name) {
			t.Fatalf("expected %s in output:\n%s", name, out)
		}
	}
}

func TestHistogramBucketsAreCumulative(t *testing.T) {
	h := newHistogram([]float64{10, 100})
	h.Observe(5)
	h.Observe(50)
	h.Observe(5000)

	snap := h.Snapshot()
	if snap.count != 3 {
		t.Fatalf("expected count 3, got %d", snap.count)
	}
	// Raw per-bucket counts; rendering accumulates them.
	if snap.counts[0] != 1 || snap.counts[1] != 1 {
		t.Fatalf("unexpected bucket counts: %v", snap.counts)
	}
}
