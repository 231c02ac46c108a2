package metrics

import (
	"bytes"
	"fmt"
	"net/http"
	"strconv"
	"sync"
	"sync/atomic"
	"time"

	"github.com/gin-gonic/gin"
)

var (
	documentsUploadedTotal   atomic.Uint64
	documentsSupersededTotal atomic.Uint64
	applicationsTotal        atomic.Uint64
	replayItemsOKTotal       atomic.Uint64
	replayItemsFailedTotal   atomic.Uint64

	replayBatchDuration = newHistogram([]float64{10, 25, 50, 100, 250, 500, 1000, 5000, 10000})
)

// IncDocumentUploaded increments the uploaded-documents counter.
func IncDocumentUploaded() {
	documentsUploadedTotal.Add(1)
}

// IncDocumentSuperseded increments the superseded-documents counter.
func IncDocumentSuperseded() {
	documentsSupersededTotal.Add(1)
}

// IncApplicationSubmitted increments the submitted-applications counter.
func IncApplicationSubmitted() {
	applicationsTotal.Add(1)
}

// IncReplayItemOK increments the successful replay item counter.
func IncReplayItemOK() {
	replayItemsOKTotal.Add(1)
}

// IncReplayItemFailed increments the failed replay item counter.
func IncReplayItemFailed() {
	replayItemsFailedTotal.Add(1)
}

// ObserveReplayBatchMs records a replay batch duration in milliseconds.
func ObserveReplayBatchMs(value float64) {
	if value < 0 {
		value = 0
	}
	replayBatchDuration.Observe(value)
}

// Handler exposes metrics in Prometheus text format.
func Handler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("Content-Type", "text/plain; version=0.0.4")
		c.String(http.StatusOK, Render())
	}
}

// Render renders metrics in Prometheus text format.
func Render() string {
	var buf bytes.Buffer
	writeCounter(&buf, "documents_uploaded_total", "Total documents uploaded", documentsUploadedTotal.Load())
	writeCounter(&buf, "documents_superseded_total", "Total documents marked replaced by a newer upload", documentsSupersededTotal.Load())
	writeCounter(&buf, "applications_submitted_total", "Total registration applications submitted", applicationsTotal.Load())
	writeCounter(&buf, "replay_items_success_total", "Total queue replay items applied", replayItemsOKTotal.Load())
	writeCounter(&buf, "replay_items_error_total", "Total queue replay items that failed", replayItemsFailedTotal.Load())
	writeHistogram(&buf, "replay_batch_duration_ms", "Queue replay batch duration in milliseconds", replayBatchDuration.Snapshot())
	return buf.String()
}

type histogram struct {
	mu      sync.Mutex
	buckets []float64
	counts  []uint64
	sum     float64
	count   uint64
}

type histogramSnapshot struct {
	buckets []float64
	counts  []uint64
	sum     float64
	count   uint64
}

func newHistogram(buckets []float64) *histogram {
	return &histogram{
		buckets: buckets,
		counts:  make([]uint64, len(buckets)),
	}
}

func (h *histogram) Observe(value float64) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.count++
	h.sum += value
	for i, bound := range h.buckets {
		if value <= bound {
			h.counts[i]++
			break
		}
	}
}

func (h *histogram) Snapshot() histogramSnapshot {
	h.mu.Lock()
	defer h.mu.Unlock()
	return histogramSnapshot{
		buckets: append([]float64(nil), h.buckets...),
		counts:  append([]uint64(nil), h.counts...),
		sum:     h.sum,
		count:   h.count,
	}
}

func writeCounter(buf *bytes.Buffer, name, help string, value uint64) {
	fmt.Fprintf(buf, "# HELP %s %s\n", name, help)
	fmt.Fprintf(buf, "# TYPE %s counter\n", name)
	fmt.Fprintf(buf, "%s %d\n", name, value)
}

func writeHistogram(buf *bytes.Buffer, name, help string, snap histogramSnapshot) {
	fmt.Fprintf(buf, "# HELP %s %s\n", name, help)
	fmt.Fprintf(buf, "# TYPE %s histogram\n", name)
	var cumulative uint64
	for i, bound := range snap.buckets {
		cumulative += snap.counts[i]
		fmt.Fprintf(buf, "%s_bucket{le=\"%s\"} %d\n", name, formatFloat(bound), cumulative)
	}
	fmt.Fprintf(buf, "%s_bucket{le=\"+Inf\"} %d\n", name, snap.count)
	fmt.Fprintf(buf, "%s_sum %s\n", name, formatFloat(snap.sum))
	fmt.Fprintf(buf, "%s_count %d\n", name, snap.count)
}

func formatFloat(value float64) string {
	if value == float64(int64(value)) {
		return strconv.FormatInt(int64(value), 10)
	}
	return strconv.FormatFloat(value, 'f', -1, 64)
}

// NowMillis returns current time in milliseconds, useful for callers without time utilities.
func NowMillis() float64 {
	return float64(time.Now().UnixNano()) / float64(time.Millisecond)
}
