package metrics

import (
	"bytes"
	"fmt"
	"net/http"
	"strconv"
	"sync"
	"sync/atomic"

	"github.com/gin-gonic/gin"
)

var (
	loginsFailedTotal       atomic.Uint64
	resetCodesIssuedTotal   atomic.Uint64
	resetConsumeFailedTotal atomic.Uint64
	summariesGeneratedTotal atomic.Uint64
	summariesFailedTotal    atomic.Uint64

	summaryDuration = newHistogram([]float64{100, 250, 500, 1000, 2000, 5000, 10000, 30000, 60000})
)

// IncLoginFailed increments the failed-login counter.
func IncLoginFailed() {
	loginsFailedTotal.Add(1)
}

// IncResetCodeIssued increments the issued reset-code counter.
func IncResetCodeIssued() {
	resetCodesIssuedTotal.Add(1)
}

// IncResetConsumeFailed counts rejected reset attempts (wrong or expired code).
func IncResetConsumeFailed() {
	resetConsumeFailedTotal.Add(1)
}

// IncSummaryGenerated increments the AI summary counter.
func IncSummaryGenerated() {
	summariesGeneratedTotal.Add(1)
}

// IncSummaryFailed increments the AI summary failure counter.
func IncSummaryFailed() {
	summariesFailedTotal.Add(1)
}

// ObserveSummaryDurationMs records an AI generation duration in milliseconds.
func ObserveSummaryDurationMs(value float64) {
	if value < 0 {
		value = 0
	}
	summaryDuration.Observe(value)
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
	writeCounter(&buf, "logins_failed_total", "Total failed login attempts", loginsFailedTotal.Load())
	writeCounter(&buf, "reset_codes_issued_total", "Total password reset codes issued", resetCodesIssuedTotal.Load())
	writeCounter(&buf, "reset_consume_failed_total", "Total rejected password reset attempts", resetConsumeFailedTotal.Load())
	writeCounter(&buf, "summaries_generated_total", "Total AI resume summaries generated", summariesGeneratedTotal.Load())
	writeCounter(&buf, "summaries_failed_total", "Total AI resume summary failures", summariesFailedTotal.Load())
	writeHistogram(&buf, "summary_duration_ms", "AI summary generation duration in milliseconds", summaryDuration.Snapshot())
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
			return
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
