package metrics

import (
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// RenderMetrics records metadata for table image rendering.
type RenderMetrics struct {
	duration   *prometheus.HistogramVec
	renders    *prometheus.CounterVec
	thumbFails *prometheus.CounterVec
}

// NewRenderMetrics registers the render metrics on the provided registerer.
func NewRenderMetrics(reg prometheus.Registerer) *RenderMetrics {
	if reg == nil {
		return &RenderMetrics{}
	}
	duration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "ordersheet",
		Name:      "render_duration_seconds",
		Help:      "Duration of table image renders in seconds.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"lang"})
	renders := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "ordersheet",
		Name:      "renders_total",
		Help:      "Completed table image renders.",
	}, []string{"lang"})
	thumbFails := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "ordersheet",
		Name:      "thumbnail_decode_failures_total",
		Help:      "Row thumbnails skipped because their bytes failed to decode.",
	}, []string{"lang"})
	reg.MustRegister(duration, renders, thumbFails)
	return &RenderMetrics{
		duration:   duration,
		renders:    renders,
		thumbFails: thumbFails,
	}
}

// ObserveDuration records the duration of one render for the given language.
func (r *RenderMetrics) ObserveDuration(lang string, duration time.Duration) {
	if r == nil || r.duration == nil {
		return
	}
	r.duration.WithLabelValues(normalizeLabel(lang)).Observe(duration.Seconds())
}

// IncRender increments the completed-render counter.
func (r *RenderMetrics) IncRender(lang string) {
	if r == nil || r.renders == nil {
		return
	}
	r.renders.WithLabelValues(normalizeLabel(lang)).Inc()
}

// IncThumbnailFailure increments the skipped-thumbnail counter.
func (r *RenderMetrics) IncThumbnailFailure(lang string) {
	if r == nil || r.thumbFails == nil {
		return
	}
	r.thumbFails.WithLabelValues(normalizeLabel(lang)).Inc()
}

func normalizeLabel(value string) string {
	value = strings.TrimSpace(strings.ToLower(value))
	if value == "" {
		return "unknown"
	}
	return value
}
