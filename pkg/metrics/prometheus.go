package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Component label values used by the posefile packages.
const (
	ComponentKeypoints  = "keypoints"
	ComponentFloatArray = "floatarray"
	ComponentArchive    = "archive"
	ComponentHandRect   = "handrect"
	ComponentImage      = "imageio"
)

// Manager owns every Prometheus collector posefile records into.
type Manager struct {
	namespace   string
	subsystem   string
	sizeBuckets []float64
	enabled     bool
	registry    prometheus.Registerer

	documentsWritten prometheus.Counter
	arraysEncoded    prometheus.Counter
	arraysDecoded    prometheus.Counter
	archiveSaves     *prometheus.CounterVec
	archiveLoads     *prometheus.CounterVec
	rectFilesParsed  prometheus.Counter
	rectPairsParsed  prometheus.Counter
	imagesLoaded     *prometheus.CounterVec

	errorsByComponent *prometheus.CounterVec
	bytesWritten      *prometheus.HistogramVec
}

// Global metrics manager instance.
var globalManager *Manager //nolint:gochecknoglobals // intentional global for singleton metrics manager

// Custom registry to avoid default Go metrics.
var customRegistry = prometheus.NewRegistry() //nolint:gochecknoglobals // intentional global for metrics registry

func init() { //nolint:gochecknoinits // intentional init for global metrics setup
	globalManager = NewManager(WithPrometheusRegistry(customRegistry))
}

// NewManager creates a metrics manager and registers its collectors.
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		namespace:   "posefile",
		subsystem:   "io",
		sizeBuckets: prometheus.ExponentialBuckets(64, 4, 10), // 64B .. 16MiB
		enabled:     true,
		registry:    prometheus.DefaultRegisterer,
	}

	for _, opt := range opts {
		opt(m)
	}

	m.initializeMetrics()

	return m
}

func (m *Manager) initializeMetrics() {
	auto := promauto.With(m.registry)

	m.documentsWritten = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "keypoint_documents_written_total",
		Help:      "Total number of keypoint JSON documents written",
	})

	m.arraysEncoded = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "arrays_encoded_total",
		Help:      "Total number of arrays encoded to the binary float-array format",
	})

	m.arraysDecoded = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "arrays_decoded_total",
		Help:      "Total number of arrays decoded from the binary float-array format",
	})

	m.archiveSaves = auto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: m.namespace,
			Subsystem: m.subsystem,
			Name:      "archive_saves_total",
			Help:      "Total number of named-array archives saved, by format",
		},
		[]string{"format"},
	)

	m.archiveLoads = auto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: m.namespace,
			Subsystem: m.subsystem,
			Name:      "archive_loads_total",
			Help:      "Total number of named-array archives loaded, by format",
		},
		[]string{"format"},
	)

	m.rectFilesParsed = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "hand_rectangle_files_parsed_total",
		Help:      "Total number of hand rectangle files parsed",
	})

	m.rectPairsParsed = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "hand_rectangle_pairs_parsed_total",
		Help:      "Total number of hand rectangle pairs parsed",
	})

	m.imagesLoaded = auto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: m.namespace,
			Subsystem: m.subsystem,
			Name:      "images_loaded_total",
			Help:      "Total number of image loads, by result (ok, empty)",
		},
		[]string{"result"},
	)

	m.errorsByComponent = auto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: m.namespace,
			Subsystem: m.subsystem,
			Name:      "errors_by_component_total",
			Help:      "Total number of errors by component",
		},
		[]string{"component", "error_type"},
	)

	m.bytesWritten = auto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: m.namespace,
			Subsystem: m.subsystem,
			Name:      "bytes_written",
			Help:      "Size in bytes of each file written",
			Buckets:   m.sizeBuckets,
		},
		[]string{"component"},
	)
}

// Enabled reports whether the manager records anything.
func (m *Manager) Enabled() bool {
	return m.enabled
}

// RecordDocumentWritten increments the keypoint documents counter.
func (m *Manager) RecordDocumentWritten() {
	if m.enabled {
		m.documentsWritten.Inc()
	}
}

// RecordArrayEncoded increments the encoded arrays counter.
func (m *Manager) RecordArrayEncoded() {
	if m.enabled {
		m.arraysEncoded.Inc()
	}
}

// RecordArrayDecoded increments the decoded arrays counter.
func (m *Manager) RecordArrayDecoded() {
	if m.enabled {
		m.arraysDecoded.Inc()
	}
}

// RecordArchiveSave increments the archive saves counter for format.
func (m *Manager) RecordArchiveSave(format string) {
	if m.enabled {
		m.archiveSaves.WithLabelValues(format).Inc()
	}
}

// RecordArchiveLoad increments the archive loads counter for format.
func (m *Manager) RecordArchiveLoad(format string) {
	if m.enabled {
		m.archiveLoads.WithLabelValues(format).Inc()
	}
}

// RecordRectFileParsed counts one parsed rectangle file holding pairs rectangle pairs.
func (m *Manager) RecordRectFileParsed(pairs int) {
	if m.enabled {
		m.rectFilesParsed.Inc()
		m.rectPairsParsed.Add(float64(pairs))
	}
}

// RecordImageLoad counts an image load; empty marks a lenient load that returned nothing.
func (m *Manager) RecordImageLoad(empty bool) {
	if !m.enabled {
		return
	}

	result := "ok"
	if empty {
		result = "empty"
	}

	m.imagesLoaded.WithLabelValues(result).Inc()
}

// RecordErrorByComponent records an error with component and type labels.
func (m *Manager) RecordErrorByComponent(component, errorType string) {
	if m.enabled {
		m.errorsByComponent.WithLabelValues(component, errorType).Inc()
	}
}

// RecordBytesWritten observes the size of a file written by component.
func (m *Manager) RecordBytesWritten(component string, n int) {
	if m.enabled {
		m.bytesWritten.WithLabelValues(component).Observe(float64(n))
	}
}

// Default returns the global manager registered on the custom registry.
func Default() *Manager {
	return globalManager
}

// RecordDocumentWritten increments the keypoint documents counter.
func RecordDocumentWritten() { globalManager.RecordDocumentWritten() }

// RecordArrayEncoded increments the encoded arrays counter.
func RecordArrayEncoded() { globalManager.RecordArrayEncoded() }

// RecordArrayDecoded increments the decoded arrays counter.
func RecordArrayDecoded() { globalManager.RecordArrayDecoded() }

// RecordArchiveSave increments the archive saves counter for format.
func RecordArchiveSave(format string) { globalManager.RecordArchiveSave(format) }

// RecordArchiveLoad increments the archive loads counter for format.
func RecordArchiveLoad(format string) { globalManager.RecordArchiveLoad(format) }

// RecordRectFileParsed counts one parsed rectangle file.
func RecordRectFileParsed(pairs int) { globalManager.RecordRectFileParsed(pairs) }

// RecordImageLoad counts an image load.
func RecordImageLoad(empty bool) { globalManager.RecordImageLoad(empty) }

// RecordErrorByComponent records an error with component and type labels.
func RecordErrorByComponent(component, errorType string) {
	globalManager.RecordErrorByComponent(component, errorType)
}

// RecordBytesWritten observes the size of a file written by component.
func RecordBytesWritten(component string, n int) {
	globalManager.RecordBytesWritten(component, n)
}

// GetRegistry returns the custom Prometheus registry used by the global manager.
func GetRegistry() *prometheus.Registry {
	return customRegistry
}
