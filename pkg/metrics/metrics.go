package metrics

import (
	"os"

	"atlasbcp/backend/pkg/config"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// HTTPRequestCounter counts total HTTP requests.
	HTTPRequestCounter *prometheus.CounterVec

	// HTTPRequestDuration observes HTTP request latencies.
	HTTPRequestDuration *prometheus.HistogramVec

	// CoverageGapCounter counts wizard recommendation requests where a selected
	// hazard matched no strategy. Labeled by canonical hazard code so admins can
	// see which parts of the catalog are thin.
	CoverageGapCounter *prometheus.CounterVec

	// AppInfo exposes information about the application.
	AppInfo *prometheus.GaugeVec

	// AppVersion is the application version, taken from config.Cfg.AppVersion.
	AppVersion = "unknown"
)

func init() {
	if config.Cfg.AppVersion != "" {
		AppVersion = config.Cfg.AppVersion
	} else if envVersion := os.Getenv("APP_VERSION"); envVersion != "" {
		AppVersion = envVersion
	}

	HTTPRequestCounter = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "atlasbcp_http_requests_total",
			Help: "Total number of HTTP requests processed.",
		},
		[]string{"method", "path", "status_code"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "atlasbcp_http_request_duration_seconds",
			Help:    "Histogram of HTTP request latencies.",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path"},
	)

	CoverageGapCounter = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "atlasbcp_strategy_coverage_gaps_total",
			Help: "Selected hazards for which no mitigation strategy was found.",
		},
		[]string{"hazard"},
	)

	AppInfo = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "atlasbcp_app_info",
			Help: "Information about the Atlas BCP application.",
		},
		[]string{"version"},
	)
	AppInfo.With(prometheus.Labels{"version": AppVersion}).Set(1)
}
