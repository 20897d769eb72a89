package metrics

import (
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
)

type Outcome string

const (
	Success                  Outcome       = "success"
	Error                    Outcome       = "error"
	MetricRequestTimeout     time.Duration = 5 * time.Second
	MetricRequestIdleTimeout time.Duration = 10 * time.Second
)

func (O Outcome) String() string {
	return string(O)
}

var (
	once                     sync.Once
	metricsRouter            *chi.Mux
	ledgerLatency            *prometheus.HistogramVec
	queuePublishErrorCounter prometheus.Counter
	queueProcessingDuration  *prometheus.HistogramVec
	apiRequestDuration       *prometheus.HistogramVec
	pollerDurationHistogram  *prometheus.HistogramVec
	pollerLastSuccessGauge   *prometheus.GaugeVec
	stakingOperationCounter  *prometheus.CounterVec
	conflictRetryCounter     *prometheus.CounterVec
	accruedPositionsCounter  *prometheus.CounterVec
	poolTotalStakedGauge     *prometheus.GaugeVec
	poolActivePositionsGauge *prometheus.GaugeVec
	dbLatency                *prometheus.HistogramVec
)

// Init initializes the metrics package.
func Init(metricsPort int) {
	once.Do(func() {
		initMetricsRouter(metricsPort)
		registerMetrics()
	})
}

// initMetricsRouter initializes the metrics router.
func initMetricsRouter(metricsPort int) {
	metricsRouter = chi.NewRouter()
	metricsRouter.Get("/metrics", func(w http.ResponseWriter, r *http.Request) {
		promhttp.Handler().ServeHTTP(w, r)
	})
	// Create a custom server with timeout settings
	metricsAddr := fmt.Sprintf(":%d", metricsPort)
	server := &http.Server{
		Addr:         metricsAddr,
		Handler:      metricsRouter,
		ReadTimeout:  MetricRequestTimeout,
		WriteTimeout: MetricRequestTimeout,
		IdleTimeout:  MetricRequestIdleTimeout,
	}

	// Start the server in a separate goroutine
	go func() {
		log.Printf("Starting metrics server on %s", metricsAddr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msgf("Error starting metrics server on %s", metricsAddr)
		}
	}()
}

// registerMetrics initializes and register the Prometheus metrics.
func registerMetrics() {
	defaultHistogramBucketsSeconds := []float64{0.1, 0.5, 1, 2.5, 5, 10, 30}

	ledgerLatency = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "ledger_latency_seconds",
			Help:    "Histogram of balance ledger call durations in seconds.",
			Buckets: defaultHistogramBucketsSeconds,
		},
		[]string{"method", "status"},
	)

	queuePublishErrorCounter = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "queue_publish_error_count",
			Help: "The total number of errors when publishing position events",
		},
	)

	queueProcessingDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "queue_message_processing_duration_seconds",
			Help:    "Reward event processing duration in seconds.",
			Buckets: defaultHistogramBucketsSeconds,
		},
		[]string{"queue", "status"},
	)

	apiRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "Histogram of incoming API request durations in seconds.",
			Buckets: defaultHistogramBucketsSeconds,
		},
		[]string{"route", "method", "status"},
	)

	pollerDurationHistogram = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "poller_duration_seconds",
			Help:    "Histogram of poller durations in seconds.",
			Buckets: defaultHistogramBucketsSeconds,
		},
		[]string{"type", "status"},
	)

	pollerLastSuccessGauge = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "poller_last_success_timestamp_seconds",
			Help: "Unix time of the last successful pass of each poller.",
		},
		[]string{"type"},
	)

	stakingOperationCounter = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "staking_operations_total",
			Help: "Staking operations split by operation and error code",
		},
		[]string{"operation", "code"},
	)

	conflictRetryCounter = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "staking_conflict_retries_total",
			Help: "Number of retried units of work after a concurrency conflict",
		},
		[]string{"operation"},
	)

	accruedPositionsCounter = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "accrual_positions_total",
			Help: "Positions visited by the daily accrual split by result",
		},
		[]string{"result"},
	)

	poolTotalStakedGauge = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "pool_active_stake",
			Help: "Principal of active positions per pool",
		},
		[]string{"pool_id"},
	)

	poolActivePositionsGauge = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "pool_active_positions",
			Help: "Number of active positions per pool",
		},
		[]string{"pool_id"},
	)

	dbLatency = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name: "db_latency_seconds",
			Help: "DB latency in seconds splitted by method and execution status",
		},
		[]string{"method", "status"},
	)

	prometheus.MustRegister(
		ledgerLatency,
		queuePublishErrorCounter,
		queueProcessingDuration,
		apiRequestDuration,
		pollerDurationHistogram,
		pollerLastSuccessGauge,
		stakingOperationCounter,
		conflictRetryCounter,
		accruedPositionsCounter,
		poolTotalStakedGauge,
		poolActivePositionsGauge,
		dbLatency,
	)
}

// registered reports whether Init ran. Recorders are no-ops before that so
// that packages can be used without a metrics server, e.g. in tests.
func registered() bool {
	return dbLatency != nil
}

func status(failure bool) Outcome {
	if failure {
		return Error
	}
	return Success
}

func RecordLedgerLatency(d time.Duration, method string, failure bool) {
	if !registered() {
		return
	}
	ledgerLatency.WithLabelValues(method, status(failure).String()).Observe(d.Seconds())
}

func RecordDbLatency(d time.Duration, method string, failure bool) {
	if !registered() {
		return
	}
	dbLatency.WithLabelValues(method, status(failure).String()).Observe(d.Seconds())
}

// RecordStakingOperation counts an operation result, code is empty on success.
func RecordStakingOperation(operation, code string) {
	if !registered() {
		return
	}
	if code == "" {
		code = Success.String()
	}
	stakingOperationCounter.WithLabelValues(operation, code).Inc()
}

func IncConflictRetries(operation string) {
	if !registered() {
		return
	}
	conflictRetryCounter.WithLabelValues(operation).Inc()
}

func RecordAccrualResult(result string, count int) {
	if !registered() {
		return
	}
	accruedPositionsCounter.WithLabelValues(result).Add(float64(count))
}

func RecordPoolStats(poolID string, activeStake decimal.Decimal, activePositions int64) {
	if !registered() {
		return
	}
	poolTotalStakedGauge.WithLabelValues(poolID).Set(activeStake.InexactFloat64())
	poolActivePositionsGauge.WithLabelValues(poolID).Set(float64(activePositions))
}

func RecordQueueProcessingDuration(d time.Duration, queue string, failure bool) {
	if !registered() {
		return
	}
	queueProcessingDuration.WithLabelValues(queue, status(failure).String()).Observe(d.Seconds())
}

func RecordQueuePublishError() {
	if !registered() {
		return
	}
	queuePublishErrorCounter.Inc()
}

// StartAPIRequestTimer starts a timer to measure an incoming API request.
// The route is passed on completion, chi resolves it while routing.
func StartAPIRequestTimer(method string) func(route string, statusCode int) {
	startTime := time.Now()
	return func(route string, statusCode int) {
		if !registered() {
			return
		}
		apiRequestDuration.WithLabelValues(
			route,
			method,
			fmt.Sprintf("%d", statusCode),
		).Observe(time.Since(startTime).Seconds())
	}
}
