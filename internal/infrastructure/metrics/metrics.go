package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all Prometheus metrics
type Metrics struct {
	// Wallet metrics
	WalletsCreated    prometheus.Counter
	WalletAdjustments *prometheus.CounterVec
	WalletAggregate   *prometheus.HistogramVec

	// Stake metrics
	StakesPlaced  *prometheus.CounterVec
	StakeAmount   prometheus.Histogram
	StakeOutcomes *prometheus.CounterVec
	PayoutAmount  prometheus.Histogram

	// Withdrawal metrics
	WithdrawalsRequested prometheus.Counter
	WithdrawalsCompleted prometheus.Counter
	SagaCompensations    prometheus.Counter

	// Ledger metrics
	EntriesAppended  *prometheus.CounterVec
	EntryWriteErrors prometheus.Counter

	// Reconciliation metrics
	WalletsReconciled prometheus.Counter
	DriftDetected     prometheus.Counter

	// API metrics
	HTTPRequests *prometheus.CounterVec
	HTTPDuration *prometheus.HistogramVec

	// Database metrics
	DBQueries     *prometheus.CounterVec
	DBDuration    *prometheus.HistogramVec
	DBConnections prometheus.Gauge
	DBErrors      *prometheus.CounterVec

	// Redis metrics
	RedisOperations *prometheus.CounterVec
	RedisErrors     *prometheus.CounterVec

	// Authentication metrics
	AuthAttempts *prometheus.CounterVec
	AuthFailures *prometheus.CounterVec

	// Rate limiting metrics
	RateLimitHits *prometheus.CounterVec
}

// New creates and registers all Prometheus metrics
func New() *Metrics {
	return &Metrics{
		// Wallet metrics
		WalletsCreated: promauto.NewCounter(prometheus.CounterOpts{
			Name: "earnhub_wallets_created_total",
			Help: "Total number of wallets created",
		}),
		WalletAdjustments: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "earnhub_wallet_adjustments_total",
				Help: "Total balance adjustments by category and direction",
			},
			[]string{"category", "direction"},
		),
		WalletAggregate: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "earnhub_wallet_aggregate",
				Help:    "Wallet aggregate observed at adjustment time",
				Buckets: []float64{10, 100, 500, 1000, 3000, 3500, 5000, 10000, 100000},
			},
			[]string{"currency"},
		),

		// Stake metrics
		StakesPlaced: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "earnhub_stakes_placed_total",
				Help: "Total stakes placed by game",
			},
			[]string{"game"},
		),
		StakeAmount: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "earnhub_stake_amount",
			Help:    "Stake amounts",
			Buckets: []float64{1, 10, 50, 100, 500, 1000, 10000, 100000},
		}),
		StakeOutcomes: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "earnhub_stake_outcomes_total",
				Help: "Total stake outcomes by game and result",
			},
			[]string{"game", "outcome"},
		),
		PayoutAmount: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "earnhub_payout_amount",
			Help:    "Payout amounts on winning stakes",
			Buckets: []float64{1, 10, 100, 1000, 10000, 100000},
		}),

		// Withdrawal metrics
		WithdrawalsRequested: promauto.NewCounter(prometheus.CounterOpts{
			Name: "earnhub_withdrawals_requested_total",
			Help: "Total withdrawal requests accepted",
		}),
		WithdrawalsCompleted: promauto.NewCounter(prometheus.CounterOpts{
			Name: "earnhub_withdrawals_completed_total",
			Help: "Total withdrawals completed by the worker",
		}),
		SagaCompensations: promauto.NewCounter(prometheus.CounterOpts{
			Name: "earnhub_withdrawal_compensations_total",
			Help: "Total withdrawal sagas rolled back after a failed debit",
		}),

		// Ledger metrics
		EntriesAppended: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "earnhub_ledger_entries_total",
				Help: "Total ledger entries appended by type",
			},
			[]string{"type"},
		),
		EntryWriteErrors: promauto.NewCounter(prometheus.CounterOpts{
			Name: "earnhub_ledger_write_errors_total",
			Help: "Total best-effort ledger appends that failed",
		}),

		// Reconciliation metrics
		WalletsReconciled: promauto.NewCounter(prometheus.CounterOpts{
			Name: "earnhub_wallets_reconciled_total",
			Help: "Total wallets checked against the ledger",
		}),
		DriftDetected: promauto.NewCounter(prometheus.CounterOpts{
			Name: "earnhub_wallet_drift_total",
			Help: "Total wallets found drifted from the ledger",
		}),

		// API metrics
		HTTPRequests: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "earnhub_http_requests_total",
				Help: "Total HTTP requests",
			},
			[]string{"method", "path", "status"},
		),
		HTTPDuration: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "earnhub_http_duration_seconds",
				Help:    "HTTP request duration",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "path"},
		),

		// Database metrics
		DBQueries: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "earnhub_db_queries_total",
				Help: "Total database queries by operation",
			},
			[]string{"operation"},
		),
		DBDuration: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "earnhub_db_query_duration_seconds",
				Help:    "Database query duration",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"operation"},
		),
		DBConnections: promauto.NewGauge(prometheus.GaugeOpts{
			Name: "earnhub_db_connections",
			Help: "Current database connections",
		}),
		DBErrors: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "earnhub_db_errors_total",
				Help: "Total database errors by operation",
			},
			[]string{"operation"},
		),

		// Redis metrics
		RedisOperations: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "earnhub_redis_operations_total",
				Help: "Total Redis operations by command",
			},
			[]string{"command"},
		),
		RedisErrors: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "earnhub_redis_errors_total",
				Help: "Total Redis errors by command",
			},
			[]string{"command"},
		),

		// Authentication metrics
		AuthAttempts: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "earnhub_auth_attempts_total",
				Help: "Total authentication attempts by result",
			},
			[]string{"result"},
		),
		AuthFailures: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "earnhub_auth_failures_total",
				Help: "Total authentication failures by reason",
			},
			[]string{"reason"},
		),

		// Rate limiting metrics
		RateLimitHits: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "earnhub_rate_limit_hits_total",
				Help: "Total requests rejected by the rate limiter",
			},
			[]string{"path"},
		),
	}
}
