package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	httpReqTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "numbergame_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"path", "method", "status"},
	)

	httpReqDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "numbergame_http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.ExponentialBuckets(0.0005, 2, 12),
		},
		[]string{"path", "method"},
	)

	roundsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "numbergame_rounds_total",
			Help: "Rounds played by outcome (win, loss, rejected, error)",
		},
		[]string{"outcome"},
	)

	wageredTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "numbergame_wagered_total",
		Help: "Sum of bets placed on settled rounds",
	})

	paidTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "numbergame_paid_total",
		Help: "Sum of payouts on settled rounds",
	})
)

const (
	OutcomeWin      = "win"
	OutcomeLoss     = "loss"
	OutcomeRejected = "rejected"
	OutcomeError    = "error"
)

func RecordHTTP(path, method string, status int, started time.Time) {
	httpReqTotal.WithLabelValues(path, method, strconv.Itoa(status)).Inc()
	httpReqDuration.WithLabelValues(path, method).Observe(time.Since(started).Seconds())
}

// RecordSettled counts a round that produced a result.
func RecordSettled(isWin bool, placedBet, wonAmount float64) {
	outcome := OutcomeLoss
	if isWin {
		outcome = OutcomeWin
	}
	roundsTotal.WithLabelValues(outcome).Inc()
	wageredTotal.Add(placedBet)
	paidTotal.Add(wonAmount)
}

func RecordRejected() {
	roundsTotal.WithLabelValues(OutcomeRejected).Inc()
}

func RecordError() {
	roundsTotal.WithLabelValues(OutcomeError).Inc()
}

func Handler() http.Handler {
	return promhttp.Handler()
}
