// Package metrics exports vote outcomes to Prometheus.
package metrics

import (
	"time"

	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/Kuuhaku-web/Arcana/internal/vote"
)

const outcomeSuccess = "success"

var _ vote.Recorder = (*Metrics)(nil)

type Metrics struct {
	attempts    *prometheus.CounterVec
	tokensSpent prometheus.Counter
	grants      prometheus.Counter
	duration    *prometheus.HistogramVec
}

func New(namespace string, registerer prometheus.Registerer) (*Metrics, error) {
	m := &Metrics{
		attempts: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "vote_attempts",
				Help:      "Number of finished vote attempts by outcome",
			},
			[]string{"outcome"},
		),
		tokensSpent: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "vote_tokens_spent",
			Help:      "Tokens paid for successful votes, in whole token units",
		}),
		grants: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "vote_grants",
			Help:      "Number of spending grants issued before a successful vote",
		}),
		duration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "vote_duration_seconds",
				Help:      "Time from request to result of a vote attempt",
				Buckets:   []float64{0.1, 0.5, 1, 2.5, 5, 10, 30, 60, 120},
			},
			[]string{"outcome"},
		),
	}
	for _, c := range []prometheus.Collector{m.attempts, m.tokensSpent, m.grants, m.duration} {
		if err := registerer.Register(c); err != nil {
			return nil, errors.Wrap(err, "failed to register vote metrics")
		}
	}
	return m, nil
}

// Observe implements vote.Recorder.
func (m *Metrics) Observe(res vote.Result, elapsed time.Duration) {
	outcome := outcomeOf(res)
	m.attempts.WithLabelValues(outcome).Inc()
	m.duration.WithLabelValues(outcome).Observe(elapsed.Seconds())
	success, ok := res.(vote.Success)
	if !ok {
		return
	}
	m.tokensSpent.Add(float64(success.CostPaid))
	if success.GrantTxID != "" {
		m.grants.Inc()
	}
}

func outcomeOf(res vote.Result) string {
	switch r := res.(type) {
	case vote.Success:
		return outcomeSuccess
	case vote.Failure:
		return r.Kind.String()
	}
	return "unknown"
}
