package middleware

import (
	"context"
	"errors"
	"time"

	"connectrpc.com/connect"
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the server's Prometheus collectors.
type Metrics struct {
	requests       *prometheus.CounterVec
	duration       *prometheus.HistogramVec
	settlementSize *prometheus.HistogramVec
}

// NewMetrics creates the collectors and registers them with reg.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "settleup",
			Name:      "rpc_requests_total",
			Help:      "RPC calls by procedure and result code.",
		}, []string{"procedure", "code"}),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "settleup",
			Name:      "rpc_duration_seconds",
			Help:      "RPC latency by procedure.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"procedure"}),
		settlementSize: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "settleup",
			Name:      "settlement_size",
			Help:      "Participants and payments per computed settlement.",
			Buckets:   []float64{0, 1, 2, 3, 5, 8, 13, 21},
		}, []string{"kind"}),
	}
	reg.MustRegister(m.requests, m.duration, m.settlementSize)
	return m
}

// Interceptor returns a Connect interceptor that counts and times every RPC call.
func (m *Metrics) Interceptor() connect.UnaryInterceptorFunc {
	return func(next connect.UnaryFunc) connect.UnaryFunc {
		return func(ctx context.Context, req connect.AnyRequest) (connect.AnyResponse, error) {
			start := time.Now()
			procedure := req.Spec().Procedure

			resp, err := next(ctx, req)

			m.duration.WithLabelValues(procedure).Observe(time.Since(start).Seconds())
			m.requests.WithLabelValues(procedure, codeOf(err)).Inc()
			return resp, err
		}
	}
}

// ObserveSettlement records the size of one computed settlement.
func (m *Metrics) ObserveSettlement(participants, transactions int) {
	m.settlementSize.WithLabelValues("participants").Observe(float64(participants))
	m.settlementSize.WithLabelValues("transactions").Observe(float64(transactions))
}

func codeOf(err error) string {
	if err == nil {
		return "ok"
	}
	var connectErr *connect.Error
	if errors.As(err, &connectErr) {
		return connectErr.Code().String()
	}
	return connect.CodeUnknown.String()
}
