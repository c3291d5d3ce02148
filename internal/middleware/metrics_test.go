package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"connectrpc.com/connect"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"

	"github.com/mmynk/settleup/internal/storage"
	"github.com/mmynk/settleup/pkg/api"
)

const testProcedure = "/settleup.v1.SessionService/GetSession"

// setupMetricsServer serves one procedure that fails with NotFound for the "missing" session.
func setupMetricsServer(t *testing.T) (*Metrics, *connect.Client[api.GetSessionRequest, api.GetSessionResponse]) {
	t.Helper()

	m := NewMetrics(prometheus.NewRegistry())

	handler := connect.NewUnaryHandler(testProcedure,
		func(ctx context.Context, req *connect.Request[api.GetSessionRequest]) (*connect.Response[api.GetSessionResponse], error) {
			if req.Msg.SessionID == "missing" {
				return nil, connect.NewError(connect.CodeNotFound, storage.ErrNotFound)
			}
			return connect.NewResponse(&api.GetSessionResponse{Session: api.Session{ID: req.Msg.SessionID}}), nil
		},
		connect.WithCodec(api.Codec{}),
		connect.WithInterceptors(m.Interceptor(), LoggingInterceptor()),
	)

	mux := http.NewServeMux()
	mux.Handle(testProcedure, handler)
	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)

	client := connect.NewClient[api.GetSessionRequest, api.GetSessionResponse](
		http.DefaultClient,
		server.URL+testProcedure,
		connect.WithCodec(api.Codec{}),
	)
	return m, client
}

func TestMetricsInterceptor(t *testing.T) {
	m, client := setupMetricsServer(t)
	ctx := context.Background()

	for i := 0; i < 2; i++ {
		if _, err := client.CallUnary(ctx, connect.NewRequest(&api.GetSessionRequest{SessionID: "s1"})); err != nil {
			t.Fatalf("call failed: %v", err)
		}
	}
	_, err := client.CallUnary(ctx, connect.NewRequest(&api.GetSessionRequest{SessionID: "missing"}))
	if connect.CodeOf(err) != connect.CodeNotFound {
		t.Fatalf("expected NotFound, got %v", err)
	}

	if got := testutil.ToFloat64(m.requests.WithLabelValues(testProcedure, "ok")); got != 2 {
		t.Errorf("ok requests: expected 2, got %v", got)
	}
	if got := testutil.ToFloat64(m.requests.WithLabelValues(testProcedure, "not_found")); got != 1 {
		t.Errorf("not_found requests: expected 1, got %v", got)
	}
	if got := testutil.CollectAndCount(m.duration); got != 1 {
		t.Errorf("duration series: expected 1, got %d", got)
	}
}

func TestObserveSettlement(t *testing.T) {
	m := NewMetrics(prometheus.NewRegistry())

	m.ObserveSettlement(3, 2)
	m.ObserveSettlement(0, 0)

	if got := testutil.CollectAndCount(m.settlementSize); got != 2 {
		t.Errorf("settlement series: expected 2, got %d", got)
	}
}

func TestCodeOf(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{"nil", nil, "ok"},
		{"connect error", connect.NewError(connect.CodeInvalidArgument, errors.New("bad")), "invalid_argument"},
		{"plain error", errors.New("boom"), "unknown"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := codeOf(tt.err); got != tt.want {
				t.Errorf("expected %q, got %q", tt.want, got)
			}
		})
	}
}
