// Package apiconnect wires the settleup services onto Connect.
//
// Handlers and clients always use api.Codec, so every procedure speaks plain JSON
// (Content-Type: application/json) at POST /settleup.v1.<Service>/<Method>.
package apiconnect

import (
	"context"
	"net/http"
	"strings"

	"connectrpc.com/connect"

	"github.com/mmynk/settleup/pkg/api"
)

const (
	// SessionServiceName is the fully-qualified name of the SessionService service.
	SessionServiceName = "settleup.v1.SessionService"
	// ExpenseServiceName is the fully-qualified name of the ExpenseService service.
	ExpenseServiceName = "settleup.v1.ExpenseService"
	// SettlementServiceName is the fully-qualified name of the SettlementService service.
	SettlementServiceName = "settleup.v1.SettlementService"
)

// Procedure paths.
const (
	SessionServiceGetSettingsProcedure           = "/settleup.v1.SessionService/GetSettings"
	SessionServiceUpdateSettingsProcedure        = "/settleup.v1.SessionService/UpdateSettings"
	SessionServiceCreateSessionProcedure         = "/settleup.v1.SessionService/CreateSession"
	SessionServiceGetSessionProcedure            = "/settleup.v1.SessionService/GetSession"
	SessionServiceListSessionsProcedure          = "/settleup.v1.SessionService/ListSessions"
	SessionServiceArchiveCurrentSessionProcedure = "/settleup.v1.SessionService/ArchiveCurrentSession"
	SessionServiceStartNewSessionProcedure       = "/settleup.v1.SessionService/StartNewSession"
	SessionServiceDeleteSessionProcedure         = "/settleup.v1.SessionService/DeleteSession"

	ExpenseServiceAddExpenseProcedure         = "/settleup.v1.ExpenseService/AddExpense"
	ExpenseServiceUpdateExpenseProcedure      = "/settleup.v1.ExpenseService/UpdateExpense"
	ExpenseServiceDeleteExpenseProcedure      = "/settleup.v1.ExpenseService/DeleteExpense"
	ExpenseServicePreviewEqualSplitsProcedure = "/settleup.v1.ExpenseService/PreviewEqualSplits"

	SettlementServiceGetSettlementProcedure = "/settleup.v1.SettlementService/GetSettlement"
	SettlementServiceGetBreakdownProcedure  = "/settleup.v1.SettlementService/GetBreakdown"
)

func handlerOptions(opts []connect.HandlerOption) []connect.HandlerOption {
	return append([]connect.HandlerOption{connect.WithCodec(api.Codec{})}, opts...)
}

func clientOptions(opts []connect.ClientOption) []connect.ClientOption {
	return append([]connect.ClientOption{connect.WithCodec(api.Codec{})}, opts...)
}

// SessionServiceHandler is implemented by the session service.
type SessionServiceHandler interface {
	GetSettings(context.Context, *connect.Request[api.GetSettingsRequest]) (*connect.Response[api.GetSettingsResponse], error)
	UpdateSettings(context.Context, *connect.Request[api.UpdateSettingsRequest]) (*connect.Response[api.UpdateSettingsResponse], error)
	CreateSession(context.Context, *connect.Request[api.CreateSessionRequest]) (*connect.Response[api.CreateSessionResponse], error)
	GetSession(context.Context, *connect.Request[api.GetSessionRequest]) (*connect.Response[api.GetSessionResponse], error)
	ListSessions(context.Context, *connect.Request[api.ListSessionsRequest]) (*connect.Response[api.ListSessionsResponse], error)
	ArchiveCurrentSession(context.Context, *connect.Request[api.ArchiveCurrentSessionRequest]) (*connect.Response[api.ArchiveCurrentSessionResponse], error)
	StartNewSession(context.Context, *connect.Request[api.StartNewSessionRequest]) (*connect.Response[api.StartNewSessionResponse], error)
	DeleteSession(context.Context, *connect.Request[api.DeleteSessionRequest]) (*connect.Response[api.DeleteSessionResponse], error)
}

// NewSessionServiceHandler builds an HTTP handler from the service implementation.
// It returns the path on which to mount the handler and the handler itself.
func NewSessionServiceHandler(svc SessionServiceHandler, opts ...connect.HandlerOption) (string, http.Handler) {
	opts = handlerOptions(opts)
	mux := http.NewServeMux()
	mux.Handle(SessionServiceGetSettingsProcedure, connect.NewUnaryHandler(SessionServiceGetSettingsProcedure, svc.GetSettings, opts...))
	mux.Handle(SessionServiceUpdateSettingsProcedure, connect.NewUnaryHandler(SessionServiceUpdateSettingsProcedure, svc.UpdateSettings, opts...))
	mux.Handle(SessionServiceCreateSessionProcedure, connect.NewUnaryHandler(SessionServiceCreateSessionProcedure, svc.CreateSession, opts...))
	mux.Handle(SessionServiceGetSessionProcedure, connect.NewUnaryHandler(SessionServiceGetSessionProcedure, svc.GetSession, opts...))
	mux.Handle(SessionServiceListSessionsProcedure, connect.NewUnaryHandler(SessionServiceListSessionsProcedure, svc.ListSessions, opts...))
	mux.Handle(SessionServiceArchiveCurrentSessionProcedure, connect.NewUnaryHandler(SessionServiceArchiveCurrentSessionProcedure, svc.ArchiveCurrentSession, opts...))
	mux.Handle(SessionServiceStartNewSessionProcedure, connect.NewUnaryHandler(SessionServiceStartNewSessionProcedure, svc.StartNewSession, opts...))
	mux.Handle(SessionServiceDeleteSessionProcedure, connect.NewUnaryHandler(SessionServiceDeleteSessionProcedure, svc.DeleteSession, opts...))
	return "/" + SessionServiceName + "/", mux
}

// SessionServiceClient is a client for settleup.v1.SessionService.
type SessionServiceClient struct {
	getSettings           *connect.Client[api.GetSettingsRequest, api.GetSettingsResponse]
	updateSettings        *connect.Client[api.UpdateSettingsRequest, api.UpdateSettingsResponse]
	createSession         *connect.Client[api.CreateSessionRequest, api.CreateSessionResponse]
	getSession            *connect.Client[api.GetSessionRequest, api.GetSessionResponse]
	listSessions          *connect.Client[api.ListSessionsRequest, api.ListSessionsResponse]
	archiveCurrentSession *connect.Client[api.ArchiveCurrentSessionRequest, api.ArchiveCurrentSessionResponse]
	startNewSession       *connect.Client[api.StartNewSessionRequest, api.StartNewSessionResponse]
	deleteSession         *connect.Client[api.DeleteSessionRequest, api.DeleteSessionResponse]
}

// NewSessionServiceClient constructs a client for the service at baseURL
// (for example, http://localhost:8080).
func NewSessionServiceClient(httpClient connect.HTTPClient, baseURL string, opts ...connect.ClientOption) *SessionServiceClient {
	baseURL = strings.TrimRight(baseURL, "/")
	opts = clientOptions(opts)
	return &SessionServiceClient{
		getSettings:           connect.NewClient[api.GetSettingsRequest, api.GetSettingsResponse](httpClient, baseURL+SessionServiceGetSettingsProcedure, opts...),
		updateSettings:        connect.NewClient[api.UpdateSettingsRequest, api.UpdateSettingsResponse](httpClient, baseURL+SessionServiceUpdateSettingsProcedure, opts...),
		createSession:         connect.NewClient[api.CreateSessionRequest, api.CreateSessionResponse](httpClient, baseURL+SessionServiceCreateSessionProcedure, opts...),
		getSession:            connect.NewClient[api.GetSessionRequest, api.GetSessionResponse](httpClient, baseURL+SessionServiceGetSessionProcedure, opts...),
		listSessions:          connect.NewClient[api.ListSessionsRequest, api.ListSessionsResponse](httpClient, baseURL+SessionServiceListSessionsProcedure, opts...),
		archiveCurrentSession: connect.NewClient[api.ArchiveCurrentSessionRequest, api.ArchiveCurrentSessionResponse](httpClient, baseURL+SessionServiceArchiveCurrentSessionProcedure, opts...),
		startNewSession:       connect.NewClient[api.StartNewSessionRequest, api.StartNewSessionResponse](httpClient, baseURL+SessionServiceStartNewSessionProcedure, opts...),
		deleteSession:         connect.NewClient[api.DeleteSessionRequest, api.DeleteSessionResponse](httpClient, baseURL+SessionServiceDeleteSessionProcedure, opts...),
	}
}

func (c *SessionServiceClient) GetSettings(ctx context.Context, req *connect.Request[api.GetSettingsRequest]) (*connect.Response[api.GetSettingsResponse], error) {
	return c.getSettings.CallUnary(ctx, req)
}

func (c *SessionServiceClient) UpdateSettings(ctx context.Context, req *connect.Request[api.UpdateSettingsRequest]) (*connect.Response[api.UpdateSettingsResponse], error) {
	return c.updateSettings.CallUnary(ctx, req)
}

func (c *SessionServiceClient) CreateSession(ctx context.Context, req *connect.Request[api.CreateSessionRequest]) (*connect.Response[api.CreateSessionResponse], error) {
	return c.createSession.CallUnary(ctx, req)
}

func (c *SessionServiceClient) GetSession(ctx context.Context, req *connect.Request[api.GetSessionRequest]) (*connect.Response[api.GetSessionResponse], error) {
	return c.getSession.CallUnary(ctx, req)
}

func (c *SessionServiceClient) ListSessions(ctx context.Context, req *connect.Request[api.ListSessionsRequest]) (*connect.Response[api.ListSessionsResponse], error) {
	return c.listSessions.CallUnary(ctx, req)
}

func (c *SessionServiceClient) ArchiveCurrentSession(ctx context.Context, req *connect.Request[api.ArchiveCurrentSessionRequest]) (*connect.Response[api.ArchiveCurrentSessionResponse], error) {
	return c.archiveCurrentSession.CallUnary(ctx, req)
}

func (c *SessionServiceClient) StartNewSession(ctx context.Context, req *connect.Request[api.StartNewSessionRequest]) (*connect.Response[api.StartNewSessionResponse], error) {
	return c.startNewSession.CallUnary(ctx, req)
}

func (c *SessionServiceClient) DeleteSession(ctx context.Context, req *connect.Request[api.DeleteSessionRequest]) (*connect.Response[api.DeleteSessionResponse], error) {
	return c.deleteSession.CallUnary(ctx, req)
}

// ExpenseServiceHandler is implemented by the expense service.
type ExpenseServiceHandler interface {
	AddExpense(context.Context, *connect.Request[api.AddExpenseRequest]) (*connect.Response[api.AddExpenseResponse], error)
	UpdateExpense(context.Context, *connect.Request[api.UpdateExpenseRequest]) (*connect.Response[api.UpdateExpenseResponse], error)
	DeleteExpense(context.Context, *connect.Request[api.DeleteExpenseRequest]) (*connect.Response[api.DeleteExpenseResponse], error)
	PreviewEqualSplits(context.Context, *connect.Request[api.PreviewEqualSplitsRequest]) (*connect.Response[api.PreviewEqualSplitsResponse], error)
}

// NewExpenseServiceHandler builds an HTTP handler from the service implementation.
func NewExpenseServiceHandler(svc ExpenseServiceHandler, opts ...connect.HandlerOption) (string, http.Handler) {
	opts = handlerOptions(opts)
	mux := http.NewServeMux()
	mux.Handle(ExpenseServiceAddExpenseProcedure, connect.NewUnaryHandler(ExpenseServiceAddExpenseProcedure, svc.AddExpense, opts...))
	mux.Handle(ExpenseServiceUpdateExpenseProcedure, connect.NewUnaryHandler(ExpenseServiceUpdateExpenseProcedure, svc.UpdateExpense, opts...))
	mux.Handle(ExpenseServiceDeleteExpenseProcedure, connect.NewUnaryHandler(ExpenseServiceDeleteExpenseProcedure, svc.DeleteExpense, opts...))
	mux.Handle(ExpenseServicePreviewEqualSplitsProcedure, connect.NewUnaryHandler(ExpenseServicePreviewEqualSplitsProcedure, svc.PreviewEqualSplits, opts...))
	return "/" + ExpenseServiceName + "/", mux
}

// ExpenseServiceClient is a client for settleup.v1.ExpenseService.
type ExpenseServiceClient struct {
	addExpense         *connect.Client[api.AddExpenseRequest, api.AddExpenseResponse]
	updateExpense      *connect.Client[api.UpdateExpenseRequest, api.UpdateExpenseResponse]
	deleteExpense      *connect.Client[api.DeleteExpenseRequest, api.DeleteExpenseResponse]
	previewEqualSplits *connect.Client[api.PreviewEqualSplitsRequest, api.PreviewEqualSplitsResponse]
}

func NewExpenseServiceClient(httpClient connect.HTTPClient, baseURL string, opts ...connect.ClientOption) *ExpenseServiceClient {
	baseURL = strings.TrimRight(baseURL, "/")
	opts = clientOptions(opts)
	return &ExpenseServiceClient{
		addExpense:         connect.NewClient[api.AddExpenseRequest, api.AddExpenseResponse](httpClient, baseURL+ExpenseServiceAddExpenseProcedure, opts...),
		updateExpense:      connect.NewClient[api.UpdateExpenseRequest, api.UpdateExpenseResponse](httpClient, baseURL+ExpenseServiceUpdateExpenseProcedure, opts...),
		deleteExpense:      connect.NewClient[api.DeleteExpenseRequest, api.DeleteExpenseResponse](httpClient, baseURL+ExpenseServiceDeleteExpenseProcedure, opts...),
		previewEqualSplits: connect.NewClient[api.PreviewEqualSplitsRequest, api.PreviewEqualSplitsResponse](httpClient, baseURL+ExpenseServicePreviewEqualSplitsProcedure, opts...),
	}
}

func (c *ExpenseServiceClient) AddExpense(ctx context.Context, req *connect.Request[api.AddExpenseRequest]) (*connect.Response[api.AddExpenseResponse], error) {
	return c.addExpense.CallUnary(ctx, req)
}

func (c *ExpenseServiceClient) UpdateExpense(ctx context.Context, req *connect.Request[api.UpdateExpenseRequest]) (*connect.Response[api.UpdateExpenseResponse], error) {
	return c.updateExpense.CallUnary(ctx, req)
}

func (c *ExpenseServiceClient) DeleteExpense(ctx context.Context, req *connect.Request[api.DeleteExpenseRequest]) (*connect.Response[api.DeleteExpenseResponse], error) {
	return c.deleteExpense.CallUnary(ctx, req)
}

func (c *ExpenseServiceClient) PreviewEqualSplits(ctx context.Context, req *connect.Request[api.PreviewEqualSplitsRequest]) (*connect.Response[api.PreviewEqualSplitsResponse], error) {
	return c.previewEqualSplits.CallUnary(ctx, req)
}

// SettlementServiceHandler is implemented by the settlement service.
type SettlementServiceHandler interface {
	GetSettlement(context.Context, *connect.Request[api.GetSettlementRequest]) (*connect.Response[api.GetSettlementResponse], error)
	GetBreakdown(context.Context, *connect.Request[api.GetBreakdownRequest]) (*connect.Response[api.GetBreakdownResponse], error)
}

// NewSettlementServiceHandler builds an HTTP handler from the service implementation.
func NewSettlementServiceHandler(svc SettlementServiceHandler, opts ...connect.HandlerOption) (string, http.Handler) {
	opts = handlerOptions(opts)
	mux := http.NewServeMux()
	mux.Handle(SettlementServiceGetSettlementProcedure, connect.NewUnaryHandler(SettlementServiceGetSettlementProcedure, svc.GetSettlement, opts...))
	mux.Handle(SettlementServiceGetBreakdownProcedure, connect.NewUnaryHandler(SettlementServiceGetBreakdownProcedure, svc.GetBreakdown, opts...))
	return "/" + SettlementServiceName + "/", mux
}

// SettlementServiceClient is a client for settleup.v1.SettlementService.
type SettlementServiceClient struct {
	getSettlement *connect.Client[api.GetSettlementRequest, api.GetSettlementResponse]
	getBreakdown  *connect.Client[api.GetBreakdownRequest, api.GetBreakdownResponse]
}

func NewSettlementServiceClient(httpClient connect.HTTPClient, baseURL string, opts ...connect.ClientOption) *SettlementServiceClient {
	baseURL = strings.TrimRight(baseURL, "/")
	opts = clientOptions(opts)
	return &SettlementServiceClient{
		getSettlement: connect.NewClient[api.GetSettlementRequest, api.GetSettlementResponse](httpClient, baseURL+SettlementServiceGetSettlementProcedure, opts...),
		getBreakdown:  connect.NewClient[api.GetBreakdownRequest, api.GetBreakdownResponse](httpClient, baseURL+SettlementServiceGetBreakdownProcedure, opts...),
	}
}

func (c *SettlementServiceClient) GetSettlement(ctx context.Context, req *connect.Request[api.GetSettlementRequest]) (*connect.Response[api.GetSettlementResponse], error) {
	return c.getSettlement.CallUnary(ctx, req)
}

func (c *SettlementServiceClient) GetBreakdown(ctx context.Context, req *connect.Request[api.GetBreakdownRequest]) (*connect.Response[api.GetBreakdownResponse], error) {
	return c.getBreakdown.CallUnary(ctx, req)
}
