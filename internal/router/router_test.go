package router

import (
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/valyala/fasthttp"
	"gopkg.in/yaml.v3"

	apiHandler "github.com/fastygo/kanban/api/handler"
	"github.com/fastygo/kanban/domain"
	"github.com/fastygo/kanban/internal/infrastructure/monitor"
	"github.com/fastygo/kanban/pkg/httpcontext"
	"github.com/fastygo/kanban/pkg/idgen"
	"github.com/fastygo/kanban/repository/memory"
	"github.com/fastygo/kanban/usecase"
	boardUC "github.com/fastygo/kanban/usecase/board"
)

type staticStatus struct{ status monitor.Status }

func (s staticStatus) GetStatus() monitor.Status { return s.status }

type envelope struct {
	Status string          `json:"status"`
	Code   string          `json:"code"`
	Data   json.RawMessage `json:"data"`
	Meta   json.RawMessage `json:"meta"`
}

type testServer struct {
	t       *testing.T
	handler fasthttp.RequestHandler
	store   *boardUC.Store
}

func newTestServer(t *testing.T, online bool) *testServer {
	t.Helper()
	store := boardUC.New(memory.NewBoardRepository(), nil, nil, boardUC.WithIDGenerator(idgen.Sequence("id")))
	dispatcher := usecase.NewDispatcher()
	boardUC.RegisterCommands(dispatcher, store)

	adapter := httpcontext.NewAdapter(time.Second)
	r := New(Handlers{
		Board:    apiHandler.NewBoardHandler(store, adapter, nil),
		Commands: apiHandler.NewCommandHandler(dispatcher, adapter, nil),
		Health: apiHandler.NewHealthHandler(staticStatus{monitor.Status{
			Driver:  "memory",
			Storage: online,
		}}, adapter, nil),
	}, nil)
	return &testServer{t: t, handler: r.Handler, store: store}
}

func (s *testServer) do(method, uri, body string) (*fasthttp.RequestCtx, envelope) {
	s.t.Helper()
	var ctx fasthttp.RequestCtx
	ctx.Request.Header.SetMethod(method)
	ctx.Request.SetRequestURI(uri)
	if body != "" {
		ctx.Request.SetBodyString(body)
	}
	s.handler(&ctx)

	var env envelope
	if ct := string(ctx.Response.Header.ContentType()); ct == "application/json" {
		require.NoError(s.t, json.Unmarshal(ctx.Response.Body(), &env))
	}
	return &ctx, env
}

func (s *testServer) board(env envelope) domain.Board {
	s.t.Helper()
	var b domain.Board
	require.NoError(s.t, json.Unmarshal(env.Data, &b))
	return b
}

func columnTitles(b domain.Board) []string {
	out := make([]string, 0, len(b.Columns))
	for _, c := range b.Columns {
		out = append(out, c.Title)
	}
	return out
}

func TestRouter_BoardLifecycle(t *testing.T) {
	srv := newTestServer(t, true)

	ctx, env := srv.do(fasthttp.MethodGet, "/api/v1/board", "")
	require.Equal(t, http.StatusOK, ctx.Response.StatusCode())
	require.Equal(t, "success", env.Status)
	require.Equal(t, []string{"to do", "in progress", "done"}, columnTitles(srv.board(env)))
	require.NotEmpty(t, ctx.Response.Header.Peek("X-Request-ID"))

	ctx, env = srv.do(fasthttp.MethodPost, "/api/v1/columns/id-1/cards", "")
	require.Equal(t, http.StatusCreated, ctx.Response.StatusCode())
	b := srv.board(env)
	require.Len(t, b.Columns[0].Cards, 1)
	cardID := b.Columns[0].Cards[0].ID
	require.Equal(t, "new card", b.Columns[0].Cards[0].Title)

	ctx, env = srv.do(fasthttp.MethodPut, "/api/v1/columns/id-1/cards/"+cardID, `{"title":"  ship it  "}`)
	require.Equal(t, http.StatusOK, ctx.Response.StatusCode())
	require.Equal(t, "ship it", srv.board(env).Columns[0].Cards[0].Title)

	_, env = srv.do(fasthttp.MethodPost, "/api/v1/columns/id-1/cards/"+cardID+"/toggle", "")
	require.True(t, srv.board(env).Columns[0].Cards[0].Completed)

	_, env = srv.do(fasthttp.MethodPost, "/api/v1/cards/move",
		`{"source_column":0,"dest_column":2,"source_index":0,"dest_index":0}`)
	b = srv.board(env)
	require.Empty(t, b.Columns[0].Cards)
	require.Equal(t, cardID, b.Columns[2].Cards[0].ID)

	_, env = srv.do(fasthttp.MethodPost, "/api/v1/columns/move", `{"from":0,"to":2}`)
	require.Equal(t, []string{"in progress", "done", "to do"}, columnTitles(srv.board(env)))

	_, env = srv.do(fasthttp.MethodPut, "/api/v1/columns/id-3", `{"title":"shipped"}`)
	b = srv.board(env)
	require.Equal(t, "shipped", b.Columns[1].Title)
	require.Len(t, b.Columns[1].Cards, 1)

	ctx, env = srv.do(fasthttp.MethodPost, "/api/v1/columns", "")
	require.Equal(t, http.StatusCreated, ctx.Response.StatusCode())
	require.Equal(t, "new column", srv.board(env).Columns[3].Title)

	_, env = srv.do(fasthttp.MethodDelete, "/api/v1/columns/id-3", "")
	b = srv.board(env)
	require.Len(t, b.Columns, 3)
	require.Equal(t, 0, b.CardCount())
}

func TestRouter_NoOpsAnswerWithBoard(t *testing.T) {
	srv := newTestServer(t, true)
	before := srv.store.Snapshot()

	cases := []struct {
		method, uri, body string
	}{
		{fasthttp.MethodPost, "/api/v1/columns/missing/cards", ""},
		{fasthttp.MethodDelete, "/api/v1/columns/missing", ""},
		{fasthttp.MethodPut, "/api/v1/columns/id-1", `{"title":"   "}`},
		{fasthttp.MethodPost, "/api/v1/columns/move", `{"from":0,"to":9}`},
		{fasthttp.MethodPost, "/api/v1/cards/move", `{"source_column":0,"dest_column":1,"source_index":0,"dest_index":0}`},
		{fasthttp.MethodDelete, "/api/v1/columns/id-1/cards/nope", ""},
	}
	for _, tc := range cases {
		ctx, env := srv.do(tc.method, tc.uri, tc.body)
		require.Equal(t, http.StatusOK, ctx.Response.StatusCode(), tc.uri)
		require.Equal(t, before, srv.board(env), tc.uri)
	}
}

func TestRouter_MalformedBody(t *testing.T) {
	srv := newTestServer(t, true)
	for _, uri := range []string{"/api/v1/columns/move", "/api/v1/cards/move", "/api/v1/gestures"} {
		ctx, env := srv.do(fasthttp.MethodPost, uri, `{"from":`)
		require.Equal(t, http.StatusBadRequest, ctx.Response.StatusCode(), uri)
		require.Equal(t, "INVALID", env.Code)
	}
}

func TestRouter_Gesture(t *testing.T) {
	srv := newTestServer(t, true)

	ctx, env := srv.do(fasthttp.MethodPost, "/api/v1/gestures",
		`{"kind":"column","source":{"list_id":"board","index":2},"destination":{"list_id":"board","index":0}}`)
	require.Equal(t, http.StatusOK, ctx.Response.StatusCode())
	require.Equal(t, []string{"done", "to do", "in progress"}, columnTitles(srv.board(env)))

	var meta struct {
		Mutation boardUC.Mutation `json:"mutation"`
	}
	require.NoError(t, json.Unmarshal(env.Meta, &meta))
	require.Equal(t, boardUC.MutationMoveColumn, meta.Mutation.Kind)

	_, env = srv.do(fasthttp.MethodPost, "/api/v1/gestures",
		`{"kind":"card","source":{"list_id":"id-1","index":0}}`)
	require.NoError(t, json.Unmarshal(env.Meta, &meta))
	require.Equal(t, boardUC.MutationNone, meta.Mutation.Kind)
}

func TestRouter_Commands(t *testing.T) {
	srv := newTestServer(t, true)

	_, env := srv.do(fasthttp.MethodGet, "/api/v1/commands", "")
	var names []string
	require.NoError(t, json.Unmarshal(env.Data, &names))
	require.Contains(t, names, boardUC.CommandReconcile)

	ctx, env := srv.do(fasthttp.MethodPost, "/api/v1/commands/addCard", `{"column_id":"id-2"}`)
	require.Equal(t, http.StatusOK, ctx.Response.StatusCode())
	require.Len(t, srv.board(env).Columns[1].Cards, 1)

	ctx, env = srv.do(fasthttp.MethodPost, "/api/v1/commands/launchRocket", `{}`)
	require.Equal(t, http.StatusNotFound, ctx.Response.StatusCode())
	require.Equal(t, "NOT_FOUND", env.Code)

	ctx, env = srv.do(fasthttp.MethodPost, "/api/v1/commands/moveColumn", `[1,2]`)
	require.Equal(t, http.StatusBadRequest, ctx.Response.StatusCode())
	require.Equal(t, "INVALID", env.Code)

	_, env = srv.do(fasthttp.MethodGet, "/api/v1/queries/board", "")
	require.Len(t, srv.board(env).Columns, 3)
}

func TestRouter_Export(t *testing.T) {
	srv := newTestServer(t, true)

	ctx, _ := srv.do(fasthttp.MethodGet, "/api/v1/board/export?format=yaml", "")
	require.Equal(t, http.StatusOK, ctx.Response.StatusCode())
	require.Equal(t, "application/yaml", string(ctx.Response.Header.ContentType()))

	var exported domain.Board
	require.NoError(t, yaml.Unmarshal(ctx.Response.Body(), &exported))
	require.Equal(t, srv.store.Snapshot(), exported)

	ctx, _ = srv.do(fasthttp.MethodGet, "/api/v1/board/export", "")
	require.Equal(t, http.StatusOK, ctx.Response.StatusCode())
	var asJSON domain.Board
	require.NoError(t, json.Unmarshal(ctx.Response.Body(), &asJSON))
	require.Equal(t, srv.store.Snapshot(), asJSON)

	ctx, env := srv.do(fasthttp.MethodGet, "/api/v1/board/export?format=xml", "")
	require.Equal(t, http.StatusBadRequest, ctx.Response.StatusCode())
	require.Equal(t, "INVALID", env.Code)
}

func TestRouter_Health(t *testing.T) {
	ctx, env := newTestServer(t, true).do(fasthttp.MethodGet, "/health", "")
	require.Equal(t, http.StatusOK, ctx.Response.StatusCode())
	require.Equal(t, "success", env.Status)

	ctx, env = newTestServer(t, false).do(fasthttp.MethodGet, "/health", "")
	require.Equal(t, http.StatusServiceUnavailable, ctx.Response.StatusCode())
	require.Equal(t, "DEGRADED", env.Code)
}

func TestRouter_ReadRoutesCarryRequestID(t *testing.T) {
	srv := newTestServer(t, true)

	for _, uri := range []string{
		"/api/v1/board",
		"/api/v1/board/export",
		"/api/v1/board/export?format=yaml",
		"/api/v1/board/export?format=xml",
		"/api/v1/commands",
		"/health",
	} {
		ctx, _ := srv.do(fasthttp.MethodGet, uri, "")
		require.NotEmpty(t, ctx.Response.Header.Peek(httpcontext.HeaderRequestID), uri)

		var echoed fasthttp.RequestCtx
		echoed.Request.Header.SetMethod(fasthttp.MethodGet)
		echoed.Request.SetRequestURI(uri)
		echoed.Request.Header.Set(httpcontext.HeaderRequestID, "req-42")
		srv.handler(&echoed)
		require.Equal(t, "req-42", string(echoed.Response.Header.Peek(httpcontext.HeaderRequestID)), uri)
	}
}
