package handler

import (
	"encoding/json"
	"net/http"

	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	"github.com/fastygo/kanban/pkg/httpcontext"
	"github.com/fastygo/kanban/usecase"
)

// CommandHandler drives the board by operation name through the dispatcher.
type CommandHandler struct {
	baseHandler
	dispatcher *usecase.Dispatcher
}

func NewCommandHandler(dispatcher *usecase.Dispatcher, adapter *httpcontext.Adapter, logger *zap.Logger) *CommandHandler {
	return &CommandHandler{
		baseHandler: newBaseHandler(adapter, logger),
		dispatcher:  dispatcher,
	}
}

// @Summary List command names
// @Tags commands
// @Router /api/v1/commands [get]
func (h *CommandHandler) List(ctx *fasthttp.RequestCtx) {
	_, cancel := h.requestContext(ctx)
	defer cancel()

	h.respondSuccess(ctx, http.StatusOK, h.dispatcher.Commands())
}

// @Summary Execute a named command
// @Tags commands
// @Router /api/v1/commands/{name} [post]
func (h *CommandHandler) Execute(ctx *fasthttp.RequestCtx) {
	var payload interface{}
	if body := ctx.PostBody(); len(body) > 0 {
		payload = json.RawMessage(append([]byte(nil), body...))
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	result, err := h.dispatcher.ExecuteCommand(stdCtx, pathParam(ctx, "name"), payload)
	if err != nil {
		h.respondError(stdCtx, ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusOK, result)
}

// @Summary Run a named query
// @Tags commands
// @Router /api/v1/queries/{name} [get]
func (h *CommandHandler) Query(ctx *fasthttp.RequestCtx) {
	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	result, err := h.dispatcher.ExecuteQuery(stdCtx, pathParam(ctx, "name"), nil)
	if err != nil {
		h.respondError(stdCtx, ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusOK, result)
}
