package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/valyala/fasthttp"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/fastygo/kanban/api/transport"
	"github.com/fastygo/kanban/domain"
	"github.com/fastygo/kanban/pkg/httpcontext"
	boardUC "github.com/fastygo/kanban/usecase/board"
)

// BoardHandler exposes the board store. Every mutating endpoint answers with the
// board after the operation, including when the operation changed nothing.
type BoardHandler struct {
	baseHandler
	store *boardUC.Store
}

func NewBoardHandler(store *boardUC.Store, adapter *httpcontext.Adapter, logger *zap.Logger) *BoardHandler {
	return &BoardHandler{
		baseHandler: newBaseHandler(adapter, logger),
		store:       store,
	}
}

// @Summary Current board
// @Tags board
// @Router /api/v1/board [get]
func (h *BoardHandler) GetBoard(ctx *fasthttp.RequestCtx) {
	_, cancel := h.requestContext(ctx)
	defer cancel()

	h.respondSuccess(ctx, http.StatusOK, h.store.Snapshot())
}

// @Summary Export board as json or yaml
// @Tags board
// @Router /api/v1/board/export [get]
func (h *BoardHandler) Export(ctx *fasthttp.RequestCtx) {
	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	board := h.store.Snapshot()
	format := strings.ToLower(string(ctx.QueryArgs().Peek("format")))

	var (
		body        []byte
		err         error
		contentType string
	)
	switch format {
	case "", "json":
		body, err = json.MarshalIndent(board, "", "  ")
		contentType, format = "application/json", "json"
	case "yaml", "yml":
		body, err = yaml.Marshal(board)
		contentType, format = "application/yaml", "yaml"
	default:
		h.respondJSON(ctx, http.StatusBadRequest,
			transport.NewError(string(domain.ErrCodeInvalid), "unsupported export format", map[string]string{"format": format}))
		return
	}
	if err != nil {
		h.respondError(stdCtx, ctx, domain.WrapError(domain.ErrCodeInternal, "export board", err))
		return
	}

	ctx.Response.Header.SetContentType(contentType)
	ctx.Response.Header.Set("Content-Disposition", `attachment; filename="board.`+format+`"`)
	ctx.SetStatusCode(http.StatusOK)
	ctx.SetBody(body)
}

// @Summary Add column
// @Tags columns
// @Router /api/v1/columns [post]
func (h *BoardHandler) AddColumn(ctx *fasthttp.RequestCtx) {
	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	_, board, err := h.store.AddColumn(stdCtx)
	if err != nil {
		h.respondError(stdCtx, ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusCreated, board)
}

// @Summary Update column
// @Tags columns
// @Router /api/v1/columns/{id} [put]
func (h *BoardHandler) UpdateColumn(ctx *fasthttp.RequestCtx) {
	var req transport.UpdateColumnRequest
	if !h.decodeBody(ctx, &req) {
		return
	}
	h.mutate(ctx, func(stdCtx context.Context) (domain.Board, error) {
		return h.store.UpdateColumn(stdCtx, req.Column(pathParam(ctx, "id")))
	})
}

// @Summary Delete column and its cards
// @Tags columns
// @Router /api/v1/columns/{id} [delete]
func (h *BoardHandler) DeleteColumn(ctx *fasthttp.RequestCtx) {
	h.mutate(ctx, func(stdCtx context.Context) (domain.Board, error) {
		return h.store.DeleteColumn(stdCtx, pathParam(ctx, "id"))
	})
}

// @Summary Move column
// @Tags columns
// @Router /api/v1/columns/move [post]
func (h *BoardHandler) MoveColumn(ctx *fasthttp.RequestCtx) {
	var req transport.MoveColumnRequest
	if !h.decodeBody(ctx, &req) {
		return
	}
	h.mutate(ctx, func(stdCtx context.Context) (domain.Board, error) {
		return h.store.MoveColumn(stdCtx, req.From, req.To)
	})
}

// @Summary Add card
// @Tags cards
// @Router /api/v1/columns/{id}/cards [post]
func (h *BoardHandler) AddCard(ctx *fasthttp.RequestCtx) {
	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	card, board, err := h.store.AddCard(stdCtx, pathParam(ctx, "id"))
	if err != nil {
		h.respondError(stdCtx, ctx, err)
		return
	}
	status := http.StatusCreated
	if card == nil {
		status = http.StatusOK
	}
	h.respondSuccess(ctx, status, board)
}

// @Summary Rename card
// @Tags cards
// @Router /api/v1/columns/{id}/cards/{cardId} [put]
func (h *BoardHandler) UpdateCard(ctx *fasthttp.RequestCtx) {
	var req transport.UpdateCardRequest
	if !h.decodeBody(ctx, &req) {
		return
	}
	h.mutate(ctx, func(stdCtx context.Context) (domain.Board, error) {
		return h.store.UpdateCard(stdCtx, pathParam(ctx, "id"), pathParam(ctx, "cardId"), req.Title)
	})
}

// @Summary Delete card
// @Tags cards
// @Router /api/v1/columns/{id}/cards/{cardId} [delete]
func (h *BoardHandler) DeleteCard(ctx *fasthttp.RequestCtx) {
	h.mutate(ctx, func(stdCtx context.Context) (domain.Board, error) {
		return h.store.DeleteCard(stdCtx, pathParam(ctx, "id"), pathParam(ctx, "cardId"))
	})
}

// @Summary Toggle card completion
// @Tags cards
// @Router /api/v1/columns/{id}/cards/{cardId}/toggle [post]
func (h *BoardHandler) ToggleCard(ctx *fasthttp.RequestCtx) {
	h.mutate(ctx, func(stdCtx context.Context) (domain.Board, error) {
		return h.store.ToggleCardComplete(stdCtx, pathParam(ctx, "id"), pathParam(ctx, "cardId"))
	})
}

// @Summary Move card by position
// @Tags cards
// @Router /api/v1/cards/move [post]
func (h *BoardHandler) MoveCard(ctx *fasthttp.RequestCtx) {
	var req transport.MoveCardRequest
	if !h.decodeBody(ctx, &req) {
		return
	}
	h.mutate(ctx, func(stdCtx context.Context) (domain.Board, error) {
		return h.store.MoveCard(stdCtx, req.SourceColumn, req.DestColumn, req.SourceIndex, req.DestIndex)
	})
}

// @Summary Apply a completed drag gesture
// @Tags board
// @Router /api/v1/gestures [post]
func (h *BoardHandler) ApplyGesture(ctx *fasthttp.RequestCtx) {
	var gesture domain.Gesture
	if !h.decodeBody(ctx, &gesture) {
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	mutation, board, err := h.store.ApplyGesture(stdCtx, gesture)
	if err != nil {
		h.respondError(stdCtx, ctx, err)
		return
	}
	h.respondJSON(ctx, http.StatusOK, transport.NewSuccess(board, map[string]interface{}{
		"mutation": mutation,
	}))
}

// mutate answers with the board the store committed for this call, so a concurrent
// request cannot leak into the response.
func (h *BoardHandler) mutate(ctx *fasthttp.RequestCtx, fn func(stdCtx context.Context) (domain.Board, error)) {
	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	board, err := fn(stdCtx)
	if err != nil {
		h.respondError(stdCtx, ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusOK, board)
}
