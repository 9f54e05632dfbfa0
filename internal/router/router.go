package router

import (
	"github.com/fasthttp/router"
	"github.com/valyala/fasthttp"

	apiHandler "github.com/fastygo/kanban/api/handler"
)

type Handlers struct {
	Board    *apiHandler.BoardHandler
	Commands *apiHandler.CommandHandler
	Health   *apiHandler.HealthHandler
}

// New registers the board routes. Every route is wrapped by mw, which may be nil.
func New(handlers Handlers, mw func(fasthttp.RequestHandler) fasthttp.RequestHandler) *router.Router {
	if mw == nil {
		mw = func(next fasthttp.RequestHandler) fasthttp.RequestHandler { return next }
	}
	r := router.New()

	r.GET("/health", mw(handlers.Health.Check))

	r.GET("/api/v1/board", mw(handlers.Board.GetBoard))
	r.GET("/api/v1/board/export", mw(handlers.Board.Export))

	r.POST("/api/v1/columns", mw(handlers.Board.AddColumn))
	r.POST("/api/v1/columns/move", mw(handlers.Board.MoveColumn))
	r.PUT("/api/v1/columns/{id}", mw(handlers.Board.UpdateColumn))
	r.DELETE("/api/v1/columns/{id}", mw(handlers.Board.DeleteColumn))

	r.POST("/api/v1/columns/{id}/cards", mw(handlers.Board.AddCard))
	r.PUT("/api/v1/columns/{id}/cards/{cardId}", mw(handlers.Board.UpdateCard))
	r.DELETE("/api/v1/columns/{id}/cards/{cardId}", mw(handlers.Board.DeleteCard))
	r.POST("/api/v1/columns/{id}/cards/{cardId}/toggle", mw(handlers.Board.ToggleCard))
	r.POST("/api/v1/cards/move", mw(handlers.Board.MoveCard))

	r.POST("/api/v1/gestures", mw(handlers.Board.ApplyGesture))

	r.GET("/api/v1/commands", mw(handlers.Commands.List))
	r.POST("/api/v1/commands/{name}", mw(handlers.Commands.Execute))
	r.GET("/api/v1/queries/{name}", mw(handlers.Commands.Query))

	return r
}
