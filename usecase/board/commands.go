package board

import (
	"context"
	"encoding/json"

	"github.com/fastygo/kanban/domain"
	"github.com/fastygo/kanban/usecase"
)

// Command names accepted by the dispatcher. They mirror the UI operation surface.
const (
	CommandAddColumn          = "addColumn"
	CommandUpdateColumn       = "updateColumn"
	CommandDeleteColumn       = "deleteColumn"
	CommandMoveColumn         = "moveColumn"
	CommandAddCard            = "addCard"
	CommandUpdateCard         = "updateCard"
	CommandDeleteCard         = "deleteCard"
	CommandToggleCardComplete = "toggleCardComplete"
	CommandMoveCard           = "moveCard"
	CommandReconcile          = "reconcile"

	QueryBoard = "board"
)

type ColumnRef struct {
	ColumnID string `json:"column_id"`
}

type CardRef struct {
	ColumnID string `json:"column_id"`
	CardID   string `json:"card_id"`
}

type UpdateCardPayload struct {
	ColumnID string `json:"column_id"`
	CardID   string `json:"card_id"`
	Title    string `json:"title"`
}

type MoveColumnPayload struct {
	From int `json:"from"`
	To   int `json:"to"`
}

type MoveCardPayload struct {
	SourceColumn int `json:"source_column"`
	DestColumn   int `json:"dest_column"`
	SourceIndex  int `json:"source_index"`
	DestIndex    int `json:"dest_index"`
}

// RegisterCommands exposes every store operation on d. Each command answers with the
// board as it stands after the operation.
func RegisterCommands(d *usecase.Dispatcher, s *Store) {
	snapshot := func(board domain.Board, err error) (interface{}, error) {
		if err != nil {
			return nil, err
		}
		return board, nil
	}

	d.RegisterCommand(CommandAddColumn, func(ctx context.Context, _ interface{}) (interface{}, error) {
		_, board, err := s.AddColumn(ctx)
		return snapshot(board, err)
	})
	d.RegisterCommand(CommandUpdateColumn, func(ctx context.Context, payload interface{}) (interface{}, error) {
		col, err := decode[domain.Column](payload)
		if err != nil {
			return nil, err
		}
		return snapshot(s.UpdateColumn(ctx, col))
	})
	d.RegisterCommand(CommandDeleteColumn, func(ctx context.Context, payload interface{}) (interface{}, error) {
		ref, err := decode[ColumnRef](payload)
		if err != nil {
			return nil, err
		}
		return snapshot(s.DeleteColumn(ctx, ref.ColumnID))
	})
	d.RegisterCommand(CommandMoveColumn, func(ctx context.Context, payload interface{}) (interface{}, error) {
		p, err := decode[MoveColumnPayload](payload)
		if err != nil {
			return nil, err
		}
		return snapshot(s.MoveColumn(ctx, p.From, p.To))
	})
	d.RegisterCommand(CommandAddCard, func(ctx context.Context, payload interface{}) (interface{}, error) {
		ref, err := decode[ColumnRef](payload)
		if err != nil {
			return nil, err
		}
		_, board, err := s.AddCard(ctx, ref.ColumnID)
		return snapshot(board, err)
	})
	d.RegisterCommand(CommandUpdateCard, func(ctx context.Context, payload interface{}) (interface{}, error) {
		p, err := decode[UpdateCardPayload](payload)
		if err != nil {
			return nil, err
		}
		return snapshot(s.UpdateCard(ctx, p.ColumnID, p.CardID, p.Title))
	})
	d.RegisterCommand(CommandDeleteCard, func(ctx context.Context, payload interface{}) (interface{}, error) {
		ref, err := decode[CardRef](payload)
		if err != nil {
			return nil, err
		}
		return snapshot(s.DeleteCard(ctx, ref.ColumnID, ref.CardID))
	})
	d.RegisterCommand(CommandToggleCardComplete, func(ctx context.Context, payload interface{}) (interface{}, error) {
		ref, err := decode[CardRef](payload)
		if err != nil {
			return nil, err
		}
		return snapshot(s.ToggleCardComplete(ctx, ref.ColumnID, ref.CardID))
	})
	d.RegisterCommand(CommandMoveCard, func(ctx context.Context, payload interface{}) (interface{}, error) {
		p, err := decode[MoveCardPayload](payload)
		if err != nil {
			return nil, err
		}
		return snapshot(s.MoveCard(ctx, p.SourceColumn, p.DestColumn, p.SourceIndex, p.DestIndex))
	})
	d.RegisterCommand(CommandReconcile, func(ctx context.Context, payload interface{}) (interface{}, error) {
		g, err := decode[domain.Gesture](payload)
		if err != nil {
			return nil, err
		}
		_, board, err := s.ApplyGesture(ctx, g)
		return snapshot(board, err)
	})

	d.RegisterQuery(QueryBoard, func(ctx context.Context, _ interface{}) (interface{}, error) {
		return s.Snapshot(), nil
	})
}

// decode accepts either an already typed payload or raw JSON.
func decode[T any](payload interface{}) (T, error) {
	var out T
	switch v := payload.(type) {
	case T:
		return v, nil
	case *T:
		if v == nil {
			return out, domain.ErrInvalidPayload
		}
		return *v, nil
	case json.RawMessage:
		return unmarshal[T](v)
	case []byte:
		return unmarshal[T](v)
	default:
		return out, domain.ErrInvalidPayload
	}
}

func unmarshal[T any](data []byte) (T, error) {
	var out T
	if err := json.Unmarshal(data, &out); err != nil {
		return out, domain.WrapError(domain.ErrCodeInvalid, "invalid payload", err)
	}
	return out, nil
}
