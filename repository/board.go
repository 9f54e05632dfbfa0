package repository

import (
	"context"

	"github.com/fastygo/kanban/domain"
)

// BoardRepository persists the whole board as one snapshot under a fixed namespace.
type BoardRepository interface {
	// Load returns domain.ErrSnapshotNotFound when nothing has been saved yet and
	// an error wrapping domain.ErrCorruptSnapshot when the stored record cannot be used.
	Load(ctx context.Context) (*domain.Board, error)
	Save(ctx context.Context, board *domain.Board) error
	Ping(ctx context.Context) error
}
