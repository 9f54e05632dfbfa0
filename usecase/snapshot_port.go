package usecase

import (
	"context"

	"github.com/fastygo/kanban/domain"
)

// SnapshotBuffer abstracts the snapshot outbox so use cases stay storage-agnostic.
type SnapshotBuffer interface {
	// BufferSnapshot durably queues a board snapshot for a later save.
	BufferSnapshot(ctx context.Context, board *domain.Board) error
	// HasPending reports whether queued snapshots are still waiting to be saved.
	// While it is true new snapshots must be queued behind them to keep save order.
	HasPending(ctx context.Context) bool
}
