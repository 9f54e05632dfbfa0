package services

import (
	"context"

	"github.com/fastygo/kanban/domain"
	"github.com/fastygo/kanban/repository"
	"github.com/fastygo/kanban/usecase"
)

// SnapshotBridge exposes the processor to the board store.
type SnapshotBridge struct {
	processor *SnapshotProcessor
}

func NewSnapshotBridge(processor *SnapshotProcessor) *SnapshotBridge {
	return &SnapshotBridge{processor: processor}
}

func (b *SnapshotBridge) BufferSnapshot(ctx context.Context, board *domain.Board) error {
	if b.processor == nil || board == nil {
		return domain.ErrInvalidPayload
	}
	return b.processor.BufferSnapshot(ctx, board)
}

func (b *SnapshotBridge) HasPending(ctx context.Context) bool {
	return b.processor.Size() > 0
}

var _ usecase.SnapshotBuffer = (*SnapshotBridge)(nil)

// pendingFirstRepository loads the newest buffered snapshot before asking the primary
// repository, so a restart while storage is down resumes from the latest board.
type pendingFirstRepository struct {
	repository.BoardRepository
	processor *SnapshotProcessor
}

// PendingFirst wraps repo so Load prefers snapshots still waiting in the outbox.
func PendingFirst(repo repository.BoardRepository, processor *SnapshotProcessor) repository.BoardRepository {
	return &pendingFirstRepository{BoardRepository: repo, processor: processor}
}

func (r *pendingFirstRepository) Load(ctx context.Context) (*domain.Board, error) {
	if board, ok := r.processor.Latest(); ok {
		return board, nil
	}
	return r.BoardRepository.Load(ctx)
}
