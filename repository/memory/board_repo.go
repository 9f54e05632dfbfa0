package memory

import (
	"context"
	"sync"

	"github.com/fastygo/kanban/domain"
	"github.com/fastygo/kanban/repository"
)

type boardRepository struct {
	mu   sync.RWMutex
	data []byte
}

// NewBoardRepository returns a process-local BoardRepository. It keeps the encoded
// snapshot so loads go through the same codec as the durable drivers.
func NewBoardRepository() repository.BoardRepository {
	return &boardRepository{}
}

func (r *boardRepository) Load(ctx context.Context) (*domain.Board, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if r.data == nil {
		return nil, domain.ErrSnapshotNotFound
	}
	return repository.UnmarshalBoard(r.data)
}

func (r *boardRepository) Save(ctx context.Context, board *domain.Board) error {
	payload, err := repository.MarshalBoard(board)
	if err != nil {
		return err
	}
	r.mu.Lock()
	r.data = payload
	r.mu.Unlock()
	return nil
}

func (r *boardRepository) Ping(ctx context.Context) error {
	return nil
}
