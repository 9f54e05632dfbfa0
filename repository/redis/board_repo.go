package redis

import (
	"context"
	"errors"
	"fmt"

	redislib "github.com/redis/go-redis/v9"

	"github.com/fastygo/kanban/domain"
	"github.com/fastygo/kanban/repository"
)

type boardRepository struct {
	client *redislib.Client
	prefix string
	key    string
}

// NewBoardRepository creates a Redis-backed board repository. The snapshot has no TTL.
func NewBoardRepository(client *redislib.Client, namespace string) repository.BoardRepository {
	r := &boardRepository{
		client: client,
		prefix: "board:",
	}
	r.key = fmt.Sprintf("%s%s", r.prefix, namespace)
	return r
}

func (r *boardRepository) Load(ctx context.Context) (*domain.Board, error) {
	result, err := r.client.Get(ctx, r.key).Bytes()
	if err != nil {
		if errors.Is(err, redislib.Nil) {
			return nil, domain.ErrSnapshotNotFound
		}
		return nil, err
	}
	return repository.UnmarshalBoard(result)
}

func (r *boardRepository) Save(ctx context.Context, board *domain.Board) error {
	payload, err := repository.MarshalBoard(board)
	if err != nil {
		return err
	}
	return r.client.Set(ctx, r.key, payload, 0).Err()
}

func (r *boardRepository) Ping(ctx context.Context) error {
	return r.client.Ping(ctx).Err()
}
