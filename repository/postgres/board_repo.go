package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/fastygo/kanban/domain"
	"github.com/fastygo/kanban/repository"
)

type boardRepository struct {
	pool      *pgxpool.Pool
	namespace string
}

// NewBoardRepository returns a Postgres-backed implementation of BoardRepository.
func NewBoardRepository(pool *pgxpool.Pool, namespace string) repository.BoardRepository {
	return &boardRepository{pool: pool, namespace: namespace}
}

func (r *boardRepository) Load(ctx context.Context) (*domain.Board, error) {
	const query = `
	SELECT payload
	FROM board_snapshots
	WHERE namespace = $1
	`
	var payload []byte
	if err := r.pool.QueryRow(ctx, query, r.namespace).Scan(&payload); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrSnapshotNotFound
		}
		return nil, err
	}
	return repository.UnmarshalBoard(payload)
}

func (r *boardRepository) Save(ctx context.Context, board *domain.Board) error {
	payload, err := repository.MarshalBoard(board)
	if err != nil {
		return err
	}
	const query = `
	INSERT INTO board_snapshots (namespace, payload, updated_at)
	VALUES ($1, $2, NOW())
	ON CONFLICT (namespace) DO UPDATE
	SET payload = EXCLUDED.payload,
	    updated_at = EXCLUDED.updated_at
	`
	_, err = r.pool.Exec(ctx, query, r.namespace, payload)
	return err
}

func (r *boardRepository) Ping(ctx context.Context) error {
	return r.pool.Ping(ctx)
}
