package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/fastygo/kanban/domain"
	"github.com/fastygo/kanban/repository"
)

type boardRepository struct {
	db        *sql.DB
	namespace string
}

// NewBoardRepository returns a BoardRepository over the board_snapshots table.
func NewBoardRepository(db *sql.DB, namespace string) repository.BoardRepository {
	return &boardRepository{db: db, namespace: namespace}
}

func (r *boardRepository) Load(ctx context.Context) (*domain.Board, error) {
	const query = `SELECT payload FROM board_snapshots WHERE namespace = ?`

	var payload string
	err := r.db.QueryRowContext(ctx, query, r.namespace).Scan(&payload)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrSnapshotNotFound
		}
		return nil, err
	}
	return repository.UnmarshalBoard([]byte(payload))
}

func (r *boardRepository) Save(ctx context.Context, board *domain.Board) error {
	payload, err := repository.MarshalBoard(board)
	if err != nil {
		return err
	}
	const query = `
	INSERT INTO board_snapshots (namespace, payload, updated_at)
	VALUES (?, ?, ?)
	ON CONFLICT(namespace) DO UPDATE SET payload = excluded.payload, updated_at = excluded.updated_at
	`
	_, err = r.db.ExecContext(ctx, query, r.namespace, string(payload), time.Now().UTC().Format(time.RFC3339))
	return err
}

func (r *boardRepository) Ping(ctx context.Context) error {
	return r.db.PingContext(ctx)
}
