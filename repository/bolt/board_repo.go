package bolt

import (
	"context"

	bolt "go.etcd.io/bbolt"

	"github.com/fastygo/kanban/domain"
	"github.com/fastygo/kanban/repository"
)

// BoardsBucket holds one snapshot per namespace.
const BoardsBucket = "boards"

type boardRepository struct {
	db        *bolt.DB
	namespace []byte
}

// NewBoardRepository returns a BoardRepository that keeps the snapshot in a local bbolt file.
func NewBoardRepository(db *bolt.DB, namespace string) (repository.BoardRepository, error) {
	err := db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists([]byte(BoardsBucket))
		return err
	})
	if err != nil {
		return nil, err
	}
	return &boardRepository{db: db, namespace: []byte(namespace)}, nil
}

func (r *boardRepository) Load(ctx context.Context) (*domain.Board, error) {
	var payload []byte
	err := r.db.View(func(tx *bolt.Tx) error {
		b := tx.Bucket([]byte(BoardsBucket))
		if b == nil {
			return nil
		}
		if v := b.Get(r.namespace); v != nil {
			// bbolt values are only valid inside the transaction
			payload = append([]byte(nil), v...)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	if payload == nil {
		return nil, domain.ErrSnapshotNotFound
	}
	return repository.UnmarshalBoard(payload)
}

func (r *boardRepository) Save(ctx context.Context, board *domain.Board) error {
	payload, err := repository.MarshalBoard(board)
	if err != nil {
		return err
	}
	return r.db.Update(func(tx *bolt.Tx) error {
		b, err := tx.CreateBucketIfNotExists([]byte(BoardsBucket))
		if err != nil {
			return err
		}
		return b.Put(r.namespace, payload)
	})
}

func (r *boardRepository) Ping(ctx context.Context) error {
	return r.db.View(func(tx *bolt.Tx) error { return nil })
}
