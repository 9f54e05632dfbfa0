package postgres

import (
	"context"
	"os"
	"testing"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/require"

	"github.com/fastygo/kanban/domain"
)

// Runs against a live server with the board_snapshots migration applied.
func TestBoardRepository_Postgres(t *testing.T) {
	url := os.Getenv("KANBAN_TEST_DATABASE_URL")
	if url == "" {
		t.Skip("KANBAN_TEST_DATABASE_URL not set")
	}
	ctx := context.Background()
	pool, err := pgxpool.New(ctx, url)
	require.NoError(t, err)
	t.Cleanup(pool.Close)

	ns := "test-" + uuid.NewString()
	t.Cleanup(func() {
		_, _ = pool.Exec(context.Background(), `DELETE FROM board_snapshots WHERE namespace = $1`, ns)
	})
	repo := NewBoardRepository(pool, ns)
	require.NoError(t, repo.Ping(ctx))

	_, err = repo.Load(ctx)
	require.ErrorIs(t, err, domain.ErrSnapshotNotFound)

	board := domain.Board{Columns: []domain.Column{
		{ID: "c1", Title: "to do", Cards: []domain.Card{{ID: "k1", Title: "new card"}}},
	}}
	require.NoError(t, repo.Save(ctx, &board))
	board.Columns[0].Cards[0].Completed = true
	require.NoError(t, repo.Save(ctx, &board))

	loaded, err := repo.Load(ctx)
	require.NoError(t, err)
	require.Equal(t, board, *loaded)
}
