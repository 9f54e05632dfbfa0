package sqlite

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/fastygo/kanban/domain"
	sqliteinfra "github.com/fastygo/kanban/internal/infrastructure/sqlite"
)

func setupDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sqliteinfra.Open(filepath.Join(t.TempDir(), "kanban.sqlite"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	require.NoError(t, sqliteinfra.RunMigrations(db, filepath.Join("..", "..", "assets", "migrations", "sqlite")))
	return db
}

func TestBoardRepository_LoadMissing(t *testing.T) {
	repo := NewBoardRepository(setupDB(t), "board")
	_, err := repo.Load(context.Background())
	require.ErrorIs(t, err, domain.ErrSnapshotNotFound)
}

func TestBoardRepository_SaveOverwrites(t *testing.T) {
	ctx := context.Background()
	repo := NewBoardRepository(setupDB(t), "board")

	first := domain.Board{Columns: []domain.Column{{ID: "c1", Title: "to do", Cards: []domain.Card{}}}}
	require.NoError(t, repo.Save(ctx, &first))

	second := domain.Board{Columns: []domain.Column{
		{ID: "c1", Title: "to do", Cards: []domain.Card{{ID: "k1", Title: "new card"}}},
		{ID: "c2", Title: "done", Cards: []domain.Card{}},
	}}
	require.NoError(t, repo.Save(ctx, &second))

	loaded, err := repo.Load(ctx)
	require.NoError(t, err)
	require.Equal(t, second, *loaded)
	require.NoError(t, repo.Ping(ctx))
}

func TestBoardRepository_CorruptRow(t *testing.T) {
	ctx := context.Background()
	db := setupDB(t)
	_, err := db.Exec(`INSERT INTO board_snapshots (namespace, payload) VALUES ('board', '{"columns":[{"id":"","title":"x","cards":[]}]}')`)
	require.NoError(t, err)

	_, err = NewBoardRepository(db, "board").Load(ctx)
	require.ErrorIs(t, err, domain.ErrCorruptSnapshot)
}
