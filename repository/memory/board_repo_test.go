package memory

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/fastygo/kanban/domain"
)

func TestBoardRepositoryLoadSave(t *testing.T) {
	ctx := context.Background()
	repo := NewBoardRepository()

	_, err := repo.Load(ctx)
	require.True(t, errors.Is(err, domain.ErrSnapshotNotFound))

	board := &domain.Board{Columns: []domain.Column{{ID: "c1", Title: "to do", Cards: []domain.Card{{ID: "k1", Title: "a"}}}}}
	require.NoError(t, repo.Save(ctx, board))

	// later edits to the caller's value must not leak into the stored snapshot
	board.Columns[0].Title = "changed"

	loaded, err := repo.Load(ctx)
	require.NoError(t, err)
	require.Equal(t, "to do", loaded.Columns[0].Title)
	require.NoError(t, repo.Ping(ctx))
}
