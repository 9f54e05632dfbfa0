package repository

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/fastygo/kanban/domain"
)

func TestBoardSnapshotRoundTrip(t *testing.T) {
	board := &domain.Board{Columns: []domain.Column{
		{ID: "c1", Title: "to do", Cards: []domain.Card{
			{ID: "k1", Title: "write docs", Completed: true},
			{ID: "k2", Title: "ship"},
		}},
		{ID: "c2", Title: "done", Cards: []domain.Card{}},
	}}

	data, err := MarshalBoard(board)
	require.NoError(t, err)

	loaded, err := UnmarshalBoard(data)
	require.NoError(t, err)
	require.Equal(t, board, loaded)
}

func TestMarshalBoardWritesEmptySequences(t *testing.T) {
	data, err := MarshalBoard(&domain.Board{Columns: []domain.Column{{ID: "c1", Title: "x"}}})
	require.NoError(t, err)
	require.JSONEq(t, `{"columns":[{"id":"c1","title":"x","cards":[]}]}`, string(data))

	data, err = MarshalBoard(&domain.Board{})
	require.NoError(t, err)
	require.JSONEq(t, `{"columns":[]}`, string(data))
}

func TestUnmarshalBoardRejectsCorruptSnapshots(t *testing.T) {
	cases := map[string]string{
		"not json":          `{"columns": [`,
		"missing columns":   `{}`,
		"missing cards":     `{"columns":[{"id":"c1","title":"a"}]}`,
		"empty column id":   `{"columns":[{"id":"","title":"a","cards":[]}]}`,
		"blank title":       `{"columns":[{"id":"c1","title":"  ","cards":[]}]}`,
		"duplicate columns": `{"columns":[{"id":"c1","title":"a","cards":[]},{"id":"c1","title":"b","cards":[]}]}`,
		"duplicate cards across columns": `{"columns":[
			{"id":"c1","title":"a","cards":[{"id":"k1","title":"x","completed":false}]},
			{"id":"c2","title":"b","cards":[{"id":"k1","title":"y","completed":false}]}]}`,
	}
	for name, raw := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := UnmarshalBoard([]byte(raw))
			require.Error(t, err)
			require.True(t, errors.Is(err, domain.ErrCorruptSnapshot))
		})
	}
}

func TestUnmarshalBoardAcceptsEmptyBoard(t *testing.T) {
	board, err := UnmarshalBoard([]byte(`{"columns":[]}`))
	require.NoError(t, err)
	require.Empty(t, board.Columns)
}
