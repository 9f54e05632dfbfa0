package board

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/fastygo/kanban/domain"
)

func titled(titles ...string) []domain.Card {
	cards := make([]domain.Card, len(titles))
	for i, title := range titles {
		cards[i] = domain.Card{ID: title, Title: title}
	}
	return cards
}

func TestNextCardTitle(t *testing.T) {
	cases := []struct {
		name  string
		cards []domain.Card
		want  string
	}{
		{"empty column", nil, "new card"},
		{"unrelated titles", titled("groceries", "call mom"), "new card"},
		{"bare default", titled("new card"), "new card (1)"},
		{"gap in numbering", titled("new card", "new card (5)"), "new card (6)"},
		{"only suffixed", titled("new card (2)"), "new card (3)"},
		{"renamed first", titled("shopping", "new card (1)"), "new card (2)"},
		{"prefix without suffix counts as zero", titled("new cards to sort"), "new card (1)"},
		{"non numeric suffix", titled("new card (x)"), "new card (1)"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			require.Equal(t, tc.want, nextCardTitle(tc.cards))
		})
	}
}
