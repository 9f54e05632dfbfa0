package board

import (
	"errors"
	"slices"
	"strings"

	"github.com/fastygo/kanban/domain"
)

// errNoChange marks an operation whose result would equal the current board.
var errNoChange = errors.New("board unchanged")

// The functions below mutate a private copy of the board. A non-nil error means
// the copy must be discarded.

func addColumn(b *domain.Board, id string) domain.Column {
	col := domain.Column{ID: id, Title: domain.DefaultColumnTitle, Cards: []domain.Card{}}
	b.Columns = append(b.Columns, col)
	return col
}

func updateColumn(b *domain.Board, updated domain.Column) error {
	idx := b.ColumnIndex(updated.ID)
	if idx < 0 {
		return domain.ErrColumnNotFound
	}
	if !domain.ValidTitle(updated.Title) {
		return domain.ErrInvalidTitle
	}
	next := updated.Clone()
	next.Title = strings.TrimSpace(updated.Title)
	if updated.Cards == nil {
		next.Cards = b.Columns[idx].Cards
	}
	b.Columns[idx] = next
	// replacement cards must not collide with cards owned by other columns
	return b.Validate()
}

func deleteColumn(b *domain.Board, columnID string) error {
	idx := b.ColumnIndex(columnID)
	if idx < 0 {
		return domain.ErrColumnNotFound
	}
	b.Columns = slices.Delete(b.Columns, idx, idx+1)
	return nil
}

func moveColumn(b *domain.Board, from, to int) error {
	n := len(b.Columns)
	if from < 0 || from >= n || to < 0 || to >= n {
		return domain.ErrIndexOutOfRange
	}
	if from == to {
		return errNoChange
	}
	b.Columns = splice(b.Columns, from, to)
	return nil
}

func addCard(b *domain.Board, columnID, id string) (domain.Card, error) {
	idx := b.ColumnIndex(columnID)
	if idx < 0 {
		return domain.Card{}, domain.ErrColumnNotFound
	}
	col := &b.Columns[idx]
	card := domain.Card{ID: id, Title: nextCardTitle(col.Cards)}
	col.Cards = append(col.Cards, card)
	return card, nil
}

func findCard(b *domain.Board, columnID, cardID string) (*domain.Card, error) {
	colIdx := b.ColumnIndex(columnID)
	if colIdx < 0 {
		return nil, domain.ErrColumnNotFound
	}
	col := &b.Columns[colIdx]
	cardIdx := col.CardIndex(cardID)
	if cardIdx < 0 {
		return nil, domain.ErrCardNotFound
	}
	return &col.Cards[cardIdx], nil
}

func updateCard(b *domain.Board, columnID, cardID, title string) error {
	card, err := findCard(b, columnID, cardID)
	if err != nil {
		return err
	}
	title = strings.TrimSpace(title)
	if title == "" {
		return domain.ErrInvalidTitle
	}
	if card.Title == title {
		return errNoChange
	}
	card.Title = title
	return nil
}

func deleteCard(b *domain.Board, columnID, cardID string) error {
	colIdx := b.ColumnIndex(columnID)
	if colIdx < 0 {
		return domain.ErrColumnNotFound
	}
	col := &b.Columns[colIdx]
	cardIdx := col.CardIndex(cardID)
	if cardIdx < 0 {
		return domain.ErrCardNotFound
	}
	col.Cards = slices.Delete(col.Cards, cardIdx, cardIdx+1)
	return nil
}

func toggleCardComplete(b *domain.Board, columnID, cardID string) error {
	card, err := findCard(b, columnID, cardID)
	if err != nil {
		return err
	}
	card.Completed = !card.Completed
	return nil
}

// moveCard takes the card at srcIdx of column srcCol and inserts it at dstIdx of
// column dstCol. Within one column dstIdx addresses the sequence after removal.
func moveCard(b *domain.Board, srcCol, dstCol, srcIdx, dstIdx int) error {
	n := len(b.Columns)
	if srcCol < 0 || srcCol >= n || dstCol < 0 || dstCol >= n {
		return domain.ErrIndexOutOfRange
	}
	src := &b.Columns[srcCol]
	if srcIdx < 0 || srcIdx >= len(src.Cards) {
		return domain.ErrIndexOutOfRange
	}

	if srcCol == dstCol {
		if dstIdx < 0 || dstIdx >= len(src.Cards) {
			return domain.ErrIndexOutOfRange
		}
		if srcIdx == dstIdx {
			return errNoChange
		}
		src.Cards = splice(src.Cards, srcIdx, dstIdx)
		return nil
	}

	dst := &b.Columns[dstCol]
	if dstIdx < 0 || dstIdx > len(dst.Cards) {
		return domain.ErrIndexOutOfRange
	}
	card := src.Cards[srcIdx]
	src.Cards = slices.Delete(src.Cards, srcIdx, srcIdx+1)
	dst.Cards = slices.Insert(dst.Cards, dstIdx, card)
	return nil
}

// splice removes the element at from and reinserts it at to in the shortened slice.
func splice[T any](items []T, from, to int) []T {
	item := items[from]
	items = slices.Delete(items, from, from+1)
	return slices.Insert(items, to, item)
}
