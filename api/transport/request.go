package transport

import "github.com/fastygo/kanban/domain"

// UpdateColumnRequest replaces a column's title and, when cards is present, its cards.
type UpdateColumnRequest struct {
	Title string         `json:"title"`
	Cards *[]domain.Card `json:"cards"`
}

// Column builds the replacement column. A missing or null cards field yields nil
// cards, which keeps the column's current cards.
func (r UpdateColumnRequest) Column(id string) domain.Column {
	col := domain.Column{ID: id, Title: r.Title}
	if r.Cards != nil && *r.Cards != nil {
		col.Cards = *r.Cards
	}
	return col
}

type UpdateCardRequest struct {
	Title string `json:"title"`
}

type MoveColumnRequest struct {
	From int `json:"from"`
	To   int `json:"to"`
}

type MoveCardRequest struct {
	SourceColumn int `json:"source_column"`
	DestColumn   int `json:"dest_column"`
	SourceIndex  int `json:"source_index"`
	DestIndex    int `json:"dest_index"`
}
