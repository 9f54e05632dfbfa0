package domain

import "strings"

const (
	DefaultColumnTitle = "new column"
	DefaultCardTitle   = "new card"
)

// DefaultColumnTitles are the columns a fresh board starts with.
var DefaultColumnTitles = []string{"to do", "in progress", "done"}

// Card is a single work item owned by exactly one column.
type Card struct {
	ID        string `json:"id" yaml:"id"`
	Title     string `json:"title" yaml:"title"`
	Completed bool   `json:"completed" yaml:"completed"`
}

// Column is a named, ordered group of cards.
type Column struct {
	ID    string `json:"id" yaml:"id"`
	Title string `json:"title" yaml:"title"`
	Cards []Card `json:"cards" yaml:"cards"`
}

// Board is the root aggregate. Column ids and card ids are unique across the whole board.
type Board struct {
	Columns []Column `json:"columns" yaml:"columns"`
}

// NewDefaultBoard builds the three-column starting board using newID for every id.
func NewDefaultBoard(newID func() string) Board {
	columns := make([]Column, 0, len(DefaultColumnTitles))
	for _, title := range DefaultColumnTitles {
		columns = append(columns, Column{ID: newID(), Title: title, Cards: []Card{}})
	}
	return Board{Columns: columns}
}

// Clone returns a deep copy whose slices never alias the receiver's.
func (b Board) Clone() Board {
	columns := make([]Column, len(b.Columns))
	for i, col := range b.Columns {
		columns[i] = col.Clone()
	}
	return Board{Columns: columns}
}

// Clone returns a copy of the column with its own card slice.
func (c Column) Clone() Column {
	cards := make([]Card, len(c.Cards))
	copy(cards, c.Cards)
	c.Cards = cards
	return c
}

// ColumnIndex returns the position of the column with the given id, or -1.
func (b Board) ColumnIndex(id string) int {
	for i, col := range b.Columns {
		if col.ID == id {
			return i
		}
	}
	return -1
}

// CardIndex returns the position of the card with the given id, or -1.
func (c Column) CardIndex(id string) int {
	for i, card := range c.Cards {
		if card.ID == id {
			return i
		}
	}
	return -1
}

// CardCount is the number of cards across all columns.
func (b Board) CardCount() int {
	total := 0
	for _, col := range b.Columns {
		total += len(col.Cards)
	}
	return total
}

// Validate checks the structural invariants a persisted or replaced board must satisfy.
func (b Board) Validate() error {
	if b.Columns == nil {
		return NewError(ErrCodeInvalid, "board has no columns field")
	}
	columnIDs := make(map[string]struct{}, len(b.Columns))
	cardIDs := make(map[string]struct{})
	for _, col := range b.Columns {
		if col.ID == "" {
			return NewError(ErrCodeInvalid, "column id is empty")
		}
		if _, dup := columnIDs[col.ID]; dup {
			return NewError(ErrCodeConflict, "duplicate column id "+col.ID)
		}
		columnIDs[col.ID] = struct{}{}
		if !ValidTitle(col.Title) {
			return WrapError(ErrCodeInvalid, "column "+col.ID, ErrInvalidTitle)
		}
		if col.Cards == nil {
			return NewError(ErrCodeInvalid, "column "+col.ID+" has no cards field")
		}
		for _, card := range col.Cards {
			if card.ID == "" {
				return NewError(ErrCodeInvalid, "card id is empty")
			}
			if _, dup := cardIDs[card.ID]; dup {
				return NewError(ErrCodeConflict, "duplicate card id "+card.ID)
			}
			cardIDs[card.ID] = struct{}{}
			if !ValidTitle(card.Title) {
				return WrapError(ErrCodeInvalid, "card "+card.ID, ErrInvalidTitle)
			}
		}
	}
	return nil
}

// ValidTitle reports whether title has visible content.
func ValidTitle(title string) bool {
	return strings.TrimSpace(title) != ""
}
