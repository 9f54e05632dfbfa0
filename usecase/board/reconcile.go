package board

import "github.com/fastygo/kanban/domain"

// MutationKind names the store operation a gesture maps to.
type MutationKind string

const (
	MutationNone       MutationKind = "none"
	MutationMoveColumn MutationKind = "move_column"
	MutationMoveCard   MutationKind = "move_card"
)

// Mutation is the positional store call computed from a drag gesture. For column
// moves only FromIndex and ToIndex are meaningful.
type Mutation struct {
	Kind       MutationKind `json:"kind"`
	FromColumn int          `json:"from_column"`
	ToColumn   int          `json:"to_column"`
	FromIndex  int          `json:"from_index"`
	ToIndex    int          `json:"to_index"`
}

// Reconcile translates a completed drag gesture into a store mutation. Card gestures
// address columns by id, so both ids are resolved against board; a gesture that was
// cancelled, dropped in place, or names a missing column yields MutationNone.
func Reconcile(board domain.Board, gesture domain.Gesture) Mutation {
	none := Mutation{Kind: MutationNone}
	if gesture.Destination == nil {
		return none
	}
	dst := *gesture.Destination

	switch gesture.Kind {
	case domain.DragColumn:
		if gesture.Source.Index == dst.Index {
			return none
		}
		return Mutation{
			Kind:      MutationMoveColumn,
			FromIndex: gesture.Source.Index,
			ToIndex:   dst.Index,
		}
	case domain.DragCard:
		srcCol := board.ColumnIndex(gesture.Source.ListID)
		dstCol := board.ColumnIndex(dst.ListID)
		if srcCol < 0 || dstCol < 0 {
			return none
		}
		return Mutation{
			Kind:       MutationMoveCard,
			FromColumn: srcCol,
			ToColumn:   dstCol,
			FromIndex:  gesture.Source.Index,
			ToIndex:    dst.Index,
		}
	default:
		return none
	}
}

// applyTo runs the move on a board copy held under the store lock.
func (m Mutation) applyTo(b *domain.Board) error {
	switch m.Kind {
	case MutationMoveColumn:
		return moveColumn(b, m.FromIndex, m.ToIndex)
	case MutationMoveCard:
		return moveCard(b, m.FromColumn, m.ToColumn, m.FromIndex, m.ToIndex)
	default:
		return errNoChange
	}
}
