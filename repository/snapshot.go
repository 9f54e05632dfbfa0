package repository

import (
	"encoding/json"
	"fmt"

	"github.com/fastygo/kanban/domain"
)

// MarshalBoard encodes the board in the persisted snapshot layout.
func MarshalBoard(board *domain.Board) ([]byte, error) {
	if board == nil {
		return nil, domain.ErrInvalidPayload
	}
	// Clone so empty sequences encode as [] rather than null.
	snapshot := board.Clone()
	return json.Marshal(snapshot)
}

// UnmarshalBoard decodes and validates a persisted snapshot.
func UnmarshalBoard(data []byte) (*domain.Board, error) {
	var board domain.Board
	if err := json.Unmarshal(data, &board); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrCorruptSnapshot, err)
	}
	if err := board.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrCorruptSnapshot, err)
	}
	return &board, nil
}
