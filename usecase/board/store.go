// Package board implements the board store: the canonical in-memory board, its
// mutation operations, and the drag reconciler that feeds positional moves into it.
package board

import (
	"context"
	"errors"
	"sync"

	"go.uber.org/zap"

	"github.com/fastygo/kanban/domain"
	"github.com/fastygo/kanban/pkg/idgen"
	"github.com/fastygo/kanban/repository"
	"github.com/fastygo/kanban/usecase"
)

// Store owns the board. Every mutation works on a copy, persists it, and only then
// swaps it in, all under one lock, so callers never observe a half-applied move.
// Stale references and rejected edits leave the board untouched and are not errors.
type Store struct {
	repo   repository.BoardRepository
	buffer usecase.SnapshotBuffer
	logger *zap.Logger
	newID  idgen.Generator

	mu    sync.Mutex
	board domain.Board
}

// Option customizes a Store.
type Option func(*Store)

// WithIDGenerator replaces the UUID generator used for new columns and cards.
func WithIDGenerator(gen idgen.Generator) Option {
	return func(s *Store) {
		if gen != nil {
			s.newID = gen
		}
	}
}

// New builds a store holding the default board. A nil repo keeps the board in memory only;
// a nil buffer disables the snapshot outbox.
func New(repo repository.BoardRepository, buffer usecase.SnapshotBuffer, logger *zap.Logger, opts ...Option) *Store {
	if logger == nil {
		logger = zap.NewNop()
	}
	s := &Store{
		repo:   repo,
		buffer: buffer,
		logger: logger,
		newID:  idgen.UUID(),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.board = domain.NewDefaultBoard(s.newID)
	return s
}

// Open builds a store and restores the last saved board, falling back to the default board.
func Open(ctx context.Context, repo repository.BoardRepository, buffer usecase.SnapshotBuffer, logger *zap.Logger, opts ...Option) *Store {
	s := New(repo, buffer, logger, opts...)
	s.Load(ctx)
	return s
}

// Load replaces the in-memory board with the stored snapshot. It never fails: a missing
// or unreadable snapshot resets the board to the default columns.
func (s *Store) Load(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.repo == nil {
		return
	}
	loaded, err := s.repo.Load(ctx)
	switch {
	case err == nil:
		s.board = loaded.Clone()
		s.logger.Info("board restored",
			zap.Int("columns", len(s.board.Columns)),
			zap.Int("cards", s.board.CardCount()))
		return
	case errors.Is(err, domain.ErrSnapshotNotFound):
		s.logger.Info("no saved board, starting with defaults")
	case errors.Is(err, domain.ErrCorruptSnapshot):
		s.logger.Warn("discarding unreadable board snapshot", zap.Error(err))
	default:
		s.logger.Error("board snapshot load failed, starting with defaults", zap.Error(err))
	}
	s.board = domain.NewDefaultBoard(s.newID)
}

// Snapshot returns a deep copy of the current board.
func (s *Store) Snapshot() domain.Board {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.board.Clone()
}

// The mutating operations below return the board exactly as this call left it, read
// under the same lock as the mutation. A no-op returns the unchanged board.

// AddColumn appends a default column and returns it.
func (s *Store) AddColumn(ctx context.Context) (domain.Column, domain.Board, error) {
	var created domain.Column
	board, err := s.mutate(ctx, "add_column", func(b *domain.Board) error {
		created = addColumn(b, s.newID())
		return nil
	})
	if err != nil {
		return domain.Column{}, board, err
	}
	return created.Clone(), board, nil
}

// UpdateColumn replaces the column with the same id in place. A column without
// cards (nil, not empty) keeps its current cards.
func (s *Store) UpdateColumn(ctx context.Context, updated domain.Column) (domain.Board, error) {
	return s.mutate(ctx, "update_column", func(b *domain.Board) error {
		return updateColumn(b, updated)
	})
}

// DeleteColumn removes the column together with every card it owns.
func (s *Store) DeleteColumn(ctx context.Context, columnID string) (domain.Board, error) {
	return s.mutate(ctx, "delete_column", func(b *domain.Board) error {
		return deleteColumn(b, columnID)
	})
}

// MoveColumn moves the column at from so it ends up at to: moving 0 to 2 in
// [A B C D] yields [B C A D].
func (s *Store) MoveColumn(ctx context.Context, from, to int) (domain.Board, error) {
	return s.mutate(ctx, "move_column", func(b *domain.Board) error {
		return moveColumn(b, from, to)
	})
}

// AddCard appends a default-titled card to the column. The card is nil when the
// column does not exist.
func (s *Store) AddCard(ctx context.Context, columnID string) (*domain.Card, domain.Board, error) {
	var created *domain.Card
	board, err := s.mutate(ctx, "add_card", func(b *domain.Board) error {
		card, err := addCard(b, columnID, s.newID())
		if err != nil {
			return err
		}
		created = &card
		return nil
	})
	if err != nil {
		return nil, board, err
	}
	return created, board, nil
}

// UpdateCard sets the card title. Blank titles are rejected and the old title stays.
func (s *Store) UpdateCard(ctx context.Context, columnID, cardID, title string) (domain.Board, error) {
	return s.mutate(ctx, "update_card", func(b *domain.Board) error {
		return updateCard(b, columnID, cardID, title)
	})
}

func (s *Store) DeleteCard(ctx context.Context, columnID, cardID string) (domain.Board, error) {
	return s.mutate(ctx, "delete_card", func(b *domain.Board) error {
		return deleteCard(b, columnID, cardID)
	})
}

func (s *Store) ToggleCardComplete(ctx context.Context, columnID, cardID string) (domain.Board, error) {
	return s.mutate(ctx, "toggle_card", func(b *domain.Board) error {
		return toggleCardComplete(b, columnID, cardID)
	})
}

// MoveCard moves a card between (or within) columns addressed by position.
func (s *Store) MoveCard(ctx context.Context, srcCol, dstCol, srcIdx, dstIdx int) (domain.Board, error) {
	return s.mutate(ctx, "move_card", func(b *domain.Board) error {
		return moveCard(b, srcCol, dstCol, srcIdx, dstIdx)
	})
}

// ApplyGesture reconciles a drag gesture against the current board and applies the
// resulting move in the same critical section.
func (s *Store) ApplyGesture(ctx context.Context, gesture domain.Gesture) (Mutation, domain.Board, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	m := Reconcile(s.board, gesture)
	if m.Kind == MutationNone {
		s.logger.Debug("gesture ignored", zap.String("kind", string(gesture.Kind)))
		return m, s.board.Clone(), nil
	}
	err := s.apply(ctx, string(m.Kind), m.applyTo)
	return m, s.board.Clone(), err
}

func (s *Store) mutate(ctx context.Context, op string, fn func(b *domain.Board) error) (domain.Board, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	err := s.apply(ctx, op, fn)
	return s.board.Clone(), err
}

// apply must be called with mu held.
func (s *Store) apply(ctx context.Context, op string, fn func(b *domain.Board) error) error {
	next := s.board.Clone()
	if err := fn(&next); err != nil {
		s.logger.Debug("board mutation ignored", zap.String("operation", op), zap.Error(err))
		return nil
	}
	if err := s.persist(ctx, &next); err != nil {
		s.logger.Error("board mutation rolled back", zap.String("operation", op), zap.Error(err))
		return err
	}
	s.board = next
	s.logger.Debug("board mutation applied",
		zap.String("operation", op),
		zap.Int("columns", len(next.Columns)),
		zap.Int("cards", next.CardCount()))
	return nil
}

func (s *Store) persist(ctx context.Context, board *domain.Board) error {
	if s.repo == nil {
		return nil
	}
	if s.buffer != nil && s.buffer.HasPending(ctx) {
		if err := s.buffer.BufferSnapshot(ctx, board); err != nil {
			return domain.WrapError(domain.ErrCodeInternal, "buffer board snapshot", err)
		}
		return nil
	}

	err := s.repo.Save(ctx, board)
	if err == nil {
		return nil
	}
	if s.buffer != nil {
		bufErr := s.buffer.BufferSnapshot(ctx, board)
		if bufErr == nil {
			s.logger.Warn("board snapshot buffered", zap.Error(err))
			return nil
		}
		s.logger.Error("failed to buffer board snapshot", zap.Error(bufErr))
	}
	return domain.WrapError(domain.ErrCodeInternal, "persist board", err)
}
