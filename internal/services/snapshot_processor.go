package services

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"github.com/fastygo/kanban/domain"
	"github.com/fastygo/kanban/internal/infrastructure/buffer"
	"github.com/fastygo/kanban/repository"
)

// ConnectionHealth abstracts the connection monitor functionality.
type ConnectionHealth interface {
	IsOnline() bool
}

// ProcessorConfig controls how frequently the outbox is drained and pruned.
type ProcessorConfig struct {
	Interval   time.Duration
	BatchSize  int
	MaxRetries int
	Retention  time.Duration
}

// SnapshotProcessor writes buffered board snapshots to the primary repository once it is reachable.
type SnapshotProcessor struct {
	store     *buffer.Store
	monitor   ConnectionHealth
	repo      repository.BoardRepository
	namespace string
	logger    *zap.Logger
	cron      *cron.Cron
	cfg       ProcessorConfig
}

func NewSnapshotProcessor(
	store *buffer.Store,
	monitor ConnectionHealth,
	repo repository.BoardRepository,
	namespace string,
	logger *zap.Logger,
	cfg ProcessorConfig,
) *SnapshotProcessor {
	if cfg.Interval <= 0 {
		cfg.Interval = 30 * time.Second
	}
	if cfg.BatchSize <= 0 {
		cfg.BatchSize = 50
	}
	if cfg.MaxRetries <= 0 {
		cfg.MaxRetries = 3
	}
	if cfg.Retention <= 0 {
		cfg.Retention = 7 * 24 * time.Hour
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	sp := &SnapshotProcessor{
		store:     store,
		monitor:   monitor,
		repo:      repo,
		namespace: namespace,
		logger:    logger,
		cfg:       cfg,
		cron:      cron.New(cron.WithSeconds()),
	}

	schedule := fmt.Sprintf("@every %ds", max(1, int(cfg.Interval.Seconds())))
	_, _ = sp.cron.AddFunc(schedule, func() {
		ctx, cancel := context.WithTimeout(context.Background(), cfg.Interval)
		defer cancel()
		if err := sp.Drain(ctx); err != nil {
			sp.logger.Error("outbox drain failed", zap.Error(err))
		}
	})
	_, _ = sp.cron.AddFunc("@every 1h", func() {
		if err := sp.store.Cleanup(time.Now().Add(-sp.cfg.Retention)); err != nil {
			sp.logger.Warn("outbox cleanup failed", zap.Error(err))
		}
	})

	return sp
}

// Start launches the cron scheduler.
func (sp *SnapshotProcessor) Start() {
	if sp == nil || sp.cron == nil {
		return
	}
	sp.cron.Start()
	sp.logger.Info("snapshot processor started", zap.Duration("interval", sp.cfg.Interval))
}

// Stop gracefully stops the scheduler.
func (sp *SnapshotProcessor) Stop(ctx context.Context) {
	if sp == nil || sp.cron == nil {
		return
	}
	stopCtx := sp.cron.Stop()
	select {
	case <-stopCtx.Done():
	case <-ctx.Done():
	}
	sp.logger.Info("snapshot processor stopped")
}

// Drain saves buffered snapshots in enqueue order. Within a batch only the newest
// snapshot is written since it supersedes the rest. The newest buffered snapshot is
// never dropped, whatever its retry count.
func (sp *SnapshotProcessor) Drain(ctx context.Context) error {
	if sp == nil || sp.store == nil {
		return nil
	}
	if sp.monitor != nil && !sp.monitor.IsOnline() {
		sp.logger.Debug("skipping outbox drain (offline)")
		return nil
	}

	for {
		items, err := sp.store.GetBatch(sp.cfg.BatchSize)
		if err != nil {
			return err
		}
		if len(items) == 0 {
			return nil
		}

		newest := items[len(items)-1]
		board, err := repository.UnmarshalBoard(newest.Data)
		if err != nil {
			sp.logger.Error("discarding unreadable buffered snapshot",
				zap.String("item_id", newest.ID), zap.Error(err))
			if err := sp.store.Remove(newest); err != nil {
				return err
			}
			continue
		}

		if err := sp.repo.Save(ctx, board); err != nil {
			newest.Retries++
			fields := []zap.Field{
				zap.String("item_id", newest.ID),
				zap.Int("retries", newest.Retries),
				zap.Error(err),
			}
			if newest.Retries >= sp.cfg.MaxRetries {
				sp.logger.Error("buffered snapshot still not saved", fields...)
			} else {
				sp.logger.Warn("buffered snapshot save failed", fields...)
			}
			if err := sp.store.Update(newest); err != nil {
				sp.logger.Error("failed to update buffered snapshot", zap.Error(err))
			}
			return nil
		}

		for _, item := range items {
			if err := sp.store.Remove(item); err != nil {
				sp.logger.Warn("failed to purge saved snapshot", zap.String("item_id", item.ID), zap.Error(err))
			}
		}
		sp.logger.Info("buffered snapshot saved",
			zap.String("item_id", newest.ID),
			zap.Int("superseded", len(items)-1))
	}
}

// BufferSnapshot queues a board snapshot in the outbox.
func (sp *SnapshotProcessor) BufferSnapshot(ctx context.Context, board *domain.Board) error {
	if sp == nil || sp.store == nil {
		return fmt.Errorf("snapshot processor not configured")
	}
	payload, err := repository.MarshalBoard(board)
	if err != nil {
		return err
	}
	return sp.store.Enqueue(buffer.Item{
		Namespace: sp.namespace,
		Data:      payload,
	})
}

// Latest returns the newest buffered snapshot, or false when the outbox is empty.
func (sp *SnapshotProcessor) Latest() (*domain.Board, bool) {
	if sp == nil || sp.store == nil {
		return nil, false
	}
	item, ok, err := sp.store.Newest()
	if err != nil || !ok {
		return nil, false
	}
	board, err := repository.UnmarshalBoard(item.Data)
	if err != nil {
		return nil, false
	}
	return board, true
}

// Size returns the number of buffered snapshots.
func (sp *SnapshotProcessor) Size() int {
	if sp == nil || sp.store == nil {
		return 0
	}
	size, err := sp.store.Size()
	if err != nil {
		return 0
	}
	return size
}
