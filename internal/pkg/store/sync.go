package store

import (
	"context"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/bytedance/sonic"

	"github.com/TITANForecast/frontend-sub000/internal/domain"
)

var syncConfigColumns = []string{"id", "dealer_id", "feed_url", "enabled", "created_at", "updated_at"}
var syncLogColumns = []string{"id", "dealer_id", "started_at", "finished_at", "total_records", "new_records", "failed_records", "error_detail"}

func (s *store) UpsertSyncConfig(ctx context.Context, cfg *domain.SyncConfig) (*domain.SyncConfig, error) {
	query := builder().Insert(tableSyncConfigs).
		Columns("dealer_id", "feed_url", "enabled").
		Values(cfg.DealerID, cfg.FeedURL, cfg.Enabled).
		Suffix(`on conflict (dealer_id) do update set feed_url=excluded.feed_url, enabled=excluded.enabled, updated_at=now()`)

	if _, err := s.pool.Execx(ctx, query); err != nil {
		return nil, fmt.Errorf("upsert sync config: %w", err)
	}

	return s.GetSyncConfig(ctx, cfg.DealerID)
}

func (s *store) GetSyncConfig(ctx context.Context, dealerID string) (*domain.SyncConfig, error) {
	query := builder().Select(syncConfigColumns...).
		From(tableSyncConfigs).
		Where(sq.Eq{"dealer_id": dealerID})

	var selected domain.SyncConfig
	err := s.pool.Getx(ctx, &selected, query)
	if err != nil {
		return nil, wrapErr(err)
	}

	return &selected, nil
}

func (s *store) InsertSyncLog(ctx context.Context, log *domain.SyncLog) error {
	query := builder().Insert(tableSyncLogs).
		Columns(syncLogColumns...).
		Values(log.ID, log.DealerID, log.StartedAt, log.FinishedAt,
			log.TotalRecords, log.NewRecords, log.FailedRecords, log.ErrorDetail)

	if _, err := s.pool.Execx(ctx, query); err != nil {
		return fmt.Errorf("insert sync log: %w", err)
	}

	return nil
}

func (s *store) ListSyncLogs(ctx context.Context, dealerID string, limit uint64) ([]*domain.SyncLog, error) {
	query := builder().Select(syncLogColumns...).
		From(tableSyncLogs).
		Where(sq.Eq{"dealer_id": dealerID}).
		OrderBy("started_at desc").
		Limit(limit)

	var selected []*domain.SyncLog
	err := s.pool.Selectx(ctx, &selected, query)
	if err != nil {
		return nil, err
	}

	return selected, nil
}

// LatestKPISnapshot loads the most recent persisted KPI summary for a
// dealer, or nil when none has been computed yet.
func (s *store) LatestKPISnapshot(ctx context.Context, dealerID string) (*domain.KPIResults, error) {
	query := builder().Select("payload").
		From(tableKPISnapshots).
		Where(sq.Eq{"dealer_id": dealerID}).
		OrderBy("created_at desc").
		Limit(1)

	var selected struct {
		Payload []byte `db:"payload"`
	}
	err := s.pool.Getx(ctx, &selected, query)
	if err != nil {
		return nil, wrapErr(err)
	}

	var kpi domain.KPIResults
	if err := sonic.Unmarshal(selected.Payload, &kpi); err != nil {
		return nil, fmt.Errorf("failed to unmarshal kpi snapshot: %w", err)
	}

	return &kpi, nil
}
