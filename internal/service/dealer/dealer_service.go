package dealer

import (
	"context"
	"fmt"

	"github.com/TITANForecast/frontend-sub000/internal/domain"
	"github.com/TITANForecast/frontend-sub000/internal/pkg/store"
)

type Service struct {
	store store.Store
}

func NewService(store store.Store) *Service {
	return &Service{store: store}
}

func (s *Service) CreateDealer(ctx context.Context, request *domain.CreateDealerRequest) (*domain.Dealer, error) {
	dealer := &domain.Dealer{
		ID:        request.ID,
		Name:      request.Name,
		DMSVendor: request.DMSVendor,
		Timezone:  request.Timezone,
	}

	created, err := s.store.CreateDealer(ctx, dealer)
	if err != nil {
		return nil, fmt.Errorf("store.CreateDealer: %w", err)
	}

	return created, nil
}

func (s *Service) ListDealers(ctx context.Context) ([]*domain.Dealer, error) {
	dealers, err := s.store.ListDealers(ctx)
	if err != nil {
		return nil, fmt.Errorf("store.ListDealers: %w", err)
	}

	return dealers, nil
}

func (s *Service) GetDealer(ctx context.Context, id string) (*domain.Dealer, error) {
	return s.store.GetDealerByID(ctx, id)
}

func (s *Service) UpsertSyncConfig(ctx context.Context, request *domain.UpsertSyncConfigRequest) (*domain.SyncConfig, error) {
	if _, err := s.store.GetDealerByID(ctx, request.DealerID); err != nil {
		return nil, err
	}

	cfg, err := s.store.UpsertSyncConfig(ctx, &domain.SyncConfig{
		DealerID: request.DealerID,
		FeedURL:  request.FeedURL,
		Enabled:  request.Enabled,
	})
	if err != nil {
		return nil, fmt.Errorf("store.UpsertSyncConfig: %w", err)
	}

	return cfg, nil
}

func (s *Service) GetSyncConfig(ctx context.Context, dealerID string) (*domain.SyncConfig, error) {
	return s.store.GetSyncConfig(ctx, dealerID)
}

func (s *Service) ListSyncLogs(ctx context.Context, dealerID string, limit uint64) ([]*domain.SyncLog, error) {
	if limit == 0 || limit > 200 {
		limit = 50
	}
	return s.store.ListSyncLogs(ctx, dealerID, limit)
}
