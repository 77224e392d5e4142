package dashboard

import (
	"context"
	"errors"
	"fmt"

	"github.com/TITANForecast/frontend-sub000/internal/domain"
	"github.com/TITANForecast/frontend-sub000/internal/pkg/constants"
	"github.com/TITANForecast/frontend-sub000/internal/pkg/logger"
	"github.com/TITANForecast/frontend-sub000/internal/pkg/store"
)

type Service struct {
	store store.Store
}

func NewService(store store.Store) *Service {
	return &Service{store: store}
}

// GetDashboard queries the dealer's service records for the window and runs
// the aggregator over them, with the latest KPI snapshot as fallback input.
func (s *Service) GetDashboard(ctx context.Context, dealerID string, from, to *string) (*domain.ProcessedDashboardData, error) {
	records, err := s.store.ListServiceRecords(ctx, store.ListServiceRecordsOpts{
		DealerID: dealerID,
		From:     from,
		To:       to,
	})
	if err != nil {
		return nil, fmt.Errorf("store.ListServiceRecords: %w", err)
	}

	kpi, err := s.store.LatestKPISnapshot(ctx, dealerID)
	if err != nil {
		if !errors.Is(err, constants.ErrDBNotFound) {
			logger.Errorf(ctx, "LatestKPISnapshot: %s", err.Error())
		}
		kpi = nil
	}

	data := Process(records, kpi)
	return &data, nil
}
