package store

import (
	"context"
	"fmt"

	sq "github.com/Masterminds/squirrel"

	"github.com/TITANForecast/frontend-sub000/internal/domain"
)

var dealerColumns = []string{"id", "name", "dms_vendor", "timezone", "created_at", "updated_at"}

func (s *store) CreateDealer(ctx context.Context, dealer *domain.Dealer) (*domain.Dealer, error) {
	query := builder().Insert(tableDealers).
		Columns("id", "name", "dms_vendor", "timezone").
		Values(dealer.ID, dealer.Name, dealer.DMSVendor, dealer.Timezone).
		Suffix(`on conflict (id) do update set name=excluded.name, dms_vendor=excluded.dms_vendor, timezone=excluded.timezone, updated_at=now()`)

	_, err := s.pool.Execx(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("insert dealer: %w", err)
	}

	return s.GetDealerByID(ctx, dealer.ID)
}

func (s *store) ListDealers(ctx context.Context) ([]*domain.Dealer, error) {
	query := builder().Select(dealerColumns...).
		From(tableDealers).
		OrderBy("name")

	var selected []*domain.Dealer
	err := s.pool.Selectx(ctx, &selected, query)
	if err != nil {
		return nil, err
	}

	return selected, nil
}

func (s *store) GetDealerByID(ctx context.Context, id string) (*domain.Dealer, error) {
	query := builder().Select(dealerColumns...).
		From(tableDealers).
		Where(sq.Eq{"id": id})

	var selected domain.Dealer
	err := s.pool.Getx(ctx, &selected, query)
	if err != nil {
		return nil, wrapErr(err)
	}

	return &selected, nil
}
