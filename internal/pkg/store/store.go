package store

import (
	"context"

	"github.com/TITANForecast/frontend-sub000/internal/domain"
	"github.com/TITANForecast/frontend-sub000/internal/pkg/store/xpgx"
)

type Pool = xpgx.Pool

type Store interface {
	CreateDealer(ctx context.Context, dealer *domain.Dealer) (*domain.Dealer, error)
	ListDealers(ctx context.Context) ([]*domain.Dealer, error)
	GetDealerByID(ctx context.Context, id string) (*domain.Dealer, error)

	CreateUser(ctx context.Context, user *domain.User) error
	GetUserByEmail(ctx context.Context, email string) (*domain.User, error)
	GetUserStatus(ctx context.Context, userID int64) (string, error)

	UpsertRepairOrder(ctx context.Context, data *domain.ParsedROData) (bool, error)
	InsertServiceRecords(ctx context.Context, records []*domain.ServiceRecord) error
	ListServiceRecords(ctx context.Context, opts ListServiceRecordsOpts) ([]*domain.ServiceRecord, error)
	ListWarrantyOpcodes(ctx context.Context, dealerID string) ([]string, error)

	LatestKPISnapshot(ctx context.Context, dealerID string) (*domain.KPIResults, error)

	UpsertSyncConfig(ctx context.Context, cfg *domain.SyncConfig) (*domain.SyncConfig, error)
	GetSyncConfig(ctx context.Context, dealerID string) (*domain.SyncConfig, error)
	InsertSyncLog(ctx context.Context, log *domain.SyncLog) error
	ListSyncLogs(ctx context.Context, dealerID string, limit uint64) ([]*domain.SyncLog, error)
}

type store struct {
	pool Pool
}

func NewStore(pool Pool) Store {
	return &store{pool}
}
