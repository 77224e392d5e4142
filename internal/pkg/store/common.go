package store

import (
	"errors"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"

	"github.com/TITANForecast/frontend-sub000/internal/pkg/constants"
)

const (
	tableDealers         = "dealers"
	tableUsers           = "users"
	tableRepairOrders    = "repair_orders"
	tableServiceRecords  = "service_records"
	tableSyncConfigs     = "sync_configs"
	tableSyncLogs        = "sync_logs"
	tableKPISnapshots    = "kpi_snapshots"
	tableWarrantyOpcodes = "warranty_opcodes"
)

var mapping = map[error]error{pgx.ErrNoRows: constants.ErrDBNotFound}

func wrapErr(err error) error {
	for k, v := range mapping {
		if errors.Is(err, k) {
			return v
		}
	}
	return err
}

// builder returns a squirrel statement builder with postgres placeholders.
func builder() squirrel.StatementBuilderType {
	return squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
}
