package store

import (
	"context"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/bytedance/sonic"

	"github.com/TITANForecast/frontend-sub000/internal/domain"
)

// UpsertRepairOrder stores the parsed RO document as jsonb keyed by
// (dealer_id, ro_number). The returned flag reports whether the row was new,
// which feeds the new/updated counts on sync logs.
func (s *store) UpsertRepairOrder(ctx context.Context, data *domain.ParsedROData) (bool, error) {
	payload, err := sonic.Marshal(data)
	if err != nil {
		return false, fmt.Errorf("failed to marshal parsed ro: %w", err)
	}

	query := builder().Insert(tableRepairOrders).
		Columns("dealer_id", "ro_number", "payload").
		Values(data.Header.TenantID, data.Header.RONumber, payload).
		Suffix(`on conflict (dealer_id, ro_number)
do update set payload=excluded.payload, updated_at=now()
returning (xmax = 0) as inserted`)

	var res struct {
		Inserted bool `db:"inserted"`
	}
	if err := s.pool.Getx(ctx, &res, query); err != nil {
		return false, err
	}

	return res.Inserted, nil
}

var serviceRecordColumns = []string{
	"dealer_id", "ro_number", "open_date", "closed_ro_date",
	"advisor_id", "advisor_name", "technician_id", "technician_name",
	"department", "operation_code",
	"customer_total_sale", "customer_total_cost",
	"customer_labor_sale", "customer_labor_cost",
	"customer_parts_sale", "customer_parts_cost",
	"warranty_total_sale", "warranty_total_cost",
	"warranty_labor_sale", "warranty_labor_cost",
	"warranty_parts_sale", "warranty_parts_cost",
	"internal_total_sale", "internal_total_cost",
	"internal_labor_sale", "internal_labor_cost",
	"internal_parts_sale", "internal_parts_cost",
}

func (s *store) InsertServiceRecords(ctx context.Context, records []*domain.ServiceRecord) error {
	if len(records) == 0 {
		return nil
	}

	query := builder().Insert(tableServiceRecords).Columns(serviceRecordColumns...)
	for _, r := range records {
		query = query.Values(
			r.DealerID, r.RONumber, r.OpenDate, r.ClosedRODate,
			r.AdvisorID, r.AdvisorName, r.TechnicianID, r.TechnicianName,
			r.Department, r.OperationCode,
			r.CustomerTotalSale, r.CustomerTotalCost,
			r.CustomerLaborSale, r.CustomerLaborCost,
			r.CustomerPartsSale, r.CustomerPartsCost,
			r.WarrantyTotalSale, r.WarrantyTotalCost,
			r.WarrantyLaborSale, r.WarrantyLaborCost,
			r.WarrantyPartsSale, r.WarrantyPartsCost,
			r.InternalTotalSale, r.InternalTotalCost,
			r.InternalLaborSale, r.InternalLaborCost,
			r.InternalPartsSale, r.InternalPartsCost,
		)
	}
	query = query.Suffix(`on conflict (dealer_id, ro_number, operation_code) do nothing`)

	if _, err := s.pool.Execx(ctx, query); err != nil {
		return fmt.Errorf("insert service records: %w", err)
	}

	return nil
}

type ListServiceRecordsOpts struct {
	DealerID string
	From     *string
	To       *string
}

func (s *store) ListServiceRecords(ctx context.Context, opts ListServiceRecordsOpts) ([]*domain.ServiceRecord, error) {
	query := builder().Select(serviceRecordColumns...).
		From(tableServiceRecords).
		Where(sq.Eq{"dealer_id": opts.DealerID})

	if opts.From != nil {
		query = query.Where(sq.GtOrEq{"closed_ro_date": *opts.From})
	}
	if opts.To != nil {
		query = query.Where(sq.LtOrEq{"closed_ro_date": *opts.To})
	}

	var selected []*domain.ServiceRecord
	err := s.pool.Selectx(ctx, &selected, query)
	if err != nil {
		return nil, err
	}

	return selected, nil
}

func (s *store) ListWarrantyOpcodes(ctx context.Context, dealerID string) ([]string, error) {
	query := builder().Select("operation_code").
		From(tableWarrantyOpcodes).
		Where(sq.Eq{"dealer_id": dealerID})

	var selected []struct {
		OperationCode string `db:"operation_code"`
	}
	if err := s.pool.Selectx(ctx, &selected, query); err != nil {
		return nil, err
	}

	opcodes := make([]string, 0, len(selected))
	for _, row := range selected {
		opcodes = append(opcodes, row.OperationCode)
	}

	return opcodes, nil
}
