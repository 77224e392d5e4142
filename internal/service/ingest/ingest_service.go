// Package ingest pulls DMS export feeds, runs them through the RO parser
// and persists the results.
package ingest

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/cenkalti/backoff/v4"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"

	"github.com/TITANForecast/frontend-sub000/internal/domain"
	"github.com/TITANForecast/frontend-sub000/internal/pkg/logger"
	"github.com/TITANForecast/frontend-sub000/internal/pkg/store"
	"github.com/TITANForecast/frontend-sub000/internal/service/roparser"
)

type Service struct {
	store  store.Store
	client *http.Client
}

func NewService(store store.Store) *Service {
	return &Service{
		store:  store,
		client: &http.Client{Timeout: 30 * time.Second},
	}
}

// IngestBatch parses the records, upserts every successful RO together with
// its flattened service-record rows and writes a sync log. The batch result
// is returned even when some records fail; callers read the counts.
func (s *Service) IngestBatch(ctx context.Context, dealerID string, records []domain.RawRecord) (*domain.BatchParserResult, *domain.SyncLog, error) {
	startedAt := time.Now().UTC()

	batch := roparser.ParseBatch(records)

	warrantySet, err := s.warrantyOpcodes(ctx, dealerID)
	if err != nil {
		logger.Errorf(ctx, "ListWarrantyOpcodes, dealer_id-%s: %s", dealerID, err.Error())
		warrantySet = map[string]struct{}{}
	}

	var (
		newRecords  int
		storeFailed int
		countsMx    sync.Mutex
	)

	eg, egCtx := errgroup.WithContext(ctx)
	for _, result := range batch.Results {
		if !result.Success {
			continue
		}
		data := result.Data

		eg.Go(func() error {
			inserted, err := s.store.UpsertRepairOrder(egCtx, data)
			if err != nil {
				logger.Errorf(egCtx, "UpsertRepairOrder, ro_number-%s: %s", data.Header.RONumber, err.Error())
				countsMx.Lock()
				storeFailed++
				countsMx.Unlock()
				return nil
			}

			if err := s.store.InsertServiceRecords(egCtx, flatten(data, warrantySet)); err != nil {
				logger.Errorf(egCtx, "InsertServiceRecords, ro_number-%s: %s", data.Header.RONumber, err.Error())
				countsMx.Lock()
				storeFailed++
				countsMx.Unlock()
				return nil
			}

			if inserted {
				countsMx.Lock()
				newRecords++
				countsMx.Unlock()
			}
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, nil, fmt.Errorf("err in goroutine: %w", err)
	}

	syncLog := &domain.SyncLog{
		ID:            uuid.NewString(),
		DealerID:      dealerID,
		StartedAt:     startedAt,
		FinishedAt:    time.Now().UTC(),
		TotalRecords:  batch.TotalRecords,
		NewRecords:    newRecords,
		FailedRecords: batch.FailedRecords + storeFailed,
		ErrorDetail:   errorDetail(&batch),
	}
	if err := s.store.InsertSyncLog(ctx, syncLog); err != nil {
		logger.Errorf(ctx, "InsertSyncLog, dealer_id-%s: %s", dealerID, err.Error())
	}

	return &batch, syncLog, nil
}

// RunSync scrapes the dealer's export index page for flat files, downloads
// them concurrently and ingests everything as one batch.
func (s *Service) RunSync(ctx context.Context, cfg *domain.SyncConfig) (*domain.SyncLog, error) {
	resp, err := s.client.Get(cfg.FeedURL)
	if err != nil {
		return nil, fmt.Errorf("failed to get feed index: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("status code error: %d %s", resp.StatusCode, resp.Status)
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("goquery.NewDocumentFromReader: %w", err)
	}

	base, err := url.Parse(cfg.FeedURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse feed url: %w", err)
	}

	var exportURLs []string
	doc.Find("a").Each(func(_ int, a *goquery.Selection) {
		href, ok := a.Attr("href")
		if !ok {
			return
		}
		if !strings.HasSuffix(href, ".txt") && !strings.HasSuffix(href, ".tsv") {
			return
		}
		ref, parseErr := url.Parse(href)
		if parseErr != nil {
			logger.Warnf(ctx, "skipping export link %q: %s", href, parseErr.Error())
			return
		}
		exportURLs = append(exportURLs, base.ResolveReference(ref).String())
	})

	records := make([]domain.RawRecord, 0, 256)
	recordsMx := sync.Mutex{}
	eg, egCtx := errgroup.WithContext(ctx)
	for _, exportURL := range exportURLs {
		exportURL := exportURL
		eg.Go(func() error {
			fileRecords, err := s.fetchExport(egCtx, exportURL)
			if err != nil {
				return fmt.Errorf("fetchExport, url-%s: %w", exportURL, err)
			}

			logger.Infof(egCtx, "fetched %d records from %s", len(fileRecords), exportURL)

			recordsMx.Lock()
			defer recordsMx.Unlock()
			records = append(records, fileRecords...)
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, fmt.Errorf("err in goroutine: %w", err)
	}

	_, syncLog, err := s.IngestBatch(ctx, cfg.DealerID, records)
	if err != nil {
		return nil, fmt.Errorf("IngestBatch: %w", err)
	}

	return syncLog, nil
}

func (s *Service) fetchExport(ctx context.Context, exportURL string) ([]domain.RawRecord, error) {
	var resp *http.Response
	err := backoff.Retry(
		func() error {
			var httpErr error

			resp, httpErr = s.client.Get(exportURL)
			if httpErr != nil {
				return fmt.Errorf("http.Get: %w", httpErr)
			}
			if resp.StatusCode != http.StatusOK {
				resp.Body.Close()
				return fmt.Errorf("status code error: %d %s", resp.StatusCode, resp.Status)
			}

			return nil
		},
		backoff.WithContext(
			backoff.WithMaxRetries(backoff.NewConstantBackOff(500*time.Millisecond), 5),
			ctx,
		),
	)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	return DecodeExport(resp.Body)
}

// DecodeExport reads a tab-delimited export: the first line names the
// columns, every following line is one raw record.
func DecodeExport(r io.Reader) ([]domain.RawRecord, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 4*1024*1024)

	if !scanner.Scan() {
		if err := scanner.Err(); err != nil {
			return nil, fmt.Errorf("failed to read header line: %w", err)
		}
		return nil, nil
	}
	columns := strings.Split(scanner.Text(), "\t")

	var records []domain.RawRecord
	for scanner.Scan() {
		line := scanner.Text()
		if strings.TrimSpace(line) == "" {
			continue
		}

		values := strings.Split(line, "\t")
		record := make(domain.RawRecord, len(columns))
		for i, column := range columns {
			column = strings.TrimSpace(column)
			if column == "" {
				continue
			}
			if i < len(values) {
				record[column] = values[i]
			} else {
				record[column] = ""
			}
		}
		records = append(records, record)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read export: %w", err)
	}

	return records, nil
}

// flatten bridges parser output to the one-operation-per-row shape the
// aggregator reads. Labor cost is not present in the export, so only parts
// cost lands in the cost columns. The payer bucket comes from the dealer's
// warranty-opcode tags, defaulting to customer pay.
func flatten(data *domain.ParsedROData, warrantyOpcodes map[string]struct{}) []*domain.ServiceRecord {
	records := make([]*domain.ServiceRecord, 0, len(data.Operations))

	for _, op := range data.Operations {
		laborSale := decimal.NewFromFloat(op.TotalLaborAmount)
		partsSale := decimal.NewFromFloat(op.TotalPartsAmount)

		partsCost := decimal.Zero
		for _, part := range op.PartEntries {
			partsCost = partsCost.Add(decimal.NewFromFloat(part.TotalCost))
		}

		rec := &domain.ServiceRecord{
			DealerID:      data.Header.TenantID,
			RONumber:      data.Header.RONumber,
			OpenDate:      data.Header.CreatedAt,
			Department:    "Service",
			OperationCode: op.OperationCode,
		}
		if len(op.LaborEntries) > 0 {
			rec.TechnicianID = op.LaborEntries[0].TechnicianID
			rec.TechnicianName = op.LaborEntries[0].TechnicianName
		}

		totalSale := laborSale.Add(partsSale).StringFixed(2)
		totalCost := partsCost.StringFixed(2)
		labor := laborSale.StringFixed(2)
		parts := partsSale.StringFixed(2)
		partsCostStr := partsCost.StringFixed(2)

		if _, warranty := warrantyOpcodes[op.OperationCode]; warranty {
			rec.WarrantyTotalSale = totalSale
			rec.WarrantyTotalCost = totalCost
			rec.WarrantyLaborSale = labor
			rec.WarrantyPartsSale = parts
			rec.WarrantyPartsCost = partsCostStr
		} else {
			rec.CustomerTotalSale = totalSale
			rec.CustomerTotalCost = totalCost
			rec.CustomerLaborSale = labor
			rec.CustomerPartsSale = parts
			rec.CustomerPartsCost = partsCostStr
		}

		records = append(records, rec)
	}

	return records
}

func (s *Service) warrantyOpcodes(ctx context.Context, dealerID string) (map[string]struct{}, error) {
	opcodes, err := s.store.ListWarrantyOpcodes(ctx, dealerID)
	if err != nil {
		return nil, err
	}

	set := make(map[string]struct{}, len(opcodes))
	for _, opcode := range opcodes {
		set[opcode] = struct{}{}
	}
	return set, nil
}

func errorDetail(batch *domain.BatchParserResult) string {
	if len(batch.Errors) == 0 {
		return ""
	}

	detail := make([]string, 0, len(batch.Errors))
	for _, e := range batch.Errors {
		detail = append(detail, fmt.Sprintf("%s: %s", e.Field, e.Message))
		if len(detail) == 20 {
			detail = append(detail, fmt.Sprintf("... and %d more", len(batch.Errors)-20))
			break
		}
	}

	return strings.Join(detail, "; ")
}
