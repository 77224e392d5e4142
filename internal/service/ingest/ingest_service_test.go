package ingest

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/TITANForecast/frontend-sub000/internal/domain"
	"github.com/TITANForecast/frontend-sub000/internal/pkg/store"
)

// stubStore records ingest writes; everything else is unused here.
type stubStore struct {
	mx              sync.Mutex
	upserted        []*domain.ParsedROData
	serviceRecords  []*domain.ServiceRecord
	syncLogs        []*domain.SyncLog
	warrantyOpcodes []string
	existing        map[string]bool
}

func (s *stubStore) UpsertRepairOrder(_ context.Context, data *domain.ParsedROData) (bool, error) {
	s.mx.Lock()
	defer s.mx.Unlock()
	s.upserted = append(s.upserted, data)
	return !s.existing[data.Header.RONumber], nil
}

func (s *stubStore) InsertServiceRecords(_ context.Context, records []*domain.ServiceRecord) error {
	s.mx.Lock()
	defer s.mx.Unlock()
	s.serviceRecords = append(s.serviceRecords, records...)
	return nil
}

func (s *stubStore) ListWarrantyOpcodes(context.Context, string) ([]string, error) {
	return s.warrantyOpcodes, nil
}

func (s *stubStore) InsertSyncLog(_ context.Context, log *domain.SyncLog) error {
	s.mx.Lock()
	defer s.mx.Unlock()
	s.syncLogs = append(s.syncLogs, log)
	return nil
}

func (s *stubStore) CreateDealer(context.Context, *domain.Dealer) (*domain.Dealer, error) {
	return nil, nil
}
func (s *stubStore) ListDealers(context.Context) ([]*domain.Dealer, error)         { return nil, nil }
func (s *stubStore) GetDealerByID(context.Context, string) (*domain.Dealer, error) { return nil, nil }
func (s *stubStore) CreateUser(context.Context, *domain.User) error                { return nil }
func (s *stubStore) GetUserByEmail(context.Context, string) (*domain.User, error)  { return nil, nil }
func (s *stubStore) GetUserStatus(context.Context, int64) (string, error)          { return "", nil }
func (s *stubStore) ListServiceRecords(context.Context, store.ListServiceRecordsOpts) ([]*domain.ServiceRecord, error) {
	return nil, nil
}
func (s *stubStore) LatestKPISnapshot(context.Context, string) (*domain.KPIResults, error) {
	return nil, nil
}
func (s *stubStore) UpsertSyncConfig(context.Context, *domain.SyncConfig) (*domain.SyncConfig, error) {
	return nil, nil
}
func (s *stubStore) GetSyncConfig(context.Context, string) (*domain.SyncConfig, error) {
	return nil, nil
}
func (s *stubStore) ListSyncLogs(context.Context, string, uint64) ([]*domain.SyncLog, error) {
	return nil, nil
}

var _ store.Store = (*stubStore)(nil)

func rawRecord(roNumber string) domain.RawRecord {
	return domain.RawRecord{
		"Dealer ID":                   "D123",
		"RO Number":                   roNumber,
		"RO Open Date":                "2024-03-05",
		"Operation Codes":             "OP1",
		"Operation Code Descriptions": "Oil change",
		"Technician IDs":              "T1",
		"Technician Names":            "Alex",
		"Labor Hours":                 "1.5",
		"Labor Rates":                 "100",
	}
}

func TestIngestBatchCountsAndLog(t *testing.T) {
	st := &stubStore{existing: map[string]bool{"RO-2": true}}
	svc := NewService(st)

	bad := rawRecord("RO-3")
	delete(bad, "Dealer ID")

	batch, syncLog, err := svc.IngestBatch(context.Background(), "D123", []domain.RawRecord{
		rawRecord("RO-1"), rawRecord("RO-2"), bad,
	})
	if err != nil {
		t.Fatalf("IngestBatch: %v", err)
	}

	if batch.SuccessfulRecords != 2 || batch.FailedRecords != 1 {
		t.Errorf("batch counts = %d/%d, want 2/1", batch.SuccessfulRecords, batch.FailedRecords)
	}
	if syncLog.TotalRecords != 3 || syncLog.NewRecords != 1 || syncLog.FailedRecords != 1 {
		t.Errorf("sync log = %+v, want total 3 new 1 failed 1", syncLog)
	}
	if syncLog.ErrorDetail == "" {
		t.Error("sync log should carry the parse error detail")
	}
	if len(st.upserted) != 2 {
		t.Errorf("upserted %d ROs, want 2", len(st.upserted))
	}
	if len(st.syncLogs) != 1 {
		t.Errorf("persisted %d sync logs, want 1", len(st.syncLogs))
	}
}

func TestFlattenBucketsByWarrantyOpcode(t *testing.T) {
	st := &stubStore{warrantyOpcodes: []string{"WOP"}}
	svc := NewService(st)

	rec := rawRecord("RO-1")
	rec["Operation Codes"] = "OP1|WOP"
	rec["Operation Code Descriptions"] = "Oil change|Recall fix"

	if _, _, err := svc.IngestBatch(context.Background(), "D123", []domain.RawRecord{rec}); err != nil {
		t.Fatalf("IngestBatch: %v", err)
	}

	if len(st.serviceRecords) != 2 {
		t.Fatalf("want one service record per operation, got %d", len(st.serviceRecords))
	}

	var customer, warranty *domain.ServiceRecord
	for _, sr := range st.serviceRecords {
		switch sr.OperationCode {
		case "OP1":
			customer = sr
		case "WOP":
			warranty = sr
		}
	}
	if customer == nil || warranty == nil {
		t.Fatalf("missing flattened rows: %+v", st.serviceRecords)
	}
	if customer.CustomerLaborSale != "150.00" || customer.WarrantyLaborSale != "" {
		t.Errorf("untagged opcode must land in the customer bucket: %+v", customer)
	}
	if warranty.WarrantyLaborSale != "150.00" || warranty.CustomerLaborSale != "" {
		t.Errorf("tagged opcode must land in the warranty bucket: %+v", warranty)
	}
	if customer.TechnicianID != "T1" {
		t.Errorf("technician id = %q, want T1", customer.TechnicianID)
	}
}

func TestDecodeExport(t *testing.T) {
	export := strings.Join([]string{
		"Dealer ID\tRO Number\tOperation Codes",
		"D123\tRO-1\tOP1|OP2",
		"",
		"D123\tRO-2",
	}, "\n")

	records, err := DecodeExport(strings.NewReader(export))
	if err != nil {
		t.Fatalf("DecodeExport: %v", err)
	}

	if len(records) != 2 {
		t.Fatalf("want 2 records, got %d", len(records))
	}
	if records[0]["Operation Codes"] != "OP1|OP2" {
		t.Errorf("packed column lost: %q", records[0]["Operation Codes"])
	}
	// Short rows backfill empty strings for trailing columns.
	if v, ok := records[1]["Operation Codes"]; !ok || v != "" {
		t.Errorf("missing trailing value should decode to empty, got %q (present=%v)", v, ok)
	}
}

func TestRunSyncScrapesAndIngests(t *testing.T) {
	export := strings.Join([]string{
		"Dealer ID\tRO Number\tOperation Codes\tTechnician IDs\tLabor Hours\tLabor Rates",
		"D123\tRO-9\tOP1\tT1\t1.0\t120",
	}, "\n")

	mux := http.NewServeMux()
	mux.HandleFunc("/feed/", func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`<html><body><ul>
			<li><a href="/feed/ro_export.txt">ro_export.txt</a></li>
			<li><a href="/feed/readme.html">readme</a></li>
		</ul></body></html>`))
	})
	mux.HandleFunc("/feed/ro_export.txt", func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(export))
	})
	server := httptest.NewServer(mux)
	defer server.Close()

	st := &stubStore{}
	svc := NewService(st)

	syncLog, err := svc.RunSync(context.Background(), &domain.SyncConfig{
		DealerID: "D123",
		FeedURL:  server.URL + "/feed/",
		Enabled:  true,
	})
	if err != nil {
		t.Fatalf("RunSync: %v", err)
	}

	if syncLog.TotalRecords != 1 || syncLog.NewRecords != 1 || syncLog.FailedRecords != 0 {
		t.Errorf("sync log = %+v, want total 1 new 1 failed 0", syncLog)
	}
	if len(st.upserted) != 1 || st.upserted[0].Header.RONumber != "RO-9" {
		t.Fatalf("unexpected upserts: %+v", st.upserted)
	}
}
