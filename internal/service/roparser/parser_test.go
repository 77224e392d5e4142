package roparser

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/TITANForecast/frontend-sub000/internal/domain"
)

func validRecord() domain.RawRecord {
	return domain.RawRecord{
		"Dealer ID":        "D123",
		"RO Number":        "RO-1001",
		"RO Open Date":     "2024-03-05T10:00:00Z",
		"Customer ID":      "C42",
		"Customer Name":    "Jane Driver",
		"Customer Phone":   "555-0100",
		"Customer Email":   "jane@example.com",
		"Customer Address": "1 Main St",
		"VIN":              "1HGCM82633A004352",
		"Vehicle Year":     "2019",
		"Vehicle Make":     "Honda",
		"Vehicle Model":    "Accord",
		"Mileage":          "42135",

		"Total Amount":       "1,234.50",
		"Total Labor Amount": "800.00",
		"Total Parts Amount": "350.00",
		"Total Tax Amount":   "84.50",

		"Operation Codes":             "OP1",
		"Operation Code Descriptions": "Oil change",

		"Technician IDs":   "T1",
		"Technician Names": "Alex",
		"Labor Hours":      "1.5",
		"Labor Rates":      "100",

		"Part Numbers":      "P1",
		"Part Descriptions": "Oil filter",
		"Part Quantities":   "2",
		"Part Unit Costs":   "10",
		"Part Unit Sales":   "15.50",
	}
}

func TestParseRecordSuccess(t *testing.T) {
	result := ParseRecord(validRecord())

	if !result.Success {
		t.Fatalf("expected success, got errors: %v", result.Errors)
	}
	if len(result.Errors) != 0 {
		t.Fatalf("success result must carry no errors, got %v", result.Errors)
	}
	if result.Data == nil {
		t.Fatal("success result must carry data")
	}
	if got := result.Data.Header.TenantID; got != "D123" {
		t.Errorf("tenant id = %q, want %q", got, "D123")
	}
	if got := result.Data.Header.RONumber; got != "RO-1001" {
		t.Errorf("ro number = %q, want %q", got, "RO-1001")
	}
	if got := result.Data.Header.Vehicle.Year; got != 2019 {
		t.Errorf("vehicle year = %d, want 2019", got)
	}
	if got := result.Data.Header.Vehicle.Mileage; got != 42135 {
		t.Errorf("mileage = %d, want 42135", got)
	}
	if got := result.Data.Header.TotalAmount; got != 1234.50 {
		t.Errorf("total amount = %v, want 1234.50", got)
	}
}

func TestParseRecordTenantFallbackColumn(t *testing.T) {
	record := validRecord()
	delete(record, "Dealer ID")
	record["Dealer Number"] = " 77 "

	result := ParseRecord(record)
	if !result.Success {
		t.Fatalf("expected success, got errors: %v", result.Errors)
	}
	if got := result.Data.Header.TenantID; got != "77" {
		t.Errorf("tenant id = %q, want trimmed %q", got, "77")
	}
}

func TestParseRecordMissingTenant(t *testing.T) {
	record := validRecord()
	delete(record, "Dealer ID")

	result := ParseRecord(record)
	if result.Success {
		t.Fatal("expected failure for record without dealer identifier")
	}
	if result.Data != nil {
		t.Fatal("failed result must not carry data")
	}
	if len(result.Errors) != 1 {
		t.Fatalf("want exactly one error, got %v", result.Errors)
	}
	if got := result.Errors[0].Field; got != "general" {
		t.Errorf("error field = %q, want %q", got, "general")
	}
}

func TestParseRecordCollectsAllValidationErrors(t *testing.T) {
	record := validRecord()
	record["RO Number"] = ""
	record["Operation Codes"] = ""

	result := ParseRecord(record)
	if result.Success {
		t.Fatal("expected failure")
	}
	if len(result.Errors) != 2 {
		t.Fatalf("want exactly two errors, got %v", result.Errors)
	}

	fields := []string{result.Errors[0].Field, result.Errors[1].Field}
	want := []string{"roNumber", "operations"}
	if diff := cmp.Diff(want, fields); diff != "" {
		t.Errorf("error fields mismatch (-want +got):\n%s", diff)
	}
}

func TestParseMonetary(t *testing.T) {
	cases := []struct {
		in   string
		want float64
	}{
		{"1,234.50", 1234.50},
		{"", 0},
		{"abc", 0},
		{"  99.90 ", 99.90},
		{"1,000,000", 1000000},
	}

	for _, tc := range cases {
		if got := parseMonetary(tc.in); got != tc.want {
			t.Errorf("parseMonetary(%q) = %v, want %v", tc.in, got, tc.want)
		}
	}
}

func TestDerivedTotals(t *testing.T) {
	record := validRecord()
	record["Technician IDs"] = "T1|T2"
	record["Technician Names"] = "Alex|Bea"
	record["Labor Hours"] = "1.5|2"
	record["Labor Rates"] = "100|120"
	record["Part Numbers"] = "P1|P2"
	record["Part Descriptions"] = "Filter|Pads"
	record["Part Quantities"] = "2|1"
	record["Part Unit Costs"] = "10|20"
	record["Part Unit Sales"] = "15.50|30"

	result := ParseRecord(record)
	if !result.Success {
		t.Fatalf("expected success, got errors: %v", result.Errors)
	}

	op := result.Data.Operations[0]
	if got := op.TotalLaborHours; got != 3.5 {
		t.Errorf("total labor hours = %v, want 3.5", got)
	}
	// 1.5*100 + 2*120, never the "Total Labor Amount" source column.
	if got := op.TotalLaborAmount; got != 390 {
		t.Errorf("total labor amount = %v, want 390", got)
	}
	// 2*15.50 + 1*30
	if got := op.TotalPartsAmount; got != 61 {
		t.Errorf("total parts amount = %v, want 61", got)
	}
	if got := op.PartEntries[0].TotalCost; got != 20 {
		t.Errorf("part total cost = %v, want 20", got)
	}
}

func TestEntryMaterializationBoundary(t *testing.T) {
	record := validRecord()
	record["Technician IDs"] = "T1|T2"
	record["Technician Names"] = "Alex|Bea"
	record["Labor Hours"] = "0|2"
	record["Labor Rates"] = "100|120"
	record["Part Numbers"] = "P1|P2"
	record["Part Quantities"] = "0|3"
	record["Part Unit Costs"] = "10|20"
	record["Part Unit Sales"] = "15|30"

	result := ParseRecord(record)
	if !result.Success {
		t.Fatalf("expected success, got errors: %v", result.Errors)
	}

	op := result.Data.Operations[0]
	if len(op.LaborEntries) != 1 || op.LaborEntries[0].TechnicianID != "T2" {
		t.Errorf("zero-hour labor entry must not materialize, got %+v", op.LaborEntries)
	}
	if len(op.PartEntries) != 1 || op.PartEntries[0].PartNumber != "P2" {
		t.Errorf("zero-quantity part entry must not materialize, got %+v", op.PartEntries)
	}
}

func TestOperationsShareRecordLevelLines(t *testing.T) {
	record := validRecord()
	record["Operation Codes"] = "OP1|OP2|"
	record["Operation Code Descriptions"] = "Oil change|Brakes"

	result := ParseRecord(record)
	if !result.Success {
		t.Fatalf("expected success, got errors: %v", result.Errors)
	}

	ops := result.Data.Operations
	if len(ops) != 2 {
		t.Fatalf("empty opcode must be skipped, got %d operations", len(ops))
	}
	// The export format does not scope line items to operations; both
	// operations see the record-level labor list.
	if diff := cmp.Diff(ops[0].LaborEntries, ops[1].LaborEntries); diff != "" {
		t.Errorf("operations diverge on labor entries:\n%s", diff)
	}
	if ops[1].OperationDescription != "Brakes" {
		t.Errorf("description = %q, want %q", ops[1].OperationDescription, "Brakes")
	}
}

func TestSiblingMisalignmentWarns(t *testing.T) {
	record := validRecord()
	record["Technician IDs"] = "T1|T2"
	record["Technician Names"] = "Alex"
	record["Labor Hours"] = "1|2"
	record["Labor Rates"] = "100|100"

	result := ParseRecord(record)
	if !result.Success {
		t.Fatalf("expected success, got errors: %v", result.Errors)
	}
	if len(result.Warnings) == 0 {
		t.Fatal("want a misalignment warning")
	}
	if !strings.Contains(result.Warnings[0], "labor columns misaligned") {
		t.Errorf("unexpected warning %q", result.Warnings[0])
	}

	// Nothing truncated: the second entry exists with an empty name.
	entries := result.Data.Operations[0].LaborEntries
	if len(entries) != 2 {
		t.Fatalf("want 2 labor entries, got %d", len(entries))
	}
	if entries[1].TechnicianName != "" {
		t.Errorf("missing sibling position must coerce to empty, got %q", entries[1].TechnicianName)
	}
}

func TestParseBatchCounts(t *testing.T) {
	bad := validRecord()
	delete(bad, "Dealer ID")

	batch := ParseBatch([]domain.RawRecord{validRecord(), bad, validRecord()})

	if batch.TotalRecords != 3 {
		t.Errorf("total = %d, want 3", batch.TotalRecords)
	}
	if batch.TotalRecords != len(batch.Results) {
		t.Errorf("results length %d != total %d", len(batch.Results), batch.TotalRecords)
	}
	if batch.SuccessfulRecords+batch.FailedRecords != batch.TotalRecords {
		t.Errorf("successful %d + failed %d != total %d",
			batch.SuccessfulRecords, batch.FailedRecords, batch.TotalRecords)
	}
	if batch.SuccessfulRecords != 2 || batch.FailedRecords != 1 {
		t.Errorf("counts = %d/%d, want 2/1", batch.SuccessfulRecords, batch.FailedRecords)
	}
	if len(batch.Errors) != 1 {
		t.Errorf("flattened errors = %v, want one", batch.Errors)
	}
}

func TestParseBatchAllFailuresStillReturns(t *testing.T) {
	bad := domain.RawRecord{"RO Number": "RO-1"}

	batch := ParseBatch([]domain.RawRecord{bad, bad})
	if batch.SuccessfulRecords != 0 || batch.FailedRecords != 2 {
		t.Errorf("counts = %d/%d, want 0/2", batch.SuccessfulRecords, batch.FailedRecords)
	}
}

func TestCreatedAtDefaultsWhenAbsent(t *testing.T) {
	record := validRecord()
	delete(record, "RO Open Date")

	result := ParseRecord(record)
	if !result.Success {
		t.Fatalf("expected success, got errors: %v", result.Errors)
	}
	if result.Data.Header.CreatedAt == "" {
		t.Error("createdAt must default to the current time when the source field is absent")
	}
}
