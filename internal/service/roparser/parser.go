// Package roparser decodes delimiter-packed DMS export rows into structured
// repair orders.
package roparser

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/TITANForecast/frontend-sub000/internal/domain"
)

// DMS export column names.
const (
	colDealerID     = "Dealer ID"
	colDealerNumber = "Dealer Number"
	colRONumber     = "RO Number"
	colROOpenDate   = "RO Open Date"

	colCustomerID      = "Customer ID"
	colCustomerName    = "Customer Name"
	colCustomerPhone   = "Customer Phone"
	colCustomerEmail   = "Customer Email"
	colCustomerAddress = "Customer Address"

	colVIN          = "VIN"
	colVehicleYear  = "Vehicle Year"
	colVehicleMake  = "Vehicle Make"
	colVehicleModel = "Vehicle Model"
	colMileage      = "Mileage"

	colTotalAmount      = "Total Amount"
	colTotalLaborAmount = "Total Labor Amount"
	colTotalPartsAmount = "Total Parts Amount"
	colTotalTaxAmount   = "Total Tax Amount"

	colOperationCodes = "Operation Codes"
	colOperationDescs = "Operation Code Descriptions"

	colTechnicianIDs   = "Technician IDs"
	colTechnicianNames = "Technician Names"
	colLaborHours      = "Labor Hours"
	colLaborRates      = "Labor Rates"

	colPartNumbers    = "Part Numbers"
	colPartDescs      = "Part Descriptions"
	colPartQuantities = "Part Quantities"
	colPartUnitCosts  = "Part Unit Costs"
	colPartUnitSales  = "Part Unit Sales"
)

// ParseRecord decodes one raw export row. Failure to identify the owning
// dealer aborts immediately and surfaces as a single "general" error;
// everything else accumulates as field-level validation errors.
func ParseRecord(record domain.RawRecord) domain.ParserResult {
	result := domain.ParserResult{
		Errors:   []domain.ValidationError{},
		Warnings: []string{},
	}

	data, warnings, err := parseRecord(record)
	result.Warnings = append(result.Warnings, warnings...)
	if err != nil {
		result.Errors = append(result.Errors, domain.ValidationError{
			Field:   "general",
			Message: fmt.Sprintf("failed to parse record: %s", err.Error()),
		})
		return result
	}

	result.Errors = append(result.Errors, validate(data)...)
	if len(result.Errors) > 0 {
		return result
	}

	result.Success = true
	result.Data = data
	return result
}

// ParseBatch applies ParseRecord to every record independently. No record
// failure aborts the batch; callers inspect the counts.
func ParseBatch(records []domain.RawRecord) domain.BatchParserResult {
	batch := domain.BatchParserResult{
		TotalRecords: len(records),
		Results:      make([]domain.ParserResult, 0, len(records)),
		Errors:       []domain.ValidationError{},
		Warnings:     []string{},
	}

	for _, record := range records {
		result := ParseRecord(record)
		batch.Results = append(batch.Results, result)
		if result.Success {
			batch.SuccessfulRecords++
		} else {
			batch.FailedRecords++
		}
		batch.Errors = append(batch.Errors, result.Errors...)
		batch.Warnings = append(batch.Warnings, result.Warnings...)
	}

	return batch
}

func parseRecord(record domain.RawRecord) (*domain.ParsedROData, []string, error) {
	tenantID, err := extractTenantID(record)
	if err != nil {
		return nil, nil, err
	}

	header := parseHeader(record, tenantID)
	operations, warnings := parseOperations(record)

	return &domain.ParsedROData{Header: header, Operations: operations}, warnings, nil
}

func extractTenantID(record domain.RawRecord) (string, error) {
	if id := strings.TrimSpace(record[colDealerID]); id != "" {
		return id, nil
	}
	if id := strings.TrimSpace(record[colDealerNumber]); id != "" {
		return id, nil
	}

	return "", fmt.Errorf("record has no dealer identifier (%q or %q)", colDealerID, colDealerNumber)
}

func parseHeader(record domain.RawRecord, tenantID string) domain.ParsedROHeader {
	createdAt := strings.TrimSpace(record[colROOpenDate])
	if createdAt == "" {
		createdAt = time.Now().UTC().Format(time.RFC3339)
	}

	return domain.ParsedROHeader{
		TenantID: tenantID,
		RONumber: strings.TrimSpace(record[colRONumber]),
		Customer: domain.CustomerInfo{
			ID:      strings.TrimSpace(record[colCustomerID]),
			Name:    strings.TrimSpace(record[colCustomerName]),
			Phone:   strings.TrimSpace(record[colCustomerPhone]),
			Email:   strings.TrimSpace(record[colCustomerEmail]),
			Address: strings.TrimSpace(record[colCustomerAddress]),
		},
		Vehicle: domain.VehicleInfo{
			VIN:     strings.TrimSpace(record[colVIN]),
			Year:    parseInt(record[colVehicleYear]),
			Make:    strings.TrimSpace(record[colVehicleMake]),
			Model:   strings.TrimSpace(record[colVehicleModel]),
			Mileage: parseInt(record[colMileage]),
		},
		TotalAmount:      parseMonetary(record[colTotalAmount]),
		TotalLaborAmount: parseMonetary(record[colTotalLaborAmount]),
		TotalPartsAmount: parseMonetary(record[colTotalPartsAmount]),
		TotalTaxAmount:   parseMonetary(record[colTotalTaxAmount]),
		CreatedAt:        createdAt,
	}
}

// parseOperations splits the opcode columns by operation and attaches labor
// and parts lines. The export format does not scope line items to an
// operation, so every operation receives the record-level entry lists; the
// upstream feed would need a per-operation line count to do better.
func parseOperations(record domain.RawRecord) ([]domain.ParsedOperation, []string) {
	codes := splitMulti(record[colOperationCodes])
	descriptions := splitMulti(record[colOperationDescs])

	laborEntries, laborWarnings := parseLaborEntries(record)
	partEntries, partWarnings := parsePartEntries(record)

	warnings := append(laborWarnings, partWarnings...)

	operations := make([]domain.ParsedOperation, 0, len(codes))
	for i := range codes {
		code := at(codes, i)
		if code == "" {
			continue
		}

		op := domain.ParsedOperation{
			OperationCode:        code,
			OperationDescription: at(descriptions, i),
			LaborEntries:         laborEntries,
			PartEntries:          partEntries,
		}

		hours := decimal.Zero
		laborAmount := decimal.Zero
		for _, entry := range laborEntries {
			hours = hours.Add(decimal.NewFromFloat(entry.Hours))
			laborAmount = laborAmount.Add(decimal.NewFromFloat(entry.Amount))
		}
		partsAmount := decimal.Zero
		for _, entry := range partEntries {
			partsAmount = partsAmount.Add(decimal.NewFromFloat(entry.TotalSale))
		}

		op.TotalLaborHours = hours.InexactFloat64()
		op.TotalLaborAmount = laborAmount.InexactFloat64()
		op.TotalPartsAmount = partsAmount.InexactFloat64()

		operations = append(operations, op)
	}

	return operations, warnings
}

func parseLaborEntries(record domain.RawRecord) ([]domain.ParsedLaborEntry, []string) {
	ids := splitMulti(record[colTechnicianIDs])
	names := splitMulti(record[colTechnicianNames])
	hours := splitMulti(record[colLaborHours])
	rates := splitMulti(record[colLaborRates])

	var warnings []string
	n, aligned := siblingLen(len(ids), len(names), len(hours), len(rates))
	if !aligned {
		warnings = append(warnings, fmt.Sprintf(
			"labor columns misaligned: ids=%d names=%d hours=%d rates=%d; pairing by position",
			len(ids), len(names), len(hours), len(rates)))
	}

	entries := make([]domain.ParsedLaborEntry, 0, n)
	for i := 0; i < n; i++ {
		technicianID := at(ids, i)
		h := parseNumberDec(at(hours, i))
		if technicianID == "" || !h.IsPositive() {
			continue
		}

		rate := parseMonetaryDec(at(rates, i))
		entries = append(entries, domain.ParsedLaborEntry{
			TechnicianID:   technicianID,
			TechnicianName: at(names, i),
			Hours:          h.InexactFloat64(),
			Rate:           rate.InexactFloat64(),
			Amount:         h.Mul(rate).InexactFloat64(),
		})
	}

	return entries, warnings
}

func parsePartEntries(record domain.RawRecord) ([]domain.ParsedPartEntry, []string) {
	numbers := splitMulti(record[colPartNumbers])
	descriptions := splitMulti(record[colPartDescs])
	quantities := splitMulti(record[colPartQuantities])
	unitCosts := splitMulti(record[colPartUnitCosts])
	unitSales := splitMulti(record[colPartUnitSales])

	var warnings []string
	n, aligned := siblingLen(len(numbers), len(descriptions), len(quantities), len(unitCosts), len(unitSales))
	if !aligned {
		warnings = append(warnings, fmt.Sprintf(
			"part columns misaligned: numbers=%d descriptions=%d quantities=%d costs=%d sales=%d; pairing by position",
			len(numbers), len(descriptions), len(quantities), len(unitCosts), len(unitSales)))
	}

	entries := make([]domain.ParsedPartEntry, 0, n)
	for i := 0; i < n; i++ {
		partNumber := at(numbers, i)
		quantity := parseNumberDec(at(quantities, i))
		if partNumber == "" || !quantity.IsPositive() {
			continue
		}

		unitCost := parseMonetaryDec(at(unitCosts, i))
		unitSale := parseMonetaryDec(at(unitSales, i))
		entries = append(entries, domain.ParsedPartEntry{
			PartNumber:  partNumber,
			Description: at(descriptions, i),
			Quantity:    quantity.InexactFloat64(),
			UnitCost:    unitCost.InexactFloat64(),
			UnitSale:    unitSale.InexactFloat64(),
			TotalCost:   quantity.Mul(unitCost).InexactFloat64(),
			TotalSale:   quantity.Mul(unitSale).InexactFloat64(),
		})
	}

	return entries, warnings
}

// siblingLen reports the longest of the sibling column lengths and whether
// all non-empty siblings agree. Iteration always runs to the longest list so
// nothing is silently truncated; missing positions coerce like empty cells.
func siblingLen(lengths ...int) (int, bool) {
	max := 0
	for _, l := range lengths {
		if l > max {
			max = l
		}
	}

	aligned := true
	for _, l := range lengths {
		if l != 0 && l != max {
			aligned = false
		}
	}

	return max, aligned
}

// validate runs every check regardless of earlier failures so the caller
// sees the complete picture in one pass.
func validate(data *domain.ParsedROData) []domain.ValidationError {
	var errs []domain.ValidationError

	if strings.TrimSpace(data.Header.TenantID) == "" {
		errs = append(errs, domain.ValidationError{Field: "tenantId", Message: "tenant id is required"})
	}
	if strings.TrimSpace(data.Header.RONumber) == "" {
		errs = append(errs, domain.ValidationError{Field: "roNumber", Message: "ro number is required"})
	}
	if len(data.Operations) == 0 {
		errs = append(errs, domain.ValidationError{Field: "operations", Message: "at least one operation is required"})
	}

	return errs
}
