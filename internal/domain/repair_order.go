package domain

import "time"

// RawRecord is one row of a DMS export: column name -> raw string value.
// Multi-valued columns pack operation-level values with '|' and line-item
// values with '^'.
type RawRecord = map[string]string

type CustomerInfo struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Phone   string `json:"phone"`
	Email   string `json:"email"`
	Address string `json:"address"`
}

type VehicleInfo struct {
	VIN     string `json:"vin"`
	Year    int    `json:"year"`
	Make    string `json:"make"`
	Model   string `json:"model"`
	Mileage int    `json:"mileage"`
}

type ParsedROHeader struct {
	TenantID         string       `json:"tenantId"`
	RONumber         string       `json:"roNumber"`
	Customer         CustomerInfo `json:"customerInfo"`
	Vehicle          VehicleInfo  `json:"vehicleInfo"`
	TotalAmount      float64      `json:"totalAmount"`
	TotalLaborAmount float64      `json:"totalLaborAmount"`
	TotalPartsAmount float64      `json:"totalPartsAmount"`
	TotalTaxAmount   float64      `json:"totalTaxAmount"`
	CreatedAt        string       `json:"createdAt"`
}

type ParsedLaborEntry struct {
	TechnicianID   string  `json:"technicianId"`
	TechnicianName string  `json:"technicianName"`
	Hours          float64 `json:"hours"`
	Rate           float64 `json:"rate"`
	Amount         float64 `json:"amount"`
}

type ParsedPartEntry struct {
	PartNumber  string  `json:"partNumber"`
	Description string  `json:"description"`
	Quantity    float64 `json:"quantity"`
	UnitCost    float64 `json:"unitCost"`
	UnitSale    float64 `json:"unitSale"`
	TotalCost   float64 `json:"totalCost"`
	TotalSale   float64 `json:"totalSale"`
}

type ParsedOperation struct {
	OperationCode        string             `json:"operationCode"`
	OperationDescription string             `json:"operationDescription"`
	LaborEntries         []ParsedLaborEntry `json:"laborEntries"`
	PartEntries          []ParsedPartEntry  `json:"partEntries"`
	TotalLaborHours      float64            `json:"totalLaborHours"`
	TotalLaborAmount     float64            `json:"totalLaborAmount"`
	TotalPartsAmount     float64            `json:"totalPartsAmount"`
}

type ParsedROData struct {
	Header     ParsedROHeader    `json:"header"`
	Operations []ParsedOperation `json:"operations"`
}

// ValidationError tags a parse failure with the field it concerns. The field
// "general" marks structural failures where parsing could not start at all.
type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

type ParserResult struct {
	Success  bool              `json:"success"`
	Data     *ParsedROData     `json:"data,omitempty"`
	Errors   []ValidationError `json:"errors"`
	Warnings []string          `json:"warnings"`
}

type BatchParserResult struct {
	TotalRecords      int               `json:"totalRecords"`
	SuccessfulRecords int               `json:"successfulRecords"`
	FailedRecords     int               `json:"failedRecords"`
	Results           []ParserResult    `json:"results"`
	Errors            []ValidationError `json:"errors"`
	Warnings          []string          `json:"warnings"`
}

type RepairOrder struct {
	ID        int64     `db:"id"`
	DealerID  string    `db:"dealer_id"`
	RONumber  string    `db:"ro_number"`
	Payload   []byte    `db:"payload"`
	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`
}
