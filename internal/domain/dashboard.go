package domain

import "time"

// ServiceRecord is the pre-flattened one-operation-per-row shape the
// aggregator consumes. Values arrive as raw DMS strings; all coercion
// happens during aggregation.
type ServiceRecord struct {
	DealerID       string `db:"dealer_id" json:"dealerId"`
	RONumber       string `db:"ro_number" json:"roNumber"`
	OpenDate       string `db:"open_date" json:"openDate"`
	ClosedRODate   string `db:"closed_ro_date" json:"closedRODate"`
	AdvisorID      string `db:"advisor_id" json:"advisorId"`
	AdvisorName    string `db:"advisor_name" json:"advisorName"`
	TechnicianID   string `db:"technician_id" json:"technicianId"`
	TechnicianName string `db:"technician_name" json:"technicianName"`
	Department     string `db:"department" json:"department"`
	OperationCode  string `db:"operation_code" json:"operationCode"`

	CustomerTotalSale string `db:"customer_total_sale" json:"customerTotalSale"`
	CustomerTotalCost string `db:"customer_total_cost" json:"customerTotalCost"`
	CustomerLaborSale string `db:"customer_labor_sale" json:"customerLaborSale"`
	CustomerLaborCost string `db:"customer_labor_cost" json:"customerLaborCost"`
	CustomerPartsSale string `db:"customer_parts_sale" json:"customerPartsSale"`
	CustomerPartsCost string `db:"customer_parts_cost" json:"customerPartsCost"`

	WarrantyTotalSale string `db:"warranty_total_sale" json:"warrantyTotalSale"`
	WarrantyTotalCost string `db:"warranty_total_cost" json:"warrantyTotalCost"`
	WarrantyLaborSale string `db:"warranty_labor_sale" json:"warrantyLaborSale"`
	WarrantyLaborCost string `db:"warranty_labor_cost" json:"warrantyLaborCost"`
	WarrantyPartsSale string `db:"warranty_parts_sale" json:"warrantyPartsSale"`
	WarrantyPartsCost string `db:"warranty_parts_cost" json:"warrantyPartsCost"`

	InternalTotalSale string `db:"internal_total_sale" json:"internalTotalSale"`
	InternalTotalCost string `db:"internal_total_cost" json:"internalTotalCost"`
	InternalLaborSale string `db:"internal_labor_sale" json:"internalLaborSale"`
	InternalLaborCost string `db:"internal_labor_cost" json:"internalLaborCost"`
	InternalPartsSale string `db:"internal_parts_sale" json:"internalPartsSale"`
	InternalPartsCost string `db:"internal_parts_cost" json:"internalPartsCost"`
}

// KPIResults is the persisted KPI snapshot shape the aggregator falls back
// to when live records cannot produce a figure.
type KPIResults struct {
	KPIs struct {
		EffectiveLaborRate struct {
			Value float64 `json:"value"`
		} `json:"effective_labor_rate"`
		LaborGPPercent struct {
			Value float64 `json:"value"`
		} `json:"labor_gp_percent"`
		HrsPerRO struct {
			Value float64 `json:"value"`
		} `json:"hrs_per_ro"`
		LaborPerRO struct {
			Value float64 `json:"value"`
		} `json:"labor_per_ro"`
	} `json:"kpis"`
	Metadata struct {
		TotalRepairOrders int `json:"total_repair_orders"`
	} `json:"metadata"`
}

// DayPoint is one day bucket of a payer-split series. Day carries the parsed
// date so series sort correctly across year boundaries; Label is display-only.
type DayPoint struct {
	Label    string    `json:"label"`
	Day      time.Time `json:"day"`
	Customer float64   `json:"customer"`
	Warranty float64   `json:"warranty"`
	Internal float64   `json:"internal"`
}

type TechnicianRank struct {
	TechnicianID   string  `json:"technicianId"`
	TechnicianName string  `json:"technicianName"`
	CustomerHours  float64 `json:"customerHours"`
	WarrantyHours  float64 `json:"warrantyHours"`
	InternalHours  float64 `json:"internalHours"`
	TotalHours     float64 `json:"totalHours"`
}

type AdvisorRank struct {
	AdvisorID       string  `json:"advisorId"`
	AdvisorName     string  `json:"advisorName"`
	ROCount         int     `json:"roCount"`
	AvgLaborPerRO   float64 `json:"avgLaborPerRO"`
	TotalLaborSale  float64 `json:"totalLaborSale"`
}

type OpcodeSlice struct {
	Label string  `json:"label"`
	Value float64 `json:"value"`
}

type WarrantyOpportunity struct {
	CustomerGPPercent float64 `json:"customerGPPercent"`
	WarrantyGPPercent float64 `json:"warrantyGPPercent"`
	GapPercent        float64 `json:"gapPercent"`
	WarrantyLaborSale float64 `json:"warrantyLaborSale"`
	EstimatedValue    float64 `json:"estimatedValue"`
}

type ProcessedDashboardData struct {
	LaborGPPercent     float64 `json:"laborGPPercent"`
	LaborPerRO         float64 `json:"laborPerRO"`
	HoursPerRO         float64 `json:"hoursPerRO"`
	EffectiveLaborRate float64 `json:"effectiveLaborRate"`

	GrossProfitTrend []DayPoint `json:"grossProfitTrend"`
	ROCountTrend     []DayPoint `json:"roCountTrend"`
	TechHoursTrend   []DayPoint `json:"techHoursTrend"`

	WarrantyOpportunity WarrantyOpportunity `json:"warrantyOpportunity"`
	TopTechnicians      []TechnicianRank    `json:"topTechnicians"`
	TopAdvisors         []AdvisorRank       `json:"topAdvisors"`
	OpcodeBreakdown     []OpcodeSlice       `json:"opcodeBreakdown"`

	TotalRepairOrders int `json:"totalRepairOrders"`
}
