// Package dashboard rolls flat service records up into the view model the
// dashboard widgets render.
package dashboard

import (
	"sort"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/TITANForecast/frontend-sub000/internal/domain"
)

// Fallbacks when neither live records nor a KPI snapshot can produce a
// figure. Hours-per-RO has no raw-data path at all: service records carry no
// hours column.
const (
	defaultHoursPerRO         = 1.29
	defaultEffectiveLaborRate = 177.5
	fallbackHourlyRate        = 100.0
)

type payer int

const (
	payerCustomer payer = iota
	payerWarranty
	payerInternal
	payerCount
)

type payerAmounts struct {
	totalSale float64
	totalCost float64
	laborSale float64
	laborCost float64
}

type dayBucket struct {
	day       time.Time
	label     string
	roCount   [payerCount]int
	gpSum     [payerCount]float64
	gpN       [payerCount]int
	laborSale [payerCount]float64
}

// Process aggregates the record set into dashboard data. kpi is an optional
// previously persisted summary used only as a fallback.
func Process(records []*domain.ServiceRecord, kpi *domain.KPIResults) domain.ProcessedDashboardData {
	out := domain.ProcessedDashboardData{
		GrossProfitTrend: []domain.DayPoint{},
		ROCountTrend:     []domain.DayPoint{},
		TechHoursTrend:   []domain.DayPoint{},
		TopTechnicians:   []domain.TechnicianRank{},
		TopAdvisors:      []domain.AdvisorRank{},
		OpcodeBreakdown:  opcodePlaceholder(),
	}

	buckets := map[string]*dayBucket{}
	var totalLaborSale, totalLaborCost float64
	var customerLaborSale float64
	customerLaborROs := 0

	var custGPSum, warrGPSum float64
	var custGPN, warrGPN int
	var warrantyLaborSale float64

	for _, rec := range records {
		amounts := recordAmounts(rec)

		for p := payerCustomer; p < payerCount; p++ {
			totalLaborSale += amounts[p].laborSale
			totalLaborCost += amounts[p].laborCost
		}
		customerSale := amounts[payerCustomer].laborSale
		if customerSale > 0 {
			customerLaborSale += customerSale
			customerLaborROs++
		}
		warrantyLaborSale += amounts[payerWarranty].laborSale

		if amounts[payerCustomer].totalSale > 0 {
			custGPSum += grossProfitPercent(amounts[payerCustomer].totalSale, amounts[payerCustomer].totalCost)
			custGPN++
		}
		if amounts[payerWarranty].totalSale > 0 {
			warrGPSum += grossProfitPercent(amounts[payerWarranty].totalSale, amounts[payerWarranty].totalCost)
			warrGPN++
		}

		// Records with no usable date drop out of the day series but still
		// feed the scalar KPIs above.
		day, ok := recordDay(rec)
		if !ok {
			continue
		}

		key := day.Format("2006-01-02")
		bucket, exists := buckets[key]
		if !exists {
			bucket = &dayBucket{day: day, label: day.Format("Jan 2")}
			buckets[key] = bucket
		}

		for p := payerCustomer; p < payerCount; p++ {
			if amounts[p].totalSale > 0 {
				bucket.roCount[p]++
				bucket.gpSum[p] += grossProfitPercent(amounts[p].totalSale, amounts[p].totalCost)
				bucket.gpN[p]++
			}
			bucket.laborSale[p] += amounts[p].laborSale
		}
	}

	out.LaborGPPercent, out.LaborPerRO, out.HoursPerRO, out.EffectiveLaborRate = scalarKPIs(
		len(records), totalLaborSale, totalLaborCost, customerLaborSale, customerLaborROs, kpi)

	elrDivisor := out.EffectiveLaborRate
	if elrDivisor <= 0 {
		elrDivisor = fallbackHourlyRate
	}

	ordered := sortBuckets(buckets)
	for _, b := range ordered {
		gp := domain.DayPoint{Label: b.label, Day: b.day}
		counts := domain.DayPoint{Label: b.label, Day: b.day}
		hours := domain.DayPoint{Label: b.label, Day: b.day}

		gp.Customer = round1(avg(b.gpSum[payerCustomer], b.gpN[payerCustomer]))
		gp.Warranty = round1(avg(b.gpSum[payerWarranty], b.gpN[payerWarranty]))
		gp.Internal = round1(avg(b.gpSum[payerInternal], b.gpN[payerInternal]))

		counts.Customer = float64(b.roCount[payerCustomer])
		counts.Warranty = float64(b.roCount[payerWarranty])
		counts.Internal = float64(b.roCount[payerInternal])

		hours.Customer = round1(b.laborSale[payerCustomer] / elrDivisor)
		hours.Warranty = round1(b.laborSale[payerWarranty] / elrDivisor)
		hours.Internal = round1(b.laborSale[payerInternal] / elrDivisor)

		out.GrossProfitTrend = append(out.GrossProfitTrend, gp)
		out.ROCountTrend = append(out.ROCountTrend, counts)
		out.TechHoursTrend = append(out.TechHoursTrend, hours)
	}

	out.TopTechnicians = rankTechnicians(records, elrDivisor)
	out.TopAdvisors = rankAdvisors(records)

	custGP := round1(avg(custGPSum, custGPN))
	warrGP := round1(avg(warrGPSum, warrGPN))
	out.WarrantyOpportunity = domain.WarrantyOpportunity{
		CustomerGPPercent: custGP,
		WarrantyGPPercent: warrGP,
		GapPercent:        round1(custGP - warrGP),
		WarrantyLaborSale: round2(warrantyLaborSale),
		EstimatedValue:    round2((custGP - warrGP) / 100 * warrantyLaborSale),
	}

	switch {
	case len(records) > 0:
		out.TotalRepairOrders = len(records)
	case kpi != nil:
		out.TotalRepairOrders = kpi.Metadata.TotalRepairOrders
	}

	return out
}

// scalarKPIs applies the precedence ladder: live records when they carry
// labor sale, then the persisted snapshot, then hardcoded defaults.
func scalarKPIs(
	recordCount int,
	totalLaborSale, totalLaborCost, customerLaborSale float64,
	customerLaborROs int,
	kpi *domain.KPIResults,
) (laborGP, laborPerRO, hoursPerRO, elr float64) {
	if recordCount > 0 && totalLaborSale > 0 {
		laborGP = round1((totalLaborSale - totalLaborCost) / totalLaborSale * 100)
		laborPerRO = round2(totalLaborSale / float64(recordCount))

		if customerLaborROs > 0 {
			elr = customerLaborSale / float64(customerLaborROs)
		} else {
			elr = totalLaborSale / float64(recordCount)
		}

		hoursPerRO = defaultHoursPerRO
		if kpi != nil {
			hoursPerRO = kpi.KPIs.HrsPerRO.Value
		}
		return laborGP, laborPerRO, hoursPerRO, elr
	}

	if kpi != nil {
		return kpi.KPIs.LaborGPPercent.Value,
			kpi.KPIs.LaborPerRO.Value,
			kpi.KPIs.HrsPerRO.Value,
			kpi.KPIs.EffectiveLaborRate.Value
	}

	return 0, 0, defaultHoursPerRO, defaultEffectiveLaborRate
}

func rankTechnicians(records []*domain.ServiceRecord, elrDivisor float64) []domain.TechnicianRank {
	type acc struct {
		name  string
		hours [payerCount]float64
	}
	byTech := map[string]*acc{}

	for _, rec := range records {
		id := strings.TrimSpace(rec.TechnicianID)
		if id == "" {
			continue
		}
		a, ok := byTech[id]
		if !ok {
			a = &acc{}
			byTech[id] = a
		}
		if a.name == "" {
			a.name = strings.TrimSpace(rec.TechnicianName)
		}

		amounts := recordAmounts(rec)
		for p := payerCustomer; p < payerCount; p++ {
			if amounts[p].laborSale > 0 {
				a.hours[p] += amounts[p].laborSale / elrDivisor
			}
		}
	}

	ranks := make([]domain.TechnicianRank, 0, len(byTech))
	for id, a := range byTech {
		total := a.hours[payerCustomer] + a.hours[payerWarranty] + a.hours[payerInternal]
		ranks = append(ranks, domain.TechnicianRank{
			TechnicianID:   id,
			TechnicianName: a.name,
			CustomerHours:  round1(a.hours[payerCustomer]),
			WarrantyHours:  round1(a.hours[payerWarranty]),
			InternalHours:  round1(a.hours[payerInternal]),
			TotalHours:     round1(total),
		})
	}

	sort.Slice(ranks, func(i, j int) bool {
		if ranks[i].TotalHours != ranks[j].TotalHours {
			return ranks[i].TotalHours > ranks[j].TotalHours
		}
		return ranks[i].TechnicianID < ranks[j].TechnicianID
	})

	if len(ranks) > 15 {
		ranks = ranks[:15]
	}
	return ranks
}

func rankAdvisors(records []*domain.ServiceRecord) []domain.AdvisorRank {
	type acc struct {
		name      string
		roCount   int
		laborSale float64
	}
	byAdvisor := map[string]*acc{}

	for _, rec := range records {
		id := strings.TrimSpace(rec.AdvisorID)
		if id == "" {
			continue
		}
		a, ok := byAdvisor[id]
		if !ok {
			a = &acc{}
			byAdvisor[id] = a
		}
		if a.name == "" {
			a.name = strings.TrimSpace(rec.AdvisorName)
		}

		a.roCount++
		a.laborSale += money(rec.CustomerLaborSale)
	}

	ranks := make([]domain.AdvisorRank, 0, len(byAdvisor))
	for id, a := range byAdvisor {
		ranks = append(ranks, domain.AdvisorRank{
			AdvisorID:      id,
			AdvisorName:    a.name,
			ROCount:        a.roCount,
			AvgLaborPerRO:  round2(a.laborSale / float64(a.roCount)),
			TotalLaborSale: round2(a.laborSale),
		})
	}

	sort.Slice(ranks, func(i, j int) bool {
		if ranks[i].AvgLaborPerRO != ranks[j].AvgLaborPerRO {
			return ranks[i].AvgLaborPerRO > ranks[j].AvgLaborPerRO
		}
		return ranks[i].AdvisorID < ranks[j].AdvisorID
	})

	if len(ranks) > 9 {
		ranks = ranks[:9]
	}
	return ranks
}

// opcodePlaceholder is the static breakdown the dashboard shows until opcode
// classification lands; the aggregator does not yet derive it from records.
func opcodePlaceholder() []domain.OpcodeSlice {
	return []domain.OpcodeSlice{
		{Label: "Maintenance", Value: 35},
		{Label: "Repair", Value: 25},
		{Label: "Diagnostics", Value: 18},
		{Label: "Tires", Value: 12},
		{Label: "Other", Value: 10},
	}
}

func recordAmounts(rec *domain.ServiceRecord) [payerCount]payerAmounts {
	return [payerCount]payerAmounts{
		payerCustomer: {
			totalSale: money(rec.CustomerTotalSale),
			totalCost: money(rec.CustomerTotalCost),
			laborSale: money(rec.CustomerLaborSale),
			laborCost: money(rec.CustomerLaborCost),
		},
		payerWarranty: {
			totalSale: money(rec.WarrantyTotalSale),
			totalCost: money(rec.WarrantyTotalCost),
			laborSale: money(rec.WarrantyLaborSale),
			laborCost: money(rec.WarrantyLaborCost),
		},
		payerInternal: {
			totalSale: money(rec.InternalTotalSale),
			totalCost: money(rec.InternalTotalCost),
			laborSale: money(rec.InternalLaborSale),
			laborCost: money(rec.InternalLaborCost),
		},
	}
}

// grossProfitPercent is the per-record ratio. Day buckets average these
// ratios rather than computing one ratio from summed totals; the dashboard
// is calibrated to that convention.
func grossProfitPercent(sale, cost float64) float64 {
	return (sale - cost) / sale * 100
}

var dateLayouts = []string{
	"2006-01-02",
	time.RFC3339,
	"2006-01-02 15:04:05",
	"01/02/2006",
	"1/2/2006",
}

// recordDay parses the record's close date, falling back to the open date.
func recordDay(rec *domain.ServiceRecord) (time.Time, bool) {
	for _, raw := range []string{rec.ClosedRODate, rec.OpenDate} {
		raw = strings.TrimSpace(raw)
		if raw == "" {
			continue
		}
		for _, layout := range dateLayouts {
			if t, err := time.Parse(layout, raw); err == nil {
				return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC), true
			}
		}
	}
	return time.Time{}, false
}

func sortBuckets(buckets map[string]*dayBucket) []*dayBucket {
	ordered := make([]*dayBucket, 0, len(buckets))
	for _, b := range buckets {
		ordered = append(ordered, b)
	}
	sort.Slice(ordered, func(i, j int) bool {
		return ordered[i].day.Before(ordered[j].day)
	})
	return ordered
}

func avg(sum float64, n int) float64 {
	if n == 0 {
		return 0
	}
	return sum / float64(n)
}

func money(raw string) float64 {
	raw = strings.TrimSpace(strings.ReplaceAll(raw, ",", ""))
	if raw == "" {
		return 0
	}
	d, err := decimal.NewFromString(raw)
	if err != nil {
		return 0
	}
	return d.InexactFloat64()
}

func round1(v float64) float64 {
	return decimal.NewFromFloat(v).Round(1).InexactFloat64()
}

func round2(v float64) float64 {
	return decimal.NewFromFloat(v).Round(2).InexactFloat64()
}
