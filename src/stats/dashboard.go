package stats

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"ledgerlens-server/src/models"
)

// NoTimeOfDayNote is attached when every timestamp sits on midnight: the
// statements carry no time of day, so gaps are whole days or zero.
const NoTimeOfDayNote = "transaction dates carry no time of day; averageTimeBetweenTransactions is based on day-granular dates"

// Dashboard builds the overview figures. It returns nil for an empty set.
// Payment methods are counted over every row, including rows without an
// amount; the money figures use valid amounts only.
func Dashboard(txns []models.ParsedTransaction) *models.Dashboard {
	if len(txns) == 0 {
		return nil
	}

	counts := map[string]int{}
	methods := newCounter()
	for _, t := range txns {
		counts[t.PaymentMethod]++
		if t.PaymentMethod != "" {
			methods.add(t.PaymentMethod)
		}
	}
	mostUsed := methods.mostCommon()
	if mostUsed == "" {
		mostUsed = models.NoPaymentMethod
	}

	monthly := map[string]decimal.Decimal{}
	for _, m := range MonthlyTotals(txns) {
		monthly[m.Month] = m.Total
	}

	summary := Summarize(txns)
	d := &models.Dashboard{
		PaymentMethodCounts:            counts,
		MonthlyWithdrawals:             monthly,
		TotalWithdrawals:               summary.TotalWithdrawal,
		AverageWithdrawal:              summary.AverageWithdrawal,
		HighestWithdrawal:              summary.HighestWithdrawal,
		MostUsedPaymentMethod:          mostUsed,
		AverageTimeBetweenTransactions: AverageHoursBetween(txns),
	}
	if !hasTimeOfDay(txns) {
		d.Notes = append(d.Notes, NoTimeOfDayNote)
	}
	return d
}

// AverageHoursBetween is the mean gap in hours between consecutive
// transactions in time order, or nil with fewer than two transactions.
func AverageHoursBetween(txns []models.ParsedTransaction) *float64 {
	if len(txns) < 2 {
		return nil
	}
	times := make([]time.Time, len(txns))
	for i, t := range txns {
		times[i] = t.TransactionDate
	}
	sort.Slice(times, func(i, j int) bool { return times[i].Before(times[j]) })

	span := times[len(times)-1].Sub(times[0])
	avg := span.Hours() / float64(len(times)-1)
	return &avg
}

func hasTimeOfDay(txns []models.ParsedTransaction) bool {
	for _, t := range txns {
		h, m, s := t.TransactionDate.Clock()
		if h != 0 || m != 0 || s != 0 || t.TransactionDate.Nanosecond() != 0 {
			return true
		}
	}
	return false
}
