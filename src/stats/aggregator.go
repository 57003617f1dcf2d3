// Package stats computes summary figures over transaction sets. Nothing here
// is cached; every call reflects exactly the slice it was given.
package stats

import (
	"sort"

	"github.com/shopspring/decimal"

	"ledgerlens-server/src/models"
)

const monthLayout = "2006-01"

func EmptySummary() models.Summary {
	return models.Summary{
		TotalWithdrawal:       decimal.Zero,
		AverageWithdrawal:     decimal.Zero,
		HighestWithdrawal:     decimal.Zero,
		MostUsedPaymentMethod: models.NoPaymentMethod,
	}
}

// Summarize totals the valid withdrawals. Rows without a numeric withdrawal
// are left out of every figure, including the payment-method count. Ties for
// most used method go to the method seen first.
func Summarize(txns []models.ParsedTransaction) models.Summary {
	var (
		total, highest decimal.Decimal
		count          int64
	)
	methods := newCounter()
	for _, t := range txns {
		if !t.Withdrawal.Valid {
			continue
		}
		amount := t.Withdrawal.Decimal
		if count == 0 || amount.GreaterThan(highest) {
			highest = amount
		}
		total = total.Add(amount)
		count++
		if t.PaymentMethod != "" {
			methods.add(t.PaymentMethod)
		}
	}
	if count == 0 {
		return EmptySummary()
	}

	mostUsed := methods.mostCommon()
	if mostUsed == "" {
		mostUsed = models.NoPaymentMethod
	}
	return models.Summary{
		TotalWithdrawal:       total.Round(2),
		AverageWithdrawal:     total.Div(decimal.NewFromInt(count)).Round(2),
		HighestWithdrawal:     highest.Round(2),
		MostUsedPaymentMethod: mostUsed,
	}
}

// MonthlyTotals sums valid withdrawals per calendar month, oldest first.
func MonthlyTotals(txns []models.ParsedTransaction) []models.MonthlyTotal {
	sums := map[string]decimal.Decimal{}
	for _, t := range txns {
		month := t.TransactionDate.Format(monthLayout)
		sum := sums[month]
		if t.Withdrawal.Valid {
			sum = sum.Add(t.Withdrawal.Decimal)
		}
		sums[month] = sum
	}

	totals := make([]models.MonthlyTotal, 0, len(sums))
	for month, sum := range sums {
		totals = append(totals, models.MonthlyTotal{Month: month, Total: sum})
	}
	sort.Slice(totals, func(i, j int) bool { return totals[i].Month < totals[j].Month })
	return totals
}

// counter counts strings and remembers first-seen order for tie breaks.
type counter struct {
	counts map[string]int
	order  []string
}

func newCounter() *counter {
	return &counter{counts: map[string]int{}}
}

func (c *counter) add(key string) {
	if _, ok := c.counts[key]; !ok {
		c.order = append(c.order, key)
	}
	c.counts[key]++
}

func (c *counter) mostCommon() string {
	best, bestCount := "", 0
	for _, key := range c.order {
		if c.counts[key] > bestCount {
			best, bestCount = key, c.counts[key]
		}
	}
	return best
}
