package models

import "github.com/shopspring/decimal"

const NoPaymentMethod = "N/A"

type Summary struct {
	TotalWithdrawal       decimal.Decimal `json:"total_withdrawals"`
	AverageWithdrawal     decimal.Decimal `json:"average_withdrawal"`
	HighestWithdrawal     decimal.Decimal `json:"highest_withdrawal"`
	MostUsedPaymentMethod string          `json:"most_used_payment_method"`
}

type Dashboard struct {
	PaymentMethodCounts            map[string]int             `json:"paymentMethodCounts"`
	MonthlyWithdrawals             map[string]decimal.Decimal `json:"monthlyWithdrawals"`
	TotalWithdrawals               decimal.Decimal            `json:"totalWithdrawals"`
	AverageWithdrawal              decimal.Decimal            `json:"averageWithdrawal"`
	HighestWithdrawal              decimal.Decimal            `json:"highestWithdrawal"`
	MostUsedPaymentMethod          string                     `json:"mostUsedPaymentMethod"`
	AverageTimeBetweenTransactions *float64                   `json:"averageTimeBetweenTransactions"`
	Notes                          []string                   `json:"notes,omitempty"`
}
