package models

import (
	"time"

	"github.com/shopspring/decimal"
)

func init() {
	// Amounts and statistics go out as JSON numbers, not quoted strings.
	decimal.MarshalJSONWithoutQuotes = true
}

// ParsedTransaction is one statement row after remark parsing.
// An invalid Withdrawal means the cell was empty or non-numeric.
type ParsedTransaction struct {
	Withdrawal        decimal.NullDecimal `json:"withdrawals"`
	PaymentMethod     string              `json:"payment_method"`
	RecipientMerchant string              `json:"recipient_merchant"`
	Remarks           string              `json:"remarks"`
	CleanedRemarks    string              `json:"cleaned_remarks"`
	TransactionDate   time.Time           `json:"transaction_date"`
}

type StoredTransaction struct {
	ID int64 `json:"id"`
	ParsedTransaction
	Category Category `json:"category,omitempty"`
}

type MonthlyTotal struct {
	Month string          `json:"month"`
	Total decimal.Decimal `json:"total"`
}

// ParsedOf strips the storage identity from stored rows.
func ParsedOf(stored []StoredTransaction) []ParsedTransaction {
	parsed := make([]ParsedTransaction, len(stored))
	for i, s := range stored {
		parsed[i] = s.ParsedTransaction
	}
	return parsed
}
