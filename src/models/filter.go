package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// TransactionFilter narrows a transaction query. Nil or empty fields are ignored.
type TransactionFilter struct {
	StartDate     *time.Time
	EndDate       *time.Time
	MinAmount     *decimal.Decimal
	MaxAmount     *decimal.Decimal
	PaymentMethod string
	Recipient     string
}

// EndExclusive returns the day after EndDate, so the whole end day is included.
func (f TransactionFilter) EndExclusive() *time.Time {
	if f.EndDate == nil {
		return nil
	}
	end := f.EndDate.AddDate(0, 0, 1)
	return &end
}
