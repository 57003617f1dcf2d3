package db

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"ledgerlens-server/src/models"
)

func TestBuildFilterQuery_NoFilters(t *testing.T) {
	query, args := buildFilterQuery(postgresDialect, models.TransactionFilter{})

	assert.Equal(t, "SELECT "+transactionColumns+" FROM transaction_data ORDER BY transaction_date, id", query)
	assert.Empty(t, args)
}

func TestBuildFilterQuery_Postgres(t *testing.T) {
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2024, 1, 31, 0, 0, 0, 0, time.UTC)
	min := decimal.NewFromInt(100)
	max := decimal.RequireFromString("250.50")

	query, args := buildFilterQuery(postgresDialect, models.TransactionFilter{
		StartDate:     &start,
		EndDate:       &end,
		MinAmount:     &min,
		MaxAmount:     &max,
		PaymentMethod: "UPI",
		Recipient:     "50%_off",
	})

	assert.Contains(t, query, "transaction_date >= $1")
	assert.Contains(t, query, "transaction_date < $2")
	assert.Contains(t, query, "withdrawals >= $3")
	assert.Contains(t, query, "withdrawals <= $4")
	assert.Contains(t, query, "payment_method = $5")
	assert.Contains(t, query, `recipient_merchant ILIKE $6 ESCAPE '\'`)
	assert.Equal(t, []any{
		start,
		time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC),
		"100",
		"250.5",
		"UPI",
		`%50\%\_off%`,
	}, args)
}

func TestBuildFilterQuery_SQLite(t *testing.T) {
	end := time.Date(2024, 1, 31, 0, 0, 0, 0, time.UTC)

	query, args := buildFilterQuery(sqliteDialect, models.TransactionFilter{
		EndDate:   &end,
		Recipient: "swiggy",
	})

	assert.Contains(t, query, "CAST(withdrawals AS TEXT)")
	assert.Contains(t, query, "WHERE transaction_date < ? AND recipient_merchant LIKE ?")
	assert.Equal(t, []any{"2024-02-01 00:00:00", "%swiggy%"}, args)
}
