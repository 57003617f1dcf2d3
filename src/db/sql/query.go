package db

import (
	"fmt"
	"strings"
	"time"

	"ledgerlens-server/src/models"
)

const transactionColumns = `id, withdrawals, payment_method, recipient_merchant, remarks, cleaned_remarks, transaction_date`

// SQLite hands NUMERIC values back as floats; text keeps the decimal exact.
const sqliteTransactionColumns = `id, CAST(withdrawals AS TEXT), payment_method, recipient_merchant, remarks, cleaned_remarks, transaction_date`

// dialect captures the SQL differences between the supported backends.
type dialect struct {
	columns     string
	placeholder func(n int) string
	likeOp      string
	bindTime    func(t time.Time) any
}

var postgresDialect = dialect{
	columns:     transactionColumns,
	placeholder: func(n int) string { return fmt.Sprintf("$%d", n) },
	likeOp:      "ILIKE",
	bindTime:    func(t time.Time) any { return t },
}

var sqliteDialect = dialect{
	columns:     sqliteTransactionColumns,
	placeholder: func(int) string { return "?" },
	likeOp:      "LIKE",
	bindTime:    func(t time.Time) any { return t.UTC().Format(sqliteTimeLayout) },
}

// Rows are only ever appended, so row count and highest id together identify
// the stored set.
const versionQuery = `SELECT COUNT(*), COALESCE(MAX(id), 0) FROM transaction_data`

func formatVersion(count, maxID int64) string {
	return fmt.Sprintf("%d:%d", count, maxID)
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// buildFilterQuery renders the filtered select. The end date bound is
// exclusive at the following midnight so the whole end day matches.
func buildFilterQuery(d dialect, f models.TransactionFilter) (string, []any) {
	var (
		where []string
		args  []any
	)
	add := func(clause string, arg any) {
		args = append(args, arg)
		where = append(where, fmt.Sprintf(clause, d.placeholder(len(args))))
	}

	if f.StartDate != nil {
		add("transaction_date >= %s", d.bindTime(*f.StartDate))
	}
	if end := f.EndExclusive(); end != nil {
		add("transaction_date < %s", d.bindTime(*end))
	}
	if f.MinAmount != nil {
		add("withdrawals >= %s", f.MinAmount.String())
	}
	if f.MaxAmount != nil {
		add("withdrawals <= %s", f.MaxAmount.String())
	}
	if f.PaymentMethod != "" {
		add("payment_method = %s", f.PaymentMethod)
	}
	if f.Recipient != "" {
		add("recipient_merchant "+d.likeOp+` %s ESCAPE '\'`, "%"+likeEscaper.Replace(f.Recipient)+"%")
	}

	query := "SELECT " + d.columns + " FROM transaction_data"
	if len(where) > 0 {
		query += " WHERE " + strings.Join(where, " AND ")
	}
	query += " ORDER BY transaction_date, id"
	return query, args
}
