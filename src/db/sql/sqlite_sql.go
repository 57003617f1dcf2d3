package db

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"ledgerlens-server/src/models"
)

const sqliteTimeLayout = "2006-01-02 15:04:05"

const sqliteSchema = `
	CREATE TABLE IF NOT EXISTS transaction_data (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		withdrawals NUMERIC,
		payment_method TEXT NOT NULL,
		recipient_merchant TEXT NOT NULL,
		remarks TEXT NOT NULL,
		cleaned_remarks TEXT NOT NULL,
		transaction_date TEXT NOT NULL,
		dedup_key TEXT NOT NULL UNIQUE,
		created_at TEXT NOT NULL DEFAULT (datetime('now'))
	);
	CREATE INDEX IF NOT EXISTS idx_transaction_data_date ON transaction_data (transaction_date);
`

// SQLiteStore keeps transactions in a local SQLite file. Dates are stored as
// UTC text so range filters compare lexically.
type SQLiteStore struct {
	db *sql.DB
}

func NewSQLiteStore(db *sql.DB) *SQLiteStore {
	return &SQLiteStore{db: db}
}

func (s *SQLiteStore) Migrate(ctx context.Context) error {
	conn, err := s.db.Conn(ctx)
	if err != nil {
		return err
	}
	defer conn.Close()

	if _, err := conn.ExecContext(ctx, sqliteSchema); err != nil {
		return fmt.Errorf("creating schema: %w", err)
	}
	return nil
}

func (s *SQLiteStore) InsertIgnoringDuplicates(ctx context.Context, txns []models.ParsedTransaction) (int64, error) {
	conn, err := s.db.Conn(ctx)
	if err != nil {
		return 0, err
	}
	defer conn.Close()

	tx, err := conn.BeginTx(ctx, nil)
	if err != nil {
		return 0, err
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO transaction_data
			(withdrawals, payment_method, recipient_merchant, remarks, cleaned_remarks, transaction_date, dedup_key)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT (dedup_key) DO NOTHING
	`)
	if err != nil {
		return 0, err
	}
	defer stmt.Close()

	var inserted int64
	for _, t := range txns {
		var amount any
		if t.Withdrawal.Valid {
			amount = t.Withdrawal.Decimal.String()
		}
		res, err := stmt.ExecContext(ctx,
			amount,
			t.PaymentMethod,
			t.RecipientMerchant,
			t.Remarks,
			t.CleanedRemarks,
			t.TransactionDate.UTC().Format(sqliteTimeLayout),
			DedupKey(t),
		)
		if err != nil {
			return 0, err
		}
		n, err := res.RowsAffected()
		if err != nil {
			return 0, err
		}
		inserted += n
	}

	if err := tx.Commit(); err != nil {
		return 0, err
	}
	return inserted, nil
}

func (s *SQLiteStore) FetchAll(ctx context.Context) ([]models.StoredTransaction, error) {
	return s.query(ctx, "SELECT "+sqliteTransactionColumns+" FROM transaction_data ORDER BY transaction_date, id")
}

func (s *SQLiteStore) FetchFiltered(ctx context.Context, f models.TransactionFilter) ([]models.StoredTransaction, error) {
	query, args := buildFilterQuery(sqliteDialect, f)
	return s.query(ctx, query, args...)
}

func (s *SQLiteStore) FetchMonthlyTotals(ctx context.Context) ([]models.MonthlyTotal, error) {
	conn, err := s.db.Conn(ctx)
	if err != nil {
		return nil, err
	}
	defer conn.Close()

	rows, err := conn.QueryContext(ctx, `
		SELECT substr(transaction_date, 1, 7) AS month,
		       CAST(COALESCE(SUM(withdrawals), 0) AS TEXT) AS total
		FROM transaction_data
		GROUP BY month
		ORDER BY month
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	totals := []models.MonthlyTotal{}
	for rows.Next() {
		var (
			m     models.MonthlyTotal
			total string
		)
		if err := rows.Scan(&m.Month, &total); err != nil {
			return nil, err
		}
		if m.Total, err = parseDecimal(total); err != nil {
			return nil, err
		}
		totals = append(totals, m)
	}
	return totals, rows.Err()
}

func (s *SQLiteStore) Version(ctx context.Context) (string, error) {
	conn, err := s.db.Conn(ctx)
	if err != nil {
		return "", err
	}
	defer conn.Close()

	var count, maxID int64
	if err := conn.QueryRowContext(ctx, versionQuery).Scan(&count, &maxID); err != nil {
		return "", err
	}
	return formatVersion(count, maxID), nil
}

func (s *SQLiteStore) Close() {
	s.db.Close()
}

func (s *SQLiteStore) query(ctx context.Context, query string, args ...any) ([]models.StoredTransaction, error) {
	conn, err := s.db.Conn(ctx)
	if err != nil {
		return nil, err
	}
	defer conn.Close()

	rows, err := conn.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	txns := []models.StoredTransaction{}
	for rows.Next() {
		var (
			t      models.StoredTransaction
			amount sql.NullString
			date   string
		)
		err := rows.Scan(&t.ID, &amount, &t.PaymentMethod, &t.RecipientMerchant, &t.Remarks, &t.CleanedRemarks, &date)
		if err != nil {
			return nil, err
		}
		if amount.Valid {
			d, err := parseDecimal(amount.String)
			if err != nil {
				return nil, err
			}
			t.Withdrawal = decimal.NewNullDecimal(d)
		}
		if t.TransactionDate, err = time.Parse(sqliteTimeLayout, date); err != nil {
			return nil, fmt.Errorf("parsing transaction_date %q: %w", date, err)
		}
		txns = append(txns, t)
	}
	return txns, rows.Err()
}

func parseDecimal(s string) (decimal.Decimal, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Decimal{}, fmt.Errorf("parsing amount %q: %w", s, err)
	}
	return d, nil
}
