package db

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"ledgerlens-server/src/models"
)

const postgresSchema = `
	CREATE TABLE IF NOT EXISTS transaction_data (
		id BIGSERIAL PRIMARY KEY,
		withdrawals NUMERIC,
		payment_method TEXT NOT NULL,
		recipient_merchant TEXT NOT NULL,
		remarks TEXT NOT NULL,
		cleaned_remarks TEXT NOT NULL,
		transaction_date TIMESTAMPTZ NOT NULL,
		dedup_key TEXT NOT NULL UNIQUE,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	);
	CREATE INDEX IF NOT EXISTS idx_transaction_data_date ON transaction_data (transaction_date);
`

// PostgresStore keeps transactions in Postgres. Every call acquires its own
// pooled connection and releases it before returning.
type PostgresStore struct {
	pool *pgxpool.Pool
}

func NewPostgresStore(pool *pgxpool.Pool) *PostgresStore {
	return &PostgresStore{pool: pool}
}

func (s *PostgresStore) Migrate(ctx context.Context) error {
	conn, err := s.pool.Acquire(ctx)
	if err != nil {
		return err
	}
	defer conn.Release()

	if _, err := conn.Exec(ctx, postgresSchema); err != nil {
		return fmt.Errorf("creating schema: %w", err)
	}
	return nil
}

func (s *PostgresStore) InsertIgnoringDuplicates(ctx context.Context, txns []models.ParsedTransaction) (int64, error) {
	conn, err := s.pool.Acquire(ctx)
	if err != nil {
		return 0, err
	}
	defer conn.Release()

	tx, err := conn.Begin(ctx)
	if err != nil {
		return 0, err
	}
	defer tx.Rollback(ctx)

	query := `
		INSERT INTO transaction_data
			(withdrawals, payment_method, recipient_merchant, remarks, cleaned_remarks, transaction_date, dedup_key)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (dedup_key) DO NOTHING
	`
	var inserted int64
	for _, t := range txns {
		cmd, err := tx.Exec(ctx, query,
			t.Withdrawal,
			t.PaymentMethod,
			t.RecipientMerchant,
			t.Remarks,
			t.CleanedRemarks,
			t.TransactionDate,
			DedupKey(t),
		)
		if err != nil {
			return 0, err
		}
		inserted += cmd.RowsAffected()
	}

	if err := tx.Commit(ctx); err != nil {
		return 0, err
	}
	return inserted, nil
}

func (s *PostgresStore) FetchAll(ctx context.Context) ([]models.StoredTransaction, error) {
	return s.query(ctx, "SELECT "+transactionColumns+" FROM transaction_data ORDER BY transaction_date, id")
}

func (s *PostgresStore) FetchFiltered(ctx context.Context, f models.TransactionFilter) ([]models.StoredTransaction, error) {
	query, args := buildFilterQuery(postgresDialect, f)
	return s.query(ctx, query, args...)
}

func (s *PostgresStore) FetchMonthlyTotals(ctx context.Context) ([]models.MonthlyTotal, error) {
	conn, err := s.pool.Acquire(ctx)
	if err != nil {
		return nil, err
	}
	defer conn.Release()

	query := `
		SELECT to_char(transaction_date AT TIME ZONE 'UTC', 'YYYY-MM') AS month,
		       COALESCE(SUM(withdrawals), 0)::text AS total
		FROM transaction_data
		GROUP BY month
		ORDER BY month
	`
	rows, err := conn.Query(ctx, query)
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

func (s *PostgresStore) Version(ctx context.Context) (string, error) {
	conn, err := s.pool.Acquire(ctx)
	if err != nil {
		return "", err
	}
	defer conn.Release()

	var count, maxID int64
	err = conn.QueryRow(ctx, versionQuery).Scan(&count, &maxID)
	if err != nil {
		return "", err
	}
	return formatVersion(count, maxID), nil
}

func (s *PostgresStore) Close() {
	s.pool.Close()
}

func (s *PostgresStore) query(ctx context.Context, query string, args ...any) ([]models.StoredTransaction, error) {
	conn, err := s.pool.Acquire(ctx)
	if err != nil {
		return nil, err
	}
	defer conn.Release()

	rows, err := conn.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanPostgres(rows)
}

func scanPostgres(rows pgx.Rows) ([]models.StoredTransaction, error) {
	txns := []models.StoredTransaction{}
	for rows.Next() {
		var t models.StoredTransaction
		err := rows.Scan(&t.ID, &t.Withdrawal, &t.PaymentMethod, &t.RecipientMerchant, &t.Remarks, &t.CleanedRemarks, &t.TransactionDate)
		if err != nil {
			return nil, err
		}
		t.TransactionDate = t.TransactionDate.UTC()
		txns = append(txns, t)
	}
	return txns, rows.Err()
}
