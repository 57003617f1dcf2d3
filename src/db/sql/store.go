package db

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strings"

	dbconn "ledgerlens-server/src/db"
	"ledgerlens-server/src/models"
)

// Store is the persistence boundary for transactions.
type Store interface {
	InsertIgnoringDuplicates(ctx context.Context, txns []models.ParsedTransaction) (int64, error)
	FetchAll(ctx context.Context) ([]models.StoredTransaction, error)
	FetchFiltered(ctx context.Context, f models.TransactionFilter) ([]models.StoredTransaction, error)
	FetchMonthlyTotals(ctx context.Context) ([]models.MonthlyTotal, error)
	// Version changes whenever rows are added by any writer.
	Version(ctx context.Context) (string, error)
	Close()
}

const (
	postgresScheme   = "postgres://"
	postgresqlScheme = "postgresql://"
	sqliteScheme     = "sqlite://"
)

// Open connects to the database named by url and makes sure the schema exists.
// Supported schemes are postgres://, postgresql:// and sqlite://<path>.
func Open(ctx context.Context, url string) (Store, error) {
	switch {
	case strings.HasPrefix(url, postgresScheme), strings.HasPrefix(url, postgresqlScheme):
		pool, err := dbconn.Connect(ctx, url)
		if err != nil {
			return nil, fmt.Errorf("connecting to postgres: %w", err)
		}
		s := NewPostgresStore(pool)
		if err := s.Migrate(ctx); err != nil {
			s.Close()
			return nil, err
		}
		return s, nil
	case strings.HasPrefix(url, sqliteScheme):
		conn, err := dbconn.OpenSQLite(ctx, strings.TrimPrefix(url, sqliteScheme))
		if err != nil {
			return nil, fmt.Errorf("opening sqlite: %w", err)
		}
		s := NewSQLiteStore(conn)
		if err := s.Migrate(ctx); err != nil {
			s.Close()
			return nil, err
		}
		return s, nil
	default:
		return nil, fmt.Errorf("unsupported database url %q", url)
	}
}

// DedupKey hashes the natural key of a transaction: amount, method,
// recipient, remark and calendar day.
func DedupKey(t models.ParsedTransaction) string {
	amount := ""
	if t.Withdrawal.Valid {
		amount = t.Withdrawal.Decimal.String()
	}
	h := sha256.New()
	for _, part := range []string{
		amount,
		t.PaymentMethod,
		t.RecipientMerchant,
		t.Remarks,
		t.TransactionDate.UTC().Format("2006-01-02"),
	} {
		h.Write([]byte(part))
		h.Write([]byte{0x1f})
	}
	return hex.EncodeToString(h.Sum(nil))
}
