// Package ingest turns bank-statement spreadsheets into parsed transactions
// and hands them to storage.
package ingest

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/rs/zerolog"

	"ledgerlens-server/src/models"
	"ledgerlens-server/src/parser"
)

const (
	InvalidFormatMessage  = "Invalid file format"
	MissingColumnsMessage = `Excel sheet must contain "Remarks" and a column with "withdrawal" in its name.`
)

// ValidationError reports a malformed upload. Its message is safe to show users.
type ValidationError struct {
	Msg string
}

func (e *ValidationError) Error() string { return e.Msg }

// Row is one statement line before parsing.
type Row struct {
	Withdrawal string
	Remark     string
}

type Store interface {
	InsertIgnoringDuplicates(ctx context.Context, txns []models.ParsedTransaction) (int64, error)
}

type Result struct {
	Rows         int
	Inserted     int64
	Transactions []models.ParsedTransaction
}

type Pipeline struct {
	parser *parser.Parser
	store  Store
	log    zerolog.Logger
	now    func() time.Time
}

func NewPipeline(p *parser.Parser, store Store, log zerolog.Logger) *Pipeline {
	return &Pipeline{parser: p, store: store, log: log, now: time.Now}
}

// WithClock replaces the clock used for the ingestion date.
func (p *Pipeline) WithClock(now func() time.Time) *Pipeline {
	p.now = now
	return p
}

// ExtractRows validates the sheet layout and returns its data rows.
func ExtractRows(sheet [][]string) ([]Row, error) {
	cols, ok := findColumns(sheet)
	if !ok {
		return nil, &ValidationError{Msg: MissingColumnsMessage}
	}
	var rows []Row
	for _, r := range sheet[cols.header+1:] {
		row := Row{Withdrawal: cell(r, cols.withdrawal), Remark: cell(r, cols.remark)}
		if row.Withdrawal == "" && row.Remark == "" {
			continue
		}
		rows = append(rows, row)
	}
	return rows, nil
}

// Process reads and parses a spreadsheet without touching storage.
func (p *Pipeline) Process(filename string, r io.ReadSeeker) ([]models.ParsedTransaction, error) {
	reader, err := ReaderFor(filename)
	if err != nil {
		return nil, err
	}
	sheet, err := reader.ReadRows(r)
	if err != nil {
		return nil, &ValidationError{Msg: fmt.Sprintf("An error occurred: %v", err)}
	}
	rows, err := ExtractRows(sheet)
	if err != nil {
		return nil, err
	}

	y, m, d := p.now().Date()
	ingested := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)

	txns := make([]models.ParsedTransaction, 0, len(rows))
	for _, row := range rows {
		fields := p.parser.Parse(row.Remark)
		txns = append(txns, models.ParsedTransaction{
			Withdrawal:        parseAmount(row.Withdrawal),
			PaymentMethod:     fields.PaymentMethod,
			RecipientMerchant: fields.RecipientMerchant,
			Remarks:           row.Remark,
			CleanedRemarks:    fields.CleanedRemark,
			TransactionDate:   ingested,
		})
	}
	p.log.Debug().Str("file", filename).Int("rows", len(txns)).Msg("parsed statement")
	return txns, nil
}

// Ingest parses a spreadsheet and stores the batch, skipping duplicates.
func (p *Pipeline) Ingest(ctx context.Context, filename string, r io.ReadSeeker) (*Result, error) {
	txns, err := p.Process(filename, r)
	if err != nil {
		return nil, err
	}
	inserted, err := p.store.InsertIgnoringDuplicates(ctx, txns)
	if err != nil {
		p.log.Error().Err(err).Str("file", filename).Msg("failed to store transactions")
		return nil, fmt.Errorf("storing transactions: %w", err)
	}
	p.log.Info().Str("file", filename).Int("rows", len(txns)).Int64("inserted", inserted).Msg("ingested statement")
	return &Result{Rows: len(txns), Inserted: inserted, Transactions: txns}, nil
}

func (p *Pipeline) IngestFile(ctx context.Context, path string) (*Result, error) {
	if _, err := ReaderFor(path); err != nil {
		return nil, err
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, &ValidationError{Msg: "File not found."}
	}
	defer f.Close()
	return p.Ingest(ctx, filepath.Base(path), f)
}
